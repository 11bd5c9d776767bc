// Package persistence provides SQLite-based storage of completed runs:
// one row per run plus its full per-day metrics series.
package persistence

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/talgya/crimenet/internal/agents"
	"github.com/talgya/crimenet/internal/engine"
)

// DB wraps a SQLite connection for run storage.
type DB struct {
	conn *sqlx.DB
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		created_at TEXT NOT NULL,
		seed INTEGER NOT NULL,
		horizon_days INTEGER NOT NULL,
		n_agents INTEGER NOT NULL,
		params_yaml TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS tick_metrics (
		run_id TEXT NOT NULL,
		day INTEGER NOT NULL,
		crime_events INTEGER NOT NULL,
		detentions INTEGER NOT NULL,
		wrongful_detentions INTEGER NOT NULL,
		convictions INTEGER NOT NULL,
		releases INTEGER NOT NULL,
		lawful INTEGER NOT NULL,
		at_risk INTEGER NOT NULL,
		criminal INTEGER NOT NULL,
		detained INTEGER NOT NULL,
		prison INTEGER NOT NULL,
		PRIMARY KEY (run_id, day)
	);

	CREATE INDEX IF NOT EXISTS idx_tick_metrics_run ON tick_metrics(run_id);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// RunRecord describes one stored run.
type RunRecord struct {
	ID          string `db:"id"`
	CreatedAt   string `db:"created_at"`
	Seed        int64  `db:"seed"`
	HorizonDays int    `db:"horizon_days"`
	NAgents     int    `db:"n_agents"`
	ParamsYAML  string `db:"params_yaml"`
}

// SaveRun stores a completed run and its metrics series, returning the new
// run id.
func (db *DB) SaveRun(seed int64, horizonDays, nAgents int, paramsYAML string, records []engine.TickRecord) (string, error) {
	id := uuid.NewString()

	tx, err := db.conn.Beginx()
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		"INSERT INTO runs (id, created_at, seed, horizon_days, n_agents, params_yaml) VALUES (?, ?, ?, ?, ?, ?)",
		id, time.Now().UTC().Format(time.RFC3339), seed, horizonDays, nAgents, paramsYAML,
	)
	if err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}

	stmt, err := tx.Preparex(`INSERT INTO tick_metrics
		(run_id, day, crime_events, detentions, wrongful_detentions, convictions, releases,
		 lawful, at_risk, criminal, detained, prison)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return "", err
	}
	defer stmt.Close()

	for _, r := range records {
		_, err := stmt.Exec(
			id, r.Day, r.CrimeEvents, r.Detentions, r.WrongfulDetentions,
			r.Convictions, r.Releases,
			r.Counts[agents.StatusLawful], r.Counts[agents.StatusAtRisk],
			r.Counts[agents.StatusCriminal], r.Counts[agents.StatusDetained],
			r.Counts[agents.StatusPrison],
		)
		if err != nil {
			return "", fmt.Errorf("insert day %d: %w", r.Day, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", err
	}

	slog.Info("run saved", "run_id", id, "days", len(records))
	return id, nil
}

type metricsRow struct {
	Day                int `db:"day"`
	CrimeEvents        int `db:"crime_events"`
	Detentions         int `db:"detentions"`
	WrongfulDetentions int `db:"wrongful_detentions"`
	Convictions        int `db:"convictions"`
	Releases           int `db:"releases"`
	Lawful             int `db:"lawful"`
	AtRisk             int `db:"at_risk"`
	Criminal           int `db:"criminal"`
	Detained           int `db:"detained"`
	Prison             int `db:"prison"`
}

// LoadMetrics reloads the ordered metrics series of a stored run.
func (db *DB) LoadMetrics(runID string) ([]engine.TickRecord, error) {
	var rows []metricsRow
	err := db.conn.Select(&rows,
		"SELECT day, crime_events, detentions, wrongful_detentions, convictions, releases, lawful, at_risk, criminal, detained, prison FROM tick_metrics WHERE run_id = ? ORDER BY day",
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("load metrics for %s: %w", runID, err)
	}

	out := make([]engine.TickRecord, 0, len(rows))
	for _, m := range rows {
		rec := engine.TickRecord{
			Day:                m.Day,
			CrimeEvents:        m.CrimeEvents,
			Detentions:         m.Detentions,
			WrongfulDetentions: m.WrongfulDetentions,
			Convictions:        m.Convictions,
			Releases:           m.Releases,
			Population:         m.Lawful + m.AtRisk + m.Criminal + m.Detained + m.Prison,
		}
		rec.Counts[agents.StatusLawful] = m.Lawful
		rec.Counts[agents.StatusAtRisk] = m.AtRisk
		rec.Counts[agents.StatusCriminal] = m.Criminal
		rec.Counts[agents.StatusDetained] = m.Detained
		rec.Counts[agents.StatusPrison] = m.Prison
		out = append(out, rec)
	}
	return out, nil
}

// RecentRuns returns the most recently stored runs, newest first.
func (db *DB) RecentRuns(limit int) ([]RunRecord, error) {
	var runs []RunRecord
	err := db.conn.Select(&runs,
		"SELECT id, created_at, seed, horizon_days, n_agents, params_yaml FROM runs ORDER BY created_at DESC LIMIT ?",
		limit,
	)
	return runs, err
}
