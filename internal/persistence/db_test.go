package persistence

import (
	"path/filepath"
	"testing"

	"github.com/talgya/crimenet/internal/agents"
	"github.com/talgya/crimenet/internal/engine"
)

func setupTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func sampleRecords() []engine.TickRecord {
	r1 := engine.TickRecord{
		Day: 1, CrimeEvents: 4, Detentions: 2, WrongfulDetentions: 1,
		Convictions: 0, Releases: 0, Population: 100,
	}
	r1.Counts[agents.StatusLawful] = 70
	r1.Counts[agents.StatusAtRisk] = 20
	r1.Counts[agents.StatusCriminal] = 8
	r1.Counts[agents.StatusDetained] = 2

	r2 := engine.TickRecord{
		Day: 2, CrimeEvents: 3, Detentions: 1, WrongfulDetentions: 0,
		Convictions: 1, Releases: 1, Population: 100,
	}
	r2.Counts[agents.StatusLawful] = 69
	r2.Counts[agents.StatusAtRisk] = 21
	r2.Counts[agents.StatusCriminal] = 7
	r2.Counts[agents.StatusDetained] = 2
	r2.Counts[agents.StatusPrison] = 1

	return []engine.TickRecord{r1, r2}
}

func TestSaveAndLoadRun(t *testing.T) {
	db := setupTestDB(t)

	records := sampleRecords()
	runID, err := db.SaveRun(42, 2, 100, "model:\n  n_agents: 100\n", records)
	if err != nil {
		t.Fatalf("SaveRun() error = %v", err)
	}
	if runID == "" {
		t.Fatal("SaveRun() returned empty run id")
	}

	loaded, err := db.LoadMetrics(runID)
	if err != nil {
		t.Fatalf("LoadMetrics() error = %v", err)
	}
	if len(loaded) != len(records) {
		t.Fatalf("loaded %d records, want %d", len(loaded), len(records))
	}
	for i := range records {
		if loaded[i] != records[i] {
			t.Errorf("record %d differs:\n  got  %+v\n  want %+v", i, loaded[i], records[i])
		}
	}
}

func TestRecentRuns(t *testing.T) {
	db := setupTestDB(t)

	if _, err := db.SaveRun(1, 2, 50, "a", sampleRecords()); err != nil {
		t.Fatal(err)
	}
	if _, err := db.SaveRun(2, 2, 60, "b", sampleRecords()); err != nil {
		t.Fatal(err)
	}

	runs, err := db.RecentRuns(10)
	if err != nil {
		t.Fatalf("RecentRuns() error = %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("RecentRuns() = %d runs, want 2", len(runs))
	}
	for _, r := range runs {
		if r.ID == "" || r.CreatedAt == "" {
			t.Errorf("run missing identity fields: %+v", r)
		}
	}

	runs, err = db.RecentRuns(1)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 {
		t.Errorf("RecentRuns(1) = %d runs, want 1", len(runs))
	}
}

func TestLoadMetricsUnknownRun(t *testing.T) {
	db := setupTestDB(t)

	records, err := db.LoadMetrics("no-such-run")
	if err != nil {
		t.Fatalf("LoadMetrics() error = %v, want empty result", err)
	}
	if len(records) != 0 {
		t.Errorf("LoadMetrics() = %d records, want 0", len(records))
	}
}
