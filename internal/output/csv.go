// Package output writes run results for external analysis: a per-day CSV
// series plus a companion YAML of the exact parameters used.
package output

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/talgya/crimenet/internal/agents"
	"github.com/talgya/crimenet/internal/config"
	"github.com/talgya/crimenet/internal/engine"
)

// SafeFloat renders a float for use in filenames: 0.55 -> "0p55".
func SafeFloat(x float64) string {
	s := strconv.FormatFloat(x, 'f', 3, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimRight(s, ".")
	return strings.ReplaceAll(s, ".", "p")
}

// Filename builds the results filename from the key parameters, so a
// directory of experiments stays self-describing.
func Filename(cfg *config.Config, ts time.Time) string {
	m := &cfg.Model
	parts := []string{
		ts.Format("20060102-150405"),
		fmt.Sprintf("n%d", m.NAgents),
		fmt.Sprintf("m%d", m.SFm),
		"fc" + SafeFloat(m.ForensicCapacity),
		"cc" + SafeFloat(m.CoerciveCapacity),
		fmt.Sprintf("det%d", m.DetentionDaysMean),
		fmt.Sprintf("evw%d", m.EvidenceWindowDays),
	}
	return strings.Join(parts, "__") + ".csv"
}

var csvHeader = []string{
	"day", "crime_events", "detentions", "wrongful_detentions",
	"convictions", "releases",
	"lawful", "at_risk", "criminal", "detained", "prison",
	"share_criminal", "share_detained", "share_prison",
}

// WriteCSV writes the metrics series to path.
func WriteCSV(path string, records []engine.TickRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return err
	}

	for _, r := range records {
		row := []string{
			strconv.Itoa(r.Day),
			strconv.Itoa(r.CrimeEvents),
			strconv.Itoa(r.Detentions),
			strconv.Itoa(r.WrongfulDetentions),
			strconv.Itoa(r.Convictions),
			strconv.Itoa(r.Releases),
			strconv.Itoa(r.Counts[agents.StatusLawful]),
			strconv.Itoa(r.Counts[agents.StatusAtRisk]),
			strconv.Itoa(r.Counts[agents.StatusCriminal]),
			strconv.Itoa(r.Counts[agents.StatusDetained]),
			strconv.Itoa(r.Counts[agents.StatusPrison]),
			strconv.FormatFloat(r.Share(agents.StatusCriminal), 'f', 6, 64),
			strconv.FormatFloat(r.Share(agents.StatusDetained), 'f', 6, 64),
			strconv.FormatFloat(r.Share(agents.StatusPrison), 'f', 6, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

// WriteParams writes the exact configuration next to the results.
func WriteParams(path string, cfg *config.Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal params: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// WriteRun writes the CSV series and its params companion into dir, creating
// the directory if needed. Returns the CSV path.
func WriteRun(dir string, cfg *config.Config, records []engine.TickRecord, ts time.Time) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	csvPath := filepath.Join(dir, Filename(cfg, ts))
	if err := WriteCSV(csvPath, records); err != nil {
		return "", err
	}

	paramsPath := strings.TrimSuffix(csvPath, ".csv") + ".yml"
	if err := WriteParams(paramsPath, cfg); err != nil {
		return "", err
	}

	return csvPath, nil
}
