package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default().Validate() error = %v", err)
	}
}

func TestValidateRejections(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"zero population", func(c *Config) { c.Model.NAgents = 0 }, "n_agents"},
		{"attachment too large", func(c *Config) { c.Model.SFm = 600 }, "sf_m"},
		{"zero horizon", func(c *Config) { c.Simulation.HorizonDays = 0 }, "horizon_days"},
		{"zero window", func(c *Config) { c.Model.EvidenceWindowDays = 0 }, "evidence_window"},
		{"negative coercive capacity", func(c *Config) { c.Model.CoerciveCapacity = -0.1 }, "coercive_capacity"},
		{"forensic capacity above one", func(c *Config) { c.Model.ForensicCapacity = 1.5 }, "forensic_capacity"},
		{"shares exceed one", func(c *Config) {
			c.Model.InitialCriminalShare = 0.7
			c.Model.InitialAtRiskShare = 0.7
		}, "initial shares"},
		{"zero detention mean", func(c *Config) { c.Model.DetentionDaysMean = 0 }, "detention_days_mean"},
		{"drop prob out of range", func(c *Config) { c.Model.Rewiring.DropLawfulEdgeProb = 2 }, "drop_lawful_edge_prob"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("Validate() = nil, want error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Errorf("error %q does not mention %q", err, tc.want)
			}
		})
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	doc := `
simulation:
  seed: 99
  horizon_days: 30
model:
  n_agents: 120
  forensic_capacity: 0.55
  rewiring:
    enabled: false
`
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Simulation.Seed != 99 {
		t.Errorf("Seed = %d, want 99", cfg.Simulation.Seed)
	}
	if cfg.Model.NAgents != 120 {
		t.Errorf("NAgents = %d, want 120", cfg.Model.NAgents)
	}
	if cfg.Model.ForensicCapacity != 0.55 {
		t.Errorf("ForensicCapacity = %g, want 0.55", cfg.Model.ForensicCapacity)
	}
	if cfg.Model.Rewiring.Enabled {
		t.Error("Rewiring.Enabled = true, want overridden false")
	}
	// Untouched keys keep their defaults.
	if cfg.Model.CrimeBaseRate != 0.05 {
		t.Errorf("CrimeBaseRate = %g, want default 0.05", cfg.Model.CrimeBaseRate)
	}
}

func TestLoadRejectsInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yml")
	if err := os.WriteFile(path, []byte("model:\n  n_agents: -4\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("Load() of invalid config = nil error, want rejection")
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yml")); err == nil {
		t.Fatal("Load() of missing file = nil error")
	}
}
