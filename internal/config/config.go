// Package config loads and validates simulation parameters from YAML.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the full parameter set for one simulation run.
type Config struct {
	Simulation Simulation `yaml:"simulation"`
	Model      Model      `yaml:"model"`
}

// Simulation holds run-level controls.
type Simulation struct {
	Seed        int64 `yaml:"seed"`
	HorizonDays int   `yaml:"horizon_days"`
}

// Model holds the behavioral and institutional parameters.
type Model struct {
	NAgents int `yaml:"n_agents"`
	SFm     int `yaml:"sf_m"` // scale-free attachment count

	// Initial states.
	InitialCriminalShare float64 `yaml:"initial_criminal_share"`
	InitialAtRiskShare   float64 `yaml:"initial_at_risk_share"`

	// Behavior.
	PeerInfluenceWeight float64 `yaml:"peer_influence_weight"`
	RiskThreshold       float64 `yaml:"risk_threshold"`
	RiskDecayProb       float64 `yaml:"risk_decay_prob"` // AT_RISK -> LAWFUL, 0 disables
	CrimeBaseRate       float64 `yaml:"crime_base_rate"`

	// Institutions.
	CoerciveCapacity       float64 `yaml:"coercive_capacity"`
	ForensicCapacity       float64 `yaml:"forensic_capacity"`
	DetentionDaysMean      int     `yaml:"detention_days_mean"`
	ConvictionBaseProb     float64 `yaml:"conviction_base_prob"`
	PrisonSentenceDaysMean int     `yaml:"prison_sentence_days_mean"`

	// Criminogenic effects, each applied once per entry/exit event.
	DetentionStigmaIncrement          float64 `yaml:"detention_stigma_increment"`
	DetentionCriminalCapitalIncrement float64 `yaml:"detention_criminal_capital_increment"`
	PrisonCriminalCapitalIncrement    float64 `yaml:"prison_criminal_capital_increment"`
	ReleaseCriminalCapitalIncrement   float64 `yaml:"release_criminal_capital_increment"`

	// Evidence proxy.
	EvidenceWindowDays int `yaml:"evidence_window_days"`

	Rewiring   Rewiring   `yaml:"rewiring"`
	Congestion Congestion `yaml:"congestion"`
}

// Rewiring controls incarceration-triggered tie mutation.
type Rewiring struct {
	Enabled             bool    `yaml:"enabled"`
	DropLawfulEdgeProb  float64 `yaml:"drop_lawful_edge_prob"`
	AddCriminalEdgeProb float64 `yaml:"add_criminal_edge_prob"`
	MaxNewEdgesPerEvent int     `yaml:"max_new_edges_per_event"`
}

// Congestion controls prison-capacity effects on sentencing.
type Congestion struct {
	// Strength discounts new sentences by strength × current prison share.
	Strength float64 `yaml:"strength"`
	// Threshold is the prison population share that, once crossed, triggers
	// a one-off proportional shortening of all remaining sentences. Zero
	// disables the shortening policy.
	Threshold        float64 `yaml:"threshold"`
	ShorteningFactor float64 `yaml:"shortening_factor"`
}

// Default returns the baseline parameterization.
func Default() *Config {
	return &Config{
		Simulation: Simulation{
			Seed:        42,
			HorizonDays: 365,
		},
		Model: Model{
			NAgents:              500,
			SFm:                  3,
			InitialCriminalShare: 0.05,
			InitialAtRiskShare:   0.20,
			PeerInfluenceWeight:  0.35,
			RiskThreshold:        0.30,
			RiskDecayProb:        0.0,
			CrimeBaseRate:        0.05,

			CoerciveCapacity:       0.03,
			ForensicCapacity:       0.70,
			DetentionDaysMean:      30,
			ConvictionBaseProb:     0.60,
			PrisonSentenceDaysMean: 180,

			DetentionStigmaIncrement:          0.10,
			DetentionCriminalCapitalIncrement: 0.15,
			PrisonCriminalCapitalIncrement:    0.20,
			ReleaseCriminalCapitalIncrement:   0.05,

			EvidenceWindowDays: 30,

			Rewiring: Rewiring{
				Enabled:             true,
				DropLawfulEdgeProb:  0.20,
				AddCriminalEdgeProb: 0.25,
				MaxNewEdgesPerEvent: 3,
			},
		},
	}
}

// Load reads a YAML config file on top of the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects impossible parameterizations before any tick executes.
func (c *Config) Validate() error {
	m := &c.Model
	switch {
	case c.Simulation.HorizonDays < 1:
		return fmt.Errorf("config: horizon_days must be >= 1, got %d", c.Simulation.HorizonDays)
	case m.NAgents < 2:
		return fmt.Errorf("config: n_agents must be >= 2, got %d", m.NAgents)
	case m.SFm < 1 || m.SFm >= m.NAgents:
		return fmt.Errorf("config: sf_m must satisfy 1 <= m < n_agents, got %d", m.SFm)
	case m.EvidenceWindowDays < 1:
		return fmt.Errorf("config: evidence_window_days must be >= 1, got %d", m.EvidenceWindowDays)
	case m.DetentionDaysMean < 1:
		return fmt.Errorf("config: detention_days_mean must be >= 1, got %d", m.DetentionDaysMean)
	case m.PrisonSentenceDaysMean < 1:
		return fmt.Errorf("config: prison_sentence_days_mean must be >= 1, got %d", m.PrisonSentenceDaysMean)
	case m.CoerciveCapacity < 0:
		return fmt.Errorf("config: coercive_capacity must be >= 0, got %g", m.CoerciveCapacity)
	case m.InitialCriminalShare+m.InitialAtRiskShare > 1:
		return fmt.Errorf("config: initial shares sum to %g > 1",
			m.InitialCriminalShare+m.InitialAtRiskShare)
	case m.Rewiring.MaxNewEdgesPerEvent < 0:
		return fmt.Errorf("config: max_new_edges_per_event must be >= 0, got %d", m.Rewiring.MaxNewEdgesPerEvent)
	}

	unit := []struct {
		name string
		val  float64
	}{
		{"initial_criminal_share", m.InitialCriminalShare},
		{"initial_at_risk_share", m.InitialAtRiskShare},
		{"peer_influence_weight", m.PeerInfluenceWeight},
		{"risk_threshold", m.RiskThreshold},
		{"risk_decay_prob", m.RiskDecayProb},
		{"crime_base_rate", m.CrimeBaseRate},
		{"forensic_capacity", m.ForensicCapacity},
		{"conviction_base_prob", m.ConvictionBaseProb},
		{"detention_stigma_increment", m.DetentionStigmaIncrement},
		{"detention_criminal_capital_increment", m.DetentionCriminalCapitalIncrement},
		{"prison_criminal_capital_increment", m.PrisonCriminalCapitalIncrement},
		{"release_criminal_capital_increment", m.ReleaseCriminalCapitalIncrement},
		{"drop_lawful_edge_prob", m.Rewiring.DropLawfulEdgeProb},
		{"add_criminal_edge_prob", m.Rewiring.AddCriminalEdgeProb},
		{"congestion.strength", m.Congestion.Strength},
		{"congestion.threshold", m.Congestion.Threshold},
		{"congestion.shortening_factor", m.Congestion.ShorteningFactor},
	}
	for _, u := range unit {
		if u.val < 0 || u.val > 1 {
			return fmt.Errorf("config: %s must be in [0,1], got %g", u.name, u.val)
		}
	}

	return nil
}
