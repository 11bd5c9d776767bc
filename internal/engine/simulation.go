// Package engine provides the daily tick loop of the crime-dynamics model:
// social influence, offending, policing, judicial outcomes, prison, and
// incarceration-driven network rewiring, in a fixed phase order.
package engine

import (
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/talgya/crimenet/internal/agents"
	"github.com/talgya/crimenet/internal/config"
	"github.com/talgya/crimenet/internal/netgraph"
)

// Simulation holds the complete run state: population, network, the single
// seeded randomness source, and per-tick counters. All mutable run state
// lives here, so independent replicates can run side by side in one process.
type Simulation struct {
	cfg *config.Config
	rng *rand.Rand

	Graph  *netgraph.Graph
	Agents []*agents.Agent

	day int // most recent completed day, 1-based

	// Daily counters, reset at tick start.
	crimesToday      int
	detentionsToday  int
	wrongfulToday    int
	convictionsToday int
	releasesToday    int

	// snapshot freezes every agent's status at tick start so that
	// peer-exposure reads are independent of iteration order within a phase.
	snapshot []agents.Status

	// enteredToday marks agents that entered detention or prison this tick;
	// their countdown starts on the next tick and their rewiring fires once.
	enteredToday []bool
	rewireQueue  []int

	// congestionLatched arms the one-off sentence shortening; it re-arms
	// only after the prison share falls back under the threshold.
	congestionLatched bool

	collector *Collector
}

// NewSimulation validates the configuration, generates the scale-free
// network, and creates the initial population. Fails before any tick runs
// if the configuration is unusable.
func NewSimulation(cfg *config.Config) (*Simulation, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	m := &cfg.Model
	rng := rand.New(rand.NewSource(cfg.Simulation.Seed))

	g, err := netgraph.ScaleFree(m.NAgents, m.SFm, rng)
	if err != nil {
		return nil, err
	}

	pop := make([]*agents.Agent, m.NAgents)
	for i := range pop {
		status := agents.StatusLawful
		u := rng.Float64()
		if u < m.InitialCriminalShare {
			status = agents.StatusCriminal
		} else if u < m.InitialCriminalShare+m.InitialAtRiskShare {
			status = agents.StatusAtRisk
		}

		// Heterogeneity: propensity ~ N(0.15, 0.05), clamped to [0,1].
		prop := clamp01(0.15 + 0.05*rng.NormFloat64())
		pop[i] = agents.New(i, status, prop, m.EvidenceWindowDays)
	}

	return &Simulation{
		cfg:          cfg,
		rng:          rng,
		Graph:        g,
		Agents:       pop,
		snapshot:     make([]agents.Status, m.NAgents),
		enteredToday: make([]bool, m.NAgents),
		collector:    NewCollector(),
	}, nil
}

// Collector returns the accumulated per-tick metrics series.
func (s *Simulation) Collector() *Collector {
	return s.collector
}

// Day returns the most recently completed simulated day.
func (s *Simulation) Day() int {
	return s.day
}

// Run executes the configured horizon. The run either completes every day or
// aborts entirely on the first invariant violation.
func (s *Simulation) Run() error {
	horizon := s.cfg.Simulation.HorizonDays
	slog.Info("simulation started",
		"agents", len(s.Agents),
		"edges", s.Graph.EdgeCount(),
		"horizon_days", horizon,
		"seed", s.cfg.Simulation.Seed,
	)

	for day := 1; day <= horizon; day++ {
		if err := s.Step(); err != nil {
			return fmt.Errorf("day %d: %w", day, err)
		}
	}

	last := s.collector.Last()
	slog.Info("simulation finished",
		"days", s.day,
		"share_criminal", fmt.Sprintf("%.3f", last.Share(agents.StatusCriminal)),
		"share_detained", fmt.Sprintf("%.3f", last.Share(agents.StatusDetained)),
		"share_prison", fmt.Sprintf("%.3f", last.Share(agents.StatusPrison)),
	)
	return nil
}

// Step advances the simulation by one day, running the seven phases in
// their fixed order. Reordering phases changes emergent dynamics, so the
// sequence here is part of the model, not an implementation detail.
func (s *Simulation) Step() error {
	s.day++
	s.beginDay()

	if err := s.processSocialInfluence(); err != nil {
		return err
	}
	s.processCrimeGeneration()
	if err := s.processPolicing(); err != nil {
		return err
	}
	if err := s.processDetention(); err != nil {
		return err
	}
	if err := s.processPrison(); err != nil {
		return err
	}
	s.processRewiring()
	s.collectMetrics()

	rec := s.collector.Last()
	slog.Debug("daily report",
		"day", s.day,
		"crimes", rec.CrimeEvents,
		"detentions", rec.Detentions,
		"wrongful", rec.WrongfulDetentions,
		"convictions", rec.Convictions,
		"releases", rec.Releases,
		"criminal", rec.Counts[agents.StatusCriminal],
		"detained", rec.Counts[agents.StatusDetained],
		"prison", rec.Counts[agents.StatusPrison],
	)
	return nil
}

// beginDay resets daily counters and freezes the prior-tick status snapshot.
func (s *Simulation) beginDay() {
	s.crimesToday = 0
	s.detentionsToday = 0
	s.wrongfulToday = 0
	s.convictionsToday = 0
	s.releasesToday = 0
	s.rewireQueue = s.rewireQueue[:0]

	for i, a := range s.Agents {
		s.snapshot[i] = a.Status
		s.enteredToday[i] = false
		a.CrimeToday = 0
	}
}

// criminalNeighborShare returns the fraction of an agent's neighbors that
// were CRIMINAL at tick start. Agents without ties have zero peer exposure.
func (s *Simulation) criminalNeighborShare(id int) float64 {
	nbrs := s.Graph.Neighbors(id)
	if len(nbrs) == 0 {
		return 0
	}
	criminal := 0
	for _, nbr := range nbrs {
		if s.snapshot[nbr] == agents.StatusCriminal {
			criminal++
		}
	}
	return float64(criminal) / float64(len(nbrs))
}

// countStatus tallies the current population by status.
func (s *Simulation) countStatus() [agents.NumStatuses]int {
	var counts [agents.NumStatuses]int
	for _, a := range s.Agents {
		counts[a.Status]++
	}
	return counts
}

// expDays draws an exponential duration with the given mean, floored at one
// day so countdowns always start positive.
func (s *Simulation) expDays(mean int) int {
	d := int(s.rng.ExpFloat64() * float64(mean))
	if d < 1 {
		d = 1
	}
	return d
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
