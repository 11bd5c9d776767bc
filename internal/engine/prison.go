// Prison — sentence countdown, release back to AT_RISK, and the latched
// congestion policy that shortens sentences when the prison overflows.
package engine

import (
	"log/slog"

	"github.com/talgya/crimenet/internal/agents"
)

// processPrison counts down sentences and releases agents whose time is
// served. Criminal capital was already raised at prison entry; release adds
// only the small reintegration increment.
func (s *Simulation) processPrison() error {
	m := &s.cfg.Model

	for _, a := range s.Agents {
		if a.Status != agents.StatusPrison || s.enteredToday[a.ID] {
			continue
		}

		a.DaysLeft--
		if a.DaysLeft > 0 {
			continue
		}

		if err := a.Transition(agents.StatusAtRisk); err != nil {
			return err
		}
		a.DaysLeft = 0
		a.AddCriminalCapital(m.ReleaseCriminalCapitalIncrement)
		s.releasesToday++
	}

	s.applyCongestion()
	return nil
}

// applyCongestion shortens every remaining sentence proportionally the first
// time the prison share crosses the threshold. The latch prevents the cut
// from re-applying every tick; it re-arms once the share drops back below
// the threshold.
func (s *Simulation) applyCongestion() {
	cg := &s.cfg.Model.Congestion
	if cg.Threshold <= 0 || cg.ShorteningFactor <= 0 {
		return
	}

	counts := s.countStatus()
	share := float64(counts[agents.StatusPrison]) / float64(len(s.Agents))

	if s.congestionLatched {
		if share < cg.Threshold {
			s.congestionLatched = false
		}
		return
	}
	if share <= cg.Threshold {
		return
	}

	shortened := 0
	for _, a := range s.Agents {
		if a.Status != agents.StatusPrison {
			continue
		}
		a.DaysLeft = int(float64(a.DaysLeft) * (1.0 - cg.ShorteningFactor))
		if a.DaysLeft < 1 {
			a.DaysLeft = 1
		}
		shortened++
	}
	s.congestionLatched = true

	slog.Debug("prison congestion shortening applied",
		"day", s.day,
		"prison_share", share,
		"sentences_shortened", shortened,
	)
}
