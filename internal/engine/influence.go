// Social influence — escalation along LAWFUL -> AT_RISK -> CRIMINAL driven
// by peer exposure, stigma, and criminal capital.
package engine

import "github.com/talgya/crimenet/internal/agents"

// processSocialInfluence updates the risk state of every free agent.
// Peer exposure is read from the tick-start snapshot, so the order agents
// are visited in cannot propagate contagion within a single day.
func (s *Simulation) processSocialInfluence() error {
	m := &s.cfg.Model

	for _, a := range s.Agents {
		if a.Status.Incarcerated() {
			continue
		}

		peer := s.criminalNeighborShare(a.ID)
		propensity := clamp01(a.BasePropensity +
			m.PeerInfluenceWeight*peer +
			0.25*a.Stigma +
			0.35*a.CriminalCapital)

		if a.Status == agents.StatusLawful && propensity >= m.RiskThreshold {
			if err := a.Transition(agents.StatusAtRisk); err != nil {
				return err
			}
		}

		if a.Status == agents.StatusAtRisk {
			if s.rng.Float64() < propensity {
				if err := a.Transition(agents.StatusCriminal); err != nil {
					return err
				}
			} else if m.RiskDecayProb > 0 && propensity < m.RiskThreshold &&
				s.rng.Float64() < m.RiskDecayProb {
				// Optional de-escalation back to LAWFUL when exposure stays low.
				if err := a.Transition(agents.StatusLawful); err != nil {
					return err
				}
			}
		}
	}
	return nil
}
