// Crime generation — daily offending by CRIMINAL agents and maintenance of
// every agent's rolling evidence window.
package engine

import "github.com/talgya/crimenet/internal/agents"

// processCrimeGeneration lets each CRIMINAL agent independently attempt an
// offence, then folds today's outcome into every agent's crime history.
// Non-criminals (including the incarcerated) record a "no crime" day so the
// window stays aligned across the whole population.
func (s *Simulation) processCrimeGeneration() {
	m := &s.cfg.Model

	for _, a := range s.Agents {
		if a.Status == agents.StatusCriminal {
			peer := s.criminalNeighborShare(a.ID)
			p := clamp01(m.CrimeBaseRate + 0.25*a.CriminalCapital + 0.10*peer)
			if s.rng.Float64() < p {
				a.CrimeToday++
				s.crimesToday++
			}
		}
	}

	for _, a := range s.Agents {
		a.History.Push(a.CrimeToday > 0)
	}
}
