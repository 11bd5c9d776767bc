// Policing — arrest attempts sized by coercive capacity, targeted with
// accuracy set by forensic capacity. Low forensic capacity shifts arrests
// onto the innocent, which is where wrongful detentions come from.
package engine

import "github.com/talgya/crimenet/internal/agents"

// processPolicing draws arrest attempts and detains the selected targets.
// Pools are built once at phase start; a target already taken this phase
// consumes the attempt without an arrest. An empty street simply yields zero
// arrests, never an error.
func (s *Simulation) processPolicing() error {
	m := &s.cfg.Model

	attempts := int(m.CoerciveCapacity * float64(len(s.Agents)))
	if attempts <= 0 {
		return nil
	}

	var criminals, others []*agents.Agent
	for _, a := range s.Agents {
		switch a.Status {
		case agents.StatusCriminal:
			criminals = append(criminals, a)
		case agents.StatusLawful, agents.StatusAtRisk:
			others = append(others, a)
		}
	}

	for i := 0; i < attempts; i++ {
		var target *agents.Agent
		wrongful := false

		if s.rng.Float64() < m.ForensicCapacity && len(criminals) > 0 {
			target = criminals[s.rng.Intn(len(criminals))]
		} else {
			if len(others) == 0 {
				continue
			}
			target = others[s.rng.Intn(len(others))]
			wrongful = true
		}

		if target.Status.Incarcerated() {
			continue // already taken earlier this phase
		}

		days := s.expDays(m.DetentionDaysMean)
		if err := target.Detain(days); err != nil {
			return err
		}
		target.AddStigma(m.DetentionStigmaIncrement)

		s.detentionsToday++
		if wrongful {
			s.wrongfulToday++
		}
		s.markIncarcerationEntry(target.ID)
	}

	return nil
}

// markIncarcerationEntry records a detention/prison entry event: the agent's
// countdown starts next tick and exactly one rewiring event is queued.
func (s *Simulation) markIncarcerationEntry(id int) {
	s.enteredToday[id] = true
	s.rewireQueue = append(s.rewireQueue, id)
}
