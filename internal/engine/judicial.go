// Judicial outcomes — conviction or release at the end of pre-trial
// detention. The court never sees ground truth, only the evidence proxy:
// offence density in the agent's rolling crime-history window.
package engine

import "github.com/talgya/crimenet/internal/agents"

// processDetention counts down every detained agent and resolves the
// judicial outcome when detention expires. Conviction sends the agent to
// prison; release returns them to AT_RISK. Either way detention itself is
// criminogenic: criminal capital rises exactly once per outcome event.
func (s *Simulation) processDetention() error {
	m := &s.cfg.Model

	for _, a := range s.Agents {
		if a.Status != agents.StatusDetained || s.enteredToday[a.ID] {
			continue
		}

		a.DaysLeft--
		if a.DaysLeft > 0 {
			continue
		}

		if s.rng.Float64() < s.convictionProb(a) {
			sentence := s.sentenceDays()
			if err := a.Imprison(sentence); err != nil {
				return err
			}
			a.AddCriminalCapital(m.PrisonCriminalCapitalIncrement)
			s.convictionsToday++
			s.markIncarcerationEntry(a.ID)
		} else {
			if err := a.Transition(agents.StatusAtRisk); err != nil {
				return err
			}
			a.DaysLeft = 0
			a.AddCriminalCapital(m.DetentionCriminalCapitalIncrement)
			s.releasesToday++
		}
	}

	return nil
}

// convictionProb maps forensic capacity and the evidence proxy to a
// conviction probability. Zero recent offences still leaves a floor of
// evidence strength, so the innocent can be convicted too.
func (s *Simulation) convictionProb(a *agents.Agent) float64 {
	m := &s.cfg.Model

	recent := float64(a.History.Sum())
	denom := float64(m.EvidenceWindowDays) * 0.15
	if denom < 1 {
		denom = 1
	}
	evidence := 0.35 + 0.65*clamp01(recent/denom)

	return clamp01(m.ConvictionBaseProb * m.ForensicCapacity * evidence)
}

// sentenceDays draws a prison sentence, discounted when the prison is
// already crowded (congestion strength × current prison share).
func (s *Simulation) sentenceDays() int {
	m := &s.cfg.Model

	days := s.expDays(m.PrisonSentenceDaysMean)
	if m.Congestion.Strength > 0 {
		counts := s.countStatus()
		share := float64(counts[agents.StatusPrison]) / float64(len(s.Agents))
		days = int(float64(days) * (1.0 - m.Congestion.Strength*share))
		if days < 1 {
			days = 1
		}
	}
	return days
}
