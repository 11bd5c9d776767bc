// Network rewiring — incarceration events dissolve lawful ties and forge
// criminal ones. Fires exactly once per detention or prison entry.
package engine

import "github.com/talgya/crimenet/internal/agents"

// processRewiring drains the queue of agents who entered detention or prison
// this tick. For each: some edges to LAWFUL neighbors are dropped, and up to
// MaxNewEdgesPerEvent edges to current CRIMINAL agents are added. Graph
// invariants (no self-loops, no duplicate edges) hold throughout because the
// substrate rejects both.
func (s *Simulation) processRewiring() {
	rw := &s.cfg.Model.Rewiring
	if !rw.Enabled {
		s.rewireQueue = s.rewireQueue[:0]
		return
	}

	for _, id := range s.rewireQueue {
		s.rewireOne(id)
	}
	s.rewireQueue = s.rewireQueue[:0]
}

func (s *Simulation) rewireOne(id int) {
	rw := &s.cfg.Model.Rewiring

	// Social ties to the lawful decay on incarceration.
	for _, nbr := range s.Graph.Neighbors(id) {
		if s.Agents[nbr].Status == agents.StatusLawful && s.rng.Float64() < rw.DropLawfulEdgeProb {
			s.Graph.RemoveEdge(id, nbr)
		}
	}

	// New criminal ties: bounded attempts so a saturated neighborhood
	// cannot spin forever.
	var criminals []int
	for _, a := range s.Agents {
		if a.Status == agents.StatusCriminal && a.ID != id {
			criminals = append(criminals, a.ID)
		}
	}
	if len(criminals) == 0 || rw.MaxNewEdgesPerEvent == 0 {
		return
	}

	added := 0
	for attempts := 0; added < rw.MaxNewEdgesPerEvent && attempts < rw.MaxNewEdgesPerEvent*5; attempts++ {
		if s.rng.Float64() >= rw.AddCriminalEdgeProb {
			continue
		}
		cand := criminals[s.rng.Intn(len(criminals))]
		if s.Graph.AddEdge(id, cand) {
			added++
		}
	}
}
