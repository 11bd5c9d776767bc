// Metrics — the per-day aggregate record and its collector. The record
// sequence is the engine's sole boundary artifact; serialization belongs to
// the callers.
package engine

import "github.com/talgya/crimenet/internal/agents"

// TickRecord is the immutable aggregate outcome of one simulated day.
type TickRecord struct {
	Day int `json:"day"`

	CrimeEvents        int `json:"crime_events"`
	Detentions         int `json:"detentions"`
	WrongfulDetentions int `json:"wrongful_detentions"`
	Convictions        int `json:"convictions"`
	Releases           int `json:"releases"`

	// Counts holds the population tally per status, indexed by Status.
	Counts [agents.NumStatuses]int `json:"counts"`

	Population int `json:"population"`
}

// Share returns the population share in the given status for this day.
func (r TickRecord) Share(st agents.Status) float64 {
	if r.Population == 0 {
		return 0
	}
	return float64(r.Counts[st]) / float64(r.Population)
}

// Collector accumulates the ordered tick series for a run.
type Collector struct {
	records []TickRecord
}

// NewCollector creates an empty collector.
func NewCollector() *Collector {
	return &Collector{}
}

// Add appends a completed day's record.
func (c *Collector) Add(r TickRecord) {
	c.records = append(c.records, r)
}

// Len returns the number of collected days.
func (c *Collector) Len() int {
	return len(c.records)
}

// Last returns the most recent record, or the zero record if none exist.
func (c *Collector) Last() TickRecord {
	if len(c.records) == 0 {
		return TickRecord{}
	}
	return c.records[len(c.records)-1]
}

// Records returns a copy of the full ordered series, safe to iterate any
// number of times and immune to later collection.
func (c *Collector) Records() []TickRecord {
	out := make([]TickRecord, len(c.records))
	copy(out, c.records)
	return out
}

// WrongfulRate returns the share of all detentions across the series that
// were wrongful, or zero when no detentions occurred.
func WrongfulRate(records []TickRecord) float64 {
	detentions, wrongful := 0, 0
	for _, r := range records {
		detentions += r.Detentions
		wrongful += r.WrongfulDetentions
	}
	if detentions == 0 {
		return 0
	}
	return float64(wrongful) / float64(detentions)
}

// collectMetrics tallies the day into an immutable record and hands it to
// the collector.
func (s *Simulation) collectMetrics() {
	s.collector.Add(TickRecord{
		Day:                s.day,
		CrimeEvents:        s.crimesToday,
		Detentions:         s.detentionsToday,
		WrongfulDetentions: s.wrongfulToday,
		Convictions:        s.convictionsToday,
		Releases:           s.releasesToday,
		Counts:             s.countStatus(),
		Population:         len(s.Agents),
	})
}
