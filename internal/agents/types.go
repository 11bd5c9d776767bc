// Package agents provides the per-person data model: legal status,
// criminogenic state variables, and the rolling crime-history window used as
// the judicial evidence proxy.
package agents

import "fmt"

// Status is an agent's legal state. Exactly one is active at any tick.
type Status uint8

const (
	StatusLawful   Status = iota // L — no criminal involvement
	StatusAtRisk                 // R — exposed, not yet offending
	StatusCriminal               // C — actively offending
	StatusDetained               // D — pre-trial detention
	StatusPrison                 // P — post-conviction
)

// NumStatuses is the total number of legal states.
const NumStatuses = 5

// String returns the short human-readable name of the status.
func (s Status) String() string {
	switch s {
	case StatusLawful:
		return "lawful"
	case StatusAtRisk:
		return "at_risk"
	case StatusCriminal:
		return "criminal"
	case StatusDetained:
		return "detained"
	case StatusPrison:
		return "prison"
	}
	return fmt.Sprintf("status(%d)", uint8(s))
}

// Incarcerated reports whether the status removes the agent from the street.
func (s Status) Incarcerated() bool {
	return s == StatusDetained || s == StatusPrison
}

// Agent is one person embedded in the social network. The network node key
// is the agent's ID; agents live for the whole run.
type Agent struct {
	ID     int    `json:"id"`
	Status Status `json:"status"`

	// BasePropensity is drawn once at creation and never changes.
	BasePropensity float64 `json:"base_propensity"`

	// Criminogenic state. Both only ever increase (clamped to [0,1]):
	// stigma on detention entry, criminal capital on detention release and
	// incarceration exposure.
	Stigma          float64 `json:"stigma"`
	CriminalCapital float64 `json:"criminal_capital"`

	// History is the rolling window of daily offence flags, the evidence
	// proxy consulted at trial.
	History *CrimeWindow `json:"-"`

	// DaysLeft counts down to release. Positive iff detained or imprisoned.
	DaysLeft int `json:"days_left,omitempty"`

	// CrimeToday is reset every tick and folded into History at day end.
	CrimeToday int `json:"-"`
}

// New creates an agent in the given initial status with an empty
// crime-history window of windowDays entries.
func New(id int, status Status, basePropensity float64, windowDays int) *Agent {
	return &Agent{
		ID:             id,
		Status:         status,
		BasePropensity: basePropensity,
		History:        NewCrimeWindow(windowDays),
	}
}

// IllegalTransitionError reports an attempt to move an agent between states
// the state machine does not connect. It is a programming-logic error: the
// engine aborts the run when one surfaces.
type IllegalTransitionError struct {
	AgentID int
	From    Status
	To      Status
}

func (e *IllegalTransitionError) Error() string {
	return fmt.Sprintf("agent %d: illegal transition %s -> %s", e.AgentID, e.From, e.To)
}

// legal reports whether the state machine connects from to to.
func legal(from, to Status) bool {
	switch from {
	case StatusLawful:
		return to == StatusAtRisk || to == StatusDetained
	case StatusAtRisk:
		return to == StatusCriminal || to == StatusLawful || to == StatusDetained
	case StatusCriminal:
		return to == StatusDetained
	case StatusDetained:
		return to == StatusPrison || to == StatusAtRisk
	case StatusPrison:
		return to == StatusAtRisk
	}
	return false
}

// Transition moves the agent to a new status, enforcing the state machine.
func (a *Agent) Transition(to Status) error {
	if !legal(a.Status, to) {
		return &IllegalTransitionError{AgentID: a.ID, From: a.Status, To: to}
	}
	a.Status = to
	return nil
}

// Detain puts the agent in pre-trial detention for the given number of days.
func (a *Agent) Detain(days int) error {
	if days < 1 {
		return fmt.Errorf("agent %d: detention of %d days", a.ID, days)
	}
	if err := a.Transition(StatusDetained); err != nil {
		return err
	}
	a.DaysLeft = days
	return nil
}

// Imprison convicts the agent into prison for the given sentence.
func (a *Agent) Imprison(days int) error {
	if days < 1 {
		return fmt.Errorf("agent %d: sentence of %d days", a.ID, days)
	}
	if err := a.Transition(StatusPrison); err != nil {
		return err
	}
	a.DaysLeft = days
	return nil
}

// AddStigma raises stigma by inc, clamped to 1. Negative increments are
// ignored so the accumulator never decreases.
func (a *Agent) AddStigma(inc float64) {
	if inc <= 0 {
		return
	}
	a.Stigma = clamp01(a.Stigma + inc)
}

// AddCriminalCapital raises criminal capital by inc, clamped to 1.
func (a *Agent) AddCriminalCapital(inc float64) {
	if inc <= 0 {
		return
	}
	a.CriminalCapital = clamp01(a.CriminalCapital + inc)
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
