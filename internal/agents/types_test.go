package agents

import (
	"errors"
	"testing"
)

func TestTransitionTable(t *testing.T) {
	allowed := []struct{ from, to Status }{
		{StatusLawful, StatusAtRisk},
		{StatusLawful, StatusDetained},
		{StatusAtRisk, StatusCriminal},
		{StatusAtRisk, StatusLawful},
		{StatusAtRisk, StatusDetained},
		{StatusCriminal, StatusDetained},
		{StatusDetained, StatusPrison},
		{StatusDetained, StatusAtRisk},
		{StatusPrison, StatusAtRisk},
	}

	allowedSet := make(map[[2]Status]bool)
	for _, tr := range allowed {
		allowedSet[[2]Status{tr.from, tr.to}] = true
	}

	for from := Status(0); from < NumStatuses; from++ {
		for to := Status(0); to < NumStatuses; to++ {
			a := New(7, from, 0.1, 5)
			err := a.Transition(to)
			if allowedSet[[2]Status{from, to}] {
				if err != nil {
					t.Errorf("Transition(%s -> %s) error = %v, want nil", from, to, err)
				}
				if a.Status != to {
					t.Errorf("after %s -> %s, status = %s", from, to, a.Status)
				}
			} else {
				if err == nil {
					t.Errorf("Transition(%s -> %s) allowed, want error", from, to)
				}
				if a.Status != from {
					t.Errorf("failed transition mutated status to %s", a.Status)
				}
			}
		}
	}
}

func TestIllegalTransitionDiagnostics(t *testing.T) {
	a := New(42, StatusCriminal, 0.1, 5)
	err := a.Transition(StatusPrison) // must pass through DETAINED

	var itErr *IllegalTransitionError
	if !errors.As(err, &itErr) {
		t.Fatalf("error = %v, want *IllegalTransitionError", err)
	}
	if itErr.AgentID != 42 {
		t.Errorf("AgentID = %d, want 42", itErr.AgentID)
	}
	if itErr.From != StatusCriminal || itErr.To != StatusPrison {
		t.Errorf("transition = %s -> %s, want criminal -> prison", itErr.From, itErr.To)
	}
}

func TestDetainRequiresPositiveDuration(t *testing.T) {
	for _, days := range []int{0, -3} {
		a := New(1, StatusCriminal, 0.1, 5)
		if err := a.Detain(days); err == nil {
			t.Errorf("Detain(%d) = nil error, want rejection", days)
		}
		if a.Status != StatusCriminal {
			t.Errorf("rejected detention changed status to %s", a.Status)
		}
	}

	a := New(1, StatusCriminal, 0.1, 5)
	if err := a.Detain(10); err != nil {
		t.Fatalf("Detain(10) error = %v", err)
	}
	if a.Status != StatusDetained || a.DaysLeft != 10 {
		t.Errorf("after Detain: status=%s days=%d, want detained/10", a.Status, a.DaysLeft)
	}
}

func TestStigmaAndCapitalMonotone(t *testing.T) {
	a := New(1, StatusLawful, 0.1, 5)

	a.AddStigma(0.4)
	a.AddStigma(-1.0) // ignored
	a.AddStigma(0.8)  // clamped
	if a.Stigma != 1.0 {
		t.Errorf("stigma = %g, want 1.0", a.Stigma)
	}

	prev := 0.0
	for i := 0; i < 10; i++ {
		a.AddCriminalCapital(0.15)
		if a.CriminalCapital < prev {
			t.Fatalf("criminal capital decreased: %g -> %g", prev, a.CriminalCapital)
		}
		prev = a.CriminalCapital
	}
	if a.CriminalCapital != 1.0 {
		t.Errorf("criminal capital = %g, want clamped 1.0", a.CriminalCapital)
	}
}
