package agents

// CrimeWindow is a fixed-capacity ring of daily offence flags.
// It always holds exactly the last N days: pushing the newest day overwrites
// the oldest in a single operation, so the window length never varies.
// A preallocated array replaces a growable deque — same idea as keeping
// inventories in a fixed array instead of a map.
type CrimeWindow struct {
	days  []uint8
	head  int // next slot to overwrite (the oldest entry)
	total int // running sum of days, kept in sync by Push
}

// NewCrimeWindow creates a window of n days, all initially "no crime".
// n must be at least 1.
func NewCrimeWindow(n int) *CrimeWindow {
	if n < 1 {
		n = 1
	}
	return &CrimeWindow{days: make([]uint8, n)}
}

// Push records whether the agent offended today, evicting the oldest day.
func (w *CrimeWindow) Push(offended bool) {
	w.total -= int(w.days[w.head])
	if offended {
		w.days[w.head] = 1
		w.total++
	} else {
		w.days[w.head] = 0
	}
	w.head++
	if w.head == len(w.days) {
		w.head = 0
	}
}

// Sum returns the number of offence days currently in the window.
func (w *CrimeWindow) Sum() int {
	return w.total
}

// Len returns the fixed window length N.
func (w *CrimeWindow) Len() int {
	return len(w.days)
}
