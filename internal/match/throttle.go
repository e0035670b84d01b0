package match

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// DefaultInterval is the minimum spacing between recomputations.
const DefaultInterval = 100 * time.Millisecond

// FlushMsg asks the model to recompute rows. Only the most recently scheduled
// flush is honoured.
type FlushMsg struct {
	Seq uint64
}

// Throttle collapses bursts of recomputation requests into at most one per
// interval.
type Throttle struct {
	interval time.Duration
	lastRun  time.Time
	seq      uint64
	now      func() time.Time
}

// NewThrottle builds a throttle; non-positive intervals fall back to the
// default.
func NewThrottle(interval time.Duration) *Throttle {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Throttle{interval: interval, now: time.Now}
}

// Schedule replaces any pending flush. The returned command fires at once when
// the last run is at least an interval old, otherwise when it will be.
func (t *Throttle) Schedule() tea.Cmd {
	t.seq++
	seq := t.seq
	wait := t.Pending()
	if wait == 0 {
		return func() tea.Msg { return FlushMsg{Seq: seq} }
	}
	return tea.Tick(wait, func(time.Time) tea.Msg { return FlushMsg{Seq: seq} })
}

// Accept reports whether msg is the current flush and records the run.
func (t *Throttle) Accept(msg FlushMsg) bool {
	if msg.Seq != t.seq {
		return false
	}
	t.lastRun = t.now()
	return true
}

// Pending reports the delay a Schedule call would wait right now.
func (t *Throttle) Pending() time.Duration {
	wait := t.interval - t.now().Sub(t.lastRun)
	if wait < 0 {
		return 0
	}
	return wait
}
