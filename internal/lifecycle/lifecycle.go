// Package lifecycle drives the palette through its open and close phases:
// hidden, animating-in, showing, animating-out and back to hidden.
package lifecycle

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/tmux-cmdk/internal/keys"
	"github.com/atomicstack/tmux-cmdk/internal/logging/events"
	"github.com/atomicstack/tmux-cmdk/internal/store"
)

// PhaseMsg advances a transitional phase once its animation has elapsed.
type PhaseMsg struct {
	Seq  uint64
	From store.VisualState
}

// Controller owns the single phase timer and the toggle/escape bindings.
type Controller struct {
	store *store.Store
	keys  keys.KeyMap
	seq   uint64
}

// New builds a controller for s.
func New(s *store.Store, km keys.KeyMap) *Controller {
	return &Controller{store: s, keys: km}
}

// Observe schedules the timer for phase v, replacing any pending one. Stable
// phases need no timer.
func (c *Controller) Observe(v store.VisualState) tea.Cmd {
	c.seq++
	anim := c.store.Options().Animations
	var d time.Duration
	switch v {
	case store.AnimatingIn:
		d = anim.Enter
	case store.AnimatingOut:
		d = anim.Exit
	default:
		return nil
	}
	msg := PhaseMsg{Seq: c.seq, From: v}
	if d <= 0 {
		return func() tea.Msg { return msg }
	}
	return tea.Tick(d, func(time.Time) tea.Msg { return msg })
}

// Advance applies msg if it belongs to the current timer. Reaching hidden
// resets the navigation root.
func (c *Controller) Advance(msg PhaseMsg) bool {
	if msg.Seq != c.seq || c.store.State().Visual != msg.From {
		return false
	}
	switch msg.From {
	case store.AnimatingIn:
		c.store.SetVisualState(store.Showing)
	case store.AnimatingOut:
		c.store.SetVisualState(store.Hidden)
		c.store.SetCurrentRoot("")
	default:
		return false
	}
	return true
}

// HandleKey applies the toggle chord at any time and escape while the
// palette is open or opening. It reports whether the key was consumed.
func (c *Controller) HandleKey(msg tea.KeyMsg) bool {
	switch {
	case key.Matches(msg, c.keys.Toggle):
		c.Toggle(events.ReasonToggle)
		return true
	case key.Matches(msg, c.keys.Close):
		v := c.store.State().Visual
		if v != store.Showing && v != store.AnimatingIn {
			return false
		}
		c.store.SetVisualState(store.AnimatingOut)
		c.store.NotifyClose()
		events.Palette.Close(events.ReasonEscape)
		return true
	}
	return false
}

// Toggle flips the palette and fires the matching callback.
func (c *Controller) Toggle(reason events.Reason) {
	opening := !c.store.State().Visual.Opening()
	c.store.Toggle()
	if opening {
		c.store.NotifyOpen()
		events.Palette.Open(c.store.State().RootID, reason)
		return
	}
	c.store.NotifyClose()
	events.Palette.Close(reason)
}
