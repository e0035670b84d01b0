package store

import (
	"time"

	"github.com/atomicstack/tmux-cmdk/internal/action"
)

// VisualState is the palette's open/close animation phase.
type VisualState string

const (
	Hidden       VisualState = "hidden"
	AnimatingIn  VisualState = "animating-in"
	Showing      VisualState = "showing"
	AnimatingOut VisualState = "animating-out"
)

// Visible reports whether the palette should be drawn.
func (v VisualState) Visible() bool {
	return v != Hidden
}

// Opening reports whether the palette is open or on its way there.
func (v VisualState) Opening() bool {
	return v == AnimatingIn || v == Showing
}

// State is the single source of truth shared by every palette component.
type State struct {
	Search string
	// RootID is the current navigation root; empty means the top level.
	RootID      string
	Visual      VisualState
	Actions     action.Snapshot
	ActiveIndex int
}

// Root resolves the current navigation root node.
func (s State) Root() *action.Node {
	if s.RootID == "" {
		return nil
	}
	n, _ := s.Actions.Get(s.RootID)
	return n
}

// Animations configures how long each transitional phase lasts.
type Animations struct {
	Enter time.Duration
	Exit  time.Duration
}

// Callbacks are invoked as the palette opens, closes, searches and selects.
type Callbacks struct {
	OnOpen         func()
	OnClose        func()
	OnQueryChange  func(query string)
	OnSelectAction func(node *action.Node)
}

// Options tune a Store.
type Options struct {
	Animations Animations
	Callbacks  Callbacks
}

func (c Callbacks) open() {
	if c.OnOpen != nil {
		c.OnOpen()
	}
}

func (c Callbacks) close() {
	if c.OnClose != nil {
		c.OnClose()
	}
}

func (c Callbacks) query(q string) {
	if c.OnQueryChange != nil {
		c.OnQueryChange(q)
	}
}

func (c Callbacks) selectAction(n *action.Node) {
	if c.OnSelectAction != nil {
		c.OnSelectAction(n)
	}
}
