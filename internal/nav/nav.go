// Package nav moves the active row through the rendered results and commits
// selections.
package nav

import (
	"github.com/atomicstack/tmux-cmdk/internal/action"
	"github.com/atomicstack/tmux-cmdk/internal/logging/events"
	"github.com/atomicstack/tmux-cmdk/internal/match"
	"github.com/atomicstack/tmux-cmdk/internal/store"
	"github.com/atomicstack/tmux-cmdk/internal/virtual"
)

// Viewport is the scrolling surface the rows are drawn into.
type Viewport interface {
	ScrollToIndex(i int, align virtual.Align)
}

// Controller turns key and pointer input into active-index changes and
// commits. The active index itself lives in the store.
type Controller struct {
	store    *store.Store
	viewport Viewport
	rows     []match.Row
	armed    bool
}

// New builds a controller over s. viewport may be nil.
func New(s *store.Store, viewport Viewport) *Controller {
	return &Controller{store: s, viewport: viewport}
}

// Rows returns the rows currently navigated.
func (c *Controller) Rows() []match.Row {
	return c.rows
}

// SetRows replaces the visible rows. A different row sequence resets the
// active index to the first selectable row.
func (c *Controller) SetRows(rows []match.Row) {
	changed := !sameRows(c.rows, rows)
	c.rows = rows
	if !changed {
		return
	}
	first := match.FirstSelectable(rows)
	if first < 0 {
		first = 0
	}
	c.setActive(first)
}

// Mount suppresses pointer hover until the pointer moves again.
func (c *Controller) Mount() {
	c.armed = false
}

// MoveUp steps the active row up, skipping a header.
func (c *Controller) MoveUp() {
	c.step(-1)
}

// MoveDown steps the active row down, skipping a header.
func (c *Controller) MoveDown() {
	c.step(1)
}

func (c *Controller) step(dir int) {
	if len(c.rows) == 0 {
		return
	}
	next := c.store.State().ActiveIndex + dir
	if c.inRange(next) && c.rows[next].IsHeader() {
		next += dir
	}
	if !c.inRange(next) || c.rows[next].IsHeader() {
		return
	}
	c.setActive(next)
}

// PointerMoved reports pointer motion over row i. The first motion after
// Mount only arms hovering.
func (c *Controller) PointerMoved(i int) {
	if !c.armed {
		c.armed = true
		return
	}
	c.Hover(i)
}

// Hover activates row i once the pointer has moved since mount.
func (c *Controller) Hover(i int) {
	if !c.armed || !c.selectable(i) {
		return
	}
	if c.store.State().ActiveIndex == i {
		return
	}
	c.setActive(i)
}

// CommitAt activates and commits row i.
func (c *Controller) CommitAt(i int) {
	if !c.selectable(i) {
		return
	}
	c.setActive(i)
	c.Commit()
}

// Commit executes the active row: parents become the navigation root, leaves
// run their command and close the palette.
func (c *Controller) Commit() {
	n := c.Active()
	if n == nil {
		return
	}
	if n.HasChildren() || n.Command == nil {
		events.Nav.Drill(n.ID)
		c.store.SetSearch("")
		c.store.SetCurrentRoot(n.ID)
		c.store.NotifySelect(n)
		return
	}
	n.Command.Perform()
	c.store.NotifySelect(n)
	c.store.Toggle()
	events.Palette.Close(events.ReasonCommit)
}

// Back pops the navigation root to its parent when the search is empty. It
// reports whether the root changed.
func (c *Controller) Back() bool {
	st := c.store.State()
	if st.Search != "" || st.RootID == "" {
		return false
	}
	parent := ""
	if p := st.Root().ParentNode(); p != nil {
		parent = p.ID
	}
	events.Nav.Back(st.RootID, parent)
	c.store.SetCurrentRoot(parent)
	return true
}

// Active returns the action under the active index, if any.
func (c *Controller) Active() *action.Node {
	i := c.store.State().ActiveIndex
	if !c.inRange(i) {
		return nil
	}
	return c.rows[i].Node()
}

func (c *Controller) setActive(i int) {
	c.store.SetActiveIndex(i)
	if c.viewport == nil {
		return
	}
	// keep a header above the first rows in view
	align := virtual.AlignAuto
	if i <= 1 {
		align = virtual.AlignEnd
	}
	c.viewport.ScrollToIndex(i, align)
}

func (c *Controller) inRange(i int) bool {
	return i >= 0 && i < len(c.rows)
}

func (c *Controller) selectable(i int) bool {
	return c.inRange(i) && !c.rows[i].IsHeader()
}

func sameRows(a, b []match.Row) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
