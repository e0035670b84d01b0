// Package store holds the palette's single source of truth and notifies
// selector subscribers when the slice of state they depend on changes.
//
// A Store is not safe for concurrent use. Every mutation is expected to run
// on the Bubble Tea update loop.
package store

import (
	"github.com/google/go-cmp/cmp"

	"github.com/atomicstack/tmux-cmdk/internal/action"
	"github.com/atomicstack/tmux-cmdk/internal/logging/events"
)

// Store owns the action tree and the palette state.
type Store struct {
	tree  *action.Tree
	state State
	opts  Options

	subs      []*subscriber
	notifying bool
	dirty     bool
}

type subscriber struct {
	check   func(State)
	removed bool
}

// nodeIdentity compares action nodes by pointer so that selectors returning
// nodes or snapshots never walk the tree. Equality is therefore by reference
// for nodes and structural for everything else: two distinct nodes with
// identical fields count as a change, which can only cause an extra
// notification, never a missed one.
var nodeIdentity = cmp.Comparer(func(a, b *action.Node) bool { return a == b })

// New constructs a store with the given initial actions.
func New(actions []action.Action, opts Options) *Store {
	tree := action.NewTree(actions)
	return &Store{
		tree: tree,
		opts: opts,
		state: State{
			Visual:  Hidden,
			Actions: tree.Snapshot(),
		},
	}
}

// State returns the current state.
func (s *Store) State() State {
	return s.state
}

// Options returns the options the store was built with.
func (s *Store) Options() Options {
	return s.opts
}

// Node looks up a registered action node.
func (s *Store) Node(id string) (*action.Node, bool) {
	return s.state.Actions.Get(id)
}

// SetSearch replaces the search text.
func (s *Store) SetSearch(query string) {
	if query == s.state.Search {
		return
	}
	next := s.state
	next.Search = query
	events.Palette.Search(query)
	s.commit(next)
	s.opts.Callbacks.query(query)
}

// SetCurrentRoot changes the navigation root; an empty id returns to the top
// level.
func (s *Store) SetCurrentRoot(id string) {
	if id == s.state.RootID {
		return
	}
	next := s.state
	next.RootID = id
	events.Palette.Root(id)
	s.commit(next)
}

// SetVisualState moves the palette to the given phase.
func (s *Store) SetVisualState(v VisualState) {
	s.UpdateVisualState(func(VisualState) VisualState { return v })
}

// UpdateVisualState derives the next phase from the current one.
func (s *Store) UpdateVisualState(fn func(VisualState) VisualState) {
	from := s.state.Visual
	to := fn(from)
	if to == from {
		return
	}
	next := s.state
	next.Visual = to
	events.Palette.Phase(string(from), string(to))
	s.commit(next)
}

// SetActiveIndex moves the active row.
func (s *Store) SetActiveIndex(i int) {
	s.UpdateActiveIndex(func(int) int { return i })
}

// UpdateActiveIndex derives the next active row from the current one.
func (s *Store) UpdateActiveIndex(fn func(int) int) {
	i := fn(s.state.ActiveIndex)
	if i == s.state.ActiveIndex {
		return
	}
	next := s.state
	next.ActiveIndex = i
	events.Nav.Cursor(i)
	s.commit(next)
}

// RegisterActions adds actions to the tree. The returned func removes exactly
// those ids, whatever has been registered since.
func (s *Store) RegisterActions(actions []action.Action) (unregister func()) {
	ids := make([]string, 0, len(actions))
	for _, a := range actions {
		ids = append(ids, a.ID)
	}
	events.Store.Register(ids)
	s.setActions(s.tree.Add(actions))
	return func() {
		events.Store.Unregister(ids)
		s.setActions(s.tree.Remove(ids))
	}
}

func (s *Store) setActions(snap action.Snapshot) {
	next := s.state
	next.Actions = snap
	s.commit(next)
}

// Toggle moves the palette towards opening when it is hidden or closing, and
// towards closing otherwise.
func (s *Store) Toggle() {
	s.UpdateVisualState(func(v VisualState) VisualState {
		if v == Hidden || v == AnimatingOut {
			return AnimatingIn
		}
		return AnimatingOut
	})
}

// NotifyOpen runs the OnOpen callback.
func (s *Store) NotifyOpen() { s.opts.Callbacks.open() }

// NotifyClose runs the OnClose callback.
func (s *Store) NotifyClose() { s.opts.Callbacks.close() }

// NotifySelect runs the OnSelectAction callback.
func (s *Store) NotifySelect(n *action.Node) { s.opts.Callbacks.selectAction(n) }

// Subscribe registers a selector over the store state. onChange runs after a
// mutation whenever the selector's output differs, by deep comparison, from
// the output seen last. Action nodes are compared by identity.
func Subscribe[T any](s *Store, selector func(State) T, onChange func(T)) (unsubscribe func()) {
	last := selector(s.state)
	sub := &subscriber{}
	sub.check = func(st State) {
		value := selector(st)
		if cmp.Equal(last, value, nodeIdentity) {
			return
		}
		last = value
		onChange(value)
	}
	s.subs = append(s.subs, sub)
	return func() {
		if sub.removed {
			return
		}
		sub.removed = true
		kept := s.subs[:0:0]
		for _, other := range s.subs {
			if other != sub {
				kept = append(kept, other)
			}
		}
		s.subs = kept
	}
}

func (s *Store) commit(next State) {
	s.state = next
	s.notify()
}

// notify runs every subscriber against the latest state. Mutations made by a
// subscriber schedule another round instead of recursing.
func (s *Store) notify() {
	if s.notifying {
		s.dirty = true
		return
	}
	s.notifying = true
	defer func() { s.notifying = false }()
	for {
		s.dirty = false
		for _, sub := range append([]*subscriber(nil), s.subs...) {
			if !sub.removed {
				sub.check(s.state)
			}
		}
		if !s.dirty {
			return
		}
	}
}
