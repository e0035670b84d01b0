package action

import (
	"fmt"

	"github.com/atomicstack/tmux-cmdk/internal/logging/events"
)

// Tree is the hierarchical registry of actions. It is not safe for
// concurrent use; the store serialises every mutation.
type Tree struct {
	nodes map[string]*Node
	order []string
}

// NewTree builds a tree and registers actions in order.
func NewTree(actions []Action) *Tree {
	t := &Tree{nodes: make(map[string]*Node)}
	t.Add(actions)
	return t
}

// Add registers actions in order and returns the resulting snapshot. A parent
// must be registered before its children; violating that panics. Re-adding an
// existing id replaces the node in place, keeping its position and children.
func (t *Tree) Add(actions []Action) Snapshot {
	for _, a := range actions {
		t.add(a)
	}
	return t.Snapshot()
}

func (t *Tree) add(a Action) {
	if a.ID == "" {
		panic("action: cannot register an action without an id")
	}
	var parent *Node
	if a.Parent != "" {
		if a.Parent == a.ID {
			panic(fmt.Sprintf("action %q: cannot be its own parent", a.ID))
		}
		p, ok := t.nodes[a.Parent]
		if !ok {
			panic(fmt.Sprintf("action %q: parent %q is not registered", a.ID, a.Parent))
		}
		parent = p
	}

	node := newNode(a)
	old, replacing := t.nodes[a.ID]
	if replacing {
		if parent != nil && descends(parent, old) {
			panic(fmt.Sprintf("action %q: parent %q is one of its descendants", a.ID, a.Parent))
		}
		events.Store.Replace(a.ID)
		node.Children = old.Children
	} else {
		t.order = append(t.order, a.ID)
	}
	t.nodes[a.ID] = node

	switch {
	case replacing && old.Parent == a.Parent && parent != nil:
		parent.Children = swapChild(parent.Children, old, node)
	case replacing:
		if p := old.ParentNode(); p != nil {
			p.Children = withoutChild(p.Children, old)
		}
		fallthrough
	default:
		if parent != nil {
			parent.Children = append(parent.Children, node)
		}
	}

	if parent != nil {
		node.Ancestors = chain(parent)
	}
	relink(node)
}

// Remove drops each named action together with its whole subtree and returns
// the resulting snapshot. Unknown ids are ignored.
func (t *Tree) Remove(ids []string) Snapshot {
	removed := false
	for _, id := range ids {
		n, ok := t.nodes[id]
		if !ok {
			continue
		}
		queue := []*Node{n}
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			queue = append(queue, cur.Children...)
			if p := cur.ParentNode(); p != nil {
				p.Children = withoutChild(p.Children, cur)
			}
			delete(t.nodes, cur.ID)
			removed = true
		}
	}
	if removed {
		kept := make([]string, 0, len(t.nodes))
		for _, id := range t.order {
			if _, ok := t.nodes[id]; ok {
				kept = append(kept, id)
			}
		}
		t.order = kept
	}
	return t.Snapshot()
}

// Snapshot returns a copy of the registry. Nodes are shared, the map and the
// order slice are not.
func (t *Tree) Snapshot() Snapshot {
	nodes := make(map[string]*Node, len(t.nodes))
	for id, n := range t.nodes {
		nodes[id] = n
	}
	return Snapshot{Nodes: nodes, Order: append([]string(nil), t.order...)}
}

func chain(parent *Node) []*Node {
	out := make([]*Node, 0, len(parent.Ancestors)+1)
	out = append(out, parent.Ancestors...)
	return append(out, parent)
}

// relink recomputes the ancestors of every descendant of n.
func relink(n *Node) {
	for _, child := range n.Children {
		child.Ancestors = chain(n)
		relink(child)
	}
}

func descends(n, from *Node) bool {
	if n == from {
		return true
	}
	for _, a := range n.Ancestors {
		if a == from {
			return true
		}
	}
	return false
}

func swapChild(children []*Node, old, repl *Node) []*Node {
	out := make([]*Node, len(children))
	for i, c := range children {
		if c == old {
			c = repl
		}
		out[i] = c
	}
	return out
}

func withoutChild(children []*Node, target *Node) []*Node {
	out := make([]*Node, 0, len(children))
	for _, c := range children {
		if c != target {
			out = append(out, c)
		}
	}
	return out
}
