package action

import "strings"

// Action is a caller-declared palette entry. Actions are immutable once
// registered; re-registering an id replaces the previous entry.
type Action struct {
	ID       string
	Name     string
	Shortcut []string
	Keywords string
	Section  string
	Subtitle string
	Parent   string
	Perform  Performer
}

// Node is the registered form of an Action inside a Tree.
type Node struct {
	ID       string
	Name     string
	Shortcut []string
	// Keywords holds the declared keywords followed by the section so that
	// section names are searchable.
	Keywords string
	Section  string
	Subtitle string
	Parent   string
	Command  *Command

	Children  []*Node
	Ancestors []*Node
}

func newNode(a Action) *Node {
	n := &Node{
		ID:       a.ID,
		Name:     a.Name,
		Shortcut: append([]string(nil), a.Shortcut...),
		Keywords: extendKeywords(a.Keywords, a.Section),
		Section:  a.Section,
		Subtitle: a.Subtitle,
		Parent:   a.Parent,
	}
	if a.Perform != nil {
		n.Command = NewCommand(a.ID, a.Perform)
	}
	return n
}

func extendKeywords(keywords, section string) string {
	return strings.TrimSpace(keywords + " " + section)
}

// HasChildren reports whether the node opens a nested scope.
func (n *Node) HasChildren() bool {
	return n != nil && len(n.Children) > 0
}

// ParentNode returns the immediate parent, or nil for top-level nodes.
func (n *Node) ParentNode() *Node {
	if n == nil || len(n.Ancestors) == 0 {
		return nil
	}
	return n.Ancestors[len(n.Ancestors)-1]
}

// ShortcutString joins the chord keys into the form matched by the shortcut buffer.
func (n *Node) ShortcutString() string {
	if n == nil {
		return ""
	}
	return strings.Join(n.Shortcut, "")
}

// SearchText is the haystack used when ranking the node against a query.
func (n *Node) SearchText() string {
	parts := make([]string, 0, 3)
	for _, part := range []string{n.Name, n.Keywords, n.Subtitle} {
		if part = strings.TrimSpace(part); part != "" {
			parts = append(parts, part)
		}
	}
	return strings.Join(parts, " ")
}

// Path returns the ids from the top level down to and including n.
func (n *Node) Path() []string {
	if n == nil {
		return nil
	}
	ids := make([]string, 0, len(n.Ancestors)+1)
	for _, a := range n.Ancestors {
		ids = append(ids, a.ID)
	}
	return append(ids, n.ID)
}

// Snapshot is a point-in-time view of the registered nodes. Order lists ids
// in registration order; a replaced id keeps its original position.
//
// The id set and order are fixed when the snapshot is taken, but the nodes
// themselves are shared with the tree: a later Add or Remove that edits a
// parent's Children is visible through older snapshots too.
type Snapshot struct {
	Nodes map[string]*Node
	Order []string
}

// Get looks up a node by id.
func (s Snapshot) Get(id string) (*Node, bool) {
	n, ok := s.Nodes[id]
	return n, ok
}

// Len returns the number of registered nodes.
func (s Snapshot) Len() int {
	return len(s.Order)
}

// All returns every node in registration order.
func (s Snapshot) All() []*Node {
	out := make([]*Node, 0, len(s.Order))
	for _, id := range s.Order {
		if n, ok := s.Nodes[id]; ok {
			out = append(out, n)
		}
	}
	return out
}

// TopLevel returns the nodes without a parent in registration order.
func (s Snapshot) TopLevel() []*Node {
	out := make([]*Node, 0, len(s.Order))
	for _, id := range s.Order {
		if n, ok := s.Nodes[id]; ok && n.Parent == "" {
			out = append(out, n)
		}
	}
	return out
}
