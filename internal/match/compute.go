// Package match turns the store state into the ranked, sectioned rows the
// palette renders.
package match

import (
	"strings"

	"github.com/atomicstack/tmux-cmdk/internal/action"
	"github.com/atomicstack/tmux-cmdk/internal/logging/events"
	"github.com/atomicstack/tmux-cmdk/internal/store"
)

// Compute produces the visible rows for st. Without search text the rows are
// the direct results of the current root and carry no headers. Any search
// text, blank included, widens the rows to the whole subtree below the root,
// grouped by section; blank text leaves that set unranked.
func Compute(st store.State) []Row {
	roots := RootResults(st)
	if st.Search == "" {
		rows := make([]Row, 0, len(roots))
		for _, n := range roots {
			rows = append(rows, ActionRow(n))
		}
		return rows
	}
	rows := group(Rank(Deep(roots), st.Search))
	events.Palette.Results(strings.TrimSpace(st.Search), len(rows))
	return rows
}

// RootResults returns the top-level actions, or the direct children of the
// current root.
func RootResults(st store.State) []*action.Node {
	if st.RootID == "" {
		return st.Actions.TopLevel()
	}
	root, ok := st.Actions.Get(st.RootID)
	if !ok {
		return nil
	}
	return append([]*action.Node(nil), root.Children...)
}

// Deep flattens roots and every descendant in pre-order.
func Deep(roots []*action.Node) []*action.Node {
	seen := make(map[*action.Node]struct{})
	var out []*action.Node
	var walk func(n *action.Node)
	walk = func(n *action.Node) {
		if _, ok := seen[n]; ok {
			return
		}
		seen[n] = struct{}{}
		out = append(out, n)
		for _, c := range n.Children {
			walk(c)
		}
	}
	for _, n := range roots {
		walk(n)
	}
	return out
}

// group buckets ranked nodes by section in order of first appearance. The
// unlabelled bucket is emitted without a header.
func group(nodes []*action.Node) []Row {
	var order []string
	buckets := make(map[string][]*action.Node)
	for _, n := range nodes {
		if _, ok := buckets[n.Section]; !ok {
			order = append(order, n.Section)
		}
		buckets[n.Section] = append(buckets[n.Section], n)
	}
	rows := make([]Row, 0, len(nodes)+len(order))
	for _, section := range order {
		if section != "" {
			rows = append(rows, HeaderRow(section))
		}
		for _, n := range buckets[section] {
			rows = append(rows, ActionRow(n))
		}
	}
	return rows
}
