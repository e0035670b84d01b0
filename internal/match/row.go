package match

import "github.com/atomicstack/tmux-cmdk/internal/action"

// Row is one rendered line of the result list: either a section header or an
// action. Exactly one of Header and Action is set.
type Row struct {
	Header string
	Action *action.Node
}

// HeaderRow builds a non-selectable section label row.
func HeaderRow(label string) Row {
	return Row{Header: label}
}

// ActionRow builds a selectable row for n.
func ActionRow(n *action.Node) Row {
	return Row{Action: n}
}

// IsHeader reports whether the row is a section label.
func (r Row) IsHeader() bool {
	return r.Action == nil
}

// Label returns the header text or the action name.
func (r Row) Label() string {
	if r.Action != nil {
		return r.Action.Name
	}
	return r.Header
}

// Node returns the action behind the row, nil for headers.
func (r Row) Node() *action.Node {
	return r.Action
}

// FirstSelectable returns the index of the first action row, or -1.
func FirstSelectable(rows []Row) int {
	for i, r := range rows {
		if !r.IsHeader() {
			return i
		}
	}
	return -1
}

// Labels is a debugging helper listing every row label in order.
func Labels(rows []Row) []string {
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.Label())
	}
	return out
}
