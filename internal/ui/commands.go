package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/tmux-cmdk/internal/action"
)

// status is the host line under the palette.
type status struct {
	text string
	err  bool
	// id is the action the message is about.
	id string
}

// Report shows err for action id in the status line. Performers call it
// synchronously from the update loop.
func (m *Model) Report(id string, err error) {
	if err == nil {
		return
	}
	m.status = status{text: err.Error(), err: true, id: id}
}

// ReportLoad keeps err in the status line until a later load succeeds.
// Unlike Report it survives the palette opening.
func (m *Model) ReportLoad(err error) {
	if err == nil {
		m.loadErr = ""
		return
	}
	m.loadErr = err.Error()
}

// noteSelect records a leaf that ran, unless its performer already reported
// a failure.
func (m *Model) noteSelect(n *action.Node) {
	if n == nil || n.HasChildren() || n.Command == nil {
		return
	}
	if m.status.err && m.status.id == n.ID {
		return
	}
	m.status = status{text: "Ran " + m.breadcrumb(n), id: n.ID}
}

// breadcrumb joins the names from the top level down to n.
func (m *Model) breadcrumb(n *action.Node) string {
	names := make([]string, 0, len(n.Ancestors)+1)
	for _, a := range n.Ancestors {
		names = append(names, a.Name)
	}
	return strings.Join(append(names, n.Name), " › ")
}

func (m *Model) quit() tea.Cmd {
	m.Close()
	return tea.Quit
}
