package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/reflow/truncate"

	"github.com/atomicstack/tmux-cmdk/internal/match"
	"github.com/atomicstack/tmux-cmdk/internal/virtual"
)

const (
	// listTop is the screen row of the first list row: top border, search
	// input and divider sit above it.
	listTop     = 3
	minBoxWidth = 12
	// paletteChrome counts the box borders, the input and the divider.
	paletteChrome = 4
	// statusChrome counts the blank separator and the status line.
	statusChrome = 2
)

// RenderFunc draws one row. Headers are never active.
type RenderFunc func(row match.Row, active bool) string

// DefaultRender draws rows with the theme styles: an indicator, the action
// name, its subtitle and its shortcut keys.
func DefaultRender(row match.Row, active bool) string {
	if row.IsHeader() {
		return render(styles.SectionHeader, row.Header)
	}
	n := row.Node()
	indicator, indicatorStyle, nameStyle := "  ", styles.ItemIndicator, styles.Item
	if active {
		indicator, indicatorStyle, nameStyle = "› ", styles.SelectedIndicator, styles.SelectedItem
	}
	name := n.Name
	if n.HasChildren() {
		name += " …"
	}
	parts := []string{render(indicatorStyle, indicator) + render(nameStyle, name)}
	if n.Subtitle != "" {
		parts = append(parts, render(styles.Subtitle, n.Subtitle))
	}
	if len(n.Shortcut) > 0 {
		parts = append(parts, render(styles.Shortcut, " "+strings.Join(n.Shortcut, " ")+" "))
	}
	return strings.Join(parts, "  ")
}

// View implements tea.Model.
func (m *Model) View() string {
	sections := make([]string, 0, 3)
	if m.store.State().Visual.Visible() {
		sections = append(sections, m.viewPalette())
	} else {
		sections = append(sections, m.viewHost())
	}
	if line := m.statusLine(); line != "" {
		sections = append(sections, "", line)
	}
	return strings.Join(sections, "\n")
}

func (m *Model) viewPalette() string {
	inner := m.innerWidth()
	divider := render(styles.Divider, strings.Repeat("─", inner))
	lines := make([]string, 0, m.list.Height()+4)
	lines = append(lines, fitLine(m.inputLine(), inner), divider)

	rows := m.nav.Rows()
	if len(rows) == 0 {
		lines = append(lines, fitLine(render(styles.Empty, m.emptyText()), inner))
	} else {
		active := m.store.State().ActiveIndex
		start, end := m.list.Window()
		for i := start; i < end; i++ {
			lines = append(lines, fitLine(m.render(rows[i], i == active && !rows[i].IsHeader()), inner))
		}
	}
	if m.showFooter {
		lines = append(lines, divider, fitLine(render(styles.Footer, m.footerText()), inner))
	}

	box := strings.Join(lines, "\n")
	if styles.Palette != nil {
		box = styles.Palette.Render(box)
	}
	if left := m.boxLeft(); left > 0 {
		box = lipgloss.NewStyle().MarginLeft(left).Render(box)
	}
	return box
}

// inputLine shows the search field, or the placeholder naming the current
// root while the field is empty.
func (m *Model) inputLine() string {
	if m.input.Value() != "" {
		return m.input.View()
	}
	return render(styles.FilterPrompt, m.input.Prompt) + render(styles.FilterPlaceholder, m.placeholder())
}

func (m *Model) viewHost() string {
	lines := []string{
		render(styles.Title, hostTitle),
		render(styles.Info, fmt.Sprintf("%s open palette  %s quit", m.keys.Toggle.Help().Key, m.keys.Quit.Help().Key)),
	}
	if typed := m.shortcuts.Buffered(); typed != "" {
		lines = append(lines, render(styles.Info, "keys: "+strings.Join(strings.Split(typed, ""), " ")))
	}
	for i, line := range lines {
		lines[i] = truncateText(line, m.width)
	}
	return strings.Join(lines, "\n")
}

func (m *Model) statusLine() string {
	switch {
	case m.status.err:
		return truncateText(render(styles.Error, "Error: "+m.status.text), m.width)
	case m.status.text != "":
		return truncateText(render(styles.Info, m.status.text), m.width)
	case m.backendErr != "":
		return truncateText(render(styles.Error, "tmux: "+m.backendErr), m.width)
	case m.loadErr != "":
		return truncateText(render(styles.Error, "Error: "+m.loadErr), m.width)
	}
	return ""
}

func (m *Model) emptyText() string {
	if q := strings.TrimSpace(m.store.State().Search); q != "" {
		return fmt.Sprintf("No results for %q", q)
	}
	return "No actions"
}

func (m *Model) footerText() string {
	parts := make([]string, 0, 5)
	for _, b := range m.keys.ShortHelp() {
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return strings.Join(parts, "  ")
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	resize, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	m.width = resize.Width
	m.height = resize.Height
	m.list.SetHeight(m.visibleRows())
	if m.list.Count() > 0 {
		m.list.ScrollToIndex(m.store.State().ActiveIndex, virtual.AlignAuto)
	}
	m.resizeInput()
	return nil
}

// paletteWidth is the outer width of the palette box.
func (m *Model) paletteWidth() int {
	w := m.boxWidth
	if w <= 0 {
		w = defaultBoxWidth
		if m.width > 0 && m.width < w {
			w = m.width
		}
	}
	if w < minBoxWidth {
		w = minBoxWidth
	}
	return w
}

func (m *Model) innerWidth() int {
	return m.paletteWidth() - 2
}

// boxLeft centres the palette horizontally.
func (m *Model) boxLeft() int {
	if m.width <= m.paletteWidth() {
		return 0
	}
	return (m.width - m.paletteWidth()) / 2
}

func (m *Model) visibleRows() int {
	if m.listRows > 0 {
		return m.listRows
	}
	if m.height <= 0 {
		return defaultListRows
	}
	used := paletteChrome + statusChrome
	if m.showFooter {
		used += 2
	}
	rows := m.height - used
	if rows > defaultListRows {
		rows = defaultListRows
	}
	if rows < 1 {
		rows = 1
	}
	return rows
}

func (m *Model) resizeInput() {
	w := m.innerWidth() - ansi.StringWidth(m.input.Prompt) - 1
	if w < 1 {
		w = 1
	}
	m.input.Width = w
}

func render(style *lipgloss.Style, value string) string {
	if style == nil || value == "" {
		return value
	}
	return style.Render(value)
}

// fitLine truncates or pads s to exactly width cells.
func fitLine(s string, width int) string {
	if width <= 0 {
		return s
	}
	if ansi.StringWidth(s) > width {
		s = truncate.StringWithTail(s, uint(width), "…")
	}
	if pad := width - ansi.StringWidth(s); pad > 0 {
		s += strings.Repeat(" ", pad)
	}
	return s
}

func truncateText(text string, width int) string {
	if width <= 0 || ansi.StringWidth(text) <= width {
		return text
	}
	return truncate.StringWithTail(text, uint(width), "…")
}
