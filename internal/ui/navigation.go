package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	if keyMsg.Type == tea.KeyCtrlC {
		return m.quit()
	}
	if m.lifecycle.HandleKey(keyMsg) {
		return nil
	}
	if !m.store.State().Visual.Opening() {
		return m.handleHostKey(keyMsg)
	}
	return m.handlePaletteKey(keyMsg)
}

// handleHostKey feeds keys typed while the palette is closed to the shortcut
// buffer.
func (m *Model) handleHostKey(msg tea.KeyMsg) tea.Cmd {
	prev := m.status
	m.status = status{}
	if _, matched := m.shortcuts.HandleKey(msg); matched {
		return nil
	}
	m.status = prev
	if key.Matches(msg, m.keys.Quit) {
		return m.quit()
	}
	return nil
}

func (m *Model) handlePaletteKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Up):
		m.nav.MoveUp()
		return nil
	case key.Matches(msg, m.keys.Down):
		m.nav.MoveDown()
		return nil
	case key.Matches(msg, m.keys.Commit):
		m.nav.Commit()
		return nil
	case key.Matches(msg, m.keys.Back) && m.input.Value() == "":
		m.nav.Back()
		return nil
	}
	return m.updateInput(msg)
}

// updateInput lets the search field consume msg and mirrors its value into
// the store.
func (m *Model) updateInput(msg tea.Msg) tea.Cmd {
	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if after := m.input.Value(); after != before {
		m.store.SetSearch(after)
	}
	return cmd
}

func (m *Model) handleMouseMsg(msg tea.Msg) tea.Cmd {
	ev, ok := msg.(tea.MouseMsg)
	if !ok || !m.store.State().Visual.Opening() {
		return nil
	}
	switch ev.Button {
	case tea.MouseButtonWheelUp:
		m.nav.MoveUp()
		return nil
	case tea.MouseButtonWheelDown:
		m.nav.MoveDown()
		return nil
	}
	i, onRow := m.rowAt(ev.X, ev.Y)
	switch ev.Action {
	case tea.MouseActionMotion:
		m.nav.PointerMoved(i)
	case tea.MouseActionPress:
		if ev.Button == tea.MouseButtonLeft && onRow {
			m.nav.CommitAt(i)
		}
	}
	return nil
}

// rowAt maps a screen cell to a row index inside the palette list.
func (m *Model) rowAt(x, y int) (int, bool) {
	left := m.boxLeft()
	if x <= left || x >= left+m.paletteWidth()-1 {
		return -1, false
	}
	line := y - listTop
	start, end := m.list.Window()
	if line < 0 || start+line >= end {
		return -1, false
	}
	return start + line, true
}
