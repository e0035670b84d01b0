package ui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/go-cmp/cmp"

	"github.com/atomicstack/tmux-cmdk/internal/action"
	"github.com/atomicstack/tmux-cmdk/internal/backend"
	"github.com/atomicstack/tmux-cmdk/internal/logging"
	"github.com/atomicstack/tmux-cmdk/internal/logging/events"
	"github.com/atomicstack/tmux-cmdk/internal/tmux"
)

const (
	sessionsActionID   = "tmux:sessions"
	sessionActionIDPfx = "tmux:session:"
)

func waitForBackendEvent(w *backend.Watcher) tea.Cmd {
	return func() tea.Msg {
		evt, ok := <-w.Events()
		if !ok {
			return backendDoneMsg{}
		}
		return backendEventMsg{event: evt}
	}
}

type backendEventMsg struct {
	event backend.Event
}

type backendDoneMsg struct{}

// sessionEntry is one registered session child and the closure that removes
// it again.
type sessionEntry struct {
	session    tmux.Session
	unregister func()
}

func (m *Model) handleBackendEventMsg(msg tea.Msg) tea.Cmd {
	eventMsg, ok := msg.(backendEventMsg)
	if !ok {
		return nil
	}
	m.applyBackendEvent(eventMsg.event)
	if m.backend != nil {
		return waitForBackendEvent(m.backend)
	}
	return nil
}

func (m *Model) handleBackendDoneMsg(msg tea.Msg) tea.Cmd {
	m.backend = nil
	return nil
}

func (m *Model) applyBackendEvent(evt backend.Event) {
	if evt.Err != nil {
		if text := evt.Err.Error(); text != m.backendErr {
			events.Tmux.Error(evt.Err)
			logging.Error(evt.Err)
			m.backendErr = text
		}
		return
	}
	m.backendErr = ""
	switch evt.Kind {
	case backend.KindSessions:
		m.syncSessions(evt.Sessions)
	}
}

func (m *Model) ensureSessionsRoot() {
	if m.sessionsRoot != nil {
		return
	}
	m.sessionsRoot = m.store.RegisterActions([]action.Action{{
		ID:       sessionsActionID,
		Name:     "Switch session",
		Keywords: "tmux attach client",
		Section:  "tmux",
		Shortcut: []string{"g", "s"},
	}})
}

// syncSessions registers one child per live session. Unchanged sessions keep
// their nodes so the active row survives a poll; changed ones are replaced by
// id and vanished ones are unregistered.
func (m *Model) syncSessions(snap tmux.SessionSnapshot) {
	m.ensureSessionsRoot()
	seen := make(map[string]bool, len(snap.Sessions))
	for _, s := range snap.Sessions {
		id := sessionActionIDPfx + s.Name
		seen[id] = true
		if prev, ok := m.sessions[id]; ok && cmp.Equal(prev.session, s) {
			continue
		}
		m.sessions[id] = sessionEntry{
			session:    s,
			unregister: m.store.RegisterActions([]action.Action{m.sessionAction(id, s)}),
		}
	}
	for id, entry := range m.sessions {
		if seen[id] {
			continue
		}
		entry.unregister()
		delete(m.sessions, id)
	}
}

func (m *Model) sessionAction(id string, s tmux.Session) action.Action {
	keywords := "session"
	if s.Current {
		keywords += " current"
	}
	name := s.Name
	return action.Action{
		ID:       id,
		Name:     name,
		Subtitle: s.Label,
		Keywords: keywords,
		Parent:   sessionsActionID,
		Perform: func() any {
			if err := m.switchSession(name); err != nil {
				err = fmt.Errorf("switch to %s: %w", name, err)
				events.Tmux.Error(err)
				logging.Error(err)
				m.Report(id, err)
			}
			return nil
		},
	}
}
