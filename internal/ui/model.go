package ui

import (
	"errors"
	"reflect"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/tmux-cmdk/internal/action"
	"github.com/atomicstack/tmux-cmdk/internal/backend"
	"github.com/atomicstack/tmux-cmdk/internal/keys"
	"github.com/atomicstack/tmux-cmdk/internal/lifecycle"
	"github.com/atomicstack/tmux-cmdk/internal/logging/events"
	"github.com/atomicstack/tmux-cmdk/internal/match"
	"github.com/atomicstack/tmux-cmdk/internal/nav"
	"github.com/atomicstack/tmux-cmdk/internal/shortcut"
	"github.com/atomicstack/tmux-cmdk/internal/store"
	"github.com/atomicstack/tmux-cmdk/internal/theme"
	"github.com/atomicstack/tmux-cmdk/internal/virtual"
)

const (
	defaultPlaceholder = "Type a command or search…"
	defaultListRows    = 10
	defaultBoxWidth    = 72
	hostTitle          = "tmux-cmdk"
)

var styles = theme.Default()

type msgHandler func(tea.Msg) tea.Cmd

// Options configures a Model.
type Options struct {
	// Width and Height fix the palette box width and its list height; zero
	// sizes them from the terminal.
	Width      int
	Height     int
	ShowFooter bool
	// OpenOnStart opens the palette from Init.
	OpenOnStart bool

	KeyMap      keys.KeyMap
	Animations  store.Animations
	Callbacks   store.Callbacks
	Throttle    time.Duration
	ShortcutGap time.Duration
	Render      RenderFunc

	// Backend streams tmux sessions for the "Switch session" action.
	Backend *backend.Watcher
	// SwitchSession points the tmux client at a session.
	SwitchSession func(target string) error
}

// Model implements the Bubble Tea model hosting the palette.
type Model struct {
	store     *store.Store
	nav       *nav.Controller
	lifecycle *lifecycle.Controller
	shortcuts *shortcut.Buffer
	throttle  *match.Throttle
	list      *virtual.List
	input     textinput.Model
	keys      keys.KeyMap
	render    RenderFunc

	width       int
	height      int
	boxWidth    int
	listRows    int
	showFooter  bool
	openOnStart bool

	status status

	backend       *backend.Watcher
	backendErr    string
	loadErr       string
	switchSession func(target string) error
	sessionsRoot  func()
	sessions      map[string]sessionEntry

	pending  []tea.Cmd
	unsubs   []func()
	handlers map[reflect.Type]msgHandler
}

// NewModel builds the store and the palette controllers around it.
func NewModel(opts Options) *Model {
	km := opts.KeyMap
	if len(km.Toggle.Keys()) == 0 {
		km = keys.Default()
	}
	render := opts.Render
	if render == nil {
		render = DefaultRender
	}
	switcher := opts.SwitchSession
	if switcher == nil {
		switcher = func(string) error { return errors.New("session switching is unavailable") }
	}
	m := &Model{
		keys:          km,
		render:        render,
		boxWidth:      opts.Width,
		listRows:      opts.Height,
		showFooter:    opts.ShowFooter,
		openOnStart:   opts.OpenOnStart,
		backend:       opts.Backend,
		switchSession: switcher,
		sessions:      map[string]sessionEntry{},
	}
	m.store = store.New(nil, store.Options{
		Animations: opts.Animations,
		Callbacks:  m.wrapCallbacks(opts.Callbacks),
	})
	m.list = virtual.New(m.visibleRows())
	m.nav = nav.New(m.store, m.list)
	m.lifecycle = lifecycle.New(m.store, km)
	m.throttle = match.NewThrottle(opts.Throttle)
	m.shortcuts = shortcut.New(m.store, opts.ShortcutGap, func() bool { return m.input.Focused() })

	ti := textinput.New()
	ti.Prompt = "› "
	ti.Cursor.SetMode(cursor.CursorStatic)
	if styles.FilterPrompt != nil {
		ti.PromptStyle = styles.FilterPrompt.Copy()
	}
	if styles.Filter != nil {
		ti.TextStyle = styles.Filter.Copy()
	}
	if styles.Cursor != nil {
		ti.Cursor.Style = styles.Cursor.Copy()
	}
	m.input = ti
	m.resizeInput()

	if m.backend != nil {
		m.ensureSessionsRoot()
	}
	m.subscribe()
	m.registerHandlers()
	return m
}

// Store exposes the palette store so hosts can register actions.
func (m *Model) Store() *store.Store {
	return m.store
}

// Register adds actions to the palette and returns their unregister func.
func (m *Model) Register(actions []action.Action) func() {
	return m.store.RegisterActions(actions)
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.throttle.Schedule()}
	if m.backend != nil {
		cmds = append(cmds, waitForBackendEvent(m.backend))
	}
	if m.openOnStart {
		m.lifecycle.Toggle(events.ReasonStartup)
	}
	return m.finishUpdate(cmds)
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 0, 4)
	if handler := m.handlerFor(msg); handler != nil {
		if cmd := handler(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
		return m, m.finishUpdate(cmds)
	}
	if m.input.Focused() {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return m, m.finishUpdate(cmds)
}

// Close drops the store subscriptions.
func (m *Model) Close() {
	for _, unsub := range m.unsubs {
		unsub()
	}
	m.unsubs = nil
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):         m.handleKeyMsg,
		reflect.TypeOf(tea.MouseMsg{}):       m.handleMouseMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}):  m.handleWindowSizeMsg,
		reflect.TypeOf(match.FlushMsg{}):     m.handleFlushMsg,
		reflect.TypeOf(lifecycle.PhaseMsg{}): m.handlePhaseMsg,
		reflect.TypeOf(backendEventMsg{}):    m.handleBackendEventMsg,
		reflect.TypeOf(backendDoneMsg{}):     m.handleBackendDoneMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

// queue holds a command produced by a store subscription until the current
// update finishes.
func (m *Model) queue(cmd tea.Cmd) {
	if cmd != nil {
		m.pending = append(m.pending, cmd)
	}
}

func (m *Model) finishUpdate(cmds []tea.Cmd) tea.Cmd {
	if len(m.pending) > 0 {
		cmds = append(cmds, m.pending...)
		m.pending = nil
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

func (m *Model) subscribe() {
	schedule := func() { m.queue(m.throttle.Schedule()) }
	m.unsubs = append(m.unsubs,
		store.Subscribe(m.store, func(st store.State) string { return st.Search }, func(string) { schedule() }),
		store.Subscribe(m.store, func(st store.State) action.Snapshot { return st.Actions }, func(action.Snapshot) { schedule() }),
		store.Subscribe(m.store, func(st store.State) string { return st.RootID }, func(string) {
			m.clearSearch()
			schedule()
		}),
		store.Subscribe(m.store, func(st store.State) store.VisualState { return st.Visual }, m.onVisualChange),
	)
}

func (m *Model) onVisualChange(v store.VisualState) {
	m.queue(m.lifecycle.Observe(v))
	switch v {
	case store.AnimatingIn:
		m.nav.Mount()
		m.queue(m.input.Focus())
	case store.AnimatingOut:
		m.input.Blur()
	case store.Hidden:
		m.input.Blur()
		m.clearSearch()
	}
}

func (m *Model) clearSearch() {
	m.input.SetValue("")
	m.store.SetSearch("")
}

func (m *Model) placeholder() string {
	if root := m.store.State().Root(); root != nil {
		return root.Name
	}
	return defaultPlaceholder
}

func (m *Model) wrapCallbacks(cb store.Callbacks) store.Callbacks {
	wrapped := cb
	wrapped.OnOpen = func() {
		m.status = status{}
		if cb.OnOpen != nil {
			cb.OnOpen()
		}
	}
	wrapped.OnSelectAction = func(n *action.Node) {
		m.noteSelect(n)
		if cb.OnSelectAction != nil {
			cb.OnSelectAction(n)
		}
	}
	return wrapped
}

func (m *Model) handleFlushMsg(msg tea.Msg) tea.Cmd {
	flush, ok := msg.(match.FlushMsg)
	if !ok || !m.throttle.Accept(flush) {
		return nil
	}
	rows := match.Compute(m.store.State())
	m.list.SetCount(len(rows))
	m.nav.SetRows(rows)
	return nil
}

func (m *Model) handlePhaseMsg(msg tea.Msg) tea.Cmd {
	phase, ok := msg.(lifecycle.PhaseMsg)
	if !ok {
		return nil
	}
	m.lifecycle.Advance(phase)
	return nil
}
