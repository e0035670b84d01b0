package app

import (
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/tmux-cmdk/internal/backend"
	"github.com/atomicstack/tmux-cmdk/internal/keys"
	"github.com/atomicstack/tmux-cmdk/internal/logging"
	"github.com/atomicstack/tmux-cmdk/internal/logging/events"
	"github.com/atomicstack/tmux-cmdk/internal/manifest"
	"github.com/atomicstack/tmux-cmdk/internal/store"
	"github.com/atomicstack/tmux-cmdk/internal/tmux"
	"github.com/atomicstack/tmux-cmdk/internal/ui"
)

const sessionPollInterval = 1500 * time.Millisecond

// Config describes user-provided application options.
type Config struct {
	ManifestPath string
	WithTmux     bool
	SocketPath   string

	Width      int
	Height     int
	ShowFooter bool

	EnterDuration  time.Duration
	ExitDuration   time.Duration
	ThrottleWindow time.Duration
	ShortcutGap    time.Duration

	ToggleKey   string
	OpenOnStart bool
}

// Run bootstraps and executes the Bubble Tea program.
func Run(cfg Config) error {
	model, cleanup, err := NewModel(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseAllMotion())
	_, err = program.Run()
	events.App.Stop(err)
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}

// NewModel wires the palette model: key map, tmux sessions and the action
// manifest. The returned func releases the tmux connection and watcher.
func NewModel(cfg Config) (*ui.Model, func(), error) {
	km, err := keys.New(cfg.ToggleKey)
	if err != nil {
		return nil, nil, err
	}
	opts := ui.Options{
		Width:       cfg.Width,
		Height:      cfg.Height,
		ShowFooter:  cfg.ShowFooter,
		OpenOnStart: cfg.OpenOnStart,
		KeyMap:      km,
		Animations:  store.Animations{Enter: cfg.EnterDuration, Exit: cfg.ExitDuration},
		Throttle:    cfg.ThrottleWindow,
		ShortcutGap: cfg.ShortcutGap,
	}

	var socketPath string
	closers := []func(){}
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}
	if cfg.WithTmux {
		socketPath, err = tmux.ResolveSocketPath(cfg.SocketPath)
		if err != nil {
			return nil, nil, fmt.Errorf("resolve socket path: %w", err)
		}
		watcher := backend.NewWatcher(socketPath, "", sessionPollInterval)
		closers = append(closers, tmux.Shutdown, watcher.Stop)
		clientID := tmux.CurrentClientID(socketPath)
		opts.Backend = watcher
		opts.SwitchSession = func(target string) error {
			return tmux.SwitchClient(socketPath, clientID, target)
		}
	}

	model := ui.NewModel(opts)
	closers = append(closers, model.Close)

	if cfg.ManifestPath != "" {
		runner := manifest.Runner{Report: model.Report}
		if socketPath != "" {
			runner.Tmux = func(args []string) error { return tmux.Run(socketPath, args) }
		}
		actions, err := manifest.Load(cfg.ManifestPath, runner)
		if err != nil {
			logging.Error(err)
			model.ReportLoad(err)
		} else {
			model.Register(actions)
		}
	}
	return model, cleanup, nil
}
