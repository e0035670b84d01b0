package backend

import (
	"context"
	"sync"
	"time"

	"github.com/atomicstack/tmux-cmdk/internal/tmux"
)

// Kind represents the type of data emitted by the backend watcher.
type Kind int

const (
	KindSessions Kind = iota
)

// Event conveys updated data or an error from a backend poll.
type Event struct {
	Kind     Kind
	Sessions tmux.SessionSnapshot
	Err      error
}

// Watcher polls tmux at a fixed interval and publishes events.
type Watcher struct {
	interval time.Duration
	fetch    func(context.Context) (tmux.SessionSnapshot, error)

	ctx    context.Context
	cancel context.CancelFunc

	events chan Event
	wg     sync.WaitGroup
}

// NewWatcher creates a watcher that lists the sessions behind socketPath
// every interval.
func NewWatcher(socketPath, labelFormat string, interval time.Duration) *Watcher {
	return newWatcher(interval, func(context.Context) (tmux.SessionSnapshot, error) {
		return tmux.FetchSessions(socketPath, labelFormat)
	})
}

func newWatcher(interval time.Duration, fetch func(context.Context) (tmux.SessionSnapshot, error)) *Watcher {
	ctx, cancel := context.WithCancel(context.Background())
	w := &Watcher{
		interval: interval,
		fetch:    fetch,
		ctx:      ctx,
		cancel:   cancel,
		events:   make(chan Event, 16),
	}

	w.startSessionPoller()

	go func() {
		w.wg.Wait()
		close(w.events)
	}()

	return w
}

// Events returns a channel of backend events.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Stop cancels the watcher. Pollers exit after their current fetch completes;
// use Wait if a clean drain is required (e.g. in tests).
func (w *Watcher) Stop() {
	w.cancel()
}

// Wait blocks until all poller goroutines have exited and the events channel
// is closed. Call after Stop when a clean shutdown is required.
func (w *Watcher) Wait() {
	w.wg.Wait()
}

func (w *Watcher) startSessionPoller() {
	throttle := newThrottle(250 * time.Millisecond)
	w.wg.Add(1)
	go w.poll(KindSessions, func(ctx context.Context) (tmux.SessionSnapshot, error) {
		if !throttle.wait(ctx) {
			return tmux.SessionSnapshot{}, ctx.Err()
		}
		return w.fetch(ctx)
	})
}

func (w *Watcher) poll(kind Kind, fetch func(context.Context) (tmux.SessionSnapshot, error)) {
	defer w.wg.Done()

	emit := func() bool {
		snap, err := fetch(w.ctx)
		evt := Event{Kind: kind, Sessions: snap, Err: err}
		select {
		case <-w.ctx.Done():
			return false
		case w.events <- evt:
			return true
		}
	}

	if !emit() {
		return
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.ctx.Done():
			return
		case <-ticker.C:
			if !emit() {
				return
			}
		}
	}
}
