package shortcut

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/tmux-cmdk/internal/action"
	"github.com/atomicstack/tmux-cmdk/internal/store"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func counterStore(counter *int) *store.Store {
	return store.New([]action.Action{
		{ID: "x", Name: "Count", Shortcut: []string{"g", "g"}, Perform: func() any {
			*counter++
			return nil
		}},
	}, store.Options{})
}

func newBuffer(s *store.Store, ignore func() bool) (*Buffer, *fakeClock) {
	clock := &fakeClock{t: time.Unix(1000, 0)}
	b := New(s, 0, ignore)
	b.now = clock.now
	return b, clock
}

func TestChordWithinGapPerformsOnce(t *testing.T) {
	count := 0
	b, clock := newBuffer(counterStore(&count), nil)

	b.HandleKey(runeKey('g'))
	clock.advance(200 * time.Millisecond)
	n, ok := b.HandleKey(runeKey('g'))

	if !ok || n == nil || n.ID != "x" {
		t.Fatalf("expected chord to match x, got %v %v", n, ok)
	}
	if count != 1 {
		t.Fatalf("expected counter 1, got %d", count)
	}
	if b.Buffered() != "" {
		t.Fatalf("buffer should clear after a match, got %q", b.Buffered())
	}
}

func TestChordAfterGapDoesNotFire(t *testing.T) {
	count := 0
	b, clock := newBuffer(counterStore(&count), nil)

	b.HandleKey(runeKey('g'))
	clock.advance(500 * time.Millisecond)
	if _, ok := b.HandleKey(runeKey('g')); ok {
		t.Fatalf("chord split by a long pause must not match")
	}
	if count != 0 {
		t.Fatalf("expected counter 0, got %d", count)
	}
	if b.Buffered() != "g" {
		t.Fatalf("expected buffer to restart with g, got %q", b.Buffered())
	}
}

func TestUppercaseKeysAreLowered(t *testing.T) {
	count := 0
	b, _ := newBuffer(counterStore(&count), nil)
	b.HandleKey(runeKey('G'))
	b.HandleKey(runeKey('g'))
	if count != 1 {
		t.Fatalf("expected counter 1, got %d", count)
	}
}

func TestIgnoredWhileInputFocused(t *testing.T) {
	count := 0
	focused := true
	b, _ := newBuffer(counterStore(&count), func() bool { return focused })
	b.HandleKey(runeKey('g'))
	b.HandleKey(runeKey('g'))
	if count != 0 || b.Buffered() != "" {
		t.Fatalf("keys must be ignored while focused, count=%d buffer=%q", count, b.Buffered())
	}
	focused = false
	b.HandleKey(runeKey('g'))
	b.HandleKey(runeKey('g'))
	if count != 1 {
		t.Fatalf("expected counter 1, got %d", count)
	}
}

func TestModifiedAndSpecialKeysAreIgnored(t *testing.T) {
	count := 0
	b, _ := newBuffer(counterStore(&count), nil)
	b.HandleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'g'}, Alt: true})
	b.HandleKey(tea.KeyMsg{Type: tea.KeyShiftTab})
	b.HandleKey(tea.KeyMsg{Type: tea.KeyEnter})
	if b.Buffered() != "" {
		t.Fatalf("expected empty buffer, got %q", b.Buffered())
	}
}

func TestParentChordOpensPaletteAtRoot(t *testing.T) {
	opened := 0
	s := store.New([]action.Action{
		{ID: "sessions", Name: "Switch session", Shortcut: []string{"g", "s"}},
		{ID: "main", Name: "main", Parent: "sessions"},
	}, store.Options{Callbacks: store.Callbacks{OnOpen: func() { opened++ }}})
	b, _ := newBuffer(s, nil)

	b.HandleKey(runeKey('g'))
	b.HandleKey(runeKey('s'))

	st := s.State()
	if st.RootID != "sessions" || st.Visual != store.AnimatingIn {
		t.Fatalf("expected palette opening at sessions, got root=%q visual=%s", st.RootID, st.Visual)
	}
	if opened != 1 {
		t.Fatalf("expected one open callback, got %d", opened)
	}
}
