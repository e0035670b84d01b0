// Package shortcut recognises multi-key chords typed outside the palette and
// triggers the action that declares them.
package shortcut

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/tmux-cmdk/internal/action"
	"github.com/atomicstack/tmux-cmdk/internal/logging/events"
	"github.com/atomicstack/tmux-cmdk/internal/store"
)

// DefaultGap is the longest pause allowed between keys of one chord.
const DefaultGap = 400 * time.Millisecond

// Buffer accumulates keystrokes and matches them against action shortcuts.
type Buffer struct {
	store  *store.Store
	gap    time.Duration
	ignore func() bool
	now    func() time.Time

	keys string
	last time.Time
}

// New builds a buffer. ignore reports whether a focused input currently owns
// the keyboard; it may be nil.
func New(s *store.Store, gap time.Duration, ignore func() bool) *Buffer {
	if gap <= 0 {
		gap = DefaultGap
	}
	return &Buffer{store: s, gap: gap, ignore: ignore, now: time.Now}
}

// Buffered returns the keys typed so far.
func (b *Buffer) Buffered() string {
	return b.keys
}

// HandleKey feeds msg into the buffer. On a match the buffer clears, a
// parent action opens the palette rooted at itself and a leaf runs its
// command directly. It reports the matched node.
func (b *Buffer) HandleKey(msg tea.KeyMsg) (*action.Node, bool) {
	if b.ignore != nil && b.ignore() {
		return nil, false
	}
	if msg.Alt || msg.Type != tea.KeyRunes || len(msg.Runes) == 0 {
		return nil, false
	}

	now := b.now()
	if b.keys != "" && now.Sub(b.last) > b.gap {
		events.Shortcut.Reset(b.keys)
		b.keys = ""
	}
	b.last = now
	b.keys += strings.ToLower(string(msg.Runes))

	n := b.lookup(b.keys)
	if n == nil {
		return nil, false
	}
	b.keys = ""
	b.trigger(n)
	return n, true
}

func (b *Buffer) lookup(typed string) *action.Node {
	for _, n := range b.store.State().Actions.All() {
		if sc := n.ShortcutString(); sc != "" && strings.ToLower(sc) == typed {
			return n
		}
	}
	return nil
}

func (b *Buffer) trigger(n *action.Node) {
	opens := n.HasChildren()
	events.Shortcut.Match(n.ID, n.ShortcutString(), opens)
	if opens {
		b.store.SetCurrentRoot(n.ID)
		b.store.Toggle()
		b.store.NotifyOpen()
		events.Palette.Open(n.ID, events.ReasonShortcut)
		return
	}
	if n.Command != nil {
		n.Command.Perform()
		b.store.NotifySelect(n)
	}
}
