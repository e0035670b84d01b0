// Package keys declares the palette key bindings.
package keys

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

// DefaultToggle opens and closes the palette.
const DefaultToggle = "ctrl+k"

// KeyMap holds every binding the palette reacts to.
type KeyMap struct {
	Toggle key.Binding
	Close  key.Binding
	Up     key.Binding
	Down   key.Binding
	Commit key.Binding
	Back   key.Binding
	Quit   key.Binding
}

// New builds the key map with toggle as the open/close chord.
func New(toggle string) (KeyMap, error) {
	chord, err := NormalizeChord(toggle)
	if err != nil {
		return KeyMap{}, fmt.Errorf("toggle key: %w", err)
	}
	km := KeyMap{
		Toggle: key.NewBinding(key.WithKeys(chord), key.WithHelp(chord, "palette")),
		Close:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
		Up:     key.NewBinding(key.WithKeys("up", "ctrl+p"), key.WithHelp("↑", "up")),
		Down:   key.NewBinding(key.WithKeys("down", "ctrl+n", "ctrl+j"), key.WithHelp("↓", "down")),
		Commit: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "run")),
		Back:   key.NewBinding(key.WithKeys("backspace"), key.WithHelp("backspace", "back")),
		Quit:   key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
	}
	// the toggle chord wins over a clashing navigation key
	for _, b := range []*key.Binding{&km.Up, &km.Down} {
		b.SetKeys(without(b.Keys(), chord)...)
	}
	return km, nil
}

// Default returns the key map with the default toggle chord.
func Default() KeyMap {
	km, _ := New(DefaultToggle)
	return km
}

// ShortHelp lists the bindings shown in the palette footer.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Commit, k.Back, k.Close}
}

// NormalizeChord lowercases modifiers and checks the chord has a base key.
func NormalizeChord(raw string) (string, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return "", fmt.Errorf("invalid key %q (empty)", raw)
	}
	parts := strings.Split(value, "+")
	base := strings.TrimSpace(parts[len(parts)-1])
	if base == "" {
		return "", fmt.Errorf("invalid key %q (missing base key)", raw)
	}
	out := make([]string, 0, len(parts))
	for _, mod := range parts[:len(parts)-1] {
		switch m := strings.ToLower(strings.TrimSpace(mod)); m {
		case "ctrl", "control":
			out = append(out, "ctrl")
		case "alt", "option":
			out = append(out, "alt")
		case "shift":
			out = append(out, "shift")
		default:
			return "", fmt.Errorf("invalid key %q (unknown modifier %q)", raw, mod)
		}
	}
	if len(out) > 0 {
		base = strings.ToLower(base)
	}
	return strings.Join(append(out, base), "+"), nil
}

func without(keys []string, drop string) []string {
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		if k != drop {
			out = append(out, k)
		}
	}
	return out
}
