// Package manifest loads palette actions from a TOML or YAML file.
//
// A TOML manifest lists [[action]] tables, a YAML manifest an `actions:`
// sequence. Each entry runs at most one of a detached shell command (run),
// a clipboard copy (copy) or a tmux command line (tmux). Entries without a
// side effect are plain groups for their children.
package manifest

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/google/uuid"
	"github.com/kballard/go-shellquote"
	"gopkg.in/yaml.v3"

	"github.com/atomicstack/tmux-cmdk/internal/action"
	"github.com/atomicstack/tmux-cmdk/internal/logging/events"
)

// Entry is one action as written in a manifest.
type Entry struct {
	ID       string   `toml:"id" yaml:"id"`
	Name     string   `toml:"name" yaml:"name"`
	Section  string   `toml:"section" yaml:"section"`
	Subtitle string   `toml:"subtitle" yaml:"subtitle"`
	Keywords string   `toml:"keywords" yaml:"keywords"`
	Parent   string   `toml:"parent" yaml:"parent"`
	Shortcut []string `toml:"shortcut" yaml:"shortcut"`
	Run      string   `toml:"run" yaml:"run"`
	Copy     string   `toml:"copy" yaml:"copy"`
	Tmux     string   `toml:"tmux" yaml:"tmux"`
}

type file struct {
	Actions []Entry `toml:"action" yaml:"actions"`
}

// ErrUnsupportedFormat is returned for manifest paths with an unknown
// extension.
var ErrUnsupportedFormat = errors.New("unsupported manifest format")

// Supported reports whether path has a manifest extension.
func Supported(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml", ".yaml", ".yml":
		return true
	}
	return false
}

// Load reads path and builds its actions with r performing side effects.
func Load(path string, r Runner) ([]action.Action, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	entries, err := Decode(path, data)
	if err != nil {
		return nil, err
	}
	actions, err := Build(entries, r)
	if err != nil {
		return nil, fmt.Errorf("manifest %s: %w", path, err)
	}
	events.Manifest.Load(path, len(actions))
	return actions, nil
}

// Decode parses manifest data, picking the format from the path extension.
func Decode(path string, data []byte) ([]Entry, error) {
	var f file
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if err := toml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
	return f.Actions, nil
}

// Build validates entries and converts them into actions ordered so that
// every parent precedes its children.
func Build(entries []Entry, r Runner) ([]action.Action, error) {
	seen := make(map[string]struct{}, len(entries))
	pending := make([]action.Action, 0, len(entries))
	for i, e := range entries {
		a, err := r.build(e)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i+1, err)
		}
		if _, dup := seen[a.ID]; dup {
			return nil, fmt.Errorf("entry %d: duplicate id %q", i+1, a.ID)
		}
		seen[a.ID] = struct{}{}
		pending = append(pending, a)
	}
	return order(pending)
}

func (r Runner) build(e Entry) (action.Action, error) {
	name := strings.TrimSpace(e.Name)
	if name == "" {
		return action.Action{}, errors.New("name is required")
	}
	id := strings.TrimSpace(e.ID)
	if id == "" {
		id = uuid.NewString()
	}
	a := action.Action{
		ID:       id,
		Name:     name,
		Section:  strings.TrimSpace(e.Section),
		Subtitle: strings.TrimSpace(e.Subtitle),
		Keywords: strings.TrimSpace(e.Keywords),
		Parent:   strings.TrimSpace(e.Parent),
		Shortcut: e.Shortcut,
	}

	effects := 0
	for _, v := range []string{e.Run, e.Copy, e.Tmux} {
		if strings.TrimSpace(v) != "" {
			effects++
		}
	}
	if effects > 1 {
		return action.Action{}, fmt.Errorf("%q: run, copy and tmux are mutually exclusive", id)
	}

	switch {
	case strings.TrimSpace(e.Run) != "":
		argv, err := split(e.Run)
		if err != nil {
			return action.Action{}, fmt.Errorf("%q run: %w", id, err)
		}
		a.Perform = r.runPerformer(id, argv)
	case e.Copy != "":
		a.Perform = r.copyPerformer(id, e.Copy)
	case strings.TrimSpace(e.Tmux) != "":
		args, err := split(e.Tmux)
		if err != nil {
			return action.Action{}, fmt.Errorf("%q tmux: %w", id, err)
		}
		a.Perform = r.tmuxPerformer(id, args)
	}
	return a, nil
}

func split(command string) ([]string, error) {
	argv, err := shellquote.Split(command)
	if err != nil {
		return nil, err
	}
	if len(argv) == 0 {
		return nil, errors.New("empty command")
	}
	return argv, nil
}

// order places parents before children, keeping file order otherwise.
func order(actions []action.Action) ([]action.Action, error) {
	placed := make(map[string]struct{}, len(actions))
	out := make([]action.Action, 0, len(actions))
	rest := actions
	for len(rest) > 0 {
		var next []action.Action
		for _, a := range rest {
			if _, ok := placed[a.Parent]; a.Parent == "" || ok {
				placed[a.ID] = struct{}{}
				out = append(out, a)
				continue
			}
			next = append(next, a)
		}
		if len(next) == len(rest) {
			return nil, fmt.Errorf("action %q: parent %q is not defined", next[0].ID, next[0].Parent)
		}
		rest = next
	}
	return out, nil
}
