package manifest

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"

	"github.com/atomicstack/tmux-cmdk/internal/action"
)

const tomlManifest = `
[[action]]
id = "editor"
name = "Open editor"
section = "Tools"
run = "nvim '/tmp/notes file.md'"
shortcut = ["g", "e"]

[[action]]
id = "theme-dark"
name = "Dark"
parent = "theme"
tmux = "set -g status-style 'bg=black'"

[[action]]
id = "theme"
name = "Change theme"
keywords = "colours"

[[action]]
name = "Copy greeting"
copy = "hello"
`

const yamlManifest = `
actions:
  - id: windows
    name: Windows
  - id: new-window
    name: New window
    parent: windows
    tmux: new-window
`

func writeManifest(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	return path
}

type recorder struct {
	started [][]string
	copied  []string
	tmux    [][]string
}

func (r *recorder) runner() Runner {
	return Runner{
		Start: func(argv []string) error { r.started = append(r.started, argv); return nil },
		Copy:  func(text string) error { r.copied = append(r.copied, text); return nil },
		Tmux:  func(args []string) error { r.tmux = append(r.tmux, args); return nil },
	}
}

func find(t *testing.T, actions []action.Action, id string) action.Action {
	t.Helper()
	for _, a := range actions {
		if a.ID == id {
			return a
		}
	}
	t.Fatalf("action %q not found", id)
	return action.Action{}
}

func TestLoadTOMLOrdersParentsFirst(t *testing.T) {
	rec := &recorder{}
	actions, err := Load(writeManifest(t, "cmdk.toml", tomlManifest), rec.runner())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(actions) != 4 {
		t.Fatalf("expected 4 actions, got %d", len(actions))
	}
	generated := actions[2]
	if _, err := uuid.Parse(generated.ID); err != nil {
		t.Fatalf("expected generated uuid, got %q", generated.ID)
	}
	ids := []string{actions[0].ID, actions[1].ID, actions[3].ID}
	if diff := cmp.Diff([]string{"editor", "theme", "theme-dark"}, ids); diff != "" {
		t.Fatalf("order mismatch:\n%s", diff)
	}

	// the ordered actions must be accepted by the tree
	action.NewTree(actions)

	find(t, actions, "editor").Perform()
	find(t, actions, "theme-dark").Perform()
	generated.Perform()

	if diff := cmp.Diff([][]string{{"nvim", "/tmp/notes file.md"}}, rec.started); diff != "" {
		t.Fatalf("started mismatch:\n%s", diff)
	}
	if diff := cmp.Diff([][]string{{"set", "-g", "status-style", "bg=black"}}, rec.tmux); diff != "" {
		t.Fatalf("tmux mismatch:\n%s", diff)
	}
	if diff := cmp.Diff([]string{"hello"}, rec.copied); diff != "" {
		t.Fatalf("copied mismatch:\n%s", diff)
	}
	if find(t, actions, "theme").Perform != nil {
		t.Fatalf("group entries must not have a performer")
	}
	if diff := cmp.Diff([]string{"g", "e"}, find(t, actions, "editor").Shortcut); diff != "" {
		t.Fatalf("shortcut mismatch:\n%s", diff)
	}
}

func TestLoadYAML(t *testing.T) {
	rec := &recorder{}
	actions, err := Load(writeManifest(t, "cmdk.yml", yamlManifest), rec.runner())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(actions) != 2 || actions[1].Parent != "windows" {
		t.Fatalf("unexpected actions %#v", actions)
	}
	actions[1].Perform()
	if diff := cmp.Diff([][]string{{"new-window"}}, rec.tmux); diff != "" {
		t.Fatalf("tmux mismatch:\n%s", diff)
	}
}

func TestLoadRejectsUnknownExtension(t *testing.T) {
	_, err := Load(writeManifest(t, "cmdk.json", "{}"), Runner{})
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
	if Supported("x.json") || !Supported("X.YAML") {
		t.Fatalf("Supported gave the wrong answer")
	}
}

func TestBuildErrors(t *testing.T) {
	cases := map[string][]Entry{
		"name is required":   {{ID: "a"}},
		"duplicate id":       {{ID: "a", Name: "A"}, {ID: "a", Name: "B"}},
		"mutually exclusive": {{ID: "a", Name: "A", Run: "ls", Copy: "x"}},
		`parent "ghost"`:     {{ID: "a", Name: "A", Parent: "ghost"}},
		"Unterminated":       {{ID: "a", Name: "A", Run: "echo 'oops"}},
	}
	for want, entries := range cases {
		_, err := Build(entries, Runner{})
		if err == nil || !strings.Contains(err.Error(), want) {
			t.Fatalf("expected error containing %q, got %v", want, err)
		}
	}
}

func TestPerformFailureIsReported(t *testing.T) {
	var reported []string
	r := Runner{
		Start:  func([]string) error { return errors.New("boom") },
		Report: func(id string, err error) { reported = append(reported, id+": "+err.Error()) },
	}
	actions, err := Build([]Entry{{ID: "fail", Name: "Fail", Run: "false"}}, r)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	actions[0].Perform()
	if len(reported) != 1 || !strings.Contains(reported[0], "boom") {
		t.Fatalf("expected failure report, got %v", reported)
	}
}
