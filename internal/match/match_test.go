package match

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/atomicstack/tmux-cmdk/internal/action"
	"github.com/atomicstack/tmux-cmdk/internal/store"
)

func stateWith(actions []action.Action, search, root string) store.State {
	s := store.New(actions, store.Options{})
	s.SetCurrentRoot(root)
	s.SetSearch(search)
	return s.State()
}

func TestEmptySearchShowsRootResultsWithoutHeaders(t *testing.T) {
	actions := []action.Action{
		{ID: "a", Name: "Alpha", Section: "S1"},
		{ID: "b", Name: "Beta", Parent: "a"},
		{ID: "c", Name: "Gamma", Section: "S2"},
	}
	rows := Compute(stateWith(actions, "", ""))
	if diff := cmp.Diff([]string{"Alpha", "Gamma"}, Labels(rows)); diff != "" {
		t.Fatalf("rows mismatch:\n%s", diff)
	}
	for _, r := range rows {
		if r.IsHeader() {
			t.Fatalf("unexpected header %q", r.Header)
		}
	}

	rows = Compute(stateWith(actions, "", "a"))
	if diff := cmp.Diff([]string{"Beta"}, Labels(rows)); diff != "" {
		t.Fatalf("rooted rows mismatch:\n%s", diff)
	}
}

func TestBlankSearchShowsUnrankedDeepSet(t *testing.T) {
	actions := []action.Action{
		{ID: "a", Name: "Alpha", Section: "S1"},
		{ID: "b", Name: "Beta", Parent: "a"},
	}
	rows := Compute(stateWith(actions, "  ", ""))
	if diff := cmp.Diff([]string{"S1", "Alpha", "Beta"}, Labels(rows)); diff != "" {
		t.Fatalf("rows mismatch:\n%s", diff)
	}
	if !rows[0].IsHeader() {
		t.Fatalf("expected a section header first, got %#v", rows[0])
	}
}

func TestSearchRanksBetaAboveAlpha(t *testing.T) {
	actions := []action.Action{
		{ID: "a", Name: "Alpha"},
		{ID: "b", Name: "Beta"},
		{ID: "z", Name: "Zulu"},
	}
	rows := Compute(stateWith(actions, "bet", ""))
	if diff := cmp.Diff([]string{"Beta"}, Labels(rows)); diff != "" {
		t.Fatalf("rows mismatch:\n%s", diff)
	}

	actions = append(actions, action.Action{ID: "ab", Name: "Alphabet"})
	rows = Compute(stateWith(actions, "bet", ""))
	if diff := cmp.Diff([]string{"Beta", "Alphabet"}, Labels(rows)); diff != "" {
		t.Fatalf("rows mismatch:\n%s", diff)
	}
}

func TestSearchIsDeepWithinRoot(t *testing.T) {
	actions := []action.Action{
		{ID: "theme", Name: "Change theme"},
		{ID: "dark", Name: "Dark", Parent: "theme"},
		{ID: "light", Name: "Light", Parent: "theme"},
		{ID: "deeper", Name: "Darker still", Parent: "dark"},
		{ID: "outside", Name: "Dark mode docs"},
	}

	rows := Compute(stateWith(actions, "dark", ""))
	if diff := cmp.Diff([]string{"Dark", "Darker still", "Dark mode docs"}, Labels(rows)); diff != "" {
		t.Fatalf("top-level deep rows mismatch:\n%s", diff)
	}

	st := stateWith(actions, "dark", "theme")
	rows = Compute(st)
	scope := map[*action.Node]bool{}
	for _, n := range Deep(RootResults(st)) {
		scope[n] = true
	}
	if len(rows) == 0 {
		t.Fatalf("expected matches inside the root")
	}
	for _, r := range rows {
		if r.IsHeader() {
			continue
		}
		if !scope[r.Action] {
			t.Fatalf("row %q escaped the current root", r.Label())
		}
		if r.Action.ID == "outside" {
			t.Fatalf("row outside the root was returned")
		}
	}
}

func TestSearchGroupsBySectionInOrderOfFirstAppearance(t *testing.T) {
	actions := []action.Action{
		{ID: "w1", Name: "Workspace one", Section: "Workspaces"},
		{ID: "n1", Name: "Note", Section: "Notes"},
		{ID: "w2", Name: "Workspace two", Section: "Workspaces"},
		{ID: "plain", Name: "Worklog"},
	}
	rows := Compute(stateWith(actions, "wo", ""))
	// Worklog is the closest match so the unlabelled group comes first.
	want := []string{"Worklog", "Workspaces", "Workspace one", "Workspace two"}
	if diff := cmp.Diff(want, Labels(rows)); diff != "" {
		t.Fatalf("rows mismatch:\n%s", diff)
	}
	if rows[0].IsHeader() || !rows[1].IsHeader() {
		t.Fatalf("unexpected header layout %#v", rows)
	}
}

func TestSearchMatchesKeywordsSubtitleAndSection(t *testing.T) {
	actions := []action.Action{
		{ID: "k", Name: "Kill pane", Keywords: "close destroy"},
		{ID: "s", Name: "Split", Subtitle: "horizontal layout"},
		{ID: "x", Name: "Rename", Section: "Windows"},
	}
	cases := map[string]string{
		"destroy":    "Kill pane",
		"horizontal": "Split",
		"windows":    "Rename",
	}
	for query, want := range cases {
		rows := Compute(stateWith(actions, query, ""))
		var got []string
		for _, r := range rows {
			if !r.IsHeader() {
				got = append(got, r.Label())
			}
		}
		if diff := cmp.Diff([]string{want}, got); diff != "" {
			t.Fatalf("query %q mismatch:\n%s", query, diff)
		}
	}
}

func TestRankTiers(t *testing.T) {
	tree := action.NewTree([]action.Action{
		{ID: "fuzzy", Name: "b-e-t"},
		{ID: "sub", Name: "Alphabet"},
		{ID: "word", Name: "Place bets"},
		{ID: "prefix", Name: "Better"},
		{ID: "exact", Name: "bet"},
	})
	got := Rank(tree.Snapshot().All(), "BET")
	var names []string
	for _, n := range got {
		names = append(names, n.ID)
	}
	if diff := cmp.Diff([]string{"exact", "prefix", "word", "sub", "fuzzy"}, names); diff != "" {
		t.Fatalf("rank order mismatch:\n%s", diff)
	}
}

func TestRootResultsUnknownRootIsEmpty(t *testing.T) {
	st := stateWith([]action.Action{{ID: "a", Name: "Alpha"}}, "", "ghost")
	if rows := Compute(st); len(rows) != 0 {
		t.Fatalf("expected no rows, got %v", Labels(rows))
	}
}

func TestFirstSelectableSkipsHeaders(t *testing.T) {
	n := &action.Node{ID: "a", Name: "Alpha"}
	rows := []Row{HeaderRow("S1"), ActionRow(n)}
	if got := FirstSelectable(rows); got != 1 {
		t.Fatalf("expected 1, got %d", got)
	}
	if got := FirstSelectable([]Row{HeaderRow("S1")}); got != -1 {
		t.Fatalf("expected -1, got %d", got)
	}
}

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func TestThrottleFlushesImmediatelyWhenIdle(t *testing.T) {
	clock := &fakeClock{t: time.Unix(100, 0)}
	th := NewThrottle(100 * time.Millisecond)
	th.now = clock.now

	cmd := th.Schedule()
	msg, ok := cmd().(FlushMsg)
	if !ok || !th.Accept(msg) {
		t.Fatalf("expected an accepted flush, got %#v", msg)
	}

	clock.advance(30 * time.Millisecond)
	if got := th.Pending(); got != 70*time.Millisecond {
		t.Fatalf("expected 70ms pending, got %s", got)
	}
	clock.advance(70 * time.Millisecond)
	if got := th.Pending(); got != 0 {
		t.Fatalf("expected no wait, got %s", got)
	}
}

func TestThrottleReplacesPendingFlush(t *testing.T) {
	clock := &fakeClock{t: time.Unix(100, 0)}
	th := NewThrottle(0)
	th.now = clock.now

	first := th.Schedule()().(FlushMsg)
	second := th.Schedule()().(FlushMsg)
	if th.Accept(first) {
		t.Fatalf("stale flush must be rejected")
	}
	if !th.Accept(second) {
		t.Fatalf("latest flush must be accepted")
	}
}
