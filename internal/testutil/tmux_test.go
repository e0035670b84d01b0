package testutil

import (
	"testing"

	"github.com/atomicstack/tmux-cmdk/internal/tmux"
)

func TestStartTmuxServerLifecycle(t *testing.T) {
	socket, cleanup, _ := StartTmuxServer(t)
	defer cleanup()
	if err := tmuxCommand(socket, "list-sessions").Run(); err != nil {
		t.Skipf("skipping: list-sessions failed: %v", err)
	}
}

func TestFetchSessionsFromLiveServer(t *testing.T) {
	socket, cleanup, logDir := StartTmuxServer(t)
	defer cleanup()
	t.Cleanup(func() {
		tmux.Shutdown()
		AssertNoServerCrash(t, logDir)
	})
	if err := tmuxCommand(socket, "new-session", "-d", "-s", "second", "sleep", "600").Run(); err != nil {
		t.Skipf("skipping: unable to create second session: %v", err)
	}
	snap, err := tmux.FetchSessions(socket, "")
	if err != nil {
		t.Fatalf("FetchSessions: %v", err)
	}
	names := map[string]bool{}
	for _, name := range snap.Names() {
		names[name] = true
	}
	if !names[TestSession] || !names["second"] {
		t.Fatalf("expected both sessions, got %v", snap.Names())
	}
}
