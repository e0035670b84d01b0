package manifest

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/atotto/clipboard"

	"github.com/atomicstack/tmux-cmdk/internal/action"
	"github.com/atomicstack/tmux-cmdk/internal/logging"
	"github.com/atomicstack/tmux-cmdk/internal/logging/events"
)

// Runner performs manifest side effects. Nil fields use the defaults:
// a detached process, the system clipboard and the tmux binary.
type Runner struct {
	Start func(argv []string) error
	Copy  func(text string) error
	Tmux  func(args []string) error
	// Report receives failures from performed actions.
	Report func(id string, err error)
}

func (r Runner) runPerformer(id string, argv []string) action.Performer {
	return func() any {
		events.Manifest.Run(id, argv)
		start := r.Start
		if start == nil {
			start = startDetached
		}
		r.report(id, start(argv))
		return nil
	}
}

func (r Runner) copyPerformer(id, text string) action.Performer {
	return func() any {
		events.Manifest.Copy(id, len(text))
		write := r.Copy
		if write == nil {
			write = clipboard.WriteAll
		}
		r.report(id, write(text))
		return nil
	}
}

func (r Runner) tmuxPerformer(id string, args []string) action.Performer {
	return func() any {
		events.Manifest.Run(id, append([]string{"tmux"}, args...))
		run := r.Tmux
		if run == nil {
			run = runTmux
		}
		r.report(id, run(args))
		return nil
	}
}

func (r Runner) report(id string, err error) {
	if err == nil {
		return
	}
	err = fmt.Errorf("action %s: %w", id, err)
	events.Command.Error(id, err)
	logging.Error(err)
	if r.Report != nil {
		r.Report(id, err)
	}
}

// startDetached launches argv without waiting; the process is reaped in the
// background.
func startDetached(argv []string) error {
	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Stdin = nil
	cmd.Stdout = nil
	cmd.Stderr = nil
	if err := cmd.Start(); err != nil {
		return err
	}
	go func() {
		_ = cmd.Wait()
	}()
	return nil
}

func runTmux(args []string) error {
	cmd := exec.Command("tmux", args...)
	cmd.Env = os.Environ()
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("tmux %v: %w: %s", args, err, out)
	}
	return nil
}
