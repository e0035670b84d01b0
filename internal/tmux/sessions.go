package tmux

import (
	"errors"
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"strings"

	gotmux "github.com/atomicstack/gotmuxcc/gotmuxcc"

	"github.com/atomicstack/tmux-cmdk/internal/logging/events"
)

// FetchSessions lists the sessions on the server behind socketPath. format is
// an optional tmux format used for the session labels.
func FetchSessions(socketPath, format string) (SessionSnapshot, error) {
	client, err := newTmux(socketPath)
	if err != nil {
		return SessionSnapshot{}, err
	}
	sessions, err := client.ListSessions()
	if err != nil {
		return SessionSnapshot{}, err
	}
	labels := fetchSessionLabels(client, format)
	current := currentSessionName(client)
	out := make([]Session, 0, len(sessions))
	for _, s := range sessions {
		if s == nil {
			continue
		}
		label := labels[s.Name]
		if label == "" {
			label = defaultLabelForSession(s)
		}
		out = append(out, Session{
			Name:     s.Name,
			Label:    label,
			Attached: s.Attached > 0,
			Clients:  append([]string(nil), s.AttachedList...),
			Current:  s.Name == current,
			Windows:  s.Windows,
		})
	}
	snap := SessionSnapshot{Sessions: out, Current: current}
	events.Tmux.Sessions(snap.Names())
	return snap, nil
}

// SwitchClient points clientID (or the current client) at session target.
func SwitchClient(socketPath, clientID, target string) error {
	target = strings.TrimSpace(target)
	if target == "" {
		return errors.New("session target required")
	}
	client, err := newTmux(socketPath)
	if err != nil {
		return err
	}
	opts := &gotmux.SwitchClientOptions{TargetSession: target}
	if strings.TrimSpace(clientID) != "" {
		opts.TargetClient = clientID
	}
	events.Tmux.Switch(target)
	return client.SwitchClient(opts)
}

// Run sends a raw tmux command over the control connection.
func Run(socketPath string, args []string) error {
	if len(args) == 0 {
		return errors.New("tmux command required")
	}
	client, err := newTmux(socketPath)
	if err != nil {
		return err
	}
	if _, err := client.Command(args...); err != nil {
		return fmt.Errorf("tmux %s: %w", strings.Join(args, " "), err)
	}
	return nil
}

// CurrentClientID attempts to detect the client that launched the palette so
// SwitchClient targets the visible tmux client instead of the control-mode
// connection.
func CurrentClientID(socketPath string) string {
	client, err := newTmux(socketPath)
	if err != nil {
		return ""
	}
	target := strings.TrimSpace(os.Getenv("TMUX_PANE"))
	name, err := client.DisplayMessage(target, "#{client_name}")
	if err != nil {
		return ""
	}
	return strings.TrimSpace(name)
}

// ResolveSocketPath picks the tmux socket: the flag value, then
// TMUX_CMDK_SOCKET, then the socket of the enclosing tmux, then the default
// per-user socket.
func ResolveSocketPath(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if envSocket := os.Getenv("TMUX_CMDK_SOCKET"); envSocket != "" {
		return envSocket, nil
	}
	if tmuxEnv := os.Getenv("TMUX"); tmuxEnv != "" {
		parts := strings.Split(tmuxEnv, ",")
		if len(parts) > 0 && parts[0] != "" {
			return parts[0], nil
		}
	}
	baseDir := os.Getenv("TMUX_TMPDIR")
	if baseDir == "" {
		baseDir = "/tmp"
	}
	u, err := user.Current()
	if err != nil {
		return "", err
	}
	return filepath.Join(baseDir, fmt.Sprintf("tmux-%s", u.Uid), "default"), nil
}

func fetchSessionLabels(client tmuxClient, format string) map[string]string {
	labelExpr := strings.TrimSpace(format)
	if labelExpr == "" {
		labelExpr = defaultSessionFormat
	}
	output, err := client.Command("list-sessions", "-F", "#{session_name}\t"+labelExpr)
	if err != nil {
		return map[string]string{}
	}
	lines := strings.Split(strings.TrimSpace(output), "\n")
	labels := make(map[string]string, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		parts := strings.SplitN(line, "\t", 2)
		name := strings.TrimSpace(parts[0])
		if name == "" {
			continue
		}
		label := name
		if len(parts) > 1 {
			if trimmed := strings.TrimSpace(parts[1]); trimmed != "" {
				label = trimmed
			}
		}
		labels[name] = label
	}
	return labels
}

func defaultLabelForSession(s *gotmux.Session) string {
	label := fmt.Sprintf("%d window", s.Windows)
	if s.Windows != 1 {
		label += "s"
	}
	if s.Attached > 0 {
		label += " (attached)"
	}
	return label
}

func currentSessionName(client tmuxClient) string {
	if clients, err := client.ListClients(); err == nil {
		for _, c := range clients {
			if c != nil && c.Session != "" && !c.ControlMode {
				return c.Session
			}
		}
	}
	return ""
}
