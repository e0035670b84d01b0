package tmux

import (
	"sync"

	gotmux "github.com/atomicstack/gotmuxcc/gotmuxcc"
)

type Session struct {
	Name     string
	Label    string
	Attached bool
	Clients  []string
	Current  bool
	Windows  int
}

type SessionSnapshot struct {
	Sessions []Session
	Current  string
}

// Names lists the session names in order.
func (s SessionSnapshot) Names() []string {
	out := make([]string, 0, len(s.Sessions))
	for _, sess := range s.Sessions {
		out = append(out, sess.Name)
	}
	return out
}

type tmuxClient interface {
	ListSessions() ([]*gotmux.Session, error)
	ListClients() ([]*gotmux.Client, error)
	SwitchClient(*gotmux.SwitchClientOptions) error
	DisplayMessage(target, format string) (string, error)
	Command(parts ...string) (string, error)
	Close() error
}

var (
	clientMu     sync.Mutex
	cachedClient tmuxClient
	cachedSocket string

	defaultSessionFormat = "#{session_windows} windows#{?session_attached, (attached),}"

	dialTmux = func(socketPath string) (tmuxClient, error) {
		if socketPath != "" {
			return gotmux.NewTmux(socketPath)
		}
		return gotmux.DefaultTmux()
	}

	// newTmux reuses one control-mode connection per socket.
	newTmux = func(socketPath string) (tmuxClient, error) {
		clientMu.Lock()
		defer clientMu.Unlock()
		if cachedClient != nil && cachedSocket == socketPath {
			return cachedClient, nil
		}
		if cachedClient != nil {
			_ = cachedClient.Close()
		}
		client, err := dialTmux(socketPath)
		if err != nil {
			cachedClient, cachedSocket = nil, ""
			return nil, err
		}
		cachedClient, cachedSocket = client, socketPath
		return client, nil
	}
)

// Shutdown closes the cached tmux connection.
func Shutdown() {
	clientMu.Lock()
	defer clientMu.Unlock()
	if cachedClient != nil {
		_ = cachedClient.Close()
	}
	cachedClient = nil
	cachedSocket = ""
}
