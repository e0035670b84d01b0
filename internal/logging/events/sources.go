package events

import "github.com/atomicstack/tmux-cmdk/internal/logging"

type ShortcutTracer struct{}

type ManifestTracer struct{}

type TmuxTracer struct{}

var (
	Shortcut = ShortcutTracer{}
	Manifest = ManifestTracer{}
	Tmux     = TmuxTracer{}
)

func (ShortcutTracer) Reset(buffer string) {
	logging.Trace("shortcut.reset", map[string]interface{}{"buffer": buffer})
}

func (ShortcutTracer) Match(id, buffer string, opensPalette bool) {
	logging.Trace("shortcut.match", map[string]interface{}{"id": id, "buffer": buffer, "opens": opensPalette})
}

func (ManifestTracer) Load(path string, actions int) {
	logging.Trace("manifest.load", map[string]interface{}{"path": path, "actions": actions})
}

func (ManifestTracer) Run(id string, argv []string) {
	logging.Trace("manifest.run", map[string]interface{}{"id": id, "argv": argv})
}

func (ManifestTracer) Copy(id string, size int) {
	logging.Trace("manifest.copy", map[string]interface{}{"id": id, "bytes": size})
}

func (TmuxTracer) Sessions(names []string) {
	logging.Trace("tmux.sessions", map[string]interface{}{"sessions": names})
}

func (TmuxTracer) Switch(target string) {
	logging.Trace("tmux.switch", map[string]interface{}{"target": target})
}

func (TmuxTracer) Error(err error) {
	if err == nil {
		return
	}
	logging.Trace("tmux.error", map[string]interface{}{"error": err.Error()})
}
