package events

import "github.com/atomicstack/tmux-cmdk/internal/logging"

type PaletteTracer struct{}

type StoreTracer struct{}

type NavTracer struct{}

type CommandTracer struct{}

// Reason records what opened or closed the palette.
type Reason string

const (
	ReasonToggle   Reason = "toggle"
	ReasonEscape   Reason = "escape"
	ReasonShortcut Reason = "shortcut"
	ReasonCommit   Reason = "commit"
	ReasonStartup  Reason = "startup"
)

var (
	Palette = PaletteTracer{}
	Store   = StoreTracer{}
	Nav     = NavTracer{}
	Command = CommandTracer{}
)

func (PaletteTracer) Open(root string, reason Reason) {
	logging.Trace("palette.open", map[string]interface{}{"root": root, "reason": string(reason)})
}

func (PaletteTracer) Close(reason Reason) {
	logging.Trace("palette.close", map[string]interface{}{"reason": string(reason)})
}

func (PaletteTracer) Phase(from, to string) {
	logging.Trace("palette.phase", map[string]interface{}{"from": from, "to": to})
}

func (PaletteTracer) Root(root string) {
	logging.Trace("palette.root", map[string]interface{}{"root": root})
}

func (PaletteTracer) Search(query string) {
	logging.Trace("palette.search", map[string]interface{}{"query": query})
}

func (PaletteTracer) Results(query string, rows int) {
	logging.Trace("palette.results", map[string]interface{}{"query": query, "rows": rows})
}

func (StoreTracer) Register(ids []string) {
	logging.Trace("store.register", map[string]interface{}{"ids": ids})
}

func (StoreTracer) Unregister(ids []string) {
	logging.Trace("store.unregister", map[string]interface{}{"ids": ids})
}

func (StoreTracer) Replace(id string) {
	logging.Trace("store.replace", map[string]interface{}{"id": id})
}

func (NavTracer) Cursor(index int) {
	logging.Trace("nav.cursor", map[string]interface{}{"index": index})
}

func (NavTracer) Drill(id string) {
	logging.Trace("nav.drill", map[string]interface{}{"id": id})
}

func (NavTracer) Back(from, to string) {
	logging.Trace("nav.back", map[string]interface{}{"from": from, "to": to})
}

func (CommandTracer) Perform(id string) {
	logging.Trace("command.perform", map[string]interface{}{"id": id})
}

func (CommandTracer) Negatable(id string) {
	logging.Trace("command.negatable", map[string]interface{}{"id": id})
}

func (CommandTracer) Error(id string, err error) {
	if err == nil {
		return
	}
	logging.Trace("command.error", map[string]interface{}{"id": id, "error": err.Error()})
}
