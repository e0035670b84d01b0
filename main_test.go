package main

import (
	"testing"
	"time"

	"github.com/atomicstack/tmux-cmdk/internal/app"
	"github.com/atomicstack/tmux-cmdk/internal/config"
)

func TestCollectTTYDetailsIncludesStandardDescriptors(t *testing.T) {
	info := collectTTYDetails()
	if len(info.Probes) != 3 {
		t.Fatalf("expected 3 probe entries, got %d", len(info.Probes))
	}
	expected := []string{"stdin", "stdout", "stderr"}
	for i, name := range expected {
		if info.Probes[i].Name != name {
			t.Fatalf("expected probe %d name %q, got %q", i, name, info.Probes[i].Name)
		}
	}
}

func TestStartupTracePayloadIncludesFlags(t *testing.T) {
	cfg := config.Config{
		App: app.Config{
			ManifestPath:   "actions.toml",
			WithTmux:       true,
			SocketPath:     "socket-path",
			Width:          80,
			Height:         24,
			ShowFooter:     true,
			ThrottleWindow: 100 * time.Millisecond,
			ToggleKey:      "ctrl+k",
		},
		Logging: config.Logging{
			FilePath: "trace.log",
			Trace:    true,
		},
		Flags: map[string]string{
			"manifest": "actions.toml",
			"socket":   "socket-path",
			"width":    "80",
			"height":   "24",
			"footer":   "true",
		},
		Args: []string{"--socket", "socket-path"},
	}

	payload := startupTracePayload(cfg)

	flagsValue, ok := payload["flags"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected flags map in payload")
	}
	if flagsValue["socket"] != "socket-path" {
		t.Fatalf("expected socket flag %q, got %v", "socket-path", flagsValue["socket"])
	}
	if flagsValue["width"] != "80" {
		t.Fatalf("expected width 80, got %v", flagsValue["width"])
	}
	if flagsValue["height"] != "24" {
		t.Fatalf("expected height 24, got %v", flagsValue["height"])
	}
	if flagsValue["footer"] != "true" {
		t.Fatalf("expected footer flag true, got %v", flagsValue["footer"])
	}
	if flagsValue["trace"] != true {
		t.Fatalf("expected trace flag true, got %v", flagsValue["trace"])
	}
	if flagsValue["manifest"] != "actions.toml" {
		t.Fatalf("expected manifest flag actions.toml, got %v", flagsValue["manifest"])
	}
	if flagsValue["logFile"] != "trace.log" {
		t.Fatalf("expected log file trace.log, got %v", flagsValue["logFile"])
	}

	palette, ok := payload["palette"].(paletteSummary)
	if !ok {
		t.Fatalf("expected palette summary in payload")
	}
	want := paletteSummary{
		Manifest:   "actions.toml",
		Toggle:     "ctrl+k",
		Tmux:       true,
		ThrottleMS: 100,
	}
	if palette != want {
		t.Fatalf("expected palette summary %#v, got %#v", want, palette)
	}

	if _, ok := payload["tty"].(ttyDetails); !ok {
		t.Fatalf("expected tty details in payload")
	}
	if cfgValue, ok := payload["config"].(config.Config); !ok {
		t.Fatalf("expected config in payload")
	} else if cfgValue.App != cfg.App {
		t.Fatalf("expected app config %#v, got %#v", cfg.App, cfgValue.App)
	}
}
