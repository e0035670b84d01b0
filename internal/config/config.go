package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"

	"github.com/atomicstack/tmux-cmdk/internal/app"
	"github.com/atomicstack/tmux-cmdk/internal/keys"
	"github.com/atomicstack/tmux-cmdk/internal/manifest"
)

// Config captures runtime configuration for the application.
type Config struct {
	App     app.Config
	Logging Logging
	Flags   map[string]string
	Args    []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

const (
	envManifest    = "TMUX_CMDK_MANIFEST"
	envTmux        = "TMUX_CMDK_TMUX"
	envSocketPath  = "TMUX_CMDK_SOCKET"
	envWidth       = "TMUX_CMDK_WIDTH"
	envHeight      = "TMUX_CMDK_HEIGHT"
	envEnterMS     = "TMUX_CMDK_ENTER_MS"
	envExitMS      = "TMUX_CMDK_EXIT_MS"
	envThrottleMS  = "TMUX_CMDK_THROTTLE_MS"
	envGapMS       = "TMUX_CMDK_SHORTCUT_GAP_MS"
	envToggleKey   = "TMUX_CMDK_TOGGLE_KEY"
	envOpen        = "TMUX_CMDK_OPEN"
	envShowFooter  = "TMUX_CMDK_FOOTER"
	envTrace       = "TMUX_CMDK_TRACE"
	envLogFile     = "TMUX_CMDK_LOG_FILE"
	defaultGapMS   = 400
	defaultFlushMS = 100
)

// Load parses configuration from CLI arguments and environment variables.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment.
func LoadArgs(args []string, environ []string) (Config, error) {
	env := parseEnv(environ)

	fs := pflag.NewFlagSet("tmux-cmdk", pflag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))

	manifestPath := fs.String("manifest", envOrDefault(env, envManifest, ""), "path to a TOML or YAML action manifest")
	withTmux := fs.Bool("tmux", envOrBool(env, envTmux, true), "register a \"Switch session\" action backed by live tmux sessions")
	socket := fs.String("socket", envOrDefault(env, envSocketPath, ""), "path to the tmux socket (overrides environment detection)")
	width := fs.Int("width", envOrInt(env, envWidth, 0), "palette width in cells (0 sizes from the terminal)")
	height := fs.Int("height", envOrInt(env, envHeight, 0), "palette list height in rows (0 sizes from the terminal)")
	enterMS := fs.Int("enter-ms", envOrInt(env, envEnterMS, 0), "open animation duration in milliseconds")
	exitMS := fs.Int("exit-ms", envOrInt(env, envExitMS, 0), "close animation duration in milliseconds")
	throttleMS := fs.Int("throttle-ms", envOrInt(env, envThrottleMS, defaultFlushMS), "minimum spacing between result recomputations")
	gapMS := fs.Int("shortcut-gap-ms", envOrInt(env, envGapMS, defaultGapMS), "maximum pause between keys of a shortcut chord")
	toggle := fs.String("toggle-key", envOrDefault(env, envToggleKey, keys.DefaultToggle), "key chord that opens and closes the palette")
	open := fs.Bool("open", envOrBool(env, envOpen, true), "open the palette on start")
	footer := fs.Bool("footer", envOrBool(env, envShowFooter, false), "enable footer hint row (disabled by default)")
	trace := fs.Bool("trace", envOrBool(env, envTrace, false), "enable verbose JSON trace logging")
	logFile := fs.String("log-file", envOrDefault(env, envLogFile, ""), "path to the log file")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	cfg := Config{
		App: app.Config{
			ManifestPath:   *manifestPath,
			WithTmux:       *withTmux,
			SocketPath:     *socket,
			Width:          *width,
			Height:         *height,
			EnterDuration:  millis(*enterMS),
			ExitDuration:   millis(*exitMS),
			ThrottleWindow: millis(*throttleMS),
			ShortcutGap:    millis(*gapMS),
			ToggleKey:      *toggle,
			OpenOnStart:    *open,
			ShowFooter:     *footer,
		},
		Logging: Logging{
			FilePath: *logFile,
			Trace:    *trace,
		},
		Flags: map[string]string{
			"manifest":        *manifestPath,
			"tmux":            strconv.FormatBool(*withTmux),
			"socket":          *socket,
			"width":           strconv.Itoa(*width),
			"height":          strconv.Itoa(*height),
			"enter-ms":        strconv.Itoa(*enterMS),
			"exit-ms":         strconv.Itoa(*exitMS),
			"throttle-ms":     strconv.Itoa(*throttleMS),
			"shortcut-gap-ms": strconv.Itoa(*gapMS),
			"toggle-key":      *toggle,
			"open":            strconv.FormatBool(*open),
			"footer":          strconv.FormatBool(*footer),
			"trace":           strconv.FormatBool(*trace),
			"logFile":         *logFile,
		},
		Args: append([]string(nil), args...),
	}

	return cfg, nil
}

func millis(n int) time.Duration {
	return time.Duration(n) * time.Millisecond
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok {
		return v
	}
	return fallback
}

func envOrInt(env map[string]string, key string, fallback int) int {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		return fallback
	}
	return parsed
}

// MustLoad returns configuration or exits.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	return cfg
}

// Validate rejects sizes and durations below zero, manifests with an
// unknown extension and toggle chords that do not parse.
func Validate(cfg Config) error {
	a := cfg.App
	var errs []error
	if a.Width < 0 {
		errs = append(errs, fmt.Errorf("width must be >= 0 (got %d)", a.Width))
	}
	if a.Height < 0 {
		errs = append(errs, fmt.Errorf("height must be >= 0 (got %d)", a.Height))
	}
	durations := []struct {
		name string
		d    time.Duration
	}{
		{"enter-ms", a.EnterDuration},
		{"exit-ms", a.ExitDuration},
		{"throttle-ms", a.ThrottleWindow},
		{"shortcut-gap-ms", a.ShortcutGap},
	}
	for _, d := range durations {
		if d.d < 0 {
			errs = append(errs, fmt.Errorf("%s must be >= 0 (got %d)", d.name, d.d.Milliseconds()))
		}
	}
	if a.ManifestPath != "" && !manifest.Supported(a.ManifestPath) {
		errs = append(errs, fmt.Errorf("manifest %q: %w", a.ManifestPath, manifest.ErrUnsupportedFormat))
	}
	if _, err := keys.NormalizeChord(a.ToggleKey); err != nil {
		errs = append(errs, fmt.Errorf("toggle-key: %w", err))
	}
	return errors.Join(errs...)
}
