package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	defaultLogFile   = "tmux-cmdk.log"
	defaultMaxSizeMB = 5
	defaultBackups   = 3
)

var (
	traceMu      sync.Mutex
	traceEnabled bool
	logPath      = defaultLogFile
	sink         io.WriteCloser
)

// Error writes errors to the shared log file.
func Error(err error) {
	if err == nil {
		return
	}
	w := writer()
	if w == nil {
		fmt.Fprintf(os.Stderr, "logging failed: %v\n", err)
		return
	}
	logger := log.New(w, "", log.LstdFlags)
	logger.Println(err)
}

// SetTraceEnabled toggles emission of structured trace entries.
func SetTraceEnabled(enabled bool) {
	traceMu.Lock()
	traceEnabled = enabled
	traceMu.Unlock()
}

// TraceEnabled reports whether trace entries are currently emitted.
func TraceEnabled() bool {
	traceMu.Lock()
	defer traceMu.Unlock()
	return traceEnabled
}

// Trace appends a structured JSON entry to the shared log when tracing is enabled.
func Trace(event string, payload interface{}) {
	if !TraceEnabled() {
		return
	}

	entry := struct {
		Time    time.Time   `json:"time"`
		Event   string      `json:"event"`
		Payload interface{} `json:"payload,omitempty"`
	}{
		Time:    time.Now().UTC(),
		Event:   event,
		Payload: payload,
	}

	w := writer()
	if w == nil {
		return
	}
	enc := json.NewEncoder(w)
	if err := enc.Encode(entry); err != nil {
		fmt.Fprintf(os.Stderr, "trace encoding failed: %v\n", err)
	}
}

// Configure sets the log destination. Empty values fall back to the default
// path. Directories are created automatically when missing. The file is
// rotated once it grows past a few megabytes.
func Configure(path string) {
	traceMu.Lock()
	defer traceMu.Unlock()
	closeSinkLocked()
	if strings.TrimSpace(path) == "" {
		logPath = defaultLogFile
		return
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "unable to create log directory: %v\n", err)
		logPath = defaultLogFile
		return
	}
	logPath = path
}

// Path returns the active log destination.
func Path() string {
	traceMu.Lock()
	defer traceMu.Unlock()
	return logPath
}

// Close flushes and releases the log file.
func Close() {
	traceMu.Lock()
	defer traceMu.Unlock()
	closeSinkLocked()
}

func writer() io.Writer {
	traceMu.Lock()
	defer traceMu.Unlock()
	if sink == nil {
		sink = &lumberjack.Logger{
			Filename:   logPath,
			MaxSize:    defaultMaxSizeMB,
			MaxBackups: defaultBackups,
		}
	}
	return sink
}

func closeSinkLocked() {
	if sink == nil {
		return
	}
	if err := sink.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "closing log failed: %v\n", err)
	}
	sink = nil
}
