package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

const defaultLogFile = "integration-selector.log"

var (
	mu           sync.Mutex
	traceEnabled bool
	logPath      = defaultLogFile
	out          io.Writer
	logger       zerolog.Logger
	ready        bool
)

// appendFile opens the log path on every write so nothing holds the file
// between events.
type appendFile struct {
	path string
}

func (a appendFile) Write(p []byte) (int, error) {
	f, err := os.OpenFile(a.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return 0, err
	}
	defer f.Close()
	return f.Write(p)
}

// current returns the shared logger, building it on first use. Callers hold mu.
func current() zerolog.Logger {
	if !ready {
		var w io.Writer = appendFile{path: logPath}
		if out != nil {
			w = out
		}
		logger = zerolog.New(w).With().Timestamp().Logger()
		ready = true
	}
	return logger
}

// Error writes errors to the shared log file.
func Error(err error) {
	if err == nil {
		return
	}
	mu.Lock()
	l := current()
	mu.Unlock()
	l.Error().Err(err).Send()
}

// Warn records a recoverable problem, such as a failed fetch that was turned
// into an empty result.
func Warn(msg string, err error) {
	mu.Lock()
	l := current()
	mu.Unlock()
	evt := l.Warn()
	if err != nil {
		evt = evt.Err(err)
	}
	evt.Msg(msg)
}

// SetTraceEnabled toggles emission of structured trace entries.
func SetTraceEnabled(enabled bool) {
	mu.Lock()
	traceEnabled = enabled
	mu.Unlock()
}

// TraceEnabled reports whether traces are written.
func TraceEnabled() bool {
	mu.Lock()
	defer mu.Unlock()
	return traceEnabled
}

// Trace appends a structured entry to the shared log when tracing is enabled.
func Trace(event string, payload interface{}) {
	mu.Lock()
	enabled := traceEnabled
	l := current()
	mu.Unlock()
	if !enabled {
		return
	}
	evt := l.Debug().Str("event", event)
	if payload != nil {
		evt = evt.Interface("payload", payload)
	}
	evt.Send()
}

// Configure sets the log destination. Empty values fall back to the default
// path. Directories are created automatically when missing.
func Configure(path string) {
	mu.Lock()
	defer mu.Unlock()
	ready = false
	out = nil
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

// SetOutput redirects every entry to w. A nil writer restores the log file.
func SetOutput(w io.Writer) {
	mu.Lock()
	out = w
	ready = false
	mu.Unlock()
}
