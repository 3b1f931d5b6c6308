// Package logging writes runpop's error log and optional JSON trace stream to
// a single append-only file. Every call opens the file afresh, so several
// launcher instances can share one log.
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
)

const logFileName = "runpop.log"

var (
	mu             sync.Mutex
	traceEnabled   bool
	defaultLogFile = filepath.Join(os.TempDir(), logFileName)
	logPath        = defaultLogFile
)

// Path returns the current log destination.
func Path() string {
	mu.Lock()
	defer mu.Unlock()
	return logPath
}

// Error appends err to the log, prefixed with the process id.
func Error(err error) {
	if err == nil {
		return
	}
	appendLog("logging failed", func(w io.Writer) error {
		prefix := fmt.Sprintf("runpop[%d] ", os.Getpid())
		log.New(w, prefix, log.LstdFlags).Println(err)
		return nil
	})
}

// SetTraceEnabled toggles emission of structured trace entries.
func SetTraceEnabled(enabled bool) {
	mu.Lock()
	traceEnabled = enabled
	mu.Unlock()
}

// TraceEnabled reports whether Trace currently writes anything.
func TraceEnabled() bool {
	mu.Lock()
	defer mu.Unlock()
	return traceEnabled
}

type traceEntry struct {
	Time    time.Time   `json:"time"`
	PID     int         `json:"pid"`
	Event   string      `json:"event"`
	Payload interface{} `json:"payload,omitempty"`
}

// Trace appends one JSON line to the log when tracing is enabled.
func Trace(event string, payload interface{}) {
	if !TraceEnabled() {
		return
	}
	entry := traceEntry{
		Time:    time.Now().UTC(),
		PID:     os.Getpid(),
		Event:   event,
		Payload: payload,
	}
	appendLog("trace logging failed", func(w io.Writer) error {
		return json.NewEncoder(w).Encode(entry)
	})
}

func appendLog(label string, write func(io.Writer) error) {
	f, err := os.OpenFile(Path(), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", label, err)
		return
	}
	defer f.Close()
	if err := write(f); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", label, err)
	}
}

// Configure sets the log destination. Empty values fall back to a file in the
// temp directory; missing parent directories are created.
func Configure(path string) {
	mu.Lock()
	defer mu.Unlock()
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
