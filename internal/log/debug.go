// Package log provides the debug logger for lazycommit. Messages are buffered
// in memory until a file is attached, so early startup logging is not lost
// when --debug resolves the log path after the first few calls.
package log

import (
	"log"
	"os"
	"path/filepath"
	"sync"
)

// debugWriter buffers or persists debug output. It implements io.Writer so a
// standard log.Logger can sit on top of it.
type debugWriter struct {
	mu      sync.Mutex
	file    *os.File
	buffer  []byte
	discard bool
}

var (
	writer    = &debugWriter{}
	stdLogger = log.New(writer, "", log.LstdFlags|log.Lmicroseconds)
)

// Write appends to the file when one is attached, otherwise to the buffer.
func (w *debugWriter) Write(p []byte) (n int, err error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.discard {
		return len(p), nil
	}

	if w.file != nil {
		n, err = w.file.Write(p)
		// Flush immediately so a crash still leaves the trail on disk.
		_ = w.file.Sync()
		return n, err
	}

	// The caller may reuse p, so keep a copy.
	b := make([]byte, len(p))
	copy(b, p)
	w.buffer = append(w.buffer, b...)
	return len(p), nil
}

// DefaultPath returns the debug log location used when --debug is given
// without an explicit path: $XDG_STATE_HOME/lazycommit/debug.log, falling
// back to ~/.local/state.
func DefaultPath() string {
	stateDir := os.Getenv("XDG_STATE_HOME")
	if stateDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		stateDir = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(stateDir, "lazycommit", "debug.log")
}

// SetFile attaches the debug log to path, creating parent directories as
// needed, and flushes anything buffered so far. An empty path disables
// logging and drops the buffer.
func SetFile(path string) error {
	writer.mu.Lock()
	defer writer.mu.Unlock()

	if writer.file != nil {
		_ = writer.file.Close()
		writer.file = nil
	}

	if path == "" {
		writer.discard = true
		writer.buffer = nil
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		writer.discard = true
		writer.buffer = nil
		return err
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600) //nolint:gosec
	if err != nil {
		writer.discard = true
		writer.buffer = nil
		return err
	}

	writer.file = f
	writer.discard = false

	if len(writer.buffer) > 0 {
		_, _ = f.Write(writer.buffer)
		_ = f.Sync()
		writer.buffer = nil
	}

	return nil
}

// Enabled reports whether messages are currently kept (file or buffer).
func Enabled() bool {
	writer.mu.Lock()
	defer writer.mu.Unlock()
	return !writer.discard
}

// Printf writes a formatted debug message.
func Printf(format string, args ...any) {
	stdLogger.Printf(format, args...)
}

// Println writes a debug message.
func Println(v ...any) {
	stdLogger.Println(v...)
}

// Close closes the attached log file if any.
func Close() error {
	writer.mu.Lock()
	defer writer.mu.Unlock()

	if writer.file == nil {
		return nil
	}

	err := writer.file.Close()
	writer.file = nil
	return err
}
