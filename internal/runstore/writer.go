package runstore

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/patrickjeremic/ansible-log/internal/logging"
)

// Writer captures the raw body of one run into its record file. It is safe
// for use as a fan-out sink: WriteLine may be called from a different
// goroutine than Close, but not concurrently with itself.
type Writer struct {
	mu     sync.Mutex
	f      *os.File
	path   string
	meta   Meta
	closed bool
	log    *logging.Logger
}

// Path returns the record file path.
func (w *Writer) Path() string {
	return w.path
}

// Meta returns the header metadata written at creation.
func (w *Writer) Meta() Meta {
	return w.meta
}

// writeHeader emits the metadata block and the body start sentinel.
func (w *Writer) writeHeader() error {
	lines := []string{
		"=== ANSIBLE-LOG RUN ===",
		"ID: " + w.meta.ID,
		"Command: " + w.meta.Command,
		"Dir: " + w.meta.Dir,
		"User: " + w.meta.User,
		"Host: " + w.meta.Host,
		"Started: " + w.meta.Started.Format(time.RFC3339),
		BodyStart,
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w.f, line); err != nil {
			return fmt.Errorf("writing record header: %w", err)
		}
	}
	return nil
}

// WriteLine appends one raw body line.
func (w *Writer) WriteLine(line string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return fmt.Errorf("record %s already closed", w.path)
	}
	if _, err := fmt.Fprintln(w.f, line); err != nil {
		return fmt.Errorf("writing record body: %w", err)
	}
	return nil
}

// Close writes the end sentinel for the given exit code and closes the
// file. Exit code 0 marks the run successful.
func (w *Writer) Close(exitCode int) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return nil
	}
	w.closed = true

	sentinel := BodyEndOK
	if exitCode != 0 {
		sentinel = fmt.Sprintf(bodyEndFail, exitCode)
	}
	if _, err := fmt.Fprintln(w.f, sentinel); err != nil {
		w.f.Close()
		return fmt.Errorf("writing record footer: %w", err)
	}
	if err := w.f.Close(); err != nil {
		return fmt.Errorf("closing record: %w", err)
	}
	w.log.Debug("record closed", map[string]interface{}{"path": w.path, "exit": exitCode})
	return nil
}
