package marcidx

import (
	"fmt"
	"sync"
)

// Warnings is an append-only, deduplicated list of advisory messages.
// The zero value is ready to use.
type Warnings struct {
	mu   sync.Mutex
	list []string
	seen map[string]struct{}
}

// Add records msg unless an identical message is already present.
func (w *Warnings) Add(msg string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.seen == nil {
		w.seen = make(map[string]struct{})
	}
	if _, ok := w.seen[msg]; ok {
		return
	}
	w.seen[msg] = struct{}{}
	w.list = append(w.list, msg)
}

// List returns the messages in the order they were first added.
func (w *Warnings) List() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]string(nil), w.list...)
}

// Len returns the number of distinct messages.
func (w *Warnings) Len() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.list)
}

// Warn adds a formatted advisory message to the record.
func (r *Record) Warn(format string, args ...any) {
	r.warnings.Add(fmt.Sprintf(format, args...))
}

// Warnings returns the record's advisory messages, deduplicated.
func (r *Record) Warnings() []string {
	return r.warnings.List()
}
