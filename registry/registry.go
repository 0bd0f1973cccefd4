// Package registry maps record format identifiers to the drivers that
// read them.
package registry

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/mitlibraries/marcidx/driver"
)

// ErrUnknownFormat is returned by Create for an unregistered format.
var ErrUnknownFormat = errors.New("unknown record format")

// AnyRecord is a decoded record of any registered format.
type AnyRecord interface {
	RecordFormat() string
	ID() string
	IndexFields() (driver.FieldMap, error)
	Serialize() ([]byte, error)
	Warnings() []string
}

// Constructor decodes data into a record.
type Constructor func(data []byte) (AnyRecord, error)

// Registry is safe for concurrent use.
type Registry struct {
	mu           sync.RWMutex
	constructors map[string]Constructor
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{constructors: make(map[string]Constructor)}
}

// Default returns a registry with the MARC driver registered under
// driver.RecordFormat, built with opts.
func Default(opts ...driver.Option) *Registry {
	r := New()
	_ = r.Register(driver.RecordFormat, func(data []byte) (AnyRecord, error) {
		m, err := driver.Parse(data, opts...)
		if err != nil {
			return nil, err
		}
		return m, nil
	})
	return r
}

// Register adds a constructor. Registering a format twice is an error.
func (r *Registry) Register(format string, c Constructor) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.constructors[format]; ok {
		return fmt.Errorf("format %q already registered", format)
	}
	r.constructors[format] = c
	return nil
}

// Create decodes data with the constructor registered for format.
func (r *Registry) Create(format string, data []byte) (AnyRecord, error) {
	r.mu.RLock()
	c, ok := r.constructors[format]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, format)
	}
	return c(data)
}

// Formats returns the registered formats, sorted.
func (r *Registry) Formats() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.constructors))
	for f := range r.constructors {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}
