// Package store persists records in their storage JSON form in a local
// pebble database.
package store

import (
	"errors"
	"fmt"

	"github.com/cockroachdb/pebble"
	"github.com/segmentio/ksuid"

	"github.com/mitlibraries/marcidx"
)

// ErrNotFound is returned by Get for an unknown id.
var ErrNotFound = errors.New("record not found")

const keyPrefix = "rec/"

// Store is a record store keyed by control number.
type Store struct {
	db   *pebble.DB
	opts []marcidx.Option
	sync bool
}

// Option configures a Store.
type Option func(*Store)

// WithRecordOptions sets the options records are decoded with by Get.
func WithRecordOptions(opts ...marcidx.Option) Option {
	return func(s *Store) {
		s.opts = opts
	}
}

// WithSync makes every write durable before it returns.
func WithSync() Option {
	return func(s *Store) {
		s.sync = true
	}
}

// Open opens or creates the store at path.
func Open(path string, opts ...Option) (*Store, error) {
	db, err := pebble.Open(path, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("open store %s: %w", path, err)
	}
	s := &Store{db: db}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *Store) writeOpts() *pebble.WriteOptions {
	if s.sync {
		return pebble.Sync
	}
	return pebble.NoSync
}

func key(id string) []byte {
	return []byte(keyPrefix + id)
}

// Put stores rec under its control number, or under a new KSUID when the
// record has none, and returns the id used.
func (s *Store) Put(rec *marcidx.Record) (string, error) {
	id := rec.ControlNum()
	if id == "" {
		id = ksuid.New().String()
	}
	data, err := rec.EncodeStorage()
	if err != nil {
		return "", fmt.Errorf("encode record %s: %w", id, err)
	}
	if err := s.db.Set(key(id), data, s.writeOpts()); err != nil {
		return "", fmt.Errorf("put record %s: %w", id, err)
	}
	return id, nil
}

// GetRaw returns the stored storage JSON of id.
func (s *Store) GetRaw(id string) ([]byte, error) {
	data, closer, err := s.db.Get(key(id))
	if errors.Is(err, pebble.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("get record %s: %w", id, err)
	}
	defer closer.Close()
	return append([]byte(nil), data...), nil
}

// Get decodes the record stored under id.
func (s *Store) Get(id string) (*marcidx.Record, error) {
	data, err := s.GetRaw(id)
	if err != nil {
		return nil, err
	}
	rec, err := marcidx.Parse(data, s.opts...)
	if err != nil {
		return nil, fmt.Errorf("decode record %s: %w", id, err)
	}
	return rec, nil
}

// Delete removes id. Deleting an unknown id is not an error.
func (s *Store) Delete(id string) error {
	if err := s.db.Delete(key(id), s.writeOpts()); err != nil {
		return fmt.Errorf("delete record %s: %w", id, err)
	}
	return nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}
