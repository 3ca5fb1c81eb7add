// Package memstore is an in-process Blob, the stand-in for browser local
// storage in tests and for throwaway sessions.
package memstore

import (
	"fmt"

	"github.com/idilsaglam/todokit/internal/store"
)

// Store keeps values in a map. Not safe for concurrent use.
type Store struct {
	data  map[string]string
	quota int // total bytes across keys and values; 0 = unlimited
}

// Option configures a Store.
type Option func(*Store)

// WithQuota caps the total size of stored keys and values, the way
// browsers cap localStorage.
func WithQuota(bytes int) Option {
	return func(s *Store) { s.quota = bytes }
}

// New returns an empty Store.
func New(opts ...Option) *Store {
	s := &Store{data: make(map[string]string)}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) Get(key string) (string, bool, error) {
	if key == "" {
		return "", false, store.ErrEmptyKey
	}
	v, ok := s.data[key]
	return v, ok, nil
}

func (s *Store) Set(key, value string) error {
	if key == "" {
		return store.ErrEmptyKey
	}
	if s.quota > 0 {
		used := s.size() - s.entrySize(key) + len(key) + len(value)
		if used > s.quota {
			return fmt.Errorf("%w: %d bytes over a %d byte limit", store.ErrQuotaExceeded, used-s.quota, s.quota)
		}
	}
	s.data[key] = value
	return nil
}

// Len reports how many keys are stored.
func (s *Store) Len() int { return len(s.data) }

func (s *Store) size() int {
	n := 0
	for k, v := range s.data {
		n += len(k) + len(v)
	}
	return n
}

func (s *Store) entrySize(key string) int {
	v, ok := s.data[key]
	if !ok {
		return 0
	}
	return len(key) + len(v)
}
