// Package store defines the single-slot blob storage the todo list is
// persisted into, plus the errors every backend shares.
package store

import "errors"

var (
	// ErrQuotaExceeded is returned by Set when a backend refuses a value
	// for size reasons. The previous value stays in place.
	ErrQuotaExceeded = errors.New("storage quota exceeded")

	// ErrEmptyKey is returned when a blank key is used.
	ErrEmptyKey = errors.New("empty storage key")
)

// Blob is a string-keyed store of whole values. Every Set replaces the
// value for key in one write; there are no partial updates.
type Blob interface {
	// Get returns the value for key. ok is false when nothing is stored.
	Get(key string) (value string, ok bool, err error)
	// Set overwrites the value for key.
	Set(key, value string) error
}
