// Package storage persists the whole todo list as one JSON snapshot in a
// Blob and hands out sequential item ids.
//
// A Storage is owned by whoever composes the application and is not safe
// for concurrent use.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/idilsaglam/todokit/internal/model"
	"github.com/idilsaglam/todokit/internal/store"
)

// DefaultKey is the blob key the list lives under.
const DefaultKey = "todos-app-v1"

// ErrCorrupt means the stored snapshot could not be decoded. Load fails
// rather than replacing the user's data with an empty list.
var ErrCorrupt = errors.New("corrupt todo snapshot")

// Storage loads and saves the list and tracks the next id.
type Storage struct {
	blob   store.Blob
	key    string
	uid    int
	logger *log.Logger
}

// Option configures a Storage.
type Option func(*Storage)

// WithKey stores the list under key instead of DefaultKey.
func WithKey(key string) Option {
	return func(s *Storage) {
		if key != "" {
			s.key = key
		}
	}
}

// WithLogger sends diagnostics to l.
func WithLogger(l *log.Logger) Option {
	return func(s *Storage) {
		if l != nil {
			s.logger = l
		}
	}
}

// New returns a Storage over blob with the counter at zero.
func New(blob store.Blob, opts ...Option) *Storage {
	s := &Storage{
		blob:   blob,
		key:    DefaultKey,
		logger: log.New(io.Discard, "", 0),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Key is the blob key in use.
func (s *Storage) Key() string { return s.key }

// Load reads the snapshot. A missing blob is an empty list. Each item's
// ID is overwritten with its index, and the id counter restarts at the
// list length.
func (s *Storage) Load() ([]model.Item, error) {
	raw, ok, err := s.blob.Get(s.key)
	if err != nil {
		return nil, fmt.Errorf("read blob %q: %w", s.key, err)
	}
	items := []model.Item{}
	if ok {
		if err := json.Unmarshal([]byte(raw), &items); err != nil {
			return nil, fmt.Errorf("%w: key %q: %v", ErrCorrupt, s.key, err)
		}
		// "null" decodes without error into a nil slice.
		if items == nil {
			items = []model.Item{}
		}
	}
	for i := range items {
		items[i].ID = i
	}
	s.uid = len(items)
	s.logger.Printf("loaded %d items from %q", len(items), s.key)
	return items, nil
}

// NextID returns the current counter value and advances it.
func (s *Storage) NextID() int {
	id := s.uid
	s.uid++
	return id
}

// Save replaces the stored snapshot with items in a single write.
// Failures are returned as-is; nothing is retried.
func (s *Storage) Save(items []model.Item) error {
	if items == nil {
		items = []model.Item{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}
	if err := s.blob.Set(s.key, string(b)); err != nil {
		return fmt.Errorf("write blob %q: %w", s.key, err)
	}
	s.logger.Printf("saved %d items to %q (%d bytes)", len(items), s.key, len(b))
	return nil
}
