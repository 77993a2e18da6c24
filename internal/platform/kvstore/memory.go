// Package kvstore provides the local key/value store used by mock-mode persistence.
package kvstore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/patrickmn/go-cache"
)

// ErrUnexpectedValue is returned when a stored value is not a string.
var ErrUnexpectedValue = errors.New("kvstore: unexpected value type")

// MemoryStore is an in-process key/value store backed by go-cache.
// When a snapshot path is set, the contents survive restarts on a best effort basis.
type MemoryStore struct {
	c    *cache.Cache
	path string
}

// NewMemoryStore creates a MemoryStore. If path is non-empty the previous snapshot is loaded from it;
// a missing or unreadable snapshot leaves the store empty.
func NewMemoryStore(path string) *MemoryStore {
	s := &MemoryStore{
		c:    cache.New(cache.NoExpiration, 0),
		path: path,
	}
	if path != "" {
		if err := s.c.LoadFile(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			slog.Warn("failed to load key/value snapshot; starting empty", "path", path, "error", err)
		}
	}
	return s
}

// Get returns the value stored under key. The boolean is false when the key is absent.
func (s *MemoryStore) Get(_ context.Context, key string) (string, bool, error) {
	v, ok := s.c.Get(key)
	if !ok {
		return "", false, nil
	}
	str, ok := v.(string)
	if !ok {
		return "", true, fmt.Errorf("%w: key %q holds %T", ErrUnexpectedValue, key, v)
	}
	return str, true, nil
}

// Set stores value under key without expiration.
func (s *MemoryStore) Set(_ context.Context, key, value string) error {
	s.c.Set(key, value, cache.NoExpiration)
	return nil
}

// Flush writes the snapshot file when a path is configured.
func (s *MemoryStore) Flush() error {
	if s.path == "" {
		return nil
	}
	if err := s.c.SaveFile(s.path); err != nil {
		return fmt.Errorf("save key/value snapshot: %w", err)
	}
	return nil
}
