// Package memory provides an in-memory KeyValue used for tests and for
// sessions that should not persist anything.
package memory

import (
	"context"
	"sync"

	"github.com/vovakirdan/t2048/internal/storage"
)

// Storage is an in-memory implementation of storage.KeyValue.
type Storage struct {
	mu     sync.RWMutex
	values map[string]int
}

// New creates a new in-memory storage instance.
func New() *Storage {
	return &Storage{
		values: make(map[string]int),
	}
}

// Ensure Storage implements the interface
var _ storage.KeyValue = (*Storage)(nil)

func (s *Storage) GetInt(ctx context.Context, key string) (int, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok, nil
}

func (s *Storage) SetInt(ctx context.Context, key string, value int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

func (s *Storage) SetMaxInt(ctx context.Context, key string, value int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if cur, ok := s.values[key]; ok && cur >= value {
		return cur, nil
	}
	s.values[key] = value
	return value, nil
}

// Close is a no-op so Storage can be used wherever a closer is expected.
func (s *Storage) Close() error {
	return nil
}
