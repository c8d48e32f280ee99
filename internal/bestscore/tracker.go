// Package bestscore keeps the best score across games. The value is read
// from a storage.KeyValue once at startup and written back whenever a game
// beats it.
package bestscore

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/t2048/internal/storage"
)

// DefaultKey is the storage key holding the best score.
const DefaultKey = "t2048:best_score"

// Tracker holds the best score in memory and persists improvements.
// It is safe for concurrent use.
type Tracker struct {
	store  storage.KeyValue
	key    string
	logger *log.Logger

	mu   sync.Mutex
	best int
}

// New creates a tracker over store. An empty key uses DefaultKey and a nil
// logger discards output.
func New(store storage.KeyValue, key string, logger *log.Logger) *Tracker {
	if key == "" {
		key = DefaultKey
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Tracker{
		store:  store,
		key:    key,
		logger: logger,
	}
}

// Load reads the stored best score. A missing key counts as zero.
func (t *Tracker) Load(ctx context.Context) (int, error) {
	v, ok, err := t.store.GetInt(ctx, t.key)
	if err != nil {
		return 0, fmt.Errorf("bestscore: cannot load %q: %w", t.key, err)
	}
	if !ok {
		v = 0
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.best = max(t.best, v)
	return t.best, nil
}

// Observe records score and returns the best score after it.
// The store is only written when score beats the current best, and the
// write never lowers a higher value saved by another process; that value
// is adopted instead. Write failures are logged; the in-memory best still
// advances.
func (t *Tracker) Observe(ctx context.Context, score int) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	if score <= t.best {
		return t.best
	}
	t.best = score

	stored, err := t.store.SetMaxInt(ctx, t.key, score)
	if err != nil {
		t.logger.Warn("could not save best score", "key", t.key, "score", score, "error", err)
		return t.best
	}
	t.best = max(t.best, stored)
	return t.best
}

// Best returns the current best score.
func (t *Tracker) Best() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.best
}

// Reset sets the stored best score back to zero.
func (t *Tracker) Reset(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.store.SetInt(ctx, t.key, 0); err != nil {
		return fmt.Errorf("bestscore: cannot reset %q: %w", t.key, err)
	}
	t.best = 0
	return nil
}

// Key returns the storage key in use.
func (t *Tracker) Key() string {
	return t.key
}
