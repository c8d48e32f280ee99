// Package factory opens the storage backend selected in the configuration.
package factory

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/t2048/internal/bestscore"
	"github.com/vovakirdan/t2048/internal/config"
	"github.com/vovakirdan/t2048/internal/storage"
	"github.com/vovakirdan/t2048/internal/storage/memory"
	"github.com/vovakirdan/t2048/internal/storage/redis"
)

// Backends holds the opened stores.
type Backends struct {
	// KV holds the best score.
	KV storage.KeyValue
	// Scores records finished games. Nil when no SQLite database is available.
	Scores *storage.Store

	closers []io.Closer
}

// Open opens the backend named by cfg.Backend. The SQLite score history is
// opened for every backend that has a db_path; failing to open it is only
// fatal for the sqlite backend.
func Open(cfg config.StorageConfig, logger *log.Logger) (*Backends, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	b := &Backends{}

	switch cfg.Backend {
	case config.BackendSQLite, "":
		store, err := storage.Open(cfg.DBPath)
		if err != nil {
			return nil, err
		}
		b.KV = store
		b.Scores = store
		b.closers = append(b.closers, store)
		return b, nil

	case config.BackendRedis:
		rcfg := redis.DefaultConfig()
		rcfg.URL = cfg.Redis.URL
		if cfg.Redis.PoolSize > 0 {
			rcfg.PoolSize = cfg.Redis.PoolSize
		}
		rcfg.MinIdleConns = cfg.Redis.MinIdleConns
		rcfg.KeyTTL = cfg.Redis.KeyTTL

		rs, err := redis.New(rcfg)
		if err != nil {
			return nil, err
		}
		b.KV = rs
		b.closers = append(b.closers, rs)

	case config.BackendMemory:
		b.KV = memory.New()

	default:
		return nil, fmt.Errorf("factory: unknown storage backend %q", cfg.Backend)
	}

	if cfg.DBPath != "" {
		store, err := storage.Open(cfg.DBPath)
		if err != nil {
			logger.Warn("could not open scores database", "path", cfg.DBPath, "error", err)
		} else {
			b.Scores = store
			b.closers = append(b.closers, store)
		}
	}

	return b, nil
}

// Tracker builds a best-score tracker over KV and loads the stored value.
// A failed load is logged and the tracker starts from zero.
func (b *Backends) Tracker(ctx context.Context, key string, logger *log.Logger) *bestscore.Tracker {
	t := bestscore.New(b.KV, key, logger)
	if _, err := t.Load(ctx); err != nil && logger != nil {
		logger.Warn("could not load best score", "error", err)
	}
	return t
}

// Close closes every opened store.
func (b *Backends) Close() error {
	var errs []error
	for _, c := range b.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	b.closers = nil
	return errors.Join(errs...)
}
