// Package storage provides persistence for the best score and finished games.
package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// KeyValue stores small integer values under string keys.
// It is the only durable state the game itself needs.
type KeyValue interface {
	// GetInt returns the value for key. ok is false when the key is missing.
	GetInt(ctx context.Context, key string) (value int, ok bool, err error)
	// SetInt stores value under key, replacing any previous value.
	SetInt(ctx context.Context, key string, value int) error
	// SetMaxInt stores value under key only if the key is missing or holds a
	// smaller value, as one atomic step. It returns the value stored afterwards.
	SetMaxInt(ctx context.Context, key string, value int) (int, error)
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) (string, error) {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		return filepath.Join(home, path[1:]), nil
	}
	return path, nil
}
