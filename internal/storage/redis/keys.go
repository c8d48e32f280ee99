package redis

import "fmt"

// Key prefix for all game-related data
const keyPrefix = "t2048"

// kvKey returns the Redis key for a KeyValue entry
func kvKey(key string) string {
	return fmt.Sprintf("%s:kv:%s", keyPrefix, key)
}
