// Package cache keeps hotel search results in Redis.
package cache

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "hotel:search:"

// SearchCache stores JSON encoded search results under a hashed key.
type SearchCache struct {
	rdb *redis.Client
}

// NewSearchCache returns nil when rdb is nil so callers can pass the result
// straight through and run without a cache.
func NewSearchCache(rdb *redis.Client) *SearchCache {
	if rdb == nil {
		return nil
	}
	return &SearchCache{rdb: rdb}
}

func hashKey(key string) string {
	sum := sha1.Sum([]byte(key))
	return keyPrefix + hex.EncodeToString(sum[:])
}

// Get decodes the cached value into dst. A miss is (false, nil).
func (c *SearchCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	bs, err := c.rdb.Get(ctx, hashKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(bs, dst); err != nil {
		// stale layout, treat as a miss
		return false, nil
	}
	return true, nil
}

func (c *SearchCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = time.Minute
	}
	bs, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.rdb.SetEx(ctx, hashKey(key), bs, ttl).Err()
}
