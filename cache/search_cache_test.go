package cache

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

func TestHashKey(t *testing.T) {
	a := hashKey("search:city=1:agency=0")
	if !strings.HasPrefix(a, keyPrefix) || len(a) != len(keyPrefix)+40 {
		t.Fatalf("unexpected key %q", a)
	}
	if a != hashKey("search:city=1:agency=0") {
		t.Fatalf("key must be stable")
	}
	if a == hashKey("search:city=1:agency=7") {
		t.Fatalf("agencies must not share a key")
	}
}

func TestNewSearchCacheWithoutClient(t *testing.T) {
	if NewSearchCache(nil) != nil {
		t.Fatalf("expected nil cache without a client")
	}
}

func TestUnreachableRedisReportsError(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer rdb.Close()
	c := NewSearchCache(rdb)

	var dst []string
	hit, err := c.Get(context.Background(), "k", &dst)
	if err == nil || hit {
		t.Fatalf("expected a connection error, got hit=%v err=%v", hit, err)
	}
	if err := c.Set(context.Background(), "k", []string{"a"}, 0); err == nil {
		t.Fatalf("expected a connection error on set")
	}
}
