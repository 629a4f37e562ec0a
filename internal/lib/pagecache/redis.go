package pagecache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// invalidateScript deletes the members of the index set KEYS[1] in batches
// (unpack is bounded by the Lua stack), then the set itself. It returns the
// number of page keys it removed.
var invalidateScript = redis.NewScript(`
local keys = redis.call('SMEMBERS', KEYS[1])
for i = 1, #keys, 500 do
  redis.call('DEL', unpack(keys, i, math.min(i + 499, #keys)))
end
redis.call('DEL', KEYS[1])
return #keys
`)

// RedisCache keeps pages in Redis. Every variant key of a path is also
// recorded in a set so the path can be invalidated without SCAN.
type RedisCache struct {
	client redis.UniversalClient
	ttl    time.Duration
}

// NewRedisCache returns a cache storing entries for ttl.
func NewRedisCache(client redis.UniversalClient, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

func (c *RedisCache) Get(ctx context.Context, path, query string) ([]byte, bool, error) {
	body, err := c.client.Get(ctx, Key(path, query)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get cached page: %w", err)
	}
	return body, true, nil
}

func (c *RedisCache) Set(ctx context.Context, path, query string, body []byte) error {
	key := Key(path, query)
	idx := indexKey(path)

	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, key, body, c.ttl)
		pipe.SAdd(ctx, idx, key)
		// The index outlives each entry by at most one TTL.
		pipe.Expire(ctx, idx, c.ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("cache page: %w", err)
	}
	return nil
}

// InvalidatePath drops every cached variant of path together with its
// index in a single script run, so a concurrent Set either lands before
// the read of the index or after the index is gone.
func (c *RedisCache) InvalidatePath(ctx context.Context, path string) error {
	if err := invalidateScript.Run(ctx, c.client, []string{indexKey(path)}).Err(); err != nil {
		return fmt.Errorf("invalidate %s: %w", path, err)
	}
	return nil
}
