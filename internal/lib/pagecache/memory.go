package pagecache

import (
	"context"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// MemoryCache keeps pages in a bounded, expiring LRU inside the process.
type MemoryCache struct {
	lru *expirable.LRU[string, []byte]
}

// NewMemoryCache returns a cache holding up to size entries for ttl each.
func NewMemoryCache(size int, ttl time.Duration) *MemoryCache {
	return &MemoryCache{lru: expirable.NewLRU[string, []byte](size, nil, ttl)}
}

func (c *MemoryCache) Get(_ context.Context, path, query string) ([]byte, bool, error) {
	body, ok := c.lru.Get(Key(path, query))
	return body, ok, nil
}

func (c *MemoryCache) Set(_ context.Context, path, query string, body []byte) error {
	c.lru.Add(Key(path, query), body)
	return nil
}

func (c *MemoryCache) InvalidatePath(_ context.Context, path string) error {
	prefix := keyPrefix + normalizePath(path) + "?"
	for _, key := range c.lru.Keys() {
		if strings.HasPrefix(key, prefix) {
			c.lru.Remove(key)
		}
	}
	return nil
}

// Len reports the number of live entries.
func (c *MemoryCache) Len() int {
	return c.lru.Len()
}
