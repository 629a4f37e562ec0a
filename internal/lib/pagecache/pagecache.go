// Package pagecache stores rendered pages keyed by request path and query
// string so that mutations can drop every variant of a path at once.
//
// Two implementations exist:
//   - Redis, shared by every server instance (RedisCache).
//   - An expiring in-process LRU used when Redis is not configured (MemoryCache).
package pagecache

import (
	"context"
	"strings"
)

// PageCache is the read-through cache behind the listing views.
type PageCache interface {
	// Get returns the cached body for path and its raw query string.
	Get(ctx context.Context, path, query string) ([]byte, bool, error)

	// Set stores body for path and its raw query string.
	Set(ctx context.Context, path, query string, body []byte) error

	// InvalidatePath drops every cached variant of path.
	InvalidatePath(ctx context.Context, path string) error
}

const (
	keyPrefix   = "page:"
	indexPrefix = "pageidx:"
)

// Key returns the cache key of one page variant.
func Key(path, query string) string {
	return keyPrefix + normalizePath(path) + "?" + query
}

func indexKey(path string) string {
	return indexPrefix + normalizePath(path)
}

// normalizePath strips a trailing slash so "/a/" and "/a" share entries.
func normalizePath(path string) string {
	if len(path) > 1 {
		path = strings.TrimSuffix(path, "/")
	}
	return path
}
