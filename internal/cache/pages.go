// Package cache holds rendered public pages in redis, keyed by request
// path. It is an optimization only: every caller must be able to render
// without it, so failures degrade to a cache miss and are merely logged.
package cache

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "page:"

// DefaultPaths is the well-known set invalidated when no specific path is
// requested.
var DefaultPaths = []string{"/", "/admin", "/admin/organizations"}

// OrgPath returns the public detail path for an organization.
func OrgPath(id uuid.UUID) string {
	return "/org/" + id.String()
}

type PageCache struct {
	client    *redis.Client
	logger    *slog.Logger
	homeTTL   time.Duration
	detailTTL time.Duration
}

// New builds a PageCache. A nil client is allowed and turns every
// operation into a no-op (the site keeps working without redis).
func New(client *redis.Client, logger *slog.Logger, homeTTL, detailTTL time.Duration) *PageCache {
	return &PageCache{
		client:    client,
		logger:    logger,
		homeTTL:   homeTTL,
		detailTTL: detailTTL,
	}
}

// TTLFor picks the expiry for a path: detail pages live longer than the
// home listing. Paths that are never cached get zero.
func (c *PageCache) TTLFor(path string) time.Duration {
	switch {
	case path == "/":
		return c.homeTTL
	case strings.HasPrefix(path, "/org/"):
		return c.detailTTL
	default:
		return 0
	}
}

// Cacheable reports whether the path is served from the cache at all.
// Admin pages are session-specific and never cached.
func (c *PageCache) Cacheable(path string) bool {
	return c.TTLFor(path) > 0
}

// Get returns the cached page for path, if any.
func (c *PageCache) Get(ctx context.Context, path string) ([]byte, bool) {
	if c.client == nil || !c.Cacheable(path) {
		return nil, false
	}

	data, err := c.client.Get(ctx, keyPrefix+path).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("page cache read failed", "path", path, "error", err)
		}
		return nil, false
	}
	return data, true
}

// Set stores a rendered page under its path with the path's TTL.
func (c *PageCache) Set(ctx context.Context, path string, html []byte) {
	if c.client == nil || !c.Cacheable(path) {
		return
	}

	if err := c.client.Set(ctx, keyPrefix+path, html, c.TTLFor(path)).Err(); err != nil {
		c.logger.Warn("page cache write failed", "path", path, "error", err)
	}
}

// Invalidate drops the cached copies of the given paths. Unknown or
// never-cached paths are harmless.
func (c *PageCache) Invalidate(ctx context.Context, paths ...string) {
	if c.client == nil || len(paths) == 0 {
		return
	}

	keys := make([]string, len(paths))
	for i, p := range paths {
		keys[i] = keyPrefix + p
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		c.logger.Warn("page cache invalidation failed", "paths", paths, "error", err)
	}
}
