// Package cache stores computed view responses in Redis. Keys include the
// snapshot generation, so a reload never serves a response computed from
// an older snapshot.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const keyPrefix = "skyair:view:"

var (
	cacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "skyair_view_cache_hits_total",
		Help: "View responses served from Redis",
	})

	cacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "skyair_view_cache_misses_total",
		Help: "View responses computed because Redis had no entry",
	})

	cacheErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "skyair_view_cache_errors_total",
		Help: "Redis errors while reading or writing view responses",
	})
)

// RedisClient defines the Redis commands the cache uses
type RedisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Ping(ctx context.Context) *redis.StatusCmd
}

// Cache is a best-effort response cache. A nil *Cache or one without a
// client is disabled and every lookup misses.
type Cache struct {
	client RedisClient
	ttl    time.Duration
	logger *zap.SugaredLogger
}

// New creates a cache. client may be nil to disable caching.
func New(client RedisClient, ttl time.Duration, logger *zap.Logger) *Cache {
	if ttl <= 0 {
		ttl = time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Cache{client: client, ttl: ttl, logger: logger.Sugar()}
}

// Enabled reports whether a Redis client is configured.
func (c *Cache) Enabled() bool {
	return c != nil && c.client != nil
}

// Get returns the cached body for key.
func (c *Cache) Get(ctx context.Context, key string) ([]byte, bool) {
	if !c.Enabled() {
		return nil, false
	}
	body, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		cacheMisses.Inc()
		return nil, false
	}
	if err != nil {
		cacheErrors.Inc()
		c.logger.Warnw("View cache read failed", "key", key, "error", err)
		return nil, false
	}
	cacheHits.Inc()
	return body, true
}

// Set stores body under key for the configured TTL.
func (c *Cache) Set(ctx context.Context, key string, body []byte) {
	if !c.Enabled() {
		return
	}
	if err := c.client.Set(ctx, key, body, c.ttl).Err(); err != nil {
		cacheErrors.Inc()
		c.logger.Warnw("View cache write failed", "key", key, "error", err)
	}
}

// Ping checks the Redis connection. A disabled cache is always healthy.
func (c *Cache) Ping(ctx context.Context) error {
	if !c.Enabled() {
		return nil
	}
	return c.client.Ping(ctx).Err()
}

// Key builds a cache key from the snapshot generation, the route and the
// normalized query. The request part is hashed to bound key length.
func Key(generation, route, query string) string {
	sum := sha256.Sum256([]byte(route + "?" + query))
	return keyPrefix + generation + ":" + strings.Trim(route, "/") + ":" + hex.EncodeToString(sum[:8])
}
