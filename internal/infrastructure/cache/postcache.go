// Package cache provides a Redis-backed TTL cache for scraped posts so
// repeated analyses of the same reel do not re-hit the rate-limited
// scrape service.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog/log"

	"github.com/reelscope/reelscope/internal/domain"
)

const keyPrefix = "reelscope:post:"

// Config configures the Redis connection.
type Config struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// PostCache stores scraped posts keyed by shortcode.
type PostCache struct {
	client redis.Cmdable
	ttl    time.Duration
}

// NewPostCache dials Redis with conservative pool and timeout
// settings.
func NewPostCache(cfg Config) *PostCache {
	if cfg.TTL == 0 {
		cfg.TTL = 15 * time.Minute
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,

		PoolSize:     10,
		MinIdleConns: 2,

		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	return &PostCache{client: client, ttl: cfg.TTL}
}

// NewPostCacheWithClient wraps an existing client, used by tests.
func NewPostCacheWithClient(client redis.Cmdable, ttl time.Duration) *PostCache {
	if ttl == 0 {
		ttl = 15 * time.Minute
	}
	return &PostCache{client: client, ttl: ttl}
}

// Get returns the cached post for a shortcode, or (nil, false) on miss.
// Redis errors are treated as misses; the cache never blocks analysis.
func (c *PostCache) Get(ctx context.Context, shortcode string) (*domain.Post, bool) {
	raw, err := c.client.Get(ctx, keyPrefix+shortcode).Result()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		log.Warn().Err(err).Str("shortcode", shortcode).Msg("Post cache read failed")
		return nil, false
	}

	var post domain.Post
	if err := json.Unmarshal([]byte(raw), &post); err != nil {
		log.Warn().Err(err).Str("shortcode", shortcode).Msg("Post cache entry corrupt")
		return nil, false
	}
	return &post, true
}

// Set stores a post under its shortcode with the configured TTL.
func (c *PostCache) Set(ctx context.Context, post *domain.Post) error {
	if post == nil || post.Shortcode == "" {
		return fmt.Errorf("%w: post without shortcode cannot be cached", domain.ErrInvalidInput)
	}

	raw, err := json.Marshal(post)
	if err != nil {
		return fmt.Errorf("encode post for cache: %w", err)
	}
	if err := c.client.Set(ctx, keyPrefix+post.Shortcode, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("write post cache: %w", err)
	}
	return nil
}

// Delete evicts a cached post.
func (c *PostCache) Delete(ctx context.Context, shortcode string) error {
	return c.client.Del(ctx, keyPrefix+shortcode).Err()
}

// Healthy reports whether Redis answers a ping.
func (c *PostCache) Healthy(ctx context.Context) bool {
	return c.client.Ping(ctx).Err() == nil
}
