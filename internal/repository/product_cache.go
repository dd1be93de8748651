package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"print-kart/internal/model"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const productSlugKeyPrefix = "product:slug:"

// redisProductCache caches product detail lookups by slug in Redis. Cache
// failures are logged and treated as misses so Redis outages never take the
// catalog down.
type redisProductCache struct {
	client *redis.Client
	ttl    time.Duration
	logger zerolog.Logger
}

// NewRedisProductCache creates a Redis-backed product cache.
func NewRedisProductCache(client *redis.Client, ttl time.Duration, logger zerolog.Logger) ProductCache {
	return &redisProductCache{
		client: client,
		ttl:    ttl,
		logger: logger.With().Str("repository", "product_cache").Logger(),
	}
}

// GetBySlug retrieves a cached product. Returns nil on a miss.
func (c *redisProductCache) GetBySlug(ctx context.Context, slug string) (*model.Product, error) {
	data, err := c.client.Get(ctx, productSlugKeyPrefix+slug).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		c.logger.Warn().Err(err).Str("slug", slug).Msg("cache read failed")
		return nil, nil
	}

	var p model.Product
	if err := json.Unmarshal(data, &p); err != nil {
		c.logger.Warn().Err(err).Str("slug", slug).Msg("cache entry corrupt, dropping")
		c.client.Del(ctx, productSlugKeyPrefix+slug)
		return nil, nil
	}

	return &p, nil
}

// SetBySlug caches a product under its slug.
func (c *redisProductCache) SetBySlug(ctx context.Context, product *model.Product) error {
	data, err := json.Marshal(product)
	if err != nil {
		return fmt.Errorf("failed to encode product for cache: %w", err)
	}

	if err := c.client.Set(ctx, productSlugKeyPrefix+product.Slug, data, c.ttl).Err(); err != nil {
		c.logger.Warn().Err(err).Str("slug", product.Slug).Msg("cache write failed")
	}
	return nil
}

// Invalidate drops a cached product.
func (c *redisProductCache) Invalidate(ctx context.Context, slug string) error {
	if err := c.client.Del(ctx, productSlugKeyPrefix+slug).Err(); err != nil {
		c.logger.Warn().Err(err).Str("slug", slug).Msg("cache invalidation failed")
	}
	return nil
}

// nopProductCache is used when Redis is not configured.
type nopProductCache struct{}

// NewNopProductCache returns a cache that never hits.
func NewNopProductCache() ProductCache { return nopProductCache{} }

func (nopProductCache) GetBySlug(context.Context, string) (*model.Product, error) { return nil, nil }
func (nopProductCache) SetBySlug(context.Context, *model.Product) error           { return nil }
func (nopProductCache) Invalidate(context.Context, string) error                  { return nil }
