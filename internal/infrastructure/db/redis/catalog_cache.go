package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/shopkart/storefront-api/internal/core/domain"
)

const cacheTTL = 5 * time.Minute

// CatalogCache is a JSON read-through cache for catalog listings.
// Backend errors are logged and swallowed: the caller falls back to Mongo.
type CatalogCache struct {
	client *redis.Client
	log    zerolog.Logger
}

func NewCatalogCache(client *redis.Client, log zerolog.Logger) *CatalogCache {
	return &CatalogCache{client: client, log: log}
}

// GetProducts returns the cached listing for key, if present and decodable.
func (c *CatalogCache) GetProducts(ctx context.Context, key string) ([]domain.Product, bool) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warn().Err(err).Str("key", key).Msg("catalog cache read failed")
		}
		return nil, false
	}

	var products []domain.Product
	if err := json.Unmarshal(data, &products); err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("catalog cache entry corrupt")
		return nil, false
	}
	return products, true
}

// SetProducts stores the listing under key with a short TTL. Staleness is
// bounded by the TTL; there is no explicit invalidation.
func (c *CatalogCache) SetProducts(ctx context.Context, key string, products []domain.Product) {
	data, err := json.Marshal(products)
	if err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("catalog cache encode failed")
		return
	}
	if err := c.client.Set(ctx, key, data, cacheTTL).Err(); err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("catalog cache write failed")
	}
}
