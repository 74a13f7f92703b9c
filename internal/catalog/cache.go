package catalog

import (
	"context"
	"encoding/json"
	"time"

	"github.com/tlca-systems/register-backend/pkg/db/models"
	"github.com/tlca-systems/register-backend/pkg/errors"
	"github.com/tlca-systems/register-backend/pkg/redis"
)

type slotStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	ProductsKey() string
}

type redisCache struct {
	store slotStore
}

// NewCache wraps the cache client in the catalog Cache interface.
func NewCache(store *redis.Client) (Cache, error) {
	if store == nil {
		return nil, errors.New(errors.CodeInternal, "catalog: cache client is required")
	}
	return &redisCache{store: store}, nil
}

func (c *redisCache) ReadProducts(ctx context.Context) ([]models.Product, error) {
	raw, err := c.store.Get(ctx, c.store.ProductsKey())
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(errors.CodeDependency, err, "reading cached products")
	}
	var products []models.Product
	if err := json.Unmarshal([]byte(raw), &products); err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "cached products are corrupt")
	}
	return products, nil
}

func (c *redisCache) WriteProducts(ctx context.Context, products []models.Product) error {
	raw, err := json.Marshal(products)
	if err != nil {
		return errors.Wrap(errors.CodeInternal, err, "encoding products for cache")
	}
	if err := c.store.Set(ctx, c.store.ProductsKey(), string(raw), 0); err != nil {
		return errors.Wrap(errors.CodeDependency, err, "writing cached products")
	}
	return nil
}
