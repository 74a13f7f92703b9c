package history

import (
	"context"
	"encoding/json"
	"time"

	"github.com/tlca-systems/register-backend/pkg/db/models"
	"github.com/tlca-systems/register-backend/pkg/errors"
	"github.com/tlca-systems/register-backend/pkg/redis"
)

// BackupSnapshot is the disaster-recovery copy of the history. It lives in a
// slot separate from the primary history so a bad write on the hot path can
// never clobber it.
type BackupSnapshot struct {
	TakenAt time.Time      `json:"takenAt"`
	Orders  []models.Order `json:"orders"`
}

// slotStore is the subset of the cache client the history cache needs. Kept
// narrow so tests can stub it without a running cache.
type slotStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	OrderHistoryKey() string
	OrderBackupKey() string
}

// redisCache persists the history and its backup snapshot as JSON documents,
// one slot each, rewritten whole on every change.
type redisCache struct {
	store slotStore
}

// NewCache wraps the cache client in the history Cache interface.
func NewCache(store *redis.Client) (Cache, error) {
	if store == nil {
		return nil, errors.New(errors.CodeInternal, "history: cache client is required")
	}
	return &redisCache{store: store}, nil
}

func (c *redisCache) ReadHistory(ctx context.Context) ([]models.Order, error) {
	raw, err := c.store.Get(ctx, c.store.OrderHistoryKey())
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(errors.CodeDependency, err, "reading cached history")
	}
	var orders []models.Order
	if err := json.Unmarshal([]byte(raw), &orders); err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "cached history is corrupt")
	}
	return orders, nil
}

func (c *redisCache) WriteHistory(ctx context.Context, orders []models.Order) error {
	if orders == nil {
		orders = []models.Order{}
	}
	raw, err := json.Marshal(orders)
	if err != nil {
		return errors.Wrap(errors.CodeInternal, err, "encoding history for cache")
	}
	if err := c.store.Set(ctx, c.store.OrderHistoryKey(), string(raw), 0); err != nil {
		return errors.Wrap(errors.CodeDependency, err, "writing cached history")
	}
	return nil
}

func (c *redisCache) ClearHistory(ctx context.Context) error {
	if err := c.store.Del(ctx, c.store.OrderHistoryKey()); err != nil {
		return errors.Wrap(errors.CodeDependency, err, "clearing cached history")
	}
	return nil
}

func (c *redisCache) ReadBackup(ctx context.Context) (*BackupSnapshot, error) {
	raw, err := c.store.Get(ctx, c.store.OrderBackupKey())
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(errors.CodeDependency, err, "reading backup snapshot")
	}
	var snapshot BackupSnapshot
	if err := json.Unmarshal([]byte(raw), &snapshot); err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "backup snapshot is corrupt")
	}
	return &snapshot, nil
}

func (c *redisCache) WriteBackup(ctx context.Context, snapshot BackupSnapshot) error {
	raw, err := json.Marshal(snapshot)
	if err != nil {
		return errors.Wrap(errors.CodeInternal, err, "encoding backup snapshot")
	}
	if err := c.store.Set(ctx, c.store.OrderBackupKey(), string(raw), 0); err != nil {
		return errors.Wrap(errors.CodeDependency, err, "writing backup snapshot")
	}
	return nil
}
