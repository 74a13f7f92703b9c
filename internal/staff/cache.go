package staff

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
	EmployeesKey() string
}

type redisCache struct {
	store slotStore
}

// NewCache wraps the cache client in the staff Cache interface.
func NewCache(store *redis.Client) (Cache, error) {
	if store == nil {
		return nil, errors.New(errors.CodeInternal, "staff: cache client is required")
	}
	return &redisCache{store: store}, nil
}

func (c *redisCache) ReadEmployees(ctx context.Context) ([]models.Employee, error) {
	raw, err := c.store.Get(ctx, c.store.EmployeesKey())
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(errors.CodeDependency, err, "reading cached employees")
	}
	var employees []models.Employee
	if err := json.Unmarshal([]byte(raw), &employees); err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "cached employees are corrupt")
	}
	return employees, nil
}

func (c *redisCache) WriteEmployees(ctx context.Context, employees []models.Employee) error {
	raw, err := json.Marshal(employees)
	if err != nil {
		return errors.Wrap(errors.CodeInternal, err, "encoding employees for cache")
	}
	if err := c.store.Set(ctx, c.store.EmployeesKey(), string(raw), 0); err != nil {
		return errors.Wrap(errors.CodeDependency, err, "writing cached employees")
	}
	return nil
}
