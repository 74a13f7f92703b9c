package history

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tlca-systems/register-backend/pkg/db"
	"github.com/tlca-systems/register-backend/pkg/db/models"
	"github.com/tlca-systems/register-backend/pkg/errors"
)

// gormRemote is the RemoteStore backed by the shared orders table.
type gormRemote struct {
	conn *gorm.DB
}

// NewRemote builds the durable RemoteStore on top of the shared database
// connection.
func NewRemote(client *db.Client) (RemoteStore, error) {
	if client == nil {
		return nil, errors.New(errors.CodeInternal, "history: db client is required")
	}
	return &gormRemote{conn: client.DB()}, nil
}

func (r *gormRemote) List(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	err := r.conn.WithContext(ctx).
		Order("timestamp DESC").
		Find(&orders).Error
	if err != nil {
		return nil, errors.Wrap(errors.CodeDependency, err, "listing orders")
	}
	return orders, nil
}

func (r *gormRemote) Insert(ctx context.Context, order models.Order) error {
	err := r.conn.WithContext(ctx).Create(&order).Error
	if err != nil {
		// Another register already recorded this order. Convergence, not a
		// failure.
		if db.IsUniqueViolation(err, "") {
			return nil
		}
		return errors.Wrap(errors.CodeDependency, err, "inserting order")
	}
	return nil
}

func (r *gormRemote) Delete(ctx context.Context, id uuid.UUID) error {
	err := r.conn.WithContext(ctx).
		Where("id = ?", id).
		Delete(&models.Order{}).Error
	if err != nil {
		return errors.Wrap(errors.CodeDependency, err, "deleting order")
	}
	return nil
}

func (r *gormRemote) DeleteAll(ctx context.Context) error {
	err := r.conn.WithContext(ctx).
		Where("1 = 1").
		Delete(&models.Order{}).Error
	if err != nil {
		return errors.Wrap(errors.CodeDependency, err, "clearing orders")
	}
	return nil
}
