package catalog

import (
	"context"

	"gorm.io/gorm"

	"github.com/tlca-systems/register-backend/pkg/db/models"
	"github.com/tlca-systems/register-backend/pkg/errors"
)

// Repository is the remote product table surface.
type Repository interface {
	ListActive(ctx context.Context) ([]models.Product, error)
	Create(ctx context.Context, product *models.Product) error
	Deactivate(ctx context.Context, id string) error
}

type repository struct {
	conn *gorm.DB
}

// NewRepository builds the product repository on a live connection.
func NewRepository(conn *gorm.DB) Repository {
	return &repository{conn: conn}
}

func (r *repository) ListActive(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	err := r.conn.WithContext(ctx).
		Where("is_active = ?", true).
		Order("id ASC").
		Find(&products).Error
	if err != nil {
		return nil, errors.Wrap(errors.CodeDependency, err, "listing products")
	}
	return products, nil
}

func (r *repository) Create(ctx context.Context, product *models.Product) error {
	if err := r.conn.WithContext(ctx).Create(product).Error; err != nil {
		return errors.Wrap(errors.CodeDependency, err, "creating product")
	}
	return nil
}

func (r *repository) Deactivate(ctx context.Context, id string) error {
	err := r.conn.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ?", id).
		Update("is_active", false).Error
	if err != nil {
		return errors.Wrap(errors.CodeDependency, err, "deactivating product")
	}
	return nil
}
