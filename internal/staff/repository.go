package staff

import (
	"context"

	"gorm.io/gorm"

	"github.com/tlca-systems/register-backend/pkg/db/models"
	"github.com/tlca-systems/register-backend/pkg/errors"
)

// Repository is the remote employee table surface.
type Repository interface {
	ListActive(ctx context.Context) ([]models.Employee, error)
	Create(ctx context.Context, employee *models.Employee) error
	Deactivate(ctx context.Context, id string) error
}

type repository struct {
	conn *gorm.DB
}

// NewRepository builds the employee repository on a live connection.
func NewRepository(conn *gorm.DB) Repository {
	return &repository{conn: conn}
}

func (r *repository) ListActive(ctx context.Context) ([]models.Employee, error) {
	var employees []models.Employee
	err := r.conn.WithContext(ctx).
		Where("is_active = ?", true).
		Order("id ASC").
		Find(&employees).Error
	if err != nil {
		return nil, errors.Wrap(errors.CodeDependency, err, "listing employees")
	}
	return employees, nil
}

func (r *repository) Create(ctx context.Context, employee *models.Employee) error {
	if err := r.conn.WithContext(ctx).Create(employee).Error; err != nil {
		return errors.Wrap(errors.CodeDependency, err, "creating employee")
	}
	return nil
}

func (r *repository) Deactivate(ctx context.Context, id string) error {
	err := r.conn.WithContext(ctx).
		Model(&models.Employee{}).
		Where("id = ?", id).
		Update("is_active", false).Error
	if err != nil {
		return errors.Wrap(errors.CodeDependency, err, "deactivating employee")
	}
	return nil
}
