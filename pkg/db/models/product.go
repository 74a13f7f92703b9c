package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tlca-systems/register-backend/pkg/enums"
)

// Product is a catalog entry. Orders keep denormalized copies of the fields
// they need, so removing a product is a soft delete that preserves history.
type Product struct {
	ID          string                `gorm:"column:id;primaryKey" json:"id"`
	Name        string                `gorm:"column:name;not null" json:"name"`
	Price       decimal.Decimal       `gorm:"column:price;type:numeric(12,2);not null" json:"price"`
	Category    enums.ProductCategory `gorm:"column:category;not null" json:"category"`
	Description *string               `gorm:"column:description" json:"description,omitempty"`
	IsActive    bool                  `gorm:"column:is_active;not null;default:true" json:"-"`
	IsSpecial   bool                  `gorm:"column:is_special;not null;default:false" json:"-"`
	CreatedAt   time.Time             `gorm:"column:created_at;autoCreateTime" json:"-"`
	UpdatedAt   time.Time             `gorm:"column:updated_at;autoUpdateTime" json:"-"`
}

func (Product) TableName() string {
	return "products"
}
