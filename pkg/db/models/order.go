package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tlca-systems/register-backend/pkg/enums"
)

// LineItem is the denormalized snapshot of one product line inside an order.
// UnitPrice is the catalog price at add-time; the discounted fields are
// derived from it under the order's customer type and never mutate again.
type LineItem struct {
	ProductID           string          `json:"productId"`
	Name                string          `json:"name"`
	UnitPrice           decimal.Decimal `json:"unitPrice"`
	Quantity            int             `json:"quantity"`
	DiscountedUnitPrice decimal.Decimal `json:"discountedPrice"`
	LineTotal           decimal.Decimal `json:"totalPrice"`
	Commission          decimal.Decimal `json:"commission"`
}

// Order is the immutable record created exactly once at checkout. Orders are
// never updated; they are inserted, listed, and deleted wholesale.
type Order struct {
	ID              uuid.UUID          `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	EmployeeID      string             `gorm:"column:employee_id;not null;index" json:"employeeId"`
	EmployeeName    string             `gorm:"column:employee_name;not null" json:"employeeName"`
	CustomerType    enums.CustomerType `gorm:"column:customer_type;not null" json:"customerType"`
	Items           []LineItem         `gorm:"column:items;type:jsonb;serializer:json" json:"items"`
	TotalAmount     decimal.Decimal    `gorm:"column:total_amount;type:numeric(12,2);not null" json:"totalAmount"`
	TotalCommission decimal.Decimal    `gorm:"column:total_commission;type:numeric(12,2);not null" json:"totalCommission"`
	LedgerAmount    decimal.Decimal    `gorm:"column:ledger_amount;type:numeric(12,2);not null" json:"ledgerAmount"`
	Timestamp       time.Time          `gorm:"column:timestamp;not null;index:,sort:desc" json:"timestamp"`
	CreatedAt       time.Time          `gorm:"column:created_at;autoCreateTime" json:"-"`
	UpdatedAt       time.Time          `gorm:"column:updated_at;autoUpdateTime" json:"-"`
}

// TableName pins the remote table the register synchronizes against.
func (Order) TableName() string {
	return "orders"
}
