// Package cart owns the mutable line-item list for one employee's active
// sales session and keeps every derived price consistent with the current
// customer type.
package cart

import (
	"github.com/shopspring/decimal"

	"github.com/tlca-systems/register-backend/pkg/db/models"
	"github.com/tlca-systems/register-backend/pkg/enums"
	"github.com/tlca-systems/register-backend/pkg/pricing"
)

// Cart is a single-writer, in-memory aggregate. Lines are keyed by product
// id: adding a product already present merges quantities instead of
// appending a duplicate line.
type Cart struct {
	rules        pricing.Rules
	customerType enums.CustomerType
	lines        []models.LineItem
}

// Totals are recomputed from the lines on every read, never cached.
type Totals struct {
	Subtotal        decimal.Decimal `json:"subtotal"`
	TotalAmount     decimal.Decimal `json:"totalAmount"`
	TotalCommission decimal.Decimal `json:"totalCommission"`
	LedgerAmount    decimal.Decimal `json:"ledgerAmount"`
}

// New returns an empty cart under the standard customer type.
func New(rules pricing.Rules) *Cart {
	return &Cart{
		rules:        rules,
		customerType: enums.CustomerTypeStandard,
	}
}

// compute derives the discounted fields for a line from its immutable unit
// price under the given customer type. This is the only place a discount is
// applied, so discounts can never compound.
func (c *Cart) compute(unitPrice decimal.Decimal, quantity int, customerType enums.CustomerType) (discounted, lineTotal, commission decimal.Decimal) {
	discount := c.rules.DiscountFor(customerType)
	discounted = unitPrice.Mul(decimal.NewFromInt(1).Sub(discount))
	lineTotal = discounted.Mul(decimal.NewFromInt(int64(quantity)))
	commission = lineTotal.Mul(c.rules.CommissionFraction())
	return discounted, lineTotal, commission
}

// Add inserts a new line for the product or increases the existing line's
// quantity. The line's unit price is snapshotted from the product at first
// add and never refreshed afterwards.
func (c *Cart) Add(product models.Product, quantity int) {
	if quantity < 1 {
		quantity = 1
	}
	for i := range c.lines {
		if c.lines[i].ProductID == product.ID {
			next := c.lines[i].Quantity + quantity
			discounted, total, commission := c.compute(c.lines[i].UnitPrice, next, c.customerType)
			c.lines[i].Quantity = next
			c.lines[i].DiscountedUnitPrice = discounted
			c.lines[i].LineTotal = total
			c.lines[i].Commission = commission
			return
		}
	}

	discounted, total, commission := c.compute(product.Price, quantity, c.customerType)
	c.lines = append(c.lines, models.LineItem{
		ProductID:           product.ID,
		Name:                product.Name,
		UnitPrice:           product.Price,
		Quantity:            quantity,
		DiscountedUnitPrice: discounted,
		LineTotal:           total,
		Commission:          commission,
	})
}

// Remove deletes the line for the product id. Absent lines are a no-op.
func (c *Cart) Remove(productID string) {
	for i := range c.lines {
		if c.lines[i].ProductID == productID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return
		}
	}
}

// UpdateQuantity sets the line's quantity. Non-positive quantities remove
// the line. Quantity changes scale the already-discounted unit price; they
// never re-derive the discount.
func (c *Cart) UpdateQuantity(productID string, quantity int) {
	if quantity <= 0 {
		c.Remove(productID)
		return
	}
	for i := range c.lines {
		if c.lines[i].ProductID == productID {
			c.lines[i].Quantity = quantity
			c.lines[i].LineTotal = c.lines[i].DiscountedUnitPrice.Mul(decimal.NewFromInt(int64(quantity)))
			c.lines[i].Commission = c.lines[i].LineTotal.Mul(c.rules.CommissionFraction())
			return
		}
	}
}

// SetCustomerType switches the active tier and recomputes every line from
// its immutable unit price.
func (c *Cart) SetCustomerType(customerType enums.CustomerType) {
	c.customerType = customerType
	for i := range c.lines {
		discounted, total, commission := c.compute(c.lines[i].UnitPrice, c.lines[i].Quantity, customerType)
		c.lines[i].DiscountedUnitPrice = discounted
		c.lines[i].LineTotal = total
		c.lines[i].Commission = commission
	}
}

// Reset clears all lines and restores the standard customer type.
func (c *Cart) Reset() {
	c.lines = nil
	c.customerType = enums.CustomerTypeStandard
}

// CustomerType returns the active tier.
func (c *Cart) CustomerType() enums.CustomerType {
	return c.customerType
}

// Empty reports whether the cart holds no lines.
func (c *Cart) Empty() bool {
	return len(c.lines) == 0
}

// Lines returns a copy of the current lines in insertion order.
func (c *Cart) Lines() []models.LineItem {
	lines := make([]models.LineItem, len(c.lines))
	copy(lines, c.lines)
	return lines
}

// Totals sums the lines: subtotal is pre-discount, total/commission are the
// discounted aggregates, and ledger is always total minus commission.
func (c *Cart) Totals() Totals {
	totals := Totals{
		Subtotal:        decimal.Zero,
		TotalAmount:     decimal.Zero,
		TotalCommission: decimal.Zero,
		LedgerAmount:    decimal.Zero,
	}
	for i := range c.lines {
		qty := decimal.NewFromInt(int64(c.lines[i].Quantity))
		totals.Subtotal = totals.Subtotal.Add(c.lines[i].UnitPrice.Mul(qty))
		totals.TotalAmount = totals.TotalAmount.Add(c.lines[i].LineTotal)
		totals.TotalCommission = totals.TotalCommission.Add(c.lines[i].Commission)
	}
	totals.LedgerAmount = totals.TotalAmount.Sub(totals.TotalCommission)
	return totals
}
