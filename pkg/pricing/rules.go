// Package pricing holds the customer discount table and the commission split
// applied to every sale at the register.
package pricing

import (
	"github.com/shopspring/decimal"
	"github.com/tlca-systems/register-backend/pkg/enums"
)

// Rules is the static pricing table for one register session. Discounts are
// fractions in [0,1); the commission fraction is the employee's share of a
// discounted sale. The employer's ledger fraction is always derived as
// 1 - commission so the two cannot drift apart.
type Rules struct {
	discounts  map[enums.CustomerType]decimal.Decimal
	commission decimal.Decimal
}

// NewRules builds a pricing table. Missing tiers resolve to the standard
// (zero) discount.
func NewRules(discounts map[enums.CustomerType]decimal.Decimal, commission decimal.Decimal) Rules {
	table := make(map[enums.CustomerType]decimal.Decimal, len(discounts))
	for tier, fraction := range discounts {
		table[tier] = fraction
	}
	return Rules{discounts: table, commission: commission}
}

// Default returns the canonical rule table: standard 0%, law & doc 10%,
// employee 20%, with a 35% commission split.
func Default() Rules {
	return NewRules(map[enums.CustomerType]decimal.Decimal{
		enums.CustomerTypeStandard: decimal.Zero,
		enums.CustomerTypeLawDoc:   decimal.NewFromFloat(0.10),
		enums.CustomerTypeEmployee: decimal.NewFromFloat(0.20),
	}, decimal.NewFromFloat(0.35))
}

// DiscountFor resolves the discount fraction for a customer type id. Unknown
// ids resolve to the standard tier's fraction.
func (r Rules) DiscountFor(customerType enums.CustomerType) decimal.Decimal {
	if fraction, ok := r.discounts[customerType]; ok {
		return fraction
	}
	if fraction, ok := r.discounts[enums.CustomerTypeStandard]; ok {
		return fraction
	}
	return decimal.Zero
}

// CommissionFraction is the employee's share of a discounted sale.
func (r Rules) CommissionFraction() decimal.Decimal {
	return r.commission
}

// LedgerFraction is the employer's retained share, derived from the
// commission fraction.
func (r Rules) LedgerFraction() decimal.Decimal {
	return decimal.NewFromInt(1).Sub(r.commission)
}
