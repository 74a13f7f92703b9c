package cart

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/tlca-systems/register-backend/pkg/db/models"
	"github.com/tlca-systems/register-backend/pkg/enums"
	"github.com/tlca-systems/register-backend/pkg/pricing"
)

func product(id, name string, price string) models.Product {
	return models.Product{
		ID:       id,
		Name:     name,
		Price:    decimal.RequireFromString(price),
		Category: enums.ProductCategoryRevolvers,
	}
}

func lawDocQuarterRules() pricing.Rules {
	return pricing.NewRules(map[enums.CustomerType]decimal.Decimal{
		enums.CustomerTypeStandard: decimal.Zero,
		enums.CustomerTypeLawDoc:   decimal.NewFromFloat(0.10),
		enums.CustomerTypeEmployee: decimal.NewFromFloat(0.20),
	}, decimal.NewFromFloat(0.25))
}

func TestAddMergesByProductID(t *testing.T) {
	c := New(pricing.Default())
	p := product("rv_1", "Schofield", "10.00")

	c.Add(p, 2)
	c.Add(p, 3)

	lines := c.Lines()
	if len(lines) != 1 {
		t.Fatalf("expected one merged line, got %d", len(lines))
	}
	if lines[0].Quantity != 5 {
		t.Fatalf("expected quantity 5, got %d", lines[0].Quantity)
	}
	if !lines[0].LineTotal.Equal(decimal.RequireFromString("50")) {
		t.Fatalf("expected line total 50, got %s", lines[0].LineTotal)
	}
}

func TestRemoveAbsentIsNoOp(t *testing.T) {
	c := New(pricing.Default())
	c.Add(product("rv_1", "Schofield", "10.00"), 1)

	before := c.Lines()
	c.Remove("does-not-exist")
	after := c.Lines()

	if len(before) != len(after) {
		t.Fatalf("remove of absent product must not change the cart")
	}
}

func TestUpdateQuantityZeroRemovesLine(t *testing.T) {
	c := New(pricing.Default())
	c.Add(product("rv_1", "Schofield", "10.00"), 2)

	c.UpdateQuantity("rv_1", 0)
	if !c.Empty() {
		t.Fatalf("quantity <= 0 should remove the line")
	}

	c.Add(product("rv_1", "Schofield", "10.00"), 2)
	c.UpdateQuantity("rv_1", -3)
	if !c.Empty() {
		t.Fatalf("negative quantity should remove the line")
	}
}

func TestUpdateQuantityScalesDiscountedPrice(t *testing.T) {
	c := New(lawDocQuarterRules())
	c.Add(product("pi_1", "Colt 1911", "100.00"), 1)
	c.SetCustomerType(enums.CustomerTypeLawDoc)

	c.UpdateQuantity("pi_1", 4)
	lines := c.Lines()
	if !lines[0].DiscountedUnitPrice.Equal(decimal.RequireFromString("90")) {
		t.Fatalf("quantity change must not re-derive the discount, got %s", lines[0].DiscountedUnitPrice)
	}
	if !lines[0].LineTotal.Equal(decimal.RequireFromString("360")) {
		t.Fatalf("expected line total 360, got %s", lines[0].LineTotal)
	}
}

func TestSetCustomerTypeNeverCompoundsDiscounts(t *testing.T) {
	c := New(pricing.Default())
	unit := "450.00"
	c.Add(product("pi_1", "Colt 1911", unit), 3)

	c.SetCustomerType(enums.CustomerTypeEmployee)
	c.SetCustomerType(enums.CustomerTypeStandard)

	lines := c.Lines()
	if !lines[0].DiscountedUnitPrice.Equal(decimal.RequireFromString(unit)) {
		t.Fatalf("round-tripping the tier must restore the exact unit price, got %s", lines[0].DiscountedUnitPrice)
	}

	// Repeating the same tier must be idempotent too.
	c.SetCustomerType(enums.CustomerTypeLawDoc)
	first := c.Lines()[0].DiscountedUnitPrice
	c.SetCustomerType(enums.CustomerTypeLawDoc)
	second := c.Lines()[0].DiscountedUnitPrice
	if !first.Equal(second) {
		t.Fatalf("re-applying a tier compounded the discount: %s vs %s", first, second)
	}
}

func TestTotalsMatchLineSumsAfterMutationSequence(t *testing.T) {
	c := New(pricing.Default())
	c.Add(product("pi_1", "Colt 1911", "450.00"), 2)
	c.Add(product("rv_1", "Schofield", "10.00"), 5)
	c.Add(product("co_2", "Pistol Ammo", "3.00"), 10)
	c.SetCustomerType(enums.CustomerTypeEmployee)
	c.UpdateQuantity("rv_1", 3)
	c.Remove("co_2")
	c.SetCustomerType(enums.CustomerTypeLawDoc)

	var wantTotal, wantCommission decimal.Decimal
	for _, line := range c.Lines() {
		wantTotal = wantTotal.Add(line.LineTotal)
		wantCommission = wantCommission.Add(line.Commission)
	}

	totals := c.Totals()
	if !totals.TotalAmount.Equal(wantTotal) {
		t.Fatalf("total %s != sum of line totals %s", totals.TotalAmount, wantTotal)
	}
	if !totals.TotalCommission.Equal(wantCommission) {
		t.Fatalf("commission %s != sum of line commissions %s", totals.TotalCommission, wantCommission)
	}
	if !totals.LedgerAmount.Add(totals.TotalCommission).Equal(totals.TotalAmount) {
		t.Fatalf("ledger + commission must equal total")
	}
}

func TestLawDocScenario(t *testing.T) {
	// price 100 x2 at 10% discount with a 25% commission split.
	c := New(lawDocQuarterRules())
	c.Add(product("pi_1", "Colt 1911", "100.00"), 2)
	c.SetCustomerType(enums.CustomerTypeLawDoc)

	line := c.Lines()[0]
	if !line.DiscountedUnitPrice.Equal(decimal.RequireFromString("90")) {
		t.Fatalf("expected discounted unit price 90, got %s", line.DiscountedUnitPrice)
	}
	if !line.LineTotal.Equal(decimal.RequireFromString("180")) {
		t.Fatalf("expected line total 180, got %s", line.LineTotal)
	}
	if !line.Commission.Equal(decimal.RequireFromString("45")) {
		t.Fatalf("expected commission 45, got %s", line.Commission)
	}

	totals := c.Totals()
	if !totals.TotalAmount.Equal(decimal.RequireFromString("180")) ||
		!totals.TotalCommission.Equal(decimal.RequireFromString("45")) ||
		!totals.LedgerAmount.Equal(decimal.RequireFromString("135")) {
		t.Fatalf("unexpected totals %+v", totals)
	}
	if !totals.Subtotal.Equal(decimal.RequireFromString("200")) {
		t.Fatalf("subtotal must be pre-discount, got %s", totals.Subtotal)
	}
}

func TestResetRestoresEmptyStandardCart(t *testing.T) {
	c := New(pricing.Default())
	c.Add(product("rv_1", "Schofield", "10.00"), 2)
	c.SetCustomerType(enums.CustomerTypeEmployee)

	c.Reset()

	if !c.Empty() {
		t.Fatalf("reset should clear all lines")
	}
	if c.CustomerType() != enums.CustomerTypeStandard {
		t.Fatalf("reset should restore the standard tier, got %s", c.CustomerType())
	}
}
