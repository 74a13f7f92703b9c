// Package reports derives read-only projections from the order history.
// Every report is recomputed from the full collection on each call; the
// history is small enough that incremental maintenance is not worth its
// invalidation bugs.
package reports

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/tlca-systems/register-backend/pkg/db/models"
)

// Filter narrows the order set a summary is computed over. Query matches
// case-insensitively against order id, employee name, and customer type;
// EmployeeID matches exactly. Zero values match everything.
type Filter struct {
	Query      string
	EmployeeID string
}

// Summary is the revenue rollup over a filtered order subset.
type Summary struct {
	OrderCount      int             `json:"orderCount"`
	TotalAmount     decimal.Decimal `json:"totalAmount"`
	TotalCommission decimal.Decimal `json:"totalCommission"`
	LedgerAmount    decimal.Decimal `json:"ledgerAmount"`
}

// BestSeller is one product's aggregate across all orders, grouped by name.
type BestSeller struct {
	Name          string          `json:"name"`
	TotalQuantity int             `json:"totalQuantity"`
	TotalRevenue  decimal.Decimal `json:"totalRevenue"`
	TotalSales    int             `json:"totalSales"`
	AveragePrice  decimal.Decimal `json:"averagePrice"`
}

func (f Filter) matches(order models.Order) bool {
	if f.EmployeeID != "" && order.EmployeeID != f.EmployeeID {
		return false
	}
	if f.Query == "" {
		return true
	}
	needle := strings.ToLower(strings.TrimSpace(f.Query))
	if needle == "" {
		return true
	}
	haystacks := []string{
		order.ID.String(),
		order.EmployeeName,
		string(order.CustomerType),
	}
	for _, haystack := range haystacks {
		if strings.Contains(strings.ToLower(haystack), needle) {
			return true
		}
	}
	return false
}

// FilterOrders returns the orders matching the filter, preserving input order.
func FilterOrders(orders []models.Order, filter Filter) []models.Order {
	matched := make([]models.Order, 0, len(orders))
	for _, order := range orders {
		if filter.matches(order) {
			matched = append(matched, order)
		}
	}
	return matched
}

// Summarize computes the revenue summary over the orders matching the filter.
func Summarize(orders []models.Order, filter Filter) Summary {
	summary := Summary{
		TotalAmount:     decimal.Zero,
		TotalCommission: decimal.Zero,
		LedgerAmount:    decimal.Zero,
	}
	for _, order := range orders {
		if !filter.matches(order) {
			continue
		}
		summary.OrderCount++
		summary.TotalAmount = summary.TotalAmount.Add(order.TotalAmount)
		summary.TotalCommission = summary.TotalCommission.Add(order.TotalCommission)
		summary.LedgerAmount = summary.LedgerAmount.Add(order.LedgerAmount)
	}
	return summary
}

// BestSellers groups every line item across all orders by product name and
// sorts descending by total quantity. The sort is stable; products tied on
// quantity keep the order in which they first appeared.
func BestSellers(orders []models.Order) []BestSeller {
	index := make(map[string]int)
	sellers := make([]BestSeller, 0)

	for _, order := range orders {
		for _, item := range order.Items {
			i, ok := index[item.Name]
			if !ok {
				i = len(sellers)
				index[item.Name] = i
				sellers = append(sellers, BestSeller{
					Name:         item.Name,
					TotalRevenue: decimal.Zero,
				})
			}
			sellers[i].TotalQuantity += item.Quantity
			sellers[i].TotalRevenue = sellers[i].TotalRevenue.Add(item.LineTotal)
			sellers[i].TotalSales++
		}
	}

	for i := range sellers {
		if sellers[i].TotalQuantity > 0 {
			qty := decimal.NewFromInt(int64(sellers[i].TotalQuantity))
			sellers[i].AveragePrice = sellers[i].TotalRevenue.Div(qty)
		} else {
			sellers[i].AveragePrice = decimal.Zero
		}
	}

	sort.SliceStable(sellers, func(a, b int) bool {
		return sellers[a].TotalQuantity > sellers[b].TotalQuantity
	})
	return sellers
}
