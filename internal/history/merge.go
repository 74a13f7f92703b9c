package history

import (
	"github.com/google/uuid"

	"github.com/tlca-systems/register-backend/pkg/db/models"
	"github.com/tlca-systems/register-backend/pkg/enums"
)

// ChangeEvent is one externally-originated order history change. Inserts and
// updates carry the full order payload; deletes carry only the id; clears
// carry nothing.
type ChangeEvent struct {
	Type    enums.ChangeEventType
	Order   *models.Order
	OrderID uuid.UUID
}

// applyChange merges a change event into the collection, de-duplicating by
// order id. It returns the resulting collection and whether anything
// changed. Inserts for an id already present and deletes for an absent id
// are no-ops; registers replaying each other's writes must converge rather
// than duplicate. The function is pure so it can be tested without any
// transport.
func applyChange(orders []models.Order, event ChangeEvent) ([]models.Order, bool) {
	switch event.Type {
	case enums.ChangeEventInsert:
		if event.Order == nil {
			return orders, false
		}
		if indexOf(orders, event.Order.ID) >= 0 {
			return orders, false
		}
		merged := make([]models.Order, 0, len(orders)+1)
		merged = append(merged, *event.Order)
		merged = append(merged, orders...)
		return merged, true

	case enums.ChangeEventUpdate:
		if event.Order == nil {
			return orders, false
		}
		if i := indexOf(orders, event.Order.ID); i >= 0 {
			merged := make([]models.Order, len(orders))
			copy(merged, orders)
			merged[i] = *event.Order
			return merged, true
		}
		// An update for an order this register never saw is an insert.
		merged := make([]models.Order, 0, len(orders)+1)
		merged = append(merged, *event.Order)
		merged = append(merged, orders...)
		return merged, true

	case enums.ChangeEventDelete:
		id := event.OrderID
		if id == uuid.Nil && event.Order != nil {
			id = event.Order.ID
		}
		if i := indexOf(orders, id); i >= 0 {
			merged := make([]models.Order, 0, len(orders)-1)
			merged = append(merged, orders[:i]...)
			merged = append(merged, orders[i+1:]...)
			return merged, true
		}
		return orders, false

	case enums.ChangeEventClear:
		if len(orders) == 0 {
			return orders, false
		}
		return nil, true
	}
	return orders, false
}

func indexOf(orders []models.Order, id uuid.UUID) int {
	for i := range orders {
		if orders[i].ID == id {
			return i
		}
	}
	return -1
}
