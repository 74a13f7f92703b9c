package cart

import (
	"sync"

	"github.com/tlca-systems/register-backend/pkg/db/models"
	"github.com/tlca-systems/register-backend/pkg/enums"
	"github.com/tlca-systems/register-backend/pkg/pricing"
)

// Snapshot is a point-in-time read of one employee's cart.
type Snapshot struct {
	EmployeeID   string             `json:"employeeId"`
	CustomerType enums.CustomerType `json:"customerType"`
	Items        []models.LineItem  `json:"items"`
	Totals       Totals             `json:"totals"`
}

// Sessions holds one cart per employee for the life of the process. Carts
// are created empty on first access and destroyed on checkout or explicit
// reset. All access is serialized through one mutex; cart mutations are
// cheap in-memory work, so a single writer keeps the engine race-free.
type Sessions struct {
	mu    sync.Mutex
	rules pricing.Rules
	carts map[string]*Cart
}

// NewSessions builds an empty session table under the provided rules.
func NewSessions(rules pricing.Rules) *Sessions {
	return &Sessions{
		rules: rules,
		carts: make(map[string]*Cart),
	}
}

func (s *Sessions) cart(employeeID string) *Cart {
	c, ok := s.carts[employeeID]
	if !ok {
		c = New(s.rules)
		s.carts[employeeID] = c
	}
	return c
}

func (s *Sessions) snapshot(employeeID string, c *Cart) Snapshot {
	return Snapshot{
		EmployeeID:   employeeID,
		CustomerType: c.CustomerType(),
		Items:        c.Lines(),
		Totals:       c.Totals(),
	}
}

// Add merges the product into the employee's cart.
func (s *Sessions) Add(employeeID string, product models.Product, quantity int) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.cart(employeeID)
	c.Add(product, quantity)
	return s.snapshot(employeeID, c)
}

// Remove drops the product line if present.
func (s *Sessions) Remove(employeeID, productID string) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.cart(employeeID)
	c.Remove(productID)
	return s.snapshot(employeeID, c)
}

// UpdateQuantity sets a line's quantity; non-positive removes the line.
func (s *Sessions) UpdateQuantity(employeeID, productID string, quantity int) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.cart(employeeID)
	c.UpdateQuantity(productID, quantity)
	return s.snapshot(employeeID, c)
}

// SetCustomerType switches the cart's tier and reprices every line.
func (s *Sessions) SetCustomerType(employeeID string, customerType enums.CustomerType) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.cart(employeeID)
	c.SetCustomerType(customerType)
	return s.snapshot(employeeID, c)
}

// Get returns the current snapshot without mutating anything.
func (s *Sessions) Get(employeeID string) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot(employeeID, s.cart(employeeID))
}

// Reset wipes the employee's cart back to the empty standard-tier state.
func (s *Sessions) Reset(employeeID string) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.cart(employeeID)
	c.Reset()
	return s.snapshot(employeeID, c)
}

// Drain atomically snapshots and resets the cart for checkout. The boolean
// reports whether the cart held any lines; empty carts are left untouched
// and must not produce an order.
func (s *Sessions) Drain(employeeID string) (Snapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.cart(employeeID)
	if c.Empty() {
		return s.snapshot(employeeID, c), false
	}
	snap := s.snapshot(employeeID, c)
	c.Reset()
	return snap, true
}
