// Package checkout turns a drained cart into an immutable order record.
package checkout

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/tlca-systems/register-backend/internal/cart"
	"github.com/tlca-systems/register-backend/pkg/db/models"
	"github.com/tlca-systems/register-backend/pkg/errors"
	"github.com/tlca-systems/register-backend/pkg/logger"
)

// sessionDrainer hands over the cart contents and resets the session in one
// atomic step.
type sessionDrainer interface {
	Drain(employeeID string) (cart.Snapshot, bool)
}

// historyWriter records the finished order.
type historyWriter interface {
	AddOrder(ctx context.Context, order models.Order) error
}

// employeeDirectory resolves the display name stamped on the order.
type employeeDirectory interface {
	Lookup(ctx context.Context, employeeID string) (*models.Employee, error)
}

// Service is the order assembler.
type Service interface {
	Checkout(ctx context.Context, employeeID string) (*models.Order, error)
}

type service struct {
	sessions sessionDrainer
	history  historyWriter
	staff    employeeDirectory
	logg     *logger.Logger
	now      func() time.Time
	newID    func() uuid.UUID
}

// ServiceParams configure the checkout service.
type ServiceParams struct {
	Sessions sessionDrainer
	History  historyWriter
	Staff    employeeDirectory
	Logger   *logger.Logger
	Now      func() time.Time
	NewID    func() uuid.UUID
}

// NewService validates dependencies and builds the checkout service.
func NewService(params ServiceParams) (Service, error) {
	if params.Sessions == nil {
		return nil, errors.New(errors.CodeInternal, "checkout: sessions are required")
	}
	if params.History == nil {
		return nil, errors.New(errors.CodeInternal, "checkout: history writer is required")
	}
	if params.Staff == nil {
		return nil, errors.New(errors.CodeInternal, "checkout: employee directory is required")
	}
	if params.Logger == nil {
		return nil, errors.New(errors.CodeInternal, "checkout: logger is required")
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	newID := params.NewID
	if newID == nil {
		newID = uuid.New
	}
	return &service{
		sessions: params.Sessions,
		history:  params.History,
		staff:    params.Staff,
		logg:     params.Logger,
		now:      now,
		newID:    newID,
	}, nil
}

// Checkout drains the employee's cart into a new order and records it. The
// order carries the cart's totals verbatim; nothing is repriced at checkout
// time. An empty cart is a caller error, not a silent no-op.
func (s *service) Checkout(ctx context.Context, employeeID string) (*models.Order, error) {
	employee, err := s.staff.Lookup(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	snapshot, ok := s.sessions.Drain(employeeID)
	if !ok {
		return nil, errors.New(errors.CodeValidation, "cannot checkout an empty cart")
	}

	order := models.Order{
		ID:              s.newID(),
		EmployeeID:      employee.ID,
		EmployeeName:    employee.Name,
		CustomerType:    snapshot.CustomerType,
		Items:           snapshot.Items,
		TotalAmount:     snapshot.Totals.TotalAmount,
		TotalCommission: snapshot.Totals.TotalCommission,
		LedgerAmount:    snapshot.Totals.LedgerAmount,
		Timestamp:       s.now().UTC(),
	}

	if err := s.history.AddOrder(ctx, order); err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "recording order")
	}

	orderCtx := s.logg.WithOrderID(ctx, order.ID.String())
	s.logg.Info(orderCtx, "order recorded")
	return &order, nil
}
