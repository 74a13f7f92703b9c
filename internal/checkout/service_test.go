package checkout

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tlca-systems/register-backend/internal/cart"
	"github.com/tlca-systems/register-backend/pkg/db/models"
	"github.com/tlca-systems/register-backend/pkg/enums"
	"github.com/tlca-systems/register-backend/pkg/errors"
	"github.com/tlca-systems/register-backend/pkg/logger"
	"github.com/tlca-systems/register-backend/pkg/pricing"
)

type fakeHistory struct {
	orders []models.Order
	err    error
}

func (f *fakeHistory) AddOrder(_ context.Context, order models.Order) error {
	if f.err != nil {
		return f.err
	}
	f.orders = append(f.orders, order)
	return nil
}

type fakeStaff struct {
	lookupFn func(ctx context.Context, employeeID string) (*models.Employee, error)
}

func (f *fakeStaff) Lookup(ctx context.Context, employeeID string) (*models.Employee, error) {
	if f.lookupFn == nil {
		return &models.Employee{ID: employeeID, Name: employeeID}, nil
	}
	return f.lookupFn(ctx, employeeID)
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
}

func newTestService(t *testing.T, sessions *cart.Sessions, history *fakeHistory, staff *fakeStaff) Service {
	t.Helper()
	fixedID := uuid.MustParse("7f9c24e5-2f8a-4b3d-9d6e-1a2b3c4d5e6f")
	svc, err := NewService(ServiceParams{
		Sessions: sessions,
		History:  history,
		Staff:    staff,
		Logger:   testLogger(),
		Now:      func() time.Time { return time.Date(2026, 8, 20, 14, 30, 0, 0, time.UTC) },
		NewID:    func() uuid.UUID { return fixedID },
	})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func TestCheckoutRejectsEmptyCart(t *testing.T) {
	sessions := cart.NewSessions(pricing.Default())
	history := &fakeHistory{}
	svc := newTestService(t, sessions, history, &fakeStaff{})

	_, err := svc.Checkout(context.Background(), "cat")
	if err == nil {
		t.Fatal("expected error for empty cart")
	}
	appErr := errors.As(err)
	if appErr == nil || appErr.Code() != errors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(history.orders) != 0 {
		t.Fatal("expected no order to be recorded")
	}
}

func TestCheckoutAssemblesOrderFromCart(t *testing.T) {
	sessions := cart.NewSessions(pricing.Default())
	sessions.SetCustomerType("cat", enums.CustomerTypeEmployee)
	sessions.Add("cat", models.Product{
		ID:       "remington-870",
		Name:     "Remington 870",
		Price:    decimal.NewFromInt(100),
		Category: enums.ProductCategoryShotguns,
	}, 2)

	history := &fakeHistory{}
	staff := &fakeStaff{
		lookupFn: func(_ context.Context, employeeID string) (*models.Employee, error) {
			return &models.Employee{ID: employeeID, Name: "Cat"}, nil
		},
	}
	svc := newTestService(t, sessions, history, staff)

	order, err := svc.Checkout(context.Background(), "cat")
	if err != nil {
		t.Fatalf("Checkout: %v", err)
	}

	if order.EmployeeID != "cat" || order.EmployeeName != "Cat" {
		t.Fatalf("unexpected employee fields: %s / %s", order.EmployeeID, order.EmployeeName)
	}
	if order.CustomerType != enums.CustomerTypeEmployee {
		t.Fatalf("expected employee customer type, got %s", order.CustomerType)
	}
	if len(order.Items) != 1 || order.Items[0].Quantity != 2 {
		t.Fatal("expected cart lines to be carried onto the order")
	}

	// 100 with 20% employee discount is 80/unit, 160 total; commission 35%
	// of 160 is 56; ledger is the remainder.
	if !order.TotalAmount.Equal(decimal.NewFromInt(160)) {
		t.Fatalf("expected total 160, got %s", order.TotalAmount)
	}
	if !order.TotalCommission.Equal(decimal.NewFromInt(56)) {
		t.Fatalf("expected commission 56, got %s", order.TotalCommission)
	}
	if !order.LedgerAmount.Equal(decimal.NewFromInt(104)) {
		t.Fatalf("expected ledger 104, got %s", order.LedgerAmount)
	}
	if !order.TotalAmount.Equal(order.TotalCommission.Add(order.LedgerAmount)) {
		t.Fatal("expected commission and ledger to partition the total")
	}

	if !order.Timestamp.Equal(time.Date(2026, 8, 20, 14, 30, 0, 0, time.UTC)) {
		t.Fatalf("unexpected timestamp %s", order.Timestamp)
	}
	if len(history.orders) != 1 || history.orders[0].ID != order.ID {
		t.Fatal("expected order to be recorded in history")
	}
}

func TestCheckoutResetsTheCart(t *testing.T) {
	sessions := cart.NewSessions(pricing.Default())
	sessions.Add("cat", models.Product{
		ID:    "colt-saa",
		Name:  "Colt Single Action Army",
		Price: decimal.NewFromInt(250),
	}, 1)
	svc := newTestService(t, sessions, &fakeHistory{}, &fakeStaff{})

	if _, err := svc.Checkout(context.Background(), "cat"); err != nil {
		t.Fatalf("Checkout: %v", err)
	}

	snapshot := sessions.Get("cat")
	if len(snapshot.Items) != 0 {
		t.Fatal("expected cart to be empty after checkout")
	}
	if snapshot.CustomerType != enums.CustomerTypeStandard {
		t.Fatalf("expected customer type to reset, got %s", snapshot.CustomerType)
	}

	// A second checkout against the now-empty cart must fail.
	if _, err := svc.Checkout(context.Background(), "cat"); err == nil {
		t.Fatal("expected error for drained cart")
	}
}

func TestCheckoutPropagatesStaffLookupFailure(t *testing.T) {
	sessions := cart.NewSessions(pricing.Default())
	sessions.Add("ghost", models.Product{ID: "p", Name: "P", Price: decimal.NewFromInt(10)}, 1)
	staff := &fakeStaff{
		lookupFn: func(context.Context, string) (*models.Employee, error) {
			return nil, errors.New(errors.CodeNotFound, "unknown employee")
		},
	}
	svc := newTestService(t, sessions, &fakeHistory{}, staff)

	_, err := svc.Checkout(context.Background(), "ghost")
	if err == nil {
		t.Fatal("expected error when employee is unknown")
	}
	appErr := errors.As(err)
	if appErr == nil || appErr.Code() != errors.CodeNotFound {
		t.Fatalf("expected not-found error, got %v", err)
	}

	// A failed lookup must not drain the cart.
	if len(sessions.Get("ghost").Items) != 1 {
		t.Fatal("expected cart to be untouched after lookup failure")
	}
}
