package routes

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/tlca-systems/register-backend/internal/cart"
	"github.com/tlca-systems/register-backend/internal/catalog"
	"github.com/tlca-systems/register-backend/internal/checkout"
	"github.com/tlca-systems/register-backend/internal/history"
	"github.com/tlca-systems/register-backend/internal/staff"
	"github.com/tlca-systems/register-backend/pkg/config"
	"github.com/tlca-systems/register-backend/pkg/db/models"
	"github.com/tlca-systems/register-backend/pkg/logger"
	"github.com/tlca-systems/register-backend/pkg/pricing"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error {
	return nil
}

type stubHistoryCache struct {
	mu     sync.Mutex
	orders []models.Order
}

func (c *stubHistoryCache) ReadHistory(context.Context) ([]models.Order, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.orders, nil
}

func (c *stubHistoryCache) WriteHistory(_ context.Context, orders []models.Order) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.orders = orders
	return nil
}

func (c *stubHistoryCache) ClearHistory(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.orders = nil
	return nil
}

func (c *stubHistoryCache) ReadBackup(context.Context) (*history.BackupSnapshot, error) {
	return nil, nil
}

func (c *stubHistoryCache) WriteBackup(context.Context, history.BackupSnapshot) error {
	return nil
}

type stubCatalogCache struct{}

func (stubCatalogCache) ReadProducts(context.Context) ([]models.Product, error) {
	return nil, nil
}

func (stubCatalogCache) WriteProducts(context.Context, []models.Product) error {
	return nil
}

type stubStaffCache struct{}

func (stubStaffCache) ReadEmployees(context.Context) ([]models.Employee, error) {
	return nil, nil
}

func (stubStaffCache) WriteEmployees(context.Context, []models.Employee) error {
	return nil
}

func testConfig() *config.Config {
	return &config.Config{
		App:  config.AppConfig{Env: "test", Port: "0", RegisterID: "register-test"},
		CORS: config.CORSConfig{AllowedOrigins: []string{"http://localhost:3000"}},
	}
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	logg := logger.New(logger.Options{ServiceName: "test-routing", Level: logger.ParseLevel("debug"), Output: io.Discard})

	store, err := history.NewStore(nil, &stubHistoryCache{}, nil, "register-test", logg)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	if err := store.Load(context.Background()); err != nil {
		t.Fatalf("load store: %v", err)
	}

	products, err := catalog.NewService(catalog.ServiceParams{Cache: stubCatalogCache{}, Logger: logg})
	if err != nil {
		t.Fatalf("new catalog: %v", err)
	}
	if err := products.Load(context.Background()); err != nil {
		t.Fatalf("load catalog: %v", err)
	}

	roster, err := staff.NewService(staff.ServiceParams{Cache: stubStaffCache{}, Logger: logg})
	if err != nil {
		t.Fatalf("new staff: %v", err)
	}
	if err := roster.Load(context.Background()); err != nil {
		t.Fatalf("load staff: %v", err)
	}

	sessions := cart.NewSessions(pricing.Default())
	checkoutService, err := checkout.NewService(checkout.ServiceParams{
		Sessions: sessions,
		History:  store,
		Staff:    roster,
		Logger:   logg,
	})
	if err != nil {
		t.Fatalf("new checkout: %v", err)
	}

	return NewRouter(testConfig(), logg, stubPinger{}, stubPinger{}, nil, store, sessions, products, roster, checkoutService)
}

func TestHealthAndStatusEndpoints(t *testing.T) {
	router := newTestRouter(t)

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/health/live", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for live got %d", resp.Code)
	}

	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for ready got %d", resp.Code)
	}

	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/status", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for status got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), "register-test") {
		t.Fatalf("expected register id in status body got %s", resp.Body.String())
	}
}

func TestProductsListServesSeedCatalog(t *testing.T) {
	router := newTestRouter(t)

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/products", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for products got %d", resp.Code)
	}

	var envelope struct {
		Data []models.Product `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode products: %v", err)
	}
	if len(envelope.Data) == 0 {
		t.Fatal("expected seeded products")
	}
}

func TestCheckoutFlowRecordsOrder(t *testing.T) {
	router := newTestRouter(t)

	add := httptest.NewRequest(http.MethodPost, "/api/v1/employees/emp_1/cart/items", strings.NewReader(`{"productId":"pi_1","quantity":2}`))
	add.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, add)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for cart add got %d body %s", resp.Code, resp.Body.String())
	}

	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodPost, "/api/v1/employees/emp_1/cart/checkout", nil))
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 for checkout got %d body %s", resp.Code, resp.Body.String())
	}

	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/orders", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for orders got %d", resp.Code)
	}
	var envelope struct {
		Data struct {
			Orders []models.Order `json:"orders"`
		} `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode orders: %v", err)
	}
	if len(envelope.Data.Orders) != 1 {
		t.Fatalf("expected one recorded order got %d", len(envelope.Data.Orders))
	}
	if envelope.Data.Orders[0].EmployeeID != "emp_1" {
		t.Fatalf("expected order for emp_1 got %s", envelope.Data.Orders[0].EmployeeID)
	}
}

func TestCheckoutEmptyCartRejected(t *testing.T) {
	router := newTestRouter(t)

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodPost, "/api/v1/employees/emp_1/cart/checkout", nil))
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for empty cart got %d", resp.Code)
	}
}

func TestCartAddRejectsUnknownProduct(t *testing.T) {
	router := newTestRouter(t)

	add := httptest.NewRequest(http.MethodPost, "/api/v1/employees/emp_1/cart/items", strings.NewReader(`{"productId":"nope","quantity":1}`))
	add.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, add)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown product got %d", resp.Code)
	}
}

func TestCartAddRejectsBadJSON(t *testing.T) {
	router := newTestRouter(t)

	add := httptest.NewRequest(http.MethodPost, "/api/v1/employees/emp_1/cart/items", strings.NewReader("{"))
	add.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, add)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid payload got %d", resp.Code)
	}
}

func TestBestSellersLimitParam(t *testing.T) {
	router := newTestRouter(t)

	for _, productID := range []string{"pi_1", "pi_2"} {
		add := httptest.NewRequest(http.MethodPost, "/api/v1/employees/emp_1/cart/items", strings.NewReader(`{"productId":"`+productID+`","quantity":1}`))
		add.Header.Set("Content-Type", "application/json")
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, add)
		if resp.Code != http.StatusOK {
			t.Fatalf("expected 200 for cart add got %d body %s", resp.Code, resp.Body.String())
		}
	}
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodPost, "/api/v1/employees/emp_1/cart/checkout", nil))
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 for checkout got %d", resp.Code)
	}

	var envelope struct {
		Data []json.RawMessage `json:"data"`
	}

	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/reports/best-sellers", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for best sellers got %d", resp.Code)
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode best sellers: %v", err)
	}
	if len(envelope.Data) != 2 {
		t.Fatalf("expected 2 sellers unlimited, got %d", len(envelope.Data))
	}

	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/reports/best-sellers?limit=1", nil))
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode limited best sellers: %v", err)
	}
	if len(envelope.Data) != 1 {
		t.Fatalf("expected 1 seller with limit=1, got %d", len(envelope.Data))
	}

	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/reports/best-sellers?limit=abc", nil))
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for non-numeric limit got %d", resp.Code)
	}
}
