package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tlca-systems/register-backend/api/controllers"
	"github.com/tlca-systems/register-backend/api/middleware"
	"github.com/tlca-systems/register-backend/internal/cart"
	"github.com/tlca-systems/register-backend/internal/catalog"
	checkoutsvc "github.com/tlca-systems/register-backend/internal/checkout"
	"github.com/tlca-systems/register-backend/internal/history"
	"github.com/tlca-systems/register-backend/internal/staff"
	"github.com/tlca-systems/register-backend/pkg/config"
	"github.com/tlca-systems/register-backend/pkg/logger"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbPinger controllers.Pinger,
	cachePinger controllers.Pinger,
	brokerPinger controllers.Pinger,
	store *history.Store,
	sessions *cart.Sessions,
	products *catalog.Service,
	roster *staff.Service,
	checkoutService checkoutsvc.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.CORS),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg.App.Env))
		r.Get("/ready", controllers.HealthReady(cfg.App.Env, logg, dbPinger, cachePinger, brokerPinger))
	})
	r.Get("/status", controllers.Status(store))
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ProductsList(products))
			r.Post("/", controllers.ProductAdd(products, logg))
			r.Delete("/{productID}", controllers.ProductRemove(products, logg))
		})

		r.Route("/employees", func(r chi.Router) {
			r.Get("/", controllers.EmployeesList(roster))
			r.Post("/", controllers.EmployeeAdd(roster, logg))
			r.Get("/by-slug/{slug}", controllers.EmployeeBySlug(roster, logg))
			r.Delete("/{employeeID}", controllers.EmployeeRemove(roster, logg))

			r.Route("/{employeeID}/cart", func(r chi.Router) {
				r.Get("/", controllers.CartGet(sessions))
				r.Delete("/", controllers.CartReset(sessions))
				r.Post("/items", controllers.CartAddItem(sessions, products, logg))
				r.Delete("/items/{productID}", controllers.CartRemoveItem(sessions))
				r.Put("/items/{productID}", controllers.CartUpdateQuantity(sessions, logg))
				r.Put("/customer-type", controllers.CartSetCustomerType(sessions, logg))
				r.Post("/checkout", controllers.Checkout(checkoutService, logg))
			})
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", controllers.OrdersList(store))
			r.Delete("/{orderID}", controllers.OrderDelete(store, logg))
			r.Post("/clear", controllers.OrdersClear(store, logg))
		})

		r.Route("/reports", func(r chi.Router) {
			r.Get("/summary", controllers.ReportsSummary(store))
			r.Get("/best-sellers", controllers.ReportsBestSellers(store, logg))
		})
	})

	return r
}
