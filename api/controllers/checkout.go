package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tlca-systems/register-backend/api/responses"
	checkoutsvc "github.com/tlca-systems/register-backend/internal/checkout"
	"github.com/tlca-systems/register-backend/pkg/logger"
)

// Checkout drains the employee's cart into an immutable order.
func Checkout(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		employeeID := chi.URLParam(r, "employeeID")

		order, err := svc.Checkout(r.Context(), employeeID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, order)
	}
}
