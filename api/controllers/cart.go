package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tlca-systems/register-backend/api/responses"
	"github.com/tlca-systems/register-backend/api/validators"
	cartsvc "github.com/tlca-systems/register-backend/internal/cart"
	"github.com/tlca-systems/register-backend/internal/catalog"
	"github.com/tlca-systems/register-backend/pkg/enums"
	"github.com/tlca-systems/register-backend/pkg/logger"
)

type addItemRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,min=1"`
}

type updateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

type setCustomerTypeRequest struct {
	CustomerType string `json:"customerType" validate:"required"`
}

// CartGet returns the employee's current cart.
func CartGet(sessions *cartsvc.Sessions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		employeeID := chi.URLParam(r, "employeeID")
		responses.WriteSuccess(w, sessions.Get(employeeID))
	}
}

// CartAddItem merges a product into the employee's cart, snapshotting its
// current catalog price.
func CartAddItem(sessions *cartsvc.Sessions, products *catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		employeeID := chi.URLParam(r, "employeeID")

		var payload addItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := products.Get(payload.ProductID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, sessions.Add(employeeID, *product, payload.Quantity))
	}
}

// CartRemoveItem deletes a line. Removing an absent product is a no-op and
// still returns the (unchanged) cart.
func CartRemoveItem(sessions *cartsvc.Sessions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		employeeID := chi.URLParam(r, "employeeID")
		productID := chi.URLParam(r, "productID")
		responses.WriteSuccess(w, sessions.Remove(employeeID, productID))
	}
}

// CartUpdateQuantity sets a line's quantity; zero or below removes the line.
func CartUpdateQuantity(sessions *cartsvc.Sessions, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		employeeID := chi.URLParam(r, "employeeID")
		productID := chi.URLParam(r, "productID")

		var payload updateQuantityRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, sessions.UpdateQuantity(employeeID, productID, payload.Quantity))
	}
}

// CartSetCustomerType switches the discount tier for the whole cart.
func CartSetCustomerType(sessions *cartsvc.Sessions, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		employeeID := chi.URLParam(r, "employeeID")

		var payload setCustomerTypeRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		customerType := enums.ParseCustomerType(payload.CustomerType)
		responses.WriteSuccess(w, sessions.SetCustomerType(employeeID, customerType))
	}
}

// CartReset wipes the cart back to an empty standard-customer state.
func CartReset(sessions *cartsvc.Sessions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		employeeID := chi.URLParam(r, "employeeID")
		responses.WriteSuccess(w, sessions.Reset(employeeID))
	}
}
