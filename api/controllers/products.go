package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/tlca-systems/register-backend/api/responses"
	"github.com/tlca-systems/register-backend/api/validators"
	"github.com/tlca-systems/register-backend/internal/catalog"
	"github.com/tlca-systems/register-backend/pkg/enums"
	pkgerrors "github.com/tlca-systems/register-backend/pkg/errors"
	"github.com/tlca-systems/register-backend/pkg/logger"
)

type addProductRequest struct {
	Name        string `json:"name" validate:"required"`
	Price       string `json:"price" validate:"required"`
	Category    string `json:"category" validate:"required"`
	Description string `json:"description"`
}

// ProductsList returns the active catalog.
func ProductsList(products *catalog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, products.List())
	}
}

// ProductAdd validates and records a new catalog entry.
func ProductAdd(products *catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload addProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		price, err := decimal.NewFromString(payload.Price)
		if err != nil {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.Wrap(pkgerrors.CodeValidation, err, "price must be a decimal number"))
			return
		}
		category, err := enums.ParseProductCategory(payload.Category)
		if err != nil {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.Wrap(pkgerrors.CodeValidation, err, "unknown product category"))
			return
		}

		product, err := products.Add(r.Context(), catalog.AddProductParams{
			Name:        payload.Name,
			Price:       price,
			Category:    category,
			Description: payload.Description,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, product)
	}
}

// ProductRemove deactivates a catalog entry.
func ProductRemove(products *catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID := chi.URLParam(r, "productID")
		if err := products.Remove(r.Context(), productID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"removed": productID})
	}
}
