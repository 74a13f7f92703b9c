package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/tlca-systems/register-backend/api/responses"
	"github.com/tlca-systems/register-backend/internal/history"
	pkgerrors "github.com/tlca-systems/register-backend/pkg/errors"
	"github.com/tlca-systems/register-backend/pkg/logger"
)

// OrdersList returns the full history, newest first, plus the store's
// connectivity mode so the UI can show its offline indicator alongside the
// table.
func OrdersList(store *history.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, map[string]any{
			"orders":  store.Orders(),
			"mode":    store.Mode(),
			"loading": store.Loading(),
		})
	}
}

// OrderDelete removes one order by id.
func OrderDelete(store *history.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "orderID"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid order id"))
			return
		}
		if err := store.DeleteOrder(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"deleted": id.String()})
	}
}

// OrdersClear wipes the entire history.
func OrdersClear(store *history.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := store.ClearHistory(r.Context()); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "cleared"})
	}
}
