package controllers

import (
	"net/http"

	"github.com/tlca-systems/register-backend/api/responses"
	"github.com/tlca-systems/register-backend/api/validators"
	"github.com/tlca-systems/register-backend/internal/history"
	"github.com/tlca-systems/register-backend/internal/reports"
	"github.com/tlca-systems/register-backend/pkg/logger"
)

// ReportsSummary computes the revenue rollup over the filtered history.
func ReportsSummary(store *history.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter := reports.Filter{
			Query:      validators.SanitizeString(r.URL.Query().Get("query"), 200),
			EmployeeID: validators.SanitizeString(r.URL.Query().Get("employeeId"), 100),
		}
		responses.WriteSuccess(w, reports.Summarize(store.Orders(), filter))
	}
}

// ReportsBestSellers groups all line items by product name. A limit query
// parameter trims the ranking to the top N; zero returns everything.
func ReportsBestSellers(store *history.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, err := validators.ParseQueryInt(r, "limit", 0, 0, 100)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		sellers := reports.BestSellers(store.Orders())
		if limit > 0 && limit < len(sellers) {
			sellers = sellers[:limit]
		}
		responses.WriteSuccess(w, sellers)
	}
}
