package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tlca-systems/register-backend/api/responses"
	"github.com/tlca-systems/register-backend/api/validators"
	"github.com/tlca-systems/register-backend/internal/staff"
	"github.com/tlca-systems/register-backend/pkg/logger"
)

type addEmployeeRequest struct {
	Name string `json:"name" validate:"required"`
}

// EmployeesList returns the active roster.
func EmployeesList(roster *staff.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, roster.List())
	}
}

// EmployeeBySlug resolves one employee from their URL handle.
func EmployeeBySlug(roster *staff.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := chi.URLParam(r, "slug")
		employee, err := roster.LookupBySlug(r.Context(), slug)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, employee)
	}
}

// EmployeeAdd records a new staff member.
func EmployeeAdd(roster *staff.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload addEmployeeRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		employee, err := roster.Add(r.Context(), payload.Name)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, employee)
	}
}

// EmployeeRemove deactivates a staff member.
func EmployeeRemove(roster *staff.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		employeeID := chi.URLParam(r, "employeeID")
		if err := roster.Remove(r.Context(), employeeID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"removed": employeeID})
	}
}
