package controllers

import (
	"context"
	"net/http"

	"go.uber.org/multierr"

	"github.com/tlca-systems/register-backend/api/responses"
	"github.com/tlca-systems/register-backend/internal/history"
	pkgerrors "github.com/tlca-systems/register-backend/pkg/errors"
	"github.com/tlca-systems/register-backend/pkg/logger"
)

// Pinger is any dependency with a cheap connectivity check.
type Pinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(env string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Register-Env", env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady pings the configured dependencies. Nil pingers are
// deliberately-offline collaborators and are skipped, matching the
// register's degraded-but-functional posture.
func HealthReady(env string, logg *logger.Logger, pingers ...Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Register-Env", env)

		var errs error
		for _, pinger := range pingers {
			if pinger == nil {
				continue
			}
			errs = multierr.Append(errs, pinger.Ping(r.Context()))
		}
		if errs != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, errs, "dependency check failed"))
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}

// Status reports the history store's connectivity mode for the UI's offline
// indicator.
func Status(store *history.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, map[string]any{
			"registerId": store.RegisterID(),
			"mode":       store.Mode(),
			"loading":    store.Loading(),
		})
	}
}
