package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/tlca-systems/register-backend/pkg/logger"
)

const requestIDHeader = "X-Request-Id"

// RequestID stamps every request with an id so a single counter action can
// be traced across its log lines. The register UI may supply its own id to
// correlate client and server logs; otherwise one is minted here. The id is
// echoed back in the response header either way.
func RequestID(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reqID := requestID(r)
			w.Header().Set(requestIDHeader, reqID)

			ctx := r.Context()
			if logg != nil {
				ctx = logg.WithRequestID(ctx, reqID)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func requestID(r *http.Request) string {
	if id := r.Header.Get(requestIDHeader); id != "" {
		return id
	}
	return uuid.NewString()
}
