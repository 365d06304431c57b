package middleware

import (
	"net/http"
	"regexp"

	"github.com/google/uuid"

	"github.com/MichIoan/DP-API-2024-sub000/pkg/logger"
)

const (
	requestIDHeader     = "X-Request-Id"
	correlationIDHeader = "X-Correlation-Id"
)

// Upstream ids are echoed only when they are short and header-safe.
var requestIDPattern = regexp.MustCompile(`^[A-Za-z0-9._-]{1,64}$`)

// RequestID tags every request with an id that is echoed on the response
// and attached to the request logger.
func RequestID(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reqID := resolveRequestID(r)
			w.Header().Set(requestIDHeader, reqID)

			ctx := r.Context()
			if logg != nil {
				ctx = logg.WithRequestID(ctx, reqID)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// resolveRequestID takes the first well-formed id from X-Request-Id or
// X-Correlation-Id and mints a uuid otherwise.
func resolveRequestID(r *http.Request) string {
	for _, header := range []string{requestIDHeader, correlationIDHeader} {
		if id := r.Header.Get(header); requestIDPattern.MatchString(id) {
			return id
		}
	}
	return uuid.NewString()
}
