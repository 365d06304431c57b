package middleware

import (
	"net/http"

	"github.com/MichIoan/DP-API-2024-sub000/api/responses"
)

// ErrorDetails lets 500 responses carry the underlying error text.
// Enabled outside production only.
func ErrorDetails(enabled bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if !enabled {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(responses.WithErrorDetails(r.Context(), true)))
		})
	}
}
