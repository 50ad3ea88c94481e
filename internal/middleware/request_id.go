package middleware

import (
	"net/http"

	"github.com/2beens/healthtrack/internal/audit"

	"github.com/google/uuid"
)

const RequestIDHeader = "X-Request-Id"

// RequestID tags every request with an id, reusing a well formed incoming one.
func RequestID() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var requestID string
			if parsed, err := uuid.Parse(r.Header.Get(RequestIDHeader)); err == nil {
				requestID = parsed.String()
			} else {
				requestID = uuid.NewString()
			}
			w.Header().Set(RequestIDHeader, requestID)
			next.ServeHTTP(w, r.WithContext(audit.ContextWithRequestID(r.Context(), requestID)))
		})
	}
}
