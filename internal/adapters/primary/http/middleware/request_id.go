package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/lorrc/customer-service-backend/internal/infrastructure/logging"
)

// RequestIDHeader carries the request ID to and from clients.
const RequestIDHeader = "X-Request-ID"

// RequestID tags every request with an ID: the client's X-Request-ID when
// present, a fresh UUID otherwise. The ID goes into the response header and
// into the context, where the logging handler picks it up.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}

		w.Header().Set(RequestIDHeader, id)

		ctx := logging.WithRequestID(r.Context(), id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
