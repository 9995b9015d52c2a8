package httpx

import (
	"net/http"

	"bookcatalog/internal/platform/logging"

	"github.com/google/uuid"
)

const (
	requestIDHeader = "X-Request-Id"
	maxRequestIDLen = 128
)

// RequestIDMiddleware echoes a caller-supplied X-Request-Id or mints one, and
// seeds the request-scoped logger with it.
func RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(requestIDHeader)
		if requestID == "" || len(requestID) > maxRequestIDLen {
			requestID = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, requestID)

		ctx := ContextWithRequestID(r.Context(), requestID)
		ctx = logging.WithContext(ctx, map[string]any{"request_id": requestID})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
