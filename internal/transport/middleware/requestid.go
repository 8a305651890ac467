package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/guardhq/workforce-management/pkg/logger"
)

// RequestID tags each request with a trace id, honoring one supplied by
// the caller so gateway traces line up with ours.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID := r.Header.Get("X-Trace-ID")
		if traceID == "" {
			traceID = uuid.NewString()
		}

		ctx := logger.With(r.Context(), "traceID", traceID)
		w.Header().Set("X-Trace-ID", traceID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
