package middleware

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/vivass/storefront/pkg/logger"
)

// Recovery converts a handler panic into a 500 response in the standard
// error envelope, carrying the request correlation ID so the response can
// be matched to the panic log line.
func Recovery(l *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					requestID := logger.CorrelationIDFromContext(r.Context())

					l.ErrorContext(r.Context(), "panic recovered",
						slog.Any("panic", rec),
						slog.String("stack", string(debug.Stack())),
						slog.String("method", r.Method),
						slog.String("path", r.URL.Path),
						slog.String("request_id", requestID),
					)

					type errorBody struct {
						Code      string `json:"code"`
						Message   string `json:"message"`
						RequestID string `json:"request_id,omitempty"`
					}

					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					if err := json.NewEncoder(w).Encode(map[string]errorBody{
						"error": {
							Code:      "INTERNAL_ERROR",
							Message:   "an internal error occurred",
							RequestID: requestID,
						},
					}); err != nil {
						l.Error("failed to encode response", slog.String("error", err.Error()))
					}
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
