package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	h "geoevents/internal/delivery/http/helpers"
)

// Recover turns a panic in next into a 500 response and logs the stack.
// http.ErrAbortHandler is re-raised so the server can abort the connection.
func Recover(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		wrapped := wrapResponseWriter(w)
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			logger.ErrorContext(r.Context(), "panic serving request",
				"method", r.Method,
				"path", r.URL.Path,
				"panic", rec,
				"stack", string(debug.Stack()),
			)
			if !wrapped.wroteHeader {
				h.WriteJSONError(wrapped, http.StatusInternalServerError, h.ErrCodeInternalError, "internal server error")
			}
		}()
		next.ServeHTTP(wrapped, r)
	})
}
