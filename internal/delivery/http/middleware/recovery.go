package middleware

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"devevents/internal/delivery/http/helpers"
)

// Recovery turns a panic in next into a 500 internal_error response and logs it with the stack.
// http.ErrAbortHandler is re-raised so the server can abort the connection.
func Recovery(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		wrapped := wrap(w)
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if err, ok := rec.(error); ok && errors.Is(err, http.ErrAbortHandler) {
				panic(rec)
			}
			logger.ErrorContext(r.Context(), "panic recovered",
				"method", r.Method,
				"path", r.URL.Path,
				"panic", fmt.Sprint(rec),
				"stack", string(debug.Stack()),
			)
			if wrapped.wroteHeader {
				return
			}
			helpers.WriteJSONError(wrapped, http.StatusInternalServerError, helpers.ErrCodeInternalError, "internal error")
		}()
		next.ServeHTTP(wrapped, r)
	})
}
