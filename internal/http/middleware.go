package httpx

import (
	"context"
	"log/slog"
	"net/http"
	"runtime/debug"
	"strconv"
	"time"

	domainauth "github.com/meridianbank/bankadmin-api/internal/domain/auth"
	"github.com/meridianbank/bankadmin-api/internal/observability/statsd"
)

// Logging returns a middleware that logs HTTP requests and responses.
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			const defaultHTTPStatus = 200
			ww := &respWriter{ResponseWriter: w, status: defaultHTTPStatus}
			next.ServeHTTP(ww, r)
			logger.Info("http",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.status),
				slog.Duration("duration", time.Since(start)),
			)
		})
	}
}

type respWriter struct {
	http.ResponseWriter
	status int
}

func (w *respWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// Metrics returns a middleware that records request counts and timings
// tagged by method and response status.
func Metrics(sink statsd.Sink) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if sink == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := &respWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(ww, r)
			tags := map[string]string{
				"method": r.Method,
				"status": strconv.Itoa(ww.status),
			}
			sink.Count("http.request", 1, tags)
			sink.Timing("http.duration", time.Since(start), tags)
		})
	}
}

// Recover returns a middleware that recovers from panics and logs them.
func Recover(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.Error("panic",
						slog.Any("error", err),
						slog.String("path", r.URL.Path),
						slog.String("method", r.Method),
						slog.String("stack", string(debug.Stack())))
					http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// AdminVerifier is the gate interface the middleware consumes.
type AdminVerifier interface {
	VerifyRequest(ctx context.Context, r *http.Request) (domainauth.AuthContext, *domainauth.AuthError)
}

// RequireAdmin returns a middleware that verifies the caller's bearer
// credential against the admin gate before the handler runs. On failure
// the response carries the gate's message, HTTP status, and a
// needs_reauth hint; the handler is never invoked. On success the
// verified identity is attached to the request context for audit writes.
func RequireAdmin(gate AdminVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authCtx, authErr := gate.VerifyRequest(r.Context(), r)
			if authErr != nil {
				writeAuthError(w, authErr)
				return
			}
			next.ServeHTTP(w, r.WithContext(SetAuthContext(r.Context(), authCtx)))
		})
	}
}

// writeAuthError translates a gate failure directly into an HTTP response.
// Callers perform no further interpretation.
func writeAuthError(w http.ResponseWriter, authErr *domainauth.AuthError) {
	WriteJSON(w, authErr.Status(), map[string]any{
		"error":        authErr.Message,
		"needs_reauth": authErr.NeedsReauth(),
	})
}
