package middleware

import (
	"net/http"
	"strings"
	"time"

	chiMid "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"dommatos.com/tienda-web/internal/observability"
)

// Logger emits one structured log line per request and seeds the request
// context with a request-scoped zap logger.
func Logger(base *zap.Logger) func(http.Handler) http.Handler {
	if base == nil {
		base = zap.NewNop()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rid := chiMid.GetReqID(r.Context())
			reqLogger := base.With(
				zap.String("request_id", rid),
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
			)
			ctx := observability.WithLogger(r.Context(), reqLogger)
			if rid != "" {
				ctx = WithRequestID(ctx, rid)
			}

			rw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rw, r.WithContext(ctx))

			reqLogger.Info("request",
				zap.Int("status", rw.status),
				zap.Int64("duration_ms", time.Since(start).Milliseconds()),
				zap.String("remote_ip", clientIP(r)),
				zap.Bool("htmx", r.Header.Get("HX-Request") == "true"),
			)
		})
	}
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func clientIP(r *http.Request) string {
	// Trust X-Forwarded-For when fronted by a proxy (last IP is client)
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		p := strings.Split(xff, ",")
		return strings.TrimSpace(p[len(p)-1])
	}
	if xrip := r.Header.Get("X-Real-IP"); xrip != "" {
		return xrip
	}
	host := r.RemoteAddr
	if i := strings.LastIndex(host, ":"); i != -1 {
		return host[:i]
	}
	return host
}
