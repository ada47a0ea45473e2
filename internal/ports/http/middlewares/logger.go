package middlewares

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
)

// Logger emits one access log line per request, leveled by response status.
func Logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		start := time.Now()
		defer func() {
			elapsed := time.Since(start)
			l := slog.With(
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("remote_addr", r.RemoteAddr),
				slog.Int("status", ww.Status()),
				slog.Int("bytes", ww.BytesWritten()),
				slog.Duration("duration", elapsed),
			)

			msg := fmt.Sprintf("%s %s - %d in %s", r.Method, r.URL.Path, ww.Status(), elapsed)
			switch {
			case ww.Status() >= 500:
				l.ErrorContext(r.Context(), msg)
			case ww.Status() >= 400:
				l.WarnContext(r.Context(), msg)
			default:
				l.InfoContext(r.Context(), msg)
			}
		}()

		next.ServeHTTP(ww, r)
	})
}
