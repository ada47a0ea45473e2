package middlewares

import (
	"net/http"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// OTel wraps the handler chain in otelhttp so every request gets a server
// span named after its method and path.
func OTel(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		otelhttp.NewHandler(next, r.Method+" "+r.URL.Path).ServeHTTP(w, r)
	})
}
