package middleware

import (
	"net/http"
	"slices"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/mamaai/mamaai-backend/internal/platform/config"
)

// Methods go-chi/cors is told about when the policy allows any method;
// the library has no wildcard for methods.
var standardMethods = []string{
	http.MethodGet,
	http.MethodHead,
	http.MethodPost,
	http.MethodPut,
	http.MethodPatch,
	http.MethodDelete,
	http.MethodOptions,
}

// Response headers browser clients may read.
var exposedHeaders = []string{"Link", "Location", chimiddleware.RequestIDHeader}

// CORS applies the configured cross-origin policy.
//
// Preflight requests are answered here and never reach the router. When the
// policy is fully permissive, every response also carries wildcard
// Access-Control-Allow-{Origin,Methods,Headers} headers, including responses
// to requests that sent no Origin header.
func CORS(policy config.CORS) func(http.Handler) http.Handler {
	methods := policy.AllowedMethods
	if slices.Contains(methods, config.Wildcard) {
		methods = standardMethods
	}
	handler := cors.Handler(cors.Options{
		AllowedOrigins: policy.AllowedOrigins,
		AllowedMethods: methods,
		AllowedHeaders: policy.AllowedHeaders,
		ExposedHeaders: exposedHeaders,
		MaxAge:         policy.MaxAge,
	})
	if !policy.Permissive() {
		return handler
	}
	return func(next http.Handler) http.Handler {
		inner := handler(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Set("Access-Control-Allow-Origin", config.Wildcard)
			h.Set("Access-Control-Allow-Methods", config.Wildcard)
			h.Set("Access-Control-Allow-Headers", config.Wildcard)
			inner.ServeHTTP(w, r)
		})
	}
}
