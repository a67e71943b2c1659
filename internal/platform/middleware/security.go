package middleware

import (
	"net/http"
	"strings"
)

// SecurityOptions controls the Security middleware.
type SecurityOptions struct {
	// SkipPaths are path prefixes served without security headers (e.g. the docs UI).
	SkipPaths []string
	// CrossOrigin relaxes Cross-Origin-Resource-Policy to cross-origin. Set it
	// together with a CORS policy that admits other origins.
	CrossOrigin bool
}

// Security sets OWASP REST Security Cheat Sheet response headers.
func Security(opts SecurityOptions) func(http.Handler) http.Handler {
	resourcePolicy := "same-origin"
	if opts.CrossOrigin {
		resourcePolicy = "cross-origin"
	}
	headers := [][2]string{
		{"Cache-Control", "no-store"},
		{"Content-Security-Policy", "frame-ancestors 'none'"},
		{"Cross-Origin-Opener-Policy", "same-origin"},
		{"Cross-Origin-Resource-Policy", resourcePolicy},
		{
			"Permissions-Policy",
			"accelerometer=(), camera=(), geolocation=(), gyroscope=(), magnetometer=(), microphone=(), payment=(), usb=()",
		},
		{"Referrer-Policy", "strict-origin-when-cross-origin"},
		{"X-Content-Type-Options", "nosniff"},
		{"X-Frame-Options", "DENY"},
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for _, p := range opts.SkipPaths {
				if strings.HasPrefix(r.URL.Path, p) {
					next.ServeHTTP(w, r)
					return
				}
			}
			h := w.Header()
			for _, kv := range headers {
				h.Set(kv[0], kv[1])
			}
			next.ServeHTTP(w, r)
		})
	}
}
