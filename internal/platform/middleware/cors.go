package middleware

import (
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// CORS returns a middleware allowing read-only cross-origin access from any origin.
// The API only serves GET routes, so preflights advertise GET, HEAD and OPTIONS.
func CORS() func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodHead,
			http.MethodOptions,
		},
		AllowedHeaders: []string{
			"Accept",
			"Content-Type",
			middleware.RequestIDHeader,
			"traceparent",
		},
		ExposedHeaders: []string{"Link", middleware.RequestIDHeader},
		MaxAge:         300,
	})
}
