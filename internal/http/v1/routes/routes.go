package routes

import (
	"github.com/danielgtaylor/huma/v2"
	"github.com/go-chi/chi/v5"

	"github.com/janisto/secure-hello/internal/http/health"
	"github.com/janisto/secure-hello/internal/http/v1/greeting"
)

// Register wires all typed API operations into the provided API router.
func Register(api huma.API) {
	greeting.Register(api)
}

// Mount wires plain infrastructure handlers that stay out of the OpenAPI document.
func Mount(router chi.Router) {
	router.Get("/health", health.Handler)
}
