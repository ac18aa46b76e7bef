// Package server assembles the HTTP stack and owns the listener lifecycle.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	_ "github.com/danielgtaylor/huma/v2/formats/cbor"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/janisto/secure-hello/internal/http/v1/routes"
	"github.com/janisto/secure-hello/internal/platform/config"
	applog "github.com/janisto/secure-hello/internal/platform/logging"
	appmiddleware "github.com/janisto/secure-hello/internal/platform/middleware"
	"github.com/janisto/secure-hello/internal/platform/respond"
)

const (
	apiTitle        = "Secure Hello API"
	docsPath        = "/api-docs"
	maxBodyBytes    = 1 << 20 // 1 MB
	shutdownTimeout = 10 * time.Second
)

// Option customizes a Server.
type Option func(*options)

type options struct {
	version string
}

// WithVersion sets the API version reported in the OpenAPI document.
func WithVersion(version string) Option {
	return func(o *options) {
		o.version = version
	}
}

// Server is the embeddable HTTP service.
type Server struct {
	cfg    config.Config
	router chi.Router
	api    huma.API
	srv    *http.Server
}

// New builds the router, middleware stack and routes for cfg. Nothing is bound
// until Listen or Run is called.
func New(cfg config.Config, opts ...Option) *Server {
	o := options{version: "dev"}
	for _, opt := range opts {
		opt(&o)
	}

	router, api := newRouter(o.version)
	return &Server{
		cfg:    cfg,
		router: router,
		api:    api,
		srv: &http.Server{
			Addr:              cfg.Addr(),
			Handler:           router,
			ReadTimeout:       5 * time.Second,
			ReadHeaderTimeout: 2 * time.Second,
			WriteTimeout:      10 * time.Second,
			IdleTimeout:       60 * time.Second,
			MaxHeaderBytes:    64 << 10, // 64 KB
		},
	}
}

func newRouter(version string) (chi.Router, huma.API) {
	router := chi.NewRouter()
	router.NotFound(respond.NotFoundHandler())
	router.MethodNotAllowed(respond.MethodNotAllowedHandler())

	router.Use(
		appmiddleware.Security(docsPath),
		appmiddleware.Vary(),
		appmiddleware.CORS(),
		appmiddleware.RequestID(),
		// RealIP trusts X-Real-IP and X-Forwarded-For. Only deploy behind a
		// proxy that overwrites them.
		chimiddleware.RealIP,
		chimiddleware.RequestSize(maxBodyBytes),
		chimiddleware.GetHead,
		applog.RequestLogger(),
		applog.AccessLogger(),
		respond.Recoverer(),
	)

	cfg := huma.DefaultConfig(apiTitle, version)
	cfg.DocsPath = docsPath
	// No $schema property or describedby Link on response bodies.
	cfg.CreateHooks = nil
	api := humachi.New(router, cfg)

	api.OpenAPI().OnAddOperation = append(api.OpenAPI().OnAddOperation,
		func(_ *huma.OpenAPI, op *huma.Operation) {
			for _, resp := range op.Responses {
				if resp.Content == nil {
					continue
				}
				if jsonContent, ok := resp.Content["application/json"]; ok {
					resp.Content["application/cbor"] = jsonContent
				}
			}
		},
	)

	routes.Register(api)
	routes.Mount(router)
	return router, api
}

// Handler returns the fully wired HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// API returns the huma API, mainly for inspecting the OpenAPI document.
func (s *Server) API() huma.API {
	return s.api
}

// Listen binds the configured TCP port.
func (s *Server) Listen(ctx context.Context) (net.Listener, error) {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", s.srv.Addr)
	if err != nil {
		return nil, fmt.Errorf("listen on %s: %w", s.srv.Addr, err)
	}
	return ln, nil
}

// Serve accepts connections on ln until ctx is cancelled, then drains
// in-flight requests for up to 10 seconds. The startup line is logged once ln
// is known to be bound.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	applog.LogInfo(ctx, "Server running on port "+boundPort(ln, s.cfg.Port))

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- s.srv.Serve(ln)
	}()

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	// Logger values survive cancellation; the deadline must not.
	ctx = context.WithoutCancel(ctx)
	applog.LogInfo(ctx, "shutdown signal received")
	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()
	if err := s.srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	applog.LogInfo(ctx, "server exited")
	return nil
}

// Run binds the port and serves until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	ln, err := s.Listen(ctx)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

func boundPort(ln net.Listener, fallback string) string {
	if addr, ok := ln.Addr().(*net.TCPAddr); ok {
		return strconv.Itoa(addr.Port)
	}
	return fallback
}
