package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	_ "github.com/danielgtaylor/huma/v2/formats/cbor"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/mamaai/mamaai-backend/internal/http/health"
	"github.com/mamaai/mamaai-backend/internal/http/routes"
	"github.com/mamaai/mamaai-backend/internal/platform/config"
	applog "github.com/mamaai/mamaai-backend/internal/platform/logging"
	appmiddleware "github.com/mamaai/mamaai-backend/internal/platform/middleware"
	"github.com/mamaai/mamaai-backend/internal/platform/respond"
)

// Version can be overridden at build time: -ldflags "-X main.Version=1.2.3"
var Version = "dev"

const docsPath = "/api-docs"

func main() {
	ctx := context.Background()
	defer func() {
		if err := applog.Sync(); err != nil {
			applog.LogError(ctx, "logger sync error", err)
		}
	}()
	if err := applog.Err(); err != nil {
		applog.LogError(ctx, "logger init error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		applog.LogError(ctx, "invalid configuration", err)
		_ = applog.Sync()
		os.Exit(1)
	}
	applog.SetLevel(cfg.LogLevel)
	if msg := corsWarning(cfg); msg != "" {
		applog.LogWarn(ctx, msg, zap.Strings("origins", cfg.CORS.AllowedOrigins))
	}

	srv := newServer(cfg, newRouter(cfg))

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	if err := serve(srv, stop, cfg.ShutdownTimeout); err != nil {
		applog.LogError(ctx, "listen failed", err, zap.String("addr", srv.Addr))
		_ = applog.Sync()
		os.Exit(1)
	}
	applog.LogInfo(ctx, "server exited")
}

// newRouter assembles the middleware stack, fallback handlers and API routes.
func newRouter(cfg config.Config) http.Handler {
	router := chi.NewRouter()
	router.NotFound(respond.NotFoundHandler())
	router.MethodNotAllowed(respond.MethodNotAllowedHandler())

	router.Use(
		appmiddleware.Security(appmiddleware.SecurityOptions{
			SkipPaths:   []string{docsPath},
			CrossOrigin: cfg.CORS.AllowsAnyOrigin(),
		}),
		appmiddleware.Vary(),
		appmiddleware.CORS(cfg.CORS),
		appmiddleware.RequestID(),
		// RealIP trusts X-Real-IP / X-Forwarded-For. Only deploy behind a trusted proxy.
		chimiddleware.RealIP,
		chimiddleware.RequestSize(1<<20), // 1 MB
		applog.RequestLogger(cfg.ProjectID),
		applog.AccessLogger(),
		respond.Recoverer(),
	)

	router.Get("/health", health.Handler(Version))

	humaCfg := huma.DefaultConfig("MamaAI Backend", Version)
	humaCfg.DocsPath = docsPath
	// The root payload must carry exactly one key, so no $schema link is injected.
	humaCfg.CreateHooks = nil
	api := humachi.New(router, humaCfg)
	addCBORContentTypes(api)

	routes.Register(api)
	return router
}

// addCBORContentTypes advertises application/cbor next to every JSON body in the OpenAPI document.
func addCBORContentTypes(api huma.API) {
	api.OpenAPI().OnAddOperation = append(api.OpenAPI().OnAddOperation,
		func(_ *huma.OpenAPI, op *huma.Operation) {
			if op.RequestBody != nil && op.RequestBody.Content != nil {
				if jsonContent, ok := op.RequestBody.Content["application/json"]; ok {
					op.RequestBody.Content["application/cbor"] = jsonContent
				}
			}
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
}

func newServer(cfg config.Config, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadTimeout:       5 * time.Second,
		ReadHeaderTimeout: 2 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    64 << 10, // 64 KB
	}
}

// serve runs srv until it fails to listen or a value arrives on stop, then
// shuts it down within timeout. A listen failure is returned; shutdown errors
// are logged.
func serve(srv *http.Server, stop <-chan os.Signal, timeout time.Duration) error {
	listenErr := make(chan error, 1)
	go func() {
		applog.LogInfo(context.Background(), "server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			listenErr <- err
		}
	}()

	select {
	case err := <-listenErr:
		return err
	case sig := <-stop:
		applog.LogInfo(context.Background(), "shutdown signal received", zap.Stringer("signal", sig))
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		applog.LogError(ctx, "server shutdown error", err)
	}
	return nil
}

// corsWarning returns a startup warning when a wildcard origin is configured in production.
func corsWarning(cfg config.Config) string {
	if cfg.IsProduction() && cfg.CORS.AllowsAnyOrigin() {
		return "CORS allows any origin in production"
	}
	return ""
}
