package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/matteonot12/icecat-helper/pkg/health"

	"github.com/matteonot12/icecat-helper/internal/assets"
	"github.com/matteonot12/icecat-helper/internal/config"
	handler "github.com/matteonot12/icecat-helper/internal/handler/http"
	"github.com/matteonot12/icecat-helper/internal/icecat"
	"github.com/matteonot12/icecat-helper/internal/service"
)

// App wires together all dependencies and runs the helper service.
type App struct {
	cfg        *config.Config
	logger     *slog.Logger
	httpServer *http.Server
}

// NewApp creates a new application instance, initializing all dependencies.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	// Build the dependency graph.
	catalogClient := icecat.New(cfg.CatalogConfig(), logger)
	fetcher := assets.NewHTTPFetcher(logger)
	catalogService := service.NewCatalogService(catalogClient, fetcher, logger)

	// Health checks. The provider is stateless per request, so readiness
	// only verifies the base URL is configured.
	healthHandler := health.NewHandler()
	healthHandler.Register("catalog", func(ctx context.Context) error {
		if cfg.CatalogBaseURL == "" {
			return fmt.Errorf("catalog base URL not configured")
		}
		return nil
	})

	// HTTP router.
	router := handler.NewRouter(catalogService, healthHandler, logger)

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second, // image bundles can be large
		IdleTimeout:  60 * time.Second,
	}

	return &App{
		cfg:        cfg,
		logger:     logger,
		httpServer: httpServer,
	}, nil
}

// Run starts the HTTP server and blocks until the context is canceled.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("starting HTTP server",
			slog.String("addr", a.httpServer.Addr),
		)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		return err
	}

	return a.Shutdown()
}

// Shutdown gracefully stops the HTTP server.
func (a *App) Shutdown() error {
	a.logger.Info("shutting down application...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
	}

	a.logger.Info("application shutdown complete")
	return nil
}
