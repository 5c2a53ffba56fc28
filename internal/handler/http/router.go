package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/matteonot12/icecat-helper/pkg/health"
	"github.com/matteonot12/icecat-helper/pkg/middleware"

	"github.com/matteonot12/icecat-helper/internal/service"
	"github.com/matteonot12/icecat-helper/web"
)

// NewRouter creates a chi router with all helper routes registered.
func NewRouter(
	catalogService *service.CatalogService,
	healthHandler *health.Handler,
	logger *slog.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.CORS(middleware.DefaultCORSConfig()))
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.PrometheusMetrics("icecat-helper"))

	// Ops endpoints
	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	// Single-page UI
	r.Get("/", web.PageHandler())

	// Catalog API endpoints
	catalogHandler := NewCatalogHandler(catalogService, logger)

	r.Route("/api/v1/catalog", func(r chi.Router) {
		r.Get("/{gtin}", catalogHandler.GetSheet)
		r.Get("/{gtin}/images.zip", catalogHandler.DownloadBundle)
		r.Get("/{gtin}/gallery/{index}", catalogHandler.DownloadGalleryImage)
		r.Get("/{gtin}/documents/{index}", catalogHandler.DownloadDocument)
	})

	return r
}
