package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	apperrors "github.com/matteonot12/icecat-helper/pkg/errors"

	"github.com/matteonot12/icecat-helper/internal/assets"
	"github.com/matteonot12/icecat-helper/internal/bundle"
	"github.com/matteonot12/icecat-helper/internal/domain"
)

var (
	catalogLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_lookups_total",
			Help: "Total number of catalog lookups by outcome",
		},
		[]string{"outcome"},
	)

	imageBundlesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "image_bundles_total",
			Help: "Total number of gallery ZIP bundles built",
		},
	)

	imageBundleBytesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "image_bundle_bytes_total",
			Help: "Total size in bytes of gallery ZIP bundles built",
		},
	)
)

// CatalogClient fetches a mapped product sheet from the provider.
type CatalogClient interface {
	Lookup(ctx context.Context, language, gtin string) (*domain.ProductSheet, error)
}

// CatalogService implements the lookup, download, and bundling operations.
type CatalogService struct {
	catalog CatalogClient
	assets  assets.Fetcher
	logger  *slog.Logger
}

// NewCatalogService creates a catalog service.
func NewCatalogService(catalog CatalogClient, fetcher assets.Fetcher, logger *slog.Logger) *CatalogService {
	return &CatalogService{
		catalog: catalog,
		assets:  fetcher,
		logger:  logger,
	}
}

// Lookup validates the query and fetches the product sheet.
// An empty GTIN fails before any provider call is made.
func (s *CatalogService) Lookup(ctx context.Context, language, gtin string) (*domain.ProductSheet, error) {
	gtin = strings.TrimSpace(gtin)
	if gtin == "" {
		catalogLookupsTotal.WithLabelValues("invalid").Inc()
		return nil, apperrors.InvalidInput("enter a GTIN first")
	}

	if language == "" {
		language = domain.DefaultLanguage
	}
	if !domain.IsValidLanguage(language) {
		catalogLookupsTotal.WithLabelValues("invalid").Inc()
		return nil, apperrors.InvalidInput(fmt.Sprintf("unsupported language %q", language))
	}

	sheet, err := s.catalog.Lookup(ctx, strings.ToUpper(language), gtin)
	if err != nil {
		catalogLookupsTotal.WithLabelValues("error").Inc()
		return nil, err
	}

	catalogLookupsTotal.WithLabelValues("ok").Inc()
	return sheet, nil
}

// BundleImages looks up the sheet and builds a ZIP of all gallery images.
// Each distinct asset URL is fetched exactly once per pass; the bytes are
// reused for duplicate gallery entries. Any single fetch failure aborts the
// whole bundle.
func (s *CatalogService) BundleImages(ctx context.Context, language, gtin string) (*bundle.Archive, error) {
	sheet, err := s.Lookup(ctx, language, gtin)
	if err != nil {
		return nil, err
	}

	fetched := make(map[string][]byte, len(sheet.Gallery))
	entries := make([]bundle.Entry, 0, len(sheet.Gallery))

	for _, img := range sheet.Gallery {
		data, ok := fetched[img.FullURL]
		if !ok {
			data, err = s.assets.Fetch(ctx, img.FullURL)
			if err != nil {
				return nil, apperrors.Wrap(err, fmt.Sprintf("bundle image %s", img.FileName()))
			}
			fetched[img.FullURL] = data
		}
		entries = append(entries, bundle.Entry{Name: img.FileName(), Data: data})
	}

	archive, err := bundle.Build(fmt.Sprintf("%s_images.zip", sheet.GTIN), entries)
	if err != nil {
		return nil, err
	}

	imageBundlesTotal.Inc()
	imageBundleBytesTotal.Add(float64(len(archive.Data)))

	s.logger.InfoContext(ctx, "image bundle built",
		slog.String("gtin", sheet.GTIN),
		slog.Int("entries", archive.Entries),
		slog.Int("bytes", len(archive.Data)),
	)

	return archive, nil
}

// GalleryImage fetches the full-size bytes of one gallery image by position.
func (s *CatalogService) GalleryImage(ctx context.Context, language, gtin string, index int) (string, []byte, error) {
	sheet, err := s.Lookup(ctx, language, gtin)
	if err != nil {
		return "", nil, err
	}

	if index < 0 || index >= len(sheet.Gallery) {
		return "", nil, apperrors.NotFound("gallery image", fmt.Sprintf("%d", index))
	}

	img := sheet.Gallery[index]
	data, err := s.assets.Fetch(ctx, img.FullURL)
	if err != nil {
		return "", nil, apperrors.Wrap(err, fmt.Sprintf("download image %s", img.FileName()))
	}

	return img.FileName(), data, nil
}

// Document fetches the bytes of one product document (PDF) by position.
func (s *CatalogService) Document(ctx context.Context, language, gtin string, index int) (string, []byte, error) {
	sheet, err := s.Lookup(ctx, language, gtin)
	if err != nil {
		return "", nil, err
	}

	if index < 0 || index >= len(sheet.Documents) {
		return "", nil, apperrors.NotFound("document", fmt.Sprintf("%d", index))
	}

	doc := sheet.Documents[index]
	data, err := s.assets.Fetch(ctx, doc.URL)
	if err != nil {
		return "", nil, apperrors.Wrap(err, fmt.Sprintf("download document %s", doc.FileName()))
	}

	name := doc.FileName()
	if name == "" {
		name = "document.pdf"
	}
	return name, data, nil
}
