package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/matteonot12/icecat-helper/pkg/httputil"
	"github.com/matteonot12/icecat-helper/pkg/validator"

	"github.com/matteonot12/icecat-helper/internal/domain"
	"github.com/matteonot12/icecat-helper/internal/service"
)

// CatalogHandler handles HTTP requests for catalog endpoints.
type CatalogHandler struct {
	service *service.CatalogService
	logger  *slog.Logger
}

// NewCatalogHandler creates a new catalog HTTP handler.
func NewCatalogHandler(svc *service.CatalogService, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{
		service: svc,
		logger:  logger,
	}
}

// lookupQuery is the validated shape of every catalog request.
type lookupQuery struct {
	GTIN     string `validate:"required,max=64"`
	Language string `validate:"required,oneof=DE NL EN FR"`
}

// parseQuery extracts and validates the GTIN path parameter and language
// query parameter. On failure it writes a 400 response and returns false;
// no provider call happens in that case.
func (h *CatalogHandler) parseQuery(w http.ResponseWriter, r *http.Request) (lookupQuery, bool) {
	q := lookupQuery{
		GTIN:     strings.TrimSpace(chi.URLParam(r, "gtin")),
		Language: strings.ToUpper(r.URL.Query().Get("language")),
	}
	if q.Language == "" {
		q.Language = domain.DefaultLanguage
	}

	if err := validator.Validate(q); err != nil {
		httputil.WriteValidationError(w, err)
		return lookupQuery{}, false
	}
	return q, true
}

// GetSheet handles GET /api/v1/catalog/{gtin}.
func (h *CatalogHandler) GetSheet(w http.ResponseWriter, r *http.Request) {
	q, ok := h.parseQuery(w, r)
	if !ok {
		return
	}

	sheet, err := h.service.Lookup(r.Context(), q.Language, q.GTIN)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: sheet})
}

// DownloadBundle handles GET /api/v1/catalog/{gtin}/images.zip.
func (h *CatalogHandler) DownloadBundle(w http.ResponseWriter, r *http.Request) {
	q, ok := h.parseQuery(w, r)
	if !ok {
		return
	}

	archive, err := h.service.BundleImages(r.Context(), q.Language, q.GTIN)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", archive.Name))
	w.Header().Set("Content-Length", strconv.Itoa(len(archive.Data)))
	_, _ = w.Write(archive.Data)
}

// DownloadGalleryImage handles GET /api/v1/catalog/{gtin}/gallery/{index}.
func (h *CatalogHandler) DownloadGalleryImage(w http.ResponseWriter, r *http.Request) {
	h.downloadAsset(w, r, h.service.GalleryImage)
}

// DownloadDocument handles GET /api/v1/catalog/{gtin}/documents/{index}.
func (h *CatalogHandler) DownloadDocument(w http.ResponseWriter, r *http.Request) {
	h.downloadAsset(w, r, h.service.Document)
}

// assetOp is a service operation returning one asset's name and bytes.
type assetOp func(ctx context.Context, language, gtin string, index int) (string, []byte, error)

func (h *CatalogHandler) downloadAsset(w http.ResponseWriter, r *http.Request, op assetOp) {
	q, ok := h.parseQuery(w, r)
	if !ok {
		return
	}

	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil || index < 0 {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{
				Code:    "INVALID_PARAMETER",
				Message: "index must be a non-negative integer",
			},
		})
		return
	}

	name, data, err := op(r.Context(), q.Language, q.GTIN, index)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	w.Header().Set("Content-Type", http.DetectContentType(data))
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	_, _ = w.Write(data)
}
