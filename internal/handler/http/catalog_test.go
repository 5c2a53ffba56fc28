package http

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "github.com/matteonot12/icecat-helper/pkg/errors"
	"github.com/matteonot12/icecat-helper/pkg/httputil"

	"github.com/matteonot12/icecat-helper/internal/assets"
	"github.com/matteonot12/icecat-helper/internal/domain"
	"github.com/matteonot12/icecat-helper/internal/service"
)

// Ensure interfaces are satisfied at compile time.
var _ service.CatalogClient = (*mockCatalogClient)(nil)
var _ assets.Fetcher = (*mockFetcher)(nil)

// --- Mock CatalogClient ---

type mockCatalogClient struct {
	mock.Mock
}

func (m *mockCatalogClient) Lookup(ctx context.Context, language, gtin string) (*domain.ProductSheet, error) {
	args := m.Called(ctx, language, gtin)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProductSheet), args.Error(1)
}

// --- Mock Fetcher ---

type mockFetcher struct {
	mock.Mock
}

func (m *mockFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	args := m.Called(ctx, url)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// --- Test Helpers ---

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func newTestHandler(catalog *mockCatalogClient, fetcher *mockFetcher) *CatalogHandler {
	svc := service.NewCatalogService(catalog, fetcher, testLogger())
	return NewCatalogHandler(svc, testLogger())
}

func setupCatalogRouter(handler *CatalogHandler) *chi.Mux {
	r := chi.NewRouter()
	r.Route("/api/v1/catalog", func(r chi.Router) {
		r.Get("/{gtin}", handler.GetSheet)
		r.Get("/{gtin}/images.zip", handler.DownloadBundle)
		r.Get("/{gtin}/gallery/{index}", handler.DownloadGalleryImage)
		r.Get("/{gtin}/documents/{index}", handler.DownloadDocument)
	})
	return r
}

func sampleSheet() *domain.ProductSheet {
	return &domain.ProductSheet{
		GTIN:     "0882780751682",
		Language: "EN",
		Info: domain.GeneralInfo{
			ProductName: "Widget X",
			Brand:       "Acme",
			Description: "A long description.",
		},
		SpecRows: []domain.SpecRow{
			{Group: "Display", Feature: "Diagonal", Value: "27 in"},
		},
		Gallery: []domain.GalleryImage{
			{ThumbURL: "https://img.test/t1.jpg", FullURL: "https://img.test/f1.jpg"},
		},
		Documents: []domain.Document{
			{URL: "https://media.test/manual.pdf", Label: "manual.pdf"},
		},
	}
}

func doRequest(t *testing.T, router *chi.Mux, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) httputil.ErrorResponse {
	t.Helper()
	var resp httputil.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	return *resp.Error
}

// --- GetSheet ---

func TestGetSheet_Success(t *testing.T) {
	catalog := new(mockCatalogClient)
	router := setupCatalogRouter(newTestHandler(catalog, new(mockFetcher)))

	catalog.On("Lookup", mock.Anything, "EN", "0882780751682").Return(sampleSheet(), nil)

	rec := doRequest(t, router, "/api/v1/catalog/0882780751682")

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data domain.ProductSheet `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Widget X", resp.Data.Info.ProductName)
	assert.Equal(t, "Acme", resp.Data.Info.Brand)
	assert.Len(t, resp.Data.SpecRows, 1)
}

func TestGetSheet_LanguageQueryLowercased(t *testing.T) {
	catalog := new(mockCatalogClient)
	router := setupCatalogRouter(newTestHandler(catalog, new(mockFetcher)))

	catalog.On("Lookup", mock.Anything, "FR", "123").Return(sampleSheet(), nil)

	rec := doRequest(t, router, "/api/v1/catalog/123?language=fr")

	assert.Equal(t, http.StatusOK, rec.Code)
	catalog.AssertExpectations(t)
}

func TestGetSheet_UnsupportedLanguage(t *testing.T) {
	catalog := new(mockCatalogClient)
	router := setupCatalogRouter(newTestHandler(catalog, new(mockFetcher)))

	rec := doRequest(t, router, "/api/v1/catalog/123?language=IT")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_ERROR", decodeError(t, rec).Code)
	catalog.AssertNotCalled(t, "Lookup", mock.Anything, mock.Anything, mock.Anything)
}

func TestGetSheet_BlankGTINFailsBeforeProviderCall(t *testing.T) {
	catalog := new(mockCatalogClient)
	router := setupCatalogRouter(newTestHandler(catalog, new(mockFetcher)))

	// URL-encoded spaces survive routing but are trimmed during validation.
	rec := doRequest(t, router, "/api/v1/catalog/%20%20")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	catalog.AssertNotCalled(t, "Lookup", mock.Anything, mock.Anything, mock.Anything)
}

func TestGetSheet_ProviderRejected(t *testing.T) {
	catalog := new(mockCatalogClient)
	router := setupCatalogRouter(newTestHandler(catalog, new(mockFetcher)))

	catalog.On("Lookup", mock.Anything, "EN", "999").
		Return(nil, apperrors.ProviderRejected("Product not found"))

	rec := doRequest(t, router, "/api/v1/catalog/999")

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	errResp := decodeError(t, rec)
	assert.Equal(t, "PROVIDER_REJECTED", errResp.Code)
	// The provider's own message is passed through verbatim.
	assert.Equal(t, "Product not found", errResp.Message)
}

func TestGetSheet_UpstreamUnreachable(t *testing.T) {
	catalog := new(mockCatalogClient)
	router := setupCatalogRouter(newTestHandler(catalog, new(mockFetcher)))

	catalog.On("Lookup", mock.Anything, "EN", "123").
		Return(nil, apperrors.UpstreamUnreachable(assert.AnError))

	rec := doRequest(t, router, "/api/v1/catalog/123")

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Equal(t, "UPSTREAM_UNREACHABLE", decodeError(t, rec).Code)
}

// --- DownloadBundle ---

func TestDownloadBundle_Success(t *testing.T) {
	catalog := new(mockCatalogClient)
	fetcher := new(mockFetcher)
	router := setupCatalogRouter(newTestHandler(catalog, fetcher))

	catalog.On("Lookup", mock.Anything, "EN", "0882780751682").Return(sampleSheet(), nil)
	fetcher.On("Fetch", mock.Anything, "https://img.test/f1.jpg").Return([]byte("jpeg-bytes"), nil)

	rec := doRequest(t, router, "/api/v1/catalog/0882780751682/images.zip")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/zip", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="0882780751682_images.zip"`, rec.Header().Get("Content-Disposition"))

	zr, err := zip.NewReader(bytes.NewReader(rec.Body.Bytes()), int64(rec.Body.Len()))
	require.NoError(t, err)
	require.Len(t, zr.File, 1)
	assert.Equal(t, "f1.jpg", zr.File[0].Name)
}

func TestDownloadBundle_FetchFailure(t *testing.T) {
	catalog := new(mockCatalogClient)
	fetcher := new(mockFetcher)
	router := setupCatalogRouter(newTestHandler(catalog, fetcher))

	catalog.On("Lookup", mock.Anything, "EN", "0882780751682").Return(sampleSheet(), nil)
	fetcher.On("Fetch", mock.Anything, "https://img.test/f1.jpg").Return(nil, assert.AnError)

	rec := doRequest(t, router, "/api/v1/catalog/0882780751682/images.zip")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

// --- Asset downloads ---

func TestDownloadGalleryImage_Success(t *testing.T) {
	catalog := new(mockCatalogClient)
	fetcher := new(mockFetcher)
	router := setupCatalogRouter(newTestHandler(catalog, fetcher))

	catalog.On("Lookup", mock.Anything, "EN", "0882780751682").Return(sampleSheet(), nil)
	fetcher.On("Fetch", mock.Anything, "https://img.test/f1.jpg").Return([]byte{0xFF, 0xD8, 0xFF, 0xE0}, nil)

	rec := doRequest(t, router, "/api/v1/catalog/0882780751682/gallery/0")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `attachment; filename="f1.jpg"`, rec.Header().Get("Content-Disposition"))
}

func TestDownloadGalleryImage_IndexOutOfRange(t *testing.T) {
	catalog := new(mockCatalogClient)
	router := setupCatalogRouter(newTestHandler(catalog, new(mockFetcher)))

	catalog.On("Lookup", mock.Anything, "EN", "0882780751682").Return(sampleSheet(), nil)

	rec := doRequest(t, router, "/api/v1/catalog/0882780751682/gallery/7")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDownloadGalleryImage_NonNumericIndex(t *testing.T) {
	catalog := new(mockCatalogClient)
	router := setupCatalogRouter(newTestHandler(catalog, new(mockFetcher)))

	rec := doRequest(t, router, "/api/v1/catalog/0882780751682/gallery/abc")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "INVALID_PARAMETER", decodeError(t, rec).Code)
	catalog.AssertNotCalled(t, "Lookup", mock.Anything, mock.Anything, mock.Anything)
}

func TestDownloadDocument_Success(t *testing.T) {
	catalog := new(mockCatalogClient)
	fetcher := new(mockFetcher)
	router := setupCatalogRouter(newTestHandler(catalog, fetcher))

	catalog.On("Lookup", mock.Anything, "EN", "0882780751682").Return(sampleSheet(), nil)
	fetcher.On("Fetch", mock.Anything, "https://media.test/manual.pdf").Return([]byte("%PDF-1.4"), nil)

	rec := doRequest(t, router, "/api/v1/catalog/0882780751682/documents/0")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `attachment; filename="manual.pdf"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "%PDF-1.4", rec.Body.String())
}

func TestDownloadDocument_IndexOutOfRange(t *testing.T) {
	catalog := new(mockCatalogClient)
	router := setupCatalogRouter(newTestHandler(catalog, new(mockFetcher)))

	catalog.On("Lookup", mock.Anything, "EN", "0882780751682").Return(sampleSheet(), nil)

	rec := doRequest(t, router, "/api/v1/catalog/0882780751682/documents/3")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
