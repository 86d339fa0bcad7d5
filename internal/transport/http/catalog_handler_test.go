package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apierrors "dashpulse/internal/errors"
	"dashpulse/internal/services"
)

type fakeCatalogService struct {
	meta        *services.CatalogMeta
	snapshot    *services.CatalogSnapshot
	metaErr     error
	computeErr  error
	lastRequest services.CatalogRequest
}

func (f *fakeCatalogService) Meta(ctx context.Context) (*services.CatalogMeta, error) {
	return f.meta, f.metaErr
}

func (f *fakeCatalogService) Compute(ctx context.Context, req services.CatalogRequest) (*services.CatalogSnapshot, error) {
	f.lastRequest = req
	return f.snapshot, f.computeErr
}

func newCatalogRouter(svc CatalogServiceInterface) chi.Router {
	logger := slog.Default()
	handler := NewCatalogHandler(svc, logger, apierrors.NewErrorHandler(logger, false))
	r := chi.NewRouter()
	r.Mount("/api/catalog", handler.Routes())
	return r
}

func TestCatalogHandlerGetMeta(t *testing.T) {
	svc := &fakeCatalogService{meta: &services.CatalogMeta{RowCount: 42, Categories: []string{"Electronics"}}}
	router := newCatalogRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/catalog/meta", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var meta services.CatalogMeta
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &meta))
	assert.Equal(t, 42, meta.RowCount)
}

func TestCatalogHandlerGetSnapshot(t *testing.T) {
	svc := &fakeCatalogService{snapshot: &services.CatalogSnapshot{ID: "snap-1"}}
	router := newCatalogRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/catalog/snapshot?price_min=100&rating_max=4.5&search=cable&percentile=15&text_column=about_product", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	require.NotNil(t, svc.lastRequest.PriceMin)
	assert.InDelta(t, 100, *svc.lastRequest.PriceMin, 1e-9)
	assert.Nil(t, svc.lastRequest.PriceMax)
	require.NotNil(t, svc.lastRequest.RatingMax)
	assert.InDelta(t, 4.5, *svc.lastRequest.RatingMax, 1e-9)
	assert.Equal(t, "cable", svc.lastRequest.SearchTerm)
	assert.InDelta(t, 15, svc.lastRequest.Percentile, 1e-9)
	assert.Equal(t, "about_product", string(svc.lastRequest.TextColumn))
}

func TestCatalogHandlerCategorySemantics(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{
			name:  "absent parameter keeps nil",
			query: "",
			want:  nil,
		},
		{
			name:  "present but empty is an explicit empty selection",
			query: "?categories=",
			want:  []string{},
		},
		{
			name:  "comma-separated values",
			query: "?categories=Electronics,Home",
			want:  []string{"Electronics", "Home"},
		},
		{
			name:  "repeated parameters merge",
			query: "?categories=Electronics&categories=Home",
			want:  []string{"Electronics", "Home"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeCatalogService{snapshot: &services.CatalogSnapshot{}}
			router := newCatalogRouter(svc)

			req := httptest.NewRequest(http.MethodGet, "/api/catalog/snapshot"+tt.query, nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tt.want, svc.lastRequest.Categories)
		})
	}
}

func TestCatalogHandlerValidation(t *testing.T) {
	tests := []struct {
		name  string
		query string
	}{
		{name: "non-numeric price", query: "?price_min=abc"},
		{name: "non-numeric percentile", query: "?percentile=deep"},
		{name: "percentile out of range", query: "?percentile=30"},
		{name: "unknown text column", query: "?text_column=title"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeCatalogService{snapshot: &services.CatalogSnapshot{}}
			router := newCatalogRouter(svc)

			req := httptest.NewRequest(http.MethodGet, "/api/catalog/snapshot"+tt.query, nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Header().Get("Content-Type"), "application/problem+json")
		})
	}
}

func TestCatalogHandlerComputeErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "dataset not ready", err: services.ErrDatasetNotReady, wantStatus: http.StatusServiceUnavailable},
		{name: "invalid percentile", err: services.ErrInvalidPercentile, wantStatus: http.StatusBadRequest},
		{name: "invalid text column", err: services.ErrInvalidTextColumn, wantStatus: http.StatusBadRequest},
		{name: "unexpected error", err: assert.AnError, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeCatalogService{computeErr: tt.err}
			router := newCatalogRouter(svc)

			req := httptest.NewRequest(http.MethodGet, "/api/catalog/snapshot", nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestCatalogHandlerExportCSV(t *testing.T) {
	svc := &fakeCatalogService{snapshot: &services.CatalogSnapshot{}}
	router := newCatalogRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/catalog/export?bom=true", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "catalog_export.csv")

	body := rec.Body.Bytes()
	assert.Equal(t, []byte{0xEF, 0xBB, 0xBF}, body[:3])
	assert.Contains(t, string(body), "product_id")
}
