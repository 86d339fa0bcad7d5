package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apierrors "dashpulse/internal/errors"
	"dashpulse/internal/services"
)

type fakeOutageService struct {
	meta        *services.OutageMeta
	snapshot    *services.OutageSnapshot
	metaErr     error
	computeErr  error
	lastRequest services.OutageRequest
}

func (f *fakeOutageService) Meta(ctx context.Context) (*services.OutageMeta, error) {
	return f.meta, f.metaErr
}

func (f *fakeOutageService) Compute(ctx context.Context, req services.OutageRequest) (*services.OutageSnapshot, error) {
	f.lastRequest = req
	return f.snapshot, f.computeErr
}

func newOutageRouter(svc OutageServiceInterface) chi.Router {
	logger := slog.Default()
	handler := NewOutageHandler(svc, logger, apierrors.NewErrorHandler(logger, false))
	r := chi.NewRouter()
	r.Mount("/api/outages", handler.Routes())
	return r
}

func TestOutageHandlerGetMeta(t *testing.T) {
	svc := &fakeOutageService{meta: &services.OutageMeta{RowCount: 6, Suburbs: []string{"Albany", "Ponsonby"}}}
	router := newOutageRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/outages/meta", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var meta services.OutageMeta
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &meta))
	assert.Equal(t, 6, meta.RowCount)
}

func TestOutageHandlerGetSnapshot(t *testing.T) {
	svc := &fakeOutageService{snapshot: &services.OutageSnapshot{ID: "snap-1"}}
	router := newOutageRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/outages/snapshot?suburb=Albany&from=2024-07-01&to=2024-08-31&exceeded_only=true", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	filter := svc.lastRequest.Filter
	assert.Equal(t, "Albany", filter.Suburb)
	assert.True(t, filter.ExceededOnly)
	assert.Equal(t, time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC), filter.From)
	assert.Equal(t, time.Date(2024, 8, 31, 0, 0, 0, 0, time.UTC), filter.To)
}

func TestOutageHandlerDateValidation(t *testing.T) {
	tests := []struct {
		name  string
		query string
	}{
		{name: "malformed from date", query: "?from=July-1"},
		{name: "malformed to date", query: "?to=2024/08/31"},
		{name: "range end precedes start", query: "?from=2024-08-31&to=2024-07-01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeOutageService{snapshot: &services.OutageSnapshot{}}
			router := newOutageRouter(svc)

			req := httptest.NewRequest(http.MethodGet, "/api/outages/snapshot"+tt.query, nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Header().Get("Content-Type"), "application/problem+json")
		})
	}
}

func TestOutageHandlerDatasetNotReady(t *testing.T) {
	svc := &fakeOutageService{computeErr: services.ErrDatasetNotReady}
	router := newOutageRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/outages/snapshot", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestOutageHandlerExportCSV(t *testing.T) {
	svc := &fakeOutageService{snapshot: &services.OutageSnapshot{
		Table: []services.OutageRow{
			{OutageID: 13349, Suburb: "Ponsonby", Transformer: "KCN ME01", Customers: 13, StartTime: "2024-08-31 20:00", EndTime: "Ongoing", Status: "Open", DurationMinutes: 300},
		},
	}}
	router := newOutageRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/outages/export", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "outage_export.csv")

	body := rec.Body.String()
	assert.Contains(t, body, "outage_id")
	assert.Contains(t, body, "Ongoing")

	// no BOM unless requested
	assert.NotEqual(t, byte(0xEF), rec.Body.Bytes()[0])
}
