package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apierrors "dashpulse/internal/errors"
	"dashpulse/internal/exporter"
	"dashpulse/internal/services"
)

// dateLayout is the date-picker wire format.
const dateLayout = "2006-01-02"

// OutageHandler handles outage-dashboard HTTP requests
type OutageHandler struct {
	service      OutageServiceInterface
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewOutageHandler creates a new outage handler
func NewOutageHandler(service OutageServiceInterface, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *OutageHandler {
	return &OutageHandler{
		service:      service,
		logger:       logger.With(slog.String("component", "outage_handler")),
		errorHandler: errorHandler,
	}
}

// Routes returns the outage routes
func (h *OutageHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/meta", h.GetMeta)
	r.Get("/snapshot", h.GetSnapshot)
	r.Get("/export", h.ExportCSV)

	return r
}

// GetMeta handles GET /api/outages/meta
func (h *OutageHandler) GetMeta(w http.ResponseWriter, r *http.Request) {
	meta, err := h.service.Meta(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, meta)
}

// GetSnapshot handles GET /api/outages/snapshot
func (h *OutageHandler) GetSnapshot(w http.ResponseWriter, r *http.Request) {
	req, err := parseOutageRequest(r.URL.Query())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	snapshot, err := h.service.Compute(r.Context(), req)
	if err != nil {
		h.errorHandler.HandleError(w, r, mapComputeError(err))
		return
	}

	render.JSON(w, r, snapshot)
}

// ExportCSV handles GET /api/outages/export
func (h *OutageHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	req, err := parseOutageRequest(r.URL.Query())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	snapshot, err := h.service.Compute(r.Context(), req)
	if err != nil {
		h.errorHandler.HandleError(w, r, mapComputeError(err))
		return
	}

	withBOM := r.URL.Query().Get("bom") == "true"
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="outage_export.csv"`)

	if err := exporter.Write(w, exporter.OutageOptions(snapshot.Table, withBOM)); err != nil {
		h.logger.ErrorContext(r.Context(), "failed to stream outage export",
			slog.String("error", err.Error()))
	}
}

// parseOutageRequest converts query parameters into a compute request.
func parseOutageRequest(q url.Values) (services.OutageRequest, error) {
	var req services.OutageRequest

	req.Filter.Suburb = q.Get("suburb")
	req.Filter.ExceededOnly = q.Get("exceeded_only") == "true"

	var err error
	if req.Filter.From, err = parseDateParam(q, "from"); err != nil {
		return req, err
	}
	if req.Filter.To, err = parseDateParam(q, "to"); err != nil {
		return req, err
	}
	if !req.Filter.From.IsZero() && !req.Filter.To.IsZero() && req.Filter.To.Before(req.Filter.From) {
		return req, apierrors.ErrValidation("to", "date range end precedes start")
	}

	return req, nil
}

// parseDateParam reads an optional yyyy-mm-dd query parameter.
func parseDateParam(q url.Values, key string) (time.Time, error) {
	raw := q.Get(key)
	if raw == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		return time.Time{}, apierrors.ErrValidation(key, fmt.Sprintf("not a date (expected %s): %q", dateLayout, raw))
	}
	return t, nil
}
