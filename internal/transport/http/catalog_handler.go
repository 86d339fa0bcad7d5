package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	apierrors "dashpulse/internal/errors"
	"dashpulse/internal/exporter"
	"dashpulse/internal/services"
	"dashpulse/pkg/contracts/domain"
)

// validate is shared across handlers; validator instances cache struct info.
var validate = validator.New()

// CatalogHandler handles catalog-dashboard HTTP requests
type CatalogHandler struct {
	service      CatalogServiceInterface
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(service CatalogServiceInterface, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *CatalogHandler {
	return &CatalogHandler{
		service:      service,
		logger:       logger.With(slog.String("component", "catalog_handler")),
		errorHandler: errorHandler,
	}
}

// Routes returns the catalog routes
func (h *CatalogHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/meta", h.GetMeta)
	r.Get("/snapshot", h.GetSnapshot)
	r.Get("/export", h.ExportCSV)

	return r
}

// catalogQuery carries the validated widget state from query parameters.
type catalogQuery struct {
	Percentile float64 `validate:"omitempty,gte=5,lte=25"`
	TextColumn string  `validate:"omitempty,oneof=review_content about_product"`
}

// GetMeta handles GET /api/catalog/meta
func (h *CatalogHandler) GetMeta(w http.ResponseWriter, r *http.Request) {
	meta, err := h.service.Meta(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, meta)
}

// GetSnapshot handles GET /api/catalog/snapshot: recompute the dashboard
// for the filter state carried in the query string.
func (h *CatalogHandler) GetSnapshot(w http.ResponseWriter, r *http.Request) {
	req, err := parseCatalogRequest(r.URL.Query())
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

// ExportCSV handles GET /api/catalog/export: stream the filtered subset.
func (h *CatalogHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	req, err := parseCatalogRequest(r.URL.Query())
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
	w.Header().Set("Content-Disposition", `attachment; filename="catalog_export.csv"`)

	if err := exporter.Write(w, exporter.ProductOptions(snapshot.Products, withBOM)); err != nil {
		h.logger.ErrorContext(r.Context(), "failed to stream catalog export",
			slog.String("error", err.Error()))
	}
}

// parseCatalogRequest converts query parameters into a compute request.
func parseCatalogRequest(q url.Values) (services.CatalogRequest, error) {
	var req services.CatalogRequest
	var err error

	if req.PriceMin, err = parseFloatParam(q, "price_min"); err != nil {
		return req, err
	}
	if req.PriceMax, err = parseFloatParam(q, "price_max"); err != nil {
		return req, err
	}
	if req.RatingMin, err = parseFloatParam(q, "rating_min"); err != nil {
		return req, err
	}
	if req.RatingMax, err = parseFloatParam(q, "rating_max"); err != nil {
		return req, err
	}

	// "categories=" (present but empty) is an explicit empty selection;
	// an absent parameter means all categories.
	if values, ok := q["categories"]; ok {
		req.Categories = []string{}
		for _, v := range values {
			for _, c := range strings.Split(v, ",") {
				if c = strings.TrimSpace(c); c != "" {
					req.Categories = append(req.Categories, c)
				}
			}
		}
	}

	req.SearchTerm = q.Get("search")

	if raw := q.Get("percentile"); raw != "" {
		p, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return req, apierrors.ErrValidation("percentile", fmt.Sprintf("not a number: %q", raw))
		}
		req.Percentile = p
	}
	req.TextColumn = domain.TextColumn(q.Get("text_column"))

	query := catalogQuery{Percentile: req.Percentile, TextColumn: string(req.TextColumn)}
	if err := validate.Struct(query); err != nil {
		return req, validationProblem(err)
	}

	return req, nil
}

// parseFloatParam reads an optional float query parameter.
func parseFloatParam(q url.Values, key string) (*float64, error) {
	raw := q.Get(key)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, apierrors.ErrValidation(key, fmt.Sprintf("not a number: %q", raw))
	}
	return &v, nil
}

// validationProblem converts validator errors into field-level API errors.
func validationProblem(err error) error {
	var fieldErrors []apierrors.ValidationError
	if verrs, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range verrs {
			fieldErrors = append(fieldErrors, apierrors.ValidationError{
				Field:   strings.ToLower(fe.Field()),
				Message: fmt.Sprintf("failed on %q constraint", fe.Tag()),
			})
		}
	}
	return apierrors.NewWithDetails(
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"Request validation failed",
		fieldErrors,
	)
}

// mapComputeError maps service errors to API errors.
func mapComputeError(err error) error {
	switch err {
	case services.ErrDatasetNotReady:
		return apierrors.ErrDatasetNotReady
	case services.ErrInvalidPercentile:
		return apierrors.ErrValidation("percentile", err.Error())
	case services.ErrInvalidTextColumn:
		return apierrors.ErrValidation("text_column", err.Error())
	default:
		return err
	}
}
