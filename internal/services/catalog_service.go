package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"dashpulse/internal/catalog"
	"dashpulse/internal/config"
	"dashpulse/internal/infrastructure"
	"dashpulse/pkg/contracts/domain"
)

// CatalogRequest is the widget state for one catalog recomputation. Nil
// range bounds default to the table's full range, mirroring sliders that
// start at their extremes; nil Categories selects every category while an
// empty non-nil set excludes all of them. Percentile and TextColumn drive
// the word analysis; zero values take the dashboard defaults.
type CatalogRequest struct {
	PriceMin   *float64          `json:"price_min,omitempty"`
	PriceMax   *float64          `json:"price_max,omitempty"`
	RatingMin  *float64          `json:"rating_min,omitempty"`
	RatingMax  *float64          `json:"rating_max,omitempty"`
	Categories []string          `json:"categories,omitempty"`
	SearchTerm string            `json:"search_term,omitempty"`
	Percentile float64           `json:"percentile,omitempty"`
	TextColumn domain.TextColumn `json:"text_column,omitempty"`
}

// buildFilter overlays the request onto the table's default filter.
func (r CatalogRequest) buildFilter(table *catalog.Table) catalog.FilterConfig {
	filter := catalog.DefaultFilter(table)
	if r.PriceMin != nil {
		filter.PriceMin = *r.PriceMin
	}
	if r.PriceMax != nil {
		filter.PriceMax = *r.PriceMax
	}
	if r.RatingMin != nil {
		filter.RatingMin = *r.RatingMin
	}
	if r.RatingMax != nil {
		filter.RatingMax = *r.RatingMax
	}
	if r.Categories != nil {
		filter.Categories = r.Categories
	}
	filter.SearchTerm = r.SearchTerm
	return filter
}

// CatalogCharts carries every chart series the dashboard renders.
type CatalogCharts struct {
	PriceVsRating      []catalog.ScatterPoint   `json:"price_vs_rating"`
	RatingVsCount      []catalog.ScatterPoint   `json:"rating_vs_count"`
	DiscountVsRating   []catalog.ScatterPoint   `json:"discount_vs_rating"`
	DiscountVsCount    []catalog.ScatterPoint   `json:"discount_vs_count"`
	PriceByCategory    []catalog.CategorySeries `json:"price_by_category"`
	DiscountByCategory []catalog.CategorySeries `json:"discount_by_category"`
	RatingHistogram    []catalog.HistogramBin   `json:"rating_histogram"`
	CategoryStats      []catalog.CategoryStat   `json:"category_stats"`
}

// WordAnalysis is the percentile-bucketed word-frequency result.
type WordAnalysis struct {
	Percentile     float64             `json:"percentile"`
	TextColumn     domain.TextColumn   `json:"text_column"`
	LowerThreshold float64             `json:"lower_threshold"`
	UpperThreshold float64             `json:"upper_threshold"`
	TopCount       int                 `json:"top_count"`
	BottomCount    int                 `json:"bottom_count"`
	TopWords       []catalog.WordCount `json:"top_words"`
	BottomWords    []catalog.WordCount `json:"bottom_words"`
}

// CatalogSnapshot is the complete output of one catalog recomputation.
type CatalogSnapshot struct {
	ID          string               `json:"id"`
	GeneratedAt time.Time            `json:"generated_at"`
	Filter      catalog.FilterConfig `json:"filter"`
	Metrics     catalog.Metrics      `json:"metrics"`
	Charts      CatalogCharts        `json:"charts"`
	Words       WordAnalysis         `json:"words"`
	Products    []domain.Product     `json:"products"`
}

// CatalogMeta describes the cleaned table so the UI can seed its widgets.
type CatalogMeta struct {
	RowCount   int                  `json:"row_count"`
	Categories []string             `json:"categories"`
	Defaults   catalog.FilterConfig `json:"default_filter"`
	LoadReport catalog.LoadReport   `json:"load_report"`
}

// CatalogService owns the one-time-loaded catalog table and recomputes
// snapshots from filter configurations. The table is immutable, so Compute
// is safe for concurrent callers.
type CatalogService struct {
	table   *catalog.Table
	report  catalog.LoadReport
	logger  *slog.Logger
	metrics *infrastructure.DashboardMetrics
}

// NewCatalogService loads the workbook configured in paths and cleans it.
func NewCatalogService(cfg *config.Config, logger *slog.Logger, metrics *infrastructure.DashboardMetrics) (*CatalogService, error) {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(slog.String("component", "catalog_service"))

	table, report, err := catalog.LoadWorkbook(cfg.Paths.CatalogPath(), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog workbook: %w", err)
	}

	return &CatalogService{table: table, report: report, logger: logger, metrics: metrics}, nil
}

// NewCatalogServiceFromTable wires a pre-cleaned table. Used by tests and
// by callers that load data themselves.
func NewCatalogServiceFromTable(table *catalog.Table, report catalog.LoadReport, logger *slog.Logger) *CatalogService {
	if logger == nil {
		logger = slog.Default()
	}
	return &CatalogService{table: table, report: report, logger: logger.With(slog.String("component", "catalog_service"))}
}

// Meta returns table bounds and defaults for seeding UI widgets.
func (s *CatalogService) Meta(ctx context.Context) (*CatalogMeta, error) {
	if s.table == nil {
		return nil, ErrDatasetNotReady
	}
	return &CatalogMeta{
		RowCount:   s.table.Len(),
		Categories: s.table.BroadCategories(),
		Defaults:   catalog.DefaultFilter(s.table),
		LoadReport: s.report,
	}, nil
}

// Compute runs the full pipeline for one filter configuration: filter the
// cleaned table, aggregate, bucket by rating percentile and count words.
// Pure with respect to the table; an empty subset yields zeroed metrics and
// empty series, never an error.
func (s *CatalogService) Compute(ctx context.Context, req CatalogRequest) (*CatalogSnapshot, error) {
	if s.table == nil {
		return nil, ErrDatasetNotReady
	}

	if req.Percentile == 0 {
		req.Percentile = 10
	}
	if req.Percentile < 5 || req.Percentile > 25 {
		return nil, ErrInvalidPercentile
	}
	if req.TextColumn == "" {
		req.TextColumn = domain.TextReviewContent
	}
	if !req.TextColumn.Valid() {
		return nil, ErrInvalidTextColumn
	}

	filter := req.buildFilter(s.table)

	start := time.Now()
	subset := catalog.Apply(s.table, filter)
	buckets := catalog.BucketByRating(subset, req.Percentile, req.TextColumn)

	snapshot := &CatalogSnapshot{
		ID:          uuid.New().String(),
		GeneratedAt: time.Now().UTC(),
		Filter:      filter,
		Metrics:     catalog.ComputeMetrics(subset),
		Charts: CatalogCharts{
			PriceVsRating:      catalog.PriceVsRating(subset),
			RatingVsCount:      catalog.RatingVsCount(subset),
			DiscountVsRating:   catalog.DiscountVsRating(subset),
			DiscountVsCount:    catalog.DiscountVsCount(subset),
			PriceByCategory:    catalog.PriceByCategory(subset),
			DiscountByCategory: catalog.DiscountByCategory(subset),
			RatingHistogram:    catalog.RatingHistogram(subset, 20),
			CategoryStats:      catalog.ComputeCategoryStats(subset),
		},
		Words: WordAnalysis{
			Percentile:     buckets.Percentile,
			TextColumn:     req.TextColumn,
			LowerThreshold: buckets.LowerThreshold,
			UpperThreshold: buckets.UpperThreshold,
			TopCount:       len(buckets.Top),
			BottomCount:    len(buckets.Bottom),
			TopWords:       catalog.WordFrequencies(buckets.Top, req.TextColumn, catalog.DefaultMaxWords),
			BottomWords:    catalog.WordFrequencies(buckets.Bottom, req.TextColumn, catalog.DefaultMaxWords),
		},
		Products: subset,
	}

	s.recordCompute(ctx, time.Since(start))

	s.logger.DebugContext(ctx, "catalog snapshot computed",
		slog.String("snapshot_id", snapshot.ID),
		slog.Int("rows", len(subset)),
		slog.Float64("percentile", req.Percentile),
		slog.String("duration", time.Since(start).String()))

	return snapshot, nil
}

func (s *CatalogService) recordCompute(ctx context.Context, elapsed time.Duration) {
	if s.metrics == nil {
		return
	}
	attrs := metric.WithAttributes(attribute.String("dashboard", "catalog"))
	s.metrics.ComputeTotal.Add(ctx, 1, attrs)
	s.metrics.ComputeDuration.Record(ctx, elapsed.Seconds(), attrs)
}
