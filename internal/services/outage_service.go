package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"dashpulse/internal/infrastructure"
	"dashpulse/internal/outage"
	"dashpulse/pkg/contracts/domain"
)

// displayTimeLayout formats timestamps for the detail table.
const displayTimeLayout = "2006-01-02 15:04"

// OutageRequest is the widget state for one outage recomputation.
type OutageRequest struct {
	Filter outage.FilterConfig `json:"filter"`
}

// OutageRow is one formatted line of the detail table. An ongoing outage
// shows "Ongoing" in place of its end time.
type OutageRow struct {
	OutageID        int64   `json:"outage_id"`
	Suburb          string  `json:"suburb"`
	Transformer     string  `json:"transformer_name"`
	Customers       int64   `json:"customers_on_transformer"`
	StartTime       string  `json:"start_time"`
	EndTime         string  `json:"end_time"`
	Status          string  `json:"status"`
	DurationMinutes float64 `json:"duration_minutes"`
}

// OutageSnapshot is the complete output of one outage recomputation.
type OutageSnapshot struct {
	ID          string               `json:"id"`
	GeneratedAt time.Time            `json:"generated_at"`
	Filter      outage.FilterConfig  `json:"filter"`
	Metrics     outage.Metrics       `json:"metrics"`
	SuburbUsage []outage.SuburbUsage `json:"suburb_usage"`
	Timeline    []outage.Bar         `json:"timeline"`
	Table       []OutageRow          `json:"table"`
}

// OutageMeta describes the dataset so the UI can seed its widgets.
type OutageMeta struct {
	RowCount int       `json:"row_count"`
	Suburbs  []string  `json:"suburbs"`
	MinDate  time.Time `json:"min_date"`
	MaxDate  time.Time `json:"max_date"`
}

// OutageService owns the one-time-loaded outage dataset and recomputes
// snapshots from filter configurations. The clock is injectable so display
// substitution for ongoing outages is testable.
type OutageService struct {
	dataset *outage.Dataset
	clock   func() time.Time
	logger  *slog.Logger
	metrics *infrastructure.DashboardMetrics
}

// NewOutageService wires the seed dataset.
func NewOutageService(logger *slog.Logger, metrics *infrastructure.DashboardMetrics) *OutageService {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(slog.String("component", "outage_service"))
	return &OutageService{
		dataset: outage.SeedDataset(logger),
		clock:   time.Now,
		logger:  logger,
		metrics: metrics,
	}
}

// NewOutageServiceWithDataset wires an explicit dataset and clock.
func NewOutageServiceWithDataset(dataset *outage.Dataset, clock func() time.Time, logger *slog.Logger) *OutageService {
	if logger == nil {
		logger = slog.Default()
	}
	if clock == nil {
		clock = time.Now
	}
	return &OutageService{
		dataset: dataset,
		clock:   clock,
		logger:  logger.With(slog.String("component", "outage_service")),
	}
}

// Meta returns dataset bounds for seeding UI widgets.
func (s *OutageService) Meta(ctx context.Context) (*OutageMeta, error) {
	if s.dataset == nil {
		return nil, ErrDatasetNotReady
	}
	minDate, maxDate := s.dataset.DateBounds()
	return &OutageMeta{
		RowCount: s.dataset.Len(),
		Suburbs:  s.dataset.Suburbs(),
		MinDate:  minDate,
		MaxDate:  maxDate,
	}, nil
}

// Compute runs the full pipeline for one filter configuration. An empty
// subset yields zeroed metrics and empty series, never an error.
func (s *OutageService) Compute(ctx context.Context, req OutageRequest) (*OutageSnapshot, error) {
	if s.dataset == nil {
		return nil, ErrDatasetNotReady
	}

	start := time.Now()
	now := s.clock()
	subset := outage.Apply(s.dataset, req.Filter)

	snapshot := &OutageSnapshot{
		ID:          uuid.New().String(),
		GeneratedAt: time.Now().UTC(),
		Filter:      req.Filter,
		Metrics:     outage.ComputeMetrics(subset),
		SuburbUsage: outage.ComputeSuburbUsage(subset, s.dataset),
		Timeline:    outage.LayoutTimeline(subset, now),
		Table:       formatRows(subset),
	}

	s.recordCompute(ctx, time.Since(start))

	s.logger.DebugContext(ctx, "outage snapshot computed",
		slog.String("snapshot_id", snapshot.ID),
		slog.Int("rows", len(subset)),
		slog.String("duration", time.Since(start).String()))

	return snapshot, nil
}

// formatRows builds the display table; DurationMinutes passes through
// untouched for ongoing outages.
func formatRows(outages []domain.Outage) []OutageRow {
	rows := make([]OutageRow, len(outages))
	for i, o := range outages {
		end := "Ongoing"
		if o.EndTime != nil {
			end = o.EndTime.Format(displayTimeLayout)
		}
		rows[i] = OutageRow{
			OutageID:        o.OutageID,
			Suburb:          o.Suburb,
			Transformer:     o.TransformerName,
			Customers:       o.CustomerCount,
			StartTime:       o.StartTime.Format(displayTimeLayout),
			EndTime:         end,
			Status:          string(o.Status),
			DurationMinutes: o.DurationMinutes,
		}
	}
	return rows
}

func (s *OutageService) recordCompute(ctx context.Context, elapsed time.Duration) {
	if s.metrics == nil {
		return
	}
	attrs := metric.WithAttributes(attribute.String("dashboard", "outage"))
	s.metrics.ComputeTotal.Add(ctx, 1, attrs)
	s.metrics.ComputeDuration.Record(ctx, elapsed.Seconds(), attrs)
}
