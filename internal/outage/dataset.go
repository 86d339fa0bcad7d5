// Package outage implements the transformer-outage dashboard pipeline:
// joining outage records to per-suburb duration limits, filtering, suburb
// aggregation and the timeline bar layout.
package outage

import (
	"log/slog"
	"sort"
	"time"

	"dashpulse/pkg/contracts/domain"
)

// Dataset is the cleaned, immutable outage table joined to suburb limits.
// Filtering produces new row slices; the dataset is never mutated.
type Dataset struct {
	outages []domain.Outage
	limits  map[string]float64
}

// NewDataset joins outages to their suburb limits (left join: a suburb
// without a limit record simply has no entry in the map).
func NewDataset(outages []domain.Outage, limits []domain.SuburbLimit, logger *slog.Logger) *Dataset {
	if logger == nil {
		logger = slog.Default()
	}

	limitMap := make(map[string]float64, len(limits))
	for _, l := range limits {
		limitMap[l.Suburb] = l.DurationLimit
	}

	unmatched := 0
	for _, o := range outages {
		if _, ok := limitMap[o.Suburb]; !ok {
			unmatched++
		}
	}
	if unmatched > 0 {
		logger.Warn("outages reference suburbs without a duration limit",
			slog.Int("unmatched_rows", unmatched))
	}
	logger.Info("outage dataset loaded",
		slog.Int("outage_rows", len(outages)),
		slog.Int("suburb_limits", len(limits)))

	return &Dataset{outages: outages, limits: limitMap}
}

// Outages returns the outage rows. Callers must treat the slice as read-only.
func (d *Dataset) Outages() []domain.Outage {
	return d.outages
}

// Len returns the number of outage rows.
func (d *Dataset) Len() int {
	return len(d.outages)
}

// Limit returns the duration limit for a suburb, if one exists.
func (d *Dataset) Limit(suburb string) (float64, bool) {
	limit, ok := d.limits[suburb]
	return limit, ok
}

// Suburbs returns the sorted distinct suburbs present in the outage rows.
func (d *Dataset) Suburbs() []string {
	seen := make(map[string]struct{})
	for _, o := range d.outages {
		seen[o.Suburb] = struct{}{}
	}
	suburbs := make([]string, 0, len(seen))
	for s := range seen {
		suburbs = append(suburbs, s)
	}
	sort.Strings(suburbs)
	return suburbs
}

// DateBounds returns the earliest and latest start timestamps.
func (d *Dataset) DateBounds() (min, max time.Time) {
	if len(d.outages) == 0 {
		return time.Time{}, time.Time{}
	}
	min, max = d.outages[0].StartTime, d.outages[0].StartTime
	for _, o := range d.outages[1:] {
		if o.StartTime.Before(min) {
			min = o.StartTime
		}
		if o.StartTime.After(max) {
			max = o.StartTime
		}
	}
	return min, max
}
