package outage

import (
	"time"

	"dashpulse/pkg/contracts/domain"
)

// AllSuburbs disables the suburb predicate.
const AllSuburbs = "All"

// FilterConfig is the immutable widget state driving one recomputation.
// Predicates apply conjunctively; zero-value From/To disable the date range.
type FilterConfig struct {
	Suburb       string    `json:"suburb,omitempty"`
	From         time.Time `json:"from,omitempty"`
	To           time.Time `json:"to,omitempty"`
	ExceededOnly bool      `json:"exceeded_only,omitempty"`
}

// Apply returns the rows matching every active predicate. The date range
// compares calendar dates of the start timestamp, inclusive on both ends.
// ExceededOnly keeps rows whose suburb has breached its duration limit,
// evaluated over the suburb- and date-filtered subset; suburbs without a
// limit record are not evaluable and never match.
func Apply(d *Dataset, cfg FilterConfig) []domain.Outage {
	matched := make([]domain.Outage, 0, d.Len())
	for _, o := range d.Outages() {
		if cfg.Suburb != "" && cfg.Suburb != AllSuburbs && o.Suburb != cfg.Suburb {
			continue
		}
		if !cfg.From.IsZero() && dateOf(o.StartTime).Before(dateOf(cfg.From)) {
			continue
		}
		if !cfg.To.IsZero() && dateOf(o.StartTime).After(dateOf(cfg.To)) {
			continue
		}
		matched = append(matched, o)
	}

	if cfg.ExceededOnly {
		exceeded := make(map[string]bool)
		for _, usage := range ComputeSuburbUsage(matched, d) {
			if usage.Exceeded != nil && *usage.Exceeded {
				exceeded[usage.Suburb] = true
			}
		}
		kept := matched[:0]
		for _, o := range matched {
			if exceeded[o.Suburb] {
				kept = append(kept, o)
			}
		}
		matched = kept
	}

	return matched
}

// dateOf truncates a timestamp to its calendar date in its own location.
func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
