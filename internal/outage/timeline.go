package outage

import (
	"sort"
	"time"

	"dashpulse/pkg/contracts/domain"
)

// MinVisibleMinutes is the 24-hour floor applied to bar lengths so very
// short outages remain legible on the timeline. Display geometry only; the
// stored duration is untouched.
const MinVisibleMinutes = 24 * 60

// DefaultBarColor is used for suburbs outside the fixed palette.
const DefaultBarColor = "#7f7f7f"

// suburbPalette is the fixed suburb color assignment of the dashboard.
var suburbPalette = map[string]string{
	"Ponsonby": "#1f77b4",
	"Albany":   "#2ca02c",
	"Remuera":  "#ff7f0e",
}

// Bar is one horizontal timeline bar: an outage on one transformer.
type Bar struct {
	OutageID       int64               `json:"outage_id"`
	Transformer    string              `json:"transformer"`
	Suburb         string              `json:"suburb"`
	Start          time.Time           `json:"start"`
	End            time.Time           `json:"end"`
	Ongoing        bool                `json:"ongoing"`
	VisibleMinutes float64             `json:"visible_minutes"`
	Duration       float64             `json:"duration_minutes"`
	Customers      int64               `json:"customers"`
	Status         domain.OutageStatus `json:"status"`
	Color          string              `json:"color"`
}

// SuburbColor returns the palette color for a suburb.
func SuburbColor(suburb string) string {
	if color, ok := suburbPalette[suburb]; ok {
		return color
	}
	return DefaultBarColor
}

// LayoutBar maps one outage to its bar geometry: position is the start
// timestamp, length is the duration clamped to the 24-hour visibility
// floor, color comes from the suburb palette. Ongoing outages end at now
// for display.
func LayoutBar(o domain.Outage, now time.Time) Bar {
	visible := o.DurationMinutes
	if visible < MinVisibleMinutes {
		visible = MinVisibleMinutes
	}
	return Bar{
		OutageID:       o.OutageID,
		Transformer:    o.TransformerName,
		Suburb:         o.Suburb,
		Start:          o.StartTime,
		End:            o.EffectiveEnd(now),
		Ongoing:        o.Ongoing(),
		VisibleMinutes: visible,
		Duration:       o.DurationMinutes,
		Customers:      o.CustomerCount,
		Status:         o.Status,
		Color:          SuburbColor(o.Suburb),
	}
}

// LayoutTimeline builds bars for the subset, ordered by transformer name
// then start time to match the chart's category axis.
func LayoutTimeline(outages []domain.Outage, now time.Time) []Bar {
	bars := make([]Bar, len(outages))
	for i, o := range outages {
		bars[i] = LayoutBar(o, now)
	}
	sort.Slice(bars, func(i, j int) bool {
		if bars[i].Transformer != bars[j].Transformer {
			return bars[i].Transformer < bars[j].Transformer
		}
		return bars[i].Start.Before(bars[j].Start)
	})
	return bars
}
