package outage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dashpulse/pkg/contracts/domain"
)

func TestLayoutBarVisibilityFloor(t *testing.T) {
	now := time.Date(2024, 9, 1, 12, 0, 0, 0, time.UTC)
	start := time.Date(2024, 8, 27, 8, 30, 0, 0, time.UTC)
	end := start.Add(20 * time.Minute)

	tests := []struct {
		name        string
		duration    float64
		wantVisible float64
	}{
		{name: "short outage clamps to 24h", duration: 20, wantVisible: 1440},
		{name: "exactly at the floor", duration: 1440, wantVisible: 1440},
		{name: "long outage keeps its length", duration: 3000, wantVisible: 3000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := domain.Outage{
				OutageID:        1,
				Suburb:          "Remuera",
				TransformerName: "REMU MU78",
				StartTime:       start,
				EndTime:         &end,
				Status:          domain.OutageClosed,
				DurationMinutes: tt.duration,
			}

			bar := LayoutBar(o, now)
			assert.InDelta(t, tt.wantVisible, bar.VisibleMinutes, 1e-9)

			// the stored duration is untouched by the display clamp
			assert.InDelta(t, tt.duration, bar.Duration, 1e-9)
		})
	}
}

func TestLayoutBarOngoingEndsAtNow(t *testing.T) {
	now := time.Date(2024, 9, 1, 12, 0, 0, 0, time.UTC)
	o := domain.Outage{
		OutageID:        13349,
		Suburb:          "Ponsonby",
		TransformerName: "KCN ME01",
		StartTime:       now.Add(-5 * time.Hour),
		Status:          domain.OutageOpen,
		DurationMinutes: 300,
	}

	bar := LayoutBar(o, now)
	assert.True(t, bar.Ongoing)
	assert.Equal(t, now, bar.End)
	assert.Equal(t, domain.OutageOpen, bar.Status)
}

func TestSuburbColor(t *testing.T) {
	tests := []struct {
		suburb string
		want   string
	}{
		{suburb: "Ponsonby", want: "#1f77b4"},
		{suburb: "Albany", want: "#2ca02c"},
		{suburb: "Remuera", want: "#ff7f0e"},
		{suburb: "Takapuna", want: DefaultBarColor},
	}

	for _, tt := range tests {
		t.Run(tt.suburb, func(t *testing.T) {
			assert.Equal(t, tt.want, SuburbColor(tt.suburb))
		})
	}
}

func TestLayoutTimelineOrdering(t *testing.T) {
	now := time.Date(2024, 9, 1, 12, 0, 0, 0, time.UTC)
	d := SeedDataset(nil)

	bars := LayoutTimeline(d.Outages(), now)
	require.Len(t, bars, 6)

	for i := 1; i < len(bars); i++ {
		prev, cur := bars[i-1], bars[i]
		if prev.Transformer == cur.Transformer {
			assert.False(t, cur.Start.Before(prev.Start))
		} else {
			assert.Less(t, prev.Transformer, cur.Transformer)
		}
	}

	// every bar carries its suburb's palette color
	for _, b := range bars {
		assert.Equal(t, SuburbColor(b.Suburb), b.Color)
	}
}
