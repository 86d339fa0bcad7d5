package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dashpulse/pkg/contracts/domain"
)

func testTable() *Table {
	return NewTable([]domain.Product{
		{ID: "P1", Name: "USB-C Cable", BroadCategory: "Electronics", ActualPrice: 499, DiscountedPrice: 299, DiscountPercent: 40, Rating: 4.1, RatingCount: 1200},
		{ID: "P2", Name: "Electric Kettle", BroadCategory: "Home", ActualPrice: 1500, DiscountedPrice: 1000, DiscountPercent: 33, Rating: 3.8, RatingCount: 56},
		{ID: "P3", Name: "HDMI Cable", BroadCategory: "Electronics", ActualPrice: 799, DiscountedPrice: 599, DiscountPercent: 25, Rating: 4.5, RatingCount: 3400},
		{ID: "P4", Name: "Blender", BroadCategory: "Home", ActualPrice: 2999, DiscountedPrice: 2499, DiscountPercent: 17, Rating: 4.0, RatingCount: 210},
	})
}

func TestDefaultFilterSpansTable(t *testing.T) {
	table := testTable()
	cfg := DefaultFilter(table)

	assert.InDelta(t, 499, cfg.PriceMin, 1e-9)
	assert.InDelta(t, 2999, cfg.PriceMax, 1e-9)
	assert.InDelta(t, 3.8, cfg.RatingMin, 1e-9)
	assert.InDelta(t, 4.5, cfg.RatingMax, 1e-9)
	assert.Equal(t, []string{"Electronics", "Home"}, cfg.Categories)

	// the default filter selects every row
	assert.Len(t, Apply(table, cfg), table.Len())
}

func TestApply(t *testing.T) {
	table := testTable()
	base := DefaultFilter(table)

	tests := []struct {
		name    string
		mutate  func(*FilterConfig)
		wantIDs []string
	}{
		{
			name:    "price range",
			mutate:  func(c *FilterConfig) { c.PriceMin = 500; c.PriceMax = 2000 },
			wantIDs: []string{"P2", "P3"},
		},
		{
			name:    "rating range",
			mutate:  func(c *FilterConfig) { c.RatingMin = 4.0 },
			wantIDs: []string{"P1", "P3", "P4"},
		},
		{
			name:    "single category",
			mutate:  func(c *FilterConfig) { c.Categories = []string{"Home"} },
			wantIDs: []string{"P2", "P4"},
		},
		{
			name:    "search is case-insensitive substring",
			mutate:  func(c *FilterConfig) { c.SearchTerm = "cable" },
			wantIDs: []string{"P1", "P3"},
		},
		{
			name: "predicates are conjunctive",
			mutate: func(c *FilterConfig) {
				c.Categories = []string{"Electronics"}
				c.RatingMin = 4.3
			},
			wantIDs: []string{"P3"},
		},
		{
			name:    "empty category set excludes everything",
			mutate:  func(c *FilterConfig) { c.Categories = []string{} },
			wantIDs: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base
			tt.mutate(&cfg)

			got := Apply(table, cfg)
			ids := make([]string, len(got))
			for i, p := range got {
				ids[i] = p.ID
			}
			assert.ElementsMatch(t, tt.wantIDs, ids)
		})
	}
}

func TestEmptySubsetDegradesToZeroAggregates(t *testing.T) {
	table := testTable()
	cfg := DefaultFilter(table)
	cfg.Categories = []string{}

	subset := Apply(table, cfg)
	require.Empty(t, subset)

	metrics := ComputeMetrics(subset)
	assert.False(t, metrics.HasData)
	assert.Zero(t, metrics.TotalProducts)
	assert.Zero(t, metrics.AverageRating)

	assert.Empty(t, ComputeCategoryStats(subset))
	assert.Empty(t, RatingHistogram(subset, 20))
	assert.Empty(t, PriceVsRating(subset))
}
