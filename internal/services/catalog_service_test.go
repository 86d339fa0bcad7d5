package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dashpulse/internal/catalog"
	"dashpulse/pkg/contracts/domain"
)

func newTestCatalogService() *CatalogService {
	table, report := catalog.Clean([]catalog.RawProduct{
		{ID: "P1", Name: "USB-C Cable", Category: "Electronics|Cables", ActualPrice: "₹499", DiscountedPrice: "₹299", DiscountPercent: "40%", Rating: "4.1", RatingCount: "1,200", ReviewContent: "great cable works great"},
		{ID: "P2", Name: "Electric Kettle", Category: "Home|Kitchen", ActualPrice: "₹1,500", DiscountedPrice: "₹1,000", DiscountPercent: "33%", Rating: "3.8", RatingCount: "56", ReviewContent: "leaks after a week"},
		{ID: "P3", Name: "HDMI Cable", Category: "Electronics|Cables", ActualPrice: "₹799", DiscountedPrice: "₹599", DiscountPercent: "25%", Rating: "4.5", RatingCount: "3,400", ReviewContent: "crisp picture quality"},
		{ID: "P4", Name: "Blender", Category: "Home|Kitchen", ActualPrice: "₹2,999", DiscountedPrice: "₹2,499", DiscountPercent: "17%", Rating: "4.0", RatingCount: "210", ReviewContent: "powerful motor"},
	}, nil)
	return NewCatalogServiceFromTable(table, report, nil)
}

func TestCatalogServiceMeta(t *testing.T) {
	svc := newTestCatalogService()

	meta, err := svc.Meta(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 4, meta.RowCount)
	assert.Equal(t, []string{"Electronics", "Home"}, meta.Categories)
	assert.InDelta(t, 499, meta.Defaults.PriceMin, 1e-9)
	assert.InDelta(t, 2999, meta.Defaults.PriceMax, 1e-9)
	assert.Equal(t, 4, meta.LoadReport.Loaded)
}

func TestCatalogServiceComputeDefaults(t *testing.T) {
	svc := newTestCatalogService()

	snapshot, err := svc.Compute(context.Background(), CatalogRequest{})
	require.NoError(t, err)

	assert.NotEmpty(t, snapshot.ID)
	assert.Len(t, snapshot.Products, 4)
	assert.Equal(t, 4, snapshot.Metrics.TotalProducts)
	assert.True(t, snapshot.Metrics.HasData)

	// unset knobs take the dashboard defaults
	assert.InDelta(t, 10, snapshot.Words.Percentile, 1e-9)
	assert.Equal(t, domain.TextReviewContent, snapshot.Words.TextColumn)

	assert.Len(t, snapshot.Charts.PriceVsRating, 4)
	assert.Len(t, snapshot.Charts.CategoryStats, 2)
	assert.NotEmpty(t, snapshot.Charts.RatingHistogram)
}

func TestCatalogServiceComputePartialOverrides(t *testing.T) {
	svc := newTestCatalogService()

	priceMin := 500.0
	snapshot, err := svc.Compute(context.Background(), CatalogRequest{PriceMin: &priceMin})
	require.NoError(t, err)

	// the un-set bounds backfill from the table
	assert.InDelta(t, 500, snapshot.Filter.PriceMin, 1e-9)
	assert.InDelta(t, 2999, snapshot.Filter.PriceMax, 1e-9)
	assert.Len(t, snapshot.Products, 3)
}

func TestCatalogServiceComputeCategorySemantics(t *testing.T) {
	svc := newTestCatalogService()
	ctx := context.Background()

	t.Run("nil selects every category", func(t *testing.T) {
		snapshot, err := svc.Compute(ctx, CatalogRequest{})
		require.NoError(t, err)
		assert.Len(t, snapshot.Products, 4)
	})

	t.Run("empty non-nil excludes everything", func(t *testing.T) {
		snapshot, err := svc.Compute(ctx, CatalogRequest{Categories: []string{}})
		require.NoError(t, err)
		assert.Empty(t, snapshot.Products)
		assert.False(t, snapshot.Metrics.HasData)
	})

	t.Run("explicit selection", func(t *testing.T) {
		snapshot, err := svc.Compute(ctx, CatalogRequest{Categories: []string{"Home"}})
		require.NoError(t, err)
		assert.Len(t, snapshot.Products, 2)
	})
}

func TestCatalogServiceComputeValidation(t *testing.T) {
	svc := newTestCatalogService()
	ctx := context.Background()

	tests := []struct {
		name    string
		req     CatalogRequest
		wantErr error
	}{
		{
			name:    "percentile below range",
			req:     CatalogRequest{Percentile: 4},
			wantErr: ErrInvalidPercentile,
		},
		{
			name:    "percentile above range",
			req:     CatalogRequest{Percentile: 26},
			wantErr: ErrInvalidPercentile,
		},
		{
			name:    "unknown text column",
			req:     CatalogRequest{TextColumn: "title"},
			wantErr: ErrInvalidTextColumn,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Compute(ctx, tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	t.Run("boundary percentiles are valid", func(t *testing.T) {
		for _, p := range []float64{5, 25} {
			_, err := svc.Compute(ctx, CatalogRequest{Percentile: p})
			assert.NoError(t, err)
		}
	})
}

func TestCatalogServiceComputeWordAnalysis(t *testing.T) {
	svc := newTestCatalogService()

	snapshot, err := svc.Compute(context.Background(), CatalogRequest{Percentile: 25})
	require.NoError(t, err)

	assert.LessOrEqual(t, snapshot.Words.LowerThreshold, snapshot.Words.UpperThreshold)
	assert.Positive(t, snapshot.Words.TopCount)
	assert.Positive(t, snapshot.Words.BottomCount)
	assert.NotEmpty(t, snapshot.Words.TopWords)
}

func TestCatalogServiceNotReady(t *testing.T) {
	svc := &CatalogService{}

	_, err := svc.Meta(context.Background())
	assert.ErrorIs(t, err, ErrDatasetNotReady)

	_, err = svc.Compute(context.Background(), CatalogRequest{})
	assert.ErrorIs(t, err, ErrDatasetNotReady)
}
