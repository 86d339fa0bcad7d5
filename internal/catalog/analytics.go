package catalog

import (
	"sort"
	"strings"

	"dashpulse/pkg/contracts/domain"
)

// Metrics are the headline numbers above the charts. HasData distinguishes
// an empty filtered subset from genuine zeros so the UI can show "no data"
// instead of a NaN leaking through.
type Metrics struct {
	TotalProducts         int     `json:"total_products"`
	AverageRating         float64 `json:"average_rating"`
	MedianActualPrice     float64 `json:"median_actual_price"`
	MedianDiscountedPrice float64 `json:"median_discounted_price"`
	AverageDiscount       float64 `json:"average_discount"`
	HasData               bool    `json:"has_data"`
}

// ComputeMetrics summarizes the filtered subset.
func ComputeMetrics(products []domain.Product) Metrics {
	if len(products) == 0 {
		return Metrics{}
	}

	ratings := make([]float64, len(products))
	actual := make([]float64, len(products))
	discounted := make([]float64, len(products))
	discounts := make([]float64, len(products))
	for i, p := range products {
		ratings[i] = p.Rating
		actual[i] = p.ActualPrice
		discounted[i] = p.DiscountedPrice
		discounts[i] = p.DiscountPercent
	}

	return Metrics{
		TotalProducts:         len(products),
		AverageRating:         Mean(ratings),
		MedianActualPrice:     Median(actual),
		MedianDiscountedPrice: Median(discounted),
		AverageDiscount:       Mean(discounts),
		HasData:               true,
	}
}

// CategoryStat is one row of the per-category summary table.
type CategoryStat struct {
	Category       string  `json:"category"`
	Count          int     `json:"count"`
	AvgRating      float64 `json:"avg_rating"`
	AvgRatingCount float64 `json:"avg_rating_count"`
	AvgDiscount    float64 `json:"avg_discount"`
	AvgPrice       float64 `json:"avg_price"`
}

// ComputeCategoryStats groups the subset by broad category and averages the
// numeric columns, sorted by category name.
func ComputeCategoryStats(products []domain.Product) []CategoryStat {
	type acc struct {
		count       int
		rating      float64
		ratingCount float64
		discount    float64
		price       float64
	}
	groups := make(map[string]*acc)
	for _, p := range products {
		g, ok := groups[p.BroadCategory]
		if !ok {
			g = &acc{}
			groups[p.BroadCategory] = g
		}
		g.count++
		g.rating += p.Rating
		g.ratingCount += float64(p.RatingCount)
		g.discount += p.DiscountPercent
		g.price += p.ActualPrice
	}

	stats := make([]CategoryStat, 0, len(groups))
	for category, g := range groups {
		n := float64(g.count)
		stats = append(stats, CategoryStat{
			Category:       category,
			Count:          g.count,
			AvgRating:      g.rating / n,
			AvgRatingCount: g.ratingCount / n,
			AvgDiscount:    g.discount / n,
			AvgPrice:       g.price / n,
		})
	}
	sort.Slice(stats, func(i, j int) bool { return stats[i].Category < stats[j].Category })
	return stats
}

// ScatterPoint is one marker in a scatter chart, colored by category.
type ScatterPoint struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Category string  `json:"category"`
	Name     string  `json:"name"`
}

// scatter builds points from two field selectors.
func scatter(products []domain.Product, x, y func(domain.Product) float64) []ScatterPoint {
	points := make([]ScatterPoint, len(products))
	for i, p := range products {
		points[i] = ScatterPoint{X: x(p), Y: y(p), Category: p.BroadCategory, Name: p.Name}
	}
	return points
}

// PriceVsRating builds the price/rating scatter series.
func PriceVsRating(products []domain.Product) []ScatterPoint {
	return scatter(products,
		func(p domain.Product) float64 { return p.ActualPrice },
		func(p domain.Product) float64 { return p.Rating })
}

// RatingVsCount builds the review-count/rating scatter series.
func RatingVsCount(products []domain.Product) []ScatterPoint {
	return scatter(products,
		func(p domain.Product) float64 { return float64(p.RatingCount) },
		func(p domain.Product) float64 { return p.Rating })
}

// DiscountVsRating builds the discount/rating scatter series.
func DiscountVsRating(products []domain.Product) []ScatterPoint {
	return scatter(products,
		func(p domain.Product) float64 { return p.DiscountPercent },
		func(p domain.Product) float64 { return p.Rating })
}

// DiscountVsCount builds the discount/review-count scatter series. The
// frontend renders the count axis on a log scale.
func DiscountVsCount(products []domain.Product) []ScatterPoint {
	return scatter(products,
		func(p domain.Product) float64 { return p.DiscountPercent },
		func(p domain.Product) float64 { return float64(p.RatingCount) })
}

// CategorySeries carries the raw values backing a per-category box plot.
type CategorySeries struct {
	Category string    `json:"category"`
	Values   []float64 `json:"values"`
}

// PriceByCategory groups actual prices per broad category for box plots.
func PriceByCategory(products []domain.Product) []CategorySeries {
	return seriesByCategory(products, func(p domain.Product) float64 { return p.ActualPrice })
}

// DiscountByCategory groups discount percentages per broad category.
func DiscountByCategory(products []domain.Product) []CategorySeries {
	return seriesByCategory(products, func(p domain.Product) float64 { return p.DiscountPercent })
}

func seriesByCategory(products []domain.Product, value func(domain.Product) float64) []CategorySeries {
	groups := make(map[string][]float64)
	for _, p := range products {
		groups[p.BroadCategory] = append(groups[p.BroadCategory], value(p))
	}
	series := make([]CategorySeries, 0, len(groups))
	for category, values := range groups {
		series = append(series, CategorySeries{Category: category, Values: values})
	}
	sort.Slice(series, func(i, j int) bool { return series[i].Category < series[j].Category })
	return series
}

// HistogramBin is one bar of the rating histogram.
type HistogramBin struct {
	Low   float64 `json:"low"`
	High  float64 `json:"high"`
	Count int     `json:"count"`
}

// RatingHistogram bins ratings into equal-width bins over the observed
// range. A single-valued subset collapses into one bin.
func RatingHistogram(products []domain.Product, bins int) []HistogramBin {
	if len(products) == 0 || bins <= 0 {
		return nil
	}

	min, max := products[0].Rating, products[0].Rating
	for _, p := range products[1:] {
		if p.Rating < min {
			min = p.Rating
		}
		if p.Rating > max {
			max = p.Rating
		}
	}
	if min == max {
		return []HistogramBin{{Low: min, High: max, Count: len(products)}}
	}

	width := (max - min) / float64(bins)
	out := make([]HistogramBin, bins)
	for i := range out {
		out[i] = HistogramBin{Low: min + float64(i)*width, High: min + float64(i+1)*width}
	}
	for _, p := range products {
		idx := int((p.Rating - min) / width)
		if idx >= bins {
			idx = bins - 1
		}
		out[idx].Count++
	}
	return out
}

// RatingBuckets holds the extreme-rating partitions used by the word
// analysis. Thresholds may coincide for small or skewed samples; in that
// degenerate case a row can appear in both partitions.
type RatingBuckets struct {
	Percentile     float64          `json:"percentile"`
	LowerThreshold float64          `json:"lower_threshold"`
	UpperThreshold float64          `json:"upper_threshold"`
	Top            []domain.Product `json:"-"`
	Bottom         []domain.Product `json:"-"`
}

// BucketByRating partitions the subset into top (rating >= upper threshold)
// and bottom (rating <= lower threshold) groups for percentile p, keeping
// only rows with non-empty text in the selected column.
func BucketByRating(products []domain.Product, p float64, column domain.TextColumn) RatingBuckets {
	buckets := RatingBuckets{Percentile: p}
	if len(products) == 0 {
		return buckets
	}

	ratings := make([]float64, len(products))
	for i, prod := range products {
		ratings[i] = prod.Rating
	}
	buckets.LowerThreshold = Percentile(ratings, p)
	buckets.UpperThreshold = Percentile(ratings, 100-p)

	for _, prod := range products {
		if strings.TrimSpace(column.Text(prod)) == "" {
			continue
		}
		if prod.Rating >= buckets.UpperThreshold {
			buckets.Top = append(buckets.Top, prod)
		}
		if prod.Rating <= buckets.LowerThreshold {
			buckets.Bottom = append(buckets.Bottom, prod)
		}
	}
	return buckets
}
