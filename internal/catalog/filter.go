package catalog

import (
	"strings"

	"dashpulse/pkg/contracts/domain"
)

// FilterConfig is the immutable widget state driving one recomputation.
// All active predicates apply conjunctively. The zero value with full-range
// bounds selects every row.
type FilterConfig struct {
	PriceMin   float64  `json:"price_min"`
	PriceMax   float64  `json:"price_max"`
	RatingMin  float64  `json:"rating_min"`
	RatingMax  float64  `json:"rating_max"`
	Categories []string `json:"categories,omitempty"`
	SearchTerm string   `json:"search_term,omitempty"`
}

// DefaultFilter returns a config spanning the whole table: full price and
// rating ranges, all categories, no search term.
func DefaultFilter(t *Table) FilterConfig {
	priceMin, priceMax := t.PriceBounds()
	ratingMin, ratingMax := t.RatingBounds()
	return FilterConfig{
		PriceMin:   priceMin,
		PriceMax:   priceMax,
		RatingMin:  ratingMin,
		RatingMax:  ratingMax,
		Categories: t.BroadCategories(),
	}
}

// Apply returns the rows matching every active predicate. An empty result is
// valid; downstream aggregation degrades to zero-counts.
func Apply(t *Table, cfg FilterConfig) []domain.Product {
	categorySet := make(map[string]struct{}, len(cfg.Categories))
	for _, c := range cfg.Categories {
		categorySet[c] = struct{}{}
	}
	search := strings.ToLower(strings.TrimSpace(cfg.SearchTerm))

	matched := make([]domain.Product, 0, t.Len())
	for _, p := range t.Products() {
		if p.ActualPrice < cfg.PriceMin || p.ActualPrice > cfg.PriceMax {
			continue
		}
		if p.Rating < cfg.RatingMin || p.Rating > cfg.RatingMax {
			continue
		}
		if _, ok := categorySet[p.BroadCategory]; !ok {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(p.Name), search) {
			continue
		}
		matched = append(matched, p)
	}
	return matched
}
