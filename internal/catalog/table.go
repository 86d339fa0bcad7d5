package catalog

import (
	"log/slog"
	"sort"

	"dashpulse/pkg/contracts/domain"
)

// RawProduct is one spreadsheet row before cleaning. All fields are the
// literal cell contents.
type RawProduct struct {
	ID              string
	Name            string
	Category        string
	DiscountedPrice string
	ActualPrice     string
	DiscountPercent string
	Rating          string
	RatingCount     string
	AboutProduct    string
	ReviewContent   string
}

// LoadReport summarizes what cleaning did to the source rows. Data-quality
// problems are reported here and logged once at load time rather than
// surfacing row by row during recomputation.
type LoadReport struct {
	TotalRows         int `json:"total_rows"`
	Loaded            int `json:"loaded"`
	ExcludedSentinel  int `json:"excluded_sentinel"`
	MalformedCurrency int `json:"malformed_currency"`
	MalformedRating   int `json:"malformed_rating"`
	MalformedPercent  int `json:"malformed_percentage"`
}

// Dropped returns the number of source rows absent from the cleaned table.
func (r LoadReport) Dropped() int {
	return r.TotalRows - r.Loaded
}

// Table is the cleaned, immutable product table. Filtering produces new
// row slices; the table itself is never mutated after construction.
type Table struct {
	products []domain.Product
}

// NewTable wraps cleaned products in a Table.
func NewTable(products []domain.Product) *Table {
	return &Table{products: products}
}

// Clean converts raw rows into a Table, applying the per-column cleaning
// rules. Sentinel-rating rows are excluded. Currency and rating parse
// failures drop the row and are counted as data-quality errors; percentage
// failures coerce to zero and count rows are always lenient.
func Clean(rows []RawProduct, logger *slog.Logger) (*Table, LoadReport) {
	if logger == nil {
		logger = slog.Default()
	}

	report := LoadReport{TotalRows: len(rows)}
	products := make([]domain.Product, 0, len(rows))

	for _, row := range rows {
		rating, err := CleanRating(row.Rating)
		if err != nil {
			if err == ErrRatingExcluded {
				report.ExcludedSentinel++
			} else {
				report.MalformedRating++
			}
			continue
		}

		actual, err := CleanCurrency(row.ActualPrice)
		if err != nil {
			report.MalformedCurrency++
			continue
		}

		discounted, err := CleanCurrency(row.DiscountedPrice)
		if err != nil {
			report.MalformedCurrency++
			continue
		}

		discount, err := CleanPercent(row.DiscountPercent)
		if err != nil {
			report.MalformedPercent++
			discount = 0
		}

		products = append(products, domain.Product{
			ID:              row.ID,
			Name:            row.Name,
			Category:        row.Category,
			BroadCategory:   BroadCategory(row.Category),
			ActualPrice:     actual,
			DiscountedPrice: discounted,
			DiscountPercent: discount,
			Rating:          rating,
			RatingCount:     CleanCount(row.RatingCount),
			AboutProduct:    row.AboutProduct,
			ReviewContent:   row.ReviewContent,
		})
	}

	report.Loaded = len(products)

	// Schema-mismatch signals are logged once here, not during recompute.
	if report.MalformedCurrency > 0 || report.MalformedRating > 0 {
		logger.Error("data-quality errors while cleaning catalog",
			slog.Int("malformed_currency", report.MalformedCurrency),
			slog.Int("malformed_rating", report.MalformedRating))
	}
	logger.Info("catalog cleaned",
		slog.Int("total_rows", report.TotalRows),
		slog.Int("loaded", report.Loaded),
		slog.Int("excluded_sentinel", report.ExcludedSentinel),
		slog.Int("malformed_percentage", report.MalformedPercent))

	return NewTable(products), report
}

// Products returns the cleaned rows. Callers must treat the slice as
// read-only.
func (t *Table) Products() []domain.Product {
	return t.products
}

// Len returns the number of cleaned rows.
func (t *Table) Len() int {
	return len(t.products)
}

// PriceBounds returns the min and max actual price over the table.
func (t *Table) PriceBounds() (min, max float64) {
	if len(t.products) == 0 {
		return 0, 0
	}
	min, max = t.products[0].ActualPrice, t.products[0].ActualPrice
	for _, p := range t.products[1:] {
		if p.ActualPrice < min {
			min = p.ActualPrice
		}
		if p.ActualPrice > max {
			max = p.ActualPrice
		}
	}
	return min, max
}

// RatingBounds returns the min and max rating over the table.
func (t *Table) RatingBounds() (min, max float64) {
	if len(t.products) == 0 {
		return 0, 0
	}
	min, max = t.products[0].Rating, t.products[0].Rating
	for _, p := range t.products[1:] {
		if p.Rating < min {
			min = p.Rating
		}
		if p.Rating > max {
			max = p.Rating
		}
	}
	return min, max
}

// BroadCategories returns the sorted distinct broad categories.
func (t *Table) BroadCategories() []string {
	seen := make(map[string]struct{})
	for _, p := range t.products {
		seen[p.BroadCategory] = struct{}{}
	}
	categories := make([]string, 0, len(seen))
	for c := range seen {
		categories = append(categories, c)
	}
	sort.Strings(categories)
	return categories
}
