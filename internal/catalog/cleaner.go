// Package catalog implements the product-catalog dashboard pipeline: loading
// the source workbook, cleaning raw columns into typed records, filtering on
// user-selected predicates and aggregating the filtered subset.
package catalog

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// RatingSentinel is the invalid-rating marker in the source data. Rows
// carrying it are excluded from the cleaned table, never coerced to zero.
const RatingSentinel = "|"

// ErrRatingExcluded is returned by CleanRating for sentinel rows. Callers
// drop the row from the cleaned table.
var ErrRatingExcluded = errors.New("rating sentinel, row excluded")

// currencySymbols covers the symbols seen in source catalogs. The Amazon
// India export uses the rupee sign throughout.
var currencySymbols = []string{"₹", "$", "€", "£"}

// CleanCurrency strips the currency symbol and thousands separators and
// parses the remainder as a decimal.
func CleanCurrency(raw string) (float64, error) {
	s := strings.TrimSpace(raw)
	for _, sym := range currencySymbols {
		s = strings.ReplaceAll(s, sym, "")
	}
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid currency value %q: %w", raw, err)
	}
	return v, nil
}

// CleanPercent normalizes a discount value to a percentage in [0,100].
//
// A "%"-suffixed string is parsed at face value ("42%" -> 42); a bare
// numeric is treated as a fraction and multiplied by 100 (0.42 -> 42). The
// asymmetry mirrors the source data convention: exported sheets carry the
// suffix, re-derived columns carry fractions. Flagged with product for
// clarification; do not normalize silently.
func CleanPercent(raw string) (float64, error) {
	s := strings.TrimSpace(raw)
	if strings.HasSuffix(s, "%") {
		v, err := strconv.ParseFloat(strings.TrimSpace(strings.TrimSuffix(s, "%")), 64)
		if err != nil {
			return 0, fmt.Errorf("invalid percentage value %q: %w", raw, err)
		}
		return v, nil
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid percentage value %q: %w", raw, err)
	}
	return v * 100, nil
}

// CleanRating parses a rating, rejecting sentinel rows with ErrRatingExcluded.
func CleanRating(raw string) (float64, error) {
	s := strings.TrimSpace(raw)
	if s == RatingSentinel {
		return 0, ErrRatingExcluded
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid rating value %q: %w", raw, err)
	}
	return v, nil
}

// CleanCount parses a thousands-separated count. Non-parseable or negative
// values coerce to 0; this column is lenient by design.
func CleanCount(raw string) int64 {
	s := strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}

// BroadCategory returns the first segment of a pipe-delimited category path.
func BroadCategory(categoryPath string) string {
	if i := strings.Index(categoryPath, "|"); i >= 0 {
		return categoryPath[:i]
	}
	return categoryPath
}
