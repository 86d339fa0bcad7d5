package catalog

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Column headers expected in the catalog workbook. Matching is
// case-insensitive and tolerates surrounding whitespace.
var catalogColumns = []string{
	"product_id",
	"product_name",
	"category",
	"discounted_price",
	"actual_price",
	"discount_percentage",
	"rating",
	"rating_count",
	"about_product",
	"review_content",
}

// requiredColumns must be present for a sheet to qualify as catalog data.
var requiredColumns = []string{"product_id", "product_name", "category", "actual_price", "rating"}

// LoadWorkbook reads the catalog Excel workbook and returns the cleaned
// table. The file is read once at startup; every later recomputation works
// off the in-memory table.
func LoadWorkbook(filePath string, logger *slog.Logger) (*Table, LoadReport, error) {
	if logger == nil {
		logger = slog.Default()
	}

	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, LoadReport{}, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	rows, sheetName, columnMap, err := findCatalogSheet(f)
	if err != nil {
		return nil, LoadReport{}, err
	}

	logger.Info("found catalog data",
		slog.String("file", filePath),
		slog.String("sheet_name", sheetName),
		slog.Int("total_rows", len(rows)))

	raw := make([]RawProduct, 0, len(rows))
	for i, row := range rows {
		if i == 0 || isEmptyRow(row) {
			continue
		}
		raw = append(raw, RawProduct{
			ID:              field(row, columnMap, "product_id"),
			Name:            field(row, columnMap, "product_name"),
			Category:        field(row, columnMap, "category"),
			DiscountedPrice: field(row, columnMap, "discounted_price"),
			ActualPrice:     field(row, columnMap, "actual_price"),
			DiscountPercent: field(row, columnMap, "discount_percentage"),
			Rating:          field(row, columnMap, "rating"),
			RatingCount:     field(row, columnMap, "rating_count"),
			AboutProduct:    field(row, columnMap, "about_product"),
			ReviewContent:   field(row, columnMap, "review_content"),
		})
	}

	table, report := Clean(raw, logger)
	return table, report, nil
}

// findCatalogSheet scans the workbook for a sheet whose first row carries the
// catalog headers and maps column names to positions.
func findCatalogSheet(f *excelize.File) ([][]string, string, map[string]int, error) {
	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name)
		if err != nil || len(rows) < 2 {
			continue
		}

		columnMap := mapColumns(rows[0])
		if hasRequiredColumns(columnMap) {
			return rows, name, columnMap, nil
		}
	}
	return nil, "", nil, fmt.Errorf("could not find catalog data sheet in workbook")
}

// mapColumns maps recognized header names to their column index.
func mapColumns(header []string) map[string]int {
	columnMap := make(map[string]int)
	for i, h := range header {
		normalized := strings.ToLower(strings.TrimSpace(h))
		for _, want := range catalogColumns {
			if normalized == want {
				columnMap[want] = i
				break
			}
		}
	}
	return columnMap
}

func hasRequiredColumns(columnMap map[string]int) bool {
	for _, col := range requiredColumns {
		if _, ok := columnMap[col]; !ok {
			return false
		}
	}
	return true
}

// field returns the trimmed cell for a mapped column, tolerating short rows
// and absent optional columns. Excelize drops trailing empty cells, so rows
// can be shorter than the header.
func field(row []string, columnMap map[string]int, name string) string {
	idx, ok := columnMap[name]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func isEmptyRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
