// Package exporter writes filtered dashboard subsets as CSV, either to an
// HTTP response stream or to the exports directory.
package exporter

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"dashpulse/internal/services"
	"dashpulse/pkg/contracts/domain"
)

// utf8BOM helps Excel recognize UTF-8 content.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// WriteOptions configures CSV writing behavior
type WriteOptions struct {
	Headers   []string
	Records   [][]string
	BOMPrefix bool
}

// Write streams a CSV document to w.
func Write(w io.Writer, options WriteOptions) error {
	if options.BOMPrefix {
		if _, err := w.Write(utf8BOM); err != nil {
			return fmt.Errorf("failed to write BOM: %w", err)
		}
	}

	writer := csv.NewWriter(w)

	if len(options.Headers) > 0 {
		if err := writer.Write(options.Headers); err != nil {
			return fmt.Errorf("failed to write headers: %w", err)
		}
	}
	for i, record := range options.Records {
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// CSVWriter writes CSV files into the exports directory
type CSVWriter struct {
	dir    string
	logger *slog.Logger
}

// NewCSVWriter creates a new CSV writer rooted at dir
func NewCSVWriter(dir string, logger *slog.Logger) *CSVWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CSVWriter{dir: dir, logger: logger}
}

// WriteFile writes a CSV file under the exports directory.
func (w *CSVWriter) WriteFile(filename string, options WriteOptions) error {
	fullPath := filepath.Join(w.dir, filepath.Base(filename))

	w.logger.Info("writing CSV export",
		slog.String("path", fullPath),
		slog.Int("record_count", len(options.Records)))

	if err := os.MkdirAll(w.dir, 0755); err != nil {
		return fmt.Errorf("failed to create exports directory: %w", err)
	}

	file, err := os.OpenFile(fullPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return Write(file, options)
}

// ProductOptions converts a filtered product subset into CSV options.
func ProductOptions(products []domain.Product, withBOM bool) WriteOptions {
	records := make([][]string, len(products))
	for i, p := range products {
		records[i] = []string{
			p.ID,
			p.Name,
			p.Category,
			p.BroadCategory,
			strconv.FormatFloat(p.ActualPrice, 'f', 2, 64),
			strconv.FormatFloat(p.DiscountedPrice, 'f', 2, 64),
			strconv.FormatFloat(p.DiscountPercent, 'f', 1, 64),
			strconv.FormatFloat(p.Rating, 'f', 1, 64),
			strconv.FormatInt(p.RatingCount, 10),
		}
	}
	return WriteOptions{
		Headers: []string{
			"product_id", "product_name", "category", "broad_category",
			"actual_price", "discounted_price", "discount_percentage",
			"rating", "rating_count",
		},
		Records:   records,
		BOMPrefix: withBOM,
	}
}

// OutageOptions converts a formatted outage table into CSV options.
func OutageOptions(rows []services.OutageRow, withBOM bool) WriteOptions {
	records := make([][]string, len(rows))
	for i, r := range rows {
		records[i] = []string{
			strconv.FormatInt(r.OutageID, 10),
			r.Suburb,
			r.Transformer,
			strconv.FormatInt(r.Customers, 10),
			r.StartTime,
			r.EndTime,
			r.Status,
			strconv.FormatFloat(r.DurationMinutes, 'f', 0, 64),
		}
	}
	return WriteOptions{
		Headers: []string{
			"outage_id", "suburb", "transformer_name",
			"customers_on_transformer", "start_time", "end_time",
			"status", "duration_minutes",
		},
		Records:   records,
		BOMPrefix: withBOM,
	}
}
