package exporter

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dashpulse/internal/services"
	"dashpulse/pkg/contracts/domain"
)

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	err := Write(&buf, WriteOptions{
		Headers: []string{"a", "b"},
		Records: [][]string{{"1", "2"}, {"3", "4"}},
	})
	require.NoError(t, err)

	reader := csv.NewReader(&buf)
	rows, err := reader.ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"a", "b"}, rows[0])
	assert.Equal(t, []string{"3", "4"}, rows[2])
}

func TestWriteBOMPrefix(t *testing.T) {
	var buf bytes.Buffer
	err := Write(&buf, WriteOptions{
		Headers:   []string{"a"},
		BOMPrefix: true,
	})
	require.NoError(t, err)

	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte{0xEF, 0xBB, 0xBF}))
}

func TestWriteQuotesEmbeddedCommas(t *testing.T) {
	var buf bytes.Buffer
	err := Write(&buf, WriteOptions{
		Headers: []string{"name"},
		Records: [][]string{{"Cable, braided"}},
	})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), `"Cable, braided"`)
}

func TestCSVWriterWriteFile(t *testing.T) {
	dir := t.TempDir()
	w := NewCSVWriter(dir, nil)

	err := w.WriteFile("export.csv", WriteOptions{
		Headers: []string{"a"},
		Records: [][]string{{"1"}},
	})
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "export.csv"))
	require.NoError(t, err)
	assert.Equal(t, "a\n1\n", string(data))
}

func TestCSVWriterStripsPathComponents(t *testing.T) {
	dir := t.TempDir()
	w := NewCSVWriter(dir, nil)

	require.NoError(t, w.WriteFile("../escape.csv", WriteOptions{Headers: []string{"a"}}))

	_, err := os.Stat(filepath.Join(dir, "escape.csv"))
	assert.NoError(t, err)
}

func TestProductOptions(t *testing.T) {
	products := []domain.Product{
		{ID: "P1", Name: "Cable", Category: "Electronics|Cables", BroadCategory: "Electronics", ActualPrice: 499, DiscountedPrice: 299, DiscountPercent: 40, Rating: 4.1, RatingCount: 1200},
	}

	opts := ProductOptions(products, true)

	assert.True(t, opts.BOMPrefix)
	assert.Equal(t, "product_id", opts.Headers[0])
	require.Len(t, opts.Records, 1)
	assert.Equal(t, []string{"P1", "Cable", "Electronics|Cables", "Electronics", "499.00", "299.00", "40.0", "4.1", "1200"}, opts.Records[0])
}

func TestOutageOptions(t *testing.T) {
	rows := []services.OutageRow{
		{OutageID: 13349, Suburb: "Ponsonby", Transformer: "KCN ME01", Customers: 13, StartTime: "2024-08-31 20:00", EndTime: "Ongoing", Status: "Open", DurationMinutes: 300},
	}

	opts := OutageOptions(rows, false)

	assert.False(t, opts.BOMPrefix)
	require.Len(t, opts.Records, 1)
	record := opts.Records[0]
	assert.Equal(t, "13349", record[0])
	assert.Equal(t, "Ongoing", record[5])
	assert.Equal(t, "300", record[7])
	assert.True(t, strings.HasPrefix(record[4], "2024-08-31"))
}
