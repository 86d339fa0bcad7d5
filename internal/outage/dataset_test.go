package outage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dashpulse/pkg/contracts/domain"
)

func TestSeedDataset(t *testing.T) {
	d := SeedDataset(nil)

	assert.Equal(t, 6, d.Len())
	assert.Equal(t, []string{"Albany", "Ponsonby", "Remuera"}, d.Suburbs())

	limit, ok := d.Limit("Ponsonby")
	require.True(t, ok)
	assert.InDelta(t, 500, limit, 1e-9)

	limit, ok = d.Limit("Albany")
	require.True(t, ok)
	assert.InDelta(t, 100, limit, 1e-9)

	limit, ok = d.Limit("Remuera")
	require.True(t, ok)
	assert.InDelta(t, 150, limit, 1e-9)

	_, ok = d.Limit("Takapuna")
	assert.False(t, ok)
}

func TestSeedDatasetOngoingRow(t *testing.T) {
	d := SeedDataset(nil)

	var ongoing []domain.Outage
	for _, o := range d.Outages() {
		if o.Ongoing() {
			ongoing = append(ongoing, o)
		}
	}

	require.Len(t, ongoing, 1)
	assert.Equal(t, int64(13349), ongoing[0].OutageID)
	assert.Nil(t, ongoing[0].EndTime)
	assert.Equal(t, domain.OutageOpen, ongoing[0].Status)
	assert.InDelta(t, 300, ongoing[0].DurationMinutes, 1e-9)
}

func TestDateBounds(t *testing.T) {
	d := SeedDataset(nil)

	min, max := d.DateBounds()
	assert.Equal(t, time.June, min.Month())
	assert.Equal(t, 25, min.Day())
	assert.Equal(t, time.August, max.Month())
	assert.Equal(t, 31, max.Day())
}

func TestDateBoundsEmpty(t *testing.T) {
	d := NewDataset(nil, nil, nil)
	min, max := d.DateBounds()
	assert.True(t, min.IsZero())
	assert.True(t, max.IsZero())
}

func TestNewDatasetLeftJoin(t *testing.T) {
	// a suburb without a limit record stays in the dataset, unevaluable
	outages := []domain.Outage{
		{OutageID: 1, Suburb: "Takapuna", TransformerName: "TK01", StartTime: time.Now(), Status: domain.OutageClosed, DurationMinutes: 45},
	}
	d := NewDataset(outages, nil, nil)

	assert.Equal(t, 1, d.Len())
	_, ok := d.Limit("Takapuna")
	assert.False(t, ok)
}
