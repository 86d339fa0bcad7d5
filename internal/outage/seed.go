package outage

import (
	"fmt"
	"log/slog"
	"time"

	"dashpulse/pkg/contracts/domain"
)

// timeLayout matches the operator export format (day first, no seconds).
const timeLayout = "2/1/2006 15:04"

// nzLocation anchors the seed timestamps to the network's local time.
var nzLocation = mustLoadLocation("Pacific/Auckland")

func mustLoadLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.Local
	}
	return loc
}

func mustParseTime(value string) time.Time {
	t, err := time.ParseInLocation(timeLayout, value, nzLocation)
	if err != nil {
		panic(fmt.Sprintf("invalid seed timestamp %q: %v", value, err))
	}
	return t
}

func timePtr(value string) *time.Time {
	t := mustParseTime(value)
	return &t
}

// SeedDataset returns the inline outage and limit records. DurationMinutes
// is the operator-recorded value and intentionally does not always equal
// end minus start.
func SeedDataset(logger *slog.Logger) *Dataset {
	outages := []domain.Outage{
		{
			OutageID:        12345,
			Suburb:          "Ponsonby",
			TransformerName: "KCN ME01",
			CustomerCount:   1200,
			StartTime:       mustParseTime("25/06/2024 8:00"),
			EndTime:         timePtr("25/06/2024 9:00"),
			Status:          domain.OutageClosed,
			DurationMinutes: 60,
		},
		{
			OutageID:        12346,
			Suburb:          "Albany",
			TransformerName: "KNN CEP1",
			CustomerCount:   500,
			StartTime:       mustParseTime("25/07/2024 8:30"),
			EndTime:         timePtr("25/07/2024 10:30"),
			Status:          domain.OutageClosed,
			DurationMinutes: 120,
		},
		{
			OutageID:        12347,
			Suburb:          "Remuera",
			TransformerName: "REMU MK01",
			CustomerCount:   30,
			StartTime:       mustParseTime("27/08/2024 8:30"),
			EndTime:         timePtr("27/08/2024 10:30"),
			Status:          domain.OutageClosed,
			DurationMinutes: 120,
		},
		{
			OutageID:        12347,
			Suburb:          "Remuera",
			TransformerName: "REMU MK09",
			CustomerCount:   2000,
			StartTime:       mustParseTime("27/08/2024 8:30"),
			EndTime:         timePtr("27/08/2024 9:00"),
			Status:          domain.OutageClosed,
			DurationMinutes: 30,
		},
		{
			OutageID:        12347,
			Suburb:          "Remuera",
			TransformerName: "REMU MU78",
			CustomerCount:   100,
			StartTime:       mustParseTime("27/08/2024 8:30"),
			EndTime:         timePtr("27/08/2024 8:50"),
			Status:          domain.OutageClosed,
			DurationMinutes: 20,
		},
		{
			OutageID:        13349,
			Suburb:          "Ponsonby",
			TransformerName: "KCN ME01",
			CustomerCount:   13,
			StartTime:       mustParseTime("31/08/2024 20:00"),
			EndTime:         nil,
			Status:          domain.OutageOpen,
			DurationMinutes: 300,
		},
	}

	limits := []domain.SuburbLimit{
		{Suburb: "Ponsonby", DurationLimit: 500},
		{Suburb: "Albany", DurationLimit: 100},
		{Suburb: "Remuera", DurationLimit: 150},
	}

	return NewDataset(outages, limits, logger)
}
