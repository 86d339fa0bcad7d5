package domain

import "time"

// OutageStatus is the lifecycle state of an outage record.
type OutageStatus string

const (
	OutageOpen   OutageStatus = "Open"
	OutageClosed OutageStatus = "Closed"
)

// Outage is a single outage-transformer pair. OutageID is not unique: an
// outage that takes out several transformers appears once per transformer.
//
// DurationMinutes is the authoritative duration for every aggregate; it is
// recorded by the network operator and may diverge from EndTime - StartTime.
type Outage struct {
	OutageID        int64        `json:"outage_id"`
	Suburb          string       `json:"suburb"`
	TransformerName string       `json:"transformer_name"`
	CustomerCount   int64        `json:"customers_on_transformer"`
	StartTime       time.Time    `json:"start_time"`
	EndTime         *time.Time   `json:"end_time,omitempty"`
	Status          OutageStatus `json:"status"`
	DurationMinutes float64      `json:"duration_minutes"`
}

// Ongoing reports whether the outage has no recorded end.
func (o Outage) Ongoing() bool {
	return o.EndTime == nil
}

// EffectiveEnd returns the end timestamp for display purposes, substituting
// now for an ongoing outage. It never feeds DurationMinutes.
func (o Outage) EffectiveEnd(now time.Time) time.Time {
	if o.EndTime == nil {
		return now
	}
	return *o.EndTime
}

// SuburbLimit is the maximum permitted cumulative outage duration for a
// suburb, in minutes.
type SuburbLimit struct {
	Suburb        string  `json:"suburb"`
	DurationLimit float64 `json:"duration_limit"`
}
