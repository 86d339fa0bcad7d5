package outage

import (
	"sort"

	"dashpulse/pkg/contracts/domain"
)

// Metrics are the headline numbers for the outage dashboard. Customer
// totals may double-count customers on transformers hit by several outages.
type Metrics struct {
	DistinctOutages int   `json:"distinct_outages"`
	OpenOutages     int   `json:"open_outages"`
	TotalCustomers  int64 `json:"total_customers_affected"`
}

// ComputeMetrics summarizes the filtered subset.
func ComputeMetrics(outages []domain.Outage) Metrics {
	ids := make(map[int64]struct{})
	m := Metrics{}
	for _, o := range outages {
		ids[o.OutageID] = struct{}{}
		if o.Status == domain.OutageOpen {
			m.OpenOutages++
		}
		m.TotalCustomers += o.CustomerCount
	}
	m.DistinctOutages = len(ids)
	return m
}

// SuburbUsage compares a suburb's cumulative outage minutes against its
// duration limit. Limit and Exceeded are nil when the suburb has no limit
// record: absence means "not evaluable", not false.
type SuburbUsage struct {
	Suburb        string   `json:"suburb"`
	TotalMinutes  float64  `json:"total_minutes"`
	CustomerCount int64    `json:"customer_count"`
	Limit         *float64 `json:"duration_limit,omitempty"`
	Exceeded      *bool    `json:"limit_exceeded,omitempty"`
}

// ComputeSuburbUsage sums DurationMinutes per suburb over the subset and
// flags suburbs strictly over their limit. DurationMinutes is authoritative;
// timestamps never feed this computation.
func ComputeSuburbUsage(outages []domain.Outage, d *Dataset) []SuburbUsage {
	type acc struct {
		minutes   float64
		customers int64
	}
	groups := make(map[string]*acc)
	for _, o := range outages {
		g, ok := groups[o.Suburb]
		if !ok {
			g = &acc{}
			groups[o.Suburb] = g
		}
		g.minutes += o.DurationMinutes
		g.customers += o.CustomerCount
	}

	usages := make([]SuburbUsage, 0, len(groups))
	for suburb, g := range groups {
		usage := SuburbUsage{
			Suburb:        suburb,
			TotalMinutes:  g.minutes,
			CustomerCount: g.customers,
		}
		if limit, ok := d.Limit(suburb); ok {
			exceeded := g.minutes > limit
			usage.Limit = &limit
			usage.Exceeded = &exceeded
		}
		usages = append(usages, usage)
	}
	sort.Slice(usages, func(i, j int) bool { return usages[i].Suburb < usages[j].Suburb })
	return usages
}
