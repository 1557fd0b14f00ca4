package admin

import (
	"sort"
	"time"

	"github.com/modaline/storefront/internal/orders"
	"github.com/shopspring/decimal"
)

// Bucket selects the time granularity of a revenue series.
type Bucket string

const (
	Daily   Bucket = "daily"
	Monthly Bucket = "monthly"
)

// RecentWindow is the trailing window for "recent order" counts.
const RecentWindow = 7 * 24 * time.Hour

// SeriesPoint is one bucket of a revenue series.
type SeriesPoint struct {
	Period  string  `json:"period"`
	Revenue float64 `json:"revenue"`
	Orders  int     `json:"orders"`
}

// Summary is the dashboard payload, recomputed on every request.
type Summary struct {
	TotalOrders  int            `json:"totalOrders"`
	TotalRevenue float64        `json:"totalRevenue"`
	StatusCounts map[string]int `json:"statusCounts"`
	RecentOrders int            `json:"recentOrders"`
	Daily        []SeriesPoint  `json:"daily"`
	Monthly      []SeriesPoint  `json:"monthly"`
}

// Summarize derives the full dashboard view from the order collection.
func Summarize(all []orders.Order, now time.Time) Summary {
	return Summary{
		TotalOrders:  len(all),
		TotalRevenue: Revenue(all),
		StatusCounts: StatusCounts(all),
		RecentOrders: RecentCount(all, now, RecentWindow),
		Daily:        RevenueSeries(all, Daily),
		Monthly:      RevenueSeries(all, Monthly),
	}
}

// Revenue sums order totals, excluding cancelled orders.
func Revenue(all []orders.Order) float64 {
	sum := decimal.Zero
	for _, o := range all {
		if o.Status == orders.StatusCancelled {
			continue
		}
		sum = sum.Add(decimal.NewFromFloat(o.Total))
	}
	f, _ := sum.Float64()
	return f
}

// StatusCounts returns the status histogram over all orders, cancelled included.
func StatusCounts(all []orders.Order) map[string]int {
	out := map[string]int{}
	for _, o := range all {
		out[o.Status]++
	}
	return out
}

// RecentCount counts orders created within the trailing window ending at now.
func RecentCount(all []orders.Order, now time.Time, window time.Duration) int {
	cutoff := now.Add(-window)
	n := 0
	for _, o := range all {
		if o.CreatedAt.After(cutoff) {
			n++
		}
	}
	return n
}

// RevenueSeries buckets non-cancelled revenue by day or month, ascending.
func RevenueSeries(all []orders.Order, b Bucket) []SeriesPoint {
	layout := "2006-01-02"
	if b == Monthly {
		layout = "2006-01"
	}

	revenue := map[string]decimal.Decimal{}
	count := map[string]int{}
	for _, o := range all {
		if o.Status == orders.StatusCancelled {
			continue
		}
		period := o.CreatedAt.Format(layout)
		revenue[period] = revenue[period].Add(decimal.NewFromFloat(o.Total))
		count[period]++
	}

	periods := make([]string, 0, len(revenue))
	for p := range revenue {
		periods = append(periods, p)
	}
	sort.Strings(periods)

	out := make([]SeriesPoint, 0, len(periods))
	for _, p := range periods {
		f, _ := revenue[p].Float64()
		out = append(out, SeriesPoint{Period: p, Revenue: f, Orders: count[p]})
	}
	return out
}
