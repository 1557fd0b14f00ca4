package admin

import (
	"testing"
	"time"

	"github.com/modaline/storefront/internal/orders"
	"github.com/stretchr/testify/assert"
)

func fixture(now time.Time) []orders.Order {
	return []orders.Order{
		{OrderNumber: "ORD-1", Status: orders.StatusPending, Total: 100.10, CreatedAt: now.Add(-2 * time.Hour)},
		{OrderNumber: "ORD-2", Status: orders.StatusProcessing, Total: 50.25, CreatedAt: now.Add(-26 * time.Hour)},
		{OrderNumber: "ORD-3", Status: orders.StatusCancelled, Total: 999.99, CreatedAt: now.Add(-3 * time.Hour)},
		{OrderNumber: "ORD-4", Status: orders.StatusDelivered, Total: 75.00, CreatedAt: now.Add(-40 * 24 * time.Hour)},
	}
}

func TestRevenue_ExcludesCancelled(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	got := Revenue(fixture(now))
	// 100.10 + 50.25 + 75.00, never the cancelled 999.99
	assert.Equal(t, 225.35, got)
}

func TestStatusCounts(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	got := StatusCounts(fixture(now))
	assert.Equal(t, map[string]int{
		orders.StatusPending:    1,
		orders.StatusProcessing: 1,
		orders.StatusCancelled:  1,
		orders.StatusDelivered:  1,
	}, got)
}

func TestRecentCount_TrailingWindow(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, 2, RecentCount(fixture(now), now, 24*time.Hour))
	assert.Equal(t, 3, RecentCount(fixture(now), now, RecentWindow))
}

func TestRevenueSeries_DailyBucketsAscending(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	got := RevenueSeries(fixture(now), Daily)

	// three non-cancelled orders on three distinct days
	assert.Len(t, got, 3)
	for i := 1; i < len(got); i++ {
		assert.Less(t, got[i-1].Period, got[i].Period)
	}
	last := got[len(got)-1]
	assert.Equal(t, "2026-03-14", last.Period)
	assert.Equal(t, 100.10, last.Revenue)
	assert.Equal(t, 1, last.Orders)
}

func TestRevenueSeries_MonthlyBuckets(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	got := RevenueSeries(fixture(now), Monthly)

	assert.Equal(t, []SeriesPoint{
		{Period: "2026-02", Revenue: 75.00, Orders: 1},
		{Period: "2026-03", Revenue: 150.35, Orders: 2},
	}, got)
}

func TestSummarize(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	got := Summarize(fixture(now), now)

	assert.Equal(t, 4, got.TotalOrders)
	assert.Equal(t, 225.35, got.TotalRevenue)
	assert.Equal(t, 3, got.RecentOrders)
	assert.Len(t, got.Daily, 3)
	assert.Len(t, got.Monthly, 2)
}
