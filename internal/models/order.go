package models

import (
	"math"
	"sort"
	"time"
)

// OrderRecord represents a single day of order volume
type OrderRecord struct {
	Date   time.Time `json:"date" db:"order_date"`
	Orders int       `json:"orders" db:"orders"`
}

// WeeklyTrend aggregates orders for one Sunday-aligned week
type WeeklyTrend struct {
	WeekStart     time.Time `json:"week"`
	AverageOrders int       `json:"average_orders"`
	TotalOrders   int       `json:"total_orders"`
}

// OrderHistory is an immutable, date-sorted collection of order records
// with derived aggregates. Build it once per ingested batch; a reload
// replaces the whole history.
type OrderHistory struct {
	records []OrderRecord
}

// NewOrderHistory builds an OrderHistory from raw records, sorting them
// ascending by date. The input slice is not retained.
func NewOrderHistory(records []OrderRecord) *OrderHistory {
	sorted := make([]OrderRecord, len(records))
	copy(sorted, records)

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	return &OrderHistory{records: sorted}
}

// Records returns the underlying records in ascending date order.
func (h *OrderHistory) Records() []OrderRecord {
	return h.records
}

// Len returns the number of records in the history.
func (h *OrderHistory) Len() int {
	return len(h.records)
}

// TotalOrders returns the sum of orders across all records.
func (h *OrderHistory) TotalOrders() int {
	total := 0
	for _, r := range h.records {
		total += r.Orders
	}
	return total
}

// DailyAverage returns the rounded mean of daily orders, 0 for an
// empty history.
func (h *OrderHistory) DailyAverage() int {
	if len(h.records) == 0 {
		return 0
	}
	return int(math.Round(float64(h.TotalOrders()) / float64(len(h.records))))
}

// WeeklyTrends groups records by the Sunday-aligned start of their week
// and returns per-week average and total orders. Weeks appear in
// first-seen order; records are already date-sorted, so the output is
// chronological.
func (h *OrderHistory) WeeklyTrends() []WeeklyTrend {
	type weekGroup struct {
		total int
		count int
	}

	groups := make(map[time.Time]*weekGroup)
	order := make([]time.Time, 0)

	for _, r := range h.records {
		weekStart := WeekStartOf(r.Date)
		g, ok := groups[weekStart]
		if !ok {
			g = &weekGroup{}
			groups[weekStart] = g
			order = append(order, weekStart)
		}
		g.total += r.Orders
		g.count++
	}

	trends := make([]WeeklyTrend, 0, len(order))
	for _, weekStart := range order {
		g := groups[weekStart]
		trends = append(trends, WeeklyTrend{
			WeekStart:     weekStart,
			AverageOrders: int(math.Round(float64(g.total) / float64(g.count))),
			TotalOrders:   g.total,
		})
	}

	return trends
}

// PeakDays returns the n records with the highest order counts in
// descending order. Ties preserve the original record order.
func (h *OrderHistory) PeakDays(n int) []OrderRecord {
	if len(h.records) == 0 {
		return []OrderRecord{}
	}

	sorted := make([]OrderRecord, len(h.records))
	copy(sorted, h.records)

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Orders > sorted[j].Orders
	})

	if n > len(sorted) {
		n = len(sorted)
	}
	return sorted[:n]
}

// LatestOrders returns the most recent day's order count, falling back
// to the daily average for an empty history.
func (h *OrderHistory) LatestOrders() int {
	if len(h.records) == 0 {
		return h.DailyAverage()
	}
	return h.records[len(h.records)-1].Orders
}

// WeekStartOf returns the Sunday-aligned start of the week containing t,
// truncated to midnight UTC.
func WeekStartOf(t time.Time) time.Time {
	day := t.UTC()
	start := day.AddDate(0, 0, -int(day.Weekday()))
	return time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
}
