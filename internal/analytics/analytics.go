// Package analytics derives per-day sales figures from a snapshot of orders.
// Nothing here is stored; the summary is recomputed on demand.
package analytics

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/MikeMC777/pizzeria-storefront/internal/order"
)

type DailySummary struct {
	Date           string          `json:"date"`
	TotalOrders    int             `json:"total_orders"`
	TotalRevenue   int64           `json:"total_revenue"`
	OrdersByStatus map[string]int  `json:"orders_by_status"`
	AverageTicket  decimal.Decimal `json:"average_ticket"`
}

// DayWindow returns the [start, end) bounds of the calendar day containing
// asOf in the given location.
func DayWindow(asOf time.Time, loc *time.Location) (time.Time, time.Time) {
	local := asOf.In(loc)
	start := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	return start, start.AddDate(0, 0, 1)
}

// Summarize rolls up the orders created within the calendar day of asOf.
// Policy: cancelled orders count toward total_orders and the by-status
// breakdown, but not toward revenue or the average ticket.
func Summarize(orders []order.Order, asOf time.Time, loc *time.Location) DailySummary {
	start, end := DayWindow(asOf, loc)

	s := DailySummary{
		Date:           start.Format("2006-01-02"),
		OrdersByStatus: map[string]int{},
		AverageTicket:  decimal.Zero,
	}
	billed := 0
	for _, o := range orders {
		created := o.CreatedAt.In(loc)
		if created.Before(start) || !created.Before(end) {
			continue
		}
		s.TotalOrders++
		s.OrdersByStatus[string(o.Status)]++
		if o.Status != order.StatusCancelled {
			s.TotalRevenue += o.Total
			billed++
		}
	}
	if billed > 0 {
		s.AverageTicket = decimal.NewFromInt(s.TotalRevenue).
			DivRound(decimal.NewFromInt(int64(billed)), 2)
	}
	return s
}
