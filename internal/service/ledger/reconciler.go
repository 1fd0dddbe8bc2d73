// Package ledger owns the daily stock ledger: loading and creating rows,
// recomputing derived fields, and serializing writers per ledger key.
package ledger

import (
	"time"

	"github.com/dudhwala/backend/internal/domain/models"
)

// NormalizeDate truncates a timestamp to midnight UTC so it can serve as part
// of a ledger key. All event dates pass through here before they touch storage.
func NormalizeDate(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Reconcile recomputes the derived fields from the base counters. It must run
// after every counter mutation, before the row is persisted. Both derived
// values floor at zero.
func Reconcile(stock *models.DailyStock) {
	stock.SellerRemainingMilk = stock.SellerTotalAssign - stock.SellerSoldQty
	if stock.SellerRemainingMilk < 0 {
		stock.SellerRemainingMilk = 0
	}

	stock.ClosingStock = stock.TotalProcured - stock.SellerSoldQty - stock.DirectSoldQty - stock.Wastage
	if stock.ClosingStock < 0 {
		stock.ClosingStock = 0
	}
}
