package ledger

import (
	"testing"
	"time"

	"github.com/dudhwala/backend/internal/domain/models"
)

func TestNormalizeDateTruncatesToMidnightUTC(t *testing.T) {
	in := time.Date(2025, 6, 14, 17, 42, 9, 120, time.FixedZone("IST", 5*3600+1800))
	got := NormalizeDate(in)

	want := time.Date(2025, 6, 14, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("NormalizeDate = %v, want %v", got, want)
	}

	// Normalizing twice is a no-op.
	if again := NormalizeDate(got); !again.Equal(got) {
		t.Fatalf("NormalizeDate not idempotent: %v -> %v", got, again)
	}
}

func TestReconcileDerivesFromBaseCounters(t *testing.T) {
	stock := &models.DailyStock{
		TotalProcured:     100,
		SellerTotalAssign: 40,
		SellerSoldQty:     15,
		DirectSoldQty:     5,
		Wastage:           2,
	}

	Reconcile(stock)

	if stock.SellerRemainingMilk != 25 {
		t.Errorf("sellerRemainingMilk = %g, want 25", stock.SellerRemainingMilk)
	}
	if stock.ClosingStock != 78 {
		t.Errorf("closingStock = %g, want 78", stock.ClosingStock)
	}
}

func TestReconcileFloorsDerivedFieldsAtZero(t *testing.T) {
	stock := &models.DailyStock{
		TotalProcured:     10,
		SellerTotalAssign: 5,
		SellerSoldQty:     30,
		Wastage:           4,
	}

	Reconcile(stock)

	if stock.SellerRemainingMilk != 0 {
		t.Errorf("sellerRemainingMilk = %g, want 0", stock.SellerRemainingMilk)
	}
	if stock.ClosingStock != 0 {
		t.Errorf("closingStock = %g, want 0", stock.ClosingStock)
	}
}

func TestReconcileOverwritesStaleDerivedValues(t *testing.T) {
	// Derived fields are recomputed even if a caller scribbled on them.
	stock := &models.DailyStock{
		TotalProcured:       50,
		SellerTotalAssign:   20,
		SellerSoldQty:       10,
		SellerRemainingMilk: 999,
		ClosingStock:        999,
	}

	Reconcile(stock)

	if stock.SellerRemainingMilk != 10 {
		t.Errorf("sellerRemainingMilk = %g, want 10", stock.SellerRemainingMilk)
	}
	if stock.ClosingStock != 40 {
		t.Errorf("closingStock = %g, want 40", stock.ClosingStock)
	}
}
