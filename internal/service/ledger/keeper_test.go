package ledger

import (
	"context"
	"sync"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/dudhwala/backend/internal/domain/models"
	"github.com/dudhwala/backend/internal/repository/memory"
)

func TestKeeperLoadOrCreateIsLazyAndStable(t *testing.T) {
	repo := memory.NewStockRepository()
	keeper := NewKeeper(repo, nil)
	ctx := context.Background()

	key := Key{StoreID: primitive.NewObjectID(), Date: NormalizeDate(time.Now()), MilkType: models.MilkTypeCow}

	if row, err := keeper.Get(ctx, key); err != nil || row != nil {
		t.Fatalf("Get before create = (%v, %v), want (nil, nil)", row, err)
	}

	first, err := keeper.LoadOrCreate(ctx, key)
	if err != nil {
		t.Fatalf("LoadOrCreate: %v", err)
	}
	if first.TotalProcured != 0 || first.ClosingStock != 0 {
		t.Fatalf("new row not zero-valued: %+v", first)
	}

	second, err := keeper.LoadOrCreate(ctx, key)
	if err != nil {
		t.Fatalf("LoadOrCreate again: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("LoadOrCreate created a second row: %s vs %s", second.ID.Hex(), first.ID.Hex())
	}
}

func TestKeeperSaveReconciledPersistsDerivedFields(t *testing.T) {
	repo := memory.NewStockRepository()
	keeper := NewKeeper(repo, nil)
	ctx := context.Background()

	key := Key{StoreID: primitive.NewObjectID(), Date: NormalizeDate(time.Now()), MilkType: models.MilkTypeBuffalo}

	stock, err := keeper.LoadOrCreate(ctx, key)
	if err != nil {
		t.Fatalf("LoadOrCreate: %v", err)
	}

	stock.TotalProcured = 80
	stock.SellerTotalAssign = 30
	stock.SellerSoldQty = 10
	if err := keeper.SaveReconciled(ctx, stock); err != nil {
		t.Fatalf("SaveReconciled: %v", err)
	}

	persisted, err := keeper.Get(ctx, key)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if persisted.SellerRemainingMilk != 20 {
		t.Errorf("sellerRemainingMilk = %g, want 20", persisted.SellerRemainingMilk)
	}
	if persisted.ClosingStock != 70 {
		t.Errorf("closingStock = %g, want 70", persisted.ClosingStock)
	}
}

func TestStockForDateReturnsZeroDefaultsForMissingRows(t *testing.T) {
	repo := memory.NewStockRepository()
	keeper := NewKeeper(repo, nil)
	ctx := context.Background()

	storeID := primitive.NewObjectID()
	now := time.Now()

	day, err := keeper.StockForDate(ctx, storeID, now)
	if err != nil {
		t.Fatalf("StockForDate: %v", err)
	}

	empty := models.StockSnapshot{}
	empty.MilkType = models.MilkTypeCow
	if day.Cow != empty {
		t.Errorf("cow snapshot = %+v, want zero defaults", day.Cow)
	}
	empty.MilkType = models.MilkTypeBuffalo
	if day.Buffalo != empty {
		t.Errorf("buffalo snapshot = %+v, want zero defaults", day.Buffalo)
	}

	// One row present, the other still defaults.
	key := Key{StoreID: storeID, Date: NormalizeDate(now), MilkType: models.MilkTypeCow}
	stock, err := keeper.LoadOrCreate(ctx, key)
	if err != nil {
		t.Fatalf("LoadOrCreate: %v", err)
	}
	stock.TotalProcured = 55
	if err := keeper.SaveReconciled(ctx, stock); err != nil {
		t.Fatalf("SaveReconciled: %v", err)
	}

	day, err = keeper.StockForDate(ctx, storeID, now)
	if err != nil {
		t.Fatalf("StockForDate: %v", err)
	}
	if day.Cow.TotalProcured != 55 || day.Cow.ClosingStock != 55 {
		t.Errorf("cow snapshot = %+v, want procured/closing 55", day.Cow)
	}
	if day.Buffalo.TotalProcured != 0 {
		t.Errorf("buffalo snapshot = %+v, want zero defaults", day.Buffalo)
	}
}

func TestKeyLockSerializesSameKey(t *testing.T) {
	keeper := NewKeeper(memory.NewStockRepository(), nil)
	key := Key{StoreID: primitive.NewObjectID(), Date: NormalizeDate(time.Now()), MilkType: models.MilkTypeCow}

	var counter int
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := keeper.Lock(key)
			defer unlock()
			counter++
		}()
	}
	wg.Wait()

	if counter != 50 {
		t.Fatalf("counter = %d, want 50", counter)
	}
}

func TestLockPairDoesNotDeadlockOnOppositeOrder(t *testing.T) {
	keeper := NewKeeper(memory.NewStockRepository(), nil)
	storeID := primitive.NewObjectID()
	date := NormalizeDate(time.Now())
	a := Key{StoreID: storeID, Date: date, MilkType: models.MilkTypeCow}
	b := Key{StoreID: storeID, Date: date, MilkType: models.MilkTypeBuffalo}

	done := make(chan struct{})
	go func() {
		defer close(done)
		var wg sync.WaitGroup
		for i := 0; i < 100; i++ {
			wg.Add(2)
			go func() {
				defer wg.Done()
				unlock := keeper.LockPair(a, b)
				unlock()
			}()
			go func() {
				defer wg.Done()
				unlock := keeper.LockPair(b, a)
				unlock()
			}()
		}
		wg.Wait()
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("LockPair deadlocked")
	}
}
