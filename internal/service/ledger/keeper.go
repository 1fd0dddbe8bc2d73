package ledger

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/dudhwala/backend/internal/domain/models"
	"github.com/dudhwala/backend/internal/repository/mongodb"
)

// Keeper is the single gateway to ledger rows. Recorder services go through it
// for locking, lazy row creation, and the reconcile-then-persist step.
type Keeper struct {
	stocks mongodb.StockRepository
	locks  *keyLock
	logger *zap.Logger
}

// NewKeeper wires a new ledger keeper.
func NewKeeper(stocks mongodb.StockRepository, logger *zap.Logger) *Keeper {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Keeper{stocks: stocks, locks: newKeyLock(), logger: logger}
}

// Lock serializes a recorder operation on one ledger key. The returned
// function releases the lock.
func (k *Keeper) Lock(key Key) func() {
	return k.locks.Lock(key)
}

// LockPair serializes a recorder operation that touches two ledger keys, such
// as a procurement update moving quantity between milk types.
func (k *Keeper) LockPair(a, b Key) func() {
	return k.locks.LockPair(a, b)
}

// Get returns the ledger row for the key, or nil when none exists yet.
func (k *Keeper) Get(ctx context.Context, key Key) (*models.DailyStock, error) {
	return k.stocks.Find(ctx, key.StoreID, key.Date, key.MilkType)
}

// LoadOrCreate returns the ledger row for the key, creating a zero-valued row
// on first touch. Rows are never deleted afterwards.
func (k *Keeper) LoadOrCreate(ctx context.Context, key Key) (*models.DailyStock, error) {
	return k.stocks.LoadOrCreate(ctx, key.StoreID, key.Date, key.MilkType)
}

// SaveReconciled recomputes the derived fields and persists the row. Every
// recorder mutation funnels through here so a row is never stored with stale
// derived values.
func (k *Keeper) SaveReconciled(ctx context.Context, stock *models.DailyStock) error {
	Reconcile(stock)
	if err := k.stocks.Update(ctx, stock); err != nil {
		return fmt.Errorf("persist reconciled stock: %w", err)
	}

	k.logger.Debug("stock reconciled",
		zap.String("storeID", stock.StoreID.Hex()),
		zap.Time("date", stock.Date),
		zap.String("milkType", string(stock.MilkType)),
		zap.Float64("closingStock", stock.ClosingStock),
		zap.Float64("sellerRemainingMilk", stock.SellerRemainingMilk))
	return nil
}

// DayStock is the read shape for one store day: a snapshot per milk type,
// zero-valued when the row does not exist.
type DayStock struct {
	StoreID primitive.ObjectID   `json:"storeID"`
	Date    time.Time            `json:"date"`
	Cow     models.StockSnapshot `json:"cow"`
	Buffalo models.StockSnapshot `json:"buffalo"`
}

// StockForDate returns the store's ledger rows for a day. Missing rows come
// back as zero-valued snapshots; the read path never reports not-found.
func (k *Keeper) StockForDate(ctx context.Context, storeID primitive.ObjectID, date time.Time) (*DayStock, error) {
	day := NormalizeDate(date)

	rows, err := k.stocks.FindByDate(ctx, storeID, day)
	if err != nil {
		return nil, fmt.Errorf("load stock for date: %w", err)
	}

	out := &DayStock{
		StoreID: storeID,
		Date:    day,
		Cow:     models.EmptyStockSnapshot(models.MilkTypeCow),
		Buffalo: models.EmptyStockSnapshot(models.MilkTypeBuffalo),
	}

	for i := range rows {
		switch rows[i].MilkType {
		case models.MilkTypeCow:
			out.Cow = rows[i].Snapshot()
		case models.MilkTypeBuffalo:
			out.Buffalo = rows[i].Snapshot()
		}
	}

	return out, nil
}

// SnapshotFor returns a single milk type's snapshot for a store day,
// zero-valued when the row is absent.
func (k *Keeper) SnapshotFor(ctx context.Context, storeID primitive.ObjectID, date time.Time, milkType models.MilkType) (models.StockSnapshot, error) {
	stock, err := k.Get(ctx, Key{StoreID: storeID, Date: NormalizeDate(date), MilkType: milkType})
	if err != nil {
		return models.StockSnapshot{}, err
	}
	if stock == nil {
		return models.EmptyStockSnapshot(milkType), nil
	}
	return stock.Snapshot(), nil
}
