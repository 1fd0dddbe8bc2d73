package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/dudhwala/backend/internal/domain/models"
)

// StockRepository persists the daily stock ledger rows.
type StockRepository interface {
	// Find returns the ledger row for the key, or nil when none exists.
	Find(ctx context.Context, storeID primitive.ObjectID, date time.Time, milkType models.MilkType) (*models.DailyStock, error)
	// LoadOrCreate returns the ledger row for the key, creating a zero-valued
	// one if it does not exist yet.
	LoadOrCreate(ctx context.Context, storeID primitive.ObjectID, date time.Time, milkType models.MilkType) (*models.DailyStock, error)
	// Update persists the counters of an existing ledger row.
	Update(ctx context.Context, stock *models.DailyStock) error
	// FindByDate returns every milk type's ledger row for a store and day.
	FindByDate(ctx context.Context, storeID primitive.ObjectID, date time.Time) ([]models.DailyStock, error)
}

type mongoStockRepository struct {
	coll *mongo.Collection
}

func stockKeyFilter(storeID primitive.ObjectID, date time.Time, milkType models.MilkType) bson.M {
	return bson.M{"storeID": storeID, "date": date, "milkType": milkType}
}

func (r *mongoStockRepository) Find(ctx context.Context, storeID primitive.ObjectID, date time.Time, milkType models.MilkType) (*models.DailyStock, error) {
	var stock models.DailyStock
	err := r.coll.FindOne(ctx, stockKeyFilter(storeID, date, milkType)).Decode(&stock)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find stock: %w", err)
	}
	return &stock, nil
}

func (r *mongoStockRepository) LoadOrCreate(ctx context.Context, storeID primitive.ObjectID, date time.Time, milkType models.MilkType) (*models.DailyStock, error) {
	now := time.Now().UTC()

	// Upsert keeps creation race-free under the unique (storeID,date,milkType)
	// index: concurrent callers converge on the same document.
	update := bson.M{
		"$setOnInsert": bson.M{
			"storeID":             storeID,
			"date":                date,
			"milkType":            milkType,
			"totalProcured":       float64(0),
			"sellerTotalAssign":   float64(0),
			"sellerSoldQty":       float64(0),
			"sellerRemainingMilk": float64(0),
			"directSoldQty":       float64(0),
			"wastage":             float64(0),
			"closingStock":        float64(0),
			"createdAt":           now,
			"updatedAt":           now,
		},
	}

	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var stock models.DailyStock
	if err := r.coll.FindOneAndUpdate(ctx, stockKeyFilter(storeID, date, milkType), update, opts).Decode(&stock); err != nil {
		return nil, fmt.Errorf("load or create stock: %w", err)
	}
	return &stock, nil
}

func (r *mongoStockRepository) Update(ctx context.Context, stock *models.DailyStock) error {
	stock.UpdatedAt = time.Now().UTC()

	update := bson.M{"$set": bson.M{
		"totalProcured":       stock.TotalProcured,
		"sellerTotalAssign":   stock.SellerTotalAssign,
		"sellerSoldQty":       stock.SellerSoldQty,
		"sellerRemainingMilk": stock.SellerRemainingMilk,
		"directSoldQty":       stock.DirectSoldQty,
		"wastage":             stock.Wastage,
		"closingStock":        stock.ClosingStock,
		"updatedAt":           stock.UpdatedAt,
	}}

	if _, err := r.coll.UpdateByID(ctx, stock.ID, update); err != nil {
		return fmt.Errorf("update stock %s: %w", stock.ID.Hex(), err)
	}
	return nil
}

func (r *mongoStockRepository) FindByDate(ctx context.Context, storeID primitive.ObjectID, date time.Time) ([]models.DailyStock, error) {
	opts := options.Find().SetSort(bson.D{{Key: "milkType", Value: 1}})

	cursor, err := r.coll.Find(ctx, bson.M{"storeID": storeID, "date": date}, opts)
	if err != nil {
		return nil, fmt.Errorf("find stocks by date: %w", err)
	}

	var stocks []models.DailyStock
	if err := cursor.All(ctx, &stocks); err != nil {
		return nil, fmt.Errorf("decode stocks: %w", err)
	}
	return stocks, nil
}
