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

// ProcurementRepository persists vendor-supply events.
type ProcurementRepository interface {
	Insert(ctx context.Context, procurement *models.MilkProcurement) error
	// FindByVendorDate returns the event for (vendor, store, date), or nil.
	FindByVendorDate(ctx context.Context, vendorID, storeID primitive.ObjectID, date time.Time) (*models.MilkProcurement, error)
	// FindByID returns the event scoped to a store, or nil.
	FindByID(ctx context.Context, id, storeID primitive.ObjectID) (*models.MilkProcurement, error)
	Update(ctx context.Context, procurement *models.MilkProcurement) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	ListByStore(ctx context.Context, storeID primitive.ObjectID) ([]models.MilkProcurement, error)
	ListByVendor(ctx context.Context, storeID, vendorID primitive.ObjectID) ([]models.MilkProcurement, error)
}

type mongoProcurementRepository struct {
	coll *mongo.Collection
}

func (r *mongoProcurementRepository) Insert(ctx context.Context, procurement *models.MilkProcurement) error {
	now := time.Now().UTC()
	procurement.ID = primitive.NewObjectID()
	procurement.CreatedAt = now
	procurement.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, procurement); err != nil {
		return fmt.Errorf("insert procurement: %w", err)
	}
	return nil
}

func (r *mongoProcurementRepository) FindByVendorDate(ctx context.Context, vendorID, storeID primitive.ObjectID, date time.Time) (*models.MilkProcurement, error) {
	filter := bson.M{"vendorId": vendorID, "storeID": storeID, "date": date}

	var procurement models.MilkProcurement
	err := r.coll.FindOne(ctx, filter).Decode(&procurement)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find procurement by vendor and date: %w", err)
	}
	return &procurement, nil
}

func (r *mongoProcurementRepository) FindByID(ctx context.Context, id, storeID primitive.ObjectID) (*models.MilkProcurement, error) {
	var procurement models.MilkProcurement
	err := r.coll.FindOne(ctx, bson.M{"_id": id, "storeID": storeID}).Decode(&procurement)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find procurement %s: %w", id.Hex(), err)
	}
	return &procurement, nil
}

func (r *mongoProcurementRepository) Update(ctx context.Context, procurement *models.MilkProcurement) error {
	procurement.UpdatedAt = time.Now().UTC()

	update := bson.M{"$set": bson.M{
		"milkTypesSupplied": procurement.MilkTypesSupplied,
		"quantity":          procurement.Quantity,
		"ratePerLiter":      procurement.RatePerLiter,
		"totalAmount":       procurement.TotalAmount,
		"notes":             procurement.Notes,
		"updatedAt":         procurement.UpdatedAt,
	}}

	if _, err := r.coll.UpdateByID(ctx, procurement.ID, update); err != nil {
		return fmt.Errorf("update procurement %s: %w", procurement.ID.Hex(), err)
	}
	return nil
}

func (r *mongoProcurementRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, err := r.coll.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return fmt.Errorf("delete procurement %s: %w", id.Hex(), err)
	}
	return nil
}

func (r *mongoProcurementRepository) ListByStore(ctx context.Context, storeID primitive.ObjectID) ([]models.MilkProcurement, error) {
	return r.list(ctx, bson.M{"storeID": storeID})
}

func (r *mongoProcurementRepository) ListByVendor(ctx context.Context, storeID, vendorID primitive.ObjectID) ([]models.MilkProcurement, error) {
	return r.list(ctx, bson.M{"storeID": storeID, "vendorId": vendorID})
}

func (r *mongoProcurementRepository) list(ctx context.Context, filter bson.M) ([]models.MilkProcurement, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list procurements: %w", err)
	}

	var procurements []models.MilkProcurement
	if err := cursor.All(ctx, &procurements); err != nil {
		return nil, fmt.Errorf("decode procurements: %w", err)
	}
	return procurements, nil
}
