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

// DeliveryRepository persists seller-to-customer delivery events.
type DeliveryRepository interface {
	Insert(ctx context.Context, delivery *models.MilkDelivery) error
	// FindByKey returns the delivery for (customer, seller, date), or nil.
	FindByKey(ctx context.Context, customerID, sellerID primitive.ObjectID, date time.Time) (*models.MilkDelivery, error)
	Update(ctx context.Context, delivery *models.MilkDelivery) error
	ListBySellerDate(ctx context.Context, sellerID primitive.ObjectID, date time.Time) ([]models.MilkDelivery, error)
}

type mongoDeliveryRepository struct {
	coll *mongo.Collection
}

func (r *mongoDeliveryRepository) Insert(ctx context.Context, delivery *models.MilkDelivery) error {
	now := time.Now().UTC()
	delivery.ID = primitive.NewObjectID()
	delivery.CreatedAt = now
	delivery.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, delivery); err != nil {
		return fmt.Errorf("insert delivery: %w", err)
	}
	return nil
}

func (r *mongoDeliveryRepository) FindByKey(ctx context.Context, customerID, sellerID primitive.ObjectID, date time.Time) (*models.MilkDelivery, error) {
	filter := bson.M{"customerId": customerID, "sellerId": sellerID, "date": date}

	var delivery models.MilkDelivery
	err := r.coll.FindOne(ctx, filter).Decode(&delivery)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find delivery by key: %w", err)
	}
	return &delivery, nil
}

func (r *mongoDeliveryRepository) Update(ctx context.Context, delivery *models.MilkDelivery) error {
	delivery.UpdatedAt = time.Now().UTC()

	update := bson.M{"$set": bson.M{
		"milkQty":   delivery.MilkQty,
		"milkType":  delivery.MilkType,
		"status":    delivery.Status,
		"updatedAt": delivery.UpdatedAt,
	}}

	if _, err := r.coll.UpdateByID(ctx, delivery.ID, update); err != nil {
		return fmt.Errorf("update delivery %s: %w", delivery.ID.Hex(), err)
	}
	return nil
}

func (r *mongoDeliveryRepository) ListBySellerDate(ctx context.Context, sellerID primitive.ObjectID, date time.Time) ([]models.MilkDelivery, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.coll.Find(ctx, bson.M{"sellerId": sellerID, "date": date}, opts)
	if err != nil {
		return nil, fmt.Errorf("list deliveries: %w", err)
	}

	var deliveries []models.MilkDelivery
	if err := cursor.All(ctx, &deliveries); err != nil {
		return nil, fmt.Errorf("decode deliveries: %w", err)
	}
	return deliveries, nil
}
