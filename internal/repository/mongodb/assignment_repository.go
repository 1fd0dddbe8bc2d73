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

// AssignmentRepository persists owner-to-seller milk allocations.
type AssignmentRepository interface {
	Insert(ctx context.Context, assign *models.MilkAssign) error
	// FindByKey returns the allocation for (store, seller, milkType, date), or nil.
	FindByKey(ctx context.Context, storeID, sellerID primitive.ObjectID, milkType models.MilkType, date time.Time) (*models.MilkAssign, error)
	// FindByID returns the allocation scoped to a store, or nil.
	FindByID(ctx context.Context, id, storeID primitive.ObjectID) (*models.MilkAssign, error)
	Update(ctx context.Context, assign *models.MilkAssign) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	ListByStore(ctx context.Context, storeID primitive.ObjectID) ([]models.MilkAssign, error)
	ListBySeller(ctx context.Context, storeID, sellerID primitive.ObjectID) ([]models.MilkAssign, error)
}

type mongoAssignmentRepository struct {
	coll *mongo.Collection
}

func (r *mongoAssignmentRepository) Insert(ctx context.Context, assign *models.MilkAssign) error {
	now := time.Now().UTC()
	assign.ID = primitive.NewObjectID()
	assign.CreatedAt = now
	assign.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, assign); err != nil {
		return fmt.Errorf("insert assignment: %w", err)
	}
	return nil
}

func (r *mongoAssignmentRepository) FindByKey(ctx context.Context, storeID, sellerID primitive.ObjectID, milkType models.MilkType, date time.Time) (*models.MilkAssign, error) {
	filter := bson.M{"storeID": storeID, "sellerId": sellerID, "milkType": milkType, "date": date}

	var assign models.MilkAssign
	err := r.coll.FindOne(ctx, filter).Decode(&assign)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find assignment by key: %w", err)
	}
	return &assign, nil
}

func (r *mongoAssignmentRepository) FindByID(ctx context.Context, id, storeID primitive.ObjectID) (*models.MilkAssign, error) {
	var assign models.MilkAssign
	err := r.coll.FindOne(ctx, bson.M{"_id": id, "storeID": storeID}).Decode(&assign)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find assignment %s: %w", id.Hex(), err)
	}
	return &assign, nil
}

func (r *mongoAssignmentRepository) Update(ctx context.Context, assign *models.MilkAssign) error {
	assign.UpdatedAt = time.Now().UTC()

	update := bson.M{"$set": bson.M{
		"quantity":  assign.Quantity,
		"updatedAt": assign.UpdatedAt,
	}}

	if _, err := r.coll.UpdateByID(ctx, assign.ID, update); err != nil {
		return fmt.Errorf("update assignment %s: %w", assign.ID.Hex(), err)
	}
	return nil
}

func (r *mongoAssignmentRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, err := r.coll.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return fmt.Errorf("delete assignment %s: %w", id.Hex(), err)
	}
	return nil
}

func (r *mongoAssignmentRepository) ListByStore(ctx context.Context, storeID primitive.ObjectID) ([]models.MilkAssign, error) {
	return r.list(ctx, bson.M{"storeID": storeID})
}

func (r *mongoAssignmentRepository) ListBySeller(ctx context.Context, storeID, sellerID primitive.ObjectID) ([]models.MilkAssign, error) {
	return r.list(ctx, bson.M{"storeID": storeID, "sellerId": sellerID})
}

func (r *mongoAssignmentRepository) list(ctx context.Context, filter bson.M) ([]models.MilkAssign, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list assignments: %w", err)
	}

	var assigns []models.MilkAssign
	if err := cursor.All(ctx, &assigns); err != nil {
		return nil, fmt.Errorf("decode assignments: %w", err)
	}
	return assigns, nil
}
