package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/dudhwala/backend/internal/domain/models"
)

// DirectoryRepository answers the scoping lookups the recorders need: which
// store an actor belongs to, and whether an event's counterparty is active in
// that store. All methods return nil (no error) when nothing matches.
type DirectoryRepository interface {
	StoreByOwner(ctx context.Context, userID primitive.ObjectID) (*models.Store, error)
	ActiveStores(ctx context.Context) ([]models.Store, error)
	VendorInStore(ctx context.Context, vendorID, storeID primitive.ObjectID) (*models.Vendor, error)
	SellerInStore(ctx context.Context, sellerID, storeID primitive.ObjectID) (*models.Seller, error)
	SellerByUser(ctx context.Context, userID primitive.ObjectID) (*models.Seller, error)
	CustomerInStore(ctx context.Context, customerID, storeID primitive.ObjectID) (*models.Customer, error)
}

type mongoDirectoryRepository struct {
	stores    *mongo.Collection
	vendors   *mongo.Collection
	sellers   *mongo.Collection
	customers *mongo.Collection
}

func (r *mongoDirectoryRepository) StoreByOwner(ctx context.Context, userID primitive.ObjectID) (*models.Store, error) {
	var store models.Store
	err := r.stores.FindOne(ctx, bson.M{"userId": userID, "isActive": true}).Decode(&store)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find store by owner: %w", err)
	}
	return &store, nil
}

func (r *mongoDirectoryRepository) ActiveStores(ctx context.Context) ([]models.Store, error) {
	cursor, err := r.stores.Find(ctx, bson.M{"isActive": true})
	if err != nil {
		return nil, fmt.Errorf("list active stores: %w", err)
	}

	var stores []models.Store
	if err := cursor.All(ctx, &stores); err != nil {
		return nil, fmt.Errorf("decode stores: %w", err)
	}
	return stores, nil
}

func (r *mongoDirectoryRepository) VendorInStore(ctx context.Context, vendorID, storeID primitive.ObjectID) (*models.Vendor, error) {
	var vendor models.Vendor
	err := r.vendors.FindOne(ctx, bson.M{"_id": vendorID, "storeID": storeID, "isActive": true}).Decode(&vendor)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find vendor in store: %w", err)
	}
	return &vendor, nil
}

func (r *mongoDirectoryRepository) SellerInStore(ctx context.Context, sellerID, storeID primitive.ObjectID) (*models.Seller, error) {
	var seller models.Seller
	err := r.sellers.FindOne(ctx, bson.M{"_id": sellerID, "storeID": storeID, "isActive": true}).Decode(&seller)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find seller in store: %w", err)
	}
	return &seller, nil
}

func (r *mongoDirectoryRepository) SellerByUser(ctx context.Context, userID primitive.ObjectID) (*models.Seller, error) {
	var seller models.Seller
	err := r.sellers.FindOne(ctx, bson.M{"userId": userID, "isActive": true}).Decode(&seller)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find seller by user: %w", err)
	}
	return &seller, nil
}

func (r *mongoDirectoryRepository) CustomerInStore(ctx context.Context, customerID, storeID primitive.ObjectID) (*models.Customer, error) {
	var customer models.Customer
	err := r.customers.FindOne(ctx, bson.M{"_id": customerID, "storeID": storeID, "isActive": true}).Decode(&customer)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find customer in store: %w", err)
	}
	return &customer, nil
}
