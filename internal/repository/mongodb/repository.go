// Package mongodb provides the MongoDB persistence adapters. Interfaces are
// declared here so services can be exercised against in-memory fakes.
package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	collStocks       = "stocks"
	collProcurements = "milk_procurements"
	collAssigns      = "milk_assigns"
	collDeliveries   = "milk_deliveries"
	collStores       = "stores"
	collVendors      = "vendors"
	collSellers      = "sellers"
	collCustomers    = "customers"
	collReports      = "daily_stock_reports"
)

// Repositories bundles every MongoDB-backed repository behind one client.
type Repositories struct {
	client *mongo.Client
	db     *mongo.Database

	Stocks       StockRepository
	Procurements ProcurementRepository
	Assignments  AssignmentRepository
	Deliveries   DeliveryRepository
	Directory    DirectoryRepository
	Reports      ReportRepository
}

// NewRepositories connects to MongoDB and wires the per-collection adapters.
func NewRepositories(ctx context.Context, uri string, dbName string) (*Repositories, error) {
	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	// Ping the database to verify connection
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	db := client.Database(dbName)

	return &Repositories{
		client:       client,
		db:           db,
		Stocks:       &mongoStockRepository{coll: db.Collection(collStocks)},
		Procurements: &mongoProcurementRepository{coll: db.Collection(collProcurements)},
		Assignments:  &mongoAssignmentRepository{coll: db.Collection(collAssigns)},
		Deliveries:   &mongoDeliveryRepository{coll: db.Collection(collDeliveries)},
		Directory: &mongoDirectoryRepository{
			stores:    db.Collection(collStores),
			vendors:   db.Collection(collVendors),
			sellers:   db.Collection(collSellers),
			customers: db.Collection(collCustomers),
		},
		Reports: &mongoReportRepository{coll: db.Collection(collReports)},
	}, nil
}

// EnsureIndexes creates the unique indexes the ledger invariants rely on.
// Mirrors the schema-level indexes of the data model: one ledger row per
// (store, date, milkType) and one event per business key.
func (r *Repositories) EnsureIndexes(ctx context.Context) error {
	unique := func(keys bson.D) mongo.IndexModel {
		return mongo.IndexModel{Keys: keys, Options: options.Index().SetUnique(true)}
	}

	indexes := map[string]mongo.IndexModel{
		collStocks:       unique(bson.D{{Key: "storeID", Value: 1}, {Key: "date", Value: 1}, {Key: "milkType", Value: 1}}),
		collProcurements: unique(bson.D{{Key: "vendorId", Value: 1}, {Key: "storeID", Value: 1}, {Key: "date", Value: 1}}),
		collAssigns:      unique(bson.D{{Key: "storeID", Value: 1}, {Key: "sellerId", Value: 1}, {Key: "milkType", Value: 1}, {Key: "date", Value: 1}}),
		collDeliveries:   unique(bson.D{{Key: "customerId", Value: 1}, {Key: "sellerId", Value: 1}, {Key: "date", Value: 1}}),
	}

	for coll, model := range indexes {
		if _, err := r.db.Collection(coll).Indexes().CreateOne(ctx, model); err != nil {
			return fmt.Errorf("create index on %s: %w", coll, err)
		}
	}

	return nil
}

// Close closes the MongoDB connection.
func (r *Repositories) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}
