package ledger

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/dudhwala/backend/internal/domain/apierr"
	"github.com/dudhwala/backend/internal/repository/mongodb"
)

// Query serves the owner-facing stock read path.
type Query struct {
	directory mongodb.DirectoryRepository
	keeper    *Keeper
	logger    *zap.Logger
}

// NewQuery wires a new stock query service.
func NewQuery(directory mongodb.DirectoryRepository, keeper *Keeper, logger *zap.Logger) *Query {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Query{directory: directory, keeper: keeper, logger: logger}
}

// TodayStock returns the owner's store stock for the given moment's day, with
// zero-valued snapshots for milk types that have no ledger row. A day without
// any rows is a normal answer, not a not-found.
func (q *Query) TodayStock(ctx context.Context, ownerID primitive.ObjectID, now time.Time) (*DayStock, error) {
	store, err := q.directory.StoreByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, apierr.NotFound("Store not found")
	}
	return q.keeper.StockForDate(ctx, store.ID, now)
}
