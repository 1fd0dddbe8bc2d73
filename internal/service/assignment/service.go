// Package assignment records owner-to-seller milk allocations. Allocations
// draw against the day's closing stock; assigning does not consume stock, so
// the gate is closingStock, not the already-assigned total.
package assignment

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/dudhwala/backend/internal/domain/apierr"
	"github.com/dudhwala/backend/internal/domain/models"
	"github.com/dudhwala/backend/internal/repository/mongodb"
	"github.com/dudhwala/backend/internal/service/ledger"
)

// Service is the assignment recorder.
type Service struct {
	directory   mongodb.DirectoryRepository
	assignments mongodb.AssignmentRepository
	ledger      *ledger.Keeper
	logger      *zap.Logger
}

// NewService wires a new assignment recorder.
func NewService(directory mongodb.DirectoryRepository, assignments mongodb.AssignmentRepository, keeper *ledger.Keeper, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{directory: directory, assignments: assignments, ledger: keeper, logger: logger}
}

// CreateInput carries the fields for a new allocation.
type CreateInput struct {
	SellerID primitive.ObjectID
	MilkType models.MilkType
	Quantity float64
	Date     time.Time
}

// Create records an allocation. A procurement must have created the day's
// ledger row already, and the requested quantity is gated by closingStock.
func (s *Service) Create(ctx context.Context, ownerID primitive.ObjectID, in CreateInput) (*models.MilkAssign, error) {
	if in.SellerID.IsZero() || in.Date.IsZero() {
		return nil, apierr.Validation("Required fields are missing")
	}
	if !in.MilkType.Valid() {
		return nil, apierr.Validation("Invalid milk type")
	}
	if in.Quantity <= 0 {
		return nil, apierr.Validation("Quantity must be > 0")
	}

	store, err := s.directory.StoreByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, apierr.NotFound("Store not found")
	}

	seller, err := s.directory.SellerInStore(ctx, in.SellerID, store.ID)
	if err != nil {
		return nil, err
	}
	if seller == nil {
		return nil, apierr.NotFound("Seller not found for this store")
	}

	date := ledger.NormalizeDate(in.Date)

	key := ledger.Key{StoreID: store.ID, Date: date, MilkType: in.MilkType}
	unlock := s.ledger.Lock(key)
	defer unlock()

	existing, err := s.assignments.FindByKey(ctx, store.ID, in.SellerID, in.MilkType, date)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apierr.Duplicate("Milk already assigned for this seller on this date")
	}

	stock, err := s.ledger.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if stock == nil {
		return nil, apierr.NotFound("No stock record found for this date & milk type")
	}

	// Gate on closingStock. Assignments already made today do not shrink the
	// available amount; only deliveries, direct sales and wastage do.
	if stock.ClosingStock < in.Quantity {
		return nil, apierr.InsufficientStock("Not enough stock. Available: %gL", stock.ClosingStock)
	}

	assign := &models.MilkAssign{
		StoreID:   store.ID,
		SellerID:  in.SellerID,
		MilkType:  in.MilkType,
		Quantity:  in.Quantity,
		Date:      date,
		CreatedBy: ownerID,
	}
	if err := s.assignments.Insert(ctx, assign); err != nil {
		return nil, err
	}

	stock.SellerTotalAssign += in.Quantity
	if err := s.ledger.SaveReconciled(ctx, stock); err != nil {
		return nil, err
	}

	s.logger.Info("milk assigned",
		zap.String("storeID", store.ID.Hex()),
		zap.String("sellerID", in.SellerID.Hex()),
		zap.String("milkType", string(in.MilkType)),
		zap.Float64("quantity", in.Quantity))

	return assign, nil
}

// Update changes an allocation's quantity. The old contribution is reversed,
// the new quantity re-checked against closingStock, and on insufficiency the
// reversal is rolled back so the ledger row is left exactly as found.
func (s *Service) Update(ctx context.Context, ownerID, id primitive.ObjectID, quantity float64) (*models.MilkAssign, error) {
	if quantity <= 0 {
		return nil, apierr.Validation("Quantity must be > 0")
	}

	store, err := s.directory.StoreByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, apierr.NotFound("Store not found")
	}

	assign, err := s.assignments.FindByID(ctx, id, store.ID)
	if err != nil {
		return nil, err
	}
	if assign == nil {
		return nil, apierr.NotFound("Assign record not found")
	}

	oldQty := assign.Quantity
	date := ledger.NormalizeDate(assign.Date)

	key := ledger.Key{StoreID: store.ID, Date: date, MilkType: assign.MilkType}
	unlock := s.ledger.Lock(key)
	defer unlock()

	stock, err := s.ledger.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if stock == nil {
		return nil, apierr.Validation("Stock not found for this date")
	}

	// Speculatively reverse the old contribution before re-checking supply.
	stock.SellerTotalAssign -= oldQty
	if stock.SellerTotalAssign < 0 {
		stock.SellerTotalAssign = 0
	}

	if stock.ClosingStock < quantity {
		// Roll back so the persisted row is bit-identical to the pre-attempt
		// state. The key lock keeps the intermediate values invisible.
		available := stock.ClosingStock
		stock.SellerTotalAssign += oldQty
		if err := s.ledger.SaveReconciled(ctx, stock); err != nil {
			return nil, err
		}
		return nil, apierr.InsufficientStock("Not enough stock. Available: %gL", available)
	}

	stock.SellerTotalAssign += quantity
	if err := s.ledger.SaveReconciled(ctx, stock); err != nil {
		return nil, err
	}

	assign.Quantity = quantity
	if err := s.assignments.Update(ctx, assign); err != nil {
		return nil, err
	}

	s.logger.Info("milk assignment updated",
		zap.String("assignID", assign.ID.Hex()),
		zap.Float64("oldQty", oldQty),
		zap.Float64("newQty", quantity))

	return assign, nil
}

// Delete removes an allocation and reverses its contribution.
func (s *Service) Delete(ctx context.Context, ownerID, id primitive.ObjectID) error {
	store, err := s.directory.StoreByOwner(ctx, ownerID)
	if err != nil {
		return err
	}
	if store == nil {
		return apierr.NotFound("Store not found")
	}

	assign, err := s.assignments.FindByID(ctx, id, store.ID)
	if err != nil {
		return err
	}
	if assign == nil {
		return apierr.NotFound("Assign record not found")
	}

	qty := assign.Quantity
	date := ledger.NormalizeDate(assign.Date)

	key := ledger.Key{StoreID: store.ID, Date: date, MilkType: assign.MilkType}
	unlock := s.ledger.Lock(key)
	defer unlock()

	if err := s.assignments.Delete(ctx, id); err != nil {
		return err
	}

	stock, err := s.ledger.Get(ctx, key)
	if err != nil {
		return err
	}
	if stock != nil {
		stock.SellerTotalAssign -= qty
		if stock.SellerTotalAssign < 0 {
			stock.SellerTotalAssign = 0
		}
		if err := s.ledger.SaveReconciled(ctx, stock); err != nil {
			return err
		}
	}

	s.logger.Info("milk assignment deleted",
		zap.String("assignID", id.Hex()),
		zap.Float64("quantity", qty))

	return nil
}

// ListByStore returns the store's allocations, newest first.
func (s *Service) ListByStore(ctx context.Context, ownerID primitive.ObjectID) ([]models.MilkAssign, error) {
	store, err := s.directory.StoreByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, apierr.NotFound("Store not found")
	}
	return s.assignments.ListByStore(ctx, store.ID)
}

// ListBySeller returns one seller's allocation history for the store.
func (s *Service) ListBySeller(ctx context.Context, ownerID, sellerID primitive.ObjectID) ([]models.MilkAssign, error) {
	store, err := s.directory.StoreByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, apierr.NotFound("Store not found")
	}
	return s.assignments.ListBySeller(ctx, store.ID, sellerID)
}

// TodaySummary returns the store's ledger snapshot for a date and milk type,
// zero-valued when no row exists. Used by the owner's seller-summary screen.
func (s *Service) TodaySummary(ctx context.Context, ownerID primitive.ObjectID, date time.Time, milkType models.MilkType) (models.StockSnapshot, error) {
	if milkType == "" {
		milkType = models.MilkTypeCow
	}
	if !milkType.Valid() {
		return models.StockSnapshot{}, apierr.Validation("Invalid milk type")
	}

	store, err := s.directory.StoreByOwner(ctx, ownerID)
	if err != nil {
		return models.StockSnapshot{}, err
	}
	if store == nil {
		return models.StockSnapshot{}, apierr.NotFound("Store not found")
	}

	return s.ledger.SnapshotFor(ctx, store.ID, date, milkType)
}
