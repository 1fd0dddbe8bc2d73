// Package procurement records vendor supply events and keeps the daily stock
// ledger's totalProcured counter in step with them.
package procurement

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

// Service is the procurement recorder.
type Service struct {
	directory    mongodb.DirectoryRepository
	procurements mongodb.ProcurementRepository
	ledger       *ledger.Keeper
	logger       *zap.Logger
}

// NewService wires a new procurement recorder.
func NewService(directory mongodb.DirectoryRepository, procurements mongodb.ProcurementRepository, keeper *ledger.Keeper, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{directory: directory, procurements: procurements, ledger: keeper, logger: logger}
}

// CreateInput carries the fields for a new procurement event.
type CreateInput struct {
	VendorID          primitive.ObjectID
	MilkTypesSupplied []models.MilkType
	Quantity          float64
	RatePerLiter      float64
	Date              time.Time
	Notes             string
}

// UpdateInput carries a partial update; nil fields stay unchanged.
type UpdateInput struct {
	MilkTypesSupplied []models.MilkType
	Quantity          *float64
	RatePerLiter      *float64
	Notes             *string
}

// Create records a vendor supply event and increments the ledger's
// totalProcured for the resolved milk type, creating the ledger row if the day
// has none yet.
func (s *Service) Create(ctx context.Context, ownerID primitive.ObjectID, in CreateInput) (*models.MilkProcurement, error) {
	if in.VendorID.IsZero() || in.Date.IsZero() {
		return nil, apierr.Validation("Required fields are missing")
	}
	if in.Quantity <= 0 {
		return nil, apierr.Validation("Quantity must be > 0")
	}
	if in.RatePerLiter <= 0 {
		return nil, apierr.Validation("Rate must be > 0")
	}

	milkType, err := models.ResolveMilkType(in.MilkTypesSupplied)
	if err != nil {
		return nil, apierr.Validation("Invalid milk type")
	}

	store, err := s.directory.StoreByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, apierr.NotFound("Store not found")
	}

	vendor, err := s.directory.VendorInStore(ctx, in.VendorID, store.ID)
	if err != nil {
		return nil, err
	}
	if vendor == nil {
		return nil, apierr.NotFound("Vendor not found for this store")
	}

	date := ledger.NormalizeDate(in.Date)

	key := ledger.Key{StoreID: store.ID, Date: date, MilkType: milkType}
	unlock := s.ledger.Lock(key)
	defer unlock()

	existing, err := s.procurements.FindByVendorDate(ctx, in.VendorID, store.ID, date)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apierr.Duplicate("Milk procurement already exists for this vendor on this date")
	}

	procurement := &models.MilkProcurement{
		VendorID:          in.VendorID,
		StoreID:           store.ID,
		MilkTypesSupplied: in.MilkTypesSupplied,
		Quantity:          in.Quantity,
		RatePerLiter:      in.RatePerLiter,
		TotalAmount:       in.Quantity * in.RatePerLiter,
		Date:              date,
		Notes:             in.Notes,
	}
	if err := s.procurements.Insert(ctx, procurement); err != nil {
		return nil, err
	}

	stock, err := s.ledger.LoadOrCreate(ctx, key)
	if err != nil {
		return nil, err
	}
	stock.TotalProcured += in.Quantity
	if err := s.ledger.SaveReconciled(ctx, stock); err != nil {
		return nil, err
	}

	s.logger.Info("milk procurement recorded",
		zap.String("storeID", store.ID.Hex()),
		zap.String("vendorID", in.VendorID.Hex()),
		zap.Float64("quantity", in.Quantity),
		zap.String("milkType", string(milkType)))

	return procurement, nil
}

// Update rewrites a procurement event. The old quantity is reversed from the
// old milk type's ledger row and the new quantity applied to the new one; when
// the type is unchanged both adjustments land on the same row.
func (s *Service) Update(ctx context.Context, ownerID, id primitive.ObjectID, in UpdateInput) (*models.MilkProcurement, error) {
	store, err := s.directory.StoreByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, apierr.NotFound("Store not found")
	}

	procurement, err := s.procurements.FindByID(ctx, id, store.ID)
	if err != nil {
		return nil, err
	}
	if procurement == nil {
		return nil, apierr.NotFound("Milk procurement not found")
	}

	oldQty := procurement.Quantity
	oldMilkType := procurement.MilkType()
	date := ledger.NormalizeDate(procurement.Date)

	newQty := oldQty
	if in.Quantity != nil {
		newQty = *in.Quantity
	}
	if newQty <= 0 {
		return nil, apierr.Validation("Quantity must be > 0")
	}

	newMilkType := oldMilkType
	if in.MilkTypesSupplied != nil {
		newMilkType, err = models.ResolveMilkType(in.MilkTypesSupplied)
		if err != nil {
			return nil, apierr.Validation("Invalid milk type")
		}
		procurement.MilkTypesSupplied = in.MilkTypesSupplied
	}

	procurement.Quantity = newQty
	if in.RatePerLiter != nil {
		if *in.RatePerLiter <= 0 {
			return nil, apierr.Validation("Rate must be > 0")
		}
		procurement.RatePerLiter = *in.RatePerLiter
	}
	if in.Notes != nil {
		procurement.Notes = *in.Notes
	}
	procurement.TotalAmount = procurement.Quantity * procurement.RatePerLiter

	oldKey := ledger.Key{StoreID: store.ID, Date: date, MilkType: oldMilkType}
	newKey := ledger.Key{StoreID: store.ID, Date: date, MilkType: newMilkType}
	unlock := s.ledger.LockPair(oldKey, newKey)
	defer unlock()

	if err := s.procurements.Update(ctx, procurement); err != nil {
		return nil, err
	}

	// Reverse the old contribution, floored at zero.
	oldStock, err := s.ledger.Get(ctx, oldKey)
	if err != nil {
		return nil, err
	}
	if oldStock != nil {
		oldStock.TotalProcured -= oldQty
		if oldStock.TotalProcured < 0 {
			oldStock.TotalProcured = 0
		}
		if err := s.ledger.SaveReconciled(ctx, oldStock); err != nil {
			return nil, err
		}
	}

	// Apply the new contribution, possibly to a different ledger row.
	newStock, err := s.ledger.LoadOrCreate(ctx, newKey)
	if err != nil {
		return nil, err
	}
	newStock.TotalProcured += newQty
	if err := s.ledger.SaveReconciled(ctx, newStock); err != nil {
		return nil, err
	}

	s.logger.Info("milk procurement updated",
		zap.String("procurementID", procurement.ID.Hex()),
		zap.Float64("oldQty", oldQty),
		zap.Float64("newQty", newQty),
		zap.String("oldMilkType", string(oldMilkType)),
		zap.String("newMilkType", string(newMilkType)))

	return procurement, nil
}

// Delete removes a procurement event and reverses its contribution from the
// ledger row it was recorded against.
func (s *Service) Delete(ctx context.Context, ownerID, id primitive.ObjectID) error {
	store, err := s.directory.StoreByOwner(ctx, ownerID)
	if err != nil {
		return err
	}
	if store == nil {
		return apierr.NotFound("Store not found")
	}

	procurement, err := s.procurements.FindByID(ctx, id, store.ID)
	if err != nil {
		return err
	}
	if procurement == nil {
		return apierr.NotFound("Milk procurement not found")
	}

	qty := procurement.Quantity
	milkType := procurement.MilkType()
	date := ledger.NormalizeDate(procurement.Date)

	key := ledger.Key{StoreID: store.ID, Date: date, MilkType: milkType}
	unlock := s.ledger.Lock(key)
	defer unlock()

	if err := s.procurements.Delete(ctx, id); err != nil {
		return err
	}

	stock, err := s.ledger.Get(ctx, key)
	if err != nil {
		return err
	}
	if stock != nil {
		stock.TotalProcured -= qty
		if stock.TotalProcured < 0 {
			stock.TotalProcured = 0
		}
		if err := s.ledger.SaveReconciled(ctx, stock); err != nil {
			return err
		}
	}

	s.logger.Info("milk procurement deleted",
		zap.String("procurementID", id.Hex()),
		zap.Float64("quantity", qty),
		zap.String("milkType", string(milkType)))

	return nil
}

// ListByStore returns the store's procurement events, newest first.
func (s *Service) ListByStore(ctx context.Context, ownerID primitive.ObjectID) ([]models.MilkProcurement, error) {
	store, err := s.directory.StoreByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, apierr.NotFound("Store not found")
	}
	return s.procurements.ListByStore(ctx, store.ID)
}

// ListByVendor returns one vendor's procurement events for the store.
func (s *Service) ListByVendor(ctx context.Context, ownerID, vendorID primitive.ObjectID) ([]models.MilkProcurement, error) {
	store, err := s.directory.StoreByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, apierr.NotFound("Store not found")
	}

	vendor, err := s.directory.VendorInStore(ctx, vendorID, store.ID)
	if err != nil {
		return nil, err
	}
	if vendor == nil {
		return nil, apierr.NotFound("Vendor not found for this store")
	}

	return s.procurements.ListByVendor(ctx, store.ID, vendorID)
}
