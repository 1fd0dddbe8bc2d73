// Package delivery records seller-to-customer milk deliveries. A customer gets
// at most one delivery record per seller per day; resubmitting updates it in
// place and adjusts the ledger only by the signed difference.
package delivery

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

// Service is the delivery recorder.
type Service struct {
	directory  mongodb.DirectoryRepository
	deliveries mongodb.DeliveryRepository
	ledger     *ledger.Keeper
	logger     *zap.Logger
}

// NewService wires a new delivery recorder.
func NewService(directory mongodb.DirectoryRepository, deliveries mongodb.DeliveryRepository, keeper *ledger.Keeper, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{directory: directory, deliveries: deliveries, ledger: keeper, logger: logger}
}

// Input carries the fields of a delivery submission.
type Input struct {
	CustomerID primitive.ObjectID
	MilkType   models.MilkType
	MilkQty    float64
	Date       time.Time
}

// Record creates or updates the day's delivery for the seller's customer. The
// returned flag is true when a new record was created, false when an existing
// one was updated; the HTTP layer maps that to 201 vs 200.
func (s *Service) Record(ctx context.Context, sellerUserID primitive.ObjectID, in Input) (*models.MilkDelivery, bool, error) {
	if in.CustomerID.IsZero() || in.Date.IsZero() {
		return nil, false, apierr.Validation("Required fields missing")
	}
	if !in.MilkType.Valid() {
		return nil, false, apierr.Validation("Invalid milk type")
	}
	if in.MilkQty <= 0 {
		return nil, false, apierr.Validation("Milk quantity must be > 0")
	}

	seller, err := s.directory.SellerByUser(ctx, sellerUserID)
	if err != nil {
		return nil, false, err
	}
	if seller == nil {
		return nil, false, apierr.NotFound("Seller not found")
	}

	customer, err := s.directory.CustomerInStore(ctx, in.CustomerID, seller.StoreID)
	if err != nil {
		return nil, false, err
	}
	if customer == nil {
		return nil, false, apierr.NotFound("Customer not found")
	}

	date := ledger.NormalizeDate(in.Date)

	key := ledger.Key{StoreID: seller.StoreID, Date: date, MilkType: in.MilkType}
	unlock := s.ledger.Lock(key)
	defer unlock()

	stock, err := s.ledger.Get(ctx, key)
	if err != nil {
		return nil, false, err
	}
	if stock == nil {
		return nil, false, apierr.Validation("Stock not found for today")
	}

	existing, err := s.deliveries.FindByKey(ctx, in.CustomerID, seller.ID, date)
	if err != nil {
		return nil, false, err
	}

	if existing != nil {
		return s.update(ctx, existing, stock, in)
	}

	if stock.SellerRemainingMilk < in.MilkQty {
		return nil, false, apierr.InsufficientStock("Seller remaining milk not enough. Remaining: %gL", stock.SellerRemainingMilk)
	}

	delivery := &models.MilkDelivery{
		Date:       date,
		StoreID:    seller.StoreID,
		SellerID:   seller.ID,
		CustomerID: in.CustomerID,
		MilkType:   in.MilkType,
		MilkQty:    in.MilkQty,
		Status:     models.DeliveryStatusDelivered,
	}
	if err := s.deliveries.Insert(ctx, delivery); err != nil {
		return nil, false, err
	}

	stock.SellerSoldQty += in.MilkQty
	if err := s.ledger.SaveReconciled(ctx, stock); err != nil {
		return nil, false, err
	}

	s.logger.Info("milk delivery recorded",
		zap.String("sellerID", seller.ID.Hex()),
		zap.String("customerID", in.CustomerID.Hex()),
		zap.Float64("quantity", in.MilkQty))

	return delivery, true, nil
}

func (s *Service) update(ctx context.Context, existing *models.MilkDelivery, stock *models.DailyStock, in Input) (*models.MilkDelivery, bool, error) {
	diff := in.MilkQty - existing.MilkQty

	// Extra milk is only needed when the quantity grows.
	if diff > 0 && stock.SellerRemainingMilk < diff {
		return nil, false, apierr.InsufficientStock("Seller remaining milk not enough. Remaining: %gL", stock.SellerRemainingMilk)
	}

	existing.MilkQty = in.MilkQty
	existing.MilkType = in.MilkType
	if err := s.deliveries.Update(ctx, existing); err != nil {
		return nil, false, err
	}

	stock.SellerSoldQty += diff
	if stock.SellerSoldQty < 0 {
		stock.SellerSoldQty = 0
	}
	if err := s.ledger.SaveReconciled(ctx, stock); err != nil {
		return nil, false, err
	}

	s.logger.Info("milk delivery updated",
		zap.String("deliveryID", existing.ID.Hex()),
		zap.Float64("newQty", in.MilkQty),
		zap.Float64("diff", diff))

	return existing, false, nil
}

// ListForDate returns the seller's deliveries for a day.
func (s *Service) ListForDate(ctx context.Context, sellerUserID primitive.ObjectID, date time.Time) ([]models.MilkDelivery, error) {
	seller, err := s.directory.SellerByUser(ctx, sellerUserID)
	if err != nil {
		return nil, err
	}
	if seller == nil {
		return nil, apierr.NotFound("Seller not found")
	}
	return s.deliveries.ListBySellerDate(ctx, seller.ID, ledger.NormalizeDate(date))
}
