// Package memory provides in-memory implementations of the repository
// interfaces. The recorder service tests run against these instead of a live
// MongoDB; semantics mirror the mongodb package, including returning copies so
// callers never share storage-owned structs.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/dudhwala/backend/internal/domain/models"
)

// StockRepository is an in-memory mongodb.StockRepository.
type StockRepository struct {
	mu   sync.Mutex
	rows map[string]models.DailyStock
}

// NewStockRepository builds an empty in-memory stock repository.
func NewStockRepository() *StockRepository {
	return &StockRepository{rows: make(map[string]models.DailyStock)}
}

func stockKey(storeID primitive.ObjectID, date time.Time, milkType models.MilkType) string {
	return fmt.Sprintf("%s/%s/%s", storeID.Hex(), date.Format("2006-01-02"), milkType)
}

func (r *StockRepository) Find(_ context.Context, storeID primitive.ObjectID, date time.Time, milkType models.MilkType) (*models.DailyStock, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	row, ok := r.rows[stockKey(storeID, date, milkType)]
	if !ok {
		return nil, nil
	}
	copied := row
	return &copied, nil
}

func (r *StockRepository) LoadOrCreate(_ context.Context, storeID primitive.ObjectID, date time.Time, milkType models.MilkType) (*models.DailyStock, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	k := stockKey(storeID, date, milkType)
	if row, ok := r.rows[k]; ok {
		copied := row
		return &copied, nil
	}

	now := time.Now().UTC()
	row := models.DailyStock{
		ID:        primitive.NewObjectID(),
		StoreID:   storeID,
		Date:      date,
		MilkType:  milkType,
		CreatedAt: now,
		UpdatedAt: now,
	}
	r.rows[k] = row
	copied := row
	return &copied, nil
}

func (r *StockRepository) Update(_ context.Context, stock *models.DailyStock) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stock.UpdatedAt = time.Now().UTC()
	r.rows[stockKey(stock.StoreID, stock.Date, stock.MilkType)] = *stock
	return nil
}

func (r *StockRepository) FindByDate(_ context.Context, storeID primitive.ObjectID, date time.Time) ([]models.DailyStock, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.DailyStock
	for _, t := range models.MilkTypes {
		if row, ok := r.rows[stockKey(storeID, date, t)]; ok {
			out = append(out, row)
		}
	}
	return out, nil
}

// ProcurementRepository is an in-memory mongodb.ProcurementRepository.
type ProcurementRepository struct {
	mu    sync.Mutex
	items map[primitive.ObjectID]models.MilkProcurement
}

// NewProcurementRepository builds an empty in-memory procurement repository.
func NewProcurementRepository() *ProcurementRepository {
	return &ProcurementRepository{items: make(map[primitive.ObjectID]models.MilkProcurement)}
}

func (r *ProcurementRepository) Insert(_ context.Context, procurement *models.MilkProcurement) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	procurement.ID = primitive.NewObjectID()
	procurement.CreatedAt = now
	procurement.UpdatedAt = now
	r.items[procurement.ID] = *procurement
	return nil
}

func (r *ProcurementRepository) FindByVendorDate(_ context.Context, vendorID, storeID primitive.ObjectID, date time.Time) (*models.MilkProcurement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range r.items {
		if p.VendorID == vendorID && p.StoreID == storeID && p.Date.Equal(date) {
			copied := p
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *ProcurementRepository) FindByID(_ context.Context, id, storeID primitive.ObjectID) (*models.MilkProcurement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.items[id]
	if !ok || p.StoreID != storeID {
		return nil, nil
	}
	copied := p
	return &copied, nil
}

func (r *ProcurementRepository) Update(_ context.Context, procurement *models.MilkProcurement) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	procurement.UpdatedAt = time.Now().UTC()
	r.items[procurement.ID] = *procurement
	return nil
}

func (r *ProcurementRepository) Delete(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.items, id)
	return nil
}

func (r *ProcurementRepository) ListByStore(_ context.Context, storeID primitive.ObjectID) ([]models.MilkProcurement, error) {
	return r.list(func(p models.MilkProcurement) bool { return p.StoreID == storeID }), nil
}

func (r *ProcurementRepository) ListByVendor(_ context.Context, storeID, vendorID primitive.ObjectID) ([]models.MilkProcurement, error) {
	return r.list(func(p models.MilkProcurement) bool { return p.StoreID == storeID && p.VendorID == vendorID }), nil
}

func (r *ProcurementRepository) list(match func(models.MilkProcurement) bool) []models.MilkProcurement {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.MilkProcurement
	for _, p := range r.items {
		if match(p) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out
}

// AssignmentRepository is an in-memory mongodb.AssignmentRepository.
type AssignmentRepository struct {
	mu    sync.Mutex
	items map[primitive.ObjectID]models.MilkAssign
}

// NewAssignmentRepository builds an empty in-memory assignment repository.
func NewAssignmentRepository() *AssignmentRepository {
	return &AssignmentRepository{items: make(map[primitive.ObjectID]models.MilkAssign)}
}

func (r *AssignmentRepository) Insert(_ context.Context, assign *models.MilkAssign) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	assign.ID = primitive.NewObjectID()
	assign.CreatedAt = now
	assign.UpdatedAt = now
	r.items[assign.ID] = *assign
	return nil
}

func (r *AssignmentRepository) FindByKey(_ context.Context, storeID, sellerID primitive.ObjectID, milkType models.MilkType, date time.Time) (*models.MilkAssign, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, a := range r.items {
		if a.StoreID == storeID && a.SellerID == sellerID && a.MilkType == milkType && a.Date.Equal(date) {
			copied := a
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *AssignmentRepository) FindByID(_ context.Context, id, storeID primitive.ObjectID) (*models.MilkAssign, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.items[id]
	if !ok || a.StoreID != storeID {
		return nil, nil
	}
	copied := a
	return &copied, nil
}

func (r *AssignmentRepository) Update(_ context.Context, assign *models.MilkAssign) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	assign.UpdatedAt = time.Now().UTC()
	r.items[assign.ID] = *assign
	return nil
}

func (r *AssignmentRepository) Delete(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.items, id)
	return nil
}

func (r *AssignmentRepository) ListByStore(_ context.Context, storeID primitive.ObjectID) ([]models.MilkAssign, error) {
	return r.list(func(a models.MilkAssign) bool { return a.StoreID == storeID }), nil
}

func (r *AssignmentRepository) ListBySeller(_ context.Context, storeID, sellerID primitive.ObjectID) ([]models.MilkAssign, error) {
	return r.list(func(a models.MilkAssign) bool { return a.StoreID == storeID && a.SellerID == sellerID }), nil
}

func (r *AssignmentRepository) list(match func(models.MilkAssign) bool) []models.MilkAssign {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.MilkAssign
	for _, a := range r.items {
		if match(a) {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out
}

// DeliveryRepository is an in-memory mongodb.DeliveryRepository.
type DeliveryRepository struct {
	mu    sync.Mutex
	items map[primitive.ObjectID]models.MilkDelivery
}

// NewDeliveryRepository builds an empty in-memory delivery repository.
func NewDeliveryRepository() *DeliveryRepository {
	return &DeliveryRepository{items: make(map[primitive.ObjectID]models.MilkDelivery)}
}

func (r *DeliveryRepository) Insert(_ context.Context, delivery *models.MilkDelivery) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	delivery.ID = primitive.NewObjectID()
	delivery.CreatedAt = now
	delivery.UpdatedAt = now
	r.items[delivery.ID] = *delivery
	return nil
}

func (r *DeliveryRepository) FindByKey(_ context.Context, customerID, sellerID primitive.ObjectID, date time.Time) (*models.MilkDelivery, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, d := range r.items {
		if d.CustomerID == customerID && d.SellerID == sellerID && d.Date.Equal(date) {
			copied := d
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *DeliveryRepository) Update(_ context.Context, delivery *models.MilkDelivery) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delivery.UpdatedAt = time.Now().UTC()
	r.items[delivery.ID] = *delivery
	return nil
}

func (r *DeliveryRepository) ListBySellerDate(_ context.Context, sellerID primitive.ObjectID, date time.Time) ([]models.MilkDelivery, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.MilkDelivery
	for _, d := range r.items {
		if d.SellerID == sellerID && d.Date.Equal(date) {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// DirectoryRepository is an in-memory mongodb.DirectoryRepository backed by
// plain slices the test seeds directly.
type DirectoryRepository struct {
	Stores    []models.Store
	Vendors   []models.Vendor
	Sellers   []models.Seller
	Customers []models.Customer
}

func (r *DirectoryRepository) StoreByOwner(_ context.Context, userID primitive.ObjectID) (*models.Store, error) {
	for i := range r.Stores {
		if r.Stores[i].UserID == userID && r.Stores[i].IsActive {
			copied := r.Stores[i]
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *DirectoryRepository) ActiveStores(_ context.Context) ([]models.Store, error) {
	var out []models.Store
	for i := range r.Stores {
		if r.Stores[i].IsActive {
			out = append(out, r.Stores[i])
		}
	}
	return out, nil
}

func (r *DirectoryRepository) VendorInStore(_ context.Context, vendorID, storeID primitive.ObjectID) (*models.Vendor, error) {
	for i := range r.Vendors {
		if r.Vendors[i].ID == vendorID && r.Vendors[i].StoreID == storeID && r.Vendors[i].IsActive {
			copied := r.Vendors[i]
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *DirectoryRepository) SellerInStore(_ context.Context, sellerID, storeID primitive.ObjectID) (*models.Seller, error) {
	for i := range r.Sellers {
		if r.Sellers[i].ID == sellerID && r.Sellers[i].StoreID == storeID && r.Sellers[i].IsActive {
			copied := r.Sellers[i]
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *DirectoryRepository) SellerByUser(_ context.Context, userID primitive.ObjectID) (*models.Seller, error) {
	for i := range r.Sellers {
		if r.Sellers[i].UserID == userID && r.Sellers[i].IsActive {
			copied := r.Sellers[i]
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *DirectoryRepository) CustomerInStore(_ context.Context, customerID, storeID primitive.ObjectID) (*models.Customer, error) {
	for i := range r.Customers {
		if r.Customers[i].ID == customerID && r.Customers[i].StoreID == storeID && r.Customers[i].IsActive {
			copied := r.Customers[i]
			return &copied, nil
		}
	}
	return nil, nil
}

// ReportRepository is an in-memory mongodb.ReportRepository.
type ReportRepository struct {
	mu    sync.Mutex
	Saved []models.DailyStockReport
}

func (r *ReportRepository) SaveDailyStockReport(_ context.Context, report models.DailyStockReport) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.Saved = append(r.Saved, report)
	return nil
}
