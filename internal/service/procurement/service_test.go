package procurement

import (
	"context"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/dudhwala/backend/internal/domain/apierr"
	"github.com/dudhwala/backend/internal/domain/models"
	"github.com/dudhwala/backend/internal/repository/memory"
	"github.com/dudhwala/backend/internal/service/ledger"
)

type fixture struct {
	svc     *Service
	keeper  *ledger.Keeper
	ownerID primitive.ObjectID
	storeID primitive.ObjectID
	vendor  primitive.ObjectID
}

func newFixture() *fixture {
	ownerID := primitive.NewObjectID()
	storeID := primitive.NewObjectID()
	vendorID := primitive.NewObjectID()

	directory := &memory.DirectoryRepository{
		Stores:  []models.Store{{ID: storeID, UserID: ownerID, Name: "Shivam Dairy", IsActive: true}},
		Vendors: []models.Vendor{{ID: vendorID, StoreID: storeID, Name: "Ramesh", IsActive: true}},
	}
	keeper := ledger.NewKeeper(memory.NewStockRepository(), nil)

	return &fixture{
		svc:     NewService(directory, memory.NewProcurementRepository(), keeper, nil),
		keeper:  keeper,
		ownerID: ownerID,
		storeID: storeID,
		vendor:  vendorID,
	}
}

func (f *fixture) stock(t *testing.T, date time.Time, milkType models.MilkType) *models.DailyStock {
	t.Helper()
	key := ledger.Key{StoreID: f.storeID, Date: ledger.NormalizeDate(date), MilkType: milkType}
	stock, err := f.keeper.Get(context.Background(), key)
	if err != nil {
		t.Fatalf("Get stock: %v", err)
	}
	return stock
}

func TestCreateRecordsAndIncrementsLedger(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	date := time.Date(2026, 3, 10, 6, 30, 0, 0, time.UTC)

	p, err := f.svc.Create(ctx, f.ownerID, CreateInput{
		VendorID:          f.vendor,
		MilkTypesSupplied: []models.MilkType{models.MilkTypeBuffalo},
		Quantity:          120,
		RatePerLiter:      52,
		Date:              date,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if p.ID.IsZero() {
		t.Error("created procurement has no id")
	}
	if p.TotalAmount != 120*52 {
		t.Errorf("totalAmount = %g, want %g", p.TotalAmount, 120*52.0)
	}
	if !p.Date.Equal(ledger.NormalizeDate(date)) {
		t.Errorf("date not normalized: %v", p.Date)
	}

	stock := f.stock(t, date, models.MilkTypeBuffalo)
	if stock == nil {
		t.Fatal("ledger row was not created")
	}
	if stock.TotalProcured != 120 || stock.ClosingStock != 120 {
		t.Errorf("ledger = procured %g closing %g, want 120/120", stock.TotalProcured, stock.ClosingStock)
	}
}

func TestCreateRejectsBadInput(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	date := time.Now()

	cases := []struct {
		name string
		in   CreateInput
		kind apierr.Kind
	}{
		{"missing vendor", CreateInput{Quantity: 10, RatePerLiter: 50, Date: date}, apierr.KindValidation},
		{"missing date", CreateInput{VendorID: f.vendor, Quantity: 10, RatePerLiter: 50}, apierr.KindValidation},
		{"zero quantity", CreateInput{VendorID: f.vendor, Quantity: 0, RatePerLiter: 50, Date: date}, apierr.KindValidation},
		{"negative quantity", CreateInput{VendorID: f.vendor, Quantity: -5, RatePerLiter: 50, Date: date}, apierr.KindValidation},
		{"zero rate", CreateInput{VendorID: f.vendor, Quantity: 10, Date: date}, apierr.KindValidation},
		{"unknown milk type", CreateInput{VendorID: f.vendor, MilkTypesSupplied: []models.MilkType{"goat"}, Quantity: 10, RatePerLiter: 50, Date: date}, apierr.KindValidation},
		{"unknown vendor", CreateInput{VendorID: primitive.NewObjectID(), Quantity: 10, RatePerLiter: 50, Date: date}, apierr.KindNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := f.svc.Create(ctx, f.ownerID, tc.in); !apierr.IsKind(err, tc.kind) {
				t.Fatalf("Create = %v, want kind %s", err, tc.kind)
			}
		})
	}
}

func TestCreateRejectsSecondEventForVendorDay(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	date := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	in := CreateInput{VendorID: f.vendor, Quantity: 50, RatePerLiter: 48, Date: date}
	if _, err := f.svc.Create(ctx, f.ownerID, in); err != nil {
		t.Fatalf("first Create: %v", err)
	}

	_, err := f.svc.Create(ctx, f.ownerID, in)
	if !apierr.IsKind(err, apierr.KindDuplicate) {
		t.Fatalf("second Create = %v, want duplicate", err)
	}
	if err.Error() != "Milk procurement already exists for this vendor on this date" {
		t.Errorf("message = %q", err.Error())
	}

	stock := f.stock(t, date, models.MilkTypeCow)
	if stock.TotalProcured != 50 {
		t.Errorf("totalProcured = %g after rejected duplicate, want 50", stock.TotalProcured)
	}
}

func TestUpdateMovesQuantityBetweenMilkTypes(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	date := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	p, err := f.svc.Create(ctx, f.ownerID, CreateInput{
		VendorID:          f.vendor,
		MilkTypesSupplied: []models.MilkType{models.MilkTypeCow},
		Quantity:          100,
		RatePerLiter:      45,
		Date:              date,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	qty := 80.0
	updated, err := f.svc.Update(ctx, f.ownerID, p.ID, UpdateInput{
		MilkTypesSupplied: []models.MilkType{models.MilkTypeBuffalo},
		Quantity:          &qty,
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.TotalAmount != 80*45 {
		t.Errorf("totalAmount = %g, want %g", updated.TotalAmount, 80*45.0)
	}

	cow := f.stock(t, date, models.MilkTypeCow)
	if cow.TotalProcured != 0 || cow.ClosingStock != 0 {
		t.Errorf("cow ledger = procured %g closing %g, want 0/0", cow.TotalProcured, cow.ClosingStock)
	}
	buffalo := f.stock(t, date, models.MilkTypeBuffalo)
	if buffalo == nil || buffalo.TotalProcured != 80 {
		t.Fatalf("buffalo ledger = %+v, want procured 80", buffalo)
	}
}

func TestUpdateAdjustsSameRowInPlace(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	date := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	p, err := f.svc.Create(ctx, f.ownerID, CreateInput{VendorID: f.vendor, Quantity: 60, RatePerLiter: 45, Date: date})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	qty := 90.0
	if _, err := f.svc.Update(ctx, f.ownerID, p.ID, UpdateInput{Quantity: &qty}); err != nil {
		t.Fatalf("Update: %v", err)
	}

	stock := f.stock(t, date, models.MilkTypeCow)
	if stock.TotalProcured != 90 {
		t.Errorf("totalProcured = %g, want 90", stock.TotalProcured)
	}
}

func TestCreateUpdateDeleteRoundTripIsNetZero(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	date := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	p, err := f.svc.Create(ctx, f.ownerID, CreateInput{VendorID: f.vendor, Quantity: 70, RatePerLiter: 50, Date: date})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	qty := 40.0
	if _, err := f.svc.Update(ctx, f.ownerID, p.ID, UpdateInput{Quantity: &qty}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if err := f.svc.Delete(ctx, f.ownerID, p.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	stock := f.stock(t, date, models.MilkTypeCow)
	if stock.TotalProcured != 0 || stock.ClosingStock != 0 {
		t.Errorf("ledger after round trip = procured %g closing %g, want 0/0", stock.TotalProcured, stock.ClosingStock)
	}

	list, err := f.svc.ListByStore(ctx, f.ownerID)
	if err != nil {
		t.Fatalf("ListByStore: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("ListByStore returned %d events after delete, want 0", len(list))
	}
}

func TestDeleteFloorsLedgerAtZero(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	date := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	p, err := f.svc.Create(ctx, f.ownerID, CreateInput{VendorID: f.vendor, Quantity: 30, RatePerLiter: 50, Date: date})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	// Simulate part of the day's stock already consumed before the event is
	// withdrawn.
	key := ledger.Key{StoreID: f.storeID, Date: ledger.NormalizeDate(date), MilkType: models.MilkTypeCow}
	stock, err := f.keeper.Get(ctx, key)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	stock.DirectSoldQty = 10
	if err := f.keeper.SaveReconciled(ctx, stock); err != nil {
		t.Fatalf("SaveReconciled: %v", err)
	}

	if err := f.svc.Delete(ctx, f.ownerID, p.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	after := f.stock(t, date, models.MilkTypeCow)
	if after.TotalProcured != 0 || after.ClosingStock != 0 {
		t.Errorf("ledger = procured %g closing %g, want floored at 0/0", after.TotalProcured, after.ClosingStock)
	}
}

func TestListByVendorScopesToStore(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	if _, err := f.svc.Create(ctx, f.ownerID, CreateInput{VendorID: f.vendor, Quantity: 25, RatePerLiter: 50, Date: time.Now()}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	list, err := f.svc.ListByVendor(ctx, f.ownerID, f.vendor)
	if err != nil {
		t.Fatalf("ListByVendor: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("ListByVendor returned %d events, want 1", len(list))
	}

	if _, err := f.svc.ListByVendor(ctx, f.ownerID, primitive.NewObjectID()); !apierr.IsKind(err, apierr.KindNotFound) {
		t.Fatalf("ListByVendor with unknown vendor = %v, want not found", err)
	}

	if _, err := f.svc.ListByStore(ctx, primitive.NewObjectID()); !apierr.IsKind(err, apierr.KindNotFound) {
		t.Fatalf("ListByStore with unknown owner = %v, want not found", err)
	}
}
