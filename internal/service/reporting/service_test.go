package reporting

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/dudhwala/backend/internal/config"
	"github.com/dudhwala/backend/internal/domain/models"
	"github.com/dudhwala/backend/internal/repository/memory"
	"github.com/dudhwala/backend/internal/service/ledger"
	"github.com/dudhwala/backend/pkg/clients/notify"
)

type fakeSheets struct {
	rows [][]interface{}
	err  error
}

func (f *fakeSheets) AppendRow(_ context.Context, _ string, row []interface{}) error {
	if f.err != nil {
		return f.err
	}
	f.rows = append(f.rows, row)
	return nil
}

type fakeNotifier struct {
	messages []notify.ReportMessage
}

func (f *fakeNotifier) SendReport(_ context.Context, msg notify.ReportMessage) error {
	f.messages = append(f.messages, msg)
	return nil
}

func seedRow(t *testing.T, stocks *memory.StockRepository, storeID primitive.ObjectID, date time.Time, milkType models.MilkType, procured, assigned, sold float64) {
	t.Helper()
	keeper := ledger.NewKeeper(stocks, nil)
	key := ledger.Key{StoreID: storeID, Date: date, MilkType: milkType}
	stock, err := keeper.LoadOrCreate(context.Background(), key)
	if err != nil {
		t.Fatalf("LoadOrCreate: %v", err)
	}
	stock.TotalProcured = procured
	stock.SellerTotalAssign = assigned
	stock.SellerSoldQty = sold
	if err := keeper.SaveReconciled(context.Background(), stock); err != nil {
		t.Fatalf("SaveReconciled: %v", err)
	}
}

func TestGenerateDailyReportsCoversEveryActiveStore(t *testing.T) {
	storeA := models.Store{ID: primitive.NewObjectID(), UserID: primitive.NewObjectID(), Name: "Shivam Dairy", IsActive: true}
	storeB := models.Store{ID: primitive.NewObjectID(), UserID: primitive.NewObjectID(), Name: "Gokul Dairy", IsActive: true}
	inactive := models.Store{ID: primitive.NewObjectID(), UserID: primitive.NewObjectID(), Name: "Closed", IsActive: false}

	directory := &memory.DirectoryRepository{Stores: []models.Store{storeA, storeB, inactive}}
	stocks := memory.NewStockRepository()
	reports := &memory.ReportRepository{}
	sheetsRepo := &fakeSheets{}
	notifier := &fakeNotifier{}

	date := ledger.NormalizeDate(time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC))
	seedRow(t, stocks, storeA.ID, date, models.MilkTypeCow, 100, 40, 20)
	seedRow(t, stocks, storeA.ID, date, models.MilkTypeBuffalo, 60, 25, 10)
	seedRow(t, stocks, storeB.ID, date, models.MilkTypeCow, 30, 10, 5)

	svc := NewService(directory, stocks, reports, sheetsRepo, notifier, config.SheetsConfig{ReportRange: "Reports!A:N"}, nil)
	if err := svc.GenerateDailyReports(context.Background(), date); err != nil {
		t.Fatalf("GenerateDailyReports: %v", err)
	}

	if len(reports.Saved) != 2 {
		t.Fatalf("saved %d reports, want 2", len(reports.Saved))
	}

	var a *models.DailyStockReport
	for i := range reports.Saved {
		if reports.Saved[i].StoreID == storeA.ID {
			a = &reports.Saved[i]
		}
	}
	if a == nil {
		t.Fatal("no report for first store")
	}
	if a.Cow.Procured != 100 || a.Cow.Sold != 20 || a.Cow.Closing != 80 {
		t.Errorf("cow totals = %+v", a.Cow)
	}
	if a.Buffalo.Procured != 60 || a.Buffalo.Remaining != 15 {
		t.Errorf("buffalo totals = %+v", a.Buffalo)
	}

	if len(sheetsRepo.rows) != 2 {
		t.Errorf("appended %d sheet rows, want 2", len(sheetsRepo.rows))
	}
	if len(notifier.messages) != 2 {
		t.Fatalf("sent %d notifications, want 2", len(notifier.messages))
	}
	for _, msg := range notifier.messages {
		if !strings.Contains(msg.Text, "Stock report") {
			t.Errorf("notification text = %q", msg.Text)
		}
	}
}

func TestGenerateDailyReportsSkipsOptionalOutputs(t *testing.T) {
	store := models.Store{ID: primitive.NewObjectID(), UserID: primitive.NewObjectID(), Name: "Shivam Dairy", IsActive: true}
	directory := &memory.DirectoryRepository{Stores: []models.Store{store}}
	reports := &memory.ReportRepository{}

	svc := NewService(directory, memory.NewStockRepository(), reports, nil, nil, config.SheetsConfig{}, nil)
	if err := svc.GenerateDailyReports(context.Background(), time.Now()); err != nil {
		t.Fatalf("GenerateDailyReports: %v", err)
	}

	// No ledger rows for the day still yields a zero-valued report document.
	if len(reports.Saved) != 1 {
		t.Fatalf("saved %d reports, want 1", len(reports.Saved))
	}
	if reports.Saved[0].Cow != (models.StockTotals{}) || reports.Saved[0].Buffalo != (models.StockTotals{}) {
		t.Errorf("report totals = %+v, want zero values", reports.Saved[0])
	}
}

func TestGenerateDailyReportsTreatsSheetsAsBestEffort(t *testing.T) {
	store := models.Store{ID: primitive.NewObjectID(), UserID: primitive.NewObjectID(), Name: "Shivam Dairy", IsActive: true}
	directory := &memory.DirectoryRepository{Stores: []models.Store{store}}
	reports := &memory.ReportRepository{}
	sheetsRepo := &fakeSheets{err: errors.New("quota exceeded")}

	svc := NewService(directory, memory.NewStockRepository(), reports, sheetsRepo, nil, config.SheetsConfig{ReportRange: "Reports!A:N"}, nil)
	if err := svc.GenerateDailyReports(context.Background(), time.Now()); err != nil {
		t.Fatalf("GenerateDailyReports: %v, sheets failure must not fail the run", err)
	}
	if len(reports.Saved) != 1 {
		t.Fatalf("saved %d reports, want 1", len(reports.Saved))
	}
}
