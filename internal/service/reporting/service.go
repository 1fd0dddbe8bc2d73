// Package reporting builds the end-of-day stock summary per store: a MongoDB
// report document, an optional Google Sheets row, and an optional webhook
// notification.
package reporting

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/dudhwala/backend/internal/config"
	"github.com/dudhwala/backend/internal/domain/models"
	"github.com/dudhwala/backend/internal/repository/mongodb"
	"github.com/dudhwala/backend/internal/repository/sheets"
	"github.com/dudhwala/backend/internal/service/ledger"
	"github.com/dudhwala/backend/pkg/clients/notify"
)

const dateLayout = "2006-01-02"

// Service generates daily stock reports.
type Service struct {
	directory mongodb.DirectoryRepository
	stocks    mongodb.StockRepository
	reports   mongodb.ReportRepository
	sheets    sheets.Repository
	notifier  notify.Client
	cfg       config.SheetsConfig
	logger    *zap.Logger
}

// NewService wires a new reporting service. The sheets repository and notifier
// may be nil; the corresponding outputs are skipped.
func NewService(directory mongodb.DirectoryRepository, stocks mongodb.StockRepository, reports mongodb.ReportRepository, sheetsRepo sheets.Repository, notifier notify.Client, cfg config.SheetsConfig, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		directory: directory,
		stocks:    stocks,
		reports:   reports,
		sheets:    sheetsRepo,
		notifier:  notifier,
		cfg:       cfg,
		logger:    logger,
	}
}

// GenerateDailyReports builds and distributes the stock report of every active
// store for the given day. Per-store failures are logged and do not stop the
// remaining stores; the first error is returned at the end.
func (s *Service) GenerateDailyReports(ctx context.Context, day time.Time) error {
	date := ledger.NormalizeDate(day)

	stores, err := s.directory.ActiveStores(ctx)
	if err != nil {
		return fmt.Errorf("load active stores: %w", err)
	}

	var firstErr error
	for i := range stores {
		if err := s.generateStoreReport(ctx, &stores[i], date); err != nil {
			s.logger.Error("failed generating store report",
				zap.String("storeID", stores[i].ID.Hex()),
				zap.Error(err))
			if firstErr == nil {
				firstErr = err
			}
		}
	}

	s.logger.Info("daily stock reports generated",
		zap.Time("date", date),
		zap.Int("stores", len(stores)))

	return firstErr
}

func (s *Service) generateStoreReport(ctx context.Context, store *models.Store, date time.Time) error {
	rows, err := s.stocks.FindByDate(ctx, store.ID, date)
	if err != nil {
		return fmt.Errorf("load stock rows: %w", err)
	}

	report := models.DailyStockReport{
		StoreID:   store.ID,
		StoreName: store.Name,
		Date:      date,
		CreatedAt: time.Now().UTC(),
	}

	for i := range rows {
		totals := models.StockTotals{
			Procured:  rows[i].TotalProcured,
			Assigned:  rows[i].SellerTotalAssign,
			Sold:      rows[i].SellerSoldQty,
			Direct:    rows[i].DirectSoldQty,
			Wastage:   rows[i].Wastage,
			Closing:   rows[i].ClosingStock,
			Remaining: rows[i].SellerRemainingMilk,
		}
		switch rows[i].MilkType {
		case models.MilkTypeCow:
			report.Cow = totals
		case models.MilkTypeBuffalo:
			report.Buffalo = totals
		}
	}

	if err := s.reports.SaveDailyStockReport(ctx, report); err != nil {
		return err
	}

	if s.sheets != nil {
		if err := s.appendSheetRow(ctx, report); err != nil {
			// Sheets export is best-effort; the Mongo document is the record.
			s.logger.Warn("sheets export failed", zap.String("storeID", store.ID.Hex()), zap.Error(err))
		}
	}

	if s.notifier != nil {
		msg := notify.ReportMessage{
			StoreID:   store.ID.Hex(),
			StoreName: store.Name,
			Date:      date,
			Text:      formatReportText(report),
		}
		if err := s.notifier.SendReport(ctx, msg); err != nil {
			s.logger.Warn("report notification failed", zap.String("storeID", store.ID.Hex()), zap.Error(err))
		}
	}

	return nil
}

func (s *Service) appendSheetRow(ctx context.Context, report models.DailyStockReport) error {
	row := []interface{}{
		report.Date.Format(dateLayout),
		report.StoreName,
		report.Cow.Procured, report.Cow.Assigned, report.Cow.Sold, report.Cow.Direct, report.Cow.Wastage, report.Cow.Closing,
		report.Buffalo.Procured, report.Buffalo.Assigned, report.Buffalo.Sold, report.Buffalo.Direct, report.Buffalo.Wastage, report.Buffalo.Closing,
	}
	return s.sheets.AppendRow(ctx, s.cfg.ReportRange, row)
}

func formatReportText(report models.DailyStockReport) string {
	return fmt.Sprintf(
		"Stock report %s - %s\nCow: procured %.1fL, sold %.1fL, closing %.1fL\nBuffalo: procured %.1fL, sold %.1fL, closing %.1fL",
		report.StoreName,
		report.Date.Format(dateLayout),
		report.Cow.Procured, report.Cow.Sold, report.Cow.Closing,
		report.Buffalo.Procured, report.Buffalo.Sold, report.Buffalo.Closing)
}
