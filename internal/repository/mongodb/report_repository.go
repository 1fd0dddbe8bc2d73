package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/dudhwala/backend/internal/domain/models"
)

// ReportRepository stores end-of-day stock reports.
type ReportRepository interface {
	SaveDailyStockReport(ctx context.Context, report models.DailyStockReport) error
}

type mongoReportRepository struct {
	coll *mongo.Collection
}

// SaveDailyStockReport saves a daily stock report to the database.
func (r *mongoReportRepository) SaveDailyStockReport(ctx context.Context, report models.DailyStockReport) error {
	if _, err := r.coll.InsertOne(ctx, report); err != nil {
		return fmt.Errorf("failed to insert daily stock report: %w", err)
	}
	return nil
}
