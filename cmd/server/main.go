package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/dudhwala/backend/internal/config"
	"github.com/dudhwala/backend/internal/repository/mongodb"
	"github.com/dudhwala/backend/internal/repository/sheets"
	"github.com/dudhwala/backend/internal/scheduler"
	"github.com/dudhwala/backend/internal/server/handlers"
	"github.com/dudhwala/backend/internal/server/router"
	assignmentsvc "github.com/dudhwala/backend/internal/service/assignment"
	deliverysvc "github.com/dudhwala/backend/internal/service/delivery"
	"github.com/dudhwala/backend/internal/service/ledger"
	procurementsvc "github.com/dudhwala/backend/internal/service/procurement"
	reportingsvc "github.com/dudhwala/backend/internal/service/reporting"
	"github.com/dudhwala/backend/pkg/clients/notify"
	"github.com/dudhwala/backend/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New())
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	repos, err := mongodb.NewRepositories(context.Background(), cfg.MongoDB.URI, cfg.MongoDB.DBName)
	if err != nil {
		baseLogger.Fatal("failed to init mongodb repositories", zap.Error(err))
	}
	defer func() {
		if err := repos.Close(context.Background()); err != nil {
			baseLogger.Error("failed to close mongodb connection", zap.Error(err))
		}
	}()

	if err := repos.EnsureIndexes(context.Background()); err != nil {
		baseLogger.Fatal("failed to ensure mongodb indexes", zap.Error(err))
	}

	var sheetsRepo sheets.Repository
	if cfg.Sheets.Enabled() {
		sheetsRepo, err = sheets.NewGoogleSheetRepository(context.Background(), cfg.Sheets, baseLogger.Named("repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets repository", zap.Error(err))
		}
		baseLogger.Info("sheets export enabled")
	} else {
		baseLogger.Warn("sheets credentials missing, daily report export disabled")
	}

	var notifier notify.Client
	if cfg.Notify.Enabled() {
		notifier = notify.NewClient(cfg.Notify)
		baseLogger.Info("report webhook notifications enabled")
	} else {
		baseLogger.Warn("report webhook url missing, notifications disabled")
	}

	keeper := ledger.NewKeeper(repos.Stocks, baseLogger.Named("svc.ledger"))
	stockQuery := ledger.NewQuery(repos.Directory, keeper, baseLogger.Named("svc.ledger"))
	procurementSvc := procurementsvc.NewService(repos.Directory, repos.Procurements, keeper, baseLogger.Named("svc.procurement"))
	assignmentSvc := assignmentsvc.NewService(repos.Directory, repos.Assignments, keeper, baseLogger.Named("svc.assignment"))
	deliverySvc := deliverysvc.NewService(repos.Directory, repos.Deliveries, keeper, baseLogger.Named("svc.delivery"))
	reportingSvc := reportingsvc.NewService(repos.Directory, repos.Stocks, repos.Reports, sheetsRepo, notifier, cfg.Sheets, baseLogger.Named("svc.reporting"))

	engine := router.New(router.Handlers{
		Procurement: handlers.NewProcurementHandler(procurementSvc, baseLogger.Named("handlers.procurement")),
		Assignment:  handlers.NewAssignmentHandler(assignmentSvc, baseLogger.Named("handlers.assignment")),
		Delivery:    handlers.NewDeliveryHandler(deliverySvc, baseLogger.Named("handlers.delivery")),
		Stock:       handlers.NewStockHandler(stockQuery, baseLogger.Named("handlers.stock")),
	}, cfg.Auth.JWTSecret, baseLogger.Named("router"))

	sched := scheduler.NewScheduler(cfg.Reporting, reportingSvc, baseLogger.Named("scheduler"))
	sched.Start()
	defer sched.Stop()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}
