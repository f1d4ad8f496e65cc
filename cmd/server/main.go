package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/aruizdev/tablero/internal/config"
	"github.com/aruizdev/tablero/internal/repository/mongodb"
	"github.com/aruizdev/tablero/internal/repository/sheets"
	"github.com/aruizdev/tablero/internal/repository/supabase"
	"github.com/aruizdev/tablero/internal/scheduler"
	"github.com/aruizdev/tablero/internal/server/handlers"
	"github.com/aruizdev/tablero/internal/server/router"
	assistantsvc "github.com/aruizdev/tablero/internal/service/assistant"
	insightsvc "github.com/aruizdev/tablero/internal/service/insights"
	"github.com/aruizdev/tablero/internal/service/notifications"
	occupancysvc "github.com/aruizdev/tablero/internal/service/occupancy"
	treasurysvc "github.com/aruizdev/tablero/internal/service/treasury"
	"github.com/aruizdev/tablero/pkg/clients/anthropic"
	bankclient "github.com/aruizdev/tablero/pkg/clients/bank"
	"github.com/aruizdev/tablero/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New())
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	// Notification center: in-memory bus, optionally backed by Mongo history.
	var historyStore notifications.HistoryStore
	if cfg.MongoDB.URI != "" {
		mongoRepo, err := mongodb.NewMongoDBRepository(context.Background(), cfg.MongoDB.URI, cfg.MongoDB.DBName)
		if err != nil {
			baseLogger.Fatal("failed to init mongodb repository", zap.Error(err))
		}
		defer func() {
			if err := mongoRepo.Close(context.Background()); err != nil {
				baseLogger.Error("failed to close mongodb connection", zap.Error(err))
			}
		}()
		historyStore = mongoRepo
	} else {
		baseLogger.Warn("mongodb uri missing, notification history is in-memory only")
	}

	bus := notifications.NewBus(historyStore, baseLogger.Named("svc.notifications"))
	if err := bus.Restore(context.Background()); err != nil {
		baseLogger.Error("failed restoring notification history", zap.Error(err))
	}

	datastore := supabase.NewRestRepository(cfg.Supabase)
	occupancySvc := occupancysvc.NewService(datastore, cfg.Occupancy.TargetPct, bus, baseLogger.Named("svc.occupancy"))

	var aiClient anthropic.Client
	if cfg.AI.AnthropicKey != "" {
		aiClient = anthropic.NewClient(cfg.AI.AnthropicKey)
		baseLogger.Info("anthropic ai client enabled")
	} else {
		baseLogger.Warn("anthropic api key missing, insights and free-form assistant replies disabled")
	}

	insightSvc := insightsvc.NewService(aiClient, baseLogger.Named("svc.insights"))
	chatSvc := assistantsvc.NewService(cfg.Assistant, occupancySvc, aiClient, baseLogger.Named("svc.assistant"))

	var treasurySvc *treasurysvc.Service
	if cfg.Bank.BaseURL != "" {
		treasurySvc = treasurysvc.NewService(bankclient.NewClient(cfg.Bank), bus, baseLogger.Named("svc.treasury"))
		baseLogger.Info("treasury integration enabled")
	} else {
		baseLogger.Warn("bank api base url missing, treasury module disabled")
	}

	var exporter sheets.Exporter
	if cfg.Sheets.SpreadsheetID != "" {
		sheetExporter, err := sheets.NewGoogleSheetExporter(context.Background(), cfg.Sheets, baseLogger.Named("repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets exporter", zap.Error(err))
		}
		exporter = sheetExporter
	} else {
		baseLogger.Warn("spreadsheet id missing, report export disabled")
	}

	occupancyHandler := handlers.NewOccupancyHandler(occupancySvc, insightSvc, exporter, cfg.Occupancy, baseLogger.Named("handlers.occupancy"))
	assistantHandler := handlers.NewAssistantHandler(chatSvc, baseLogger.Named("handlers.assistant"))
	dashboardHandler := handlers.NewDashboardHandler(bus, treasurySvc, baseLogger.Named("handlers.dashboard"))
	engine := router.New(occupancyHandler, assistantHandler, dashboardHandler, baseLogger.Named("router"))

	sched := scheduler.NewScheduler(*cfg, occupancySvc, treasurySvc, baseLogger.Named("scheduler"))
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
