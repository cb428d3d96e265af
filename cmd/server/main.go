package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/abelzach/KaroBuddy/internal/config"
	"github.com/abelzach/KaroBuddy/internal/database"
	"github.com/abelzach/KaroBuddy/internal/events"
	"github.com/abelzach/KaroBuddy/internal/modules/bias"
	"github.com/abelzach/KaroBuddy/internal/modules/budget"
	"github.com/abelzach/KaroBuddy/internal/modules/cashflow"
	"github.com/abelzach/KaroBuddy/internal/modules/genome"
	genomejobs "github.com/abelzach/KaroBuddy/internal/modules/genome/jobs"
	"github.com/abelzach/KaroBuddy/internal/modules/goals"
	"github.com/abelzach/KaroBuddy/internal/modules/transactions"
	"github.com/abelzach/KaroBuddy/internal/scheduler"
	"github.com/abelzach/KaroBuddy/internal/server"
	"github.com/abelzach/KaroBuddy/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: cfg.DevMode,
	})

	log.Info().Msg("Starting KaroBuddy DFG engine")

	// Initialize database
	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer db.Close()

	if err := db.Migrate(
		transactions.InitSchema,
		goals.InitSchema,
		genome.InitSchema,
	); err != nil {
		log.Fatal().Err(err).Msg("Failed to run migrations")
	}

	// Shared infrastructure
	eventManager := events.NewManager(log)

	// Repositories
	txRepo := transactions.NewRepository(db.Conn(), log)
	goalRepo := goals.NewRepository(db.Conn(), log)
	genomeRepo := genome.NewRepository(db.Conn(), log)

	// Core components
	estimator := cashflow.NewEstimator(log)
	forecaster := cashflow.NewForecaster(estimator, cfg.ModelFitTimeout, log)
	detector := bias.NewDetector(log)
	allocator := budget.NewAllocator(log)

	// Services
	goalService := goals.NewService(goalRepo, txRepo, eventManager, log)
	genomeService := genome.NewService(
		txRepo,
		goalService,
		forecaster,
		detector,
		allocator,
		genomeRepo,
		eventManager,
		log,
	)

	// Scheduler with the nightly genome refresh
	sched := scheduler.New(log)
	sched.Start()
	defer sched.Stop()

	refreshJob := genomejobs.NewRefreshJob(genomeService, cfg.ForecastHorizonDays, log)
	if err := sched.AddJob(cfg.GenomeRefreshSchedule, refreshJob); err != nil {
		log.Fatal().Err(err).Msg("Failed to register genome refresh job")
	}

	// HTTP server
	srv := server.New(server.Config{
		Port:    cfg.Port,
		DevMode: cfg.DevMode,
		Log:     log,
		DB:      db,

		TransactionsHandler: transactions.NewHandler(txRepo, log),
		CashFlowHandler:     cashflow.NewHandler(forecaster, cfg.ForecastHorizonDays, log),
		BiasHandler:         bias.NewHandler(detector, log),
		BudgetHandler:       budget.NewHandler(allocator, log),
		GoalsHandler:        goals.NewHandler(goalService, log),
		GenomeHandler:       genome.NewHandler(genomeService, cfg.ForecastHorizonDays, log),
	})

	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	log.Info().Int("port", cfg.Port).Msg("Server started successfully")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped")
}
