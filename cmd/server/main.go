package main

import (
	"database/sql"
	"flag"
	"log"
	"net/http"

	_ "github.com/lib/pq"

	httpapi "rentledger/internal/api/http"
	"rentledger/internal/clock"
	"rentledger/internal/config"
	"rentledger/internal/logger"
	"rentledger/internal/repository/postgres"
	"rentledger/internal/repository/postgres/migrations"
	"rentledger/internal/security"
	"rentledger/internal/service"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Rentledger...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	// Initialize Database
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Test database connection
	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Apply schema migrations
	if err := migrations.Up(db); err != nil {
		logger.Error("Failed to apply migrations", "error", err)
		log.Fatalf("Failed to apply migrations: %v", err)
	}
	logger.Info("Database schema up to date")

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Security
	tokenManager := security.NewTokenManager(cfg.JWT.Secret)
	authMiddleware := httpapi.NewAuthMiddleware(tokenManager)

	// Initialize Services
	catalogSvc := service.NewCatalogService(store)
	rentalSvc := service.NewRentalService(
		store,
		clock.System(),
		cfg.Rental.DurationUnitSeconds,
		cfg.Rental.PenaltyUnitSeconds,
	)
	ledgerSvc := service.NewLedgerService(store)
	reputationSvc := service.NewReputationService(store)
	eventSvc := service.NewEventService(store)

	// Initialize HTTP handlers
	assetHandler := httpapi.NewAssetHandler(catalogSvc)
	rentalHandler := httpapi.NewRentalHandler(rentalSvc)
	ledgerHandler := httpapi.NewLedgerHandler(ledgerSvc)
	reputationHandler := httpapi.NewReputationHandler(reputationSvc)
	eventHandler := httpapi.NewEventHandler(eventSvc)

	router := httpapi.NewRouter(
		authMiddleware,
		assetHandler,
		rentalHandler,
		ledgerHandler,
		reputationHandler,
		eventHandler,
	)

	logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
	if err := http.ListenAndServe(cfg.GetServerAddress(), router); err != nil {
		logger.Error("HTTP server error", "error", err)
		log.Fatalf("Failed to serve: %v", err)
	}
}
