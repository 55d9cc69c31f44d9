package main

import (
	"database/sql"
	"flag"
	"log"
	"net/http"

	httpapi "voltrent-backend/internal/api/http"
	"voltrent-backend/internal/config"
	"voltrent-backend/internal/logger"
	"voltrent-backend/internal/pricing"
	"voltrent-backend/internal/repository/postgres"
	"voltrent-backend/internal/service"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Environment overrides may come from a local .env file
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting VoltRent Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
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

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize pricing engine
	engine := pricing.NewEngine(pricing.PeakBand{
		StartHour: cfg.Pricing.PeakStartHour,
		EndHour:   cfg.Pricing.PeakEndHour,
	})

	// Initialize external collaborators
	paymentSvc := service.NewStripePaymentService(cfg.Stripe)
	emailSvc := service.NewEmailService(cfg.SendGrid)

	// Initialize Services
	rentalSvc := service.NewRentalService(
		store.RentalRepository,
		store.VehicleRepository,
		store.CustomerRepository,
		store.LedgerRepository,
		store.NotificationRepository,
		engine,
		paymentSvc,
		emailSvc,
		cfg.Pricing.Currency,
	)
	catalogSvc := service.NewCatalogService(store.StationRepository, store.VehicleRepository)
	customerSvc := service.NewCustomerService(store.CustomerRepository)
	ledgerSvc := service.NewLedgerService(store.LedgerRepository)
	noteSvc := service.NewNotificationService(store.NotificationRepository)

	// Initialize HTTP handlers
	rentalHandler := httpapi.NewRentalHandler(rentalSvc, ledgerSvc)
	catalogHandler := httpapi.NewCatalogHandler(catalogSvc)
	customerHandler := httpapi.NewCustomerHandler(customerSvc, ledgerSvc, noteSvc)

	router := httpapi.NewRouter(rentalHandler, catalogHandler, customerHandler)

	logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
	if err := http.ListenAndServe(cfg.GetServerAddress(), router); err != nil {
		logger.Error("HTTP server stopped", "error", err)
		log.Fatalf("HTTP server stopped: %v", err)
	}
}
