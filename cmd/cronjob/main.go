package main

import (
	"database/sql"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"voltrent-backend/internal/config"
	"voltrent-backend/internal/jobs"
	"voltrent-backend/internal/logger"
	"voltrent-backend/internal/pricing"
	"voltrent-backend/internal/repository/postgres"
	"voltrent-backend/internal/scheduler"
	"voltrent-backend/internal/service"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	runOnce := flag.String("run-once", "", "Run a specific job once and exit (e.g., 'expire-held-rentals', 'mark-overdue-rentals', 'send-return-reminders', 'all')")
	flag.Parse()

	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting VoltRent Cronjob Runner...", "log_level", cfg.Log.Level)

	// Initialize Database
	logger.Info("Connecting to database...", "host", cfg.Database.Host, "port", cfg.Database.Port)
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

	// Initialize Services
	engine := pricing.NewEngine(pricing.PeakBand{
		StartHour: cfg.Pricing.PeakStartHour,
		EndHour:   cfg.Pricing.PeakEndHour,
	})
	paymentSvc := service.NewStripePaymentService(cfg.Stripe)
	emailSvc := service.NewEmailService(cfg.SendGrid)
	smsSvc := service.NewSMSService(cfg.Twilio)

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

	jobServices := &jobs.Services{
		Rental: rentalSvc,
		Email:  emailSvc,
		SMS:    smsSvc,
	}

	// Initialize Job Runner
	jobRunner := jobs.NewJobRunner(db, store, jobServices, cfg)

	// Check if running a single job
	if *runOnce != "" {
		logger.Info("Running job once", "job", *runOnce)
		runJobOnce(jobRunner, *runOnce)
		logger.Info("Job execution completed", "job", *runOnce)
		return
	}

	// Initialize Scheduler
	cronScheduler := scheduler.NewScheduler(jobRunner)

	// Start scheduler
	cronScheduler.Start()
	logger.Info("Cronjob scheduler is running. Press Ctrl+C to stop.")

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	cronScheduler.Stop()
}

func runJobOnce(jobRunner *jobs.JobRunner, name string) {
	switch name {
	case "expire-held-rentals":
		jobRunner.ExpireHeldRentals()
	case "mark-overdue-rentals":
		jobRunner.MarkOverdueRentals()
	case "send-return-reminders":
		jobRunner.SendReturnReminders()
	case "all":
		jobRunner.RunAllJobs()
	default:
		logger.Error("Unknown job name", "job", name)
	}
}
