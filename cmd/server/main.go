package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	httpapi "gamerent-backend/internal/api/http"
	"gamerent-backend/internal/config"
	"gamerent-backend/internal/jobs"
	"gamerent-backend/internal/logger"
	"gamerent-backend/internal/repository/postgres"
	"gamerent-backend/internal/scheduler"
	"gamerent-backend/internal/security"
	"gamerent-backend/internal/service"
	"gamerent-backend/internal/storage"
)

func main() {
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting GameRent Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	if err := postgres.Migrate(context.Background(), db); err != nil {
		logger.Error("Failed to run migrations", "error", err)
		log.Fatalf("Failed to run migrations: %v", err)
	}

	store := postgres.NewStore(db)

	tokenManager := security.NewTokenManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry)

	fileStorage, err := storage.NewLocalStorage(cfg.Storage.UploadDir)
	if err != nil {
		logger.Error("Failed to initialize file storage", "error", err)
		log.Fatalf("Failed to initialize file storage: %v", err)
	}

	emailSvc := service.NewEmailService(cfg.Email.APIKey, cfg.Email.FromEmail, cfg.Email.FromName)

	authSvc := service.NewAuthService(store, tokenManager)
	orderSvc := service.NewOrderService(store, emailSvc, cfg.Email.AdminEmail)
	accountSvc := service.NewAccountService(store)
	ledgerSvc := service.NewLedgerService(store, emailSvc)
	noteSvc := service.NewNotificationService(store)

	warningWindow := time.Duration(cfg.Scheduler.WarningWindowMinutes) * time.Minute
	jobRunner := jobs.NewJobRunner(store, emailSvc, warningWindow)

	router := httpapi.NewRouter(httpapi.RouterConfig{
		Auth:          authSvc,
		Orders:        orderSvc,
		Accounts:      accountSvc,
		Ledger:        ledgerSvc,
		Notifications: noteSvc,
		Tokens:        tokenManager,
		Files:         fileStorage,
		JobRunner:     jobRunner,
		MaxFileSizeMB: cfg.Storage.MaxFileSize,
	})

	// The server also runs the sweep in-process so a single binary covers
	// deployments without a separate cronjob pod.
	cronScheduler, err := scheduler.NewScheduler(jobRunner, cfg.Scheduler.SweepSpec)
	if err != nil {
		logger.Error("Failed to register sweep schedule", "error", err)
		log.Fatalf("Failed to register sweep schedule: %v", err)
	}
	cronScheduler.Start()

	server := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server error", "error", err)
			log.Fatalf("HTTP server error: %v", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down...")
	cronScheduler.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
	}
	logger.Info("Server stopped. Goodbye!")
}
