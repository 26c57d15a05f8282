package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"gamerent-backend/internal/config"
	"gamerent-backend/internal/jobs"
	"gamerent-backend/internal/logger"
	"gamerent-backend/internal/repository/postgres"
	"gamerent-backend/internal/scheduler"
	"gamerent-backend/internal/service"
)

func main() {
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	runOnce := flag.Bool("run-once", false, "Run the sweep once and exit")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting GameRent Sweep Runner...", "log_level", cfg.Log.Level)

	logger.Info("Connecting to database...", "host", cfg.Database.Host, "port", cfg.Database.Port)
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

	store := postgres.NewStore(db)
	emailSvc := service.NewEmailService(cfg.Email.APIKey, cfg.Email.FromEmail, cfg.Email.FromName)

	warningWindow := time.Duration(cfg.Scheduler.WarningWindowMinutes) * time.Minute
	jobRunner := jobs.NewJobRunner(store, emailSvc, warningWindow)

	if *runOnce {
		logger.Info("Running sweep once")
		jobRunner.RunScheduledSweep(context.Background())
		logger.Info("Sweep completed")
		return
	}

	cronScheduler, err := scheduler.NewScheduler(jobRunner, cfg.Scheduler.SweepSpec)
	if err != nil {
		logger.Error("Failed to register sweep schedule", "error", err)
		log.Fatalf("Failed to register sweep schedule: %v", err)
	}
	cronScheduler.Start()
	logger.Info("Sweep scheduler is running. Press Ctrl+C to stop.")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down sweep scheduler...")
	cronScheduler.Stop()
	logger.Info("Sweep scheduler stopped. Goodbye!")
}
