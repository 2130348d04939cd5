package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/reluam/pokrok/internal/app"
	"github.com/reluam/pokrok/internal/infra/config"
	idb "github.com/reluam/pokrok/internal/infra/database"
	"github.com/reluam/pokrok/internal/infra/httpapi"
	"github.com/reluam/pokrok/internal/infra/logger"
	"github.com/reluam/pokrok/internal/infra/scheduler"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Log.Fatalf("FATAL: Could not load application configuration: %v", err)
	}

	logger.Init(cfg)
	log := logger.Get()
	log.Infof("Configuration loaded. LogLevel: %s, Environment: %s, Addr: %s", cfg.LogLevel, cfg.Environment, cfg.HTTPAddr)

	// Initialize Database Connection
	db, err := idb.NewPostgresConnection(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("FATAL: Could not connect to database: %v", err)
	}
	defer db.Close()
	log.Info("Database connection established successfully.")

	// Initialize Repositories
	userRepo := idb.NewPostgresUserRepository(db)
	autoRepo := idb.NewPostgresAutomationRepository(db)
	instRepo := idb.NewPostgresInstanceRepository(db)

	// Initialize GenerationService
	generationService := app.NewGenerationService(userRepo, autoRepo, instRepo, log)
	log.Info("Generation service initialized.")

	// Register HTTP handlers
	mux := http.NewServeMux()
	handler := httpapi.NewHandler(generationService, httpapi.NewHeaderAuthenticator(), log)
	handler.Register(mux)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	// Optional in-process sweep for deployments without an external cron.
	var genScheduler *scheduler.GenerationScheduler
	if cfg.GenerationCronSpec != "" {
		genScheduler = scheduler.NewGenerationScheduler(generationService, userRepo, log, cfg.GenerationCronSpec)
		if err := genScheduler.Start(); err != nil {
			log.Fatalf("FATAL: Could not start generation scheduler: %v", err)
		}
	}

	go func() {
		log.Infof("HTTP server listening on %s", cfg.HTTPAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("FATAL: HTTP server failed: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down application...")
	if genScheduler != nil {
		genScheduler.Stop()
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Errorf("HTTP server shutdown error: %v", err)
	}
	log.Info("Application shut down gracefully.")
}
