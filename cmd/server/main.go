package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"wordpath/internal/config"
	"wordpath/internal/database"
	"wordpath/internal/handlers"
	"wordpath/internal/jobs"
	"wordpath/internal/repository"
	"wordpath/internal/service"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.Open(cfg.DatabaseType, cfg.DatabasePath, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Run migrations
	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize repositories
	wordRepo := repository.NewWordRepository(db)
	progressRepo := repository.NewProgressRepository(db)
	placementRepo := repository.NewPlacementRepository(db)
	userRepo := repository.NewUserRepository(db)

	// Initialize services
	reviewService := service.NewReviewService(wordRepo, progressRepo)
	triageService := service.NewTriageService(wordRepo, progressRepo, userRepo, cfg.DailyGoal)
	placementService := service.NewPlacementService(placementRepo, wordRepo, userRepo)
	difficultyService := service.NewDifficultyService(wordRepo, progressRepo)
	activityService := service.NewActivityService(userRepo, cfg.DailyGoal)

	reminderService, err := service.NewReminderService(cfg.AWSRegion, cfg.SESFromEmail, cfg.SESFromName)
	if err != nil {
		log.Fatalf("Failed to initialize reminder service: %v", err)
	}

	// Start background jobs
	if cfg.JobsEnabled {
		scheduler := jobs.New(difficultyService, reminderService, userRepo, progressRepo)
		if err := scheduler.Start(cfg.RecalcTime, cfg.ReminderTime); err != nil {
			log.Fatalf("Failed to start background jobs: %v", err)
		}
		defer scheduler.Stop()
	}

	// Initialize handlers
	reviewHandler := handlers.NewReviewHandler(reviewService, activityService)
	triageHandler := handlers.NewTriageHandler(triageService)
	placementHandler := handlers.NewPlacementHandler(placementService)
	adminHandler := handlers.NewAdminHandler(difficultyService)

	// Setup routes
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/v1/users/{userID}/reviews", reviewHandler.GetDueWords)
	mux.HandleFunc("POST /api/v1/users/{userID}/reviews", reviewHandler.SubmitReview)
	mux.HandleFunc("GET /api/v1/users/{userID}/reviews/stats", reviewHandler.GetReviewStats)
	mux.HandleFunc("GET /api/v1/users/{userID}/units/{unit}/words", reviewHandler.GetUnitWords)

	mux.HandleFunc("POST /api/v1/users/{userID}/triage", triageHandler.Triage)
	mux.HandleFunc("GET /api/v1/users/{userID}/triage/next", triageHandler.NextTriageWord)
	mux.HandleFunc("GET /api/v1/users/{userID}/stats", triageHandler.GetUserStats)
	mux.HandleFunc("GET /api/v1/users/{userID}/stats/units", triageHandler.GetUnitStats)

	mux.HandleFunc("POST /api/v1/users/{userID}/placement/start", placementHandler.Start)
	mux.HandleFunc("POST /api/v1/users/{userID}/placement/answer", placementHandler.SubmitAnswer)
	mux.HandleFunc("GET /api/v1/users/{userID}/placement", placementHandler.GetSession)

	mux.HandleFunc("POST /api/v1/admin/difficulty/recalculate", adminHandler.RecalculateDifficulty)

	// Create server with middleware
	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      handlers.Logging(mux),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Server starting on port %s", cfg.ServerPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Forced shutdown: %v", err)
	}
	log.Println("Server stopped")
}
