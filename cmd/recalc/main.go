package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"sort"
	"time"

	"wordpath/internal/config"
	"wordpath/internal/database"
	"wordpath/internal/repository"
	"wordpath/internal/service"
)

// recalc runs the crowd-sourced difficulty aggregation once and exits. It is
// the manual counterpart of the nightly job, useful after bulk word imports.
func main() {
	timeout := flag.Duration("timeout", 10*time.Minute, "Maximum time for the recalculation")
	flag.Parse()

	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.Open(cfg.DatabaseType, cfg.DatabasePath, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Run migrations to ensure schema is up to date
	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	wordRepo := repository.NewWordRepository(db)
	progressRepo := repository.NewProgressRepository(db)
	difficultyService := service.NewDifficultyService(wordRepo, progressRepo)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	start := time.Now()
	summary, err := difficultyService.RecalculateAll(ctx)
	if err != nil {
		log.Fatalf("Recalculation failed: %v", err)
	}

	fmt.Printf("Difficulty recalculation finished in %s\n", time.Since(start).Round(time.Millisecond))
	fmt.Printf("  Total words:   %d\n", summary.TotalWords)
	fmt.Printf("  Updated:       %d\n", summary.UpdatedCount)
	fmt.Printf("  Without data:  %d\n", summary.NoDataCount)

	if len(summary.LevelHistogram) > 0 {
		fmt.Println("  Level distribution:")
		levels := make([]int, 0, len(summary.LevelHistogram))
		for level := range summary.LevelHistogram {
			levels = append(levels, level)
		}
		sort.Ints(levels)
		for _, level := range levels {
			fmt.Printf("    level %2d: %d word(s)\n", level, summary.LevelHistogram[level])
		}
	}
}
