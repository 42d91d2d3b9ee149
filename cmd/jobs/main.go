package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"redaccion/config"
	"redaccion/providers"
	"redaccion/providers/bandcamp"
	"redaccion/providers/spotifysearch"
	"redaccion/services"
	"redaccion/storage"
)

// One-shot runner for the scheduled jobs, meant for cron containers and
// manual operation:
//
//	jobs check-spotify   runs the disc link backfill once
//	jobs create-weekly   runs the weekly content creation once
func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: jobs <check-spotify|create-weekly>")
		os.Exit(2)
	}
	job := os.Args[1]

	logging, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("can't initialize zap logger: %v", err)
	}
	defer logging.Sync()

	cfg, err := config.Load()
	if err != nil {
		logging.Fatal("Config load error", zap.Error(err))
	}

	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		logging.Fatal("Failed to connect to database", zap.Error(err))
	}

	var primary providers.Searcher
	if cfg.SpotifyClientID != "" && cfg.SpotifyClientSecret != "" {
		primary = spotifysearch.NewFetcher(cfg, logging)
	}
	fallback := bandcamp.NewFetcher(cfg, logging)

	var covers services.CoverUploader
	if cfg.CoverStorageEnabled() {
		store, err := storage.NewCoverStore(cfg)
		if err != nil {
			logging.Fatal("Cover store creation failed", zap.Error(err))
		}
		covers = store
	}

	contents := services.NewContentsService(db, logging)
	scheduler := services.NewSchedulerService(cfg, db, logging, contents, primary, fallback, covers)

	ctx := context.Background()
	switch job {
	case "check-spotify":
		count, err := scheduler.RunDailyLinkUpdate(ctx)
		if err != nil {
			logging.Fatal("Daily link update failed", zap.Error(err))
		}
		logging.Info("Daily link update done", zap.Int("linked", count))
	case "create-weekly":
		count, err := scheduler.RunWeeklyContentCreation(ctx)
		if err != nil {
			logging.Fatal("Weekly content job failed", zap.Error(err))
		}
		logging.Info("Weekly content job done", zap.Int("created", count))
	default:
		fmt.Fprintf(os.Stderr, "unknown job %q\n", job)
		os.Exit(2)
	}
}
