package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"redaccion/config"
	"redaccion/models"
	"redaccion/providers"
	"redaccion/providers/bandcamp"
	"redaccion/providers/spotifysearch"
	"redaccion/services"
	"redaccion/storage"
)

var (
	discsLinkedCounter    prometheus.Counter
	weeklyContentsCounter prometheus.Counter
)

func init() {
	discsLinkedCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "discs_linked_total",
			Help: "Total number of discs that got a link from the daily search job.",
		},
	)
	weeklyContentsCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "weekly_contents_created_total",
			Help: "Total number of contents created by the weekly job.",
		},
	)
	prometheus.MustRegister(discsLinkedCounter, weeklyContentsCounter)
}

func apiKeyAuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		if cfg.APISecretKey == "" {
			c.Next()
			return
		}
		apiKey := c.GetHeader("X-API-KEY")
		if apiKey != cfg.APISecretKey {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized: Invalid API Key"})
			return
		}
		c.Next()
	}
}

func main() {
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
	logging.Info("Successfully connected to database.")

	logging.Info("Running database auto-migration...")
	if err := autoMigrate(db); err != nil {
		logging.Fatal("Auto-migration failed", zap.Error(err))
	}

	// Search sources for the daily link job. Bandcamp always works as
	// fallback; the Spotify API needs credentials.
	var primary providers.Searcher
	if cfg.SpotifyClientID != "" && cfg.SpotifyClientSecret != "" {
		primary = spotifysearch.NewFetcher(cfg, logging)
	} else {
		logging.Warn("Spotify credentials missing; daily job will use Bandcamp only")
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

	contentsService := services.NewContentsService(db, logging)
	articlesService := services.NewArticlesService(db, logging, contentsService)
	spotifyService := services.NewSpotifyService(db, logging, contentsService)
	listsService := services.NewListsService(db, logging)
	reunionsService := services.NewReunionsService(db, logging, contentsService)
	schedulerService := services.NewSchedulerService(cfg, db, logging, contentsService, primary, fallback, covers)

	router := gin.Default()
	router.Use(gin.Recovery())
	router.Use(apiKeyAuthMiddleware(cfg))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	setupContentRoutes(router, contentsService, schedulerService, logging)
	setupArticleRoutes(router, articlesService, logging)
	setupSpotifyRoutes(router, spotifyService, logging)
	setupListRoutes(router, listsService, logging)
	setupReunionRoutes(router, reunionsService, logging)
	setupUserRoutes(router, db, logging)
	setupArtistRoutes(router, db, logging)
	setupDiscRoutes(router, db, logging)
	setupRatingRoutes(router, db, logging)
	setupFavoriteRoutes(router, db, logging)
	setupVersionRoutes(router, db, logging)

	cronScheduler := cron.New()
	cronScheduler.AddFunc(cfg.CronDailySchedule, func() {
		logging.Info("Running scheduled daily link update...")
		count, err := schedulerService.RunDailyLinkUpdate(context.Background())
		if err != nil {
			logging.Error("Daily link update failed", zap.Error(err))
		} else {
			discsLinkedCounter.Add(float64(count))
		}
	})
	cronScheduler.AddFunc(cfg.CronWeeklySchedule, func() {
		logging.Info("Running scheduled weekly content job...")
		count, err := schedulerService.RunWeeklyContentCreation(context.Background())
		if err != nil {
			logging.Error("Weekly content job failed", zap.Error(err))
		} else {
			weeklyContentsCounter.Add(float64(count))
		}
	})
	cronScheduler.Start()

	logging.Info("Starting server", zap.String("port", cfg.HTTPPort))
	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadTimeout:       30 * time.Second,
		ReadHeaderTimeout: 15 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil {
		logging.Fatal("Failed to run server", zap.Error(err))
	}
}

func autoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Artist{},
		&models.Disc{},
		&models.Rating{},
		&models.Favorite{},
		&models.Version{},
		&models.List{},
		&models.Asignation{},
		&models.ListLink{},
		&models.Reunion{},
		&models.Point{},
		&models.Spotify{},
		&models.Article{},
		&models.Content{},
	)
}
