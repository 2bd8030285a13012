package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"jobmetrics/internal/cache"
	"jobmetrics/internal/config"
	"jobmetrics/internal/db"
	"jobmetrics/internal/handlers/api"
	"jobmetrics/internal/jobs"
	"jobmetrics/internal/metrics"
	"jobmetrics/internal/overview"
	"jobmetrics/internal/server"
)

func main() {
	// .env is optional
	_ = godotenv.Load()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg := config.Load()

	sources, err := config.LoadSourcesConfig()
	if err != nil {
		log.Fatalf("Failed to load config file: %v", err)
	}

	// Initialize database
	database, err := db.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()
	database.Tables = sources.Tables
	database.PageSize = sources.PageSize

	if cfg.RunMigrations {
		if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
		log.Println("Migrations completed successfully")
	}

	metrics.Init()

	svc := overview.NewService(database,
		overview.WithWindow(sources.Window()),
		overview.WithLimits(sources.Limits),
	)

	// Shared snapshot cache - only if Redis is configured
	var snaps *cache.Snapshots
	if cfg.RedisURL != "" {
		store := cache.NewRedis(cfg.RedisURL)
		defer store.Close()
		snaps = cache.NewSnapshots(store, cfg.CacheTTL)
		log.Printf("Metrics cache enabled (ttl: %v)", cfg.CacheTTL)
	} else {
		log.Println("Metrics cache disabled. Set REDIS_URL to enable.")
	}

	srv := server.New(cfg)
	srv.RegisterRoutes(server.Handlers{
		Metrics: api.NewMetricsHandler(svc, snaps),
		Health:  api.NewHealthHandler(database),
	})

	if cfg.RefreshInterval > 0 && snaps.Enabled() {
		go jobs.NewRefresher(svc, snaps, cfg.RefreshInterval).Start(ctx)
	}

	// Graceful shutdown
	go func() {
		if err := srv.Start(); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	cancel()
	if err := srv.Shutdown(); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}
	log.Println("Server exited")
}
