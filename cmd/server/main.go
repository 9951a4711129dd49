package main

import (
	"context"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	goredis "github.com/redis/go-redis/v9"

	"github.com/rangecard/backend/internal/admin"
	"github.com/rangecard/backend/internal/api"
	"github.com/rangecard/backend/internal/cartridges"
	"github.com/rangecard/backend/internal/config"
	"github.com/rangecard/backend/internal/database"
	"github.com/rangecard/backend/internal/migrations"
	"github.com/rangecard/backend/internal/redis"
	"github.com/rangecard/backend/internal/solutions"
	"github.com/rangecard/backend/internal/ws"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	ctx := context.Background()
	connectCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	// Postgres backs the catalog, history and admin routes. Without it the
	// server runs on the builtin catalog.
	var db *sqlx.DB
	var catalog cartridges.Store
	var history solutions.History
	if cfg.DatabaseURL != "" {
		if cfg.MigrateOnStart {
			log.Println("↗ Running DB migrations on startup...")
			if err := migrations.RunMigrations(cfg.DatabaseURL); err != nil {
				log.Fatalf("Failed to run migrations: %v", err)
			}
		}

		var err error
		db, err = database.Connect(connectCtx, cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer db.Close()

		if err := admin.ApplyRuntimeConfigToConfig(db, cfg); err != nil {
			log.Printf("[CONFIG] Runtime config not applied: %v", err)
		}
		if err := cfg.Validate(); err != nil {
			log.Fatalf("Invalid configuration after runtime overrides: %v", err)
		}

		catalog = cartridges.NewPostgresStore(db)
		history = solutions.NewPostgresHistory(db)
	} else {
		log.Println("[DB] DATABASE_URL not set, using builtin cartridge catalog")
		catalog = cartridges.NewMemoryStore(cartridges.Builtin())
	}

	svc := solutions.NewService(cfg, catalog)
	if history != nil {
		svc.WithHistory(history)
	}

	// Redis caches solutions and fans solve events out to feed clients
	var rdb *goredis.Client
	if cfg.RedisURL != "" {
		var err error
		rdb, err = redis.Connect(connectCtx, cfg.RedisURL)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer rdb.Close()

		svc.WithCache(solutions.NewRedisCache(rdb)).WithPublisher(solutions.NewRedisPublisher(rdb))
	} else {
		log.Println("[REDIS] REDIS_URL not set, solution cache and live feed disabled")
	}

	hub := ws.NewHub()
	go hub.Run(ctx)
	ws.StartSolutionEventSubscriber(ctx, rdb, hub)

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()
	api.SetupRoutes(router, db, svc, history, hub, cfg)

	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting rangecard server on port %s (g=%.5f m/s²)", port, cfg.Solver().Gravity)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
