package main

import (
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/shoporia/ecommerce-api/config"
	"github.com/shoporia/ecommerce-api/routes"
	"github.com/shoporia/ecommerce-api/store"
	"github.com/shoporia/ecommerce-api/store/mongo"
	"github.com/shoporia/ecommerce-api/store/postgres"
)

func main() {
	log.Println("✅ Starting application...")

	cfg := config.Load()
	if cfg.JWTSecret == "" {
		log.Fatal("❌ JWT_SECRET is required")
	}

	st := initStore(cfg)

	// Gin setup
	r := gin.Default()

	// CORS settings
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Setup routes
	routes.SetupRoutes(r, st, cfg)

	log.Printf("🚀 Server running on port %s...", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

// initStore connects the storage backend selected by STORAGE_DRIVER.
func initStore(cfg *config.Config) store.Store {
	switch cfg.StorageDriver {
	case "mongo":
		st, err := mongo.Open(cfg)
		if err != nil {
			log.Fatalf("❌ Mongo connection failed: %v", err)
		}
		return st
	case "postgres":
		st, err := postgres.Open(cfg)
		if err != nil {
			log.Fatalf("❌ DB connection failed: %v", err)
		}
		return st
	default:
		log.Fatalf("❌ Unknown storage driver %q", cfg.StorageDriver)
		return nil
	}
}
