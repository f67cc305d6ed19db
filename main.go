package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"roster-lookup-go/config"
	"roster-lookup-go/db"
	"roster-lookup-go/handlers"
)

func main() {
	cfg := config.Load()
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	store, cleanup, err := newStore(cfg)
	if err != nil {
		log.Fatalf("Failed to set up session store: %v", err)
	}
	defer cleanup()

	// Create Handler (injecting the store)
	handler := handlers.NewHandler(store, cfg.Days, cfg.MaxUploadBytes)

	router, err := handlers.SetupRouter(handler)
	if err != nil {
		log.Fatalf("Failed to set up router: %v", err)
	}

	log.Printf("Starting server on %s (session store: %s)", cfg.Addr, cfg.Store)
	if err := router.Run(cfg.Addr); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}

// newStore builds the configured session store and a function releasing it.
func newStore(cfg config.Config) (db.SessionStore, func(), error) {
	if cfg.Store != config.StoreRedis {
		return db.NewMemoryStore(cfg.SessionTTL), func() {}, nil
	}

	client, err := db.InitializeRedisClient(context.Background(), cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if err := client.Close(); err != nil {
			log.Printf("Error closing Redis client: %v", err)
		}
	}
	return db.NewRedisStore(client, cfg.SessionTTL), cleanup, nil
}
