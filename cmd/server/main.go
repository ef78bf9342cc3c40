package main

import (
	"context"
	"log"

	"github.com/labstack/echo/v4"

	"github.com/munasbate/backend/internal/realtime"
	"github.com/munasbate/backend/internal/router"
	"github.com/munasbate/backend/pkg/config"
	"github.com/munasbate/backend/pkg/storage"
	"github.com/munasbate/backend/validators"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database connections
	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize databases: %v", err)
	}
	defer db.CloseDB() // Ensure database connections are closed when main exits

	// Initialize the media storage gateway
	ctx := context.Background()
	mediaGateway, err := storage.NewClient(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize storage gateway: %v", err)
	}

	// Websocket hub for message delivery
	hub := realtime.NewHub()

	// Create Echo instance
	e := echo.New()

	// Setup global middleware
	router.SetupMiddleware(e)

	// Setup routes and dependencies
	router.SetupRoutes(e, cfg, db.Postgres, db.Mongo, mediaGateway, hub)

	// Validator
	e.Validator = validators.NewValidator()

	// Start server
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
