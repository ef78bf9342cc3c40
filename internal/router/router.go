package router

import (
	"log"

	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"

	"github.com/munasbate/backend/internal/handlers"
	"github.com/munasbate/backend/internal/middleware"
	"github.com/munasbate/backend/internal/models"
	"github.com/munasbate/backend/internal/realtime"
	"github.com/munasbate/backend/internal/repositories"
	"github.com/munasbate/backend/pkg/config"
	"github.com/munasbate/backend/pkg/storage"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	log.Println("Global middleware configured.")
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, cfg *config.Config, pgdb *gorm.DB, mgClient *mongo.Client, mediaGateway storage.Gateway, hub *realtime.Hub) {
	// AutoMigrate PostgreSQL models
	err := pgdb.AutoMigrate(
		&models.Account{},
		&models.Follow{},
		&models.PostLike{},
		&models.ServiceLike{},
		&models.ContentLike{},
		&models.SavedPost{},
		&models.SavedService{},
		&models.SavedContent{},
		&models.PostComment{},
		&models.ServiceComment{},
		&models.ContentComment{},
		&models.Storefront{},
		&models.StorefrontFollow{},
		&models.Message{},
		&models.Notification{},
	)
	if err != nil {
		log.Fatalf("Failed to auto migrate models: %v", err)
	}
	log.Println("PostgreSQL auto-migrations completed for all models.")

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Initialize Repositories ---
	mongoDB := mgClient.Database("munasbate")
	accountRepo := repositories.NewPostgresAccountRepository(pgdb)
	followRepo := repositories.NewPostgresFollowRepository(pgdb)
	postRepo := repositories.NewMongoPostRepository(mongoDB)
	serviceRepo := repositories.NewMongoServiceRepository(mongoDB)
	storefrontRepo := repositories.NewStorefrontRepository(mongoDB, pgdb)
	engagementRepo := repositories.NewPostgresEngagementRepository(pgdb)
	commentRepo := repositories.NewPostgresCommentRepository(pgdb)
	messageRepo := repositories.NewPostgresMessageRepository(pgdb)
	notificationRepo := repositories.NewPostgresNotificationRepository(pgdb)

	// --- Unprotected routes for authentication ---
	authGroup := e.Group("/api/v1/auth")
	authHandler := handlers.NewAuthHandler(accountRepo)
	authHandler.RegisterAuthRoutes(authGroup)
	log.Println("Auth routes configured.")

	// --- Protected routes (require a session token) ---
	api := e.Group("/api/v1")
	api.Use(middleware.SessionAuthMiddleware())
	log.Println("Session authentication middleware applied to /api/v1 group.")

	// --- Public routes (guests browse, logged-in users get viewer flags) ---
	public := e.Group("/api/v1/public")
	public.Use(middleware.OptionalSessionMiddleware())

	// Account routes
	accountHandler := handlers.NewAccountHandler(accountRepo)
	accountHandler.RegisterProfileRoutes(api)
	accountHandler.RegisterPublicRoutes(public)
	log.Println("Account routes configured.")

	// Follow routes
	followHandler := handlers.NewFollowHandler(followRepo, accountRepo, notificationRepo)
	followHandler.RegisterFollowRoutes(api)
	followHandler.RegisterPublicRoutes(public)
	log.Println("Follow routes configured.")

	// Post routes
	postHandler := handlers.NewPostHandler(postRepo, accountRepo, engagementRepo, commentRepo, notificationRepo)
	postHandler.RegisterPostRoutes(api)
	postHandler.RegisterPublicRoutes(public)
	log.Println("Post routes configured.")

	// Feed routes
	feedHandler := handlers.NewFeedHandler(postRepo, accountRepo, followRepo, engagementRepo)
	feedHandler.RegisterFeedRoutes(public)
	log.Println("Feed routes configured.")

	// Service catalog routes
	serviceHandler := handlers.NewServiceHandler(serviceRepo, accountRepo, engagementRepo, commentRepo, notificationRepo, mediaGateway)
	serviceHandler.RegisterServiceRoutes(api)
	serviceHandler.RegisterPublicRoutes(public)
	log.Println("Service catalog routes configured.")

	// Storefront routes
	storefrontHandler := handlers.NewStorefrontHandler(storefrontRepo, accountRepo, engagementRepo, commentRepo, notificationRepo, mediaGateway)
	storefrontHandler.RegisterStorefrontRoutes(api)
	storefrontHandler.RegisterPublicRoutes(public)
	log.Println("Storefront routes configured.")

	// Message routes
	messageHandler := handlers.NewMessageHandler(messageRepo, accountRepo, notificationRepo, hub, cfg.SupportPhone)
	messageHandler.RegisterMessageRoutes(api)
	messageHandler.RegisterWebsocketRoute(e)
	log.Println("Message routes configured.")

	// Notification routes
	notificationHandler := handlers.NewNotificationHandler(notificationRepo)
	notificationHandler.RegisterNotificationRoutes(api)
	log.Println("Notification routes configured.")

	// Media upload
	mediaHandler := handlers.NewMediaHandler(mediaGateway)
	mediaHandler.RegisterMediaRoutes(api)
	log.Println("Media routes configured.")

	log.Println("All routes configured.")
}
