package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/shopkart/storefront-api/internal/api/handler"
	"github.com/shopkart/storefront-api/internal/api/middleware"
	"github.com/shopkart/storefront-api/internal/core/service"
	mongodb "github.com/shopkart/storefront-api/internal/infrastructure/db/mongo"
	redisdb "github.com/shopkart/storefront-api/internal/infrastructure/db/redis"
	"github.com/shopkart/storefront-api/internal/pkg/config"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("storefront"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	productRepo := mongodb.NewProductRepository(db)
	revoker := redisdb.NewTokenRevoker(rdb, cfg.TokenTTL)
	catalogCache := redisdb.NewCatalogCache(rdb, log)

	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.TokenTTL)
	userService := service.NewUserService(userRepo, productRepo, authService, revoker, log)
	catalogService := service.NewCatalogService(productRepo, catalogCache, log)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	catalogHandler := handler.NewCatalogHandler(catalogService)
	cartHandler := handler.NewCartHandler()
	orderHandler := handler.NewOrderHandler()

	auth := middleware.Auth(cfg.JWTSecret, userRepo, revoker)
	admin := middleware.AdminOnly()

	// --- Public routes ---
	e.POST("/register", authHandler.Register)
	e.POST("/login", authHandler.Login)

	e.GET("/products", catalogHandler.List)
	e.GET("/products/featured", catalogHandler.Featured)
	e.GET("/products/:id", catalogHandler.Get)

	// --- Session routes ---
	e.GET("/profile", userHandler.GetProfile, auth)
	e.PUT("/profile", userHandler.UpdateProfile, auth)
	e.POST("/address", userHandler.AddAddress, auth)

	e.GET("/wishlist", userHandler.GetWishlist, auth)
	e.POST("/wishlist", userHandler.AddToWishlist, auth)
	e.DELETE("/wishlist/:itemId", userHandler.RemoveFromWishlist, auth)

	e.POST("/products/:id/reviews", catalogHandler.AddReview, auth)

	e.GET("/cart", cartHandler.Get, auth)
	e.POST("/cart", cartHandler.AddItem, auth)
	e.PUT("/cart/:id", cartHandler.UpdateItem, auth)
	e.DELETE("/cart/:id", cartHandler.RemoveItem, auth)
	e.DELETE("/cart", cartHandler.Clear, auth)

	e.POST("/orders", orderHandler.Create, auth)
	e.GET("/orders", orderHandler.List, auth)
	e.GET("/orders/:id", orderHandler.Get, auth)

	// --- Admin routes ---
	e.GET("/users", userHandler.ListUsers, auth, admin)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
