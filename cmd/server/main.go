package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	swagger "github.com/gofiber/swagger"
	"github.com/recipedb/recipedb/internal/config"
	"github.com/recipedb/recipedb/internal/database"
	"github.com/recipedb/recipedb/internal/handlers"
	"github.com/recipedb/recipedb/internal/middleware"
	"github.com/recipedb/recipedb/internal/types"

	_ "github.com/recipedb/recipedb/docs/api" // Swagger docs
)

// @title RecipeDB API
// @version 1.0.0
// @description Go Fiber recipe catalog service with multi-database support
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url https://github.com/recipedb/recipedb

// @license.name AGPL-3.0
// @license.url https://www.gnu.org/licenses/agpl-3.0.html

// @host localhost:3000
// @BasePath /api
// @schemes http https

// @securityDefinitions.apikey CookieAuth
// @in cookie
// @name cookie_session

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler:          customErrorHandler,
		DisableStartupMessage: false,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(compress.New())

	// Prometheus metrics
	prometheus := fiberprometheus.New("recipedb")
	prometheus.RegisterAt(app, "/metrics")
	app.Use(prometheus.Middleware)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// API routes under /api
	api := app.Group("/api")

	// Version middleware
	api.Use(middleware.VersionMiddleware())

	// Create handlers
	healthHandler := &handlers.HealthHandler{Cfg: cfg, DB: db}
	recipeHandler := &handlers.RecipeHandler{DB: db}
	searchHandler := &handlers.SearchHandler{DB: db}
	catalogHandler := &handlers.CatalogHandler{DB: db}
	pantryHandler := &handlers.PantryHandler{DB: db}
	uploadHandler := &handlers.UploadHandler{DB: db, UploadDir: cfg.UploadDir}

	// Health
	api.Get("/health", healthHandler.GetHealth)

	// Recipe read routes (public)
	api.Get("/recipes", searchHandler.GetRecipes)
	api.Get("/recipes/search", searchHandler.SearchRecipes)
	api.Post("/recipes/makeable", searchHandler.ListMakeable)
	api.Post("/recipes/:id/makeable", searchHandler.CheckMakeable)
	api.Get("/recipes/:id", recipeHandler.GetRecipe)

	// Recipe write routes (user auth; catalog-wide delete is admin-only)
	api.Post("/recipes", middleware.AuthUser(), recipeHandler.CreateRecipe)
	api.Put("/recipes/:id", middleware.AuthUser(), recipeHandler.UpdateRecipe)
	api.Delete("/recipes/:id", middleware.AuthUser(), recipeHandler.DeleteRecipe)
	api.Delete("/recipes", middleware.AuthAdmin(), recipeHandler.DeleteRecipes)

	// Catalog routes (shared catalogs are admin-curated)
	api.Get("/ingredients", catalogHandler.GetIngredients)
	api.Post("/ingredients", middleware.AuthAdmin(), catalogHandler.CreateIngredient)
	api.Get("/categories", catalogHandler.GetCategories)
	api.Post("/categories", middleware.AuthAdmin(), catalogHandler.CreateCategory)
	api.Get("/cookbooks", catalogHandler.GetCookbooks)
	api.Post("/cookbooks", middleware.AuthUser(), catalogHandler.CreateCookbook)

	// Pantry routes (all owned by a user)
	api.Get("/pantries", middleware.AuthUser(), pantryHandler.GetPantries)
	api.Post("/pantries", middleware.AuthUser(), pantryHandler.CreatePantry)
	api.Get("/pantries/:id/makeable", middleware.AuthUser(), pantryHandler.GetPantryMakeable)
	api.Get("/pantries/:id", middleware.AuthUser(), pantryHandler.GetPantry)
	api.Put("/pantries/:id", middleware.AuthUser(), pantryHandler.UpdatePantry)
	api.Delete("/pantries/:id", middleware.AuthUser(), pantryHandler.DeletePantry)

	// Upload routes
	api.Get("/uploads/:resource/:id", uploadHandler.GetImages)
	api.Post("/uploads/:resource/:id", middleware.AuthUser(), uploadHandler.UploadImage)
	api.Delete("/uploads/:imageId", middleware.AuthUser(), uploadHandler.DeleteImage)

	// 404 handler
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"status":    fiber.StatusNotFound,
			"message":   "[404] Resource Not Found",
			"ok":        false,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"url":       c.OriginalURL(),
		})
	})

	// Authorizer client is created lazily by the auth middleware
	log.Printf("Authorizer will be initialized on first authenticated request")

	// Graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		log.Println("Gracefully shutting down...")
		_ = app.Shutdown()
	}()

	// Start server
	port := cfg.Port
	log.Printf("Starting server on port %s", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}

	log.Println("Server stopped")
}

// customErrorHandler handles errors globally
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := err.Error()
	errorType := "unknown"

	// Check if it's a Fiber error
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	// Middleware failures carry their own status and type
	if e, ok := err.(*types.CustomError); ok {
		code = e.Code
		message = e.Message
		errorType = e.Type
	}

	return c.Status(code).JSON(fiber.Map{
		"status":    code,
		"message":   message,
		"ok":        false,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"url":       c.OriginalURL(),
		"type":      errorType,
	})
}
