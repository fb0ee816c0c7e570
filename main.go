package main

import (
	"log"
	"os"

	"confportal-backend/internal/api"
	"confportal-backend/internal/config"
	"confportal-backend/internal/database"
	"confportal-backend/internal/lifecycle"
	"confportal-backend/internal/scheduler"
	"confportal-backend/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	// Initialize configuration
	cfg := config.New()

	// Initialize database connection
	db, err := database.NewConnection(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	// Run database migrations
	if err := database.RunMigrations(db); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	// Lifecycle engine over the Postgres store, plus its periodic sweep
	engine := lifecycle.NewEngine(store.NewPostgres(db))
	scheduler.New(engine, cfg.Lifecycle.SweepInterval).Start()

	// Initialize Gin router
	if cfg.GinMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()

	// Setup API routes
	api.SetupRoutes(router, db, engine, cfg)

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
