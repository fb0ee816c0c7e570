package api

import (
	"github.com/gin-gonic/gin"

	"confportal-backend/internal/auth"
	"confportal-backend/internal/config"
	"confportal-backend/internal/database"
	"confportal-backend/internal/lifecycle"
	"confportal-backend/internal/middleware"
	"confportal-backend/internal/storage"
)

func SetupRoutes(router *gin.Engine, db *database.Database, engine *lifecycle.Engine, cfg *config.Config) {
	supabaseStorage := storage.NewSupabaseStorage(
		cfg.Supabase.URL,
		cfg.Supabase.ServiceRoleKey,
		cfg.Supabase.Bucket,
	)
	server := NewServer(db, engine, supabaseStorage, cfg)
	jwtManager := auth.NewJWTManager(cfg)

	// CORS middleware
	router.Use(middleware.CORSSpecific(cfg.GetCORSOrigins()))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": "confportal-backend",
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Auth routes (no authentication required)
		authGroup := v1.Group("/auth")
		{
			authGroup.POST("/register", server.Register)
			authGroup.POST("/login", server.Login)
		}

		// Protected routes (authentication required)
		protected := v1.Group("/")
		protected.Use(middleware.AuthMiddleware(jwtManager))
		{
			// User routes
			protected.GET("/profile", server.GetProfile)
			protected.PUT("/profile", server.UpdateProfile)
			protected.PUT("/auth/password", server.ChangePassword)

			// Conference routes
			conferences := protected.Group("/conferences")
			{
				conferences.GET("", server.ListConferences)
				conferences.GET("/:id", server.GetConference)
				conferences.POST("", middleware.AdminOnly(), server.CreateConference)
				conferences.PUT("/:id", middleware.AdminOnly(), server.UpdateConference)
				conferences.POST("/:id/cancel", middleware.AdminOnly(), server.CancelConference)
			}

			// Category routes
			categories := protected.Group("/categories")
			{
				categories.GET("", server.GetCategories)
				categories.POST("", middleware.AdminOnly(), server.CreateCategory)
			}

			// Question routes
			questions := protected.Group("/questions")
			{
				questions.GET("", server.GetQuestions)
				questions.POST("", middleware.AdminOnly(), server.CreateQuestion)
			}

			// Paper routes
			papers := protected.Group("/papers")
			{
				papers.GET("", server.GetPapers)
				papers.GET("/:id", server.GetPaper)
				papers.POST("", middleware.AuthorOrAdmin(), server.SubmitPaper)
				papers.PUT("/:id", middleware.AuthorOrAdmin(), server.UpdatePaper)
				papers.PUT("/:id/reviewer", middleware.AdminOnly(), server.AssignReviewer)
			}

			// Review routes
			reviews := protected.Group("/reviews")
			{
				reviews.GET("", middleware.ReviewerOrAdmin(), server.GetReviews)
				reviews.POST("", middleware.ReviewerOrAdmin(), server.CreateReview)
				reviews.PUT("/:id", middleware.ReviewerOrAdmin(), server.UpdateReview)
			}

			// Notification routes
			notifications := protected.Group("/notifications")
			{
				notifications.GET("", server.GetNotifications)
				notifications.PUT("/:id/read", server.MarkNotificationRead)
			}

			// Admin only routes
			admin := protected.Group("/admin")
			admin.Use(middleware.AdminOnly())
			{
				admin.GET("/users", server.ListUsers)
			}
		}
	}
}
