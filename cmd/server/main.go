package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/starkbrilliance/smartharvest/internal/config"
	"github.com/starkbrilliance/smartharvest/internal/database"
	"github.com/starkbrilliance/smartharvest/internal/handlers"
	"github.com/starkbrilliance/smartharvest/internal/middleware"
	"github.com/starkbrilliance/smartharvest/internal/repository"
	"github.com/starkbrilliance/smartharvest/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	if err := database.AddIndexes(database.GetDB()); err != nil {
		log.Printf("Warning: failed to add indexes: %v", err)
	}

	// Seed the starter template catalog on first boot
	if err := database.SeedCropTemplates(database.GetDB()); err != nil {
		log.Fatalf("Failed to seed crop templates: %v", err)
	}

	// Initialize repositories
	db := database.GetDB()
	cropRepo := repository.NewCropRepository(db)
	eventRepo := repository.NewEventRepository(db)
	areaRepo := repository.NewAreaRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	templateRepo := repository.NewTemplateRepository(db)

	// Initialize services
	authService, err := services.NewAuthService(sessionRepo, cfg.SharedPassword)
	if err != nil {
		log.Fatalf("Failed to initialize auth service: %v", err)
	}

	var completions services.CompletionClient
	if cfg.OpenAIAPIKey != "" {
		completions = services.NewOpenAICompletionClient(cfg.OpenAIAPIKey)
	}

	cropService := services.NewCropService(cropRepo, areaRepo, eventRepo)
	areaService := services.NewAreaService(areaRepo, cropRepo)
	adviceService := services.NewAdviceService(templateRepo, completions)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	cropHandler := handlers.NewCropHandler(cropService)
	areaHandler := handlers.NewGrowAreaHandler(areaService)
	templateHandler := handlers.NewTemplateHandler(templateRepo, adviceService)

	// Initialize Gin router
	r := gin.Default()

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "SmartHarvest API is running",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		// Auth routes
		auth := api.Group("/auth")
		{
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", middleware.RequireAuth(authService), authHandler.Logout)
		}

		// Crop routes. The single-crop read stays public: QR labels on
		// trays link straight to it.
		crops := api.Group("/crops")
		{
			crops.GET("", middleware.RequireAuth(authService), cropHandler.ListCrops)
			crops.POST("", middleware.RequireAuth(authService), cropHandler.CreateCrop)
			crops.GET("/:id", cropHandler.GetCrop)
			crops.PATCH("/:id", middleware.RequireAuth(authService), cropHandler.UpdateCrop)
			crops.DELETE("/:id", middleware.RequireAuth(authService), cropHandler.DeleteCrop)
			crops.POST("/:id/harvest", middleware.RequireAuth(authService), cropHandler.HarvestCrop)
			crops.GET("/:id/events", middleware.RequireAuth(authService), cropHandler.ListEvents)
			crops.POST("/:id/events", middleware.RequireAuth(authService), cropHandler.CreateEvent)
		}

		// Hierarchy routes (protected)
		areas := api.Group("/grow-areas")
		areas.Use(middleware.RequireAuth(authService))
		{
			areas.GET("", areaHandler.ListGrowAreas)
			areas.POST("", areaHandler.CreateGrowArea)
			areas.GET("/:id", areaHandler.GetGrowArea)
			areas.PATCH("/:id", areaHandler.UpdateGrowArea)
			areas.DELETE("/:id", areaHandler.DeleteGrowArea)
			areas.GET("/:id/subareas", areaHandler.ListSubareas)
			areas.POST("/:id/subareas", areaHandler.CreateSubarea)
		}

		subareas := api.Group("/subareas")
		subareas.Use(middleware.RequireAuth(authService))
		{
			subareas.PATCH("/:id", areaHandler.UpdateSubarea)
			subareas.DELETE("/:id", areaHandler.DeleteSubarea)
		}

		// Template routes (protected)
		templates := api.Group("/crop-templates")
		templates.Use(middleware.RequireAuth(authService))
		{
			templates.GET("", templateHandler.ListTemplates)
			templates.POST("", templateHandler.CreateTemplate)
			templates.GET("/search", templateHandler.SearchTemplates)
			templates.GET("/advice", templateHandler.GetAdvice)
			templates.PATCH("/:id", templateHandler.UpdateTemplate)
			templates.DELETE("/:id", templateHandler.DeleteTemplate)
		}

		// Dashboard stats (protected)
		api.GET("/stats", middleware.RequireAuth(authService), cropHandler.GetStats)
	}

	// Start server
	log.Printf("Server starting on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
