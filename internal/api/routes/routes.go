package routes

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"

	"source-manager-backend/internal/api/handlers"
	"source-manager-backend/internal/api/middleware"
	"source-manager-backend/internal/auth"
	"source-manager-backend/internal/catalog"
	"source-manager-backend/internal/config"
	"source-manager-backend/internal/repository"
	"source-manager-backend/internal/service"
)

// SetupRoutes configures all the routes for the application
func SetupRoutes(db *gorm.DB, cfg *config.Config) *gin.Engine {
	// Create router
	router := gin.New()

	// Add middleware
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())
	router.Use(middleware.CORS(cfg))

	// Initialize validator
	validate := validator.New()

	// Region rules feed both the resolver and the shard layout
	mappings, err := config.LoadRegionMappings(cfg.RegionsFile)
	if err != nil {
		log.Printf("Warning: failed to load region rules, using defaults: %v", err)
		mappings = config.DefaultRegionMappings()
	}
	cat := catalog.New(cfg.MasterSourcesDir, catalog.NewResolver(mappings))

	// Initialize repositories and services
	indexRepo := repository.NewSourceIndexRepository(db)
	indexService := service.NewIndexService(indexRepo, cat)
	sourceService := service.NewSourceService(cat, indexService, validate)
	projectService := service.NewProjectService(cfg, cat, validate)

	// Initialize auth
	authService := auth.NewAuthService(cfg)
	authHandler := auth.NewAuthHandler(authService)
	authMiddleware := auth.NewAuthMiddleware(authService)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(db)
	schemaHandler := handlers.NewSchemaHandler()
	projectHandler := handlers.NewProjectHandler(projectService)
	sourceHandler := handlers.NewSourceHandler(sourceService)
	searchHandler := handlers.NewSearchHandler(indexService)

	// Health check
	router.GET("/health", healthHandler.Health)

	v1 := router.Group("/api/v1")
	{
		// Authentication
		v1.POST("/auth/login", authHandler.Login)
		v1.GET("/auth/validate", authMiddleware.RequireAuth(), authHandler.Validate)

		// Schemas (read-only, open)
		v1.GET("/project-types", schemaHandler.ListProjectTypes)
		v1.GET("/project-types/:code", schemaHandler.GetProjectType)
		v1.GET("/source-types", schemaHandler.ListSourceTypes)
		v1.GET("/source-types/:code", schemaHandler.GetSourceType)

		// Regions and sources (reads open)
		v1.GET("/regions", sourceHandler.ListRegions)
		v1.GET("/resolve-region", sourceHandler.ResolveRegion)
		v1.GET("/regions/:region/sources", sourceHandler.ListRegionSources)
		v1.GET("/sources", sourceHandler.ListSources)
		v1.GET("/sources/:id", sourceHandler.GetSource)

		// Projects (reads open)
		v1.GET("/projects", projectHandler.ListProjects)
		v1.GET("/projects/detail", projectHandler.GetProject)

		// Search
		v1.GET("/search", searchHandler.Search)

		// Mutations require an admin session
		protected := v1.Group("")
		protected.Use(authMiddleware.RequireAuth())
		{
			protected.POST("/projects", projectHandler.CreateProject)
			protected.PATCH("/projects/metadata", projectHandler.UpdateMetadata)
			protected.POST("/projects/sources/attach", projectHandler.AttachSource)
			protected.POST("/projects/sources/detach", projectHandler.DetachSource)
			protected.POST("/projects/sources/stage", projectHandler.StageSource)
			protected.POST("/projects/sources/unstage", projectHandler.UnstageSource)

			protected.POST("/sources", sourceHandler.CreateSource)
			protected.PATCH("/sources/:id", sourceHandler.UpdateSource)

			protected.POST("/search/rebuild", searchHandler.Rebuild)
		}
	}

	return router
}
