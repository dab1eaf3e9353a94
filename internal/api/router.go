// internal/api/router.go
package api

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/offerforge/offerforge/internal/config"
	"github.com/offerforge/offerforge/internal/di"
	"github.com/offerforge/offerforge/internal/services"
	"github.com/offerforge/offerforge/internal/utils"
)

// SetupRouter wires the HTTP routes. Services come from the container
// built during application startup; nothing is constructed here.
func SetupRouter(container *di.Container, cfg *config.Config) (*gin.Engine, error) {
	projectService, ok := container.Get("projects").(*services.ProjectService)
	if !ok {
		return nil, fmt.Errorf("project service not initialized")
	}

	avatarService, ok := container.Get("avatars").(*services.AvatarService)
	if !ok {
		return nil, fmt.Errorf("avatar service not initialized")
	}

	exportService, ok := container.Get("exports").(*services.ExportService)
	if !ok {
		return nil, fmt.Errorf("export service not initialized")
	}

	landingService, ok := container.Get("landing").(*services.LandingService)
	if !ok {
		return nil, fmt.Errorf("landing service not initialized")
	}

	pricingService, ok := container.Get("pricing").(*services.PricingService)
	if !ok {
		return nil, fmt.Errorf("pricing service not initialized")
	}

	llmService, ok := container.Get("llm").(*services.LLMService)
	if !ok {
		return nil, fmt.Errorf("llm service not initialized")
	}

	statsService, ok := container.Get("stats").(*services.StatsService)
	if !ok {
		return nil, fmt.Errorf("stats service not initialized")
	}

	handler := NewHandler(
		projectService,
		avatarService,
		exportService,
		landingService,
		pricingService,
		llmService,
		statsService,
		cfg.HasStripeKey(),
	)

	if !cfg.DebugMode {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()

	r.Use(corsMiddleware())
	r.Use(metricsMiddleware(utils.NewAPIMetrics()))

	apiGroup := r.Group("/api")
	apiGroup.Use(DefaultRateLimit())
	{
		apiGroup.GET("/", handler.Root)
		apiGroup.GET("/health", handler.Health)

		apiGroup.POST("/projects", handler.CreateProject)
		apiGroup.GET("/projects", handler.ListProjects)
		apiGroup.GET("/projects/:id", handler.GetProject)
		apiGroup.PUT("/projects/:id", handler.UpdateProject)
		apiGroup.DELETE("/projects/:id", handler.DeleteProject)

		apiGroup.POST("/avatars", handler.CreateAvatar)
		apiGroup.GET("/avatars", handler.ListAvatars)

		generate := apiGroup.Group("/generate")
		generate.Use(GenerationRateLimit())
		{
			generate.POST("/offer/:id", handler.GenerateOffer)
			generate.POST("/materials/:id", handler.GenerateMaterials)
			generate.POST("/landing-page/:id", handler.GenerateLandingPage)
		}

		apiGroup.POST("/export/:id", handler.ExportProject)

		apiGroup.GET("/stripe/price-suggestion", handler.PriceSuggestion)
		apiGroup.GET("/metrics", handler.Metrics)
		apiGroup.GET("/stats", handler.UsageStats)
	}

	return r, nil
}
