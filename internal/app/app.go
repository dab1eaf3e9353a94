// internal/app/app.go
package app

import (
	"fmt"

	"github.com/offerforge/offerforge/internal/config"
	"github.com/offerforge/offerforge/internal/di"
	"github.com/offerforge/offerforge/internal/services"
	"github.com/offerforge/offerforge/internal/storage"
	"github.com/offerforge/offerforge/internal/utils"
)

// InitServices builds the full service graph and registers it in a
// fresh container. Construction order follows the dependency chain:
// storage, stats, llm, content, then the request-facing services.
func InitServices(cfg *config.Config) (*di.Container, error) {
	logger := utils.GetLogger()

	store, err := storage.NewDocumentStore(cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize document store: %w", err)
	}

	statsService := services.NewStatsService(store)
	llmService := services.NewLLMService(cfg.LLMProvider, cfg.LLMConfig, statsService)

	prompts := services.NewPromptStore()
	contentService := services.NewContentService(llmService, prompts)
	landingService := services.NewLandingService()

	projectService := services.NewProjectService(store, contentService, landingService)
	avatarService := services.NewAvatarService(store)
	exportService := services.NewExportService()
	pricingService := services.NewPricingService(cfg.HasStripeKey())

	container := di.NewContainer()
	container.Register("store", store)
	container.Register("stats", statsService)
	container.Register("llm", llmService)
	container.Register("content", contentService)
	container.Register("landing", landingService)
	container.Register("projects", projectService)
	container.Register("avatars", avatarService)
	container.Register("exports", exportService)
	container.Register("pricing", pricingService)

	logger.Infof("Services initialized: %v", container.GetNames())
	return container, nil
}
