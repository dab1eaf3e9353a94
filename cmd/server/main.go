// cmd/server/main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	_ "go.uber.org/automaxprocs"

	"github.com/offerforge/offerforge/internal/api"
	"github.com/offerforge/offerforge/internal/app"
	"github.com/offerforge/offerforge/internal/config"
	"github.com/offerforge/offerforge/internal/di"
	"github.com/offerforge/offerforge/internal/services"
	"github.com/offerforge/offerforge/internal/utils"

	// Model providers register themselves on import.
	_ "github.com/offerforge/offerforge/internal/llm/providers/openai"
	_ "github.com/offerforge/offerforge/internal/llm/providers/openrouter"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if err := utils.InitLogger(filepath.Join(cfg.LogDir, "offerforge.log")); err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	logger := utils.GetLogger()
	if cfg.DebugMode {
		logger.SetLogLevel(utils.DEBUG)
	}

	logger.Infof("Starting OfferForge server on port %s", cfg.Port)

	container, err := app.InitServices(cfg)
	if err != nil {
		logger.Fatalf("Failed to initialize services: %v", err)
	}

	if err := performHealthCheck(container); err != nil {
		logger.Warnf("Service health check warning: %v", err)
	}

	router, err := api.SetupRouter(container, cfg)
	if err != nil {
		logger.Fatalf("Failed to set up router: %v", err)
	}

	// Background bookkeeping runs until shutdown.
	backgroundCtx, stopBackground := context.WithCancel(context.Background())
	defer stopBackground()

	if statsService, ok := container.Get("stats").(*services.StatsService); ok {
		statsService.StartAutoSave(backgroundCtx, 5*time.Minute)
	}
	utils.NewAPIMetrics().StartMetricsCollection(backgroundCtx)

	logger.Infof("OfferForge API listening at http://localhost:%s/api", cfg.Port)
	runWithGracefulShutdown(router, cfg.Port, stopBackground)
}

func performHealthCheck(container *di.Container) error {
	criticalServices := []string{"llm", "projects", "exports", "stats"}

	for _, serviceName := range criticalServices {
		if service := container.Get(serviceName); service == nil {
			return fmt.Errorf("critical service not registered: %s", serviceName)
		}
	}

	return nil
}

func runWithGracefulShutdown(router *gin.Engine, port string, stopBackground context.CancelFunc) {
	logger := utils.GetLogger()

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...", nil)
	stopBackground()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatalf("Server forced to shut down: %v", err)
	}

	logger.Info("Server stopped", nil)
}
