// internal/services/llm_service.go
package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/offerforge/offerforge/internal/llm"
	"github.com/offerforge/offerforge/internal/utils"
)

// ErrLLMNotReady is returned when no provider is configured.
var ErrLLMNotReady = errors.New("LLM service is not configured")

// LLMService wraps a model provider with readiness state, rate limiting
// and usage accounting. All content generation goes through Complete.
type LLMService struct {
	mu       sync.RWMutex
	provider llm.Provider
	ready    bool

	limiter    *rate.Limiter
	stats      *StatsService
	apiMetrics *utils.APIMetrics
	logger     *utils.Logger
}

// NewLLMService creates the service and attempts to configure the named
// provider. A missing API key leaves the service in a not-ready state
// rather than failing startup; generation endpoints then return errors.
func NewLLMService(providerName string, providerConfig map[string]string, stats *StatsService) *LLMService {
	s := &LLMService{
		limiter:    rate.NewLimiter(rate.Every(time.Second), 3),
		stats:      stats,
		apiMetrics: utils.NewAPIMetrics(),
		logger:     utils.GetLogger(),
	}

	if providerConfig["api_key"] == "" {
		s.logger.Warn("No LLM API key configured, generation endpoints disabled", nil)
		return s
	}

	provider, err := llm.GetProvider(providerName, providerConfig)
	if err != nil {
		s.logger.Errorf("Failed to initialize LLM provider %q: %v", providerName, err)
		return s
	}

	s.provider = provider
	s.ready = true
	s.logger.Infof("LLM provider ready: %s", provider.GetName())
	return s
}

// IsReady reports whether a provider is configured and usable.
func (s *LLMService) IsReady() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ready
}

// ProviderName returns the active provider name, or empty when not ready.
func (s *LLMService) ProviderName() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.ready {
		return ""
	}
	return s.provider.GetName()
}

// SetProvider swaps the active provider at runtime.
func (s *LLMService) SetProvider(provider llm.Provider) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.provider = provider
	s.ready = provider != nil
}

// Complete issues one completion round trip, honoring the rate limit,
// and records token usage.
func (s *LLMService) Complete(ctx context.Context, req llm.CompletionRequest) (*llm.CompletionResponse, error) {
	s.mu.RLock()
	provider := s.provider
	ready := s.ready
	s.mu.RUnlock()

	if !ready {
		return nil, ErrLLMNotReady
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	start := time.Now()
	resp, err := provider.CompleteText(ctx, req)
	duration := time.Since(start)

	if err != nil {
		s.apiMetrics.RecordError("llm_request_failed", "llm_service")
		return nil, err
	}

	if s.stats != nil {
		s.stats.RecordLLMUsage(resp.TokensUsed)
	}
	s.apiMetrics.RecordLLMRequest(resp.ProviderName, resp.ModelName, resp.TokensUsed, duration)

	return resp, nil
}
