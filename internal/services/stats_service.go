// internal/services/stats_service.go
package services

import (
	"context"
	"os"
	"sync"
	"time"

	"github.com/offerforge/offerforge/internal/storage"
	"github.com/offerforge/offerforge/internal/utils"
)

const (
	statsCollection = "stats"
	statsDocumentID = "usage"
)

// UsageStats is the persisted usage snapshot.
type UsageStats struct {
	TotalRequests int            `json:"total_requests"`
	TotalTokens   int            `json:"total_tokens"`
	DailyRequests map[string]int `json:"daily_requests"` // key: 2006-01-02
	MonthlyTokens map[string]int `json:"monthly_tokens"` // key: 2006-01
	LastUpdated   time.Time      `json:"last_updated"`
}

// StatsService accumulates model usage counters in memory and flushes
// them to the document store periodically and on demand.
type StatsService struct {
	store  *storage.DocumentStore
	logger *utils.Logger

	mu    sync.Mutex
	stats UsageStats
	dirty bool
}

// NewStatsService loads any persisted usage snapshot and returns the
// service. A missing snapshot starts counters at zero.
func NewStatsService(store *storage.DocumentStore) *StatsService {
	s := &StatsService{
		store:  store,
		logger: utils.GetLogger(),
		stats: UsageStats{
			DailyRequests: make(map[string]int),
			MonthlyTokens: make(map[string]int),
		},
	}

	var persisted UsageStats
	err := store.Load(statsCollection, statsDocumentID, &persisted)
	if err == nil {
		if persisted.DailyRequests == nil {
			persisted.DailyRequests = make(map[string]int)
		}
		if persisted.MonthlyTokens == nil {
			persisted.MonthlyTokens = make(map[string]int)
		}
		s.stats = persisted
	} else if !os.IsNotExist(err) {
		s.logger.Warnf("Failed to load usage stats, starting fresh: %v", err)
	}

	return s
}

// RecordLLMUsage adds one request and its token count to the counters.
func (s *StatsService) RecordLLMUsage(tokens int) {
	now := time.Now()
	day := now.Format("2006-01-02")
	month := now.Format("2006-01")

	s.mu.Lock()
	defer s.mu.Unlock()

	s.stats.TotalRequests++
	s.stats.TotalTokens += tokens
	s.stats.DailyRequests[day]++
	s.stats.MonthlyTokens[month] += tokens
	s.stats.LastUpdated = now
	s.dirty = true
}

// Snapshot returns a copy of the current counters.
func (s *StatsService) Snapshot() UsageStats {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.stats
	snapshot.DailyRequests = make(map[string]int, len(s.stats.DailyRequests))
	for k, v := range s.stats.DailyRequests {
		snapshot.DailyRequests[k] = v
	}
	snapshot.MonthlyTokens = make(map[string]int, len(s.stats.MonthlyTokens))
	for k, v := range s.stats.MonthlyTokens {
		snapshot.MonthlyTokens[k] = v
	}
	return snapshot
}

// Save flushes the counters to disk when they changed since the last save.
func (s *StatsService) Save() error {
	s.mu.Lock()
	if !s.dirty {
		s.mu.Unlock()
		return nil
	}
	snapshot := s.stats
	s.dirty = false
	s.mu.Unlock()

	return s.store.Save(statsCollection, statsDocumentID, snapshot)
}

// StartAutoSave flushes counters on the given interval until ctx is done,
// with one final flush on shutdown.
func (s *StatsService) StartAutoSave(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				if err := s.Save(); err != nil {
					s.logger.Errorf("Failed to save usage stats on shutdown: %v", err)
				}
				return
			case <-ticker.C:
				if err := s.Save(); err != nil {
					s.logger.Errorf("Failed to save usage stats: %v", err)
				}
			}
		}
	}()
}
