package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/dealerlist/dealerlist-backend/internal/app/model"
	"github.com/dealerlist/dealerlist-backend/internal/app/repository"
	"github.com/dealerlist/dealerlist-backend/pkg/logger"
	"github.com/dealerlist/dealerlist-backend/pkg/redis"
)

// DealerSummary is the dashboard statistics payload.
type DealerSummary struct {
	Total           int `json:"total"`
	Verified        int `json:"verified"`
	Unverified      int `json:"unverified"`
	Pending         int `json:"pending"`
	UniqueCities    int `json:"unique_cities"`
	RecentAdditions int `json:"recent_additions"`
}

// recentWindow is the trailing period counted as a recent addition.
const recentWindow = 7 * 24 * time.Hour

// Summarize derives the dashboard statistics from a record set. The
// recent-additions window is half-open, [now-7d, now), against the
// caller-supplied now, which keeps the function pure for tests.
func Summarize(dealers []model.Dealer, now time.Time) DealerSummary {
	summary := DealerSummary{Total: len(dealers)}
	cutoff := now.Add(-recentWindow)

	cities := make(map[string]struct{})
	for _, d := range dealers {
		switch d.Status {
		case model.StatusVerified:
			summary.Verified++
		case model.StatusUnverified:
			summary.Unverified++
		default:
			summary.Pending++
		}

		if d.City != "" {
			cities[d.City] = struct{}{}
		}

		if !d.CreatedAt.Before(cutoff) && d.CreatedAt.Before(now) {
			summary.RecentAdditions++
		}
	}

	summary.UniqueCities = len(cities)
	return summary
}

type SummaryService interface {
	GetSummary(ctx context.Context) (DealerSummary, error)
	RefreshSummary(ctx context.Context) (DealerSummary, error)
}

type summaryService struct {
	repo     repository.DealerRepository
	cacheTTL time.Duration
}

func NewSummaryService(repo repository.DealerRepository, cacheTTL time.Duration) SummaryService {
	return &summaryService{repo: repo, cacheTTL: cacheTTL}
}

// GetSummary serves the cached summary when one is fresh, otherwise
// recomputes from the full record set and refills the cache.
func (s *summaryService) GetSummary(ctx context.Context) (DealerSummary, error) {
	if payload, err := redis.GetCachedSummary(ctx); err == nil && payload != nil {
		var cached DealerSummary
		if err := json.Unmarshal(payload, &cached); err == nil {
			logger.Debug("Dealer summary served from cache", nil)
			return cached, nil
		}
	}

	return s.RefreshSummary(ctx)
}

// RefreshSummary recomputes the summary and updates the cache.
func (s *summaryService) RefreshSummary(ctx context.Context) (DealerSummary, error) {
	dealers, err := s.repo.FindAll()
	if err != nil {
		logger.Error("Failed to load dealers for summary", err)
		return DealerSummary{}, err
	}

	summary := Summarize(dealers, time.Now())

	if payload, err := json.Marshal(summary); err == nil {
		_ = redis.CacheSummary(ctx, payload, s.cacheTTL)
	}

	logger.Debug("Dealer summary computed", map[string]interface{}{
		"total":   summary.Total,
		"pending": summary.Pending,
	})
	return summary, nil
}
