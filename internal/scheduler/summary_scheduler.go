package scheduler

import (
	"context"

	"github.com/robfig/cron/v3"

	"github.com/dealerlist/dealerlist-backend/internal/app/service"
	"github.com/dealerlist/dealerlist-backend/pkg/logger"
)

// SummaryScheduler refreshes the cached dealer summary overnight so the
// recent-additions window rolls forward even when no mutation happens.
type SummaryScheduler struct {
	cron           *cron.Cron
	summaryService service.SummaryService
}

func NewSummaryScheduler(summaryService service.SummaryService) *SummaryScheduler {
	return &SummaryScheduler{
		cron:           cron.New(),
		summaryService: summaryService,
	}
}

func (s *SummaryScheduler) Start() error {
	// Daily at midnight
	_, err := s.cron.AddFunc("0 0 * * *", func() {
		logger.Info("Starting scheduled summary refresh", nil)

		summary, err := s.summaryService.RefreshSummary(context.Background())
		if err != nil {
			logger.Error("Failed to refresh dealer summary from scheduler", err)
			return
		}

		logger.Info("Dealer summary refreshed from scheduler", map[string]interface{}{
			"total":            summary.Total,
			"recent_additions": summary.RecentAdditions,
		})
	})

	if err != nil {
		logger.Error("Failed to add cron job for summary refresh", err)
		return err
	}

	s.cron.Start()
	logger.Info("Summary scheduler started successfully (daily at midnight)", nil)

	return nil
}

func (s *SummaryScheduler) Stop() {
	logger.Info("Stopping summary scheduler...", nil)
	s.cron.Stop()
	logger.Info("Summary scheduler stopped", nil)
}
