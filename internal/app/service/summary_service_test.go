package service

import (
	"context"
	"testing"
	"time"

	"github.com/dealerlist/dealerlist-backend/internal/app/model"
	"github.com/dealerlist/dealerlist-backend/internal/app/repository"
	"github.com/dealerlist/dealerlist-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarize(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	dealers := []model.Dealer{
		{City: "Mumbai", Status: model.StatusVerified, CreatedAt: now.Add(-time.Hour)},
		{City: "Mumbai", Status: model.StatusVerified, CreatedAt: now.Add(-30 * 24 * time.Hour)},
		{City: "Pune", Status: model.StatusUnverified, CreatedAt: now.Add(-2 * 24 * time.Hour)},
		{City: "Chennai", Status: model.StatusPending, CreatedAt: now.Add(-8 * 24 * time.Hour)},
		{City: "Pune", Status: model.StatusPending, CreatedAt: now.Add(-6 * 24 * time.Hour)},
	}

	summary := Summarize(dealers, now)

	assert.Equal(t, 5, summary.Total)
	assert.Equal(t, 2, summary.Verified)
	assert.Equal(t, 1, summary.Unverified)
	assert.Equal(t, 2, summary.Pending)
	assert.Equal(t, summary.Total, summary.Verified+summary.Unverified+summary.Pending)
	assert.Equal(t, 3, summary.UniqueCities)
	assert.Equal(t, 3, summary.RecentAdditions)
}

func TestSummarize_RecentWindowBoundaries(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		createdAt time.Time
		recent    int
	}{
		{"Exactly seven days ago is included", now.Add(-7 * 24 * time.Hour), 1},
		{"Just over seven days is excluded", now.Add(-7*24*time.Hour - time.Second), 0},
		{"Created at now is excluded, window is half-open", now, 0},
		{"One second ago is included", now.Add(-time.Second), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			summary := Summarize([]model.Dealer{{CreatedAt: tt.createdAt}}, now)
			assert.Equal(t, tt.recent, summary.RecentAdditions)
		})
	}
}

func TestSummarize_Empty(t *testing.T) {
	summary := Summarize(nil, time.Now())
	assert.Equal(t, DealerSummary{}, summary)
}

func TestSummaryService_GetSummary(t *testing.T) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	repo := repository.NewDealerRepository(testDB)
	summaryService := NewSummaryService(repo, time.Minute)

	seed := []model.Dealer{
		{Name: "A", City: "Mumbai", ContactNumber: "9000000001", Status: model.StatusVerified},
		{Name: "B", City: "Pune", ContactNumber: "9000000002"},
	}
	for i := range seed {
		require.NoError(t, repo.Create(&seed[i]))
	}

	summary, err := summaryService.GetSummary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Total)
	assert.Equal(t, 1, summary.Verified)
	assert.Equal(t, 1, summary.Pending)
	assert.Equal(t, 2, summary.UniqueCities)
	assert.Equal(t, 2, summary.RecentAdditions)
}
