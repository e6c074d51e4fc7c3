package repository

import (
	"testing"
	"time"

	"github.com/dealerlist/dealerlist-backend/internal/app/model"
	"github.com/dealerlist/dealerlist-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupDealerTest(t *testing.T) (*gorm.DB, DealerRepository) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	repo := NewDealerRepository(testDB)
	return testDB, repo
}

func TestDealerRepository_Create(t *testing.T) {
	_, repo := setupDealerTest(t)

	dealer := &model.Dealer{
		Name:          "John Smith",
		City:          "New Delhi",
		ContactNumber: "9876543210",
	}

	err := repo.Create(dealer)
	assert.NoError(t, err)
	assert.NotZero(t, dealer.ID)
	assert.False(t, dealer.CreatedAt.IsZero())
	assert.Equal(t, model.StatusPending, dealer.Status)
}

func TestDealerRepository_FindAll_NewestFirst(t *testing.T) {
	testDB, repo := setupDealerTest(t)

	base := time.Now().Add(-time.Hour)
	dealers := []model.Dealer{
		{Name: "Oldest", City: "Pune", ContactNumber: "9000000001", CreatedAt: base},
		{Name: "Middle", City: "Pune", ContactNumber: "9000000002", CreatedAt: base.Add(10 * time.Minute)},
		{Name: "Newest", City: "Pune", ContactNumber: "9000000003", CreatedAt: base.Add(20 * time.Minute)},
	}
	for i := range dealers {
		require.NoError(t, testDB.Create(&dealers[i]).Error)
	}

	found, err := repo.FindAll()
	require.NoError(t, err)
	require.Len(t, found, 3)
	assert.Equal(t, "Newest", found[0].Name)
	assert.Equal(t, "Middle", found[1].Name)
	assert.Equal(t, "Oldest", found[2].Name)
}

func TestDealerRepository_FindByID(t *testing.T) {
	_, repo := setupDealerTest(t)

	dealer := &model.Dealer{Name: "John", City: "Pune", ContactNumber: "9876543210"}
	require.NoError(t, repo.Create(dealer))

	found, err := repo.FindByID(dealer.ID)
	require.NoError(t, err)
	assert.Equal(t, "John", found.Name)

	_, err = repo.FindByID(9999)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestDealerRepository_FindFiltered(t *testing.T) {
	_, repo := setupDealerTest(t)

	seed := []model.Dealer{
		{Name: "A", City: "Mumbai", ContactNumber: "9000000001", Status: model.StatusVerified},
		{Name: "B", City: "Mumbai", ContactNumber: "9000000002", Status: model.StatusUnverified},
		{Name: "C", City: "Pune", ContactNumber: "9000000003", Status: model.StatusPending},
		{Name: "D", City: "Pune", ContactNumber: "9000000004", Status: model.StatusVerified},
	}
	for i := range seed {
		require.NoError(t, repo.Create(&seed[i]))
	}

	t.Run("Concrete status", func(t *testing.T) {
		found, err := repo.FindFiltered(DealerFilter{Status: model.StatusVerified, StatusSet: true})
		require.NoError(t, err)
		assert.Len(t, found, 2)
	})

	t.Run("Pending sentinel", func(t *testing.T) {
		found, err := repo.FindFiltered(DealerFilter{PendingOnly: true})
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, "C", found[0].Name)
	})

	t.Run("City exact match", func(t *testing.T) {
		found, err := repo.FindFiltered(DealerFilter{City: "Pune"})
		require.NoError(t, err)
		assert.Len(t, found, 2)
	})

	t.Run("Status and city combined", func(t *testing.T) {
		found, err := repo.FindFiltered(DealerFilter{
			Status:    model.StatusVerified,
			StatusSet: true,
			City:      "Pune",
		})
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, "D", found[0].Name)
	})

	t.Run("No filter returns all", func(t *testing.T) {
		found, err := repo.FindFiltered(DealerFilter{})
		require.NoError(t, err)
		assert.Len(t, found, 4)
	})
}

func TestDealerRepository_UpdateStatus(t *testing.T) {
	_, repo := setupDealerTest(t)

	dealer := &model.Dealer{Name: "John", City: "Pune", ContactNumber: "9876543210"}
	require.NoError(t, repo.Create(dealer))
	createdAt := dealer.CreatedAt

	err := repo.UpdateStatus(dealer.ID, model.StatusVerified)
	require.NoError(t, err)

	found, err := repo.FindByID(dealer.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusVerified, found.Status)
	assert.Equal(t, createdAt.Unix(), found.CreatedAt.Unix())
	assert.False(t, found.UpdatedAt.Before(found.CreatedAt))

	err = repo.UpdateStatus(9999, model.StatusVerified)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestDealerRepository_Delete(t *testing.T) {
	_, repo := setupDealerTest(t)

	dealer := &model.Dealer{Name: "John", City: "Pune", ContactNumber: "9876543210"}
	require.NoError(t, repo.Create(dealer))

	require.NoError(t, repo.Delete(dealer.ID))

	_, err := repo.FindByID(dealer.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	// Deleting again reports not found; deletion is permanent
	assert.ErrorIs(t, repo.Delete(dealer.ID), gorm.ErrRecordNotFound)
}
