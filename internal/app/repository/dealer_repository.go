package repository

import (
	"github.com/dealerlist/dealerlist-backend/internal/app/model"
	"github.com/dealerlist/dealerlist-backend/pkg/logger"
	"gorm.io/gorm"
)

// DealerFilter narrows a dealer lookup at the store level. PendingOnly
// carries the sentinel meaning "status empty or NULL", distinct from a
// concrete status match.
type DealerFilter struct {
	Status      model.DealerStatus
	StatusSet   bool
	PendingOnly bool
	City        string
}

type DealerRepository interface {
	Create(dealer *model.Dealer) error
	Update(dealer *model.Dealer) error
	UpdateStatus(id uint, status model.DealerStatus) error
	Delete(id uint) error
	FindAll() ([]model.Dealer, error)
	FindByID(id uint) (*model.Dealer, error)
	FindFiltered(filter DealerFilter) ([]model.Dealer, error)
}

type dealerRepository struct {
	db *gorm.DB
}

func NewDealerRepository(db *gorm.DB) DealerRepository {
	return &dealerRepository{db: db}
}

func (r *dealerRepository) Create(dealer *model.Dealer) error {
	logger.Debug("Creating dealer in database", map[string]interface{}{
		"name": dealer.Name,
		"city": dealer.City,
	})

	if err := r.db.Create(dealer).Error; err != nil {
		logger.Error("Failed to create dealer in database", err, map[string]interface{}{
			"name": dealer.Name,
			"city": dealer.City,
		})
		return err
	}

	logger.Debug("Dealer created in database", map[string]interface{}{
		"dealer_id": dealer.ID,
		"name":      dealer.Name,
	})
	return nil
}

func (r *dealerRepository) Update(dealer *model.Dealer) error {
	logger.Debug("Updating dealer in database", map[string]interface{}{
		"dealer_id": dealer.ID,
		"name":      dealer.Name,
	})

	if err := r.db.Save(dealer).Error; err != nil {
		logger.Error("Failed to update dealer in database", err, map[string]interface{}{
			"dealer_id": dealer.ID,
		})
		return err
	}
	return nil
}

// UpdateStatus persists only the status column; GORM refreshes
// updated_at as part of the write.
func (r *dealerRepository) UpdateStatus(id uint, status model.DealerStatus) error {
	logger.Debug("Updating dealer status", map[string]interface{}{
		"dealer_id": id,
		"status":    string(status),
	})

	result := r.db.Model(&model.Dealer{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		logger.Error("Failed to update dealer status", result.Error, map[string]interface{}{
			"dealer_id": id,
			"status":    string(status),
		})
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes the dealer permanently. There is no soft delete.
func (r *dealerRepository) Delete(id uint) error {
	logger.Debug("Deleting dealer from database", map[string]interface{}{
		"dealer_id": id,
	})

	result := r.db.Unscoped().Delete(&model.Dealer{}, id)
	if result.Error != nil {
		logger.Error("Failed to delete dealer from database", result.Error, map[string]interface{}{
			"dealer_id": id,
		})
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// FindAll returns every dealer, newest-created first.
func (r *dealerRepository) FindAll() ([]model.Dealer, error) {
	var dealers []model.Dealer
	if err := r.db.Order("created_at DESC, id DESC").Find(&dealers).Error; err != nil {
		logger.Error("Failed to find dealers", err, nil)
		return nil, err
	}

	logger.Debug("Dealers found", map[string]interface{}{
		"count": len(dealers),
	})
	return dealers, nil
}

func (r *dealerRepository) FindByID(id uint) (*model.Dealer, error) {
	var dealer model.Dealer
	if err := r.db.First(&dealer, id).Error; err != nil {
		if err != gorm.ErrRecordNotFound {
			logger.Error("Failed to find dealer by ID", err, map[string]interface{}{
				"dealer_id": id,
			})
		}
		return nil, err
	}
	return &dealer, nil
}

func (r *dealerRepository) FindFiltered(filter DealerFilter) ([]model.Dealer, error) {
	logger.Debug("Finding dealers with filter", map[string]interface{}{
		"status":       string(filter.Status),
		"status_set":   filter.StatusSet,
		"pending_only": filter.PendingOnly,
		"city":         filter.City,
	})

	query := r.db.Model(&model.Dealer{})

	if filter.PendingOnly {
		query = query.Where("status = ? OR status IS NULL", "")
	} else if filter.StatusSet {
		query = query.Where("status = ?", string(filter.Status))
	}
	if filter.City != "" {
		query = query.Where("city = ?", filter.City)
	}

	var dealers []model.Dealer
	if err := query.Order("created_at DESC, id DESC").Find(&dealers).Error; err != nil {
		logger.Error("Failed to find filtered dealers", err, map[string]interface{}{
			"city": filter.City,
		})
		return nil, err
	}

	logger.Debug("Filtered dealers found", map[string]interface{}{
		"count": len(dealers),
	})
	return dealers, nil
}
