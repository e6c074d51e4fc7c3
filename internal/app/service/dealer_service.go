package service

import (
	"context"
	"errors"
	"sync"

	"github.com/dealerlist/dealerlist-backend/internal/app/model"
	"github.com/dealerlist/dealerlist-backend/internal/app/repository"
	"github.com/dealerlist/dealerlist-backend/pkg/logger"
	"github.com/dealerlist/dealerlist-backend/pkg/redis"
	"gorm.io/gorm"
)

var (
	ErrDealerNotFound         = errors.New("dealer not found")
	ErrInvalidDecision        = errors.New("verification decision must be verified or unverified")
	ErrInvalidStatus          = errors.New("invalid dealer status")
	ErrVerificationInProgress = errors.New("a verification for this dealer is already in progress")
)

// ValidationError carries the field-scoped messages from the record
// model validator. It never reaches the store.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return "dealer input failed validation"
}

// VerificationStats are the aggregate counters shown on the
// verification queue: dealers still pending and decisions completed.
type VerificationStats struct {
	Pending   int `json:"pending"`
	Completed int `json:"completed"`
}

// DealerListResult is the working set for the dashboard: one page of
// matches plus the distinct cities of the status/city-filtered set.
type DealerListResult struct {
	Page   PageResult
	Cities []string
}

type DealerService interface {
	CreateDealer(input model.DealerInput) (*model.Dealer, error)
	GetDealerByID(id uint) (*model.Dealer, error)
	ListDealers(opts QueryOptions) (*DealerListResult, error)
	FilteredDealers(opts QueryOptions) ([]model.Dealer, error)
	UpdateDealer(id uint, input model.DealerInput) (*model.Dealer, error)
	DeleteDealer(id uint) error
	Verify(id uint, decision model.DealerStatus) (*model.Dealer, error)
	PendingVerification(search string) ([]model.Dealer, VerificationStats, error)
}

type dealerService struct {
	repo repository.DealerRepository

	// inflight rejects concurrent duplicate verification calls per
	// dealer id.
	mu       sync.Mutex
	inflight map[uint]struct{}
}

func NewDealerService(repo repository.DealerRepository) DealerService {
	return &dealerService{
		repo:     repo,
		inflight: make(map[uint]struct{}),
	}
}

func (s *dealerService) CreateDealer(input model.DealerInput) (*model.Dealer, error) {
	logger.Debug("Creating dealer", map[string]interface{}{
		"name": input.Name,
		"city": input.City,
	})

	if fieldErrs := model.ValidateDealerInput(input); len(fieldErrs) > 0 {
		logger.Warn("Dealer input failed validation", map[string]interface{}{
			"fields": fieldErrs,
		})
		return nil, &ValidationError{Fields: fieldErrs}
	}
	if !input.Status.IsValid() {
		return nil, ErrInvalidStatus
	}

	dealer := input.Normalize().ToDealer()
	if err := s.repo.Create(dealer); err != nil {
		return nil, err
	}

	redis.InvalidateSummary(context.Background())

	logger.Info("Dealer created", map[string]interface{}{
		"dealer_id": dealer.ID,
		"name":      dealer.Name,
	})
	return dealer, nil
}

func (s *dealerService) GetDealerByID(id uint) (*model.Dealer, error) {
	dealer, err := s.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDealerNotFound
		}
		return nil, err
	}
	return dealer, nil
}

// ListDealers narrows by status/city at the store, then applies the
// free-text search and pagination in memory. Distinct cities are
// derived from the store-filtered set, before search, so the filter
// dropdown stays stable while typing.
func (s *dealerService) ListDealers(opts QueryOptions) (*DealerListResult, error) {
	dealers, err := s.FilteredDealers(opts)
	if err != nil {
		return nil, err
	}

	page := FilterAndPaginate(dealers, QueryOptions{
		Search:   opts.Search,
		Page:     opts.Page,
		PageSize: opts.PageSize,
	})

	// The city dropdown is built from the whole registry so it stays
	// stable while filters are applied.
	all, err := s.repo.FindAll()
	if err != nil {
		return nil, err
	}

	return &DealerListResult{
		Page:   page,
		Cities: DistinctCities(all),
	}, nil
}

// FilteredDealers returns the status/city/search-filtered set without
// pagination, newest first. The export endpoint shares it with ListDealers.
func (s *dealerService) FilteredDealers(opts QueryOptions) ([]model.Dealer, error) {
	filter := repository.DealerFilter{City: opts.City}
	switch opts.Status {
	case StatusFilterPending:
		filter.PendingOnly = true
	case StatusFilterVerified, StatusFilterUnverified:
		filter.Status = model.DealerStatus(opts.Status)
		filter.StatusSet = true
	}

	dealers, err := s.repo.FindFiltered(filter)
	if err != nil {
		logger.Error("Failed to list dealers", err)
		return nil, err
	}

	if opts.Search != "" {
		dealers = FilterDealers(dealers, QueryOptions{Search: opts.Search})
	}
	return dealers, nil
}

func (s *dealerService) UpdateDealer(id uint, input model.DealerInput) (*model.Dealer, error) {
	logger.Debug("Updating dealer", map[string]interface{}{
		"dealer_id": id,
	})

	if fieldErrs := model.ValidateDealerInput(input); len(fieldErrs) > 0 {
		return nil, &ValidationError{Fields: fieldErrs}
	}
	if !input.Status.IsValid() {
		return nil, ErrInvalidStatus
	}

	dealer, err := s.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDealerNotFound
		}
		return nil, err
	}

	normalized := input.Normalize()
	dealer.Name = normalized.Name
	dealer.City = normalized.City
	dealer.ContactNumber = normalized.ContactNumber
	dealer.AlternateNumber = normalized.AlternateNumber
	// The edit form may set status directly, bypassing the
	// verification workflow. This path is deliberately unconstrained.
	dealer.Status = normalized.Status

	if err := s.repo.Update(dealer); err != nil {
		return nil, err
	}

	redis.InvalidateSummary(context.Background())

	logger.Info("Dealer updated", map[string]interface{}{
		"dealer_id": dealer.ID,
	})
	return dealer, nil
}

func (s *dealerService) DeleteDealer(id uint) error {
	if err := s.repo.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrDealerNotFound
		}
		return err
	}

	redis.InvalidateSummary(context.Background())

	logger.Info("Dealer deleted", map[string]interface{}{
		"dealer_id": id,
	})
	return nil
}

// Verify records a verification decision for a pending dealer. Exactly
// one decision per dealer may be in flight at a time; a concurrent
// duplicate is rejected. Re-deciding an already-decided dealer simply
// overwrites status and timestamp.
func (s *dealerService) Verify(id uint, decision model.DealerStatus) (*model.Dealer, error) {
	if decision != model.StatusVerified && decision != model.StatusUnverified {
		return nil, ErrInvalidDecision
	}

	s.mu.Lock()
	if _, busy := s.inflight[id]; busy {
		s.mu.Unlock()
		logger.Warn("Duplicate verification rejected", map[string]interface{}{
			"dealer_id": id,
		})
		return nil, ErrVerificationInProgress
	}
	s.inflight[id] = struct{}{}
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		delete(s.inflight, id)
		s.mu.Unlock()
	}()

	if err := s.repo.UpdateStatus(id, decision); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDealerNotFound
		}
		return nil, err
	}

	redis.InvalidateSummary(context.Background())

	dealer, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}

	logger.Info("Dealer verification recorded", map[string]interface{}{
		"dealer_id": id,
		"decision":  string(decision),
	})
	return dealer, nil
}

// PendingVerification returns the dealers awaiting a decision, narrowed
// by the optional search term, together with queue-level counters
// computed over the full record set.
func (s *dealerService) PendingVerification(search string) ([]model.Dealer, VerificationStats, error) {
	pending, err := s.repo.FindFiltered(repository.DealerFilter{PendingOnly: true})
	if err != nil {
		return nil, VerificationStats{}, err
	}
	if search != "" {
		pending = FilterDealers(pending, QueryOptions{Search: search})
	}

	all, err := s.repo.FindAll()
	if err != nil {
		return nil, VerificationStats{}, err
	}

	stats := VerificationStats{}
	for _, d := range all {
		if d.Status == model.StatusPending {
			stats.Pending++
		} else {
			stats.Completed++
		}
	}

	return pending, stats, nil
}
