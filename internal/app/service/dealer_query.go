package service

import (
	"sort"
	"strings"

	"github.com/dealerlist/dealerlist-backend/internal/app/model"
)

// Status filter tokens accepted by the query engine. StatusFilterPending
// selects dealers whose status is empty; the empty token selects all.
const (
	StatusFilterAll        = ""
	StatusFilterVerified   = "verified"
	StatusFilterUnverified = "unverified"
	StatusFilterPending    = "pending"
)

// QueryOptions narrows and pages an in-memory dealer set. The caller
// supplies PageSize; device-dependent defaults are presentation policy.
type QueryOptions struct {
	Status   string
	City     string
	Search   string
	Page     int
	PageSize int
}

// PageResult is one page of a filtered dealer set.
type PageResult struct {
	Items      []model.Dealer
	TotalCount int
	TotalPages int
}

// FilterDealers selects the subset of dealers matching the status, city
// and free-text filters, preserving the input order. It never mutates
// its input.
func FilterDealers(dealers []model.Dealer, opts QueryOptions) []model.Dealer {
	result := make([]model.Dealer, 0, len(dealers))
	for _, d := range dealers {
		if !matchesStatus(d, opts.Status) {
			continue
		}
		if opts.City != "" && d.City != opts.City {
			continue
		}
		if !matchesSearch(d, opts.Search) {
			continue
		}
		result = append(result, d)
	}
	return result
}

func matchesStatus(d model.Dealer, status string) bool {
	switch status {
	case StatusFilterVerified:
		return d.Status == model.StatusVerified
	case StatusFilterUnverified:
		return d.Status == model.StatusUnverified
	case StatusFilterPending:
		return d.Status == model.StatusPending
	default:
		return true
	}
}

// matchesSearch applies the free-text rule: case-insensitive substring
// against name and city, raw substring against the two phone fields.
// A dealer matches when any of the four checks matches.
func matchesSearch(d model.Dealer, term string) bool {
	if term == "" {
		return true
	}
	lower := strings.ToLower(term)
	return strings.Contains(strings.ToLower(d.Name), lower) ||
		strings.Contains(strings.ToLower(d.City), lower) ||
		strings.Contains(d.ContactNumber, term) ||
		strings.Contains(d.AlternateNumber, term)
}

// Paginate slices one 1-indexed page out of dealers. A page past the
// end yields an empty item list; TotalPages has a floor of 1.
func Paginate(dealers []model.Dealer, page, pageSize int) PageResult {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}

	totalCount := len(dealers)
	totalPages := (totalCount + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}

	start := (page - 1) * pageSize
	if start >= totalCount {
		return PageResult{Items: []model.Dealer{}, TotalCount: totalCount, TotalPages: totalPages}
	}
	end := start + pageSize
	if end > totalCount {
		end = totalCount
	}

	return PageResult{Items: dealers[start:end], TotalCount: totalCount, TotalPages: totalPages}
}

// FilterAndPaginate composes FilterDealers and Paginate.
func FilterAndPaginate(dealers []model.Dealer, opts QueryOptions) PageResult {
	return Paginate(FilterDealers(dealers, opts), opts.Page, opts.PageSize)
}

// DistinctCities returns the sorted set of unique non-empty city values,
// for use in filter-selection UI.
func DistinctCities(dealers []model.Dealer) []string {
	seen := make(map[string]struct{}, len(dealers))
	cities := make([]string, 0, len(dealers))
	for _, d := range dealers {
		if d.City == "" {
			continue
		}
		if _, ok := seen[d.City]; ok {
			continue
		}
		seen[d.City] = struct{}{}
		cities = append(cities, d.City)
	}
	sort.Strings(cities)
	return cities
}
