package datatable

import (
	"context"

	"gorm.io/gorm"
)

// LookupDescriptor declares one select2-style type-ahead source. Results are
// always ordered by a stable key, never relevance-ranked.
type LookupDescriptor struct {
	Base   func(db *gorm.DB) *gorm.DB
	Search func(query *gorm.DB, term string) *gorm.DB
	Order  string
	Scan   func(page *gorm.DB) (interface{}, error)
}

type LookupResponse struct {
	Results    interface{}      `json:"results"`
	Pagination LookupPagination `json:"pagination"`
}

type LookupPagination struct {
	More bool `json:"more"`
}

// Lookup pages matching rows for a type-ahead selector.
// Page numbering is 1-based; more = (page * pageSize) < totalMatching.
func Lookup(ctx context.Context, db *gorm.DB, term string, page, pageSize int, desc LookupDescriptor) (*LookupResponse, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = defaultLength
	}

	matching := desc.Base(db.WithContext(ctx))
	if term != "" && desc.Search != nil {
		matching = desc.Search(matching, term)
	}

	var totalMatching int64
	if err := matching.Count(&totalMatching).Error; err != nil {
		return nil, err
	}

	pageQuery := desc.Base(db.WithContext(ctx))
	if term != "" && desc.Search != nil {
		pageQuery = desc.Search(pageQuery, term)
	}
	pageQuery = pageQuery.
		Order(desc.Order).
		Offset((page - 1) * pageSize).
		Limit(pageSize)

	results, err := desc.Scan(pageQuery)
	if err != nil {
		return nil, err
	}

	return &LookupResponse{
		Results:    results,
		Pagination: LookupPagination{More: int64(page)*int64(pageSize) < totalMatching},
	}, nil
}
