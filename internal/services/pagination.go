package services

import (
	"math"
)

const (
	DefaultPageSize = 8
	MaxPageSize     = 50
)

// PageInfo describes one offset-paginated slice of a result set. No cursor
// stability is guaranteed across concurrent writes between page fetches.
type PageInfo struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
	HasPrev    bool  `json:"has_prev"`
}

// ClampPage normalizes a requested page number.
func ClampPage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}

// ClampPageSize normalizes a requested page size.
func ClampPageSize(size int) int {
	if size < 1 {
		return DefaultPageSize
	}
	if size > MaxPageSize {
		return MaxPageSize
	}
	return size
}

// NewPageInfo computes totals and navigation flags for a page.
func NewPageInfo(page, pageSize int, total int64) PageInfo {
	totalPages := int(math.Ceil(float64(total) / float64(pageSize)))
	if totalPages == 0 {
		totalPages = 1
	}
	return PageInfo{
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
		HasPrev:    page > 1,
	}
}

// Offset returns the skip count for the page.
func (p PageInfo) Offset() int {
	return (p.Page - 1) * p.PageSize
}
