package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/project-management-api/internal/constants"
)

// PaginationParams holds the pagination parameters
type PaginationParams struct {
	Page   int
	Limit  int
	Offset int
}

// Page is the uniform envelope of every paginated list response.
type Page[T any] struct {
	Data  []T   `json:"data"`
	Total int64 `json:"total"`
}

// NewPage wraps a materialized page of items and the total number of matching rows.
func NewPage[T any](items []T, total int64) Page[T] {
	if items == nil {
		items = []T{}
	}
	return Page[T]{Data: items, Total: total}
}

// NewPaginationParams normalizes a 1-indexed page and a page size. Pages below 1
// are clamped to 1; sizes outside [MinPageSize, MaxPageSize] fall back to the default.
func NewPaginationParams(page, limit int) PaginationParams {
	if page < constants.MinPageSize {
		page = constants.MinPageSize
	}
	if limit < constants.MinPageSize || limit > constants.MaxPageSize {
		limit = constants.DefaultPageSize
	}

	return PaginationParams{
		Page:   page,
		Limit:  limit,
		Offset: (page - 1) * limit,
	}
}

// GetPaginationParams extracts and validates pagination parameters from the request
func GetPaginationParams(c *gin.Context) PaginationParams {
	page, err := strconv.Atoi(c.DefaultQuery("page", strconv.Itoa(constants.MinPageSize)))
	if err != nil {
		page = constants.MinPageSize
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(constants.DefaultPageSize)))
	if err != nil {
		limit = constants.DefaultPageSize
	}

	return NewPaginationParams(page, limit)
}

// TotalPages returns the number of pages needed for total rows at limit rows per page.
func TotalPages(total int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	pages := int(total) / limit
	if int(total)%limit > 0 {
		pages++
	}
	return pages
}
