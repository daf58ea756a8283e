package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	defaultPage  = 1
	defaultLimit = 10
)

// Pagination is included in every list payload.
type Pagination struct {
	Total       int64 `json:"total"`
	TotalPages  int64 `json:"totalPages"`
	CurrentPage int64 `json:"currentPage"`
}

// parsePageQuery reads page/limit query parameters, falling back to the
// defaults when absent or out of range.
func parsePageQuery(c *gin.Context) (page, limit int64) {
	page = defaultPage
	limit = defaultLimit
	if v, err := strconv.ParseInt(c.Query("page"), 10, 64); err == nil && v >= 1 {
		page = v
	}
	if v, err := strconv.ParseInt(c.Query("limit"), 10, 64); err == nil && v >= 1 {
		limit = v
	}
	return page, limit
}

func newPagination(total, page, limit int64) Pagination {
	totalPages := (total + limit - 1) / limit
	return Pagination{Total: total, TotalPages: totalPages, CurrentPage: page}
}
