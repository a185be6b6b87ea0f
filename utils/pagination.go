package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	DefaultPageLimit = 10
	AdminPageLimit   = 20
	MaxPageLimit     = 100
)

type Pagination struct {
	Page  int
	Limit int
}

// ParsePagination reads page and limit from the query string, falling back to
// defaults for missing or invalid values.
func ParsePagination(c *gin.Context, defaultLimit int) Pagination {
	p := Pagination{Page: 1, Limit: defaultLimit}
	if page, err := strconv.Atoi(c.Query("page")); err == nil && page >= 1 {
		p.Page = page
	}
	if limit, err := strconv.Atoi(c.Query("limit")); err == nil && limit >= 1 {
		p.Limit = limit
	}
	if p.Limit > MaxPageLimit {
		p.Limit = MaxPageLimit
	}
	return p
}

func (p Pagination) Offset() int {
	return (p.Page - 1) * p.Limit
}

type Page struct {
	Items       interface{} `json:"items"`
	TotalPages  int         `json:"totalPages"`
	CurrentPage int         `json:"currentPage"`
	Total       int64       `json:"total"`
}

func NewPage(items interface{}, total int64, p Pagination) Page {
	pages := 0
	if p.Limit > 0 {
		pages = int((total + int64(p.Limit) - 1) / int64(p.Limit))
	}
	return Page{Items: items, TotalPages: pages, CurrentPage: p.Page, Total: total}
}
