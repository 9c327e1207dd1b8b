package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// PageSize is the fixed number of posts per feed page.
const PageSize = 10

type Pagination struct {
	Page     int   `json:"page"`
	PageSize int   `json:"page_size"`
	NumPages int   `json:"num_pages"`
	Total    int64 `json:"total"`
}

// resolvePage reads the 1-indexed "page" query parameter and clamps it to
// the valid range: out-of-range requests get the last page rather than an
// empty result, and malformed or missing values get page 1.
func resolvePage(c *gin.Context, total int64) (int, Pagination) {
	numPages := int((total + PageSize - 1) / PageSize)
	if numPages < 1 {
		numPages = 1
	}

	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	if page > numPages {
		page = numPages
	}

	return page, Pagination{
		Page:     page,
		PageSize: PageSize,
		NumPages: numPages,
		Total:    total,
	}
}

func pageOffset(page int) int {
	return (page - 1) * PageSize
}
