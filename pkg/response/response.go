package response

import (
	"math"
	"net/http"

	"github.com/gin-gonic/gin"
)

// The API uses two error shapes: {"message": string} for single errors and
// {"errors": [{"msg": ..., "param": ...}]} for field-level validation
// failures. Clients handle the two separately.

// FieldError is one entry in a validation failure list.
type FieldError struct {
	Msg   string `json:"msg"`
	Param string `json:"param,omitempty"`
	Value string `json:"value,omitempty"`
}

// Message writes the single-error shape.
func Message(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"message": msg})
}

// AbortMessage writes the single-error shape and stops the handler chain.
// For use inside middleware.
func AbortMessage(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, gin.H{"message": msg})
}

// ValidationFailed writes the multi-error shape with HTTP 400.
func ValidationFailed(c *gin.Context, errs []FieldError) {
	c.JSON(http.StatusBadRequest, gin.H{"errors": errs})
}

// Page carries the pagination trailer every list response includes.
type Page struct {
	Total       int64 `json:"total"`
	TotalPages  int   `json:"totalPages"`
	CurrentPage int   `json:"currentPage"`
}

// NewPage computes the trailer for a result set of size total at the given
// 1-indexed page.
func NewPage(total int64, page, limit int) Page {
	if limit <= 0 {
		limit = 1
	}
	return Page{
		Total:       total,
		TotalPages:  int(math.Ceil(float64(total) / float64(limit))),
		CurrentPage: page,
	}
}

// List writes a list payload: the items under key, with the pagination
// trailer flattened alongside them.
func List(c *gin.Context, key string, items any, p Page) {
	c.JSON(http.StatusOK, gin.H{
		key:           items,
		"total":       p.Total,
		"totalPages":  p.TotalPages,
		"currentPage": p.CurrentPage,
	})
}
