package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stockflowhq/stockflow-api/pkg/pagination"
)

// GetUserID extracts the user ID from the Gin context
func GetUserID(c *gin.Context) *uuid.UUID {
	userIDVal, exists := c.Get("user_id")
	if !exists {
		return nil
	}
	userID, ok := userIDVal.(uuid.UUID)
	if !ok {
		return nil
	}
	return &userID
}

// GetUserEmail extracts the user email from the Gin context
func GetUserEmail(c *gin.Context) string {
	email, exists := c.Get("user_email")
	if !exists {
		return ""
	}
	return email.(string)
}

// paginationFromQuery reads page-based pagination parameters from the query
// string
func paginationFromQuery(c *gin.Context) *pagination.PaginationParams {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))
	return &pagination.PaginationParams{
		Page:    page,
		PerPage: perPage,
	}
}

// dateRangeFromQuery parses optional from/to query parameters. Accepts
// RFC3339 timestamps or bare dates (2006-01-02).
func dateRangeFromQuery(c *gin.Context) (*time.Time, *time.Time) {
	parse := func(value string) *time.Time {
		if value == "" {
			return nil
		}
		if t, err := time.Parse(time.RFC3339, value); err == nil {
			return &t
		}
		if t, err := time.Parse("2006-01-02", value); err == nil {
			return &t
		}
		return nil
	}
	return parse(c.Query("from")), parse(c.Query("to"))
}
