package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// PaginatedResponse is the list envelope returned by every list endpoint
type PaginatedResponse struct {
	Data  interface{} `json:"data"`
	Total int64       `json:"total"`
	Page  int         `json:"page"`
	Pages int         `json:"pages"`
}

// parsePagination reads page/limit query params with sane bounds
func parsePagination(c echo.Context) (page, limit int) {
	page, _ = strconv.Atoi(c.QueryParam("page"))
	if page < 1 {
		page = 1
	}

	limit, _ = strconv.Atoi(c.QueryParam("limit"))
	if limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	return page, limit
}

// paginate applies offset/limit and builds the response envelope
func paginate(query *gorm.DB, page, limit int, dest interface{}) (*PaginatedResponse, error) {
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	offset := (page - 1) * limit
	if err := query.Offset(offset).Limit(limit).Find(dest).Error; err != nil {
		return nil, err
	}

	pages := int((total + int64(limit) - 1) / int64(limit))

	return &PaginatedResponse{
		Data:  dest,
		Total: total,
		Page:  page,
		Pages: pages,
	}, nil
}

// applyKeywordFilter adds a case-insensitive substring match across the
// given columns
func applyKeywordFilter(query *gorm.DB, keyword string, columns ...string) *gorm.DB {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return query
	}

	pattern := "%" + strings.ToLower(keyword) + "%"
	clauses := make([]string, len(columns))
	args := make([]interface{}, len(columns))
	for i, col := range columns {
		clauses[i] = "LOWER(" + col + ") LIKE ?"
		args[i] = pattern
	}

	return query.Where(strings.Join(clauses, " OR "), args...)
}

// isValidID checks that a path parameter is a well-formed identifier
func isValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// conflictError is the 400 payload for an occupied time slot, listing the
// records that block it
func conflictError(c echo.Context, message string, conflicts interface{}) error {
	return c.JSON(http.StatusBadRequest, map[string]interface{}{
		"error":     message,
		"conflicts": conflicts,
	})
}
