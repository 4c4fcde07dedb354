package handlers

import (
	"net/http"

	"cabinet_avocat_go/db"
	"cabinet_avocat_go/middleware"
	"cabinet_avocat_go/models"
	"cabinet_avocat_go/services"

	"github.com/labstack/echo/v4"
)

type secretaryRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Phone     string `json:"phone"`
}

// ListSecretariesHandler returns the lawyer's secretaries
func ListSecretariesHandler(c echo.Context) error {
	page, limit := parsePagination(c)

	query := middleware.GetLawyerScopedQuery(c, db.DB).Model(&models.Secretary{})
	query = applyKeywordFilter(query, c.QueryParam("search"), "first_name", "last_name", "email")

	var secretaries []models.Secretary
	resp, err := paginate(query.Order("created_at DESC"), page, limit, &secretaries)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to list secretaries"})
	}

	return c.JSON(http.StatusOK, resp)
}

// GetSecretaryHandler returns one secretary owned by the lawyer
func GetSecretaryHandler(c echo.Context) error {
	id := c.Param("id")
	if !isValidID(id) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid secretary ID"})
	}

	var secretary models.Secretary
	if err := middleware.GetLawyerScopedQuery(c, db.DB).First(&secretary, "id = ?", id).Error; err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Secretary not found"})
	}

	return c.JSON(http.StatusOK, secretary)
}

// CreateSecretaryHandler adds a secretary account under the lawyer
func CreateSecretaryHandler(c echo.Context) error {
	lawyer := middleware.GetCurrentLawyer(c)
	if lawyer == nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Not authenticated"})
	}

	req := new(secretaryRequest)
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}

	if req.FirstName == "" || req.LastName == "" || req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "First name, last name, email and password are required"})
	}
	if len(req.Password) < 8 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Password must be at least 8 characters"})
	}

	var count int64
	db.DB.Model(&models.Secretary{}).Where("email = ?", req.Email).Count(&count)
	if count > 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Email is already registered"})
	}

	hashedPassword, err := services.HashPassword(req.Password)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to hash password"})
	}

	secretary := &models.Secretary{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  hashedPassword,
		Phone:     req.Phone,
		LawyerID:  lawyer.ID,
	}

	if err := db.DB.Create(secretary).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to create secretary"})
	}

	return c.JSON(http.StatusCreated, secretary)
}

// UpdateSecretaryHandler updates a secretary. A new password, when given,
// is re-hashed; omitted fields keep their old values.
func UpdateSecretaryHandler(c echo.Context) error {
	id := c.Param("id")
	if !isValidID(id) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid secretary ID"})
	}

	var secretary models.Secretary
	if err := middleware.GetLawyerScopedQuery(c, db.DB).First(&secretary, "id = ?", id).Error; err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Secretary not found"})
	}

	req := new(secretaryRequest)
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}

	if req.Email != "" && req.Email != secretary.Email {
		var count int64
		db.DB.Model(&models.Secretary{}).Where("email = ? AND id <> ?", req.Email, secretary.ID).Count(&count)
		if count > 0 {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Email is already registered"})
		}
		secretary.Email = req.Email
	}

	if req.FirstName != "" {
		secretary.FirstName = req.FirstName
	}
	if req.LastName != "" {
		secretary.LastName = req.LastName
	}
	if req.Phone != "" {
		secretary.Phone = req.Phone
	}
	if req.Password != "" {
		if len(req.Password) < 8 {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Password must be at least 8 characters"})
		}
		hashedPassword, err := services.HashPassword(req.Password)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to hash password"})
		}
		secretary.Password = hashedPassword
	}

	if err := db.DB.Save(&secretary).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to update secretary"})
	}

	return c.JSON(http.StatusOK, secretary)
}

// DeleteSecretaryHandler removes a secretary account
func DeleteSecretaryHandler(c echo.Context) error {
	id := c.Param("id")
	if !isValidID(id) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid secretary ID"})
	}

	var secretary models.Secretary
	if err := middleware.GetLawyerScopedQuery(c, db.DB).First(&secretary, "id = ?", id).Error; err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Secretary not found"})
	}

	if err := db.DB.Delete(&secretary).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to delete secretary"})
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Secretary deleted"})
}
