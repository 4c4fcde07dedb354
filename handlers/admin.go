package handlers

import (
	"net/http"

	"cabinet_avocat_go/db"
	"cabinet_avocat_go/models"
	"cabinet_avocat_go/services"

	"github.com/labstack/echo/v4"
)

// AdminListLawyersHandler returns all lawyer accounts, platform-wide
func AdminListLawyersHandler(c echo.Context) error {
	page, limit := parsePagination(c)

	query := db.DB.Model(&models.Lawyer{})
	query = applyKeywordFilter(query, c.QueryParam("search"), "first_name", "last_name", "email", "city")

	var lawyers []models.Lawyer
	resp, err := paginate(query.Order("created_at DESC"), page, limit, &lawyers)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to list lawyers"})
	}

	return c.JSON(http.StatusOK, resp)
}

// AdminGetLawyerHandler returns one lawyer account
func AdminGetLawyerHandler(c echo.Context) error {
	id := c.Param("id")
	if !isValidID(id) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid lawyer ID"})
	}

	var lawyer models.Lawyer
	if err := db.DB.First(&lawyer, "id = ?", id).Error; err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Lawyer not found"})
	}

	return c.JSON(http.StatusOK, lawyer)
}

type adminUpdateLawyerRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	City      string `json:"city"`
	Specialty string `json:"specialty"`
	FirmName  string `json:"firm_name"`
	Password  string `json:"password"`
}

// AdminUpdateLawyerHandler updates a lawyer account on the lawyer's behalf
func AdminUpdateLawyerHandler(c echo.Context) error {
	id := c.Param("id")
	if !isValidID(id) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid lawyer ID"})
	}

	var lawyer models.Lawyer
	if err := db.DB.First(&lawyer, "id = ?", id).Error; err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Lawyer not found"})
	}

	req := new(adminUpdateLawyerRequest)
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}

	if req.Email != "" && req.Email != lawyer.Email {
		var count int64
		db.DB.Model(&models.Lawyer{}).Where("email = ? AND id <> ?", req.Email, lawyer.ID).Count(&count)
		if count > 0 {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Email is already registered"})
		}
		lawyer.Email = req.Email
	}

	if req.FirstName != "" {
		lawyer.FirstName = req.FirstName
	}
	if req.LastName != "" {
		lawyer.LastName = req.LastName
	}
	if req.Phone != "" {
		lawyer.Phone = req.Phone
	}
	if req.Address != "" {
		lawyer.Address = req.Address
	}
	if req.City != "" {
		lawyer.City = req.City
	}
	if req.Specialty != "" {
		lawyer.Specialty = req.Specialty
	}
	if req.FirmName != "" {
		lawyer.FirmName = req.FirmName
	}
	if req.Password != "" {
		if len(req.Password) < 8 {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Password must be at least 8 characters"})
		}
		hashedPassword, err := services.HashPassword(req.Password)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to hash password"})
		}
		lawyer.Password = hashedPassword
	}

	if err := db.DB.Save(&lawyer).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to update lawyer"})
	}

	services.RecordActivity(db.DB, "lawyer_updated", "Updated lawyer "+lawyer.Email)

	return c.JSON(http.StatusOK, lawyer)
}

// AdminDeleteLawyerHandler removes a lawyer account and its secretaries
func AdminDeleteLawyerHandler(c echo.Context) error {
	id := c.Param("id")
	if !isValidID(id) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid lawyer ID"})
	}

	var lawyer models.Lawyer
	if err := db.DB.First(&lawyer, "id = ?", id).Error; err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Lawyer not found"})
	}

	if err := db.DB.Where("lawyer_id = ?", lawyer.ID).Delete(&models.Secretary{}).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to delete lawyer's secretaries"})
	}
	if err := db.DB.Delete(&lawyer).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to delete lawyer"})
	}

	services.RecordActivity(db.DB, "lawyer_deleted", "Deleted lawyer "+lawyer.Email)

	return c.JSON(http.StatusOK, map[string]string{"message": "Lawyer deleted"})
}

// AdminListSecretariesHandler returns all secretary accounts, platform-wide
func AdminListSecretariesHandler(c echo.Context) error {
	page, limit := parsePagination(c)

	query := db.DB.Model(&models.Secretary{})
	query = applyKeywordFilter(query, c.QueryParam("search"), "first_name", "last_name", "email")

	var secretaries []models.Secretary
	resp, err := paginate(query.Preload("Lawyer").Order("created_at DESC"), page, limit, &secretaries)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to list secretaries"})
	}

	return c.JSON(http.StatusOK, resp)
}

// AdminDeleteSecretaryHandler removes a secretary account, platform-wide
func AdminDeleteSecretaryHandler(c echo.Context) error {
	id := c.Param("id")
	if !isValidID(id) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid secretary ID"})
	}

	var secretary models.Secretary
	if err := db.DB.First(&secretary, "id = ?", id).Error; err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Secretary not found"})
	}

	if err := db.DB.Delete(&secretary).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to delete secretary"})
	}

	services.RecordActivity(db.DB, "secretary_deleted", "Deleted secretary "+secretary.Email)

	return c.JSON(http.StatusOK, map[string]string{"message": "Secretary deleted"})
}

// AdminActivityLogHandler returns the retained admin activity entries
func AdminActivityLogHandler(c echo.Context) error {
	entries, err := services.GetRecentActivity(db.DB)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to load activity log"})
	}

	return c.JSON(http.StatusOK, entries)
}
