package handlers

import (
	"net/http"

	"cabinet_avocat_go/db"
	"cabinet_avocat_go/middleware"
	"cabinet_avocat_go/services"

	"github.com/labstack/echo/v4"
)

// GetProfileHandler returns the authenticated lawyer's profile
func GetProfileHandler(c echo.Context) error {
	lawyer := middleware.GetCurrentLawyer(c)
	if lawyer == nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Not authenticated"})
	}
	return c.JSON(http.StatusOK, lawyer)
}

type updateProfileRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	City      string `json:"city"`
	Specialty string `json:"specialty"`
	FirmName  string `json:"firm_name"`
}

// UpdateProfileHandler updates the lawyer's profile. Fields omitted from
// the request keep their previous values.
func UpdateProfileHandler(c echo.Context) error {
	lawyer := middleware.GetCurrentLawyer(c)
	if lawyer == nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Not authenticated"})
	}

	req := new(updateProfileRequest)
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
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

	if err := db.DB.Save(lawyer).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to update profile"})
	}

	return c.JSON(http.StatusOK, lawyer)
}

// UploadLogoHandler uploads the lawyer's logo to the media store
func UploadLogoHandler(c echo.Context) error {
	lawyer := middleware.GetCurrentLawyer(c)
	if lawyer == nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Not authenticated"})
	}

	file, err := c.FormFile("logo")
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "A logo file is required"})
	}

	if err := services.ValidateLogoUpload(file); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	// Replace the previous logo object, if any
	if lawyer.LogoKey != "" {
		if err := services.Storage.Delete(c.Request().Context(), lawyer.LogoKey); err != nil {
			c.Logger().Warnf("failed to delete previous logo: %v", err)
		}
	}

	key := services.GenerateLawyerLogoKey(lawyer.ID, file.Filename)
	result, err := services.Storage.Upload(c.Request().Context(), file, key)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	lawyer.LogoKey = result.Key
	lawyer.LogoURL = result.URL
	if err := db.DB.Save(lawyer).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to save logo reference"})
	}

	return c.JSON(http.StatusOK, lawyer)
}
