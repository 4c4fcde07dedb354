package handlers

import (
	"net/http"

	"cabinet_avocat_go/db"
	"cabinet_avocat_go/models"
	"cabinet_avocat_go/services"

	"github.com/labstack/echo/v4"
)

// caseTypeResponse exposes the sub-type names as a JSON list
type caseTypeResponse struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	SubTypes []string `json:"sub_types"`
}

func toCaseTypeResponse(t models.CaseType) caseTypeResponse {
	return caseTypeResponse{ID: t.ID, Name: t.Name, SubTypes: t.SubTypeList()}
}

// ListCaseTypesHandler returns the case taxonomy
func ListCaseTypesHandler(c echo.Context) error {
	types, err := services.ListCaseTypes(db.DB)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to list case types"})
	}

	responses := make([]caseTypeResponse, len(types))
	for i, t := range types {
		responses[i] = toCaseTypeResponse(t)
	}

	return c.JSON(http.StatusOK, responses)
}

type caseTypeRequest struct {
	Name     string   `json:"name"`
	SubTypes []string `json:"sub_types"`
}

// AdminCreateCaseTypeHandler adds a taxonomy category (admin only)
func AdminCreateCaseTypeHandler(c echo.Context) error {
	req := new(caseTypeRequest)
	if err := c.Bind(req); err != nil || req.Name == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "A category name is required"})
	}

	var count int64
	db.DB.Model(&models.CaseType{}).Where("name = ?", req.Name).Count(&count)
	if count > 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Category already exists"})
	}

	caseType := &models.CaseType{Name: req.Name}
	caseType.SetSubTypes(req.SubTypes)

	if err := db.DB.Create(caseType).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to create case type"})
	}

	services.RecordActivity(db.DB, "case_type_created", "Created case category "+caseType.Name)

	return c.JSON(http.StatusCreated, toCaseTypeResponse(*caseType))
}

// AdminUpdateCaseTypeHandler replaces a category's sub-type list (admin only)
func AdminUpdateCaseTypeHandler(c echo.Context) error {
	id := c.Param("id")
	if !isValidID(id) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid case type ID"})
	}

	var caseType models.CaseType
	if err := db.DB.First(&caseType, "id = ?", id).Error; err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Case type not found"})
	}

	req := new(caseTypeRequest)
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}

	if req.Name != "" && req.Name != caseType.Name {
		var count int64
		db.DB.Model(&models.CaseType{}).Where("name = ? AND id <> ?", req.Name, caseType.ID).Count(&count)
		if count > 0 {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Category already exists"})
		}
		caseType.Name = req.Name
	}
	if req.SubTypes != nil {
		caseType.SetSubTypes(req.SubTypes)
	}

	if err := db.DB.Save(&caseType).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to update case type"})
	}

	services.RecordActivity(db.DB, "case_type_updated", "Updated case category "+caseType.Name)

	return c.JSON(http.StatusOK, toCaseTypeResponse(caseType))
}

// AdminDeleteCaseTypeHandler removes a category unless cases reference it
func AdminDeleteCaseTypeHandler(c echo.Context) error {
	id := c.Param("id")
	if !isValidID(id) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid case type ID"})
	}

	var caseType models.CaseType
	if err := db.DB.First(&caseType, "id = ?", id).Error; err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Case type not found"})
	}

	var count int64
	db.DB.Model(&models.Case{}).Where("category = ?", caseType.Name).Count(&count)
	if count > 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Cases still reference this category"})
	}

	if err := db.DB.Delete(&caseType).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to delete case type"})
	}

	services.RecordActivity(db.DB, "case_type_deleted", "Deleted case category "+caseType.Name)

	return c.JSON(http.StatusOK, map[string]string{"message": "Case type deleted"})
}
