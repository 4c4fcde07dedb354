package handlers

import (
	"net/http"

	"cabinet_avocat_go/db"
	"cabinet_avocat_go/middleware"
	"cabinet_avocat_go/models"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

type clientRequest struct {
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	NationalID string `json:"national_id"`
	Phone      string `json:"phone"`
	Phone2     string `json:"phone2"`
	Address    string `json:"address"`
	Address2   string `json:"address2"`
}

// ListClientsHandler returns the lawyer's clients, paginated, with an
// optional keyword search over name, national ID and phone
func ListClientsHandler(c echo.Context) error {
	page, limit := parsePagination(c)

	query := middleware.GetLawyerScopedQuery(c, db.DB).Model(&models.Client{})
	query = applyKeywordFilter(query, c.QueryParam("search"),
		"first_name", "last_name", "national_id", "phone")

	var clients []models.Client
	resp, err := paginate(query.Order("created_at DESC"), page, limit, &clients)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to list clients"})
	}

	return c.JSON(http.StatusOK, resp)
}

// GetClientHandler returns one client owned by the lawyer
func GetClientHandler(c echo.Context) error {
	id := c.Param("id")
	if !isValidID(id) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid client ID"})
	}

	var client models.Client
	if err := middleware.GetLawyerScopedQuery(c, db.DB).First(&client, "id = ?", id).Error; err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Client not found"})
	}

	return c.JSON(http.StatusOK, client)
}

// CreateClientHandler registers a new client for the lawyer
func CreateClientHandler(c echo.Context) error {
	lawyer := middleware.GetCurrentLawyer(c)
	if lawyer == nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Not authenticated"})
	}

	req := new(clientRequest)
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}

	if req.FirstName == "" || req.LastName == "" || req.NationalID == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "First name, last name and national ID are required"})
	}

	var count int64
	db.DB.Model(&models.Client{}).Where("national_id = ?", req.NationalID).Count(&count)
	if count > 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "A client with this national ID already exists"})
	}

	client := &models.Client{
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		NationalID: req.NationalID,
		Phone:      req.Phone,
		Phone2:     req.Phone2,
		Address:    req.Address,
		Address2:   req.Address2,
		LawyerID:   lawyer.ID,
	}

	if err := db.DB.Create(client).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to create client"})
	}

	return c.JSON(http.StatusCreated, client)
}

// UpdateClientHandler updates a client. Omitted fields are left unchanged.
func UpdateClientHandler(c echo.Context) error {
	id := c.Param("id")
	if !isValidID(id) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid client ID"})
	}

	var client models.Client
	if err := middleware.GetLawyerScopedQuery(c, db.DB).First(&client, "id = ?", id).Error; err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Client not found"})
	}

	req := new(clientRequest)
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}

	if req.NationalID != "" && req.NationalID != client.NationalID {
		var count int64
		db.DB.Model(&models.Client{}).Where("national_id = ? AND id <> ?", req.NationalID, client.ID).Count(&count)
		if count > 0 {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "A client with this national ID already exists"})
		}
		client.NationalID = req.NationalID
	}

	if req.FirstName != "" {
		client.FirstName = req.FirstName
	}
	if req.LastName != "" {
		client.LastName = req.LastName
	}
	if req.Phone != "" {
		client.Phone = req.Phone
	}
	if req.Phone2 != "" {
		client.Phone2 = req.Phone2
	}
	if req.Address != "" {
		client.Address = req.Address
	}
	if req.Address2 != "" {
		client.Address2 = req.Address2
	}

	if err := db.DB.Save(&client).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to update client"})
	}

	return c.JSON(http.StatusOK, client)
}

// DeleteClientHandler removes a client and its case links. Cases stay in
// place, including those where the client was primary.
func DeleteClientHandler(c echo.Context) error {
	id := c.Param("id")
	if !isValidID(id) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid client ID"})
	}

	var client models.Client
	if err := middleware.GetLawyerScopedQuery(c, db.DB).First(&client, "id = ?", id).Error; err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Client not found"})
	}

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("client_id = ?", client.ID).Delete(&models.CaseClientLink{}).Error; err != nil {
			return err
		}
		return tx.Delete(&client).Error
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to delete client"})
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Client deleted"})
}
