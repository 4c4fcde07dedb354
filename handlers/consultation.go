package handlers

import (
	"net/http"

	"cabinet_avocat_go/db"
	"cabinet_avocat_go/middleware"
	"cabinet_avocat_go/models"
	"cabinet_avocat_go/services"

	"github.com/labstack/echo/v4"
)

type consultationRequest struct {
	ClientID    string   `json:"client_id"`
	CaseID      *string  `json:"case_id"`
	Date        string   `json:"date"`
	StartTime   string   `json:"start_time"`
	EndTime     string   `json:"end_time"`
	Status      string   `json:"status"`
	Notes       string   `json:"notes"`
	Amount      *float64 `json:"amount"`
	PaymentMode string   `json:"payment_mode"`
}

// ListConsultationsHandler returns the lawyer's consultations
func ListConsultationsHandler(c echo.Context) error {
	page, limit := parsePagination(c)

	query := middleware.GetLawyerScopedQuery(c, db.DB).Model(&models.Consultation{})

	if date := c.QueryParam("date"); date != "" {
		if !services.IsValidDate(date) {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid date filter"})
		}
		query = query.Where("date = ?", date)
	}
	if status := c.QueryParam("status"); status != "" {
		if !models.IsValidConsultationStatus(status) {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid status filter"})
		}
		query = query.Where("status = ?", status)
	}

	var consultations []models.Consultation
	resp, err := paginate(query.Preload("Client").Order("date DESC, start_time ASC"), page, limit, &consultations)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to list consultations"})
	}

	return c.JSON(http.StatusOK, resp)
}

// GetConsultationHandler returns one consultation with its relations
func GetConsultationHandler(c echo.Context) error {
	id := c.Param("id")
	if !isValidID(id) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid consultation ID"})
	}

	var consultation models.Consultation
	err := middleware.GetLawyerScopedQuery(c, db.DB).
		Preload("Client").
		Preload("Case").
		First(&consultation, "id = ?", id).Error
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Consultation not found"})
	}

	return c.JSON(http.StatusOK, consultation)
}

// CreateConsultationHandler schedules a consultation after checking the
// slot against the lawyer's other consultations
func CreateConsultationHandler(c echo.Context) error {
	lawyer := middleware.GetCurrentLawyer(c)
	if lawyer == nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Not authenticated"})
	}

	req := new(consultationRequest)
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}

	if req.ClientID == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Client is required"})
	}
	if err := services.ValidateTimeSlot(req.Date, req.StartTime, req.EndTime); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	status := req.Status
	if status == "" {
		status = models.ConsultationStatusScheduled
	}
	if !models.IsValidConsultationStatus(status) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid consultation status"})
	}
	if req.PaymentMode != "" && !models.IsValidPaymentMode(req.PaymentMode) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid payment mode"})
	}
	if req.Amount != nil && *req.Amount < 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Amount cannot be negative"})
	}

	var client models.Client
	if err := db.DB.Where("id = ? AND lawyer_id = ?", req.ClientID, lawyer.ID).First(&client).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Client not found"})
	}

	conflicts, err := services.FindScheduleConflicts(db.DB, services.ScheduleConsultations,
		lawyer.ID, req.Date, req.StartTime, req.EndTime, "")
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to check availability"})
	}
	if len(conflicts) > 0 {
		return conflictError(c, "The time slot overlaps an existing consultation", conflicts)
	}

	consultation := &models.Consultation{
		LawyerID:    lawyer.ID,
		ClientID:    client.ID,
		CaseID:      req.CaseID,
		Date:        req.Date,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Status:      status,
		Notes:       req.Notes,
		Amount:      req.Amount,
		PaymentMode: req.PaymentMode,
	}

	if err := db.DB.Create(consultation).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to create consultation"})
	}

	return c.JSON(http.StatusCreated, consultation)
}

// UpdateConsultationHandler updates a consultation with the usual partial
// merge and slot re-check
func UpdateConsultationHandler(c echo.Context) error {
	lawyer := middleware.GetCurrentLawyer(c)
	id := c.Param("id")
	if !isValidID(id) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid consultation ID"})
	}

	var consultation models.Consultation
	if err := middleware.GetLawyerScopedQuery(c, db.DB).First(&consultation, "id = ?", id).Error; err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Consultation not found"})
	}

	req := new(consultationRequest)
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}

	if req.ClientID != "" && req.ClientID != consultation.ClientID {
		var client models.Client
		if err := db.DB.Where("id = ? AND lawyer_id = ?", req.ClientID, consultation.LawyerID).First(&client).Error; err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Client not found"})
		}
		consultation.ClientID = client.ID
	}

	if req.Date != "" {
		consultation.Date = req.Date
	}
	if req.StartTime != "" {
		consultation.StartTime = req.StartTime
	}
	if req.EndTime != "" {
		consultation.EndTime = req.EndTime
	}
	if err := services.ValidateTimeSlot(consultation.Date, consultation.StartTime, consultation.EndTime); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	conflicts, err := services.FindScheduleConflicts(db.DB, services.ScheduleConsultations,
		lawyer.ID, consultation.Date, consultation.StartTime, consultation.EndTime, consultation.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to check availability"})
	}
	if len(conflicts) > 0 {
		return conflictError(c, "The time slot overlaps an existing consultation", conflicts)
	}

	if req.CaseID != nil {
		consultation.CaseID = req.CaseID
	}
	if req.Status != "" {
		if !models.IsValidConsultationStatus(req.Status) {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid consultation status"})
		}
		consultation.Status = req.Status
	}
	if req.Notes != "" {
		consultation.Notes = req.Notes
	}
	if req.Amount != nil {
		if *req.Amount < 0 {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Amount cannot be negative"})
		}
		consultation.Amount = req.Amount
	}
	if req.PaymentMode != "" {
		if !models.IsValidPaymentMode(req.PaymentMode) {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid payment mode"})
		}
		consultation.PaymentMode = req.PaymentMode
	}

	if err := db.DB.Save(&consultation).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to update consultation"})
	}

	return c.JSON(http.StatusOK, consultation)
}

// DeleteConsultationHandler removes a consultation
func DeleteConsultationHandler(c echo.Context) error {
	id := c.Param("id")
	if !isValidID(id) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid consultation ID"})
	}

	var consultation models.Consultation
	if err := middleware.GetLawyerScopedQuery(c, db.DB).First(&consultation, "id = ?", id).Error; err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Consultation not found"})
	}

	if err := db.DB.Delete(&consultation).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to delete consultation"})
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Consultation deleted"})
}
