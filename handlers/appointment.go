package handlers

import (
	"net/http"

	"cabinet_avocat_go/db"
	"cabinet_avocat_go/middleware"
	"cabinet_avocat_go/models"
	"cabinet_avocat_go/services"

	"github.com/labstack/echo/v4"
)

type appointmentRequest struct {
	ClientID            string  `json:"client_id"`
	CaseID              *string `json:"case_id"`
	Date                string  `json:"date"`
	StartTime           string  `json:"start_time"`
	EndTime             string  `json:"end_time"`
	Type                string  `json:"type"`
	Status              string  `json:"status"`
	Description         string  `json:"description"`
	Notes               string  `json:"notes"`
	RecurrenceFrequency string  `json:"recurrence_frequency"`
	RecurrenceEndDate   *string `json:"recurrence_end_date"`
}

// ListAppointmentsHandler returns the lawyer's appointments
func ListAppointmentsHandler(c echo.Context) error {
	page, limit := parsePagination(c)

	query := middleware.GetLawyerScopedQuery(c, db.DB).Model(&models.Appointment{})

	if date := c.QueryParam("date"); date != "" {
		if !services.IsValidDate(date) {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid date filter"})
		}
		query = query.Where("date = ?", date)
	}
	if status := c.QueryParam("status"); status != "" {
		if !models.IsValidAppointmentStatus(status) {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid status filter"})
		}
		query = query.Where("status = ?", status)
	}

	var appointments []models.Appointment
	resp, err := paginate(query.Preload("Client").Preload("Case").Order("date DESC, start_time ASC"), page, limit, &appointments)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to list appointments"})
	}

	return c.JSON(http.StatusOK, resp)
}

// GetAppointmentHandler returns one appointment with its relations
func GetAppointmentHandler(c echo.Context) error {
	id := c.Param("id")
	if !isValidID(id) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid appointment ID"})
	}

	var appointment models.Appointment
	err := middleware.GetLawyerScopedQuery(c, db.DB).
		Preload("Client").
		Preload("Case").
		First(&appointment, "id = ?", id).Error
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Appointment not found"})
	}

	return c.JSON(http.StatusOK, appointment)
}

// CreateAppointmentHandler schedules an appointment. A meeting requires a
// case; the slot is checked against the lawyer's other appointments.
func CreateAppointmentHandler(c echo.Context) error {
	lawyer := middleware.GetCurrentLawyer(c)
	if lawyer == nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Not authenticated"})
	}

	req := new(appointmentRequest)
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}

	if req.ClientID == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Client is required"})
	}
	if err := services.ValidateTimeSlot(req.Date, req.StartTime, req.EndTime); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	appointmentType := req.Type
	if appointmentType == "" {
		appointmentType = models.AppointmentTypeConsultation
	}
	if !models.IsValidAppointmentType(appointmentType) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid appointment type"})
	}
	if appointmentType == models.AppointmentTypeMeeting && (req.CaseID == nil || *req.CaseID == "") {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "A meeting appointment requires a case"})
	}

	status := req.Status
	if status == "" {
		status = models.AppointmentStatusScheduled
	}
	if !models.IsValidAppointmentStatus(status) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid appointment status"})
	}

	if req.RecurrenceFrequency != "" {
		if !models.IsValidRecurrenceFrequency(req.RecurrenceFrequency) {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid recurrence frequency"})
		}
		if req.RecurrenceEndDate != nil && !services.IsValidDate(*req.RecurrenceEndDate) {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid recurrence end date"})
		}
	}

	var client models.Client
	if err := db.DB.Where("id = ? AND lawyer_id = ?", req.ClientID, lawyer.ID).First(&client).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Client not found"})
	}

	if req.CaseID != nil && *req.CaseID != "" {
		var count int64
		db.DB.Model(&models.Case{}).Where("id = ? AND lawyer_id = ?", *req.CaseID, lawyer.ID).Count(&count)
		if count == 0 {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Case not found"})
		}
	}

	conflicts, err := services.FindScheduleConflicts(db.DB, services.ScheduleAppointments,
		lawyer.ID, req.Date, req.StartTime, req.EndTime, "")
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to check availability"})
	}
	if len(conflicts) > 0 {
		return conflictError(c, "The time slot overlaps an existing appointment", conflicts)
	}

	appointment := &models.Appointment{
		LawyerID:            lawyer.ID,
		ClientID:            client.ID,
		CaseID:              req.CaseID,
		Date:                req.Date,
		StartTime:           req.StartTime,
		EndTime:             req.EndTime,
		Type:                appointmentType,
		Status:              status,
		Description:         req.Description,
		Notes:               req.Notes,
		RecurrenceFrequency: req.RecurrenceFrequency,
		RecurrenceEndDate:   req.RecurrenceEndDate,
	}

	if err := db.DB.Create(appointment).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to create appointment"})
	}

	return c.JSON(http.StatusCreated, appointment)
}

// UpdateAppointmentHandler updates an appointment with the usual partial
// merge and slot re-check
func UpdateAppointmentHandler(c echo.Context) error {
	lawyer := middleware.GetCurrentLawyer(c)
	id := c.Param("id")
	if !isValidID(id) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid appointment ID"})
	}

	var appointment models.Appointment
	if err := middleware.GetLawyerScopedQuery(c, db.DB).First(&appointment, "id = ?", id).Error; err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Appointment not found"})
	}

	req := new(appointmentRequest)
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}

	if req.ClientID != "" && req.ClientID != appointment.ClientID {
		var client models.Client
		if err := db.DB.Where("id = ? AND lawyer_id = ?", req.ClientID, appointment.LawyerID).First(&client).Error; err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Client not found"})
		}
		appointment.ClientID = client.ID
	}

	if req.Date != "" {
		appointment.Date = req.Date
	}
	if req.StartTime != "" {
		appointment.StartTime = req.StartTime
	}
	if req.EndTime != "" {
		appointment.EndTime = req.EndTime
	}
	if err := services.ValidateTimeSlot(appointment.Date, appointment.StartTime, appointment.EndTime); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	conflicts, err := services.FindScheduleConflicts(db.DB, services.ScheduleAppointments,
		lawyer.ID, appointment.Date, appointment.StartTime, appointment.EndTime, appointment.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to check availability"})
	}
	if len(conflicts) > 0 {
		return conflictError(c, "The time slot overlaps an existing appointment", conflicts)
	}

	if req.Type != "" {
		if !models.IsValidAppointmentType(req.Type) {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid appointment type"})
		}
		appointment.Type = req.Type
	}
	if req.CaseID != nil {
		appointment.CaseID = req.CaseID
	}
	if appointment.Type == models.AppointmentTypeMeeting && (appointment.CaseID == nil || *appointment.CaseID == "") {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "A meeting appointment requires a case"})
	}
	if req.Status != "" {
		if !models.IsValidAppointmentStatus(req.Status) {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid appointment status"})
		}
		appointment.Status = req.Status
	}
	if req.Description != "" {
		appointment.Description = req.Description
	}
	if req.Notes != "" {
		appointment.Notes = req.Notes
	}
	if req.RecurrenceFrequency != "" {
		if !models.IsValidRecurrenceFrequency(req.RecurrenceFrequency) {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid recurrence frequency"})
		}
		appointment.RecurrenceFrequency = req.RecurrenceFrequency
	}
	if req.RecurrenceEndDate != nil {
		if !services.IsValidDate(*req.RecurrenceEndDate) {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid recurrence end date"})
		}
		appointment.RecurrenceEndDate = req.RecurrenceEndDate
	}

	if err := db.DB.Save(&appointment).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to update appointment"})
	}

	return c.JSON(http.StatusOK, appointment)
}

// DeleteAppointmentHandler removes an appointment unless sessions were
// planned from it. The blocking sessions are returned so the caller can
// resolve them first.
func DeleteAppointmentHandler(c echo.Context) error {
	id := c.Param("id")
	if !isValidID(id) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid appointment ID"})
	}

	var appointment models.Appointment
	if err := middleware.GetLawyerScopedQuery(c, db.DB).First(&appointment, "id = ?", id).Error; err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Appointment not found"})
	}

	var dependents []models.Session
	if err := db.DB.Where("appointment_id = ?", appointment.ID).Find(&dependents).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to check dependent sessions"})
	}
	if len(dependents) > 0 {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"error":    "The appointment has sessions planned from it",
			"sessions": dependents,
		})
	}

	if err := db.DB.Delete(&appointment).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to delete appointment"})
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Appointment deleted"})
}
