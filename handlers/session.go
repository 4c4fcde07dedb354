package handlers

import (
	"net/http"

	"cabinet_avocat_go/db"
	"cabinet_avocat_go/middleware"
	"cabinet_avocat_go/models"
	"cabinet_avocat_go/services"

	"github.com/labstack/echo/v4"
)

type sessionRequest struct {
	ClientID      string  `json:"client_id"`
	CaseID        *string `json:"case_id"`
	AppointmentID *string `json:"appointment_id"`
	Date          string  `json:"date"`
	StartTime     string  `json:"start_time"`
	EndTime       string  `json:"end_time"`
	Location      string  `json:"location"`
	OrderNumber   string  `json:"order_number"`
	Outcome       string  `json:"outcome"`
	Remarks       string  `json:"remarks"`
}

// ListSessionsHandler returns the lawyer's hearings, newest date first,
// with optional date and case filters
func ListSessionsHandler(c echo.Context) error {
	page, limit := parsePagination(c)

	query := middleware.GetLawyerScopedQuery(c, db.DB).Model(&models.Session{})

	if date := c.QueryParam("date"); date != "" {
		if !services.IsValidDate(date) {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid date filter"})
		}
		query = query.Where("date = ?", date)
	}
	if caseID := c.QueryParam("case_id"); caseID != "" {
		query = query.Where("case_id = ?", caseID)
	}
	query = applyKeywordFilter(query, c.QueryParam("search"), "location", "order_number")

	var sessions []models.Session
	resp, err := paginate(query.Preload("Client").Preload("Case").Order("date DESC, start_time ASC"), page, limit, &sessions)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to list sessions"})
	}

	return c.JSON(http.StatusOK, resp)
}

// GetSessionHandler returns one hearing with its relations
func GetSessionHandler(c echo.Context) error {
	id := c.Param("id")
	if !isValidID(id) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid session ID"})
	}

	var session models.Session
	err := middleware.GetLawyerScopedQuery(c, db.DB).
		Preload("Client").
		Preload("Case").
		First(&session, "id = ?", id).Error
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Session not found"})
	}

	return c.JSON(http.StatusOK, session)
}

// CreateSessionHandler schedules a hearing after checking the slot is free
func CreateSessionHandler(c echo.Context) error {
	lawyer := middleware.GetCurrentLawyer(c)
	if lawyer == nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Not authenticated"})
	}

	req := new(sessionRequest)
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}

	if req.ClientID == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Client is required"})
	}
	if err := services.ValidateTimeSlot(req.Date, req.StartTime, req.EndTime); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
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

	conflicts, err := services.FindScheduleConflicts(db.DB, services.ScheduleSessions,
		lawyer.ID, req.Date, req.StartTime, req.EndTime, "")
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to check availability"})
	}
	if len(conflicts) > 0 {
		return conflictError(c, "The time slot overlaps an existing session", conflicts)
	}

	session := &models.Session{
		LawyerID:      lawyer.ID,
		ClientID:      client.ID,
		CaseID:        req.CaseID,
		AppointmentID: req.AppointmentID,
		Date:          req.Date,
		StartTime:     req.StartTime,
		EndTime:       req.EndTime,
		Location:      req.Location,
		OrderNumber:   req.OrderNumber,
		Outcome:       req.Outcome,
		Remarks:       req.Remarks,
	}

	if err := db.DB.Create(session).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to create session"})
	}

	return c.JSON(http.StatusCreated, session)
}

// UpdateSessionHandler updates a hearing; a changed slot is re-checked
// against the other sessions, excluding this one
func UpdateSessionHandler(c echo.Context) error {
	lawyer := middleware.GetCurrentLawyer(c)
	id := c.Param("id")
	if !isValidID(id) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid session ID"})
	}

	var session models.Session
	if err := middleware.GetLawyerScopedQuery(c, db.DB).First(&session, "id = ?", id).Error; err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Session not found"})
	}

	req := new(sessionRequest)
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}

	if req.ClientID != "" && req.ClientID != session.ClientID {
		var client models.Client
		if err := db.DB.Where("id = ? AND lawyer_id = ?", req.ClientID, session.LawyerID).First(&client).Error; err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Client not found"})
		}
		session.ClientID = client.ID
	}

	if req.Date != "" {
		session.Date = req.Date
	}
	if req.StartTime != "" {
		session.StartTime = req.StartTime
	}
	if req.EndTime != "" {
		session.EndTime = req.EndTime
	}
	if err := services.ValidateTimeSlot(session.Date, session.StartTime, session.EndTime); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	conflicts, err := services.FindScheduleConflicts(db.DB, services.ScheduleSessions,
		lawyer.ID, session.Date, session.StartTime, session.EndTime, session.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to check availability"})
	}
	if len(conflicts) > 0 {
		return conflictError(c, "The time slot overlaps an existing session", conflicts)
	}

	if req.CaseID != nil {
		session.CaseID = req.CaseID
	}
	if req.Location != "" {
		session.Location = req.Location
	}
	if req.OrderNumber != "" {
		session.OrderNumber = req.OrderNumber
	}
	if req.Outcome != "" {
		session.Outcome = req.Outcome
	}
	if req.Remarks != "" {
		session.Remarks = req.Remarks
	}

	if err := db.DB.Save(&session).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to update session"})
	}

	return c.JSON(http.StatusOK, session)
}

// DeleteSessionHandler removes a hearing
func DeleteSessionHandler(c echo.Context) error {
	id := c.Param("id")
	if !isValidID(id) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid session ID"})
	}

	var session models.Session
	if err := middleware.GetLawyerScopedQuery(c, db.DB).First(&session, "id = ?", id).Error; err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Session not found"})
	}

	if err := db.DB.Delete(&session).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to delete session"})
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Session deleted"})
}
