package handlers

import (
	"fmt"
	"net/http"

	"cabinet_avocat_go/db"
	"cabinet_avocat_go/middleware"
	"cabinet_avocat_go/models"
	"cabinet_avocat_go/services"

	"github.com/labstack/echo/v4"
)

// SessionReportHandler streams a PDF report for one hearing
func SessionReportHandler(c echo.Context) error {
	lawyer := middleware.GetCurrentLawyer(c)
	if lawyer == nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Not authenticated"})
	}

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

	data := services.BuildSessionReportData(lawyer, session.Date, []models.Session{session})
	pdf, err := services.GenerateSessionReportPDF(data)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to generate report"})
	}

	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="session_%s.pdf"`, session.Date))
	return c.Blob(http.StatusOK, "application/pdf", pdf)
}

// DailySessionReportHandler streams a PDF report covering all hearings of
// one day, ordered by start time
func DailySessionReportHandler(c echo.Context) error {
	lawyer := middleware.GetCurrentLawyer(c)
	if lawyer == nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Not authenticated"})
	}

	date := c.QueryParam("date")
	if !services.IsValidDate(date) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "A date query parameter (YYYY-MM-DD) is required"})
	}

	var sessions []models.Session
	err := middleware.GetLawyerScopedQuery(c, db.DB).
		Preload("Client").
		Preload("Case").
		Where("date = ?", date).
		Order("start_time ASC").
		Find(&sessions).Error
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to load sessions"})
	}

	if len(sessions) == 0 {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "No sessions on this date"})
	}

	data := services.BuildSessionReportData(lawyer, date, sessions)
	pdf, err := services.GenerateSessionReportPDF(data)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to generate report"})
	}

	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="sessions_%s.pdf"`, date))
	return c.Blob(http.StatusOK, "application/pdf", pdf)
}

// PaymentsExportHandler streams the payments ledger as a spreadsheet, with
// optional start/end date filters
func PaymentsExportHandler(c echo.Context) error {
	lawyer := middleware.GetCurrentLawyer(c)
	if lawyer == nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Not authenticated"})
	}

	startDate := c.QueryParam("start_date")
	endDate := c.QueryParam("end_date")
	if startDate != "" && !services.IsValidDate(startDate) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid start date"})
	}
	if endDate != "" && !services.IsValidDate(endDate) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid end date"})
	}

	c.Response().Header().Set(echo.HeaderContentType,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="payments.xlsx"`)
	c.Response().WriteHeader(http.StatusOK)

	if err := services.ExportPaymentsXLSX(db.DB, lawyer.ID, startDate, endDate, c.Response()); err != nil {
		c.Logger().Errorf("payments export failed: %v", err)
		return err
	}

	return nil
}
