package handlers

import (
	"net/http"
	"time"

	"cabinet_avocat_go/db"
	"cabinet_avocat_go/middleware"
	"cabinet_avocat_go/models"
	"cabinet_avocat_go/services"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// caseResponse decorates a case with its read-time payment total
type caseResponse struct {
	models.Case
	TotalPaidAmount float64 `json:"total_paid_amount"`
}

// attachPaymentTotals builds case responses carrying total_paid_amount.
// Cases without payments get 0.
func attachPaymentTotals(cases []models.Case) ([]caseResponse, error) {
	ids := make([]string, len(cases))
	for i, cs := range cases {
		ids[i] = cs.ID
	}

	totals, err := services.SumPaymentsByCase(db.DB, ids)
	if err != nil {
		return nil, err
	}

	responses := make([]caseResponse, len(cases))
	for i, cs := range cases {
		responses[i] = caseResponse{Case: cs, TotalPaidAmount: totals[cs.ID]}
	}
	return responses, nil
}

type caseRequest struct {
	ClientID          string   `json:"client_id" form:"client_id"`
	CaseNumber        string   `json:"case_number" form:"case_number"`
	Title             string   `json:"title" form:"title"`
	Category          string   `json:"category" form:"category"`
	CaseType          string   `json:"case_type" form:"case_type"`
	ClientRole        string   `json:"client_role" form:"client_role"`
	CaseLevel         string   `json:"case_level" form:"case_level"`
	PrimaryCaseNumber string   `json:"primary_case_number" form:"primary_case_number"`
	OpponentName      string   `json:"opponent_name" form:"opponent_name"`
	FeeType           string   `json:"fee_type" form:"fee_type"`
	LawyerFees        *float64 `json:"lawyer_fees" form:"lawyer_fees"`
	CaseExpenses      *float64 `json:"case_expenses" form:"case_expenses"`
	Status            string   `json:"status" form:"status"`
}

// ListCasesHandler returns the lawyer's cases with pagination, search and
// per-case payment totals. Archived cases are excluded unless ?archived=true.
func ListCasesHandler(c echo.Context) error {
	page, limit := parsePagination(c)

	query := middleware.GetLawyerScopedQuery(c, db.DB).Model(&models.Case{})

	if c.QueryParam("archived") == "true" {
		query = query.Where("is_archived = ?", true)
	} else {
		query = query.Where("is_archived = ?", false)
	}

	if status := c.QueryParam("status"); status != "" {
		if !models.IsValidCaseStatus(status) {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid status filter"})
		}
		query = query.Where("status = ?", status)
	}

	query = applyKeywordFilter(query, c.QueryParam("search"),
		"case_number", "title", "opponent_name", "category")

	var cases []models.Case
	resp, err := paginate(query.Preload("Client").Order("created_at DESC"), page, limit, &cases)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to list cases"})
	}

	decorated, err := attachPaymentTotals(cases)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to aggregate payments"})
	}
	resp.Data = decorated

	return c.JSON(http.StatusOK, resp)
}

// GetCaseHandler returns one case with its relations and payment total
func GetCaseHandler(c echo.Context) error {
	id := c.Param("id")
	if !isValidID(id) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid case ID"})
	}

	var cs models.Case
	err := middleware.GetLawyerScopedQuery(c, db.DB).
		Preload("Client").
		Preload("Attachments").
		Preload("ClientLinks.Client").
		First(&cs, "id = ?", id).Error
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Case not found"})
	}

	total, err := services.CasePaidTotal(db.DB, cs.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to aggregate payments"})
	}

	return c.JSON(http.StatusOK, caseResponse{Case: cs, TotalPaidAmount: total})
}

// CreateCaseHandler opens a new case. Requests may be JSON or multipart;
// multipart requests can carry up to MaxAttachmentsPerRequest files under
// the "attachments" field.
func CreateCaseHandler(c echo.Context) error {
	lawyer := middleware.GetCurrentLawyer(c)
	if lawyer == nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Not authenticated"})
	}

	req := new(caseRequest)
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}

	if req.ClientID == "" || req.Category == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Client and category are required"})
	}

	var client models.Client
	if err := db.DB.Where("id = ? AND lawyer_id = ?", req.ClientID, lawyer.ID).First(&client).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Client not found"})
	}

	if err := services.ValidateCaseTaxonomy(db.DB, req.Category, req.CaseType); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	cs := &models.Case{
		LawyerID:          lawyer.ID,
		ClientID:          client.ID,
		CaseNumber:        req.CaseNumber,
		Title:             req.Title,
		Category:          req.Category,
		CaseType:          req.CaseType,
		ClientRole:        req.ClientRole,
		CaseLevel:         req.CaseLevel,
		PrimaryCaseNumber: req.PrimaryCaseNumber,
		OpponentName:      req.OpponentName,
		FeeType:           req.FeeType,
		CaseExpenses:      req.CaseExpenses,
		Status:            models.CaseStatusOngoing,
	}
	if req.ClientRole == "" {
		cs.ClientRole = models.ClientRoleDemandeur
	}
	if req.CaseLevel == "" {
		cs.CaseLevel = models.CaseLevelPrimary
	}
	if req.FeeType == "" {
		cs.FeeType = models.FeeTypeLawyerOnly
	}
	if req.LawyerFees != nil {
		cs.LawyerFees = *req.LawyerFees
	}

	if !models.IsValidClientRole(cs.ClientRole) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid client role"})
	}
	if !models.IsValidCaseLevel(cs.CaseLevel) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid case level"})
	}
	if !models.IsValidFeeType(cs.FeeType) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid fee type"})
	}
	if err := cs.Validate(); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(cs).Error; err != nil {
			return err
		}
		link := &models.CaseClientLink{CaseID: cs.ID, ClientID: client.ID}
		return tx.Create(link).Error
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to create case"})
	}

	if form, err := c.MultipartForm(); err == nil && form != nil {
		if uploadErr := uploadCaseAttachments(c, lawyer.ID, cs, form.File["attachments"]); uploadErr != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": uploadErr.Error()})
		}
	}

	db.DB.Preload("Client").Preload("Attachments").First(cs, "id = ?", cs.ID)
	return c.JSON(http.StatusCreated, caseResponse{Case: *cs})
}

// UpdateCaseHandler updates a case. Omitted string fields keep their old
// values; the cross-field invariants are re-checked on the merged record.
func UpdateCaseHandler(c echo.Context) error {
	lawyer := middleware.GetCurrentLawyer(c)
	id := c.Param("id")
	if !isValidID(id) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid case ID"})
	}

	var cs models.Case
	if err := middleware.GetLawyerScopedQuery(c, db.DB).First(&cs, "id = ?", id).Error; err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Case not found"})
	}

	req := new(caseRequest)
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}

	if req.ClientID != "" && req.ClientID != cs.ClientID {
		var client models.Client
		if err := db.DB.Where("id = ? AND lawyer_id = ?", req.ClientID, cs.LawyerID).First(&client).Error; err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Client not found"})
		}
		cs.ClientID = client.ID
	}

	if req.Category != "" {
		cs.Category = req.Category
	}
	if req.CaseType != "" {
		cs.CaseType = req.CaseType
	}
	if req.Category != "" || req.CaseType != "" {
		if err := services.ValidateCaseTaxonomy(db.DB, cs.Category, cs.CaseType); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
	}

	if req.CaseNumber != "" {
		cs.CaseNumber = req.CaseNumber
	}
	if req.Title != "" {
		cs.Title = req.Title
	}
	if req.ClientRole != "" {
		if !models.IsValidClientRole(req.ClientRole) {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid client role"})
		}
		cs.ClientRole = req.ClientRole
	}
	if req.CaseLevel != "" {
		if !models.IsValidCaseLevel(req.CaseLevel) {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid case level"})
		}
		cs.CaseLevel = req.CaseLevel
	}
	if req.PrimaryCaseNumber != "" {
		cs.PrimaryCaseNumber = req.PrimaryCaseNumber
	}
	if req.OpponentName != "" {
		cs.OpponentName = req.OpponentName
	}
	if req.FeeType != "" {
		if !models.IsValidFeeType(req.FeeType) {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid fee type"})
		}
		cs.FeeType = req.FeeType
	}
	if req.LawyerFees != nil {
		cs.LawyerFees = *req.LawyerFees
	}
	if req.CaseExpenses != nil {
		cs.CaseExpenses = req.CaseExpenses
	}
	if req.Status != "" {
		if !models.IsValidCaseStatus(req.Status) {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid status"})
		}
		cs.Status = req.Status
	}

	if err := cs.Validate(); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	if err := db.DB.Save(&cs).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to update case"})
	}

	if form, err := c.MultipartForm(); err == nil && form != nil {
		if uploadErr := uploadCaseAttachments(c, lawyer.ID, &cs, form.File["attachments"]); uploadErr != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": uploadErr.Error()})
		}
	}

	total, _ := services.CasePaidTotal(db.DB, cs.ID)
	return c.JSON(http.StatusOK, caseResponse{Case: cs, TotalPaidAmount: total})
}

// DeleteCaseHandler removes a case, its remote attachments and its links
func DeleteCaseHandler(c echo.Context) error {
	id := c.Param("id")
	if !isValidID(id) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid case ID"})
	}

	var cs models.Case
	err := middleware.GetLawyerScopedQuery(c, db.DB).
		Preload("Attachments").
		First(&cs, "id = ?", id).Error
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Case not found"})
	}

	// Remote objects first; a failed delete is logged, not fatal
	for _, att := range cs.Attachments {
		if att.StorageKey == "" {
			continue
		}
		if err := services.Storage.Delete(c.Request().Context(), att.StorageKey); err != nil {
			c.Logger().Warnf("failed to delete attachment %s: %v", att.ID, err)
		}
	}

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("case_id = ?", cs.ID).Delete(&models.CaseAttachment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("case_id = ?", cs.ID).Delete(&models.CaseClientLink{}).Error; err != nil {
			return err
		}
		if err := tx.Where("case_id = ?", cs.ID).Delete(&models.CaseOpponentLink{}).Error; err != nil {
			return err
		}
		return tx.Delete(&cs).Error
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to delete case"})
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Case deleted"})
}

type archiveCaseRequest struct {
	Remarks string `json:"remarks"`
}

// ArchiveCaseHandler archives a case without deleting it
func ArchiveCaseHandler(c echo.Context) error {
	id := c.Param("id")
	if !isValidID(id) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid case ID"})
	}

	var cs models.Case
	if err := middleware.GetLawyerScopedQuery(c, db.DB).First(&cs, "id = ?", id).Error; err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Case not found"})
	}

	if cs.IsArchived {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Case is already archived"})
	}

	req := new(archiveCaseRequest)
	_ = c.Bind(req)

	now := time.Now()
	cs.IsArchived = true
	cs.ArchivedAt = &now
	cs.ArchiveRemarks = req.Remarks
	cs.Status = models.CaseStatusArchived

	if err := db.DB.Save(&cs).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to archive case"})
	}

	return c.JSON(http.StatusOK, cs)
}

// RestoreCaseHandler brings an archived case back to the active list
func RestoreCaseHandler(c echo.Context) error {
	id := c.Param("id")
	if !isValidID(id) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid case ID"})
	}

	var cs models.Case
	if err := middleware.GetLawyerScopedQuery(c, db.DB).First(&cs, "id = ?", id).Error; err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Case not found"})
	}

	if !cs.IsArchived {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Case is not archived"})
	}

	cs.IsArchived = false
	cs.ArchivedAt = nil
	cs.ArchiveRemarks = ""
	cs.Status = models.CaseStatusOngoing

	if err := db.DB.Save(&cs).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to restore case"})
	}

	return c.JSON(http.StatusOK, cs)
}
