package handlers

import (
	"fmt"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"cabinet_avocat_go/db"
	"cabinet_avocat_go/middleware"
	"cabinet_avocat_go/models"
	"cabinet_avocat_go/services"

	"github.com/labstack/echo/v4"
)

// signedURLTTL bounds how long a download link stays valid
const signedURLTTL = 15 * time.Minute

// uploadCaseAttachments pushes the given files to the media store under the
// case's folder and records one CaseAttachment per file. The media kind is
// derived from the extension once, at upload time.
func uploadCaseAttachments(c echo.Context, lawyerID string, cs *models.Case, files []*multipart.FileHeader) error {
	if len(files) == 0 {
		return nil
	}
	if len(files) > services.MaxAttachmentsPerRequest {
		return fmt.Errorf("at most %d attachments per request", services.MaxAttachmentsPerRequest)
	}

	for _, file := range files {
		if err := services.ValidateAttachmentUpload(file); err != nil {
			return err
		}
	}

	ctx := c.Request().Context()
	for _, file := range files {
		key := services.GenerateCaseAttachmentKey(lawyerID, cs.ID, file.Filename)
		result, err := services.Storage.Upload(ctx, file, key)
		if err != nil {
			return fmt.Errorf("failed to store %q: %w", file.Filename, err)
		}

		attachment := &models.CaseAttachment{
			CaseID:     cs.ID,
			Name:       file.Filename,
			URL:        result.URL,
			StorageKey: result.Key,
			Kind:       models.AttachmentKindForExt(strings.ToLower(filepath.Ext(file.Filename))),
		}
		if err := db.DB.Create(attachment).Error; err != nil {
			return fmt.Errorf("failed to record attachment %q: %w", file.Filename, err)
		}
	}

	return nil
}

// AddCaseAttachmentsHandler uploads additional files to an existing case
func AddCaseAttachmentsHandler(c echo.Context) error {
	lawyer := middleware.GetCurrentLawyer(c)
	id := c.Param("id")
	if !isValidID(id) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid case ID"})
	}

	var cs models.Case
	if err := middleware.GetLawyerScopedQuery(c, db.DB).First(&cs, "id = ?", id).Error; err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Case not found"})
	}

	form, err := c.MultipartForm()
	if err != nil || form == nil || len(form.File["attachments"]) == 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "At least one attachment file is required"})
	}

	if err := uploadCaseAttachments(c, lawyer.ID, &cs, form.File["attachments"]); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	var attachments []models.CaseAttachment
	db.DB.Where("case_id = ?", cs.ID).Order("created_at ASC").Find(&attachments)

	return c.JSON(http.StatusCreated, attachments)
}

// ListCaseAttachmentsHandler returns the case's attachments
func ListCaseAttachmentsHandler(c echo.Context) error {
	id := c.Param("id")
	if !isValidID(id) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid case ID"})
	}

	var cs models.Case
	if err := middleware.GetLawyerScopedQuery(c, db.DB).First(&cs, "id = ?", id).Error; err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Case not found"})
	}

	var attachments []models.CaseAttachment
	if err := db.DB.Where("case_id = ?", cs.ID).Order("created_at ASC").Find(&attachments).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to list attachments"})
	}

	return c.JSON(http.StatusOK, attachments)
}

// DeleteCaseAttachmentHandler removes one attachment. The identifier may be
// the attachment ID or any unique substring of its URL, which lets callers
// pass the stored filename.
func DeleteCaseAttachmentHandler(c echo.Context) error {
	id := c.Param("id")
	identifier := c.Param("attachmentId")
	if !isValidID(id) || identifier == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid identifiers"})
	}

	var cs models.Case
	if err := middleware.GetLawyerScopedQuery(c, db.DB).First(&cs, "id = ?", id).Error; err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Case not found"})
	}

	var attachment models.CaseAttachment
	err := db.DB.Where("case_id = ? AND (id = ? OR url LIKE ?)", cs.ID, identifier, "%"+identifier+"%").
		First(&attachment).Error
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Attachment not found"})
	}

	if attachment.StorageKey != "" {
		if err := services.Storage.Delete(c.Request().Context(), attachment.StorageKey); err != nil {
			c.Logger().Warnf("failed to delete attachment object %s: %v", attachment.StorageKey, err)
		}
	}

	if err := db.DB.Delete(&attachment).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to delete attachment"})
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Attachment deleted"})
}

// DownloadCaseAttachmentHandler returns a time-limited URL for the stored
// object. The stored key and kind make the lookup direct, no probing.
func DownloadCaseAttachmentHandler(c echo.Context) error {
	id := c.Param("id")
	attachmentID := c.Param("attachmentId")
	if !isValidID(id) || !isValidID(attachmentID) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid identifiers"})
	}

	var cs models.Case
	if err := middleware.GetLawyerScopedQuery(c, db.DB).First(&cs, "id = ?", id).Error; err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Case not found"})
	}

	var attachment models.CaseAttachment
	if err := db.DB.Where("case_id = ? AND id = ?", cs.ID, attachmentID).First(&attachment).Error; err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Attachment not found"})
	}

	url, err := services.Storage.GetSignedURL(c.Request().Context(), attachment.StorageKey, signedURLTTL)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to sign download URL"})
	}

	return c.JSON(http.StatusOK, map[string]string{
		"url":  url,
		"name": attachment.Name,
		"kind": attachment.Kind,
	})
}
