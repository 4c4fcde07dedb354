package handlers

import (
	"net/http"
	"time"

	"cabinet_avocat_go/config"
	"cabinet_avocat_go/db"
	"cabinet_avocat_go/models"
	"cabinet_avocat_go/services"

	"github.com/labstack/echo/v4"
	"github.com/microcosm-cc/bluemonday"
)

// messagePolicy strips everything but basic formatting from untrusted
// contact-form input and admin reply HTML
var messagePolicy = bluemonday.UGCPolicy()

type messageRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Body  string `json:"body"`
}

// CreateMessageHandler accepts a public contact-form submission
func CreateMessageHandler(c echo.Context) error {
	req := new(messageRequest)
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}

	if req.Name == "" || req.Email == "" || req.Body == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Name, email and message body are required"})
	}

	message := &models.Message{
		Name:  req.Name,
		Email: req.Email,
		Body:  messagePolicy.Sanitize(req.Body),
	}

	if err := db.DB.Create(message).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to record message"})
	}

	return c.JSON(http.StatusCreated, message)
}

// ListMessagesHandler returns contact messages, newest first (admin only)
func ListMessagesHandler(c echo.Context) error {
	page, limit := parsePagination(c)

	query := db.DB.Model(&models.Message{})
	query = applyKeywordFilter(query, c.QueryParam("search"), "name", "email")

	var messages []models.Message
	resp, err := paginate(query.Order("created_at DESC"), page, limit, &messages)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to list messages"})
	}

	return c.JSON(http.StatusOK, resp)
}

type replyMessageRequest struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// ReplyMessageHandler emails a reply to the message's sender. The reply body
// is sanitized and not persisted; only the reply timestamp is recorded.
func ReplyMessageHandler(c echo.Context) error {
	id := c.Param("id")
	if !isValidID(id) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid message ID"})
	}

	var message models.Message
	if err := db.DB.First(&message, "id = ?", id).Error; err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Message not found"})
	}

	req := new(replyMessageRequest)
	if err := c.Bind(req); err != nil || req.Body == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "A reply body is required"})
	}

	cfg, _ := c.Get("config").(*config.Config)
	sanitized := messagePolicy.Sanitize(req.Body)
	services.SendEmailAsync(cfg, services.BuildMessageReplyEmail(message.Email, message.Name, req.Subject, sanitized))

	now := time.Now()
	message.RepliedAt = &now
	if err := db.DB.Save(&message).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to record reply"})
	}

	services.RecordActivity(db.DB, "message_replied", "Replied to message from "+message.Email)

	return c.JSON(http.StatusOK, message)
}

// DeleteMessageHandler removes a contact message (admin only)
func DeleteMessageHandler(c echo.Context) error {
	id := c.Param("id")
	if !isValidID(id) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid message ID"})
	}

	var message models.Message
	if err := db.DB.First(&message, "id = ?", id).Error; err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Message not found"})
	}

	if err := db.DB.Delete(&message).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to delete message"})
	}

	services.RecordActivity(db.DB, "message_deleted", "Deleted message from "+message.Email)

	return c.JSON(http.StatusOK, map[string]string{"message": "Message deleted"})
}
