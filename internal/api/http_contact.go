package api

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"inkwell/internal/entity"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// SubmitContactMessage accepts a submission from the public contact form.
func (h *HTTPHandler) SubmitContactMessage(c *gin.Context) {
	if h.repo == nil {
		ServiceUnavailable(c, "contact inbox not available")
		return
	}

	var req entity.ContactSubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c)
		return
	}

	name := strings.TrimSpace(req.Name)
	body := strings.TrimSpace(req.Body)
	if name == "" || body == "" {
		BadRequest(c, ErrCodeInvalidRequest, "name and body are required")
		return
	}

	msg := &entity.DbContactMessage{
		Name:    name,
		Email:   strings.TrimSpace(req.Email),
		Subject: strings.TrimSpace(req.Subject),
		Body:    body,
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.repo.CreateContactMessage(ctx, msg); err != nil {
		logrus.WithError(err).Error("failed to store contact message")
		InternalError(c, "failed to submit message")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": msg.ID})
}

// ListContactMessages serves the admin contact inbox.
func (h *HTTPHandler) ListContactMessages(c *gin.Context) {
	if h.repo == nil {
		ServiceUnavailable(c, "contact inbox not available")
		return
	}

	var query entity.ContactQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		BadRequest(c, ErrCodeInvalidRequest, "invalid query parameters")
		return
	}
	if query.Page <= 0 {
		query.Page = 1
	}
	if query.PageSize <= 0 {
		query.PageSize = 20
	}
	if query.PageSize > 100 {
		query.PageSize = 100
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	messages, meta, err := h.repo.ListContactMessages(ctx, &query)
	if err != nil {
		logrus.WithError(err).Error("failed to list contact messages")
		InternalError(c, "failed to load messages")
		return
	}

	c.JSON(http.StatusOK, entity.ContactListResponse{Messages: messages, Meta: meta})
}

// MarkContactMessageRead flags a message as read.
func (h *HTTPHandler) MarkContactMessageRead(c *gin.Context) {
	if h.repo == nil {
		ServiceUnavailable(c, "contact inbox not available")
		return
	}

	msgID, ok := pathID(c)
	if !ok {
		return
	}

	read := true
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.repo.UpdateContactMessage(ctx, msgID, entity.ContactUpdates{Read: &read}); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, ErrCodeMessageNotFound, "message not found")
			return
		}
		logrus.WithError(err).WithField("message_id", msgID).Error("failed to mark message read")
		InternalError(c, "failed to update message")
		return
	}
	c.JSON(http.StatusOK, gin.H{"read": true})
}

// DeleteContactMessage removes a message from the inbox.
func (h *HTTPHandler) DeleteContactMessage(c *gin.Context) {
	if h.repo == nil {
		ServiceUnavailable(c, "contact inbox not available")
		return
	}

	msgID, ok := pathID(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.repo.DeleteContactMessage(ctx, msgID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, ErrCodeMessageNotFound, "message not found")
			return
		}
		logrus.WithError(err).WithField("message_id", msgID).Error("failed to delete message")
		InternalError(c, "failed to delete message")
		return
	}
	c.Status(http.StatusNoContent)
}
