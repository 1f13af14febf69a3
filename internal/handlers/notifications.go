package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/ukydev/fleet-manager/internal/models"
)

// ListNotifications accepts ?user_id= and ?unread_only=true.
func (h *Handler) ListNotifications(c *gin.Context) {
	unreadOnly := false
	if raw := c.Query("unread_only"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "unread_only must be a boolean"})
			return
		}
		unreadOnly = parsed
	}

	notifications, err := h.svc.ListNotifications(c.Request.Context(), c.Query("user_id"), unreadOnly)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, notifications)
}

// CreateNotification handles notification creation
func (h *Handler) CreateNotification(c *gin.Context) {
	var n models.Notification
	if err := c.ShouldBindJSON(&n); err != nil {
		badRequest(c, "Invalid JSON")
		return
	}
	id, err := h.svc.CreateNotification(c.Request.Context(), n)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id})
}

// MarkNotificationRead marks a notification as read
func (h *Handler) MarkNotificationRead(c *gin.Context) {
	updated, err := h.svc.MarkNotificationRead(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	if !updated {
		notFound(c, "Notification not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
