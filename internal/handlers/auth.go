package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"github.com/ukydev/fleet-manager/internal/auth"
	"github.com/ukydev/fleet-manager/internal/middleware"
	"github.com/ukydev/fleet-manager/internal/models"
	"github.com/ukydev/fleet-manager/internal/service"
)

// Login handles user login
func (h *Handler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid JSON")
		return
	}

	resp, err := h.svc.Login(c.Request.Context(), req)
	if err != nil {
		log.WithField("email", req.Email).Warn("Login failed")
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetProfile returns the current user's profile
func (h *Handler) GetProfile(c *gin.Context) {
	claims, ok := middleware.GetClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "User context not found"})
		return
	}

	user, err := h.svc.GetUser(c.Request.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			notFound(c, "User not found")
			return
		}
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// ChangePassword changes the current user's password
func (h *Handler) ChangePassword(c *gin.Context) {
	claims, ok := middleware.GetClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "User context not found"})
		return
	}

	var req models.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid JSON")
		return
	}

	err := h.svc.ChangePassword(c.Request.Context(), claims.UserID, req)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"message": "Password changed successfully"})
	case errors.Is(err, auth.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "Current password is incorrect"})
	case errors.Is(err, service.ErrNotFound):
		notFound(c, "User not found")
	default:
		respondError(c, err)
	}
}
