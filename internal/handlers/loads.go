package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ukydev/fleet-manager/internal/models"
	"github.com/ukydev/fleet-manager/internal/service"
)

// CreateLoad handles load creation
func (h *Handler) CreateLoad(c *gin.Context) {
	var load models.Load
	if err := c.ShouldBindJSON(&load); err != nil {
		badRequest(c, "Invalid JSON")
		return
	}
	id, err := h.svc.CreateLoad(c.Request.Context(), load)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id})
}

// ListLoads accepts an optional ?status= filter.
func (h *Handler) ListLoads(c *gin.Context) {
	loads, err := h.svc.ListLoads(c.Request.Context(), c.Query("status"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, loads)
}

// GetLoad returns a single load
func (h *Handler) GetLoad(c *gin.Context) {
	load, err := h.svc.GetLoad(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, load)
}

// AcceptLoad binds ?vehicle_id= to the load.
func (h *Handler) AcceptLoad(c *gin.Context) {
	err := h.svc.AcceptLoad(c.Request.Context(), c.Param("id"), c.Query("vehicle_id"))
	if errors.Is(err, service.ErrNotFound) {
		notFound(c, "Load not found")
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
