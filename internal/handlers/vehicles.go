package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ukydev/fleet-manager/internal/models"
)

// CreateVehicle handles vehicle registration
func (h *Handler) CreateVehicle(c *gin.Context) {
	var vehicle models.Vehicle
	if err := c.ShouldBindJSON(&vehicle); err != nil {
		badRequest(c, "Invalid JSON")
		return
	}
	id, err := h.svc.CreateVehicle(c.Request.Context(), vehicle)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id})
}

// ListVehicles accepts an optional ?type= filter.
func (h *Handler) ListVehicles(c *gin.Context) {
	vehicles, err := h.svc.ListVehicles(c.Request.Context(), c.Query("type"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, vehicles)
}

// GetVehicle returns a single vehicle
func (h *Handler) GetVehicle(c *gin.Context) {
	vehicle, err := h.svc.GetVehicle(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, vehicle)
}

// UpdateVehicle applies a partial update. Nothing modified is reported as 404.
func (h *Handler) UpdateVehicle(c *gin.Context) {
	var update models.VehicleUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		badRequest(c, "Invalid JSON")
		return
	}
	updated, err := h.svc.UpdateVehicle(c.Request.Context(), c.Param("id"), update)
	if err != nil {
		respondError(c, err)
		return
	}
	if !updated {
		notFound(c, "Vehicle not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// DeleteVehicle removes a vehicle
func (h *Handler) DeleteVehicle(c *gin.Context) {
	deleted, err := h.svc.DeleteVehicle(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	if !deleted {
		notFound(c, "Vehicle not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
