package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ukydev/fleet-manager/internal/models"
)

// RecordTransaction handles a wallet credit or debit
func (h *Handler) RecordTransaction(c *gin.Context) {
	var tx models.WalletTransaction
	if err := c.ShouldBindJSON(&tx); err != nil {
		badRequest(c, "Invalid JSON")
		return
	}
	id, err := h.svc.RecordTransaction(c.Request.Context(), tx)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id})
}

// ListTransactions returns a vehicle's wallet history, newest first
func (h *Handler) ListTransactions(c *gin.Context) {
	txs, err := h.svc.ListTransactions(c.Request.Context(), c.Query("vehicle_id"), c.Query("user_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, txs)
}

// WalletBalance returns the computed balance for a vehicle
func (h *Handler) WalletBalance(c *gin.Context) {
	balance, err := h.svc.WalletBalance(c.Request.Context(), c.Query("vehicle_id"), c.Query("user_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, balance)
}
