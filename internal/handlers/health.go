package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Health pings the document store. It always answers 200 and reports failure in the body.
func (h *Handler) Health(c *gin.Context) {
	if err := h.svc.Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusOK, gin.H{"status": "error", "detail": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
