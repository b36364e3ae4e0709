package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "EmSana server is running"})
}

// CheckConnection answers 503 when the store cannot be reached.
func (h *Handler) CheckConnection(c *gin.Context) {
	if err := h.records.Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"message": "Database connection failed", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "ok"})
}
