package handlers

import (
	"net/http"
	"strconv"

	"emsana-backend/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler serves the EmSana HTTP API.
type Handler struct {
	auth    *service.Auth
	records *service.Records
	logger  *zap.Logger
}

func New(auth *service.Auth, records *service.Records, logger *zap.Logger) *Handler {
	return &Handler{auth: auth, records: records, logger: logger}
}

// parseIDParam reads a numeric path parameter, answering 400 when it is malformed.
func parseIDParam(c *gin.Context, name, label string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid " + label + " ID format"})
		return 0, false
	}
	return uint(id), true
}

// internalError logs err and answers 500.
func (h *Handler) internalError(c *gin.Context, message string, err error) {
	h.logger.Error(message,
		zap.Error(err),
		zap.String("path", c.FullPath()),
		zap.String("request_id", c.GetString(RequestIDKey)))
	c.JSON(http.StatusInternalServerError, gin.H{"message": message, "details": err.Error()})
}

// RequestIDKey is the gin context key holding the request id.
const RequestIDKey = "request_id"
