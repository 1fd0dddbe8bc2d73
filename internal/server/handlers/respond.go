package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/dudhwala/backend/internal/domain/apierr"
)

// respond writes the success envelope shared by all endpoints.
func respond(c *gin.Context, status int, message string, data any) {
	body := gin.H{"success": true, "message": message}
	if data != nil {
		body["data"] = data
	}
	c.JSON(status, body)
}

// respondError maps business errors to their HTTP status and hides everything
// else behind a 500.
func respondError(c *gin.Context, logger *zap.Logger, err error) {
	if e, ok := apierr.As(err); ok {
		c.JSON(e.Status(), gin.H{"success": false, "error": e.Message})
		return
	}

	logger.Error("unexpected error",
		zap.String("path", c.Request.URL.Path),
		zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "internal server error"})
}
