package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

// internalError logs the real failure server-side and hands the caller a
// generic body, never the raw store error.
func internalError(c *gin.Context, log *slog.Logger, err error) {
	log.Error("request failed", "path", c.FullPath(), "method", c.Request.Method, "error", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}
