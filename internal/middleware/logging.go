package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yukikurage/task-assignment-api/internal/logger"
)

// Logging logs every HTTP request with its status and duration.
type Logging struct {
	logger *logger.Logger
}

// NewLogging creates a new Logging middleware.
func NewLogging(logger *logger.Logger) *Logging {
	return &Logging{logger: logger}
}

// Handle is the gin handler.
func (l *Logging) Handle(c *gin.Context) {
	start := time.Now()
	method := c.Request.Method
	path := c.Request.URL.Path

	l.logger.Debug("HTTP request started",
		"method", method,
		"path", path,
		"start_time", start.Format(time.RFC3339))

	c.Next()

	duration := time.Since(start)
	status := c.Writer.Status()

	l.logger.Info("HTTP request completed",
		"method", method,
		"path", path,
		"duration_ms", duration.Milliseconds(),
		"status", status)

	if status >= http.StatusInternalServerError {
		l.logger.Error("HTTP request failed",
			"method", method,
			"path", path,
			"errors", c.Errors.String(),
			"status", status)
	}
}
