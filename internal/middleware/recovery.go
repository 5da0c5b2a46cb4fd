package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"github.com/kagretirement/registry/api/internal/logger"
)

// Recovery creates a middleware that recovers from panics and logs them.
// The client receives the internal_error payload instead of a dropped
// connection.
func Recovery(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			recovered := recover()
			if recovered == nil {
				return
			}

			requestID := GetRequestID(c)
			requestLogger := GetLogger(c)
			if requestLogger == nil {
				requestLogger = log
			}

			requestLogger.Error(
				"Panic recovered",
				fmt.Errorf("panic: %v", recovered),
				map[string]interface{}{
					"request_id": requestID,
					"method":     c.Request.Method,
					"path":       c.Request.URL.Path,
					"stack":      string(debug.Stack()),
				},
			)

			body := gin.H{
				"error":   "internal_error",
				"message": "An unexpected error occurred",
			}
			if requestID != "" {
				body["requestId"] = requestID
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, body)
		}()

		c.Next()
	}
}
