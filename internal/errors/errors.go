package errors

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kagretirement/registry/api/internal/middleware"
)

// Error code constants for standardized error responses
const (
	ErrNotFound       = "not_found"
	ErrBadRequest     = "bad_request"
	ErrValidation     = "validation_error"
	ErrConflict       = "conflict"
	ErrInternalServer = "internal_error"
)

// ErrorResponse is the error body sent to clients. Error always holds one of
// the codes above; the other fields depend on the code.
type ErrorResponse struct {
	Error     string            `json:"error"`
	Message   string            `json:"message,omitempty"`
	Details   map[string]string `json:"details,omitempty"`
	RequestID string            `json:"requestId,omitempty"`
}

// NotFound returns a 404 Not Found error response.
// The message is logged but not sent.
func NotFound(c *gin.Context, message string) {
	requestID := middleware.GetRequestID(c)

	if log := middleware.GetLogger(c); log != nil {
		log.Warn("Resource not found", map[string]interface{}{
			"message":    message,
			"request_id": requestID,
			"path":       c.Request.URL.Path,
		})
	}

	c.JSON(http.StatusNotFound, ErrorResponse{
		Error:     ErrNotFound,
		RequestID: requestID,
	})
}

// BadRequest returns a 400 response for a body that could not be decoded.
func BadRequest(c *gin.Context, message string) {
	requestID := middleware.GetRequestID(c)

	if log := middleware.GetLogger(c); log != nil {
		log.Warn("Bad request", map[string]interface{}{
			"message":    message,
			"request_id": requestID,
			"path":       c.Request.URL.Path,
		})
	}

	c.JSON(http.StatusBadRequest, ErrorResponse{
		Error:     ErrBadRequest,
		Message:   message,
		RequestID: requestID,
	})
}

// ValidationError returns a 400 response listing each rejected field with
// its reason.
func ValidationError(c *gin.Context, details map[string]string) {
	requestID := middleware.GetRequestID(c)

	if log := middleware.GetLogger(c); log != nil {
		log.Warn("Validation error", map[string]interface{}{
			"request_id": requestID,
			"path":       c.Request.URL.Path,
			"fields":     details,
		})
	}

	c.JSON(http.StatusBadRequest, ErrorResponse{
		Error:     ErrValidation,
		Details:   details,
		RequestID: requestID,
	})
}

// Conflict returns a 409 response for writes that collide with a unique
// field.
func Conflict(c *gin.Context, message string) {
	requestID := middleware.GetRequestID(c)

	if log := middleware.GetLogger(c); log != nil {
		log.Warn("Conflict", map[string]interface{}{
			"message":    message,
			"request_id": requestID,
			"path":       c.Request.URL.Path,
		})
	}

	c.JSON(http.StatusConflict, ErrorResponse{
		Error:     ErrConflict,
		Message:   message,
		RequestID: requestID,
	})
}

// InternalServerError returns a 500 Internal Server Error response.
// It logs the error with full context and sends only message to the client.
func InternalServerError(c *gin.Context, message string, err error) {
	requestID := middleware.GetRequestID(c)

	if log := middleware.GetLogger(c); log != nil {
		log.Error("Internal server error", err, map[string]interface{}{
			"message":    message,
			"request_id": requestID,
			"path":       c.Request.URL.Path,
			"method":     c.Request.Method,
		})
	}
	if err != nil {
		_ = c.Error(err)
	}

	c.JSON(http.StatusInternalServerError, ErrorResponse{
		Error:     ErrInternalServer,
		Message:   message,
		RequestID: requestID,
	})
}
