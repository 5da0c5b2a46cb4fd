package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"

	"github.com/gin-gonic/gin"

	apierrors "github.com/kagretirement/registry/api/internal/errors"
	"github.com/kagretirement/registry/api/internal/services"
)

// maxBodyBytes bounds request bodies read by bindJSON.
const maxBodyBytes = 1 << 20

// bindJSON binds the request body into dst. An empty body binds as {}.
// It writes the error response itself and returns false when the body is
// unusable.
func bindJSON(c *gin.Context, dst interface{}) bool {
	if c.Request.Body == nil {
		return true
	}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes)

	err := c.ShouldBindJSON(dst)
	if err == nil || errors.Is(err, io.EOF) {
		return true
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		apierrors.ValidationError(c, map[string]string{
			typeErr.Field: "must be " + describeType(typeErr.Type),
		})
		return false
	}
	apierrors.BadRequest(c, "request body must be a JSON object")
	return false
}

func describeType(t reflect.Type) string {
	if t == nil {
		return "a valid value"
	}
	switch t.Kind() {
	case reflect.String:
		return "a string"
	case reflect.Int, reflect.Int32, reflect.Int64:
		return "an integer"
	default:
		return "a valid " + t.Kind().String()
	}
}

// respondError maps a service error onto the matching error payload.
// Anything unclassified becomes a 500 carrying message.
func respondError(c *gin.Context, err error, message string) {
	var validationErr *services.ValidationError
	var conflictErr *services.ConflictError

	switch {
	case errors.As(err, &validationErr):
		apierrors.ValidationError(c, validationErr.Fields)
	case errors.Is(err, services.ErrNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.As(err, &conflictErr):
		apierrors.Conflict(c, conflictErr.Message)
	default:
		apierrors.InternalServerError(c, message, err)
	}
}
