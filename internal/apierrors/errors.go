package apierrors

import (
	"fmt"
	"net/http"

	"campaign-server/internal/observability"

	"github.com/gin-gonic/gin"
)

var logger = observability.NewLogger()

// ErrorResponse is the JSON body of every error. Details carries the
// denied entity, operation and reason for 403s and per-field messages for
// validation failures.
type ErrorResponse struct {
	Error     string            `json:"error"`
	Code      string            `json:"code,omitempty"`
	Details   map[string]string `json:"details,omitempty"`
	RequestID string            `json:"request_id,omitempty"`
}

func respond(c *gin.Context, statusCode int, code, message string) {
	respondWithDetails(c, statusCode, code, message, nil)
}

func respondWithDetails(c *gin.Context, statusCode int, code, message string, details map[string]string) {
	fields := []observability.Field{
		{Key: "status_code", Value: statusCode},
		{Key: "error_code", Value: code},
	}
	if reason, ok := details["reason"]; ok {
		fields = append(fields, observability.Field{Key: "deny_reason", Value: reason})
	}
	ctx := c.Request.Context()
	logger.Info(observability.WithFields(ctx, fields...), message)

	resp := ErrorResponse{
		Error:   message,
		Code:    code,
		Details: details,
	}
	if requestID, ok := observability.FieldValue(ctx, "request_id"); ok {
		resp.RequestID = fmt.Sprint(requestID)
	}
	c.AbortWithStatusJSON(statusCode, resp)
}

// NotFound sends a 404 response
func NotFound(c *gin.Context, message string) {
	respond(c, http.StatusNotFound, CodeNotFound, message)
}

// BadRequest sends a 400 response
func BadRequest(c *gin.Context, code, message string) {
	respond(c, http.StatusBadRequest, code, message)
}

// Unauthorized sends a 401 response
func Unauthorized(c *gin.Context, message string) {
	respond(c, http.StatusUnauthorized, CodeUnauthorized, message)
}

// Forbidden sends a 403 response
func Forbidden(c *gin.Context, code, message string) {
	respond(c, http.StatusForbidden, code, message)
}

// Conflict sends a 409 response
func Conflict(c *gin.Context, code, message string) {
	respond(c, http.StatusConflict, code, message)
}

// InternalError sends a sanitized 500 response - never exposes internal details
func InternalError(c *gin.Context, internalErr error) {
	ctx := c.Request.Context()
	logger.Error(ctx, "internal error", internalErr)
	respond(c, http.StatusInternalServerError, CodeInternal, "An internal error occurred. Please try again later.")
}
