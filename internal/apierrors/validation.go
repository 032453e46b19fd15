package apierrors

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterJSONFieldNames makes validation messages use json field names.
func RegisterJSONFieldNames() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
}

// ValidationError sends a 400 for a failed bind. Field errors are listed in
// details keyed by json field name.
func ValidationError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	ctx := c.Request.Context()

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		logger.InfoWithError(ctx, "request binding failed", err)
		respond(c, http.StatusBadRequest, CodeInvalidInput, "Invalid request format. Please check your JSON syntax.")
		return
	}

	logger.InfoWithError(ctx, "validation failed", err)
	messages := make([]string, 0, len(fieldErrs))
	details := make(map[string]string, len(fieldErrs))
	for _, fieldErr := range fieldErrs {
		msg := fieldMessage(fieldErr)
		messages = append(messages, msg)
		details[fieldErr.Field()] = msg
	}

	message := messages[0]
	if len(messages) > 1 {
		message = "Validation failed: " + strings.Join(messages, "; ")
	}
	respondWithDetails(c, http.StatusBadRequest, CodeInvalidInput, message, details)
}

// InvalidID sends a 400 response for a malformed path id
func InvalidID(c *gin.Context, name string) {
	respond(c, http.StatusBadRequest, CodeInvalidInput, fmt.Sprintf("%s must be a valid UUID", name))
}

func fieldMessage(fieldErr validator.FieldError) string {
	field, param := fieldErr.Field(), fieldErr.Param()

	switch fieldErr.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email address"
	case "uuid":
		return field + " must be a valid UUID"
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, param)
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", field, param)
	case "min":
		if fieldErr.Kind() == reflect.Slice {
			return fmt.Sprintf("%s must contain at least %s items", field, param)
		}
		return fmt.Sprintf("%s must be at least %s characters", field, param)
	case "max":
		if fieldErr.Kind() == reflect.Slice {
			return fmt.Sprintf("%s must contain at most %s items", field, param)
		}
		return fmt.Sprintf("%s must be at most %s characters", field, param)
	default:
		// dive failures report the element, e.g. audiences[2]
		return fmt.Sprintf("%s failed validation (%s)", field, fieldErr.Tag())
	}
}
