package apierrors

import (
	"errors"
	"net/http"

	"campaign-server/internal/authz"
	"campaign-server/internal/clients/mail"
	"campaign-server/internal/store"

	"github.com/gin-gonic/gin"
)

// RespondWithError maps the shared error taxonomy to a response. Handlers
// map their own processor sentinels first and fall back to this.
//
//	if err != nil {
//	    apierrors.RespondWithError(c, err)
//	    return
//	}
func RespondWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	var denied *authz.PermissionDeniedError
	if errors.As(err, &denied) {
		respondWithDetails(c, http.StatusForbidden, CodePermissionDenied,
			"You do not have permission to perform this action", denied.Details())
		return
	}

	var cfgErr *mail.ConfigurationError
	if errors.As(err, &cfgErr) {
		logger.Error(c.Request.Context(), "configuration error", err)
		respondWithDetails(c, http.StatusServiceUnavailable, CodeConfigurationError,
			"The service is misconfigured: "+cfgErr.Setting+" "+cfgErr.Reason,
			map[string]string{"setting": cfgErr.Setting})
		return
	}

	switch {
	case errors.Is(err, store.ErrLastAdmin):
		Conflict(c, CodeLastAdmin, "A company must keep at least one admin")
	case errors.Is(err, store.ErrConflict):
		code, message := conflictCode(store.ConflictConstraint(err))
		Conflict(c, code, message)
	case errors.Is(err, store.ErrNotFound):
		NotFound(c, "Resource not found")
	default:
		InternalError(c, err)
	}
}

func conflictCode(constraint string) (string, string) {
	switch constraint {
	case store.ConstraintCompanyName:
		return CodeCompanyNameExists, "A company with this name already exists"
	case store.ConstraintCompanyAccount:
		return CodeAccountIDExists, "This account id is already registered for the company"
	case store.ConstraintIdentityEmail, store.ConstraintUserEmail:
		return CodeEmailExists, "Email already exists"
	default:
		return CodeConflict, "Resource already exists"
	}
}
