package handlers

import (
	"errors"

	"borsibaar/internal/common"
	"borsibaar/internal/logging"
	"borsibaar/internal/services"

	"github.com/labstack/echo/v4"
)

// respondError maps service errors to the standard error body. resource
// names the entity in not-found messages.
func respondError(c echo.Context, log logging.Logger, resource string, err error) error {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		return common.SendValidationError(c, verr.Field, verr.Message)
	case errors.Is(err, services.ErrValidation):
		return common.SendClientError(c, err.Error())
	case errors.Is(err, services.ErrOrganizationNotFound):
		return common.SendNotFoundError(c, "Organization")
	case errors.Is(err, services.ErrNotFound):
		return common.SendNotFoundError(c, resource)
	case errors.Is(err, services.ErrOnboardingRequired):
		return common.SendForbiddenError(c, "ONBOARDING_REQUIRED", "Join an organization first")
	case errors.Is(err, services.ErrForbidden):
		return common.SendForbiddenError(c, "FORBIDDEN", "Insufficient permissions")
	case errors.Is(err, services.ErrCategoryExists):
		return common.SendConflictError(c, "Category with this name already exists")
	}

	log.Error(c.Request().Context(), "request failed", "path", c.Path(), "error", err)
	return common.SendServerError(c, "Internal server error")
}
