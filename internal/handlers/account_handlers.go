package handlers

import (
	"net/http"

	"borsibaar/internal/common"
	"borsibaar/internal/logging"
	"borsibaar/internal/services"

	"github.com/labstack/echo/v4"
)

// AccountHandlers serves the current user's account and membership changes.
type AccountHandlers struct {
	accounts services.AccountService
	log      logging.Logger
}

func NewAccountHandlers(accounts services.AccountService, log logging.Logger) *AccountHandlers {
	return &AccountHandlers{accounts: accounts, log: log}
}

// GetAccount handles GET /api/account
func (h *AccountHandlers) GetAccount(c echo.Context) error {
	user, ok := common.GetPrincipal(c)
	if !ok {
		return common.SendUnauthorizedError(c)
	}
	return c.JSON(http.StatusOK, h.accounts.GetCurrentAccount(c.Request().Context(), user))
}

// Onboard handles POST /api/account/onboarding
func (h *AccountHandlers) Onboard(c echo.Context) error {
	user, ok := common.GetPrincipal(c)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	var req services.OnboardingRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	if err := h.accounts.Onboard(c.Request().Context(), user, &req); err != nil {
		return respondError(c, h.log, "Organization", err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ChangeOrganization handles POST /api/account/organization
func (h *AccountHandlers) ChangeOrganization(c echo.Context) error {
	user, ok := common.GetPrincipal(c)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	var req services.ChangeOrganizationRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	if err := h.accounts.ChangeOrganization(c.Request().Context(), user, &req); err != nil {
		return respondError(c, h.log, "Organization", err)
	}
	return c.NoContent(http.StatusNoContent)
}
