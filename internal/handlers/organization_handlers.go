package handlers

import (
	"net/http"

	"borsibaar/internal/common"
	"borsibaar/internal/logging"
	"borsibaar/internal/services"

	"github.com/labstack/echo/v4"
)

type OrganizationHandlers struct {
	orgs services.OrganizationService
	log  logging.Logger
}

func NewOrganizationHandlers(orgs services.OrganizationService, log logging.Logger) *OrganizationHandlers {
	return &OrganizationHandlers{orgs: orgs, log: log}
}

// ListOrganizations handles GET /api/organizations
func (h *OrganizationHandlers) ListOrganizations(c echo.Context) error {
	orgs, err := h.orgs.List(c.Request().Context())
	if err != nil {
		return respondError(c, h.log, "Organization", err)
	}
	return c.JSON(http.StatusOK, orgs)
}

// GetOrganization handles GET /api/organizations/:id
func (h *OrganizationHandlers) GetOrganization(c echo.Context) error {
	id, err := common.ParseID(c.Param("id"), "id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	org, err := h.orgs.GetByID(c.Request().Context(), id)
	if err != nil {
		return respondError(c, h.log, "Organization", err)
	}
	return c.JSON(http.StatusOK, org)
}

// CreateOrganization handles POST /api/organizations. Admin only.
func (h *OrganizationHandlers) CreateOrganization(c echo.Context) error {
	var req services.CreateOrganizationRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	org, err := h.orgs.Create(c.Request().Context(), &req)
	if err != nil {
		return respondError(c, h.log, "Organization", err)
	}
	return c.JSON(http.StatusCreated, org)
}
