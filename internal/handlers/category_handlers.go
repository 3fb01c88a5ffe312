package handlers

import (
	"net/http"

	"borsibaar/internal/common"
	"borsibaar/internal/logging"
	"borsibaar/internal/services"

	"github.com/labstack/echo/v4"
)

// CategoryHandlers handles category-related HTTP requests
type CategoryHandlers struct {
	categories services.CategoryService
	log        logging.Logger
}

// NewCategoryHandlers creates a new category handlers instance
func NewCategoryHandlers(categories services.CategoryService, log logging.Logger) *CategoryHandlers {
	return &CategoryHandlers{categories: categories, log: log}
}

// ListCategories returns the categories of the caller's organization
func (h *CategoryHandlers) ListCategories(c echo.Context) error {
	user, ok := common.GetPrincipal(c)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	categories, err := h.categories.List(c.Request().Context(), user)
	if err != nil {
		return respondError(c, h.log, "Category", err)
	}
	return c.JSON(http.StatusOK, categories)
}

// GetCategory returns one category of the caller's organization
func (h *CategoryHandlers) GetCategory(c echo.Context) error {
	user, ok := common.GetPrincipal(c)
	if !ok {
		return common.SendUnauthorizedError(c)
	}
	id, err := common.ParseID(c.Param("id"), "id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	category, err := h.categories.Get(c.Request().Context(), user, id)
	if err != nil {
		return respondError(c, h.log, "Category", err)
	}
	return c.JSON(http.StatusOK, category)
}

// CreateCategory handles creating a new category
func (h *CategoryHandlers) CreateCategory(c echo.Context) error {
	user, ok := common.GetPrincipal(c)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	var req services.CreateCategoryRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	category, err := h.categories.Create(c.Request().Context(), user, &req)
	if err != nil {
		return respondError(c, h.log, "Category", err)
	}
	return c.JSON(http.StatusCreated, category)
}
