package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/dafibh/cashflow/cashflow-backend/internal/domain"
	"github.com/dafibh/cashflow/cashflow-backend/internal/service"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// CategoryHandler handles category-related HTTP requests
type CategoryHandler struct {
	categoryService *service.CategoryService
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(categoryService *service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// CreateCategoryRequest represents the create category request body
type CreateCategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Icon        string `json:"icon,omitempty"`
	Color       string `json:"color,omitempty"`
}

// UpdateCategoryRequest represents a partial category update
type UpdateCategoryRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Icon        *string `json:"icon,omitempty"`
	Color       *string `json:"color,omitempty"`
}

// CategoryResponse is a category plus a loadable icon URL
type CategoryResponse struct {
	*domain.Category
	IconURL string `json:"iconUrl,omitempty"`
}

// GetCategories godoc
// @Summary List categories
// @Tags categories
// @Produce json
// @Param id query string false "Category ID (UUID)"
// @Param name query string false "Exact name"
// @Param description query string false "Exact description"
// @Param color query string false "Exact color"
// @Success 200 {array} CategoryResponse
// @Failure 400 {object} ProblemDetails
// @Failure 500 {object} ProblemDetails
// @Router /categories [get]
func (h *CategoryHandler) GetCategories(c echo.Context) error {
	filters, errs := parseFilters(c.QueryParams(), categoryParams)
	if len(errs) > 0 {
		return NewValidationError(c, "Invalid filters", errs)
	}
	if filters == nil {
		filters = map[string]any{}
	}

	categories, err := h.categoryService.List(c.Request().Context(), filters)
	if err != nil {
		return respondError(c, err)
	}

	response := make([]CategoryResponse, len(categories))
	for i, category := range categories {
		response[i] = h.toResponse(c, category)
	}
	return c.JSON(http.StatusOK, response)
}

// GetCategory godoc
// @Summary Get a category
// @Tags categories
// @Produce json
// @Param id path string true "Category ID"
// @Success 200 {object} CategoryResponse
// @Failure 400 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Router /categories/{id} [get]
func (h *CategoryHandler) GetCategory(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return invalidID(c)
	}

	category, err := h.categoryService.Get(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, h.toResponse(c, category))
}

// CreateCategory godoc
// @Summary Create a category
// @Tags categories
// @Accept json
// @Produce json
// @Param request body CreateCategoryRequest true "Category creation request"
// @Success 201 {object} CategoryResponse
// @Failure 400 {object} ProblemDetails
// @Router /categories [post]
func (h *CategoryHandler) CreateCategory(c echo.Context) error {
	var req CreateCategoryRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	category, err := h.categoryService.Create(c.Request().Context(), service.CreateCategoryInput{
		Name:        req.Name,
		Description: req.Description,
		Icon:        req.Icon,
		Color:       req.Color,
	})
	if err != nil {
		return respondError(c, err)
	}

	log.Info().Str("category_id", category.ID.String()).Str("name", category.Name).Msg("Category created")
	return c.JSON(http.StatusCreated, h.toResponse(c, category))
}

// UpdateCategory godoc
// @Summary Update a category
// @Tags categories
// @Accept json
// @Produce json
// @Param id path string true "Category ID"
// @Param request body UpdateCategoryRequest true "Fields to change"
// @Success 200 {object} CategoryResponse
// @Failure 400 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Router /categories/{id} [put]
func (h *CategoryHandler) UpdateCategory(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return invalidID(c)
	}

	var req UpdateCategoryRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	category, err := h.categoryService.UpdateByID(c.Request().Context(), id, domain.CategoryPatch{
		Name:        req.Name,
		Description: req.Description,
		Icon:        req.Icon,
		Color:       req.Color,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, h.toResponse(c, category))
}

// DeleteCategory godoc
// @Summary Delete a category
// @Description Transactions keep their reference to a deleted category
// @Tags categories
// @Param id path string true "Category ID"
// @Success 204 "No Content"
// @Failure 400 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Router /categories/{id} [delete]
func (h *CategoryHandler) DeleteCategory(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return invalidID(c)
	}

	if err := h.categoryService.DeleteByID(c.Request().Context(), id); err != nil {
		return respondError(c, err)
	}

	log.Info().Str("category_id", id.String()).Msg("Category deleted")
	return c.NoContent(http.StatusNoContent)
}

// UploadIcon godoc
// @Summary Upload a category icon
// @Description Accepts a JPEG or PNG of at most 2MB; it is stored as a 128x128 PNG
// @Tags categories
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Category ID"
// @Param file formData file true "Icon image"
// @Success 200 {object} CategoryResponse
// @Failure 400 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Failure 503 {object} ProblemDetails
// @Router /categories/{id}/icon [put]
func (h *CategoryHandler) UploadIcon(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return invalidID(c)
	}

	file, err := c.FormFile("file")
	if err != nil {
		return NewValidationError(c, "No file provided", []ValidationError{
			{Field: "file", Message: "File is required"},
		})
	}

	src, err := file.Open()
	if err != nil {
		log.Error().Err(err).Msg("Failed to open uploaded file")
		return NewInternalError(c, "Failed to process file")
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, service.MaxIconSize+1))
	if err != nil {
		log.Error().Err(err).Msg("Failed to read uploaded file")
		return NewInternalError(c, "Failed to read file")
	}

	category, err := h.categoryService.SetIcon(c.Request().Context(), id, data, file.Filename)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrIconStorageNotConfigured):
			return NewServiceUnavailableError(c, "Icon uploads are disabled (storage not configured)")
		case errors.Is(err, service.ErrIconTooLarge),
			errors.Is(err, service.ErrInvalidIconFormat),
			errors.Is(err, service.ErrIconTooSmall),
			errors.Is(err, service.ErrInvalidIconData):
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "file", Message: err.Error()},
			})
		default:
			return respondError(c, err)
		}
	}

	log.Info().Str("category_id", id.String()).Str("icon", category.Icon).Msg("Category icon uploaded")
	return c.JSON(http.StatusOK, h.toResponse(c, category))
}

func (h *CategoryHandler) toResponse(c echo.Context, category *domain.Category) CategoryResponse {
	url, err := h.categoryService.IconURL(c.Request().Context(), category)
	if err != nil {
		log.Warn().Err(err).Str("category_id", category.ID.String()).Msg("Failed to sign icon URL")
		url = ""
	}
	return CategoryResponse{Category: category, IconURL: url}
}
