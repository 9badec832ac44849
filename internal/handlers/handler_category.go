package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/finbuckets/envelope_budget_app/internal/core/ports/services"
	"github.com/finbuckets/envelope_budget_app/internal/dto"
	"github.com/finbuckets/envelope_budget_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// categoryHandler handles HTTP requests related to budget categories.
type categoryHandler struct {
	categoryService   portssvc.CategorySvcFacade
	allocationService portssvc.AllocationSvcFacade
}

// newCategoryHandler creates a new categoryHandler.
func newCategoryHandler(cs portssvc.CategorySvcFacade, als portssvc.AllocationSvcFacade) *categoryHandler {
	return &categoryHandler{
		categoryService:   cs,
		allocationService: als,
	}
}

// registerCategoryRoutes registers routes related to categories.
func registerCategoryRoutes(rg *gin.RouterGroup, categoryService portssvc.CategorySvcFacade, allocationService portssvc.AllocationSvcFacade) {
	h := newCategoryHandler(categoryService, allocationService)

	categories := rg.Group("/categories")
	{
		categories.POST("", h.createCategory)
		categories.GET("", h.listCategories)
		categories.GET("/:categoryID", h.getCategory)
		categories.PUT("/:categoryID", h.updateCategory)
		categories.DELETE("/:categoryID", h.deleteCategory)
		categories.GET("/:categoryID/allocations", h.listAllocations)
		categories.GET("/:categoryID/allocations/active", h.getActiveAllocation)
	}
}

// createCategory godoc
// @Summary Create a new category
// @Description Creates a budget category (envelope) for the logged-in user
// @Tags categories
// @Accept json
// @Produce json
// @Param category body dto.CreateCategoryRequest true "Category details"
// @Success 201 {object} dto.CategoryResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /categories [post]
func (h *categoryHandler) createCategory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	category, err := h.categoryService.CreateCategory(c.Request.Context(), userID, req)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create category")
		return
	}

	logger.Info("Category created", slog.String("category_id", category.CategoryID))
	c.JSON(http.StatusCreated, dto.ToCategoryResponse(category))
}

// getCategory godoc
// @Summary Get a category by ID
// @Description Retrieves one of the logged-in user's categories
// @Tags categories
// @Produce json
// @Param categoryID path string true "Category ID"
// @Success 200 {object} dto.CategoryResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /categories/{categoryID} [get]
func (h *categoryHandler) getCategory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	category, err := h.categoryService.GetCategoryByID(c.Request.Context(), userID, c.Param("categoryID"))
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve category")
		return
	}

	c.JSON(http.StatusOK, dto.ToCategoryResponse(category))
}

// listCategories godoc
// @Summary List categories
// @Description Retrieves the logged-in user's categories, optionally including inactive ones
// @Tags categories
// @Produce json
// @Param includeInactive query bool false "Include deactivated categories" default(false)
// @Success 200 {object} dto.ListCategoriesResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /categories [get]
func (h *categoryHandler) listCategories(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var params dto.ListCategoriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	categories, err := h.categoryService.ListCategories(c.Request.Context(), userID, params.IncludeInactive)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list categories")
		return
	}

	c.JSON(http.StatusOK, dto.ToListCategoryResponse(categories))
}

// updateCategory godoc
// @Summary Update a category
// @Description Updates a category's name, color or active flag
// @Tags categories
// @Accept json
// @Produce json
// @Param categoryID path string true "Category ID"
// @Param category body dto.UpdateCategoryRequest true "Fields to update"
// @Success 200 {object} dto.CategoryResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /categories/{categoryID} [put]
func (h *categoryHandler) updateCategory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	category, err := h.categoryService.UpdateCategory(c.Request.Context(), userID, c.Param("categoryID"), req)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to update category")
		return
	}

	c.JSON(http.StatusOK, dto.ToCategoryResponse(category))
}

// deleteCategory godoc
// @Summary Deactivate a category
// @Description Marks a category as inactive. Its allocations and historical splits are untouched.
// @Tags categories
// @Produce json
// @Param categoryID path string true "Category ID"
// @Success 204 "No Content"
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /categories/{categoryID} [delete]
func (h *categoryHandler) deleteCategory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.categoryService.DeactivateCategory(c.Request.Context(), userID, c.Param("categoryID")); err != nil {
		respondServiceError(c, logger, err, "Failed to deactivate category")
		return
	}

	c.Status(http.StatusNoContent)
}

// listAllocations godoc
// @Summary List a category's allocation history
// @Description Retrieves every allocation revision for a category, newest period first
// @Tags allocations
// @Produce json
// @Param categoryID path string true "Category ID"
// @Success 200 {object} dto.ListAllocationsResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /categories/{categoryID}/allocations [get]
func (h *categoryHandler) listAllocations(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	allocations, err := h.allocationService.ListAllocationsByCategory(c.Request.Context(), userID, c.Param("categoryID"))
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list allocations")
		return
	}

	c.JSON(http.StatusOK, dto.ToListAllocationResponse(allocations))
}

// getActiveAllocation godoc
// @Summary Get the active allocation for a month
// @Description Resolves the single active allocation for a category and budget month
// @Tags allocations
// @Produce json
// @Param categoryID path string true "Category ID"
// @Param month query int true "Budget month (1-12)"
// @Param year query int true "Budget year"
// @Success 200 {object} dto.AllocationResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "No active allocation for the month"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /categories/{categoryID}/allocations/active [get]
func (h *categoryHandler) getActiveAllocation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var params dto.GetAllocationParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	allocation, err := h.allocationService.GetActiveAllocation(c.Request.Context(), userID, c.Param("categoryID"), params.Month, params.Year)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve allocation")
		return
	}

	c.JSON(http.StatusOK, dto.ToAllocationResponse(allocation))
}
