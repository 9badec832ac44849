package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/finbuckets/envelope_budget_app/internal/core/ports/services"
	"github.com/finbuckets/envelope_budget_app/internal/dto"
	"github.com/finbuckets/envelope_budget_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// allocationHandler handles HTTP requests related to category allocations.
type allocationHandler struct {
	allocationService portssvc.AllocationSvcFacade
	splitService      portssvc.SplitSvcFacade
}

// newAllocationHandler creates a new allocationHandler.
func newAllocationHandler(als portssvc.AllocationSvcFacade, ss portssvc.SplitSvcFacade) *allocationHandler {
	return &allocationHandler{
		allocationService: als,
		splitService:      ss,
	}
}

// registerAllocationRoutes registers routes related to allocations.
func registerAllocationRoutes(rg *gin.RouterGroup, allocationService portssvc.AllocationSvcFacade, splitService portssvc.SplitSvcFacade) {
	h := newAllocationHandler(allocationService, splitService)

	allocations := rg.Group("/allocations")
	{
		allocations.POST("", h.createAllocation)
		allocations.GET("", h.listAllocationsForMonth)
		allocations.GET("/:allocationID", h.getAllocation)
		allocations.PUT("/:allocationID", h.updateAllocation)
		allocations.DELETE("/:allocationID", h.deleteAllocation)
		allocations.GET("/:allocationID/splits", h.listSplits)
	}
}

// createAllocation godoc
// @Summary Budget a category for a month
// @Description Creates the active allocation for a category and budget month. A month may carry only one active allocation per category.
// @Tags allocations
// @Accept json
// @Produce json
// @Param allocation body dto.CreateAllocationRequest true "Allocation details"
// @Success 201 {object} dto.AllocationResponse
// @Failure 400 {object} ErrorResponse "Invalid input or inactive category"
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Active allocation already exists for the key"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /allocations [post]
func (h *allocationHandler) createAllocation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.CreateAllocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	allocation, err := h.allocationService.CreateAllocation(c.Request.Context(), userID, req)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create allocation")
		return
	}

	logger.Info("Allocation created",
		slog.String("allocation_id", allocation.AllocationID),
		slog.String("category_id", allocation.CategoryID),
		slog.Int("month", allocation.Month),
		slog.Int("year", allocation.Year))
	c.JSON(http.StatusCreated, dto.ToAllocationResponse(allocation))
}

// listAllocationsForMonth godoc
// @Summary List active allocations for a month
// @Description Retrieves all of the logged-in user's active allocations in a budget month
// @Tags allocations
// @Produce json
// @Param month query int true "Budget month (1-12)"
// @Param year query int true "Budget year"
// @Success 200 {object} dto.ListAllocationsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /allocations [get]
func (h *allocationHandler) listAllocationsForMonth(c *gin.Context) {
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

	allocations, err := h.allocationService.ListAllocationsForMonth(c.Request.Context(), userID, params.Month, params.Year)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list allocations")
		return
	}

	c.JSON(http.StatusOK, dto.ToListAllocationResponse(allocations))
}

// getAllocation godoc
// @Summary Get an allocation by ID
// @Description Retrieves a single allocation owned by the logged-in user
// @Tags allocations
// @Produce json
// @Param allocationID path string true "Allocation ID"
// @Success 200 {object} dto.AllocationResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /allocations/{allocationID} [get]
func (h *allocationHandler) getAllocation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	allocation, err := h.allocationService.GetAllocationByID(c.Request.Context(), userID, c.Param("allocationID"))
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve allocation")
		return
	}

	c.JSON(http.StatusOK, dto.ToAllocationResponse(allocation))
}

// updateAllocation godoc
// @Summary Revise an allocation
// @Description Updates an allocation's budgeted amount in place, recording the previous amount and editor metadata
// @Tags allocations
// @Accept json
// @Produce json
// @Param allocationID path string true "Allocation ID"
// @Param allocation body dto.UpdateAllocationRequest true "Fields to update"
// @Success 200 {object} dto.AllocationResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Reactivation collides with another active allocation"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /allocations/{allocationID} [put]
func (h *allocationHandler) updateAllocation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.UpdateAllocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	allocation, err := h.allocationService.UpdateAllocation(c.Request.Context(), userID, c.Param("allocationID"), req)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to update allocation")
		return
	}

	c.JSON(http.StatusOK, dto.ToAllocationResponse(allocation))
}

// deleteAllocation godoc
// @Summary Deactivate an allocation
// @Description Retires an allocation, freeing its (category, month, year) key for a replacement. Idempotent.
// @Tags allocations
// @Produce json
// @Param allocationID path string true "Allocation ID"
// @Success 204 "No Content"
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /allocations/{allocationID} [delete]
func (h *allocationHandler) deleteAllocation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.allocationService.DeactivateAllocation(c.Request.Context(), userID, c.Param("allocationID")); err != nil {
		respondServiceError(c, logger, err, "Failed to deactivate allocation")
		return
	}

	c.Status(http.StatusNoContent)
}

// listSplits godoc
// @Summary List spending against an allocation
// @Description Retrieves the splits recorded against an allocation, newest transaction first, with token-based pagination
// @Tags splits
// @Produce json
// @Param allocationID path string true "Allocation ID"
// @Param limit query int false "Page size" default(20)
// @Param nextToken query string false "Pagination token from the previous page"
// @Success 200 {object} dto.ListSplitsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /allocations/{allocationID}/splits [get]
func (h *allocationHandler) listSplits(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	splits, nextToken, err := h.splitService.ListSplitsByAllocation(c.Request.Context(), userID, c.Param("allocationID"), params.Limit, params.NextToken)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list splits")
		return
	}

	c.JSON(http.StatusOK, dto.ListSplitsResponse{Splits: dto.ToSplitResponses(splits), NextToken: nextToken})
}
