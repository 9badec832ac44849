package handlers

import (
	"net/http"

	portssvc "github.com/finbuckets/envelope_budget_app/internal/core/ports/services"
	"github.com/finbuckets/envelope_budget_app/internal/dto"
	"github.com/finbuckets/envelope_budget_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// splitHandler handles HTTP requests addressed to individual splits.
type splitHandler struct {
	splitService portssvc.SplitSvcFacade
}

// newSplitHandler creates a new splitHandler.
func newSplitHandler(ss portssvc.SplitSvcFacade) *splitHandler {
	return &splitHandler{splitService: ss}
}

// registerSplitRoutes registers routes related to standalone split access.
func registerSplitRoutes(rg *gin.RouterGroup, splitService portssvc.SplitSvcFacade) {
	h := newSplitHandler(splitService)

	splits := rg.Group("/splits")
	{
		splits.GET("", h.listSplitsByMonth)
		splits.GET("/:splitID", h.getSplit)
		splits.PUT("/:splitID", h.updateSplit)
		splits.DELETE("/:splitID", h.deleteSplit)
	}
}

// listSplitsByMonth godoc
// @Summary List splits for a month
// @Description Retrieves all of the logged-in user's splits whose parent transaction falls inside a calendar month
// @Tags splits
// @Produce json
// @Param month query int true "Budget month (1-12)"
// @Param year query int true "Budget year"
// @Success 200 {object} dto.ListSplitsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /splits [get]
func (h *splitHandler) listSplitsByMonth(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var params dto.SnapshotParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	splits, err := h.splitService.ListSplitsByMonth(c.Request.Context(), userID, params.Month, params.Year)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list splits")
		return
	}

	c.JSON(http.StatusOK, dto.ListSplitsResponse{Splits: dto.ToSplitResponses(splits)})
}

// getSplit godoc
// @Summary Get a split by ID
// @Description Retrieves one split owned by the logged-in user
// @Tags splits
// @Produce json
// @Param splitID path string true "Split ID"
// @Success 200 {object} dto.SplitResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /splits/{splitID} [get]
func (h *splitHandler) getSplit(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	split, err := h.splitService.GetSplitByID(c.Request.Context(), userID, c.Param("splitID"))
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve split")
		return
	}

	c.JSON(http.StatusOK, dto.ToSplitResponse(split))
}

// updateSplit godoc
// @Summary Update a split
// @Description Updates a split's amount, allocation, income flag or notes. A new allocation must be active for the transaction's month. Rejected when the parent transaction is reconciled.
// @Tags splits
// @Accept json
// @Produce json
// @Param splitID path string true "Split ID"
// @Param split body dto.UpdateSplitRequest true "Fields to update"
// @Success 200 {object} dto.SplitResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Parent transaction is reconciled"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /splits/{splitID} [put]
func (h *splitHandler) updateSplit(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.UpdateSplitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	split, err := h.splitService.UpdateSplit(c.Request.Context(), userID, c.Param("splitID"), req)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to update split")
		return
	}

	c.JSON(http.StatusOK, dto.ToSplitResponse(split))
}

// deleteSplit godoc
// @Summary Delete a split
// @Description Removes one split without touching its parent transaction. Rejected when the parent transaction is reconciled.
// @Tags splits
// @Produce json
// @Param splitID path string true "Split ID"
// @Success 204 "No Content"
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Parent transaction is reconciled"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /splits/{splitID} [delete]
func (h *splitHandler) deleteSplit(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.splitService.DeleteSplit(c.Request.Context(), userID, c.Param("splitID")); err != nil {
		respondServiceError(c, logger, err, "Failed to delete split")
		return
	}

	c.Status(http.StatusNoContent)
}
