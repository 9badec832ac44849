package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/finbuckets/envelope_budget_app/internal/core/ports/services"
	"github.com/finbuckets/envelope_budget_app/internal/dto"
	"github.com/finbuckets/envelope_budget_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// budgetHandler handles HTTP requests related to monthly budget snapshots.
type budgetHandler struct {
	snapshotService portssvc.SnapshotSvcFacade
}

// newBudgetHandler creates a new budgetHandler.
func newBudgetHandler(ss portssvc.SnapshotSvcFacade) *budgetHandler {
	return &budgetHandler{snapshotService: ss}
}

// registerBudgetRoutes registers routes related to budget snapshots.
func registerBudgetRoutes(rg *gin.RouterGroup, snapshotService portssvc.SnapshotSvcFacade) {
	h := newBudgetHandler(snapshotService)

	budget := rg.Group("/budget")
	{
		budget.GET("/snapshot", h.getSnapshot)
		budget.GET("/snapshots", h.listSnapshots)
		budget.POST("/rebuild", h.rebuildSnapshot)
	}
}

// getSnapshot godoc
// @Summary Get a month's budget snapshot
// @Description Retrieves the persisted ready-to-assign figures for a budget month
// @Tags budget
// @Produce json
// @Param month query int true "Budget month (1-12)"
// @Param year query int true "Budget year"
// @Success 200 {object} dto.SnapshotResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "No snapshot computed for the month"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /budget/snapshot [get]
func (h *budgetHandler) getSnapshot(c *gin.Context) {
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

	snapshot, err := h.snapshotService.GetSnapshot(c.Request.Context(), userID, params.Month, params.Year)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve snapshot")
		return
	}

	c.JSON(http.StatusOK, dto.ToSnapshotResponse(snapshot))
}

// listSnapshots godoc
// @Summary List budget snapshots
// @Description Retrieves all of the logged-in user's snapshots in chronological order
// @Tags budget
// @Produce json
// @Success 200 {object} dto.ListSnapshotsResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /budget/snapshots [get]
func (h *budgetHandler) listSnapshots(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	snapshots, err := h.snapshotService.ListSnapshots(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list snapshots")
		return
	}

	c.JSON(http.StatusOK, dto.ToListSnapshotResponse(snapshots))
}

// rebuildSnapshot godoc
// @Summary Rebuild a month's snapshot
// @Description Recomputes the ready-to-assign figures for a budget month from the ledger and allocation store. With cascade set, every later month carrying data is recomputed in order so carry-ins stay consistent.
// @Tags budget
// @Accept json
// @Produce json
// @Param rebuild body dto.RebuildSnapshotRequest true "Month to rebuild"
// @Success 200 {object} dto.SnapshotResponse "Rebuilt snapshot; with cascade, a dto.ListSnapshotsResponse oldest first"
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /budget/rebuild [post]
func (h *budgetHandler) rebuildSnapshot(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.RebuildSnapshotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	logger = logger.With(slog.Int("month", req.Month), slog.Int("year", req.Year), slog.Bool("cascade", req.Cascade))
	logger.Info("Rebuilding budget snapshot")

	if req.Cascade {
		snapshots, err := h.snapshotService.RebuildFrom(c.Request.Context(), userID, req.Month, req.Year)
		if err != nil {
			respondServiceError(c, logger, err, "Failed to rebuild snapshots")
			return
		}
		c.JSON(http.StatusOK, dto.ToListSnapshotResponse(snapshots))
		return
	}

	snapshot, err := h.snapshotService.RebuildSnapshot(c.Request.Context(), userID, req.Month, req.Year)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to rebuild snapshot")
		return
	}

	c.JSON(http.StatusOK, dto.ToSnapshotResponse(snapshot))
}
