package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/finbuckets/envelope_budget_app/internal/core/ports/services"
	"github.com/finbuckets/envelope_budget_app/internal/dto"
	"github.com/finbuckets/envelope_budget_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// transactionHandler handles HTTP requests related to transactions.
type transactionHandler struct {
	transactionService portssvc.TransactionSvcFacade
	splitService       portssvc.SplitSvcFacade
}

// newTransactionHandler creates a new transactionHandler.
func newTransactionHandler(ts portssvc.TransactionSvcFacade, ss portssvc.SplitSvcFacade) *transactionHandler {
	return &transactionHandler{
		transactionService: ts,
		splitService:       ss,
	}
}

// registerTransactionRoutes registers routes related to transactions.
func registerTransactionRoutes(rg *gin.RouterGroup, transactionService portssvc.TransactionSvcFacade, splitService portssvc.SplitSvcFacade) {
	h := newTransactionHandler(transactionService, splitService)

	transactions := rg.Group("/transactions")
	{
		transactions.POST("", h.createTransaction)
		transactions.GET("/:transactionID", h.getTransaction)
		transactions.PUT("/:transactionID", h.updateTransaction)
		transactions.DELETE("/:transactionID", h.deleteTransaction)
		transactions.GET("/:transactionID/splits", h.listSplits)
		transactions.POST("/:transactionID/splits", h.addSplit)
	}
}

// createTransaction godoc
// @Summary Post a transaction
// @Description Creates a transaction with its splits and adjusts the account balance atomically. Every split must reference an active allocation and the split amounts must sum to the transaction amount.
// @Tags transactions
// @Accept json
// @Produce json
// @Param transaction body dto.CreateTransactionRequest true "Transaction and splits"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} ErrorResponse "Missing allocation, inactive allocation, or split sum mismatch"
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /transactions [post]
func (h *transactionHandler) createTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	txn, err := h.transactionService.CreateTransaction(c.Request.Context(), userID, req)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create transaction")
		return
	}

	logger.Info("Transaction created",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("account_id", txn.AccountID),
		slog.Int("split_count", len(txn.Splits)))
	c.JSON(http.StatusCreated, dto.ToTransactionResponse(txn))
}

// getTransaction godoc
// @Summary Get a transaction by ID
// @Description Retrieves a transaction with its splits
// @Tags transactions
// @Produce json
// @Param transactionID path string true "Transaction ID"
// @Success 200 {object} dto.TransactionResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /transactions/{transactionID} [get]
func (h *transactionHandler) getTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	txn, err := h.transactionService.GetTransactionByID(c.Request.Context(), userID, c.Param("transactionID"))
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve transaction")
		return
	}

	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

// updateTransaction godoc
// @Summary Update a transaction
// @Description Updates payee, amount, date or the reconciled flag. Field edits on a reconciled transaction are rejected; clearing the flag first is required.
// @Tags transactions
// @Accept json
// @Produce json
// @Param transactionID path string true "Transaction ID"
// @Param transaction body dto.UpdateTransactionRequest true "Fields to update"
// @Success 200 {object} dto.TransactionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Transaction is reconciled"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /transactions/{transactionID} [put]
func (h *transactionHandler) updateTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.UpdateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	txn, err := h.transactionService.UpdateTransaction(c.Request.Context(), userID, c.Param("transactionID"), req)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to update transaction")
		return
	}

	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

// deleteTransaction godoc
// @Summary Delete a transaction
// @Description Removes a transaction, its splits, and its balance effect atomically. Reconciled transactions cannot be deleted.
// @Tags transactions
// @Produce json
// @Param transactionID path string true "Transaction ID"
// @Success 204 "No Content"
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Transaction is reconciled"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /transactions/{transactionID} [delete]
func (h *transactionHandler) deleteTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.transactionService.DeleteTransaction(c.Request.Context(), userID, c.Param("transactionID")); err != nil {
		respondServiceError(c, logger, err, "Failed to delete transaction")
		return
	}

	c.Status(http.StatusNoContent)
}

// listSplits godoc
// @Summary List a transaction's splits
// @Description Retrieves all splits of one transaction
// @Tags splits
// @Produce json
// @Param transactionID path string true "Transaction ID"
// @Success 200 {object} dto.ListSplitsResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /transactions/{transactionID}/splits [get]
func (h *transactionHandler) listSplits(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	splits, err := h.splitService.ListSplitsByTransaction(c.Request.Context(), userID, c.Param("transactionID"))
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list splits")
		return
	}

	c.JSON(http.StatusOK, dto.ListSplitsResponse{Splits: dto.ToSplitResponses(splits)})
}

// addSplit godoc
// @Summary Append a split to a transaction
// @Description Adds a split to an existing transaction. The referenced allocation must be active; the strict sum rule is not enforced on this path.
// @Tags splits
// @Accept json
// @Produce json
// @Param transactionID path string true "Transaction ID"
// @Param split body dto.CreateSplitRequest true "Split details"
// @Success 201 {object} dto.SplitResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Transaction is reconciled"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /transactions/{transactionID}/splits [post]
func (h *transactionHandler) addSplit(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.CreateSplitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	split, err := h.splitService.AddSplit(c.Request.Context(), userID, c.Param("transactionID"), req)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to add split")
		return
	}

	logger.Info("Split added", slog.String("split_id", split.SplitID), slog.String("transaction_id", split.TransactionID))
	c.JSON(http.StatusCreated, dto.ToSplitResponse(split))
}
