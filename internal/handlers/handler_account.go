package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/finbuckets/envelope_budget_app/internal/core/ports/services"
	"github.com/finbuckets/envelope_budget_app/internal/dto"
	"github.com/finbuckets/envelope_budget_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// accountHandler handles HTTP requests related to accounts.
type accountHandler struct {
	accountService     portssvc.AccountSvcFacade
	transactionService portssvc.TransactionSvcFacade
}

// newAccountHandler creates a new accountHandler.
func newAccountHandler(as portssvc.AccountSvcFacade, ts portssvc.TransactionSvcFacade) *accountHandler {
	return &accountHandler{
		accountService:     as,
		transactionService: ts,
	}
}

// registerAccountRoutes registers routes related to accounts.
func registerAccountRoutes(rg *gin.RouterGroup, accountService portssvc.AccountSvcFacade, transactionService portssvc.TransactionSvcFacade) {
	h := newAccountHandler(accountService, transactionService)

	accounts := rg.Group("/accounts")
	{
		accounts.POST("", h.createAccount)
		accounts.GET("", h.listAccounts)
		accounts.GET("/:accountID", h.getAccount)
		accounts.PUT("/:accountID", h.updateAccount)
		accounts.DELETE("/:accountID", h.deleteAccount)
		accounts.POST("/:accountID/recalculate", h.recalculateBalance)
		accounts.GET("/:accountID/transactions", h.listTransactions)
	}
}

// createAccount godoc
// @Summary Create a new account
// @Description Creates a new account for the logged-in user with a zero balance
// @Tags accounts
// @Accept json
// @Produce json
// @Param account body dto.CreateAccountRequest true "Account details"
// @Success 201 {object} dto.AccountResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /accounts [post]
func (h *accountHandler) createAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	account, err := h.accountService.CreateAccount(c.Request.Context(), userID, req)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create account")
		return
	}

	logger.Info("Account created", slog.String("account_id", account.AccountID))
	c.JSON(http.StatusCreated, dto.ToAccountResponse(account))
}

// getAccount godoc
// @Summary Get an account by ID
// @Description Retrieves one of the logged-in user's accounts
// @Tags accounts
// @Produce json
// @Param accountID path string true "Account ID"
// @Success 200 {object} dto.AccountResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /accounts/{accountID} [get]
func (h *accountHandler) getAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	account, err := h.accountService.GetAccountByID(c.Request.Context(), userID, c.Param("accountID"))
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve account")
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// listAccounts godoc
// @Summary List accounts
// @Description Retrieves the logged-in user's active accounts
// @Tags accounts
// @Produce json
// @Param limit query int false "Limit number of results" default(20)
// @Param offset query int false "Offset for pagination" default(0)
// @Success 200 {object} dto.ListAccountsResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /accounts [get]
func (h *accountHandler) listAccounts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var params dto.ListAccountsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	accounts, err := h.accountService.ListAccounts(c.Request.Context(), userID, params.Limit, params.Offset)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list accounts")
		return
	}

	c.JSON(http.StatusOK, dto.ListAccountsResponse{Accounts: dto.ToListAccountResponse(accounts)})
}

// updateAccount godoc
// @Summary Update an account
// @Description Updates an account's name or active flag
// @Tags accounts
// @Accept json
// @Produce json
// @Param accountID path string true "Account ID"
// @Param account body dto.UpdateAccountRequest true "Fields to update"
// @Success 200 {object} dto.AccountResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /accounts/{accountID} [put]
func (h *accountHandler) updateAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	account, err := h.accountService.UpdateAccount(c.Request.Context(), userID, c.Param("accountID"), req)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to update account")
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// deleteAccount godoc
// @Summary Deactivate an account
// @Description Marks an account as inactive (soft delete)
// @Tags accounts
// @Produce json
// @Param accountID path string true "Account ID"
// @Success 204 "No Content"
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /accounts/{accountID} [delete]
func (h *accountHandler) deleteAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.accountService.DeactivateAccount(c.Request.Context(), userID, c.Param("accountID")); err != nil {
		respondServiceError(c, logger, err, "Failed to deactivate account")
		return
	}

	c.Status(http.StatusNoContent)
}

// recalculateBalance godoc
// @Summary Recalculate the cached account balance
// @Description Rebuilds the cached balance from the transaction ledger and returns the corrected account
// @Tags accounts
// @Produce json
// @Param accountID path string true "Account ID"
// @Success 200 {object} dto.AccountResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /accounts/{accountID}/recalculate [post]
func (h *accountHandler) recalculateBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	account, err := h.accountService.RecalculateBalance(c.Request.Context(), userID, c.Param("accountID"))
	if err != nil {
		respondServiceError(c, logger, err, "Failed to recalculate balance")
		return
	}

	logger.Info("Account balance recalculated", slog.String("account_id", account.AccountID))
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// listTransactions godoc
// @Summary List an account's transactions
// @Description Retrieves an account's transactions newest first with token-based pagination
// @Tags transactions
// @Produce json
// @Param accountID path string true "Account ID"
// @Param limit query int false "Page size" default(20)
// @Param nextToken query string false "Pagination token from the previous page"
// @Success 200 {object} dto.ListTransactionsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /accounts/{accountID}/transactions [get]
func (h *accountHandler) listTransactions(c *gin.Context) {
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

	txns, nextToken, err := h.transactionService.ListTransactionsByAccount(c.Request.Context(), userID, c.Param("accountID"), params.Limit, params.NextToken)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list transactions")
		return
	}

	c.JSON(http.StatusOK, dto.ToListTransactionResponse(txns, nextToken))
}
