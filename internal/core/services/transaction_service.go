package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finbuckets/envelope_budget_app/internal/apperrors"
	"github.com/finbuckets/envelope_budget_app/internal/core/domain"
	portsrepo "github.com/finbuckets/envelope_budget_app/internal/core/ports/repositories"
	portssvc "github.com/finbuckets/envelope_budget_app/internal/core/ports/services"
	"github.com/finbuckets/envelope_budget_app/internal/dto"
	"github.com/finbuckets/envelope_budget_app/internal/middleware"
)

var (
	ErrNoSplits              = errors.New("transaction must have at least one split")
	ErrSplitSumMismatch      = errors.New("split amounts do not sum to the transaction amount")
	ErrAllocationNotFound    = errors.New("allocation not found")
	ErrAllocationInactive    = errors.New("allocation is not active")
	ErrAccountNotActive      = errors.New("account is not active")
	ErrTransactionReconciled = errors.New("reconciled transactions cannot be modified")
)

// transactionService provides ledger operations. Creation is budget-first:
// every split must reference an existing active allocation before anything is
// persisted, and the write covers the transaction, its splits, and the
// account's cached balance in one database transaction.
type transactionService struct {
	transactionRepo portsrepo.TransactionRepositoryFacade
	allocationRepo  portsrepo.AllocationRepositoryFacade
	accountSvc      portssvc.AccountSvcFacade
}

// NewTransactionService creates a new transaction service.
func NewTransactionService(transactionRepo portsrepo.TransactionRepositoryFacade, allocationRepo portsrepo.AllocationRepositoryFacade, accountSvc portssvc.AccountSvcFacade) portssvc.TransactionSvcFacade {
	return &transactionService{
		transactionRepo: transactionRepo,
		allocationRepo:  allocationRepo,
		accountSvc:      accountSvc,
	}
}

var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

// resolveActiveAllocation checks that a split's allocation exists and is
// active before any ledger write happens.
func (s *transactionService) resolveActiveAllocation(ctx context.Context, allocationID string) (*domain.CategoryAllocation, error) {
	allocation, err := s.allocationRepo.FindAllocationByID(ctx, allocationID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrAllocationNotFound, allocationID)
		}
		return nil, fmt.Errorf("failed to resolve allocation %s: %w", allocationID, err)
	}
	if !allocation.IsActive {
		return nil, fmt.Errorf("%w: %s", ErrAllocationInactive, allocationID)
	}
	return allocation, nil
}

// findOwnedTransaction loads a transaction and verifies the requesting user
// owns its account.
func (s *transactionService) findOwnedTransaction(ctx context.Context, userID string, transactionID string) (*domain.Transaction, error) {
	txn, err := s.transactionRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if _, err := s.accountSvc.GetAccountByID(ctx, userID, txn.AccountID); err != nil {
		return nil, err
	}
	return txn, nil
}

// GetTransactionByID retrieves a transaction with its splits.
func (s *transactionService) GetTransactionByID(ctx context.Context, userID string, transactionID string) (*domain.Transaction, error) {
	txn, err := s.findOwnedTransaction(ctx, userID, transactionID)
	if err != nil {
		return nil, err
	}

	splits, err := s.transactionRepo.FindSplitsByTransactionID(ctx, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load splits: %w", err)
	}
	txn.Splits = splits
	return txn, nil
}

// ListTransactionsByAccount retrieves an account's transactions newest first.
func (s *transactionService) ListTransactionsByAccount(ctx context.Context, userID string, accountID string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	if _, err := s.accountSvc.GetAccountByID(ctx, userID, accountID); err != nil {
		return nil, nil, err
	}
	if limit <= 0 {
		limit = 20
	}
	return s.transactionRepo.ListTransactionsByAccount(ctx, accountID, limit, nextToken)
}

// CreateTransaction posts a transaction with its splits atomically. The
// transaction date's wall-clock fields are treated as UTC regardless of the
// zone the caller supplied.
func (s *transactionService) CreateTransaction(ctx context.Context, userID string, req dto.CreateTransactionRequest) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if len(req.Splits) == 0 {
		return nil, ErrNoSplits
	}

	account, err := s.accountSvc.GetAccountByID(ctx, userID, req.AccountID)
	if err != nil {
		return nil, err
	}
	if !account.IsActive {
		return nil, fmt.Errorf("%w: %s", ErrAccountNotActive, req.AccountID)
	}

	// Budget-first: every referenced allocation must resolve before the write
	for _, splitReq := range req.Splits {
		if _, err := s.resolveActiveAllocation(ctx, splitReq.AllocationID); err != nil {
			return nil, err
		}
	}

	now := time.Now().UTC()
	txnDate := domain.NormalizeToUTC(req.TransactionDate)
	txn := domain.Transaction{
		TransactionID:   uuid.NewString(),
		AccountID:       req.AccountID,
		Payee:           req.Payee,
		Amount:          req.Amount,
		TransactionDate: txnDate,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	splits := make([]domain.TransactionSplit, len(req.Splits))
	for i, splitReq := range req.Splits {
		splits[i] = domain.TransactionSplit{
			SplitID:       uuid.NewString(),
			TransactionID: txn.TransactionID,
			AllocationID:  splitReq.AllocationID,
			Amount:        splitReq.Amount,
			IsIncome:      splitReq.IsIncome,
			Notes:         splitReq.Notes,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     userID,
				LastUpdatedAt: now,
				LastUpdatedBy: userID,
			},
		}
	}

	if err := txn.ValidateSplitSum(splits); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrSplitSumMismatch, err.Error())
	}

	if err := s.transactionRepo.SaveTransactionWithSplits(ctx, txn, splits); err != nil {
		logger.Error("Failed to save transaction", slog.String("error", err.Error()), slog.String("account_id", req.AccountID))
		return nil, fmt.Errorf("failed to save transaction: %w", err)
	}

	txn.Splits = splits
	return &txn, nil
}

// UpdateTransaction updates payee, amount, date or the reconciled flag. Any
// amount change is applied to the cached account balance in the same unit of
// work.
func (s *transactionService) UpdateTransaction(ctx context.Context, userID string, transactionID string, req dto.UpdateTransactionRequest) (*domain.Transaction, error) {
	txn, err := s.findOwnedTransaction(ctx, userID, transactionID)
	if err != nil {
		return nil, err
	}

	changesFields := req.Payee != nil || req.Amount != nil || req.TransactionDate != nil
	if txn.IsReconciled && changesFields {
		return nil, fmt.Errorf("%w: %s", ErrTransactionReconciled, transactionID)
	}

	balanceDelta := decimal.Zero
	if req.Payee != nil {
		txn.Payee = *req.Payee
	}
	if req.Amount != nil && !req.Amount.Equal(txn.Amount) {
		balanceDelta = req.Amount.Sub(txn.Amount)
		txn.Amount = *req.Amount
	}
	if req.TransactionDate != nil {
		txn.TransactionDate = domain.NormalizeToUTC(*req.TransactionDate)
	}
	if req.IsReconciled != nil {
		txn.IsReconciled = *req.IsReconciled
	}
	txn.LastUpdatedAt = time.Now().UTC()
	txn.LastUpdatedBy = userID

	if err := s.transactionRepo.UpdateTransaction(ctx, *txn, balanceDelta); err != nil {
		return nil, fmt.Errorf("failed to update transaction: %w", err)
	}
	return txn, nil
}

// DeleteTransaction removes a transaction, its splits, and its balance effect
// atomically.
func (s *transactionService) DeleteTransaction(ctx context.Context, userID string, transactionID string) error {
	txn, err := s.findOwnedTransaction(ctx, userID, transactionID)
	if err != nil {
		return err
	}
	if txn.IsReconciled {
		return fmt.Errorf("%w: %s", ErrTransactionReconciled, transactionID)
	}

	if err := s.transactionRepo.DeleteTransaction(ctx, transactionID, userID); err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}
	return nil
}
