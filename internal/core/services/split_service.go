package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/finbuckets/envelope_budget_app/internal/core/domain"
	portsrepo "github.com/finbuckets/envelope_budget_app/internal/core/ports/repositories"
	portssvc "github.com/finbuckets/envelope_budget_app/internal/core/ports/services"
	"github.com/finbuckets/envelope_budget_app/internal/dto"
)

// splitService provides standalone split operations on existing
// transactions. Unlike the atomic create path, standalone edits do not
// enforce the split-sum equality; a transaction's splits may temporarily
// diverge from its amount while the user re-categorizes spending.
type splitService struct {
	transactionRepo portsrepo.TransactionRepositoryFacade
	allocationRepo  portsrepo.AllocationRepositoryFacade
	accountSvc      portssvc.AccountSvcFacade
	categorySvc     portssvc.CategorySvcFacade
}

// NewSplitService creates a new split service.
func NewSplitService(transactionRepo portsrepo.TransactionRepositoryFacade, allocationRepo portsrepo.AllocationRepositoryFacade, accountSvc portssvc.AccountSvcFacade, categorySvc portssvc.CategorySvcFacade) portssvc.SplitSvcFacade {
	return &splitService{
		transactionRepo: transactionRepo,
		allocationRepo:  allocationRepo,
		accountSvc:      accountSvc,
		categorySvc:     categorySvc,
	}
}

var _ portssvc.SplitSvcFacade = (*splitService)(nil)

// ownsTransaction verifies the requesting user owns the transaction's account.
func (s *splitService) ownsTransaction(ctx context.Context, userID string, transactionID string) (*domain.Transaction, error) {
	txn, err := s.transactionRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if _, err := s.accountSvc.GetAccountByID(ctx, userID, txn.AccountID); err != nil {
		return nil, err
	}
	return txn, nil
}

// requireActiveAllocation checks a referenced allocation exists and is active.
func (s *splitService) requireActiveAllocation(ctx context.Context, allocationID string) error {
	allocation, err := s.allocationRepo.FindAllocationByID(ctx, allocationID)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrAllocationNotFound, allocationID)
	}
	if !allocation.IsActive {
		return fmt.Errorf("%w: %s", ErrAllocationInactive, allocationID)
	}
	return nil
}

// GetSplitByID retrieves a split owned by the requesting user.
func (s *splitService) GetSplitByID(ctx context.Context, userID string, splitID string) (*domain.TransactionSplit, error) {
	split, err := s.transactionRepo.FindSplitByID(ctx, splitID)
	if err != nil {
		return nil, err
	}
	if _, err := s.ownsTransaction(ctx, userID, split.TransactionID); err != nil {
		return nil, err
	}
	return split, nil
}

// ListSplitsByTransaction retrieves the splits of one transaction.
func (s *splitService) ListSplitsByTransaction(ctx context.Context, userID string, transactionID string) ([]domain.TransactionSplit, error) {
	if _, err := s.ownsTransaction(ctx, userID, transactionID); err != nil {
		return nil, err
	}
	return s.transactionRepo.FindSplitsByTransactionID(ctx, transactionID)
}

// ListSplitsByAllocation retrieves spending recorded against an allocation.
func (s *splitService) ListSplitsByAllocation(ctx context.Context, userID string, allocationID string, limit int, nextToken *string) ([]domain.TransactionSplit, *string, error) {
	// Ownership runs through the allocation's category
	allocation, err := s.allocationRepo.FindAllocationByID(ctx, allocationID)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %s", ErrAllocationNotFound, allocationID)
	}
	if _, err := s.categorySvc.GetCategoryByID(ctx, userID, allocation.CategoryID); err != nil {
		return nil, nil, err
	}
	if limit <= 0 {
		limit = 20
	}
	return s.transactionRepo.ListSplitsByAllocation(ctx, allocationID, limit, nextToken)
}

// ListSplitsByMonth retrieves the user's splits for a calendar month.
func (s *splitService) ListSplitsByMonth(ctx context.Context, userID string, month, year int) ([]domain.TransactionSplit, error) {
	if _, err := domain.NewPeriod(month, year); err != nil {
		return nil, err
	}
	return s.transactionRepo.ListSplitsByMonth(ctx, userID, month, year)
}

// AddSplit appends a split to an existing transaction.
func (s *splitService) AddSplit(ctx context.Context, userID string, transactionID string, req dto.CreateSplitRequest) (*domain.TransactionSplit, error) {
	txn, err := s.ownsTransaction(ctx, userID, transactionID)
	if err != nil {
		return nil, err
	}
	if txn.IsReconciled {
		return nil, fmt.Errorf("%w: %s", ErrTransactionReconciled, transactionID)
	}
	if err := s.requireActiveAllocation(ctx, req.AllocationID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	split := domain.TransactionSplit{
		SplitID:         uuid.NewString(),
		TransactionID:   transactionID,
		AllocationID:    req.AllocationID,
		Amount:          req.Amount,
		IsIncome:        req.IsIncome,
		Notes:           req.Notes,
		TransactionDate: txn.TransactionDate,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.transactionRepo.SaveSplit(ctx, split); err != nil {
		return nil, fmt.Errorf("failed to save split: %w", err)
	}
	return &split, nil
}

// UpdateSplit updates a split's amount, allocation, income flag or notes.
func (s *splitService) UpdateSplit(ctx context.Context, userID string, splitID string, req dto.UpdateSplitRequest) (*domain.TransactionSplit, error) {
	split, err := s.transactionRepo.FindSplitByID(ctx, splitID)
	if err != nil {
		return nil, err
	}
	txn, err := s.ownsTransaction(ctx, userID, split.TransactionID)
	if err != nil {
		return nil, err
	}
	if txn.IsReconciled {
		return nil, fmt.Errorf("%w: %s", ErrTransactionReconciled, txn.TransactionID)
	}

	if req.AllocationID != nil && *req.AllocationID != split.AllocationID {
		if err := s.requireActiveAllocation(ctx, *req.AllocationID); err != nil {
			return nil, err
		}
		split.AllocationID = *req.AllocationID
	}
	if req.Amount != nil {
		split.Amount = *req.Amount
	}
	if req.IsIncome != nil {
		split.IsIncome = *req.IsIncome
	}
	if req.Notes != nil {
		split.Notes = *req.Notes
	}
	split.LastUpdatedAt = time.Now().UTC()
	split.LastUpdatedBy = userID

	if err := s.transactionRepo.UpdateSplit(ctx, *split); err != nil {
		return nil, fmt.Errorf("failed to update split: %w", err)
	}
	return split, nil
}

// DeleteSplit removes a single split without touching its parent transaction.
func (s *splitService) DeleteSplit(ctx context.Context, userID string, splitID string) error {
	split, err := s.transactionRepo.FindSplitByID(ctx, splitID)
	if err != nil {
		return err
	}
	txn, err := s.ownsTransaction(ctx, userID, split.TransactionID)
	if err != nil {
		return err
	}
	if txn.IsReconciled {
		return fmt.Errorf("%w: %s", ErrTransactionReconciled, txn.TransactionID)
	}

	if err := s.transactionRepo.DeleteSplit(ctx, splitID); err != nil {
		return fmt.Errorf("failed to delete split: %w", err)
	}
	return nil
}
