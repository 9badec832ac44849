package services

import (
	"context"
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

// accountService provides money account operations, including the cached
// balance recalculation path.
type accountService struct {
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewAccountService creates a new account service.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade) portssvc.AccountSvcFacade {
	return &accountService{accountRepo: accountRepo}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// findOwnedAccount loads an account and verifies ownership.
func (s *accountService) findOwnedAccount(ctx context.Context, userID string, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if account.UserID != userID {
		return nil, fmt.Errorf("%w: account %s", apperrors.ErrForbidden, accountID)
	}
	return account, nil
}

// GetAccountByID retrieves an account owned by the requesting user.
func (s *accountService) GetAccountByID(ctx context.Context, userID string, accountID string) (*domain.Account, error) {
	return s.findOwnedAccount(ctx, userID, accountID)
}

// ListAccounts retrieves the user's active accounts.
func (s *accountService) ListAccounts(ctx context.Context, userID string, limit int, offset int) ([]domain.Account, error) {
	if limit <= 0 {
		limit = 20
	}
	accounts, err := s.accountRepo.ListAccountsByUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}

// CreateAccount creates an account with a zero cached balance.
func (s *accountService) CreateAccount(ctx context.Context, userID string, req dto.CreateAccountRequest) (*domain.Account, error) {
	now := time.Now().UTC()
	account := domain.Account{
		AccountID:   uuid.NewString(),
		UserID:      userID,
		Name:        req.Name,
		AccountType: req.AccountType,
		Balance:     decimal.Zero,
		IsActive:    true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}
	return &account, nil
}

// UpdateAccount updates mutable account fields.
func (s *accountService) UpdateAccount(ctx context.Context, userID string, accountID string, req dto.UpdateAccountRequest) (*domain.Account, error) {
	account, err := s.findOwnedAccount(ctx, userID, accountID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		account.Name = *req.Name
	}
	if req.IsActive != nil {
		account.IsActive = *req.IsActive
	}
	account.LastUpdatedAt = time.Now().UTC()
	account.LastUpdatedBy = userID

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		return nil, fmt.Errorf("failed to update account: %w", err)
	}
	return account, nil
}

// DeactivateAccount soft-deletes an account.
func (s *accountService) DeactivateAccount(ctx context.Context, userID string, accountID string) error {
	if _, err := s.findOwnedAccount(ctx, userID, accountID); err != nil {
		return err
	}
	if err := s.accountRepo.DeactivateAccount(ctx, accountID, userID, time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to deactivate account: %w", err)
	}
	return nil
}

// RecalculateBalance rebuilds the cached balance from the transaction ledger
// and overwrites the stored value. The result is authoritative; any drift is
// logged for investigation.
func (s *accountService) RecalculateBalance(ctx context.Context, userID string, accountID string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.findOwnedAccount(ctx, userID, accountID)
	if err != nil {
		return nil, err
	}

	recomputed, err := s.accountRepo.SumTransactionAmounts(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to recompute balance: %w", err)
	}

	if !recomputed.Equal(account.Balance) {
		logger.Warn("Cached balance drift detected",
			slog.String("account_id", accountID),
			slog.String("cached", account.Balance.String()),
			slog.String("recomputed", recomputed.String()),
		)
	}

	now := time.Now().UTC()
	if err := s.accountRepo.SetAccountBalance(ctx, accountID, recomputed, userID, now); err != nil {
		return nil, fmt.Errorf("failed to store recomputed balance: %w", err)
	}

	account.Balance = recomputed
	account.LastUpdatedAt = now
	account.LastUpdatedBy = userID
	return account, nil
}
