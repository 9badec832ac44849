package services

import (
	"context"

	"github.com/finbuckets/envelope_budget_app/internal/core/domain"
	"github.com/finbuckets/envelope_budget_app/internal/dto"
)

// AccountReaderSvc defines read operations for accounts
type AccountReaderSvc interface {
	// GetAccountByID retrieves an account owned by the requesting user.
	GetAccountByID(ctx context.Context, userID string, accountID string) (*domain.Account, error)

	// ListAccounts retrieves the requesting user's active accounts.
	ListAccounts(ctx context.Context, userID string, limit int, offset int) ([]domain.Account, error)
}

// AccountWriterSvc defines write operations for accounts
type AccountWriterSvc interface {
	// CreateAccount creates an account with a zero cached balance.
	CreateAccount(ctx context.Context, userID string, req dto.CreateAccountRequest) (*domain.Account, error)

	// UpdateAccount updates mutable account fields.
	UpdateAccount(ctx context.Context, userID string, accountID string, req dto.UpdateAccountRequest) (*domain.Account, error)

	// DeactivateAccount soft-deletes an account.
	DeactivateAccount(ctx context.Context, userID string, accountID string) error

	// RecalculateBalance rebuilds the cached balance from the ledger and
	// returns the corrected account.
	RecalculateBalance(ctx context.Context, userID string, accountID string) (*domain.Account, error)
}

// AccountSvcFacade combines all account service interfaces
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
}
