package repositories

import (
	"context"
	"time"

	"github.com/finbuckets/envelope_budget_app/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// AccountReader defines read operations for account data
type AccountReader interface {
	// FindAccountByID retrieves an account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// ListAccountsByUser retrieves the active accounts owned by a user.
	ListAccountsByUser(ctx context.Context, userID string, limit int, offset int) ([]domain.Account, error)

	// SumTransactionAmounts recomputes an account balance from the ledger.
	SumTransactionAmounts(ctx context.Context, accountID string) (decimal.Decimal, error)
}

// AccountWriter defines write operations for account data
type AccountWriter interface {
	// SaveAccount persists a new account.
	SaveAccount(ctx context.Context, account domain.Account) error

	// UpdateAccount updates mutable account fields (name, active flag).
	UpdateAccount(ctx context.Context, account domain.Account) error

	// DeactivateAccount marks an account as inactive.
	DeactivateAccount(ctx context.Context, accountID string, userID string, now time.Time) error

	// SetAccountBalance overwrites the cached balance (recalculation path).
	SetAccountBalance(ctx context.Context, accountID string, balance decimal.Decimal, userID string, now time.Time) error
}

// AccountLocker defines in-transaction locking operations used by the
// transaction ledger to keep the cached balance consistent.
type AccountLocker interface {
	// FindAccountByIDForUpdate retrieves an account and locks its row.
	// Must be called within a transaction.
	FindAccountByIDForUpdate(ctx context.Context, tx pgx.Tx, accountID string) (*domain.Account, error)

	// AdjustAccountBalanceInTx applies a signed delta to the cached balance
	// within the supplied transaction.
	AdjustAccountBalanceInTx(ctx context.Context, tx pgx.Tx, accountID string, delta decimal.Decimal, userID string, now time.Time) error
}

// AccountRepositoryFacade combines all account-related repository interfaces
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
	AccountLocker
}
