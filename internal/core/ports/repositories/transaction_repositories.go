package repositories

import (
	"context"

	"github.com/finbuckets/envelope_budget_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TransactionReader defines read operations for transaction data
type TransactionReader interface {
	// FindTransactionByID retrieves a transaction without its splits.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// ListTransactionsByAccount retrieves a paginated list of transactions
	// for an account using token-based pagination, newest first.
	ListTransactionsByAccount(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.Transaction, *string, error)
}

// TransactionWriter defines write operations for transaction data
type TransactionWriter interface {
	// SaveTransactionWithSplits persists a transaction, its splits, and the
	// owning account's cached balance adjustment in one database
	// transaction. Nothing is left behind when any part fails.
	SaveTransactionWithSplits(ctx context.Context, txn domain.Transaction, splits []domain.TransactionSplit) error

	// UpdateTransaction updates payee/amount/date/reconciled. balanceDelta
	// is the signed adjustment to apply to the account's cached balance in
	// the same unit of work (zero when the amount did not change).
	UpdateTransaction(ctx context.Context, txn domain.Transaction, balanceDelta decimal.Decimal) error

	// DeleteTransaction removes a transaction, cascades to its splits, and
	// reverses its effect on the account's cached balance atomically.
	DeleteTransaction(ctx context.Context, transactionID string, deletedBy string) error
}

// SplitReader defines read operations for transaction split data
type SplitReader interface {
	// FindSplitByID retrieves a split by its unique identifier.
	FindSplitByID(ctx context.Context, splitID string) (*domain.TransactionSplit, error)

	// FindSplitsByTransactionID retrieves all splits of one transaction.
	FindSplitsByTransactionID(ctx context.Context, transactionID string) ([]domain.TransactionSplit, error)

	// ListSplitsByAllocation retrieves splits referencing an allocation in
	// reverse chronological order of the parent transaction date, with
	// token-based pagination.
	ListSplitsByAllocation(ctx context.Context, allocationID string, limit int, nextToken *string) ([]domain.TransactionSplit, *string, error)

	// ListSplitsByMonth retrieves a user's splits whose parent transaction
	// falls inside the given calendar month.
	ListSplitsByMonth(ctx context.Context, userID string, month, year int) ([]domain.TransactionSplit, error)

	// SumIncomeForMonth totals a user's split amounts flagged isIncome for
	// transactions in the given month. Feeds the snapshot engine.
	SumIncomeForMonth(ctx context.Context, userID string, month, year int) (decimal.Decimal, error)

	// FindLatestTransactionPeriod returns the most recent (month, year)
	// containing any transaction for the user, or nil when none exists.
	FindLatestTransactionPeriod(ctx context.Context, userID string) (*domain.Period, error)
}

// SplitWriter defines write operations for transaction split data
type SplitWriter interface {
	// SaveSplit persists a new split.
	SaveSplit(ctx context.Context, split domain.TransactionSplit) error

	// UpdateSplit updates a split in place.
	UpdateSplit(ctx context.Context, split domain.TransactionSplit) error

	// DeleteSplit removes a single split. Does not cascade.
	DeleteSplit(ctx context.Context, splitID string) error
}

// TransactionRepositoryFacade combines all ledger repository interfaces
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
	SplitReader
	SplitWriter
}
