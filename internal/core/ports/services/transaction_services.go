package services

import (
	"context"

	"github.com/finbuckets/envelope_budget_app/internal/core/domain"
	"github.com/finbuckets/envelope_budget_app/internal/dto"
)

// TransactionReaderSvc defines read operations for transactions
type TransactionReaderSvc interface {
	// GetTransactionByID retrieves a transaction with its splits.
	GetTransactionByID(ctx context.Context, userID string, transactionID string) (*domain.Transaction, error)

	// ListTransactionsByAccount retrieves an account's transactions newest
	// first using token-based pagination.
	ListTransactionsByAccount(ctx context.Context, userID string, accountID string, limit int, nextToken *string) ([]domain.Transaction, *string, error)
}

// TransactionWriterSvc defines write operations for transactions
type TransactionWriterSvc interface {
	// CreateTransaction persists a transaction together with its splits and
	// the account balance adjustment as one atomic operation. Every split
	// must reference an existing active allocation and the split amounts
	// must sum to the transaction amount.
	CreateTransaction(ctx context.Context, userID string, req dto.CreateTransactionRequest) (*domain.Transaction, error)

	// UpdateTransaction updates payee, amount, date or reconciled flag,
	// keeping the cached account balance in step with any amount change.
	UpdateTransaction(ctx context.Context, userID string, transactionID string, req dto.UpdateTransactionRequest) (*domain.Transaction, error)

	// DeleteTransaction removes a transaction, its splits, and its effect
	// on the cached account balance atomically.
	DeleteTransaction(ctx context.Context, userID string, transactionID string) error
}

// TransactionSvcFacade combines all transaction service interfaces
type TransactionSvcFacade interface {
	TransactionReaderSvc
	TransactionWriterSvc
}

// SplitReaderSvc defines read operations for transaction splits
type SplitReaderSvc interface {
	// GetSplitByID retrieves a split owned by the requesting user.
	GetSplitByID(ctx context.Context, userID string, splitID string) (*domain.TransactionSplit, error)

	// ListSplitsByTransaction retrieves the splits of one transaction.
	ListSplitsByTransaction(ctx context.Context, userID string, transactionID string) ([]domain.TransactionSplit, error)

	// ListSplitsByAllocation retrieves spending recorded against an
	// allocation, newest transaction first, with token-based pagination.
	ListSplitsByAllocation(ctx context.Context, userID string, allocationID string, limit int, nextToken *string) ([]domain.TransactionSplit, *string, error)

	// ListSplitsByMonth retrieves the user's splits for a calendar month.
	ListSplitsByMonth(ctx context.Context, userID string, month, year int) ([]domain.TransactionSplit, error)
}

// SplitWriterSvc defines write operations for transaction splits
type SplitWriterSvc interface {
	// AddSplit appends a split to an existing transaction. The referenced
	// allocation must exist and be active for the transaction's month.
	AddSplit(ctx context.Context, userID string, transactionID string, req dto.CreateSplitRequest) (*domain.TransactionSplit, error)

	// UpdateSplit updates a split's amount, allocation, income flag or notes.
	UpdateSplit(ctx context.Context, userID string, splitID string, req dto.UpdateSplitRequest) (*domain.TransactionSplit, error)

	// DeleteSplit removes a single split without touching its parent
	// transaction.
	DeleteSplit(ctx context.Context, userID string, splitID string) error
}

// SplitSvcFacade combines all split service interfaces
type SplitSvcFacade interface {
	SplitReaderSvc
	SplitWriterSvc
}
