package services

import (
	"context"

	"github.com/finbuckets/envelope_budget_app/internal/core/domain"
)

// SnapshotReaderSvc defines read operations for budget snapshots
type SnapshotReaderSvc interface {
	// GetSnapshot retrieves the persisted snapshot for a budget month.
	GetSnapshot(ctx context.Context, userID string, month, year int) (*domain.BudgetSnapshot, error)

	// ListSnapshots retrieves the user's snapshots in chronological order.
	ListSnapshots(ctx context.Context, userID string) ([]domain.BudgetSnapshot, error)
}

// SnapshotWriterSvc defines snapshot computation operations
type SnapshotWriterSvc interface {
	// RebuildSnapshot recomputes and persists a single month's snapshot
	// from the ledger and allocation store, chaining from the previous
	// month's persisted snapshot when one exists. Idempotent.
	RebuildSnapshot(ctx context.Context, userID string, month, year int) (*domain.BudgetSnapshot, error)

	// RebuildFrom recomputes every month from the given one through the
	// latest month carrying data, in order. Used after a historical edit so
	// downstream carry-ins stay consistent.
	RebuildFrom(ctx context.Context, userID string, month, year int) ([]domain.BudgetSnapshot, error)
}

// SnapshotSvcFacade combines all snapshot service interfaces
type SnapshotSvcFacade interface {
	SnapshotReaderSvc
	SnapshotWriterSvc
}
