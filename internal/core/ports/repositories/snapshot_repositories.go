package repositories

import (
	"context"

	"github.com/finbuckets/envelope_budget_app/internal/core/domain"
)

// SnapshotReader defines read operations for budget snapshot data
type SnapshotReader interface {
	// FindSnapshot retrieves the snapshot for a user's (month, year), or
	// apperrors.ErrNotFound when none has been computed.
	FindSnapshot(ctx context.Context, userID string, month, year int) (*domain.BudgetSnapshot, error)

	// ListSnapshots retrieves a user's snapshots in chronological order.
	ListSnapshots(ctx context.Context, userID string) ([]domain.BudgetSnapshot, error)

	// FindLatestSnapshotPeriod returns the most recent (month, year) with a
	// persisted snapshot for the user, or nil when none exists.
	FindLatestSnapshotPeriod(ctx context.Context, userID string) (*domain.Period, error)
}

// SnapshotWriter defines write operations for budget snapshot data
type SnapshotWriter interface {
	// UpsertSnapshot inserts or replaces the snapshot keyed by
	// (user_id, month, year).
	UpsertSnapshot(ctx context.Context, snapshot domain.BudgetSnapshot) error
}

// SnapshotRepositoryFacade combines all snapshot repository interfaces
type SnapshotRepositoryFacade interface {
	SnapshotReader
	SnapshotWriter
}
