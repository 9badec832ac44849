package repositories

import (
	"context"

	"github.com/finbuckets/envelope_budget_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AllocationReader defines read operations for category allocation data
type AllocationReader interface {
	// FindAllocationByID retrieves an allocation by its unique identifier.
	FindAllocationByID(ctx context.Context, allocationID string) (*domain.CategoryAllocation, error)

	// FindActiveAllocation resolves the single active allocation for a
	// (categoryID, month, year) key. The lookup is exact; no fuzzy matching.
	FindActiveAllocation(ctx context.Context, categoryID string, month, year int) (*domain.CategoryAllocation, error)

	// ListAllocationsByCategory retrieves a category's allocations in
	// reverse chronological order (year desc, month desc).
	ListAllocationsByCategory(ctx context.Context, categoryID string) ([]domain.CategoryAllocation, error)

	// ListActiveAllocationsForMonth retrieves all active allocations for a
	// user's categories in the given month.
	ListActiveAllocationsForMonth(ctx context.Context, userID string, month, year int) ([]domain.CategoryAllocation, error)

	// SumActiveAllocationsForMonth totals the budgeted amounts for a user's
	// active allocations in the given month. Feeds the snapshot engine.
	SumActiveAllocationsForMonth(ctx context.Context, userID string, month, year int) (decimal.Decimal, error)

	// FindLatestAllocationPeriod returns the most recent (month, year) with
	// any active allocation for the user, or nil when none exists.
	FindLatestAllocationPeriod(ctx context.Context, userID string) (*domain.Period, error)
}

// AllocationWriter defines write operations for category allocation data
type AllocationWriter interface {
	// SaveAllocation persists a new allocation. The storage layer's partial
	// unique index surfaces a duplicate active (categoryID, month, year) as
	// apperrors.ErrDuplicate.
	SaveAllocation(ctx context.Context, allocation domain.CategoryAllocation) error

	// UpdateAllocation revises an existing allocation in place (amount,
	// active flag, audit fields). Identity columns are never touched.
	UpdateAllocation(ctx context.Context, allocation domain.CategoryAllocation) error
}

// AllocationRepositoryFacade combines all allocation repository interfaces
type AllocationRepositoryFacade interface {
	AllocationReader
	AllocationWriter
}
