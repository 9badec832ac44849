package services

import (
	"context"

	"github.com/finbuckets/envelope_budget_app/internal/core/domain"
	"github.com/finbuckets/envelope_budget_app/internal/dto"
)

// AllocationReaderSvc defines read operations for category allocations
type AllocationReaderSvc interface {
	// GetAllocationByID retrieves an allocation owned by the requesting user.
	GetAllocationByID(ctx context.Context, userID string, allocationID string) (*domain.CategoryAllocation, error)

	// GetActiveAllocation resolves the active allocation for a category and
	// budget month, or apperrors.ErrNotFound when none exists.
	GetActiveAllocation(ctx context.Context, userID string, categoryID string, month, year int) (*domain.CategoryAllocation, error)

	// ListAllocationsByCategory retrieves a category's allocation history,
	// newest period first.
	ListAllocationsByCategory(ctx context.Context, userID string, categoryID string) ([]domain.CategoryAllocation, error)

	// ListAllocationsForMonth retrieves all of the user's active allocations
	// in a budget month.
	ListAllocationsForMonth(ctx context.Context, userID string, month, year int) ([]domain.CategoryAllocation, error)
}

// AllocationWriterSvc defines write operations for category allocations
type AllocationWriterSvc interface {
	// CreateAllocation creates the active allocation for a category and
	// budget month. A second active allocation for the same key is rejected
	// with apperrors.ErrDuplicate.
	CreateAllocation(ctx context.Context, userID string, req dto.CreateAllocationRequest) (*domain.CategoryAllocation, error)

	// UpdateAllocation revises an allocation's amount in place, recording
	// the previous amount and editor metadata.
	UpdateAllocation(ctx context.Context, userID string, allocationID string, req dto.UpdateAllocationRequest) (*domain.CategoryAllocation, error)

	// DeactivateAllocation retires an allocation, freeing its
	// (category, month, year) key for a replacement.
	DeactivateAllocation(ctx context.Context, userID string, allocationID string) error
}

// AllocationSvcFacade combines all allocation service interfaces
type AllocationSvcFacade interface {
	AllocationReaderSvc
	AllocationWriterSvc
}
