package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/finbuckets/envelope_budget_app/internal/apperrors"
	"github.com/finbuckets/envelope_budget_app/internal/core/domain"
	portsrepo "github.com/finbuckets/envelope_budget_app/internal/core/ports/repositories"
	portssvc "github.com/finbuckets/envelope_budget_app/internal/core/ports/services"
	"github.com/finbuckets/envelope_budget_app/internal/dto"
	"github.com/finbuckets/envelope_budget_app/internal/middleware"
)

var (
	ErrDuplicateAllocation = errors.New("an active allocation already exists for this category and month")
	ErrCategoryNotActive   = errors.New("category is not active")
)

// allocationService provides category allocation operations. An allocation is
// the budgeted amount for one category in one calendar month; at most one
// active allocation exists per (category, month, year).
type allocationService struct {
	allocationRepo portsrepo.AllocationRepositoryFacade
	categorySvc    portssvc.CategorySvcFacade
}

// NewAllocationService creates a new allocation service.
func NewAllocationService(allocationRepo portsrepo.AllocationRepositoryFacade, categorySvc portssvc.CategorySvcFacade) portssvc.AllocationSvcFacade {
	return &allocationService{
		allocationRepo: allocationRepo,
		categorySvc:    categorySvc,
	}
}

var _ portssvc.AllocationSvcFacade = (*allocationService)(nil)

// findOwnedAllocation loads an allocation and verifies the requesting user
// owns its category.
func (s *allocationService) findOwnedAllocation(ctx context.Context, userID string, allocationID string) (*domain.CategoryAllocation, error) {
	allocation, err := s.allocationRepo.FindAllocationByID(ctx, allocationID)
	if err != nil {
		return nil, err
	}
	if _, err := s.categorySvc.GetCategoryByID(ctx, userID, allocation.CategoryID); err != nil {
		return nil, err
	}
	return allocation, nil
}

// GetAllocationByID retrieves an allocation owned by the requesting user.
func (s *allocationService) GetAllocationByID(ctx context.Context, userID string, allocationID string) (*domain.CategoryAllocation, error) {
	return s.findOwnedAllocation(ctx, userID, allocationID)
}

// GetActiveAllocation resolves the single active allocation for a category
// and budget month.
func (s *allocationService) GetActiveAllocation(ctx context.Context, userID string, categoryID string, month, year int) (*domain.CategoryAllocation, error) {
	if _, err := domain.NewPeriod(month, year); err != nil {
		return nil, err
	}
	if _, err := s.categorySvc.GetCategoryByID(ctx, userID, categoryID); err != nil {
		return nil, err
	}
	return s.allocationRepo.FindActiveAllocation(ctx, categoryID, month, year)
}

// ListAllocationsByCategory retrieves a category's allocation history.
func (s *allocationService) ListAllocationsByCategory(ctx context.Context, userID string, categoryID string) ([]domain.CategoryAllocation, error) {
	if _, err := s.categorySvc.GetCategoryByID(ctx, userID, categoryID); err != nil {
		return nil, err
	}
	allocations, err := s.allocationRepo.ListAllocationsByCategory(ctx, categoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to list allocations: %w", err)
	}
	return allocations, nil
}

// ListAllocationsForMonth retrieves all of the user's active allocations in a
// budget month.
func (s *allocationService) ListAllocationsForMonth(ctx context.Context, userID string, month, year int) ([]domain.CategoryAllocation, error) {
	if _, err := domain.NewPeriod(month, year); err != nil {
		return nil, err
	}
	allocations, err := s.allocationRepo.ListActiveAllocationsForMonth(ctx, userID, month, year)
	if err != nil {
		return nil, fmt.Errorf("failed to list allocations for month: %w", err)
	}
	return allocations, nil
}

// CreateAllocation creates the active allocation for a category and budget
// month. The storage layer's partial unique index is the final arbiter of
// uniqueness under concurrent creates.
func (s *allocationService) CreateAllocation(ctx context.Context, userID string, req dto.CreateAllocationRequest) (*domain.CategoryAllocation, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := domain.NewPeriod(req.Month, req.Year); err != nil {
		return nil, err
	}

	category, err := s.categorySvc.GetCategoryByID(ctx, userID, req.CategoryID)
	if err != nil {
		return nil, err
	}
	if !category.IsActive {
		return nil, fmt.Errorf("%w: category %s", ErrCategoryNotActive, req.CategoryID)
	}

	now := time.Now().UTC()
	allocation := domain.CategoryAllocation{
		AllocationID:         uuid.NewString(),
		CategoryID:           req.CategoryID,
		Month:                req.Month,
		Year:                 req.Year,
		BudgetedAmount:       req.BudgetedAmount,
		IsActive:             true,
		PercentageAllocation: req.PercentageAllocation,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.allocationRepo.SaveAllocation(ctx, allocation); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			logger.Warn("Duplicate active allocation rejected",
				slog.String("category_id", req.CategoryID),
				slog.Int("month", req.Month),
				slog.Int("year", req.Year),
			)
			return nil, fmt.Errorf("%w: category %s %04d-%02d", ErrDuplicateAllocation, req.CategoryID, req.Year, req.Month)
		}
		return nil, fmt.Errorf("failed to create allocation: %w", err)
	}

	return &allocation, nil
}

// UpdateAllocation revises an allocation in place. Identity (category, month,
// year) never changes; the previous amount is preserved in OldAmount.
func (s *allocationService) UpdateAllocation(ctx context.Context, userID string, allocationID string, req dto.UpdateAllocationRequest) (*domain.CategoryAllocation, error) {
	allocation, err := s.findOwnedAllocation(ctx, userID, allocationID)
	if err != nil {
		return nil, err
	}

	if req.BudgetedAmount != nil && !req.BudgetedAmount.Equal(allocation.BudgetedAmount) {
		previous := allocation.BudgetedAmount
		allocation.OldAmount = &previous
		allocation.BudgetedAmount = *req.BudgetedAmount
	}
	if req.EditorName != nil {
		allocation.EditorName = req.EditorName
	}
	if req.EditedMemo != nil {
		allocation.EditedMemo = req.EditedMemo
	}
	if req.IsActive != nil {
		allocation.IsActive = *req.IsActive
	}
	allocation.LastUpdatedAt = time.Now().UTC()
	allocation.LastUpdatedBy = userID

	if err := s.allocationRepo.UpdateAllocation(ctx, *allocation); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			// Reactivating over an existing active allocation for the same key
			return nil, fmt.Errorf("%w: category %s %04d-%02d", ErrDuplicateAllocation, allocation.CategoryID, allocation.Year, allocation.Month)
		}
		return nil, fmt.Errorf("failed to update allocation: %w", err)
	}
	return allocation, nil
}

// DeactivateAllocation retires an allocation so a replacement can be created
// for the same (category, month, year) key.
func (s *allocationService) DeactivateAllocation(ctx context.Context, userID string, allocationID string) error {
	allocation, err := s.findOwnedAllocation(ctx, userID, allocationID)
	if err != nil {
		return err
	}
	if !allocation.IsActive {
		return nil // already inactive
	}

	allocation.IsActive = false
	allocation.LastUpdatedAt = time.Now().UTC()
	allocation.LastUpdatedBy = userID

	if err := s.allocationRepo.UpdateAllocation(ctx, *allocation); err != nil {
		return fmt.Errorf("failed to deactivate allocation: %w", err)
	}
	return nil
}
