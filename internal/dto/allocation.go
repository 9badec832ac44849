package dto

import (
	"time"

	"github.com/finbuckets/envelope_budget_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAllocationRequest defines the data needed to budget a category for a
// month. Month and year bounds are re-checked in the service layer so
// non-HTTP callers get the same guarantee.
type CreateAllocationRequest struct {
	CategoryID           string           `json:"categoryID" binding:"required"`
	Month                int              `json:"month" binding:"required,min=1,max=12"`
	Year                 int              `json:"year" binding:"required,min=2000,max=2100"`
	BudgetedAmount       decimal.Decimal  `json:"budgetedAmount" binding:"required"`
	PercentageAllocation *decimal.Decimal `json:"percentageAllocation"` // Optional
}

// UpdateAllocationRequest defines the data allowed when revising an
// allocation. Identity fields (category, month, year) are immutable.
type UpdateAllocationRequest struct {
	BudgetedAmount *decimal.Decimal `json:"budgetedAmount"`
	EditorName     *string          `json:"editorName"`
	EditedMemo     *string          `json:"editedMemo"`
	IsActive       *bool            `json:"isActive"`
}

// AllocationResponse defines the data returned for an allocation.
type AllocationResponse struct {
	AllocationID         string           `json:"allocationID"`
	CategoryID           string           `json:"categoryID"`
	Month                int              `json:"month"`
	Year                 int              `json:"year"`
	BudgetedAmount       decimal.Decimal  `json:"budgetedAmount"`
	IsActive             bool             `json:"isActive"`
	EditorName           *string          `json:"editorName,omitempty"`
	EditedMemo           *string          `json:"editedMemo,omitempty"`
	OldAmount            *decimal.Decimal `json:"oldAmount,omitempty"`
	PercentageAllocation *decimal.Decimal `json:"percentageAllocation,omitempty"`
	CreatedAt            time.Time        `json:"createdAt"`
	LastUpdatedAt        time.Time        `json:"lastUpdatedAt"`
}

// GetAllocationParams defines query parameters for the active-allocation lookup.
type GetAllocationParams struct {
	Month int `form:"month" binding:"required,min=1,max=12"`
	Year  int `form:"year" binding:"required,min=2000,max=2100"`
}

// ListAllocationsResponse wraps the list of allocations.
type ListAllocationsResponse struct {
	Allocations []AllocationResponse `json:"allocations"`
}

// ToAllocationResponse converts a domain.CategoryAllocation to AllocationResponse DTO
func ToAllocationResponse(alloc *domain.CategoryAllocation) AllocationResponse {
	return AllocationResponse{
		AllocationID:         alloc.AllocationID,
		CategoryID:           alloc.CategoryID,
		Month:                alloc.Month,
		Year:                 alloc.Year,
		BudgetedAmount:       alloc.BudgetedAmount,
		IsActive:             alloc.IsActive,
		EditorName:           alloc.EditorName,
		EditedMemo:           alloc.EditedMemo,
		OldAmount:            alloc.OldAmount,
		PercentageAllocation: alloc.PercentageAllocation,
		CreatedAt:            alloc.CreatedAt,
		LastUpdatedAt:        alloc.LastUpdatedAt,
	}
}

// ToListAllocationResponse converts a slice of domain.CategoryAllocation to ListAllocationsResponse DTO
func ToListAllocationResponse(allocs []domain.CategoryAllocation) ListAllocationsResponse {
	res := make([]AllocationResponse, len(allocs))
	for i, alloc := range allocs {
		res[i] = ToAllocationResponse(&alloc)
	}
	return ListAllocationsResponse{
		Allocations: res,
	}
}
