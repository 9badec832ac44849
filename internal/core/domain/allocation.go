package domain

import "github.com/shopspring/decimal"

// CategoryAllocation is the budgeted amount for one category in one calendar
// month. At most one active allocation may exist per (categoryID, month,
// year); the storage layer enforces this with a partial unique index.
// Identity is immutable once created; BudgetedAmount may be revised, with the
// audit fields recording the prior value.
type CategoryAllocation struct {
	AllocationID   string          `json:"allocationID"` // Primary Key (UUID)
	CategoryID     string          `json:"categoryID"`   // FK -> Category (Not Null)
	Month          int             `json:"month"`        // 1-12
	Year           int             `json:"year"`
	BudgetedAmount decimal.Decimal `json:"budgetedAmount"`
	IsActive       bool            `json:"isActive"`
	// Revision audit trail
	EditorName           *string          `json:"editorName,omitempty"`
	EditedMemo           *string          `json:"editedMemo,omitempty"`
	OldAmount            *decimal.Decimal `json:"oldAmount,omitempty"`
	PercentageAllocation *decimal.Decimal `json:"percentageAllocation,omitempty"`
	AuditFields
}

// Period returns the allocation's budgeting month.
func (a CategoryAllocation) Period() Period {
	return Period{Month: a.Month, Year: a.Year}
}
