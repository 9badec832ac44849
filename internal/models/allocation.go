package models

import "github.com/shopspring/decimal"

// CategoryAllocation mirrors the category_allocations table. A partial
// unique index on (category_id, month, year) WHERE is_active enforces the
// one-active-allocation-per-month invariant at the storage layer.
type CategoryAllocation struct {
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
	AuditFields
}
