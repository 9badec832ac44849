package models

import "github.com/shopspring/decimal"

// BudgetSnapshot mirrors the budget_snapshots table. One row per
// (user_id, month, year), insert-or-replace on rebuild.
type BudgetSnapshot struct {
	SnapshotID     string          `json:"snapshotID"`
	UserID         string          `json:"userID"`
	Month          int             `json:"month"`
	Year           int             `json:"year"`
	ReadyToAssign  decimal.Decimal `json:"readyToAssign"`
	TotalIncome    decimal.Decimal `json:"totalIncome"`
	TotalAllocated decimal.Decimal `json:"totalAllocated"`
	AuditFields
}
