package domain

import "github.com/shopspring/decimal"

// BudgetSnapshot is the persisted monthly rollup for one user: total income,
// total allocated, and the Ready to Assign balance carried forward from the
// prior month. Snapshots are only ever rebuilt by the snapshot engine, never
// edited directly. One snapshot exists per (userID, month, year).
type BudgetSnapshot struct {
	SnapshotID     string          `json:"snapshotID"` // Primary Key (UUID)
	UserID         string          `json:"userID"`     // FK -> User (Not Null)
	Month          int             `json:"month"`
	Year           int             `json:"year"`
	ReadyToAssign  decimal.Decimal `json:"readyToAssign"`
	TotalIncome    decimal.Decimal `json:"totalIncome"`
	TotalAllocated decimal.Decimal `json:"totalAllocated"`
	AuditFields
}

// Period returns the snapshot's budgeting month.
func (s BudgetSnapshot) Period() Period {
	return Period{Month: s.Month, Year: s.Year}
}

// CalculateReadyToAssign computes the rolling unallocated balance for a
// month: the prior month's carry-in (zero when prev is nil) plus the month's
// income minus the month's allocations. Pure function of its inputs.
func CalculateReadyToAssign(prev *BudgetSnapshot, totalIncome, totalAllocated decimal.Decimal) decimal.Decimal {
	carryIn := decimal.Zero
	if prev != nil {
		carryIn = prev.ReadyToAssign
	}
	return carryIn.Add(totalIncome).Sub(totalAllocated)
}
