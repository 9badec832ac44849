package dto

import (
	"time"

	"github.com/finbuckets/envelope_budget_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SnapshotParams defines query parameters identifying a budget month.
type SnapshotParams struct {
	Month int `form:"month" binding:"required,min=1,max=12"`
	Year  int `form:"year" binding:"required,min=2000,max=2100"`
}

// RebuildSnapshotRequest defines the body for a snapshot rebuild. Cascade
// recomputes every later month as well.
type RebuildSnapshotRequest struct {
	Month   int  `json:"month" binding:"required,min=1,max=12"`
	Year    int  `json:"year" binding:"required,min=2000,max=2100"`
	Cascade bool `json:"cascade"`
}

// SnapshotResponse defines the data returned for a budget snapshot.
type SnapshotResponse struct {
	SnapshotID     string          `json:"snapshotID"`
	Month          int             `json:"month"`
	Year           int             `json:"year"`
	ReadyToAssign  decimal.Decimal `json:"readyToAssign"`
	TotalIncome    decimal.Decimal `json:"totalIncome"`
	TotalAllocated decimal.Decimal `json:"totalAllocated"`
	LastUpdatedAt  time.Time       `json:"lastUpdatedAt"`
}

// ListSnapshotsResponse wraps the list of snapshots.
type ListSnapshotsResponse struct {
	Snapshots []SnapshotResponse `json:"snapshots"`
}

// ToSnapshotResponse converts a domain.BudgetSnapshot to SnapshotResponse DTO
func ToSnapshotResponse(s *domain.BudgetSnapshot) SnapshotResponse {
	return SnapshotResponse{
		SnapshotID:     s.SnapshotID,
		Month:          s.Month,
		Year:           s.Year,
		ReadyToAssign:  s.ReadyToAssign,
		TotalIncome:    s.TotalIncome,
		TotalAllocated: s.TotalAllocated,
		LastUpdatedAt:  s.LastUpdatedAt,
	}
}

// ToListSnapshotResponse converts a slice of domain.BudgetSnapshot to ListSnapshotsResponse DTO
func ToListSnapshotResponse(snaps []domain.BudgetSnapshot) ListSnapshotsResponse {
	res := make([]SnapshotResponse, len(snaps))
	for i, s := range snaps {
		res[i] = ToSnapshotResponse(&s)
	}
	return ListSnapshotsResponse{
		Snapshots: res,
	}
}
