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
	"github.com/finbuckets/envelope_budget_app/internal/middleware"
)

// snapshotService computes and persists the monthly budget rollup. Ready to
// Assign chains month over month: a month's value is the previous month's
// carry-in plus income minus allocations. Rebuilding a month is idempotent;
// rebuilding after a historical edit is done with RebuildFrom so every
// downstream month's carry-in is recomputed in order.
type snapshotService struct {
	snapshotRepo    portsrepo.SnapshotRepositoryFacade
	allocationRepo  portsrepo.AllocationRepositoryFacade
	transactionRepo portsrepo.TransactionRepositoryFacade
}

// NewSnapshotService creates a new snapshot service.
func NewSnapshotService(snapshotRepo portsrepo.SnapshotRepositoryFacade, allocationRepo portsrepo.AllocationRepositoryFacade, transactionRepo portsrepo.TransactionRepositoryFacade) portssvc.SnapshotSvcFacade {
	return &snapshotService{
		snapshotRepo:    snapshotRepo,
		allocationRepo:  allocationRepo,
		transactionRepo: transactionRepo,
	}
}

var _ portssvc.SnapshotSvcFacade = (*snapshotService)(nil)

// GetSnapshot retrieves the persisted snapshot for a budget month.
func (s *snapshotService) GetSnapshot(ctx context.Context, userID string, month, year int) (*domain.BudgetSnapshot, error) {
	if _, err := domain.NewPeriod(month, year); err != nil {
		return nil, err
	}
	return s.snapshotRepo.FindSnapshot(ctx, userID, month, year)
}

// ListSnapshots retrieves the user's snapshots in chronological order.
func (s *snapshotService) ListSnapshots(ctx context.Context, userID string) ([]domain.BudgetSnapshot, error) {
	snapshots, err := s.snapshotRepo.ListSnapshots(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	return snapshots, nil
}

// previousSnapshot loads the prior month's snapshot, returning nil (not an
// error) when none was ever computed. A missing predecessor means a zero
// carry-in.
func (s *snapshotService) previousSnapshot(ctx context.Context, userID string, period domain.Period) (*domain.BudgetSnapshot, error) {
	prev := period.Previous()
	if prev.Year < domain.MinBudgetYear {
		return nil, nil
	}
	snapshot, err := s.snapshotRepo.FindSnapshot(ctx, userID, prev.Month, prev.Year)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load previous snapshot: %w", err)
	}
	return snapshot, nil
}

// RebuildSnapshot recomputes and persists one month's snapshot from the
// ledger and allocation store.
func (s *snapshotService) RebuildSnapshot(ctx context.Context, userID string, month, year int) (*domain.BudgetSnapshot, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	period, err := domain.NewPeriod(month, year)
	if err != nil {
		return nil, err
	}

	totalIncome, err := s.transactionRepo.SumIncomeForMonth(ctx, userID, month, year)
	if err != nil {
		return nil, fmt.Errorf("failed to sum income for %s: %w", period.String(), err)
	}

	totalAllocated, err := s.allocationRepo.SumActiveAllocationsForMonth(ctx, userID, month, year)
	if err != nil {
		return nil, fmt.Errorf("failed to sum allocations for %s: %w", period.String(), err)
	}

	prev, err := s.previousSnapshot(ctx, userID, period)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	snapshot := domain.BudgetSnapshot{
		SnapshotID:     uuid.NewString(),
		UserID:         userID,
		Month:          month,
		Year:           year,
		ReadyToAssign:  domain.CalculateReadyToAssign(prev, totalIncome, totalAllocated),
		TotalIncome:    totalIncome,
		TotalAllocated: totalAllocated,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.snapshotRepo.UpsertSnapshot(ctx, snapshot); err != nil {
		return nil, fmt.Errorf("failed to persist snapshot for %s: %w", period.String(), err)
	}

	logger.Info("Snapshot rebuilt",
		slog.String("period", period.String()),
		slog.String("ready_to_assign", snapshot.ReadyToAssign.String()),
	)
	return &snapshot, nil
}

// latestPeriodWithData finds the most recent month carrying any transaction,
// allocation or persisted snapshot for the user.
func (s *snapshotService) latestPeriodWithData(ctx context.Context, userID string) (*domain.Period, error) {
	var latest *domain.Period

	consider := func(p *domain.Period) {
		if p == nil {
			return
		}
		if latest == nil || p.After(*latest) {
			latest = p
		}
	}

	txnPeriod, err := s.transactionRepo.FindLatestTransactionPeriod(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to find latest transaction period: %w", err)
	}
	consider(txnPeriod)

	allocPeriod, err := s.allocationRepo.FindLatestAllocationPeriod(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to find latest allocation period: %w", err)
	}
	consider(allocPeriod)

	snapPeriod, err := s.snapshotRepo.FindLatestSnapshotPeriod(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to find latest snapshot period: %w", err)
	}
	consider(snapPeriod)

	return latest, nil
}

// RebuildFrom recomputes every month from the given one through the latest
// month carrying data, in chronological order. A historical edit only needs
// one call here to bring every downstream carry-in back in line.
func (s *snapshotService) RebuildFrom(ctx context.Context, userID string, month, year int) ([]domain.BudgetSnapshot, error) {
	start, err := domain.NewPeriod(month, year)
	if err != nil {
		return nil, err
	}

	end, err := s.latestPeriodWithData(ctx, userID)
	if err != nil {
		return nil, err
	}
	if end == nil || end.Before(start) {
		// Nothing downstream; rebuild just the requested month
		snapshot, err := s.RebuildSnapshot(ctx, userID, month, year)
		if err != nil {
			return nil, err
		}
		return []domain.BudgetSnapshot{*snapshot}, nil
	}

	var rebuilt []domain.BudgetSnapshot
	for p := start; !p.After(*end); p = p.Next() {
		snapshot, err := s.RebuildSnapshot(ctx, userID, p.Month, p.Year)
		if err != nil {
			return nil, err
		}
		rebuilt = append(rebuilt, *snapshot)
	}
	return rebuilt, nil
}
