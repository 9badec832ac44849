package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/finbuckets/envelope_budget_app/internal/apperrors"
	"github.com/finbuckets/envelope_budget_app/internal/core/domain"
	portsrepo "github.com/finbuckets/envelope_budget_app/internal/core/ports/repositories"
	"github.com/finbuckets/envelope_budget_app/internal/models"
	"github.com/finbuckets/envelope_budget_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const snapshotColumns = `snapshot_id, user_id, month, year, ready_to_assign, total_income, total_allocated, created_at, created_by, last_updated_at, last_updated_by`

type PgxSnapshotRepository struct {
	pool *pgxpool.Pool
}

// newPgxSnapshotRepository creates a new repository for budget snapshot data.
func newPgxSnapshotRepository(pool *pgxpool.Pool) portsrepo.SnapshotRepositoryFacade {
	return &PgxSnapshotRepository{pool: pool}
}

var _ portsrepo.SnapshotRepositoryFacade = (*PgxSnapshotRepository)(nil)

func scanSnapshot(row pgx.Row) (*models.BudgetSnapshot, error) {
	var m models.BudgetSnapshot
	err := row.Scan(
		&m.SnapshotID,
		&m.UserID,
		&m.Month,
		&m.Year,
		&m.ReadyToAssign,
		&m.TotalIncome,
		&m.TotalAllocated,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// UpsertSnapshot inserts or replaces the snapshot keyed by
// (user_id, month, year). Rebuilds overwrite the derived figures but keep the
// original snapshot_id and created_at.
func (r *PgxSnapshotRepository) UpsertSnapshot(ctx context.Context, snapshot domain.BudgetSnapshot) error {
	m := mapping.ToModelSnapshot(snapshot)

	query := `
		INSERT INTO budget_snapshots (` + snapshotColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (user_id, month, year) DO UPDATE
		SET ready_to_assign = EXCLUDED.ready_to_assign,
		    total_income = EXCLUDED.total_income,
		    total_allocated = EXCLUDED.total_allocated,
		    last_updated_at = EXCLUDED.last_updated_at,
		    last_updated_by = EXCLUDED.last_updated_by;
	`
	_, err := r.pool.Exec(ctx, query,
		m.SnapshotID,
		m.UserID,
		m.Month,
		m.Year,
		m.ReadyToAssign,
		m.TotalIncome,
		m.TotalAllocated,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert snapshot for user %s %04d-%02d: %w", m.UserID, m.Year, m.Month, err)
	}
	return nil
}

// FindSnapshot retrieves the snapshot for a user's (month, year).
func (r *PgxSnapshotRepository) FindSnapshot(ctx context.Context, userID string, month, year int) (*domain.BudgetSnapshot, error) {
	query := `
		SELECT ` + snapshotColumns + `
		FROM budget_snapshots
		WHERE user_id = $1 AND month = $2 AND year = $3;
	`
	m, err := scanSnapshot(r.pool.QueryRow(ctx, query, userID, month, year))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find snapshot for user %s %04d-%02d: %w", userID, year, month, err)
	}
	d := mapping.ToDomainSnapshot(*m)
	return &d, nil
}

// ListSnapshots retrieves a user's snapshots in chronological order.
func (r *PgxSnapshotRepository) ListSnapshots(ctx context.Context, userID string) ([]domain.BudgetSnapshot, error) {
	query := `
		SELECT ` + snapshotColumns + `
		FROM budget_snapshots
		WHERE user_id = $1
		ORDER BY year, month;
	`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshots for user %s: %w", userID, err)
	}
	defer rows.Close()

	snapshots := []domain.BudgetSnapshot{}
	for rows.Next() {
		m, err := scanSnapshot(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan snapshot row: %w", err)
		}
		snapshots = append(snapshots, mapping.ToDomainSnapshot(*m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating snapshot rows: %w", rows.Err())
	}
	return snapshots, nil
}

// FindLatestSnapshotPeriod returns the most recent (month, year) with a
// persisted snapshot for the user, or nil when none exists.
func (r *PgxSnapshotRepository) FindLatestSnapshotPeriod(ctx context.Context, userID string) (*domain.Period, error) {
	query := `
		SELECT month, year
		FROM budget_snapshots
		WHERE user_id = $1
		ORDER BY year DESC, month DESC
		LIMIT 1;
	`
	var p domain.Period
	err := r.pool.QueryRow(ctx, query, userID).Scan(&p.Month, &p.Year)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find latest snapshot period for user %s: %w", userID, err)
	}
	return &p, nil
}
