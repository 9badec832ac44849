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
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const allocationColumns = `allocation_id, category_id, month, year, budgeted_amount, is_active, editor_name, edited_memo, old_amount, percentage_allocation, created_at, created_by, last_updated_at, last_updated_by`

type PgxAllocationRepository struct {
	pool *pgxpool.Pool
}

// newPgxAllocationRepository creates a new repository for allocation data.
func newPgxAllocationRepository(pool *pgxpool.Pool) portsrepo.AllocationRepositoryFacade {
	return &PgxAllocationRepository{pool: pool}
}

var _ portsrepo.AllocationRepositoryFacade = (*PgxAllocationRepository)(nil)

func scanAllocation(row pgx.Row) (*models.CategoryAllocation, error) {
	var m models.CategoryAllocation
	err := row.Scan(
		&m.AllocationID,
		&m.CategoryID,
		&m.Month,
		&m.Year,
		&m.BudgetedAmount,
		&m.IsActive,
		&m.EditorName,
		&m.EditedMemo,
		&m.OldAmount,
		&m.PercentageAllocation,
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

// SaveAllocation inserts a new allocation. The partial unique index on
// (category_id, month, year) WHERE is_active surfaces a second active
// allocation for the same key as ErrDuplicate.
func (r *PgxAllocationRepository) SaveAllocation(ctx context.Context, allocation domain.CategoryAllocation) error {
	m := mapping.ToModelAllocation(allocation)

	query := `
		INSERT INTO category_allocations (` + allocationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err := r.pool.Exec(ctx, query,
		m.AllocationID,
		m.CategoryID,
		m.Month,
		m.Year,
		m.BudgetedAmount,
		m.IsActive,
		m.EditorName,
		m.EditedMemo,
		m.OldAmount,
		m.PercentageAllocation,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique violation
			return fmt.Errorf("%w: active allocation for category %s in %04d-%02d already exists", apperrors.ErrDuplicate, m.CategoryID, m.Year, m.Month)
		}
		return fmt.Errorf("failed to save allocation %s: %w", m.AllocationID, err)
	}
	return nil
}

// FindAllocationByID retrieves an allocation by its ID.
func (r *PgxAllocationRepository) FindAllocationByID(ctx context.Context, allocationID string) (*domain.CategoryAllocation, error) {
	query := `SELECT ` + allocationColumns + ` FROM category_allocations WHERE allocation_id = $1;`

	m, err := scanAllocation(r.pool.QueryRow(ctx, query, allocationID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find allocation by ID %s: %w", allocationID, err)
	}
	d := mapping.ToDomainAllocation(*m)
	return &d, nil
}

// FindActiveAllocation resolves the single active allocation for a
// (category, month, year) key.
func (r *PgxAllocationRepository) FindActiveAllocation(ctx context.Context, categoryID string, month, year int) (*domain.CategoryAllocation, error) {
	query := `
		SELECT ` + allocationColumns + `
		FROM category_allocations
		WHERE category_id = $1 AND month = $2 AND year = $3 AND is_active = TRUE;
	`
	m, err := scanAllocation(r.pool.QueryRow(ctx, query, categoryID, month, year))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find active allocation for category %s %04d-%02d: %w", categoryID, year, month, err)
	}
	d := mapping.ToDomainAllocation(*m)
	return &d, nil
}

// ListAllocationsByCategory retrieves a category's allocations newest period first.
func (r *PgxAllocationRepository) ListAllocationsByCategory(ctx context.Context, categoryID string) ([]domain.CategoryAllocation, error) {
	query := `
		SELECT ` + allocationColumns + `
		FROM category_allocations
		WHERE category_id = $1
		ORDER BY year DESC, month DESC, created_at DESC;
	`
	rows, err := r.pool.Query(ctx, query, categoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to query allocations for category %s: %w", categoryID, err)
	}
	defer rows.Close()

	return collectAllocations(rows)
}

// ListActiveAllocationsForMonth retrieves all active allocations for a
// user's categories in the given month.
func (r *PgxAllocationRepository) ListActiveAllocationsForMonth(ctx context.Context, userID string, month, year int) ([]domain.CategoryAllocation, error) {
	query := `
		SELECT a.allocation_id, a.category_id, a.month, a.year, a.budgeted_amount, a.is_active, a.editor_name, a.edited_memo, a.old_amount, a.percentage_allocation, a.created_at, a.created_by, a.last_updated_at, a.last_updated_by
		FROM category_allocations a
		JOIN categories c ON c.category_id = a.category_id
		WHERE c.user_id = $1 AND a.month = $2 AND a.year = $3 AND a.is_active = TRUE
		ORDER BY c.name;
	`
	rows, err := r.pool.Query(ctx, query, userID, month, year)
	if err != nil {
		return nil, fmt.Errorf("failed to query allocations for user %s %04d-%02d: %w", userID, year, month, err)
	}
	defer rows.Close()

	return collectAllocations(rows)
}

func collectAllocations(rows pgx.Rows) ([]domain.CategoryAllocation, error) {
	allocations := []domain.CategoryAllocation{}
	for rows.Next() {
		m, err := scanAllocation(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan allocation row: %w", err)
		}
		allocations = append(allocations, mapping.ToDomainAllocation(*m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating allocation rows: %w", rows.Err())
	}
	return allocations, nil
}

// SumActiveAllocationsForMonth totals a user's active budgeted amounts for a month.
func (r *PgxAllocationRepository) SumActiveAllocationsForMonth(ctx context.Context, userID string, month, year int) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(a.budgeted_amount), 0)
		FROM category_allocations a
		JOIN categories c ON c.category_id = a.category_id
		WHERE c.user_id = $1 AND a.month = $2 AND a.year = $3 AND a.is_active = TRUE;
	`
	var sum decimal.Decimal
	if err := r.pool.QueryRow(ctx, query, userID, month, year).Scan(&sum); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum allocations for user %s %04d-%02d: %w", userID, year, month, err)
	}
	return sum, nil
}

// FindLatestAllocationPeriod returns the most recent (month, year) with any
// active allocation for the user, or nil when none exists.
func (r *PgxAllocationRepository) FindLatestAllocationPeriod(ctx context.Context, userID string) (*domain.Period, error) {
	query := `
		SELECT a.month, a.year
		FROM category_allocations a
		JOIN categories c ON c.category_id = a.category_id
		WHERE c.user_id = $1 AND a.is_active = TRUE
		ORDER BY a.year DESC, a.month DESC
		LIMIT 1;
	`
	var p domain.Period
	err := r.pool.QueryRow(ctx, query, userID).Scan(&p.Month, &p.Year)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find latest allocation period for user %s: %w", userID, err)
	}
	return &p, nil
}

// UpdateAllocation revises an existing allocation in place. Identity columns
// (category_id, month, year) are never touched.
func (r *PgxAllocationRepository) UpdateAllocation(ctx context.Context, allocation domain.CategoryAllocation) error {
	m := mapping.ToModelAllocation(allocation)

	query := `
		UPDATE category_allocations
		SET budgeted_amount = $2, is_active = $3, editor_name = $4, edited_memo = $5, old_amount = $6, percentage_allocation = $7, last_updated_at = $8, last_updated_by = $9
		WHERE allocation_id = $1;
	`
	cmdTag, err := r.pool.Exec(ctx, query,
		m.AllocationID,
		m.BudgetedAmount,
		m.IsActive,
		m.EditorName,
		m.EditedMemo,
		m.OldAmount,
		m.PercentageAllocation,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique violation on reactivation
			return fmt.Errorf("%w: active allocation for category %s in %04d-%02d already exists", apperrors.ErrDuplicate, m.CategoryID, m.Year, m.Month)
		}
		return fmt.Errorf("failed to update allocation %s: %w", m.AllocationID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
