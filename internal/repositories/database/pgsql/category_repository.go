package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/finbuckets/envelope_budget_app/internal/apperrors"
	"github.com/finbuckets/envelope_budget_app/internal/core/domain"
	portsrepo "github.com/finbuckets/envelope_budget_app/internal/core/ports/repositories"
	"github.com/finbuckets/envelope_budget_app/internal/models"
	"github.com/finbuckets/envelope_budget_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const categoryColumns = `category_id, user_id, name, color, is_income, is_active, created_at, created_by, last_updated_at, last_updated_by`

type PgxCategoryRepository struct {
	pool *pgxpool.Pool
}

// newPgxCategoryRepository creates a new repository for category data.
func newPgxCategoryRepository(pool *pgxpool.Pool) portsrepo.CategoryRepositoryFacade {
	return &PgxCategoryRepository{pool: pool}
}

var _ portsrepo.CategoryRepositoryFacade = (*PgxCategoryRepository)(nil)

func scanCategory(row pgx.Row) (*models.Category, error) {
	var m models.Category
	err := row.Scan(
		&m.CategoryID,
		&m.UserID,
		&m.Name,
		&m.Color,
		&m.IsIncome,
		&m.IsActive,
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

// SaveCategory inserts a new category.
func (r *PgxCategoryRepository) SaveCategory(ctx context.Context, category domain.Category) error {
	m := mapping.ToModelCategory(category)

	query := `
		INSERT INTO categories (` + categoryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.pool.Exec(ctx, query,
		m.CategoryID,
		m.UserID,
		m.Name,
		m.Color,
		m.IsIncome,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique violation
			return fmt.Errorf("%w: category with ID %s already exists", apperrors.ErrDuplicate, m.CategoryID)
		}
		return fmt.Errorf("failed to save category %s: %w", m.CategoryID, err)
	}
	return nil
}

// FindCategoryByID retrieves a category by its ID.
func (r *PgxCategoryRepository) FindCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE category_id = $1;`

	m, err := scanCategory(r.pool.QueryRow(ctx, query, categoryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find category by ID %s: %w", categoryID, err)
	}
	d := mapping.ToDomainCategory(*m)
	return &d, nil
}

// ListCategoriesByUser retrieves a user's categories ordered by name.
func (r *PgxCategoryRepository) ListCategoriesByUser(ctx context.Context, userID string, includeInactive bool) ([]domain.Category, error) {
	query := `
		SELECT ` + categoryColumns + `
		FROM categories
		WHERE user_id = $1 AND (is_active = TRUE OR $2)
		ORDER BY name;
	`
	rows, err := r.pool.Query(ctx, query, userID, includeInactive)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories for user %s: %w", userID, err)
	}
	defer rows.Close()

	categories := []domain.Category{}
	for rows.Next() {
		m, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan category row: %w", err)
		}
		categories = append(categories, mapping.ToDomainCategory(*m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating category rows: %w", rows.Err())
	}
	return categories, nil
}

// UpdateCategory updates mutable category fields.
func (r *PgxCategoryRepository) UpdateCategory(ctx context.Context, category domain.Category) error {
	m := mapping.ToModelCategory(category)

	query := `
		UPDATE categories
		SET name = $2, color = $3, is_active = $4, last_updated_at = $5, last_updated_by = $6
		WHERE category_id = $1;
	`
	cmdTag, err := r.pool.Exec(ctx, query,
		m.CategoryID,
		m.Name,
		m.Color,
		m.IsActive,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update category %s: %w", m.CategoryID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeactivateCategory soft-deletes a category.
func (r *PgxCategoryRepository) DeactivateCategory(ctx context.Context, categoryID string, userID string, now time.Time) error {
	query := `
		UPDATE categories
		SET is_active = FALSE, last_updated_at = $2, last_updated_by = $3
		WHERE category_id = $1;
	`
	cmdTag, err := r.pool.Exec(ctx, query, categoryID, now, userID)
	if err != nil {
		return fmt.Errorf("failed to deactivate category %s: %w", categoryID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
