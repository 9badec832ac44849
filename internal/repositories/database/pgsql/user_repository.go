package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strings"
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

const userColumns = `user_id, name, email, password_hash, auth_provider, provider_user_id, email_verified, is_active, refresh_token_hash, refresh_token_expires_at, created_at, created_by, last_updated_at, last_updated_by`

type PgxUserRepository struct {
	pool *pgxpool.Pool
}

// newPgxUserRepository creates a new repository for user data.
func newPgxUserRepository(pool *pgxpool.Pool) portsrepo.UserRepositoryFacade {
	return &PgxUserRepository{pool: pool}
}

var _ portsrepo.UserRepositoryFacade = (*PgxUserRepository)(nil)

// scanUser scans one user row into a model.
func scanUser(row pgx.Row) (*models.User, error) {
	var m models.User
	err := row.Scan(
		&m.UserID,
		&m.Name,
		&m.Email,
		&m.PasswordHash,
		&m.AuthProvider,
		&m.ProviderUserID,
		&m.EmailVerified,
		&m.IsActive,
		&m.RefreshTokenHash,
		&m.RefreshTokenExpiresAt,
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

// SaveUser inserts a new user. A duplicate email surfaces as ErrDuplicate.
func (r *PgxUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	m := mapping.ToModelUser(user)

	query := `
		INSERT INTO users (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err := r.pool.Exec(ctx, query,
		m.UserID,
		m.Name,
		m.Email,
		m.PasswordHash,
		m.AuthProvider,
		m.ProviderUserID,
		m.EmailVerified,
		m.IsActive,
		m.RefreshTokenHash,
		m.RefreshTokenExpiresAt,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique violation
			return fmt.Errorf("%w: user with email %s already exists", apperrors.ErrDuplicate, m.Email)
		}
		return fmt.Errorf("failed to save user %s: %w", m.UserID, err)
	}
	return nil
}

// FindUserByID retrieves a user by ID.
func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE user_id = $1;`

	m, err := scanUser(r.pool.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user by ID %s: %w", userID, err)
	}
	d := mapping.ToDomainUser(*m)
	return &d, nil
}

// FindUserByEmail retrieves a user by email (case-insensitive).
func (r *PgxUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1;`

	m, err := scanUser(r.pool.QueryRow(ctx, query, strings.ToLower(email)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}
	d := mapping.ToDomainUser(*m)
	return &d, nil
}

// FindUserByProvider retrieves a user by external auth provider identity.
func (r *PgxUserRepository) FindUserByProvider(ctx context.Context, provider string, providerUserID string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE auth_provider = $1 AND provider_user_id = $2;`

	m, err := scanUser(r.pool.QueryRow(ctx, query, provider, providerUserID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user by provider %s: %w", provider, err)
	}
	d := mapping.ToDomainUser(*m)
	return &d, nil
}

// FindUserByRefreshTokenHash retrieves the user holding the hashed refresh token.
func (r *PgxUserRepository) FindUserByRefreshTokenHash(ctx context.Context, tokenHash string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE refresh_token_hash = $1 AND refresh_token_hash <> '';`

	m, err := scanUser(r.pool.QueryRow(ctx, query, tokenHash))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user by refresh token: %w", err)
	}
	d := mapping.ToDomainUser(*m)
	return &d, nil
}

// ListUsers retrieves a paginated list of active users.
func (r *PgxUserRepository) ListUsers(ctx context.Context, limit int, offset int) ([]domain.User, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE is_active = TRUE
		ORDER BY created_at
		LIMIT $1 OFFSET $2;
	`
	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	users := []domain.User{}
	for rows.Next() {
		m, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user row: %w", err)
		}
		users = append(users, mapping.ToDomainUser(*m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating user rows: %w", rows.Err())
	}
	return users, nil
}

// UpdateUser updates mutable user fields.
func (r *PgxUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	m := mapping.ToModelUser(user)

	query := `
		UPDATE users
		SET name = $2, email = $3, email_verified = $4, is_active = $5, last_updated_at = $6, last_updated_by = $7
		WHERE user_id = $1;
	`
	cmdTag, err := r.pool.Exec(ctx, query,
		m.UserID,
		m.Name,
		m.Email,
		m.EmailVerified,
		m.IsActive,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update user %s: %w", m.UserID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// UpdateRefreshToken stores the hashed refresh token and its expiry. An empty
// hash clears the token (logout).
func (r *PgxUserRepository) UpdateRefreshToken(ctx context.Context, userID string, tokenHash string, expiresAt *time.Time) error {
	query := `
		UPDATE users
		SET refresh_token_hash = $2, refresh_token_expires_at = $3, last_updated_at = $4
		WHERE user_id = $1;
	`
	cmdTag, err := r.pool.Exec(ctx, query, userID, tokenHash, expiresAt, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to update refresh token for user %s: %w", userID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeactivateUser marks a user inactive and clears their refresh token.
func (r *PgxUserRepository) DeactivateUser(ctx context.Context, userID string, deletedBy string, now time.Time) error {
	query := `
		UPDATE users
		SET is_active = FALSE, refresh_token_hash = '', refresh_token_expires_at = NULL, last_updated_at = $2, last_updated_by = $3
		WHERE user_id = $1;
	`
	cmdTag, err := r.pool.Exec(ctx, query, userID, now, deletedBy)
	if err != nil {
		return fmt.Errorf("failed to deactivate user %s: %w", userID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
