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
	"github.com/shopspring/decimal"
)

const accountColumns = `account_id, user_id, name, account_type, balance, is_active, created_at, created_by, last_updated_at, last_updated_by`

type PgxAccountRepository struct {
	pool *pgxpool.Pool
}

// newPgxAccountRepository creates a new repository for account data.
func newPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepositoryFacade {
	return &PgxAccountRepository{pool: pool}
}

var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

func scanAccount(row pgx.Row) (*models.Account, error) {
	var m models.Account
	err := row.Scan(
		&m.AccountID,
		&m.UserID,
		&m.Name,
		&m.AccountType,
		&m.Balance,
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

// SaveAccount inserts a new account.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)

	query := `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.pool.Exec(ctx, query,
		m.AccountID,
		m.UserID,
		m.Name,
		m.AccountType,
		m.Balance,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique violation
			return fmt.Errorf("%w: account with ID %s already exists", apperrors.ErrDuplicate, m.AccountID)
		}
		return fmt.Errorf("failed to save account %s: %w", m.AccountID, err)
	}
	return nil
}

// FindAccountByID retrieves an account by its ID.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = $1;`

	m, err := scanAccount(r.pool.QueryRow(ctx, query, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find account by ID %s: %w", accountID, err)
	}
	d := mapping.ToDomainAccount(*m)
	return &d, nil
}

// ListAccountsByUser retrieves a paginated list of a user's active accounts.
func (r *PgxAccountRepository) ListAccountsByUser(ctx context.Context, userID string, limit int, offset int) ([]domain.Account, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE is_active = TRUE AND user_id = $1
		ORDER BY name
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.pool.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts for user %s: %w", userID, err)
	}
	defer rows.Close()

	accounts := []domain.Account{}
	for rows.Next() {
		m, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row: %w", err)
		}
		accounts = append(accounts, mapping.ToDomainAccount(*m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating account rows: %w", rows.Err())
	}
	return accounts, nil
}

// SumTransactionAmounts recomputes an account's balance from the ledger.
func (r *PgxAccountRepository) SumTransactionAmounts(ctx context.Context, accountID string) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM transactions
		WHERE account_id = $1;
	`
	var sum decimal.Decimal
	if err := r.pool.QueryRow(ctx, query, accountID).Scan(&sum); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum transactions for account %s: %w", accountID, err)
	}
	return sum, nil
}

// UpdateAccount updates mutable account fields.
func (r *PgxAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)

	query := `
		UPDATE accounts
		SET name = $2, is_active = $3, last_updated_at = $4, last_updated_by = $5
		WHERE account_id = $1;
	`
	cmdTag, err := r.pool.Exec(ctx, query,
		m.AccountID,
		m.Name,
		m.IsActive,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update account %s: %w", m.AccountID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeactivateAccount marks an account as inactive.
func (r *PgxAccountRepository) DeactivateAccount(ctx context.Context, accountID string, userID string, now time.Time) error {
	query := `
		UPDATE accounts
		SET is_active = FALSE, last_updated_at = $2, last_updated_by = $3
		WHERE account_id = $1;
	`
	cmdTag, err := r.pool.Exec(ctx, query, accountID, now, userID)
	if err != nil {
		return fmt.Errorf("failed to deactivate account %s: %w", accountID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// SetAccountBalance overwrites the cached balance. Used by the recalculation
// path only; ledger writes adjust the balance in their own transaction.
func (r *PgxAccountRepository) SetAccountBalance(ctx context.Context, accountID string, balance decimal.Decimal, userID string, now time.Time) error {
	query := `
		UPDATE accounts
		SET balance = $2, last_updated_at = $3, last_updated_by = $4
		WHERE account_id = $1;
	`
	cmdTag, err := r.pool.Exec(ctx, query, accountID, balance, now, userID)
	if err != nil {
		return fmt.Errorf("failed to set balance for account %s: %w", accountID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindAccountByIDForUpdate retrieves an account and locks its row. Must be
// called within a transaction.
func (r *PgxAccountRepository) FindAccountByIDForUpdate(ctx context.Context, tx pgx.Tx, accountID string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = $1 FOR UPDATE;`

	m, err := scanAccount(tx.QueryRow(ctx, query, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to lock account %s: %w", accountID, err)
	}
	d := mapping.ToDomainAccount(*m)
	return &d, nil
}

// AdjustAccountBalanceInTx applies a signed delta to the cached balance
// within the supplied transaction. The caller must hold the row lock.
func (r *PgxAccountRepository) AdjustAccountBalanceInTx(ctx context.Context, tx pgx.Tx, accountID string, delta decimal.Decimal, userID string, now time.Time) error {
	query := `
		UPDATE accounts
		SET balance = balance + $2, last_updated_at = $3, last_updated_by = $4
		WHERE account_id = $1;
	`
	cmdTag, err := tx.Exec(ctx, query, accountID, delta, now, userID)
	if err != nil {
		return fmt.Errorf("failed to adjust balance for account %s: %w", accountID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
