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
	"github.com/finbuckets/envelope_budget_app/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const transactionColumns = `transaction_id, account_id, payee, amount, transaction_date, is_reconciled, created_at, created_by, last_updated_at, last_updated_by`

const splitColumns = `split_id, transaction_id, allocation_id, amount, is_income, notes, created_at, created_by, last_updated_at, last_updated_by`

type PgxTransactionRepository struct {
	BaseRepository
	accountRepo portsrepo.AccountRepositoryFacade
}

// newPgxTransactionRepository creates a new repository for ledger data. The
// account repository is injected for in-transaction balance maintenance.
func newPgxTransactionRepository(pool *pgxpool.Pool, accountRepo portsrepo.AccountRepositoryFacade) portsrepo.TransactionRepositoryFacade {
	return &PgxTransactionRepository{
		BaseRepository: BaseRepository{Pool: pool},
		accountRepo:    accountRepo,
	}
}

var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

func scanTransaction(row pgx.Row) (*models.Transaction, error) {
	var m models.Transaction
	err := row.Scan(
		&m.TransactionID,
		&m.AccountID,
		&m.Payee,
		&m.Amount,
		&m.TransactionDate,
		&m.IsReconciled,
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

func scanSplit(row pgx.Row) (*models.TransactionSplit, error) {
	var m models.TransactionSplit
	err := row.Scan(
		&m.SplitID,
		&m.TransactionID,
		&m.AllocationID,
		&m.Amount,
		&m.IsIncome,
		&m.Notes,
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

// FindTransactionByID retrieves a transaction without its splits.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE transaction_id = $1;`

	m, err := scanTransaction(r.Pool.QueryRow(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find transaction by ID %s: %w", transactionID, err)
	}
	d := mapping.ToDomainTransaction(*m)
	return &d, nil
}

// ListTransactionsByAccount retrieves a page of an account's transactions,
// newest first, keyed by (transaction_date, created_at).
func (r *PgxTransactionRepository) ListTransactionsByAccount(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	if limit <= 0 {
		limit = 20
	}

	args := []any{accountID, limit + 1}
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE account_id = $1
	`
	if nextToken != nil && *nextToken != "" {
		txnDate, createdAt, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		query += ` AND (transaction_date, created_at) < ($3, $4)`
		args = append(args, txnDate, createdAt)
	}
	query += `
		ORDER BY transaction_date DESC, created_at DESC
		LIMIT $2;
	`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query transactions for account %s: %w", accountID, err)
	}
	defer rows.Close()

	txns := []domain.Transaction{}
	for rows.Next() {
		m, err := scanTransaction(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		txns = append(txns, mapping.ToDomainTransaction(*m))
	}
	if rows.Err() != nil {
		return nil, nil, fmt.Errorf("error iterating transaction rows: %w", rows.Err())
	}

	var newToken *string
	if len(txns) > limit {
		txns = txns[:limit]
		last := txns[limit-1]
		token := pagination.EncodeToken(last.TransactionDate, last.CreatedAt)
		newToken = &token
	}
	return txns, newToken, nil
}

// SaveTransactionWithSplits persists a transaction, its splits, and the
// owning account's cached balance adjustment in one database transaction.
func (r *PgxTransactionRepository) SaveTransactionWithSplits(ctx context.Context, txn domain.Transaction, splits []domain.TransactionSplit) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) // No-op once committed

	now := txn.CreatedAt
	userID := txn.CreatedBy

	// 1. Lock the account row before touching the balance
	if _, err := r.accountRepo.FindAccountByIDForUpdate(ctx, tx, txn.AccountID); err != nil {
		return fmt.Errorf("failed to lock account %s: %w", txn.AccountID, err)
	}

	// 2. Insert the transaction
	m := mapping.ToModelTransaction(txn)
	txnQuery := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err = tx.Exec(ctx, txnQuery,
		m.TransactionID,
		m.AccountID,
		m.Payee,
		m.Amount,
		m.TransactionDate,
		m.IsReconciled,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: transaction %s already exists", apperrors.ErrDuplicate, m.TransactionID)
		}
		return fmt.Errorf("failed to insert transaction %s: %w", m.TransactionID, err)
	}

	// 3. Batch insert the splits
	batch := &pgx.Batch{}
	splitQuery := `
		INSERT INTO transaction_splits (` + splitColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	for _, split := range splits {
		ms := mapping.ToModelSplit(split)
		batch.Queue(splitQuery,
			ms.SplitID,
			ms.TransactionID,
			ms.AllocationID,
			ms.Amount,
			ms.IsIncome,
			ms.Notes,
			ms.CreatedAt,
			ms.CreatedBy,
			ms.LastUpdatedAt,
			ms.LastUpdatedBy,
		)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to insert splits for transaction %s: %w", m.TransactionID, err)
	}

	// 4. Apply the signed amount to the cached account balance
	if err := r.accountRepo.AdjustAccountBalanceInTx(ctx, tx, txn.AccountID, txn.Amount, userID, now); err != nil {
		return fmt.Errorf("failed to adjust balance for account %s: %w", txn.AccountID, err)
	}

	return r.Commit(ctx, tx)
}

// UpdateTransaction updates mutable transaction fields, applying balanceDelta
// to the cached account balance in the same unit of work.
func (r *PgxTransactionRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction, balanceDelta decimal.Decimal) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelTransaction(txn)
	query := `
		UPDATE transactions
		SET payee = $2, amount = $3, transaction_date = $4, is_reconciled = $5, last_updated_at = $6, last_updated_by = $7
		WHERE transaction_id = $1;
	`
	cmdTag, err := tx.Exec(ctx, query,
		m.TransactionID,
		m.Payee,
		m.Amount,
		m.TransactionDate,
		m.IsReconciled,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update transaction %s: %w", m.TransactionID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	if !balanceDelta.IsZero() {
		if _, err := r.accountRepo.FindAccountByIDForUpdate(ctx, tx, txn.AccountID); err != nil {
			return fmt.Errorf("failed to lock account %s: %w", txn.AccountID, err)
		}
		if err := r.accountRepo.AdjustAccountBalanceInTx(ctx, tx, txn.AccountID, balanceDelta, txn.LastUpdatedBy, txn.LastUpdatedAt); err != nil {
			return fmt.Errorf("failed to adjust balance for account %s: %w", txn.AccountID, err)
		}
	}

	return r.Commit(ctx, tx)
}

// DeleteTransaction removes a transaction and reverses its balance effect.
// The FK from transaction_splits carries ON DELETE CASCADE, so splits go
// with it.
func (r *PgxTransactionRepository) DeleteTransaction(ctx context.Context, transactionID string, deletedBy string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	// Fetch amount and account while holding the row
	var accountID string
	var amount decimal.Decimal
	selectQuery := `SELECT account_id, amount FROM transactions WHERE transaction_id = $1 FOR UPDATE;`
	if err := tx.QueryRow(ctx, selectQuery, transactionID).Scan(&accountID, &amount); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("failed to load transaction %s for delete: %w", transactionID, err)
	}

	if _, err := r.accountRepo.FindAccountByIDForUpdate(ctx, tx, accountID); err != nil {
		return fmt.Errorf("failed to lock account %s: %w", accountID, err)
	}

	deleteQuery := `DELETE FROM transactions WHERE transaction_id = $1;`
	if _, err := tx.Exec(ctx, deleteQuery, transactionID); err != nil {
		return fmt.Errorf("failed to delete transaction %s: %w", transactionID, err)
	}

	if err := r.accountRepo.AdjustAccountBalanceInTx(ctx, tx, accountID, amount.Neg(), deletedBy, time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to reverse balance for account %s: %w", accountID, err)
	}

	return r.Commit(ctx, tx)
}

// FindSplitByID retrieves a split by its ID.
func (r *PgxTransactionRepository) FindSplitByID(ctx context.Context, splitID string) (*domain.TransactionSplit, error) {
	query := `SELECT ` + splitColumns + ` FROM transaction_splits WHERE split_id = $1;`

	m, err := scanSplit(r.Pool.QueryRow(ctx, query, splitID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find split by ID %s: %w", splitID, err)
	}
	d := mapping.ToDomainSplit(*m)
	return &d, nil
}

// FindSplitsByTransactionID retrieves all splits of one transaction.
func (r *PgxTransactionRepository) FindSplitsByTransactionID(ctx context.Context, transactionID string) ([]domain.TransactionSplit, error) {
	query := `
		SELECT ` + splitColumns + `
		FROM transaction_splits
		WHERE transaction_id = $1
		ORDER BY created_at;
	`
	rows, err := r.Pool.Query(ctx, query, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query splits for transaction %s: %w", transactionID, err)
	}
	defer rows.Close()

	return collectSplits(rows)
}

func collectSplits(rows pgx.Rows) ([]domain.TransactionSplit, error) {
	splits := []domain.TransactionSplit{}
	for rows.Next() {
		m, err := scanSplit(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan split row: %w", err)
		}
		splits = append(splits, mapping.ToDomainSplit(*m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating split rows: %w", rows.Err())
	}
	return splits, nil
}

// splitWithDateColumns joins the parent transaction for date ordering.
const splitWithDateColumns = `s.split_id, s.transaction_id, s.allocation_id, s.amount, s.is_income, s.notes, t.transaction_date, s.created_at, s.created_by, s.last_updated_at, s.last_updated_by`

func scanSplitWithDate(row pgx.Row) (*models.TransactionSplit, error) {
	var m models.TransactionSplit
	err := row.Scan(
		&m.SplitID,
		&m.TransactionID,
		&m.AllocationID,
		&m.Amount,
		&m.IsIncome,
		&m.Notes,
		&m.TransactionDate,
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

// ListSplitsByAllocation retrieves a page of splits referencing an
// allocation, newest parent transaction first.
func (r *PgxTransactionRepository) ListSplitsByAllocation(ctx context.Context, allocationID string, limit int, nextToken *string) ([]domain.TransactionSplit, *string, error) {
	if limit <= 0 {
		limit = 20
	}

	args := []any{allocationID, limit + 1}
	query := `
		SELECT ` + splitWithDateColumns + `
		FROM transaction_splits s
		JOIN transactions t ON t.transaction_id = s.transaction_id
		WHERE s.allocation_id = $1
	`
	if nextToken != nil && *nextToken != "" {
		txnDate, createdAt, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		query += ` AND (t.transaction_date, s.created_at) < ($3, $4)`
		args = append(args, txnDate, createdAt)
	}
	query += `
		ORDER BY t.transaction_date DESC, s.created_at DESC
		LIMIT $2;
	`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query splits for allocation %s: %w", allocationID, err)
	}
	defer rows.Close()

	splits := []domain.TransactionSplit{}
	for rows.Next() {
		m, err := scanSplitWithDate(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan split row: %w", err)
		}
		splits = append(splits, mapping.ToDomainSplit(*m))
	}
	if rows.Err() != nil {
		return nil, nil, fmt.Errorf("error iterating split rows: %w", rows.Err())
	}

	var newToken *string
	if len(splits) > limit {
		splits = splits[:limit]
		last := splits[limit-1]
		token := pagination.EncodeToken(last.TransactionDate, last.CreatedAt)
		newToken = &token
	}
	return splits, newToken, nil
}

// ListSplitsByMonth retrieves a user's splits whose parent transaction falls
// inside the given calendar month.
func (r *PgxTransactionRepository) ListSplitsByMonth(ctx context.Context, userID string, month, year int) ([]domain.TransactionSplit, error) {
	period := domain.Period{Month: month, Year: year}
	query := `
		SELECT ` + splitWithDateColumns + `
		FROM transaction_splits s
		JOIN transactions t ON t.transaction_id = s.transaction_id
		JOIN accounts a ON a.account_id = t.account_id
		WHERE a.user_id = $1 AND t.transaction_date >= $2 AND t.transaction_date < $3
		ORDER BY t.transaction_date, s.created_at;
	`
	rows, err := r.Pool.Query(ctx, query, userID, period.Start(), period.End())
	if err != nil {
		return nil, fmt.Errorf("failed to query splits for %s: %w", period.String(), err)
	}
	defer rows.Close()

	splits := []domain.TransactionSplit{}
	for rows.Next() {
		m, err := scanSplitWithDate(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan split row: %w", err)
		}
		splits = append(splits, mapping.ToDomainSplit(*m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating split rows: %w", rows.Err())
	}
	return splits, nil
}

// SumIncomeForMonth totals a user's income-flagged split amounts for a month.
func (r *PgxTransactionRepository) SumIncomeForMonth(ctx context.Context, userID string, month, year int) (decimal.Decimal, error) {
	period := domain.Period{Month: month, Year: year}
	query := `
		SELECT COALESCE(SUM(s.amount), 0)
		FROM transaction_splits s
		JOIN transactions t ON t.transaction_id = s.transaction_id
		JOIN accounts a ON a.account_id = t.account_id
		WHERE a.user_id = $1 AND s.is_income = TRUE AND t.transaction_date >= $2 AND t.transaction_date < $3;
	`
	var sum decimal.Decimal
	if err := r.Pool.QueryRow(ctx, query, userID, period.Start(), period.End()).Scan(&sum); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum income for %s: %w", period.String(), err)
	}
	return sum, nil
}

// FindLatestTransactionPeriod returns the most recent (month, year)
// containing any transaction for the user, or nil when none exists.
func (r *PgxTransactionRepository) FindLatestTransactionPeriod(ctx context.Context, userID string) (*domain.Period, error) {
	query := `
		SELECT EXTRACT(MONTH FROM t.transaction_date)::int, EXTRACT(YEAR FROM t.transaction_date)::int
		FROM transactions t
		JOIN accounts a ON a.account_id = t.account_id
		WHERE a.user_id = $1
		ORDER BY t.transaction_date DESC
		LIMIT 1;
	`
	var p domain.Period
	err := r.Pool.QueryRow(ctx, query, userID).Scan(&p.Month, &p.Year)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find latest transaction period for user %s: %w", userID, err)
	}
	return &p, nil
}

// SaveSplit inserts a new split.
func (r *PgxTransactionRepository) SaveSplit(ctx context.Context, split domain.TransactionSplit) error {
	m := mapping.ToModelSplit(split)

	query := `
		INSERT INTO transaction_splits (` + splitColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.SplitID,
		m.TransactionID,
		m.AllocationID,
		m.Amount,
		m.IsIncome,
		m.Notes,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: split %s already exists", apperrors.ErrDuplicate, m.SplitID)
		}
		return fmt.Errorf("failed to save split %s: %w", m.SplitID, err)
	}
	return nil
}

// UpdateSplit updates a split in place.
func (r *PgxTransactionRepository) UpdateSplit(ctx context.Context, split domain.TransactionSplit) error {
	m := mapping.ToModelSplit(split)

	query := `
		UPDATE transaction_splits
		SET allocation_id = $2, amount = $3, is_income = $4, notes = $5, last_updated_at = $6, last_updated_by = $7
		WHERE split_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		m.SplitID,
		m.AllocationID,
		m.Amount,
		m.IsIncome,
		m.Notes,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update split %s: %w", m.SplitID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteSplit removes a single split.
func (r *PgxTransactionRepository) DeleteSplit(ctx context.Context, splitID string) error {
	query := `DELETE FROM transaction_splits WHERE split_id = $1;`

	cmdTag, err := r.Pool.Exec(ctx, query, splitID)
	if err != nil {
		return fmt.Errorf("failed to delete split %s: %w", splitID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
