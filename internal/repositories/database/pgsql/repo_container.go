package pgsql

import (
	portsrepo "github.com/finbuckets/envelope_budget_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	userRepo := newPgxUserRepository(dbPool)
	accountRepo := newPgxAccountRepository(dbPool)
	categoryRepo := newPgxCategoryRepository(dbPool)
	allocationRepo := newPgxAllocationRepository(dbPool)
	transactionRepo := newPgxTransactionRepository(dbPool, accountRepo)
	snapshotRepo := newPgxSnapshotRepository(dbPool)

	return portsrepo.RepositoryProvider{
		UserRepo:        userRepo,
		AccountRepo:     accountRepo,
		CategoryRepo:    categoryRepo,
		AllocationRepo:  allocationRepo,
		TransactionRepo: transactionRepo,
		SnapshotRepo:    snapshotRepo,
	}
}
