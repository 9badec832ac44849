package services

import (
	portsrepo "github.com/finbuckets/envelope_budget_app/internal/core/ports/repositories"
	portssvc "github.com/finbuckets/envelope_budget_app/internal/core/ports/services"
	"github.com/finbuckets/envelope_budget_app/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.UserSvc = NewUserService(repos.UserRepo)
	container.AuthSvc = NewAuthService(cfg, repos.UserRepo)
	container.GoogleOAuthSvc = NewGoogleOAuthService(cfg, container.UserSvc, repos.UserRepo)

	container.AccountSvc = NewAccountService(repos.AccountRepo)
	container.CategorySvc = NewCategoryService(repos.CategoryRepo)
	container.AllocationSvc = NewAllocationService(repos.AllocationRepo, container.CategorySvc)

	container.TransactionSvc = NewTransactionService(repos.TransactionRepo, repos.AllocationRepo, container.AccountSvc)
	container.SplitSvc = NewSplitService(repos.TransactionRepo, repos.AllocationRepo, container.AccountSvc, container.CategorySvc)
	container.SnapshotSvc = NewSnapshotService(repos.SnapshotRepo, repos.AllocationRepo, repos.TransactionRepo)

	return container
}
