package services

// ServiceContainer holds all service facades used by the HTTP layer.
type ServiceContainer struct {
	UserSvc        UserSvcFacade
	AuthSvc        AuthSvcFacade
	GoogleOAuthSvc GoogleOAuthSvcFacade
	AccountSvc     AccountSvcFacade
	CategorySvc    CategorySvcFacade
	AllocationSvc  AllocationSvcFacade
	TransactionSvc TransactionSvcFacade
	SplitSvc       SplitSvcFacade
	SnapshotSvc    SnapshotSvcFacade
}
