package repositories

// RepositoryProvider groups the concrete repositories handed to the service
// layer at startup.
type RepositoryProvider struct {
	AccountRepo   AccountRepositoryFacade
	LedgerRepo    LedgerRepositoryFacade
	ReportingRepo ReportingRepository
}
