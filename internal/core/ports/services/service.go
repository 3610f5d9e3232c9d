package services

// ServiceContainer groups the application services handed to the HTTP layer.
type ServiceContainer struct {
	Registry  RegistrySvcFacade
	Ledger    LedgerSvcFacade
	Reporting ReportingSvcFacade
	Trip      TripJournalSvcFacade
}
