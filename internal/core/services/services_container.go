package services

import (
	portsrepo "github.com/fleetbooks/fleetbooks_app/internal/core/ports/repositories"
	portssvc "github.com/fleetbooks/fleetbooks_app/internal/core/ports/services"
	"github.com/fleetbooks/fleetbooks_app/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Registry first since the ledger and trip services depend on it
	container.Registry = NewRegistryService(repos.AccountRepo, repos.LedgerRepo, cfg.RegistryCacheTTL)

	container.Ledger = NewLedgerService(
		repos.LedgerRepo,
		container.Registry,
		WithCommitRetryPolicy(cfg.CommitRetryMax, cfg.CommitRetryBackoff),
	)

	container.Reporting = NewReportingService(repos.ReportingRepo, WithReportTolerance(cfg.ReportTolerance))
	container.Trip = NewTripJournalService(container.Registry, container.Ledger)

	return container
}
