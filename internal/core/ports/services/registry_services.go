package services

import (
	"context"

	"github.com/fleetbooks/fleetbooks_app/internal/core/domain"
	"github.com/fleetbooks/fleetbooks_app/internal/dto"
)

// RegistryReaderSvc defines read access to a tenant's chart of accounts.
type RegistryReaderSvc interface {
	// GetAccount retrieves a single account, or ErrNotFound.
	GetAccount(ctx context.Context, tenantID, accountID string) (*domain.Account, error)

	// GetAccountsByIDs retrieves multiple accounts keyed by ID.
	GetAccountsByIDs(ctx context.Context, tenantID string, accountIDs []string) (map[string]domain.Account, error)

	// ListAccounts retrieves a tenant's accounts ordered by code, optionally
	// filtered by type.
	ListAccounts(ctx context.Context, tenantID string, accountType *domain.AccountType) ([]domain.Account, error)
}

// RegistryWriterSvc defines the tenant-setup surface of the registry.
type RegistryWriterSvc interface {
	CreateAccount(ctx context.Context, tenantID string, req dto.CreateAccountRequest, creator string) (*domain.Account, error)

	// UpdateAccount updates name, category or description. An account-type
	// change is rejected with ErrConflict once entries reference the account.
	UpdateAccount(ctx context.Context, tenantID, accountID string, req dto.UpdateAccountRequest, updater string) (*domain.Account, error)

	DeactivateAccount(ctx context.Context, tenantID, accountID, updater string) error
}

// RegistrySvcFacade combines registry read and write operations.
type RegistrySvcFacade interface {
	RegistryReaderSvc
	RegistryWriterSvc
}
