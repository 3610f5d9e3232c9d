package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"

	"github.com/fleetbooks/fleetbooks_app/internal/apperrors"
	"github.com/fleetbooks/fleetbooks_app/internal/core/domain"
	portsrepo "github.com/fleetbooks/fleetbooks_app/internal/core/ports/repositories"
	portssvc "github.com/fleetbooks/fleetbooks_app/internal/core/ports/services"
	"github.com/fleetbooks/fleetbooks_app/internal/dto"
	"github.com/fleetbooks/fleetbooks_app/internal/middleware"
	"github.com/fleetbooks/fleetbooks_app/internal/utils/accounting"
)

// ErrAccountTypeImmutable rejects a type change on an account that already
// has journal entries: changing it would invalidate historical reports.
var ErrAccountTypeImmutable = errors.New("account type cannot change once entries reference the account")

// registryService implements the chart-of-accounts registry. The registry is
// read-mostly, so lookups are cached per tenant with explicit invalidation on
// account changes.
type registryService struct {
	accountRepo portsrepo.AccountRepositoryFacade
	entryReader portsrepo.EntryReader
	cache       *gocache.Cache
}

// NewRegistryService creates a new registry service. cacheTTL bounds how long
// cached account reads may lag an uncached write from another process.
func NewRegistryService(accountRepo portsrepo.AccountRepositoryFacade, entryReader portsrepo.EntryReader, cacheTTL time.Duration) portssvc.RegistrySvcFacade {
	return &registryService{
		accountRepo: accountRepo,
		entryReader: entryReader,
		cache:       gocache.New(cacheTTL, 2*cacheTTL),
	}
}

var _ portssvc.RegistrySvcFacade = (*registryService)(nil)

func accountCacheKey(tenantID, accountID string) string {
	return tenantID + "|acct|" + accountID
}

func listCacheKey(tenantID string, accountType *domain.AccountType) string {
	if accountType == nil {
		return tenantID + "|list|ALL"
	}
	return tenantID + "|list|" + string(*accountType)
}

// invalidateTenant drops every cached read that a write to the given account
// could have staled.
func (s *registryService) invalidateTenant(tenantID, accountID string) {
	s.cache.Delete(accountCacheKey(tenantID, accountID))
	s.cache.Delete(listCacheKey(tenantID, nil))
	for _, t := range []domain.AccountType{domain.Asset, domain.Liability, domain.Equity, domain.Income, domain.Expense} {
		s.cache.Delete(listCacheKey(tenantID, &t))
	}
}

// CreateAccount creates a new account in the tenant's chart of accounts.
func (s *registryService) CreateAccount(ctx context.Context, tenantID string, req dto.CreateAccountRequest, creator string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.AccountType.Valid() {
		return nil, fmt.Errorf("%w: invalid account type %q", apperrors.ErrValidation, req.AccountType)
	}

	now := time.Now().UTC()
	account := domain.Account{
		AccountID:   uuid.NewString(),
		TenantID:    tenantID,
		Code:        req.Code,
		Name:        req.Name,
		AccountType: req.AccountType,
		Category:    req.Category,
		Description: req.Description,
		IsActive:    true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creator,
			LastUpdatedAt: now,
			LastUpdatedBy: creator,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		logger.Error("Failed to save account", slog.String("error", err.Error()), slog.String("tenant_id", tenantID), slog.String("code", req.Code))
		return nil, err
	}

	s.invalidateTenant(tenantID, account.AccountID)
	logger.Info("Account created", slog.String("account_id", account.AccountID), slog.String("tenant_id", tenantID))
	return &account, nil
}

// GetAccount retrieves a single account within a tenant.
func (s *registryService) GetAccount(ctx context.Context, tenantID, accountID string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	key := accountCacheKey(tenantID, accountID)
	if cached, found := s.cache.Get(key); found {
		acc := cached.(domain.Account)
		return &acc, nil
	}

	account, err := s.accountRepo.FindAccountByID(ctx, tenantID, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find account", slog.String("error", err.Error()), slog.String("account_id", accountID))
		}
		return nil, err
	}

	s.cache.SetDefault(key, *account)
	return account, nil
}

// GetAccountsByIDs retrieves multiple accounts keyed by ID. IDs missing from
// the registry are absent from the result; callers decide whether that is an
// error.
func (s *registryService) GetAccountsByIDs(ctx context.Context, tenantID string, accountIDs []string) (map[string]domain.Account, error) {
	result := make(map[string]domain.Account, len(accountIDs))
	missing := make([]string, 0, len(accountIDs))
	for _, id := range accountIDs {
		if cached, found := s.cache.Get(accountCacheKey(tenantID, id)); found {
			result[id] = cached.(domain.Account)
		} else {
			missing = append(missing, id)
		}
	}

	if len(missing) > 0 {
		fetched, err := s.accountRepo.FindAccountsByIDs(ctx, tenantID, missing)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch accounts: %w", err)
		}
		for id, acc := range fetched {
			result[id] = acc
			s.cache.SetDefault(accountCacheKey(tenantID, id), acc)
		}
	}

	return result, nil
}

// ListAccounts retrieves a tenant's accounts ordered by code.
func (s *registryService) ListAccounts(ctx context.Context, tenantID string, accountType *domain.AccountType) ([]domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	key := listCacheKey(tenantID, accountType)
	if cached, found := s.cache.Get(key); found {
		return cached.([]domain.Account), nil
	}

	accounts, err := s.accountRepo.ListAccounts(ctx, tenantID, accountType)
	if err != nil {
		logger.Error("Failed to list accounts", slog.String("error", err.Error()), slog.String("tenant_id", tenantID))
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	if accounts == nil {
		accounts = []domain.Account{}
	}

	s.cache.SetDefault(key, accounts)
	return accounts, nil
}

// UpdateAccount updates mutable account attributes. The account type is
// immutable once any journal entry references the account.
func (s *registryService) UpdateAccount(ctx context.Context, tenantID, accountID string, req dto.UpdateAccountRequest, updater string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.accountRepo.FindAccountByID(ctx, tenantID, accountID)
	if err != nil {
		return nil, err
	}

	updated := false
	if req.AccountType != nil && *req.AccountType != account.AccountType {
		if !req.AccountType.Valid() {
			return nil, fmt.Errorf("%w: invalid account type %q", apperrors.ErrValidation, *req.AccountType)
		}
		hasEntries, err := s.entryReader.HasEntries(ctx, tenantID, accountID)
		if err != nil {
			logger.Error("Failed to check account entries", slog.String("error", err.Error()), slog.String("account_id", accountID))
			return nil, fmt.Errorf("failed to check account entries: %w", err)
		}
		if hasEntries {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrConflict, ErrAccountTypeImmutable)
		}
		account.AccountType = *req.AccountType
		updated = true
	}
	if req.Name != nil {
		account.Name = *req.Name
		updated = true
	}
	if req.Category != nil {
		account.Category = *req.Category
		updated = true
	}
	if req.Description != nil {
		account.Description = *req.Description
		updated = true
	}

	if !updated {
		return account, nil
	}

	account.LastUpdatedAt = time.Now().UTC()
	account.LastUpdatedBy = updater

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		logger.Error("Failed to update account", slog.String("error", err.Error()), slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to update account: %w", err)
	}

	s.invalidateTenant(tenantID, accountID)
	logger.Info("Account updated", slog.String("account_id", accountID), slog.String("tenant_id", tenantID))
	return account, nil
}

// DeactivateAccount marks an account inactive. History is untouched; the
// account simply stops accepting new entries.
func (s *registryService) DeactivateAccount(ctx context.Context, tenantID, accountID, updater string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.accountRepo.DeactivateAccount(ctx, tenantID, accountID, updater, time.Now().UTC()); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to deactivate account", slog.String("error", err.Error()), slog.String("account_id", accountID))
		}
		return err
	}

	s.invalidateTenant(tenantID, accountID)
	logger.Info("Account deactivated", slog.String("account_id", accountID), slog.String("tenant_id", tenantID))
	return nil
}

// NormalBalanceFor exposes the fixed orientation table for presentation.
func NormalBalanceFor(t domain.AccountType) domain.EntrySide {
	return accounting.NormalBalance(t)
}
