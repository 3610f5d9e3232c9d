package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/fleetbooks/fleetbooks_app/internal/apperrors"
	"github.com/fleetbooks/fleetbooks_app/internal/core/domain"
	portsrepo "github.com/fleetbooks/fleetbooks_app/internal/core/ports/repositories"
	portssvc "github.com/fleetbooks/fleetbooks_app/internal/core/ports/services"
	"github.com/fleetbooks/fleetbooks_app/internal/core/services"
	"github.com/fleetbooks/fleetbooks_app/internal/dto"
)

type MockAccountRepository struct {
	mock.Mock
}

var _ portsrepo.AccountRepositoryFacade = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, tenantID, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, tenantID, accountID)
	if acc, ok := args.Get(0).(*domain.Account); ok {
		return acc, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByIDs(ctx context.Context, tenantID string, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, tenantID, accountIDs)
	if accounts, ok := args.Get(0).(map[string]domain.Account); ok {
		return accounts, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context, tenantID string, accountType *domain.AccountType) ([]domain.Account, error) {
	args := m.Called(ctx, tenantID, accountType)
	if accounts, ok := args.Get(0).([]domain.Account); ok {
		return accounts, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) DeactivateAccount(ctx context.Context, tenantID, accountID, updatedBy string, at time.Time) error {
	args := m.Called(ctx, tenantID, accountID, updatedBy, at)
	return args.Error(0)
}

type MockEntryReader struct {
	mock.Mock
}

var _ portsrepo.EntryReader = (*MockEntryReader)(nil)

func (m *MockEntryReader) ListEntries(ctx context.Context, tenantID string, filter domain.EntryFilter, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	args := m.Called(ctx, tenantID, filter, limit, nextToken)
	var entries []domain.JournalEntry
	if v, ok := args.Get(0).([]domain.JournalEntry); ok {
		entries = v
	}
	var token *string
	if v, ok := args.Get(1).(*string); ok {
		token = v
	}
	return entries, token, args.Error(2)
}

func (m *MockEntryReader) HasEntries(ctx context.Context, tenantID, accountID string) (bool, error) {
	args := m.Called(ctx, tenantID, accountID)
	return args.Bool(0), args.Error(1)
}

type RegistryServiceTestSuite struct {
	suite.Suite
	mockRepo        *MockAccountRepository
	mockEntryReader *MockEntryReader
	service         portssvc.RegistrySvcFacade

	ctx      context.Context
	tenantID string
	actorID  string
}

func (s *RegistryServiceTestSuite) SetupTest() {
	s.mockRepo = new(MockAccountRepository)
	s.mockEntryReader = new(MockEntryReader)
	s.service = services.NewRegistryService(s.mockRepo, s.mockEntryReader, 5*time.Minute)

	s.ctx = context.Background()
	s.tenantID = uuid.NewString()
	s.actorID = uuid.NewString()
}

func (s *RegistryServiceTestSuite) newAccount(code string, accountType domain.AccountType) *domain.Account {
	return &domain.Account{
		AccountID:   uuid.NewString(),
		TenantID:    s.tenantID,
		Code:        code,
		Name:        "Account " + code,
		AccountType: accountType,
		IsActive:    true,
	}
}

func (s *RegistryServiceTestSuite) TestCreateAccount_Success() {
	req := dto.CreateAccountRequest{
		Code:        "1000",
		Name:        "Cash",
		AccountType: domain.Asset,
		Category:    domain.CategoryCash,
	}

	s.mockRepo.On("SaveAccount", s.ctx, mock.AnythingOfType("domain.Account")).Return(nil).Once()

	account, err := s.service.CreateAccount(s.ctx, s.tenantID, req, s.actorID)

	s.Require().NoError(err)
	s.Require().NotNil(account)
	s.NotEmpty(account.AccountID)
	s.Equal(s.tenantID, account.TenantID)
	s.Equal("1000", account.Code)
	s.Equal(domain.Asset, account.AccountType)
	s.True(account.IsActive)
	s.Equal(s.actorID, account.CreatedBy)
	s.mockRepo.AssertExpectations(s.T())
}

func (s *RegistryServiceTestSuite) TestCreateAccount_InvalidType() {
	req := dto.CreateAccountRequest{Code: "9000", Name: "Mystery", AccountType: domain.AccountType("GOODWILL")}

	account, err := s.service.CreateAccount(s.ctx, s.tenantID, req, s.actorID)

	s.Require().ErrorIs(err, apperrors.ErrValidation)
	s.Nil(account)
	s.mockRepo.AssertNotCalled(s.T(), "SaveAccount", mock.Anything, mock.Anything)
}

func (s *RegistryServiceTestSuite) TestCreateAccount_DuplicateCode() {
	req := dto.CreateAccountRequest{Code: "1000", Name: "Cash", AccountType: domain.Asset}

	s.mockRepo.On("SaveAccount", s.ctx, mock.Anything).Return(apperrors.ErrDuplicate).Once()

	account, err := s.service.CreateAccount(s.ctx, s.tenantID, req, s.actorID)

	s.Require().ErrorIs(err, apperrors.ErrDuplicate)
	s.Nil(account)
}

func (s *RegistryServiceTestSuite) TestGetAccount_CachesRepositoryRead() {
	expected := s.newAccount("1000", domain.Asset)

	s.mockRepo.On("FindAccountByID", s.ctx, s.tenantID, expected.AccountID).Return(expected, nil).Once()

	first, err := s.service.GetAccount(s.ctx, s.tenantID, expected.AccountID)
	s.Require().NoError(err)

	// Second read must come from the cache; the repository expectation
	// allows exactly one call.
	second, err := s.service.GetAccount(s.ctx, s.tenantID, expected.AccountID)
	s.Require().NoError(err)

	s.Equal(first.AccountID, second.AccountID)
	s.mockRepo.AssertExpectations(s.T())
}

func (s *RegistryServiceTestSuite) TestGetAccount_NotFound() {
	accountID := uuid.NewString()
	s.mockRepo.On("FindAccountByID", s.ctx, s.tenantID, accountID).Return(nil, apperrors.ErrNotFound).Once()

	account, err := s.service.GetAccount(s.ctx, s.tenantID, accountID)

	s.Require().ErrorIs(err, apperrors.ErrNotFound)
	s.Nil(account)
}

func (s *RegistryServiceTestSuite) TestGetAccountsByIDs_MixesCacheAndRepository() {
	cached := s.newAccount("1000", domain.Asset)
	uncached := s.newAccount("4000", domain.Income)

	s.mockRepo.On("FindAccountByID", s.ctx, s.tenantID, cached.AccountID).Return(cached, nil).Once()
	_, err := s.service.GetAccount(s.ctx, s.tenantID, cached.AccountID)
	s.Require().NoError(err)

	s.mockRepo.On("FindAccountsByIDs", s.ctx, s.tenantID, []string{uncached.AccountID}).
		Return(map[string]domain.Account{uncached.AccountID: *uncached}, nil).Once()

	accounts, err := s.service.GetAccountsByIDs(s.ctx, s.tenantID, []string{cached.AccountID, uncached.AccountID})

	s.Require().NoError(err)
	s.Len(accounts, 2)
	s.Contains(accounts, cached.AccountID)
	s.Contains(accounts, uncached.AccountID)
	s.mockRepo.AssertExpectations(s.T())
}

func (s *RegistryServiceTestSuite) TestListAccounts_CachesPerTypeFilter() {
	assetType := domain.Asset
	assets := []domain.Account{*s.newAccount("1000", domain.Asset)}

	s.mockRepo.On("ListAccounts", s.ctx, s.tenantID, &assetType).Return(assets, nil).Once()

	first, err := s.service.ListAccounts(s.ctx, s.tenantID, &assetType)
	s.Require().NoError(err)
	second, err := s.service.ListAccounts(s.ctx, s.tenantID, &assetType)
	s.Require().NoError(err)

	s.Equal(first, second)
	s.mockRepo.AssertExpectations(s.T())
}

func (s *RegistryServiceTestSuite) TestListAccounts_NilResultBecomesEmptySlice() {
	s.mockRepo.On("ListAccounts", s.ctx, s.tenantID, (*domain.AccountType)(nil)).Return(nil, nil).Once()

	accounts, err := s.service.ListAccounts(s.ctx, s.tenantID, nil)

	s.Require().NoError(err)
	s.NotNil(accounts)
	s.Empty(accounts)
}

func (s *RegistryServiceTestSuite) TestUpdateAccount_Success() {
	existing := s.newAccount("5100", domain.Expense)
	newName := "Fuel and Lubricants"

	s.mockRepo.On("FindAccountByID", s.ctx, s.tenantID, existing.AccountID).Return(existing, nil).Once()
	s.mockRepo.On("UpdateAccount", s.ctx, mock.MatchedBy(func(acc domain.Account) bool {
		return acc.AccountID == existing.AccountID && acc.Name == newName
	})).Return(nil).Once()

	account, err := s.service.UpdateAccount(s.ctx, s.tenantID, existing.AccountID, dto.UpdateAccountRequest{Name: &newName}, s.actorID)

	s.Require().NoError(err)
	s.Equal(newName, account.Name)
	s.Equal(s.actorID, account.LastUpdatedBy)
	s.mockRepo.AssertExpectations(s.T())
}

func (s *RegistryServiceTestSuite) TestUpdateAccount_TypeChangeBlockedByEntries() {
	existing := s.newAccount("5100", domain.Expense)
	newType := domain.Asset

	s.mockRepo.On("FindAccountByID", s.ctx, s.tenantID, existing.AccountID).Return(existing, nil).Once()
	s.mockEntryReader.On("HasEntries", s.ctx, s.tenantID, existing.AccountID).Return(true, nil).Once()

	account, err := s.service.UpdateAccount(s.ctx, s.tenantID, existing.AccountID, dto.UpdateAccountRequest{AccountType: &newType}, s.actorID)

	s.Require().ErrorIs(err, apperrors.ErrConflict)
	s.Nil(account)
	s.mockRepo.AssertNotCalled(s.T(), "UpdateAccount", mock.Anything, mock.Anything)
}

func (s *RegistryServiceTestSuite) TestUpdateAccount_TypeChangeAllowedWithoutEntries() {
	existing := s.newAccount("5100", domain.Expense)
	newType := domain.Asset

	s.mockRepo.On("FindAccountByID", s.ctx, s.tenantID, existing.AccountID).Return(existing, nil).Once()
	s.mockEntryReader.On("HasEntries", s.ctx, s.tenantID, existing.AccountID).Return(false, nil).Once()
	s.mockRepo.On("UpdateAccount", s.ctx, mock.Anything).Return(nil).Once()

	account, err := s.service.UpdateAccount(s.ctx, s.tenantID, existing.AccountID, dto.UpdateAccountRequest{AccountType: &newType}, s.actorID)

	s.Require().NoError(err)
	s.Equal(domain.Asset, account.AccountType)
	s.mockRepo.AssertExpectations(s.T())
	s.mockEntryReader.AssertExpectations(s.T())
}

func (s *RegistryServiceTestSuite) TestUpdateAccount_NoopSkipsWrite() {
	existing := s.newAccount("5100", domain.Expense)

	s.mockRepo.On("FindAccountByID", s.ctx, s.tenantID, existing.AccountID).Return(existing, nil).Once()

	account, err := s.service.UpdateAccount(s.ctx, s.tenantID, existing.AccountID, dto.UpdateAccountRequest{}, s.actorID)

	s.Require().NoError(err)
	s.Equal(existing.AccountID, account.AccountID)
	s.mockRepo.AssertNotCalled(s.T(), "UpdateAccount", mock.Anything, mock.Anything)
}

func (s *RegistryServiceTestSuite) TestDeactivateAccount_Success() {
	accountID := uuid.NewString()

	s.mockRepo.On("DeactivateAccount", s.ctx, s.tenantID, accountID, s.actorID, mock.AnythingOfType("time.Time")).
		Return(nil).Once()

	err := s.service.DeactivateAccount(s.ctx, s.tenantID, accountID, s.actorID)

	s.Require().NoError(err)
	s.mockRepo.AssertExpectations(s.T())
}

func (s *RegistryServiceTestSuite) TestDeactivateAccount_InvalidatesCachedAccount() {
	existing := s.newAccount("1000", domain.Asset)

	s.mockRepo.On("FindAccountByID", s.ctx, s.tenantID, existing.AccountID).Return(existing, nil).Twice()
	_, err := s.service.GetAccount(s.ctx, s.tenantID, existing.AccountID)
	s.Require().NoError(err)

	s.mockRepo.On("DeactivateAccount", s.ctx, s.tenantID, existing.AccountID, s.actorID, mock.AnythingOfType("time.Time")).
		Return(nil).Once()
	s.Require().NoError(s.service.DeactivateAccount(s.ctx, s.tenantID, existing.AccountID, s.actorID))

	// The cached copy is gone, forcing a fresh repository read.
	_, err = s.service.GetAccount(s.ctx, s.tenantID, existing.AccountID)
	s.Require().NoError(err)
	s.mockRepo.AssertExpectations(s.T())
}

func TestRegistryServiceTestSuite(t *testing.T) {
	suite.Run(t, new(RegistryServiceTestSuite))
}

func TestNormalBalanceFor(t *testing.T) {
	tests := []struct {
		accountType domain.AccountType
		side        domain.EntrySide
	}{
		{domain.Asset, domain.Debit},
		{domain.Expense, domain.Debit},
		{domain.Liability, domain.Credit},
		{domain.Equity, domain.Credit},
		{domain.Income, domain.Credit},
	}
	for _, tc := range tests {
		if got := services.NormalBalanceFor(tc.accountType); got != tc.side {
			t.Errorf("NormalBalanceFor(%s) = %s, want %s", tc.accountType, got, tc.side)
		}
	}
}
