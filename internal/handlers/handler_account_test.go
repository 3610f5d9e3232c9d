package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/fleetbooks/fleetbooks_app/internal/apperrors"
	"github.com/fleetbooks/fleetbooks_app/internal/core/domain"
	portssvc "github.com/fleetbooks/fleetbooks_app/internal/core/ports/services"
	"github.com/fleetbooks/fleetbooks_app/internal/dto"
	"github.com/fleetbooks/fleetbooks_app/internal/handlers"
	"github.com/fleetbooks/fleetbooks_app/internal/middleware"
	"github.com/fleetbooks/fleetbooks_app/internal/platform/config"
)

// --- Mock RegistryService ---

type MockRegistryService struct {
	mock.Mock
}

var _ portssvc.RegistrySvcFacade = (*MockRegistryService)(nil)

func (m *MockRegistryService) GetAccount(ctx context.Context, tenantID, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, tenantID, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockRegistryService) GetAccountsByIDs(ctx context.Context, tenantID string, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, tenantID, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockRegistryService) ListAccounts(ctx context.Context, tenantID string, accountType *domain.AccountType) ([]domain.Account, error) {
	args := m.Called(ctx, tenantID, accountType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockRegistryService) CreateAccount(ctx context.Context, tenantID string, req dto.CreateAccountRequest, creator string) (*domain.Account, error) {
	args := m.Called(ctx, tenantID, req, creator)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockRegistryService) UpdateAccount(ctx context.Context, tenantID, accountID string, req dto.UpdateAccountRequest, updater string) (*domain.Account, error) {
	args := m.Called(ctx, tenantID, accountID, req, updater)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockRegistryService) DeactivateAccount(ctx context.Context, tenantID, accountID, updater string) error {
	args := m.Called(ctx, tenantID, accountID, updater)
	return args.Error(0)
}

// --- Mock LedgerService ---

type MockLedgerSvc struct {
	mock.Mock
}

var _ portssvc.LedgerSvcFacade = (*MockLedgerSvc)(nil)

func (m *MockLedgerSvc) CommitBatch(ctx context.Context, tenantID string, req dto.CreateJournalBatchRequest, actor string) (*domain.JournalBatch, error) {
	args := m.Called(ctx, tenantID, req, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalBatch), args.Error(1)
}

func (m *MockLedgerSvc) GetBatchByReference(ctx context.Context, tenantID, reference string) (*domain.JournalBatch, error) {
	args := m.Called(ctx, tenantID, reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalBatch), args.Error(1)
}

func (m *MockLedgerSvc) ListEntries(ctx context.Context, tenantID string, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error) {
	args := m.Called(ctx, tenantID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListEntriesResponse), args.Error(1)
}

func (m *MockLedgerSvc) ReverseBatch(ctx context.Context, tenantID, reference, actor string) (*domain.JournalBatch, error) {
	args := m.Called(ctx, tenantID, reference, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalBatch), args.Error(1)
}

// --- Mock ReportingService ---

type MockReportingSvc struct {
	mock.Mock
}

var _ portssvc.ReportingSvcFacade = (*MockReportingSvc)(nil)

func (m *MockReportingSvc) TrialBalance(ctx context.Context, tenantID string, asOf time.Time) (*domain.TrialBalanceReport, error) {
	args := m.Called(ctx, tenantID, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TrialBalanceReport), args.Error(1)
}

func (m *MockReportingSvc) ProfitAndLoss(ctx context.Context, tenantID string, from, to time.Time) (*domain.ProfitLossReport, error) {
	args := m.Called(ctx, tenantID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProfitLossReport), args.Error(1)
}

func (m *MockReportingSvc) BalanceSheet(ctx context.Context, tenantID string, asOf time.Time) (*domain.BalanceSheetReport, error) {
	args := m.Called(ctx, tenantID, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BalanceSheetReport), args.Error(1)
}

// --- Mock TripJournalService ---

type MockTripJournalSvc struct {
	mock.Mock
}

var _ portssvc.TripJournalSvcFacade = (*MockTripJournalSvc)(nil)

func (m *MockTripJournalSvc) CreateTripJournal(ctx context.Context, tenantID string, req dto.TripCompletedRequest, actor string) (*domain.JournalBatch, error) {
	args := m.Called(ctx, tenantID, req, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalBatch), args.Error(1)
}

// --- Test Suite ---

type HandlerTestSuite struct {
	suite.Suite
	router        *gin.Engine
	mockRegistry  *MockRegistryService
	mockLedger    *MockLedgerSvc
	mockReporting *MockReportingSvc
	mockTrip      *MockTripJournalSvc
	tenantID      string
	actorID       string
}

func (suite *HandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.Require().NoError(dto.RegisterCustomValidations())
	suite.router = gin.New()

	suite.mockRegistry = new(MockRegistryService)
	suite.mockLedger = new(MockLedgerSvc)
	suite.mockReporting = new(MockReportingSvc)
	suite.mockTrip = new(MockTripJournalSvc)
	suite.tenantID = uuid.NewString()
	suite.actorID = uuid.NewString()

	services := &portssvc.ServiceContainer{
		Registry:  suite.mockRegistry,
		Ledger:    suite.mockLedger,
		Reporting: suite.mockReporting,
		Trip:      suite.mockTrip,
	}
	handlers.RegisterRoutes(suite.router, &config.Config{}, services)
}

func (suite *HandlerTestSuite) serve(method, url string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, _ := http.NewRequest(method, url, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(middleware.TenantHeader, suite.tenantID)
	req.Header.Set(middleware.ActorHeader, suite.actorID)

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *HandlerTestSuite) TestCreateAccount_Success() {
	reqBody := dto.CreateAccountRequest{
		Code:        "1000",
		Name:        "Cash",
		AccountType: domain.Asset,
		Category:    domain.CategoryCash,
	}
	created := &domain.Account{
		AccountID:   uuid.NewString(),
		TenantID:    suite.tenantID,
		Code:        "1000",
		Name:        "Cash",
		AccountType: domain.Asset,
		Category:    domain.CategoryCash,
		IsActive:    true,
	}

	suite.mockRegistry.On("CreateAccount", mock.Anything, suite.tenantID, reqBody, suite.actorID).
		Return(created, nil).Once()

	w := suite.serve(http.MethodPost, "/api/v1/accounts", reqBody)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.AccountResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(created.AccountID, resp.AccountID)
	suite.Equal(domain.Debit, resp.NormalBalance)
	suite.mockRegistry.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestMissingTenantHeaderRejected() {
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/accounts", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockRegistry.AssertNotCalled(suite.T(), "ListAccounts", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestActorDefaultsToSystem() {
	created := &domain.Account{AccountID: uuid.NewString(), AccountType: domain.Asset, IsActive: true}
	suite.mockRegistry.On("CreateAccount", mock.Anything, suite.tenantID, mock.Anything, "system").
		Return(created, nil).Once()

	reqBody := dto.CreateAccountRequest{Code: "1000", Name: "Cash", AccountType: domain.Asset}
	payload, _ := json.Marshal(reqBody)
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/accounts", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(middleware.TenantHeader, suite.tenantID)

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusCreated, w.Code)
	suite.mockRegistry.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestGetAccount_NotFound() {
	accountID := uuid.NewString()
	suite.mockRegistry.On("GetAccount", mock.Anything, suite.tenantID, accountID).
		Return(nil, apperrors.ErrNotFound).Once()

	w := suite.serve(http.MethodGet, "/api/v1/accounts/"+accountID, nil)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *HandlerTestSuite) TestCommitBatch_Success() {
	reqBody := gin.H{
		"reference":   "TRIP-1042",
		"date":        "2025-06-15T00:00:00Z",
		"description": "Trip freight",
		"entries": []gin.H{
			{"accountID": uuid.NewString(), "side": "DEBIT", "amount": "65000"},
			{"accountID": uuid.NewString(), "side": "CREDIT", "amount": "65000"},
		},
	}
	committed := &domain.JournalBatch{
		BatchID:   uuid.NewString(),
		TenantID:  suite.tenantID,
		Reference: "TRIP-1042",
		Status:    domain.Posted,
		Amount:    decimal.NewFromInt(65000),
	}

	suite.mockLedger.On("CommitBatch", mock.Anything, suite.tenantID, mock.MatchedBy(func(r dto.CreateJournalBatchRequest) bool {
		return r.Reference == "TRIP-1042" && len(r.Entries) == 2
	}), suite.actorID).Return(committed, nil).Once()

	w := suite.serve(http.MethodPost, "/api/v1/journals", reqBody)

	suite.Equal(http.StatusCreated, w.Code)
	suite.mockLedger.AssertExpectations(suite.T())
}

// Batch dates bind as RFC3339 timestamps; a bare date string does not parse.
func (suite *HandlerTestSuite) TestCommitBatch_DateOnlyStringReturns400() {
	reqBody := gin.H{
		"reference": "TRIP-1042",
		"date":      "2025-06-15",
		"entries": []gin.H{
			{"accountID": uuid.NewString(), "side": "DEBIT", "amount": "65000"},
			{"accountID": uuid.NewString(), "side": "CREDIT", "amount": "65000"},
		},
	}

	w := suite.serve(http.MethodPost, "/api/v1/journals", reqBody)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockLedger.AssertNotCalled(suite.T(), "CommitBatch", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestCommitBatch_UnbalancedReturns400() {
	reqBody := gin.H{
		"reference": "TRIP-1042",
		"date":      "2025-06-15T00:00:00Z",
		"entries": []gin.H{
			{"accountID": uuid.NewString(), "side": "DEBIT", "amount": "1000"},
			{"accountID": uuid.NewString(), "side": "CREDIT", "amount": "900"},
		},
	}

	suite.mockLedger.On("CommitBatch", mock.Anything, suite.tenantID, mock.Anything, suite.actorID).
		Return(nil, apperrors.ErrUnbalancedBatch).Once()

	w := suite.serve(http.MethodPost, "/api/v1/journals", reqBody)

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestCommitBatch_DuplicateReturns409() {
	reqBody := gin.H{
		"reference": "TRIP-1042",
		"date":      "2025-06-15T00:00:00Z",
		"entries": []gin.H{
			{"accountID": uuid.NewString(), "side": "DEBIT", "amount": "1000"},
			{"accountID": uuid.NewString(), "side": "CREDIT", "amount": "1000"},
		},
	}

	suite.mockLedger.On("CommitBatch", mock.Anything, suite.tenantID, mock.Anything, suite.actorID).
		Return(nil, apperrors.ErrDuplicate).Once()

	w := suite.serve(http.MethodPost, "/api/v1/journals", reqBody)

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *HandlerTestSuite) TestReverseBatch_Success() {
	reversal := &domain.JournalBatch{
		BatchID:   uuid.NewString(),
		TenantID:  suite.tenantID,
		Reference: "REV-TRIP-1042",
		Status:    domain.Posted,
	}

	suite.mockLedger.On("ReverseBatch", mock.Anything, suite.tenantID, "TRIP-1042", suite.actorID).
		Return(reversal, nil).Once()

	w := suite.serve(http.MethodPost, "/api/v1/journals/TRIP-1042/reverse", nil)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.JournalBatchResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("REV-TRIP-1042", resp.Reference)
}

func (suite *HandlerTestSuite) TestReverseBatch_OfReversalReturns409() {
	suite.mockLedger.On("ReverseBatch", mock.Anything, suite.tenantID, "REV-TRIP-1042", suite.actorID).
		Return(nil, apperrors.ErrConflict).Once()

	w := suite.serve(http.MethodPost, "/api/v1/journals/REV-TRIP-1042/reverse", nil)

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *HandlerTestSuite) TestListEntries_InvalidDateReturns400() {
	w := suite.serve(http.MethodGet, "/api/v1/entries?from=15-06-2025", nil)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockLedger.AssertNotCalled(suite.T(), "ListEntries", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestTripCompleted_Success() {
	reqBody := dto.TripCompletedRequest{
		TripID:        "1042",
		ClientID:      "ACME",
		Route:         "Mumbai-Delhi",
		FreightAmount: decimal.NewFromInt(65000),
	}
	batch := &domain.JournalBatch{BatchID: uuid.NewString(), Reference: "TRIP-1042", Status: domain.Posted}

	suite.mockTrip.On("CreateTripJournal", mock.Anything, suite.tenantID, mock.MatchedBy(func(r dto.TripCompletedRequest) bool {
		return r.TripID == "1042" && r.ClientID == "ACME"
	}), suite.actorID).Return(batch, nil).Once()

	w := suite.serve(http.MethodPost, "/api/v1/trips/completed", reqBody)

	suite.Equal(http.StatusCreated, w.Code)
	suite.mockTrip.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestTrialBalance_Success() {
	report := &domain.TrialBalanceReport{
		AsOf:        time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC),
		Rows:        []domain.TrialBalanceRow{},
		TotalDebit:  decimal.NewFromInt(65000),
		TotalCredit: decimal.NewFromInt(65000),
		Difference:  decimal.Zero,
		IsBalanced:  true,
	}

	suite.mockReporting.On("TrialBalance", mock.Anything, suite.tenantID, mock.AnythingOfType("time.Time")).
		Return(report, nil).Once()

	w := suite.serve(http.MethodGet, "/api/v1/reports/trial-balance?asOf=2025-06-30", nil)

	suite.Equal(http.StatusOK, w.Code)
	suite.mockReporting.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestProfitAndLoss_RejectsInvertedRange() {
	w := suite.serve(http.MethodGet, "/api/v1/reports/profit-and-loss?fromDate=2025-06-30&toDate=2025-06-01", nil)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockReporting.AssertNotCalled(suite.T(), "ProfitAndLoss", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestHealthEndpointBypassesTenantCheck() {
	req, _ := http.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)
}

func TestHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}
