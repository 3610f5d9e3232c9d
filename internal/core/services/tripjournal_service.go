package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fleetbooks/fleetbooks_app/internal/apperrors"
	"github.com/fleetbooks/fleetbooks_app/internal/core/domain"
	portssvc "github.com/fleetbooks/fleetbooks_app/internal/core/ports/services"
	"github.com/fleetbooks/fleetbooks_app/internal/dto"
	"github.com/fleetbooks/fleetbooks_app/internal/middleware"
)

const tripReferencePrefix = "TRIP-"

// tripJournalService is the journal builder for completed trips: it
// translates a TripCompleted event into a balanced candidate batch and hands
// it to the ledger service, which validates and commits it like any other.
type tripJournalService struct {
	registrySvc portssvc.RegistryReaderSvc
	ledgerSvc   portssvc.LedgerSvcFacade
}

// NewTripJournalService creates a new trip journal builder.
func NewTripJournalService(registrySvc portssvc.RegistryReaderSvc, ledgerSvc portssvc.LedgerSvcFacade) portssvc.TripJournalSvcFacade {
	return &tripJournalService{
		registrySvc: registrySvc,
		ledgerSvc:   ledgerSvc,
	}
}

var _ portssvc.TripJournalSvcFacade = (*tripJournalService)(nil)

// CreateTripJournal builds and posts the batch for a completed trip: debit
// the client's receivable for the freight amount, credit transport income,
// and for each expense line debit the matching expense account and credit
// cash. The batch reference is TRIP-<tripId>.
func (s *tripJournalService) CreateTripJournal(ctx context.Context, tenantID string, req dto.TripCompletedRequest, actor string) (*domain.JournalBatch, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.FreightAmount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: freight amount must be positive", apperrors.ErrValidation)
	}

	accounts, err := s.registrySvc.ListAccounts(ctx, tenantID, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load chart of accounts: %w", err)
	}

	receivable, err := findReceivableAccount(accounts, req.ClientID)
	if err != nil {
		return nil, err
	}
	income, err := findTransportIncomeAccount(accounts)
	if err != nil {
		return nil, err
	}

	entries := []dto.BatchEntryInput{
		{
			AccountID:   receivable.AccountID,
			Side:        domain.Debit,
			Amount:      req.FreightAmount,
			Description: fmt.Sprintf("Freight for trip %s (%s)", req.TripID, req.Route),
		},
		{
			AccountID:   income.AccountID,
			Side:        domain.Credit,
			Amount:      req.FreightAmount,
			Description: fmt.Sprintf("Freight income for trip %s", req.TripID),
		},
	}

	if len(req.Expenses) > 0 {
		cash, err := findCashAccount(accounts)
		if err != nil {
			return nil, err
		}
		for _, exp := range req.Expenses {
			if exp.Amount.LessThanOrEqual(decimal.Zero) {
				return nil, fmt.Errorf("%w: expense %q amount must be positive", apperrors.ErrValidation, exp.Name)
			}
			expenseAcc, err := findExpenseAccount(accounts, exp)
			if err != nil {
				return nil, err
			}
			entries = append(entries,
				dto.BatchEntryInput{
					AccountID:   expenseAcc.AccountID,
					Side:        domain.Debit,
					Amount:      exp.Amount,
					Description: fmt.Sprintf("%s for trip %s", exp.Name, req.TripID),
				},
				dto.BatchEntryInput{
					AccountID:   cash.AccountID,
					Side:        domain.Credit,
					Amount:      exp.Amount,
					Description: fmt.Sprintf("Payment of %s for trip %s", exp.Name, req.TripID),
				},
			)
		}
	}

	tripDate := time.Now().UTC()
	if req.CompletedAt != nil {
		tripDate = *req.CompletedAt
	}

	batchReq := dto.CreateJournalBatchRequest{
		Reference:   tripReferencePrefix + req.TripID,
		Date:        tripDate,
		Description: fmt.Sprintf("Trip %s completed for client %s", req.TripID, req.ClientID),
		Entries:     entries,
	}

	batch, err := s.ledgerSvc.CommitBatch(ctx, tenantID, batchReq, actor)
	if err != nil {
		return nil, err
	}

	logger.Info("Trip journal posted", slog.String("trip_id", req.TripID), slog.String("batch_id", batch.BatchID), slog.Int("entry_count", len(entries)))
	return batch, nil
}

// findReceivableAccount resolves the client's receivable: the asset account
// whose code matches the client ID. Tenant setup creates one receivable
// account per client, coded by client ID.
func findReceivableAccount(accounts []domain.Account, clientID string) (*domain.Account, error) {
	for i, acc := range accounts {
		if acc.AccountType == domain.Asset && acc.Code == clientID && acc.IsActive {
			return &accounts[i], nil
		}
	}
	return nil, fmt.Errorf("%w: no receivable account for client %s", apperrors.ErrUnknownAccount, clientID)
}

// findTransportIncomeAccount prefers the income account categorized
// Transport, falling back to any active income account.
func findTransportIncomeAccount(accounts []domain.Account) (*domain.Account, error) {
	var fallback *domain.Account
	for i, acc := range accounts {
		if acc.AccountType != domain.Income || !acc.IsActive {
			continue
		}
		if acc.Category == domain.CategoryTransport {
			return &accounts[i], nil
		}
		if fallback == nil {
			fallback = &accounts[i]
		}
	}
	if fallback != nil {
		return fallback, nil
	}
	return nil, fmt.Errorf("%w: no transport income account", apperrors.ErrUnknownAccount)
}

// findCashAccount prefers the Cash-categorized asset, falling back to Bank.
func findCashAccount(accounts []domain.Account) (*domain.Account, error) {
	var bank *domain.Account
	for i, acc := range accounts {
		if acc.AccountType != domain.Asset || !acc.IsActive {
			continue
		}
		switch acc.Category {
		case domain.CategoryCash:
			return &accounts[i], nil
		case domain.CategoryBank:
			if bank == nil {
				bank = &accounts[i]
			}
		}
	}
	if bank != nil {
		return bank, nil
	}
	return nil, fmt.Errorf("%w: no cash or bank account", apperrors.ErrUnknownAccount)
}

// findExpenseAccount matches an expense line by account name first, then by
// category against the expense type.
func findExpenseAccount(accounts []domain.Account, exp dto.TripExpenseInput) (*domain.Account, error) {
	var byCategory *domain.Account
	for i, acc := range accounts {
		if acc.AccountType != domain.Expense || !acc.IsActive {
			continue
		}
		if acc.Name == exp.Name {
			return &accounts[i], nil
		}
		if byCategory == nil && acc.Category == exp.Type {
			byCategory = &accounts[i]
		}
	}
	if byCategory != nil {
		return byCategory, nil
	}
	return nil, fmt.Errorf("%w: no expense account for %q (%s)", apperrors.ErrUnknownAccount, exp.Name, exp.Type)
}
