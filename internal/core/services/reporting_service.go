package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fleetbooks/fleetbooks_app/internal/core/domain"
	portsrepo "github.com/fleetbooks/fleetbooks_app/internal/core/ports/repositories"
	portssvc "github.com/fleetbooks/fleetbooks_app/internal/core/ports/services"
	"github.com/fleetbooks/fleetbooks_app/internal/middleware"
	"github.com/fleetbooks/fleetbooks_app/internal/utils/accounting"
)

// defaultReportTolerance is the maximum column or equation drift a report
// accepts before flagging itself unbalanced, in currency units.
const defaultReportTolerance = "0.01"

// reportingService derives trial balances, P&L statements and balance sheets
// from the ledger's entry history. Reports are computed per request from the
// store; nothing is cached or persisted, so recomputation is idempotent.
type reportingService struct {
	reportingRepo portsrepo.ReportingRepository
	tolerance     decimal.Decimal
}

// ReportingServiceOption is a functional option for configuring the reporting service.
type ReportingServiceOption func(*reportingService)

// WithReportTolerance sets the drift a report tolerates before flagging
// itself unbalanced.
func WithReportTolerance(tolerance decimal.Decimal) ReportingServiceOption {
	return func(s *reportingService) {
		if !tolerance.IsNegative() {
			s.tolerance = tolerance
		}
	}
}

// NewReportingService creates a new reporting service.
func NewReportingService(repo portsrepo.ReportingRepository, opts ...ReportingServiceOption) portssvc.ReportingSvcFacade {
	s := &reportingService{
		reportingRepo: repo,
		tolerance:     decimal.RequireFromString(defaultReportTolerance),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

// TrialBalance generates a trial balance as of a specific date. Every
// registry account appears; each balance lands in the debit or credit column
// according to the account's normal balance. A totals mismatch beyond
// tolerance is flagged in the payload rather than failing the request, so
// inconsistent history stays inspectable.
func (s *reportingService) TrialBalance(ctx context.Context, tenantID string, asOf time.Time) (*domain.TrialBalanceReport, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	activity, err := s.reportingRepo.GetAccountActivity(ctx, tenantID, nil, &asOf)
	if err != nil {
		logger.Error("Failed to retrieve trial balance data", slog.String("error", err.Error()), slog.String("tenant_id", tenantID))
		return nil, fmt.Errorf("failed to retrieve trial balance data: %w", err)
	}

	report := &domain.TrialBalanceReport{
		AsOf:        asOf,
		Rows:        make([]domain.TrialBalanceRow, 0, len(activity)),
		TotalDebit:  decimal.Zero,
		TotalCredit: decimal.Zero,
	}

	for _, act := range activity {
		rule, err := accounting.RuleFor(act.AccountType)
		if err != nil {
			return nil, fmt.Errorf("account %s: %w", act.AccountID, err)
		}

		row := domain.TrialBalanceRow{
			AccountID:   act.AccountID,
			Code:        act.Code,
			AccountName: act.Name,
			AccountType: act.AccountType,
			Debit:       decimal.Zero,
			Credit:      decimal.Zero,
		}

		if rule.NormalBalance == domain.Debit {
			balance := act.Debits.Sub(act.Credits)
			if balance.IsNegative() {
				row.Credit = balance.Abs()
			} else {
				row.Debit = balance
			}
		} else {
			balance := act.Credits.Sub(act.Debits)
			if balance.IsNegative() {
				row.Debit = balance.Abs()
			} else {
				row.Credit = balance
			}
		}

		report.TotalDebit = report.TotalDebit.Add(row.Debit)
		report.TotalCredit = report.TotalCredit.Add(row.Credit)
		report.Rows = append(report.Rows, row)
	}

	report.Difference = report.TotalDebit.Sub(report.TotalCredit).Abs()
	report.IsBalanced = report.Difference.LessThanOrEqual(s.tolerance)
	if !report.IsBalanced {
		logger.Warn("Trial balance mismatch beyond tolerance",
			slog.String("tenant_id", tenantID),
			slog.String("total_debit", report.TotalDebit.String()),
			slog.String("total_credit", report.TotalCredit.String()),
			slog.String("difference", report.Difference.String()))
	}

	return report, nil
}

// ProfitAndLoss generates a profit and loss statement for a period. Income
// accounts contribute credits minus debits, expense accounts debits minus
// credits; only positive nets are listed.
func (s *reportingService) ProfitAndLoss(ctx context.Context, tenantID string, from, to time.Time) (*domain.ProfitLossReport, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	activity, err := s.reportingRepo.GetAccountActivity(ctx, tenantID, &from, &to)
	if err != nil {
		logger.Error("Failed to retrieve profit and loss data", slog.String("error", err.Error()), slog.String("tenant_id", tenantID))
		return nil, fmt.Errorf("failed to retrieve profit and loss data: %w", err)
	}

	report := &domain.ProfitLossReport{
		From:          from,
		To:            to,
		Income:        []domain.AccountAmount{},
		Expenses:      []domain.AccountAmount{},
		TotalIncome:   decimal.Zero,
		TotalExpenses: decimal.Zero,
	}

	for _, act := range activity {
		switch act.AccountType {
		case domain.Income:
			net := act.Credits.Sub(act.Debits)
			if net.IsPositive() {
				report.Income = append(report.Income, domain.AccountAmount{
					AccountID: act.AccountID, Code: act.Code, Name: act.Name, Amount: net,
				})
				report.TotalIncome = report.TotalIncome.Add(net)
			}
		case domain.Expense:
			net := act.Debits.Sub(act.Credits)
			if net.IsPositive() {
				report.Expenses = append(report.Expenses, domain.AccountAmount{
					AccountID: act.AccountID, Code: act.Code, Name: act.Name, Amount: net,
				})
				report.TotalExpenses = report.TotalExpenses.Add(net)
			}
		}
	}

	report.NetProfit = report.TotalIncome.Sub(report.TotalExpenses)
	if report.TotalIncome.IsZero() {
		report.NetProfitMargin = decimal.Zero
	} else {
		report.NetProfitMargin = report.NetProfit.Div(report.TotalIncome).Mul(decimal.NewFromInt(100)).Round(2)
	}

	return report, nil
}

// BalanceSheet generates a balance sheet as of a specific date. Income and
// expense activity up to asOf folds into a synthetic Current Period Earnings
// line under equity; the accounting equation is then validated within
// tolerance and reported, not enforced.
func (s *reportingService) BalanceSheet(ctx context.Context, tenantID string, asOf time.Time) (*domain.BalanceSheetReport, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	activity, err := s.reportingRepo.GetAccountActivity(ctx, tenantID, nil, &asOf)
	if err != nil {
		logger.Error("Failed to retrieve balance sheet data", slog.String("error", err.Error()), slog.String("tenant_id", tenantID))
		return nil, fmt.Errorf("failed to retrieve balance sheet data: %w", err)
	}

	report := &domain.BalanceSheetReport{
		AsOf:                asOf,
		CurrentAssets:       []domain.AccountAmount{},
		FixedAssets:         []domain.AccountAmount{},
		CurrentLiabilities:  []domain.AccountAmount{},
		LongTermLiabilities: []domain.AccountAmount{},
		Capital:             []domain.AccountAmount{},
		TotalAssets:         decimal.Zero,
		TotalLiabilities:    decimal.Zero,
		TotalEquity:         decimal.Zero,
	}
	earnings := decimal.Zero

	for _, act := range activity {
		rule, err := accounting.RuleFor(act.AccountType)
		if err != nil {
			return nil, fmt.Errorf("account %s: %w", act.AccountID, err)
		}

		// finalBalance is positive when the account grew on its normal side.
		var finalBalance decimal.Decimal
		if rule.NormalBalance == domain.Debit {
			finalBalance = act.Debits.Sub(act.Credits)
		} else {
			finalBalance = act.Credits.Sub(act.Debits)
		}

		amount := domain.AccountAmount{AccountID: act.AccountID, Code: act.Code, Name: act.Name, Amount: finalBalance}

		switch act.AccountType {
		case domain.Asset:
			if act.Category == domain.CategoryCash || act.Category == domain.CategoryBank {
				report.CurrentAssets = append(report.CurrentAssets, amount)
			} else {
				report.FixedAssets = append(report.FixedAssets, amount)
			}
			report.TotalAssets = report.TotalAssets.Add(finalBalance)
		case domain.Liability:
			if act.Category == domain.CategoryLongTerm {
				report.LongTermLiabilities = append(report.LongTermLiabilities, amount)
			} else {
				report.CurrentLiabilities = append(report.CurrentLiabilities, amount)
			}
			report.TotalLiabilities = report.TotalLiabilities.Add(finalBalance)
		case domain.Equity:
			report.Capital = append(report.Capital, amount)
			report.TotalEquity = report.TotalEquity.Add(finalBalance)
		case domain.Income:
			earnings = earnings.Add(finalBalance)
		case domain.Expense:
			earnings = earnings.Sub(finalBalance)
		}
	}

	report.CurrentPeriodEarnings = earnings
	report.TotalEquity = report.TotalEquity.Add(earnings)

	report.Equation = fmt.Sprintf("Assets (%s) = Liabilities (%s) + Equity (%s)",
		report.TotalAssets.String(), report.TotalLiabilities.String(), report.TotalEquity.String())
	diff := report.TotalAssets.Sub(report.TotalLiabilities.Add(report.TotalEquity)).Abs()
	report.IsBalanced = diff.LessThanOrEqual(s.tolerance)
	if !report.IsBalanced {
		logger.Warn("Balance sheet equation mismatch beyond tolerance",
			slog.String("tenant_id", tenantID), slog.String("equation", report.Equation), slog.String("difference", diff.String()))
	}

	return report, nil
}
