package services

import (
	"context"
	"time"

	"github.com/fleetbooks/fleetbooks_app/internal/core/domain"
)

// ReportingSvcFacade defines operations for deriving financial reports from
// the ledger. Reports are recomputed per request and never persisted.
type ReportingSvcFacade interface {
	// TrialBalance generates a trial balance as of a specific date.
	TrialBalance(ctx context.Context, tenantID string, asOf time.Time) (*domain.TrialBalanceReport, error)

	// ProfitAndLoss generates a profit and loss statement for a period.
	ProfitAndLoss(ctx context.Context, tenantID string, from, to time.Time) (*domain.ProfitLossReport, error)

	// BalanceSheet generates a balance sheet as of a specific date,
	// including current period earnings under equity.
	BalanceSheet(ctx context.Context, tenantID string, asOf time.Time) (*domain.BalanceSheetReport, error)
}
