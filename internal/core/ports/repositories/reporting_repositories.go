package repositories

import (
	"context"
	"time"

	"github.com/fleetbooks/fleetbooks_app/internal/core/domain"
)

// ReportingRepository defines the aggregate read the report engine derives
// everything from: per-account debit/credit totals over a window, covering
// every account in the tenant's registry (zero totals included). Debit/credit
// orientation is left to the engine so the normal-balance table stays the
// single source of truth.
type ReportingRepository interface {
	GetAccountActivity(ctx context.Context, tenantID string, from, to *time.Time) ([]domain.AccountActivity, error)
}
