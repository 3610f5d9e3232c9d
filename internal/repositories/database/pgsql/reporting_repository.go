package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fleetbooks/fleetbooks_app/internal/core/domain"
	portsrepo "github.com/fleetbooks/fleetbooks_app/internal/core/ports/repositories"
)

// reportingRepository implements the ReportingRepository interface
type reportingRepository struct {
	BaseRepository
}

// newReportingRepository creates a new reporting repository
func newReportingRepository(db *pgxpool.Pool) portsrepo.ReportingRepository {
	return &reportingRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

var _ portsrepo.ReportingRepository = (*reportingRepository)(nil)

// GetAccountActivity retrieves per-account debit and credit totals over a
// window. Every account in the tenant's registry appears in the result, with
// zero totals when no entry touched it, so reports can render a complete
// chart of accounts. Orientation of the totals is left to the caller.
func (r *reportingRepository) GetAccountActivity(ctx context.Context, tenantID string, from, to *time.Time) ([]domain.AccountActivity, error) {
	query := `
		SELECT
			a.account_id,
			a.code,
			a.name,
			a.account_type,
			a.category,
			COALESCE(SUM(CASE WHEN e.side = 'DEBIT' THEN e.amount ELSE 0 END), 0) AS total_debit,
			COALESCE(SUM(CASE WHEN e.side = 'CREDIT' THEN e.amount ELSE 0 END), 0) AS total_credit
		FROM accounts a
		LEFT JOIN journal_entries e
			ON e.account_id = a.account_id
			AND e.tenant_id = a.tenant_id
			AND ($2::timestamptz IS NULL OR e.entry_date >= $2)
			AND ($3::timestamptz IS NULL OR e.entry_date <= $3)
		WHERE a.tenant_id = $1
		GROUP BY a.account_id, a.code, a.name, a.account_type, a.category
		ORDER BY a.code;
	`

	rows, err := r.Pool.Query(ctx, query, tenantID, from, to)
	if err != nil {
		return nil, fmt.Errorf("error querying account activity: %w", err)
	}
	defer rows.Close()

	result := []domain.AccountActivity{}
	for rows.Next() {
		var row domain.AccountActivity
		var accountType string

		if err := rows.Scan(
			&row.AccountID,
			&row.Code,
			&row.Name,
			&accountType,
			&row.Category,
			&row.Debits,
			&row.Credits,
		); err != nil {
			return nil, fmt.Errorf("error scanning account activity row: %w", err)
		}

		row.AccountType = domain.AccountType(accountType)
		result = append(result, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account activity rows: %w", err)
	}

	return result, nil
}
