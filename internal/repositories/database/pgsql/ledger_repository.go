package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fleetbooks/fleetbooks_app/internal/apperrors"
	"github.com/fleetbooks/fleetbooks_app/internal/core/domain"
	portsrepo "github.com/fleetbooks/fleetbooks_app/internal/core/ports/repositories"
	"github.com/fleetbooks/fleetbooks_app/internal/models"
	"github.com/fleetbooks/fleetbooks_app/internal/utils/accounting"
	"github.com/fleetbooks/fleetbooks_app/internal/utils/mapping"
	"github.com/fleetbooks/fleetbooks_app/internal/utils/pagination"
)

const entryColumns = `entry_id, batch_id, tenant_id, account_id, side, amount, entry_date, reference, description, created_at, created_by, last_updated_at, last_updated_by`

type PgxLedgerRepository struct {
	BaseRepository
}

// newPgxLedgerRepository creates a new repository for journal batch and entry data.
func newPgxLedgerRepository(pool *pgxpool.Pool) portsrepo.LedgerRepositoryFacade {
	return &PgxLedgerRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.LedgerRepositoryFacade = (*PgxLedgerRepository)(nil)

// SaveBatch persists a batch header and its entries within a single DB
// transaction. The referenced accounts are locked FOR SHARE and the
// double-entry rules re-checked against that locked snapshot, so a batch that
// validated against a stale registry view cannot commit against a changed one.
func (r *PgxLedgerRepository) SaveBatch(ctx context.Context, batch domain.JournalBatch, entries []domain.JournalEntry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) // No-op once committed

	modelBatch := mapping.ToModelBatch(batch)
	batchQuery := `
		INSERT INTO journal_batches (batch_id, tenant_id, reference, batch_date, description, status, amount, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err = tx.Exec(ctx, batchQuery,
		modelBatch.BatchID,
		modelBatch.TenantID,
		modelBatch.Reference,
		modelBatch.BatchDate,
		modelBatch.Description,
		modelBatch.Status,
		modelBatch.Amount,
		modelBatch.CreatedAt,
		modelBatch.CreatedBy,
		modelBatch.LastUpdatedAt,
		modelBatch.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique (tenant_id, reference)
			return fmt.Errorf("%w: batch with reference %s already exists in tenant %s", apperrors.ErrDuplicate, modelBatch.Reference, modelBatch.TenantID)
		}
		return fmt.Errorf("failed to insert batch %s: %w", modelBatch.BatchID, classifyPgError(err))
	}

	accountIDs := make([]string, 0, len(entries))
	seen := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		if _, ok := seen[e.AccountID]; !ok {
			seen[e.AccountID] = struct{}{}
			accountIDs = append(accountIDs, e.AccountID)
		}
	}

	lockedAccounts, err := findAccountsByIDsForShare(ctx, tx, batch.TenantID, accountIDs)
	if err != nil {
		return err
	}

	if err := accounting.ValidateBatch(batch.TenantID, entries, lockedAccounts); err != nil {
		return err
	}

	entryQuery := `
		INSERT INTO journal_entries (` + entryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	pgxBatch := &pgx.Batch{}
	for _, e := range entries {
		m := mapping.ToModelEntry(e)
		pgxBatch.Queue(entryQuery,
			m.EntryID,
			m.BatchID,
			m.TenantID,
			m.AccountID,
			m.Side,
			m.Amount,
			m.EntryDate,
			m.Reference,
			m.Description,
			m.CreatedAt,
			m.CreatedBy,
			m.LastUpdatedAt,
			m.LastUpdatedBy,
		)
	}

	br := tx.SendBatch(ctx, pgxBatch)
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to execute entry batch for %s: %w", modelBatch.BatchID, classifyPgError(err))
	}

	return r.Commit(ctx, tx)
}

// FindBatchByReference retrieves a batch header by its tenant-scoped reference.
func (r *PgxLedgerRepository) FindBatchByReference(ctx context.Context, tenantID, reference string) (*domain.JournalBatch, error) {
	query := `
		SELECT batch_id, tenant_id, reference, batch_date, description, status, amount, created_at, created_by, last_updated_at, last_updated_by
		FROM journal_batches
		WHERE tenant_id = $1 AND reference = $2;
	`
	var m models.JournalBatch
	err := r.Pool.QueryRow(ctx, query, tenantID, reference).Scan(
		&m.BatchID,
		&m.TenantID,
		&m.Reference,
		&m.BatchDate,
		&m.Description,
		&m.Status,
		&m.Amount,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find batch by reference %s: %w", reference, err)
	}

	batch := mapping.ToDomainBatch(m)
	return &batch, nil
}

// FindEntriesByBatchID retrieves all entries of one committed batch.
func (r *PgxLedgerRepository) FindEntriesByBatchID(ctx context.Context, tenantID, batchID string) ([]domain.JournalEntry, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM journal_entries
		WHERE tenant_id = $1 AND batch_id = $2
		ORDER BY created_at, entry_id;
	`
	rows, err := r.Pool.Query(ctx, query, tenantID, batchID)
	if err != nil {
		return nil, fmt.Errorf("failed to query entries for batch %s: %w", batchID, err)
	}
	defer rows.Close()

	entries := []domain.JournalEntry{}
	for rows.Next() {
		m, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan entry row for batch %s: %w", batchID, err)
		}
		entries = append(entries, mapping.ToDomainEntry(m))
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating entry rows for batch %s: %w", batchID, err)
	}

	return entries, nil
}

// buildListEntriesQuery assembles the filtered, cursor-bounded entry query.
// The cursor compares the full sort key (entry_date, created_at, entry_id);
// all entries of a batch share the first two fields, so a cursor without the
// entry ID would skip the rest of a batch split across a page boundary.
func buildListEntriesQuery(tenantID string, filter domain.EntryFilter, fetchLimit int, nextToken *string) (string, []interface{}, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM journal_entries
		WHERE tenant_id = $1
	`
	args := []interface{}{tenantID}

	if filter.AccountID != nil {
		args = append(args, *filter.AccountID)
		query += ` AND account_id = $` + strconv.Itoa(len(args))
	}
	if filter.From != nil {
		args = append(args, *filter.From)
		query += ` AND entry_date >= $` + strconv.Itoa(len(args))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		query += ` AND entry_date <= $` + strconv.Itoa(len(args))
	}

	if nextToken != nil && *nextToken != "" {
		lastEntryDate, lastCreatedAt, lastEntryID, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return "", nil, fmt.Errorf("%w: invalid nextToken", apperrors.ErrValidation)
		}
		args = append(args, lastEntryDate, lastCreatedAt, lastEntryID)
		query += ` AND (entry_date, created_at, entry_id) > ($` + strconv.Itoa(len(args)-2) +
			`, $` + strconv.Itoa(len(args)-1) + `, $` + strconv.Itoa(len(args)) + `)`
	}

	args = append(args, fetchLimit)
	query += ` ORDER BY entry_date, created_at, entry_id LIMIT $` + strconv.Itoa(len(args)) + `;`
	return query, args, nil
}

// ListEntries retrieves a token-paginated page of committed entries in
// chronological order, bounded by the filter.
func (r *PgxLedgerRepository) ListEntries(ctx context.Context, tenantID string, filter domain.EntryFilter, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	if limit <= 0 {
		limit = 50
	}
	// Fetch one extra row to know whether a next page exists.
	fetchLimit := limit + 1

	query, args, err := buildListEntriesQuery(tenantID, filter, fetchLimit, nextToken)
	if err != nil {
		return nil, nil, err
	}

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query entries for tenant %s: %w", tenantID, err)
	}
	defer rows.Close()

	modelEntries := make([]models.JournalEntry, 0, fetchLimit)
	for rows.Next() {
		m, err := scanEntry(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan entry row for tenant %s: %w", tenantID, err)
		}
		modelEntries = append(modelEntries, m)
	}

	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating entry rows for tenant %s: %w", tenantID, err)
	}

	var nextTokenVal *string
	results := modelEntries
	if len(modelEntries) > limit {
		last := modelEntries[limit-1]
		token := pagination.EncodeToken(last.EntryDate, last.CreatedAt, last.EntryID)
		nextTokenVal = &token
		results = modelEntries[:limit]
	}

	entries := make([]domain.JournalEntry, len(results))
	for i, m := range results {
		entries[i] = mapping.ToDomainEntry(m)
	}
	return entries, nextTokenVal, nil
}

// HasEntries reports whether any committed entry references the account.
func (r *PgxLedgerRepository) HasEntries(ctx context.Context, tenantID, accountID string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM journal_entries WHERE tenant_id = $1 AND account_id = $2);`

	var exists bool
	if err := r.Pool.QueryRow(ctx, query, tenantID, accountID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check entries for account %s: %w", accountID, err)
	}
	return exists, nil
}

func scanEntry(row pgx.Row) (models.JournalEntry, error) {
	var m models.JournalEntry
	err := row.Scan(
		&m.EntryID,
		&m.BatchID,
		&m.TenantID,
		&m.AccountID,
		&m.Side,
		&m.Amount,
		&m.EntryDate,
		&m.Reference,
		&m.Description,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}
