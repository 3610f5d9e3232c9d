package repositories

import (
	"context"

	"github.com/fleetbooks/fleetbooks_app/internal/core/domain"
)

// BatchWriter defines the single mutating operation of the ledger store.
type BatchWriter interface {
	// SaveBatch atomically persists a batch header and its entries: either
	// every entry becomes durably visible or none do. The store re-validates
	// the batch against the registry inside its own transaction; caller-side
	// validation is not trusted alone. A duplicate reference within the
	// tenant fails with ErrDuplicate.
	SaveBatch(ctx context.Context, batch domain.JournalBatch, entries []domain.JournalEntry) error
}

// BatchReader defines read operations on committed batches.
type BatchReader interface {
	// FindBatchByReference retrieves a batch header by its tenant-scoped reference.
	FindBatchByReference(ctx context.Context, tenantID, reference string) (*domain.JournalBatch, error)

	// FindEntriesByBatchID retrieves all entries of one committed batch.
	FindEntriesByBatchID(ctx context.Context, tenantID, batchID string) ([]domain.JournalEntry, error)
}

// EntryReader defines read operations over the entry history.
type EntryReader interface {
	// ListEntries retrieves committed entries for a tenant, bounded by the
	// filter, ordered by entry date then insertion order. The result is a
	// finite page; the returned token restarts the query after the last row.
	ListEntries(ctx context.Context, tenantID string, filter domain.EntryFilter, limit int, nextToken *string) ([]domain.JournalEntry, *string, error)

	// HasEntries reports whether any committed entry references the account.
	HasEntries(ctx context.Context, tenantID, accountID string) (bool, error)
}

// LedgerRepositoryFacade combines all ledger repository interfaces. There is
// deliberately no update or delete surface: corrections are new offsetting
// batches.
type LedgerRepositoryFacade interface {
	BatchWriter
	BatchReader
	EntryReader
}
