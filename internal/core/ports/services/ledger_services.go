package services

import (
	"context"

	"github.com/fleetbooks/fleetbooks_app/internal/core/domain"
	"github.com/fleetbooks/fleetbooks_app/internal/dto"
)

// LedgerSvcFacade defines posting and reading of journal batches.
type LedgerSvcFacade interface {
	// CommitBatch validates a candidate batch and commits it atomically.
	// Validation failures reject the batch in full; transient storage
	// failures are retried within a fixed bound before surfacing.
	CommitBatch(ctx context.Context, tenantID string, req dto.CreateJournalBatchRequest, actor string) (*domain.JournalBatch, error)

	// GetBatchByReference retrieves a committed batch with its entries.
	GetBatchByReference(ctx context.Context, tenantID, reference string) (*domain.JournalBatch, error)

	// ListEntries retrieves a filtered, token-paginated page of entries.
	ListEntries(ctx context.Context, tenantID string, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error)

	// ReverseBatch posts a new offsetting batch for a committed one. The
	// original batch is never mutated.
	ReverseBatch(ctx context.Context, tenantID, reference, actor string) (*domain.JournalBatch, error)
}
