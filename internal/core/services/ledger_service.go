package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/fleetbooks/fleetbooks_app/internal/apperrors"
	"github.com/fleetbooks/fleetbooks_app/internal/core/domain"
	portsrepo "github.com/fleetbooks/fleetbooks_app/internal/core/ports/repositories"
	portssvc "github.com/fleetbooks/fleetbooks_app/internal/core/ports/services"
	"github.com/fleetbooks/fleetbooks_app/internal/dto"
	"github.com/fleetbooks/fleetbooks_app/internal/middleware"
	"github.com/fleetbooks/fleetbooks_app/internal/utils/accounting"
)

const (
	defaultCommitRetryMax     = 3
	defaultCommitRetryBackoff = 50 * time.Millisecond
	defaultListEntriesLimit   = 50
	reversalReferencePrefix   = "REV-"
)

// ledgerService orchestrates journal batch posting: validation against the
// registry, atomic commit through the ledger store, and bounded retry on
// transient storage contention.
type ledgerService struct {
	ledgerRepo   portsrepo.LedgerRepositoryFacade
	registrySvc  portssvc.RegistryReaderSvc
	retryMax     int
	retryBackoff time.Duration
}

// LedgerServiceOption is a functional option for configuring the ledger service.
type LedgerServiceOption func(*ledgerService)

// WithCommitRetryPolicy sets how often and how patiently a transiently failed
// commit is retried before the error surfaces.
func WithCommitRetryPolicy(maxRetries int, backoff time.Duration) LedgerServiceOption {
	return func(s *ledgerService) {
		if maxRetries >= 0 {
			s.retryMax = maxRetries
		}
		if backoff > 0 {
			s.retryBackoff = backoff
		}
	}
}

// NewLedgerService creates a new ledger service.
func NewLedgerService(ledgerRepo portsrepo.LedgerRepositoryFacade, registrySvc portssvc.RegistryReaderSvc, options ...LedgerServiceOption) portssvc.LedgerSvcFacade {
	svc := &ledgerService{
		ledgerRepo:   ledgerRepo,
		registrySvc:  registrySvc,
		retryMax:     defaultCommitRetryMax,
		retryBackoff: defaultCommitRetryBackoff,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// CommitBatch validates a candidate batch and commits it atomically.
// Validation runs twice: here, and again inside the store's transaction after
// the accounts are locked, so a racing account change cannot slip an invalid
// batch through.
func (s *ledgerService) CommitBatch(ctx context.Context, tenantID string, req dto.CreateJournalBatchRequest, actor string) (*domain.JournalBatch, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now().UTC()
	batchID := uuid.NewString()

	entries := make([]domain.JournalEntry, len(req.Entries))
	accountIDs := make([]string, 0, len(req.Entries))
	for i, in := range req.Entries {
		entries[i] = domain.JournalEntry{
			EntryID:     uuid.NewString(),
			BatchID:     batchID,
			TenantID:    tenantID,
			AccountID:   in.AccountID,
			Side:        in.Side,
			Amount:      in.Amount,
			EntryDate:   req.Date,
			Reference:   req.Reference,
			Description: in.Description,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     actor,
				LastUpdatedAt: now,
				LastUpdatedBy: actor,
			},
		}
		accountIDs = append(accountIDs, in.AccountID)
	}

	accounts, err := s.registrySvc.GetAccountsByIDs(ctx, tenantID, uniqueStrings(accountIDs))
	if err != nil {
		logger.Error("Failed to fetch accounts for batch validation", slog.String("error", err.Error()), slog.String("tenant_id", tenantID))
		return nil, fmt.Errorf("failed to fetch accounts: %w", err)
	}

	if err := accounting.ValidateBatch(tenantID, entries, accounts); err != nil {
		logger.Warn("Batch rejected by validation", slog.String("reference", req.Reference), slog.String("error", err.Error()))
		return nil, err
	}

	batch := domain.JournalBatch{
		BatchID:     batchID,
		TenantID:    tenantID,
		Reference:   req.Reference,
		BatchDate:   req.Date,
		Description: req.Description,
		Status:      domain.Posted,
		Amount:      accounting.BatchAmount(entries),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor,
			LastUpdatedAt: now,
			LastUpdatedBy: actor,
		},
	}

	if err := s.commitWithRetry(ctx, batch, entries); err != nil {
		logger.Error("Failed to commit batch", slog.String("error", err.Error()), slog.String("reference", req.Reference), slog.String("tenant_id", tenantID))
		return nil, err
	}

	logger.Info("Batch committed", slog.String("batch_id", batchID), slog.String("reference", req.Reference), slog.String("tenant_id", tenantID), slog.Int("entry_count", len(entries)))
	batch.Entries = entries
	return &batch, nil
}

// commitWithRetry calls SaveBatch, retrying transient failures with linear
// backoff up to the configured bound. A failed commit leaves no partial
// entries, so retrying the whole batch is safe.
func (s *ledgerService) commitWithRetry(ctx context.Context, batch domain.JournalBatch, entries []domain.JournalEntry) error {
	var err error
	for attempt := 0; attempt <= s.retryMax; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(time.Duration(attempt) * s.retryBackoff):
			}
		}

		err = s.ledgerRepo.SaveBatch(ctx, batch, entries)
		if err == nil {
			return nil
		}
		if !apperrors.IsTransient(err) {
			return err
		}
		middleware.GetLoggerFromCtx(ctx).Warn("Transient commit failure, retrying",
			slog.String("batch_id", batch.BatchID), slog.Int("attempt", attempt+1), slog.String("error", err.Error()))
	}
	return fmt.Errorf("commit failed after %d retries: %w", s.retryMax, err)
}

// GetBatchByReference retrieves a committed batch with its entries.
func (s *ledgerService) GetBatchByReference(ctx context.Context, tenantID, reference string) (*domain.JournalBatch, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	batch, err := s.ledgerRepo.FindBatchByReference(ctx, tenantID, reference)
	if err != nil {
		return nil, err
	}

	entries, err := s.ledgerRepo.FindEntriesByBatchID(ctx, tenantID, batch.BatchID)
	if err != nil {
		logger.Error("Failed to fetch entries for batch", slog.String("error", err.Error()), slog.String("batch_id", batch.BatchID))
		return nil, fmt.Errorf("failed to retrieve entries for batch %s: %w", batch.BatchID, err)
	}
	batch.Entries = entries

	return batch, nil
}

// ListEntries retrieves a filtered, token-paginated page of committed entries.
func (s *ledgerService) ListEntries(ctx context.Context, tenantID string, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	limit := params.Limit
	if limit <= 0 {
		limit = defaultListEntriesLimit
	}

	filter := domain.EntryFilter{
		AccountID: params.AccountID,
		From:      params.From,
		To:        params.To,
	}

	entries, nextToken, err := s.ledgerRepo.ListEntries(ctx, tenantID, filter, limit, params.NextToken)
	if err != nil {
		logger.Error("Failed to list entries", slog.String("error", err.Error()), slog.String("tenant_id", tenantID))
		return nil, fmt.Errorf("failed to retrieve entries: %w", err)
	}

	return &dto.ListEntriesResponse{
		Entries:   dto.ToJournalEntryResponses(entries),
		NextToken: nextToken,
	}, nil
}

// ReverseBatch posts a new offsetting batch for a committed one, flipping
// every entry's side. The original batch stays POSTED and untouched;
// correction is purely additive.
func (s *ledgerService) ReverseBatch(ctx context.Context, tenantID, reference, actor string) (*domain.JournalBatch, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if strings.HasPrefix(reference, reversalReferencePrefix) {
		return nil, fmt.Errorf("%w: cannot reverse a reversal batch", apperrors.ErrConflict)
	}

	original, err := s.GetBatchByReference(ctx, tenantID, reference)
	if err != nil {
		return nil, err
	}

	reversalEntries := make([]dto.BatchEntryInput, len(original.Entries))
	for i, e := range original.Entries {
		reversalEntries[i] = dto.BatchEntryInput{
			AccountID:   e.AccountID,
			Side:        e.Side.Opposite(),
			Amount:      e.Amount,
			Description: e.Description,
		}
	}

	req := dto.CreateJournalBatchRequest{
		Reference:   reversalReferencePrefix + reference,
		Date:        original.BatchDate,
		Description: fmt.Sprintf("Reversal of %s", reference),
		Entries:     reversalEntries,
	}

	reversal, err := s.CommitBatch(ctx, tenantID, req, actor)
	if err != nil {
		return nil, err
	}

	logger.Info("Batch reversed", slog.String("original_reference", reference), slog.String("reversal_batch_id", reversal.BatchID))
	return reversal, nil
}

// uniqueStrings returns a slice containing only the unique strings from the input.
func uniqueStrings(input []string) []string {
	seen := make(map[string]struct{}, len(input))
	result := make([]string, 0, len(input))
	for _, str := range input {
		if _, ok := seen[str]; !ok {
			seen[str] = struct{}{}
			result = append(result, str)
		}
	}
	return result
}
