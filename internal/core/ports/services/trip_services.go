package services

import (
	"context"

	"github.com/fleetbooks/fleetbooks_app/internal/core/domain"
	"github.com/fleetbooks/fleetbooks_app/internal/dto"
)

// TripJournalSvcFacade translates completed-trip events into balanced journal
// batches and posts them through the ledger service.
type TripJournalSvcFacade interface {
	CreateTripJournal(ctx context.Context, tenantID string, req dto.TripCompletedRequest, actor string) (*domain.JournalBatch, error)
}
