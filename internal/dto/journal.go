package dto

import (
	"time"

	"github.com/fleetbooks/fleetbooks_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BatchEntryInput is one candidate posting line within a batch request.
type BatchEntryInput struct {
	AccountID   string           `json:"accountID" binding:"required"`
	Side        domain.EntrySide `json:"side" binding:"required,oneof=DEBIT CREDIT"`
	Amount      decimal.Decimal  `json:"amount" binding:"required,positivedecimal"`
	Description string           `json:"description"`
}

// CreateJournalBatchRequest defines a candidate journal batch. The reference
// groups the entries and must be unique within the tenant. Date is an RFC3339
// timestamp; only its date part is meaningful for posting.
type CreateJournalBatchRequest struct {
	Reference   string            `json:"reference" binding:"required"`
	Date        time.Time         `json:"date" binding:"required"`
	Description string            `json:"description"`
	Entries     []BatchEntryInput `json:"entries" binding:"required,min=2,dive"`
}

// JournalEntryResponse defines the data returned for a committed entry.
type JournalEntryResponse struct {
	EntryID     string           `json:"entryID"`
	BatchID     string           `json:"batchID"`
	AccountID   string           `json:"accountID"`
	Side        domain.EntrySide `json:"side"`
	Amount      decimal.Decimal  `json:"amount"`
	EntryDate   time.Time        `json:"entryDate"`
	Reference   string           `json:"reference"`
	Description string           `json:"description"`
}

// JournalBatchResponse defines the data returned for a committed batch.
type JournalBatchResponse struct {
	BatchID     string                 `json:"batchID"`
	Reference   string                 `json:"reference"`
	Date        time.Time              `json:"date"`
	Description string                 `json:"description"`
	Status      domain.BatchStatus     `json:"status"`
	Amount      decimal.Decimal        `json:"amount"`
	Entries     []JournalEntryResponse `json:"entries,omitempty"`
}

// ListEntriesParams bounds an entry listing request.
type ListEntriesParams struct {
	AccountID *string
	From      *time.Time
	To        *time.Time
	Limit     int
	NextToken *string
}

// ListEntriesResponse is one page of committed entries.
type ListEntriesResponse struct {
	Entries   []JournalEntryResponse `json:"entries"`
	NextToken *string                `json:"nextToken,omitempty"`
}

// ToJournalEntryResponse converts a domain entry to its response DTO.
func ToJournalEntryResponse(e domain.JournalEntry) JournalEntryResponse {
	return JournalEntryResponse{
		EntryID:     e.EntryID,
		BatchID:     e.BatchID,
		AccountID:   e.AccountID,
		Side:        e.Side,
		Amount:      e.Amount,
		EntryDate:   e.EntryDate,
		Reference:   e.Reference,
		Description: e.Description,
	}
}

// ToJournalEntryResponses converts a slice of domain entries.
func ToJournalEntryResponses(entries []domain.JournalEntry) []JournalEntryResponse {
	out := make([]JournalEntryResponse, len(entries))
	for i, e := range entries {
		out[i] = ToJournalEntryResponse(e)
	}
	return out
}

// ToJournalBatchResponse converts a domain batch to its response DTO.
func ToJournalBatchResponse(b *domain.JournalBatch) JournalBatchResponse {
	return JournalBatchResponse{
		BatchID:     b.BatchID,
		Reference:   b.Reference,
		Date:        b.BatchDate,
		Description: b.Description,
		Status:      b.Status,
		Amount:      b.Amount,
		Entries:     ToJournalEntryResponses(b.Entries),
	}
}
