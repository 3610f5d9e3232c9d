package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// EntrySide indicates whether a journal entry is a Debit or a Credit.
type EntrySide string

const (
	Debit  EntrySide = "DEBIT"
	Credit EntrySide = "CREDIT"
)

// Valid reports whether s is a recognized entry side.
func (s EntrySide) Valid() bool {
	return s == Debit || s == Credit
}

// Opposite returns the other side.
func (s EntrySide) Opposite() EntrySide {
	if s == Debit {
		return Credit
	}
	return Debit
}

// BatchStatus indicates the state of a journal batch. Posted is the only
// state: entries are immutable once committed and corrections are modeled as
// new offsetting batches, never as mutations.
type BatchStatus string

const (
	Posted BatchStatus = "POSTED"
)

// JournalEntry is a single debit or credit posting against one account.
// Entries are created only as part of a validated batch and never updated or
// deleted after posting.
type JournalEntry struct {
	EntryID     string          `json:"entryID"`
	BatchID     string          `json:"batchID"`
	TenantID    string          `json:"tenantID"`
	AccountID   string          `json:"accountID"`
	Side        EntrySide       `json:"side"`
	Amount      decimal.Decimal `json:"amount"`
	EntryDate   time.Time       `json:"entryDate"`
	Reference   string          `json:"reference"`
	Description string          `json:"description"`
	AuditFields
}

// Validate checks the structural integrity of a single entry. Batch-level
// rules (balance, line count, side mixing) live in the batch validator.
func (e JournalEntry) Validate() error {
	if e.AccountID == "" {
		return errors.New("entry account ID is required")
	}
	if !e.Side.Valid() {
		return errors.New("entry side must be DEBIT or CREDIT")
	}
	if e.Amount.LessThanOrEqual(decimal.Zero) {
		return errors.New("entry amount must be positive")
	}
	return nil
}

// JournalBatch is a set of journal entries sharing one reference, committed
// atomically. Amount is the batch's economic value, the sum of its debit side.
type JournalBatch struct {
	BatchID     string          `json:"batchID"`
	TenantID    string          `json:"tenantID"`
	Reference   string          `json:"reference"`
	BatchDate   time.Time       `json:"batchDate"`
	Description string          `json:"description"`
	Status      BatchStatus     `json:"status"`
	Amount      decimal.Decimal `json:"amount"`
	AuditFields
	Entries []JournalEntry `json:"entries,omitempty"`
}

// EntryFilter bounds a ledger entry query. Nil fields are unbounded.
type EntryFilter struct {
	AccountID *string
	From      *time.Time
	To        *time.Time
}
