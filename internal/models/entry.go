package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntrySide mirrors domain.EntrySide for DB storage.
type EntrySide string

// BatchStatus mirrors domain.BatchStatus for DB storage.
type BatchStatus string

// JournalBatch is the DB-shaped header row for an atomically committed batch.
type JournalBatch struct {
	BatchID     string          `db:"batch_id"`
	TenantID    string          `db:"tenant_id"`
	Reference   string          `db:"reference"`
	BatchDate   time.Time       `db:"batch_date"`
	Description string          `db:"description"`
	Status      BatchStatus     `db:"status"`
	Amount      decimal.Decimal `db:"amount"`
	AuditFields
}

// JournalEntry is the DB-shaped representation of a single posting line.
// Rows are append-only; there is no update or delete path.
type JournalEntry struct {
	EntryID     string          `db:"entry_id"`
	BatchID     string          `db:"batch_id"`
	TenantID    string          `db:"tenant_id"`
	AccountID   string          `db:"account_id"`
	Side        EntrySide       `db:"side"`
	Amount      decimal.Decimal `db:"amount"`
	EntryDate   time.Time       `db:"entry_date"`
	Reference   string          `db:"reference"`
	Description string          `db:"description"`
	AuditFields
}
