package mapping

import (
	"github.com/fleetbooks/fleetbooks_app/internal/core/domain"
	"github.com/fleetbooks/fleetbooks_app/internal/models"
)

// ToModelBatch converts a domain journal batch header to its DB representation.
func ToModelBatch(d domain.JournalBatch) models.JournalBatch {
	return models.JournalBatch{
		BatchID:     d.BatchID,
		TenantID:    d.TenantID,
		Reference:   d.Reference,
		BatchDate:   d.BatchDate,
		Description: d.Description,
		Status:      models.BatchStatus(d.Status),
		Amount:      d.Amount,
		AuditFields: toModelAuditFields(d.AuditFields),
	}
}

// ToDomainBatch converts a DB batch row to the domain representation.
func ToDomainBatch(m models.JournalBatch) domain.JournalBatch {
	return domain.JournalBatch{
		BatchID:     m.BatchID,
		TenantID:    m.TenantID,
		Reference:   m.Reference,
		BatchDate:   m.BatchDate,
		Description: m.Description,
		Status:      domain.BatchStatus(m.Status),
		Amount:      m.Amount,
		AuditFields: toDomainAuditFields(m.AuditFields),
	}
}

// ToModelEntry converts a domain journal entry to its DB representation.
func ToModelEntry(d domain.JournalEntry) models.JournalEntry {
	return models.JournalEntry{
		EntryID:     d.EntryID,
		BatchID:     d.BatchID,
		TenantID:    d.TenantID,
		AccountID:   d.AccountID,
		Side:        models.EntrySide(d.Side),
		Amount:      d.Amount,
		EntryDate:   d.EntryDate,
		Reference:   d.Reference,
		Description: d.Description,
		AuditFields: toModelAuditFields(d.AuditFields),
	}
}

// ToDomainEntry converts a DB entry row to the domain representation.
func ToDomainEntry(m models.JournalEntry) domain.JournalEntry {
	return domain.JournalEntry{
		EntryID:     m.EntryID,
		BatchID:     m.BatchID,
		TenantID:    m.TenantID,
		AccountID:   m.AccountID,
		Side:        domain.EntrySide(m.Side),
		Amount:      m.Amount,
		EntryDate:   m.EntryDate,
		Reference:   m.Reference,
		Description: m.Description,
		AuditFields: toDomainAuditFields(m.AuditFields),
	}
}
