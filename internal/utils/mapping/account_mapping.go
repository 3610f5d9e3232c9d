package mapping

import (
	"github.com/fleetbooks/fleetbooks_app/internal/core/domain"
	"github.com/fleetbooks/fleetbooks_app/internal/models"
)

// ToModelAccount converts a domain account to its DB representation.
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountID:   d.AccountID,
		TenantID:    d.TenantID,
		Code:        d.Code,
		Name:        d.Name,
		AccountType: models.AccountType(d.AccountType),
		Category:    d.Category,
		Description: d.Description,
		IsActive:    d.IsActive,
		AuditFields: toModelAuditFields(d.AuditFields),
	}
}

// ToDomainAccount converts a DB account row to the domain representation.
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:   m.AccountID,
		TenantID:    m.TenantID,
		Code:        m.Code,
		Name:        m.Name,
		AccountType: domain.AccountType(m.AccountType),
		Category:    m.Category,
		Description: m.Description,
		IsActive:    m.IsActive,
		AuditFields: toDomainAuditFields(m.AuditFields),
	}
}
