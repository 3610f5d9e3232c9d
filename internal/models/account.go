package models

import "time"

// AccountType mirrors domain.AccountType for DB storage.
type AccountType string

// Account is the DB-shaped representation of a chart-of-accounts row.
type Account struct {
	AccountID   string      `db:"account_id"`
	TenantID    string      `db:"tenant_id"`
	Code        string      `db:"code"`
	Name        string      `db:"name"`
	AccountType AccountType `db:"account_type"`
	Category    string      `db:"category"`
	Description string      `db:"description"`
	IsActive    bool        `db:"is_active"`
	AuditFields
}

// AuditFields holds standard audit columns shared by all tables.
type AuditFields struct {
	CreatedAt     time.Time `db:"created_at"`
	CreatedBy     string    `db:"created_by"`
	LastUpdatedAt time.Time `db:"last_updated_at"`
	LastUpdatedBy string    `db:"last_updated_by"`
}
