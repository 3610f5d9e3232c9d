package domain

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Income    AccountType = "INCOME"
	Expense   AccountType = "EXPENSE"
)

// Valid reports whether t is one of the five account types.
func (t AccountType) Valid() bool {
	switch t {
	case Asset, Liability, Equity, Income, Expense:
		return true
	}
	return false
}

// Account categories used by the report engine to split balance sheet
// sections. Category is free-form; these are the values the engine
// recognizes specially.
const (
	CategoryCash       = "Cash"
	CategoryBank       = "Bank"
	CategoryCurrent    = "Current"
	CategoryLongTerm   = "LongTerm"
	CategoryCapital    = "Capital"
	CategoryReceivable = "Receivable"
	CategoryTransport  = "Transport"
)

// Account represents a financial account within a tenant's chart of accounts.
// AccountType is immutable once journal entries reference the account.
type Account struct {
	AccountID   string      `json:"accountID"`
	TenantID    string      `json:"tenantID"`
	Code        string      `json:"code"`
	Name        string      `json:"name"`
	AccountType AccountType `json:"accountType"`
	Category    string      `json:"category"`
	Description string      `json:"description"`
	IsActive    bool        `json:"isActive"`
	AuditFields
}
