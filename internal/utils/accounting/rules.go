package accounting

import (
	"fmt"

	"github.com/fleetbooks/fleetbooks_app/internal/core/domain"
)

// Rule describes how an account type behaves: the side it naturally carries a
// balance on, and which side increases or decreases it.
type Rule struct {
	NormalBalance domain.EntrySide
	IncreaseSide  domain.EntrySide
	DecreaseSide  domain.EntrySide
}

// normalBalanceRules is the single source of truth for debit/credit
// orientation. Both the batch validator and the report engine consume this
// table; it must not be duplicated elsewhere.
var normalBalanceRules = map[domain.AccountType]Rule{
	domain.Asset:     {NormalBalance: domain.Debit, IncreaseSide: domain.Debit, DecreaseSide: domain.Credit},
	domain.Liability: {NormalBalance: domain.Credit, IncreaseSide: domain.Credit, DecreaseSide: domain.Debit},
	domain.Equity:    {NormalBalance: domain.Credit, IncreaseSide: domain.Credit, DecreaseSide: domain.Debit},
	domain.Income:    {NormalBalance: domain.Credit, IncreaseSide: domain.Credit, DecreaseSide: domain.Debit},
	domain.Expense:   {NormalBalance: domain.Debit, IncreaseSide: domain.Debit, DecreaseSide: domain.Credit},
}

// RuleFor returns the normal-balance rule for the given account type.
func RuleFor(t domain.AccountType) (Rule, error) {
	rule, ok := normalBalanceRules[t]
	if !ok {
		return Rule{}, fmt.Errorf("unknown account type %q", t)
	}
	return rule, nil
}

// NormalBalance returns the side on which an account of the given type
// naturally increases. Panics only on a type outside the fixed table, which
// the registry never persists.
func NormalBalance(t domain.AccountType) domain.EntrySide {
	rule, err := RuleFor(t)
	if err != nil {
		panic(err)
	}
	return rule.NormalBalance
}
