package accounting

import (
	"testing"

	"github.com/fleetbooks/fleetbooks_app/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestRuleFor(t *testing.T) {
	tests := []struct {
		accountType domain.AccountType
		normal      domain.EntrySide
	}{
		{domain.Asset, domain.Debit},
		{domain.Expense, domain.Debit},
		{domain.Liability, domain.Credit},
		{domain.Equity, domain.Credit},
		{domain.Income, domain.Credit},
	}

	for _, tc := range tests {
		t.Run(string(tc.accountType), func(t *testing.T) {
			rule, err := RuleFor(tc.accountType)
			assert.NoError(t, err)
			assert.Equal(t, tc.normal, rule.NormalBalance)
			assert.Equal(t, tc.normal, rule.IncreaseSide)
			assert.Equal(t, tc.normal.Opposite(), rule.DecreaseSide)
		})
	}
}

func TestRuleFor_UnknownType(t *testing.T) {
	_, err := RuleFor(domain.AccountType("GOODWILL"))
	assert.Error(t, err)
}

func TestNormalBalance(t *testing.T) {
	assert.Equal(t, domain.Debit, NormalBalance(domain.Asset))
	assert.Equal(t, domain.Credit, NormalBalance(domain.Income))
}

func TestNormalBalance_PanicsOnUnknownType(t *testing.T) {
	assert.Panics(t, func() {
		NormalBalance(domain.AccountType("GOODWILL"))
	})
}
