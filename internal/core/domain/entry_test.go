package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestEntrySide(t *testing.T) {
	assert.True(t, Debit.Valid())
	assert.True(t, Credit.Valid())
	assert.False(t, EntrySide("BOTH").Valid())

	assert.Equal(t, Credit, Debit.Opposite())
	assert.Equal(t, Debit, Credit.Opposite())
}

func TestAccountTypeValid(t *testing.T) {
	for _, at := range []AccountType{Asset, Liability, Equity, Income, Expense} {
		assert.True(t, at.Valid(), string(at))
	}
	assert.False(t, AccountType("GOODWILL").Valid())
}

func TestJournalEntryValidate(t *testing.T) {
	valid := JournalEntry{
		AccountID: "acc-1",
		Side:      Debit,
		Amount:    decimal.NewFromInt(100),
	}
	assert.NoError(t, valid.Validate())

	missingAccount := valid
	missingAccount.AccountID = ""
	assert.Error(t, missingAccount.Validate())

	badSide := valid
	badSide.Side = EntrySide("BOTH")
	assert.Error(t, badSide.Validate())

	zeroAmount := valid
	zeroAmount.Amount = decimal.Zero
	assert.Error(t, zeroAmount.Validate())

	negativeAmount := valid
	negativeAmount.Amount = decimal.NewFromInt(-5)
	assert.Error(t, negativeAmount.Validate())
}
