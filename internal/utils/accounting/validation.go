package accounting

import (
	"fmt"

	"github.com/fleetbooks/fleetbooks_app/internal/apperrors"
	"github.com/fleetbooks/fleetbooks_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ValidateBatch checks a candidate journal batch against the double-entry
// rules. It is pure: no side effects, safe to run both before persistence and
// again inside the store's commit transaction.
//
// Checks run in a fixed order, each with its own error kind:
//  1. debit and credit totals must be exactly equal (decimal equality, no
//     floating tolerance),
//  2. the batch must have at least two entries,
//  3. no account may appear on both sides within the batch,
//  4. every account must exist in the supplied registry snapshot for the
//     batch's tenant and be active.
func ValidateBatch(tenantID string, entries []domain.JournalEntry, accounts map[string]domain.Account) error {
	debits := decimal.Zero
	credits := decimal.Zero
	for _, e := range entries {
		if err := e.Validate(); err != nil {
			return fmt.Errorf("%w: entry for account %s: %v", apperrors.ErrValidation, e.AccountID, err)
		}
		if e.Side == domain.Debit {
			debits = debits.Add(e.Amount)
		} else {
			credits = credits.Add(e.Amount)
		}
	}

	if !debits.Equal(credits) {
		return fmt.Errorf("%w: debits total %s, credits total %s",
			apperrors.ErrUnbalancedBatch, debits.String(), credits.String())
	}

	if len(entries) < 2 {
		return fmt.Errorf("%w: got %d", apperrors.ErrInsufficientLines, len(entries))
	}

	sides := make(map[string]domain.EntrySide, len(entries))
	for _, e := range entries {
		if prev, seen := sides[e.AccountID]; seen && prev != e.Side {
			return fmt.Errorf("%w: account %s", apperrors.ErrMixedSidesOnAccount, e.AccountID)
		}
		sides[e.AccountID] = e.Side
	}

	for _, e := range entries {
		acc, ok := accounts[e.AccountID]
		if !ok || acc.TenantID != tenantID {
			return fmt.Errorf("%w: account %s", apperrors.ErrUnknownAccount, e.AccountID)
		}
		if !acc.IsActive {
			return fmt.Errorf("%w: account %s is inactive", apperrors.ErrValidation, e.AccountID)
		}
	}

	return nil
}

// SignedAmount orients an entry's amount by its account's normal balance:
// positive when the entry moves the account toward its normal side.
func SignedAmount(e domain.JournalEntry, accountType domain.AccountType) (decimal.Decimal, error) {
	rule, err := RuleFor(accountType)
	if err != nil {
		return decimal.Zero, fmt.Errorf("account %s: %w", e.AccountID, err)
	}
	if e.Side == rule.IncreaseSide {
		return e.Amount, nil
	}
	return e.Amount.Neg(), nil
}

// BatchAmount computes the economic value of a balanced batch, the sum of its
// debit side.
func BatchAmount(entries []domain.JournalEntry) decimal.Decimal {
	total := decimal.Zero
	for _, e := range entries {
		if e.Side == domain.Debit {
			total = total.Add(e.Amount)
		}
	}
	return total
}
