package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountActivity is the raw per-account aggregate the reporting repository
// produces: total debits and credits within the queried window, together with
// the registry attributes the report engine needs to orient the figures.
type AccountActivity struct {
	AccountID   string
	Code        string
	Name        string
	AccountType AccountType
	Category    string
	Debits      decimal.Decimal
	Credits     decimal.Decimal
}

// TrialBalanceRow represents a single row in a trial balance report.
type TrialBalanceRow struct {
	AccountID   string          `json:"accountID"`
	Code        string          `json:"code"`
	AccountName string          `json:"accountName"`
	AccountType AccountType     `json:"accountType"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// TrialBalanceReport lists every registry account's balance as of a date.
// A column mismatch beyond tolerance is flagged, never silently returned.
type TrialBalanceReport struct {
	AsOf        time.Time         `json:"asOf"`
	Rows        []TrialBalanceRow `json:"rows"`
	TotalDebit  decimal.Decimal   `json:"totalDebit"`
	TotalCredit decimal.Decimal   `json:"totalCredit"`
	Difference  decimal.Decimal   `json:"difference"`
	IsBalanced  bool              `json:"isBalanced"`
}

// AccountAmount represents an account with its net amount for financial reports.
type AccountAmount struct {
	AccountID string          `json:"accountID"`
	Code      string          `json:"code"`
	Name      string          `json:"name"`
	Amount    decimal.Decimal `json:"amount"`
}

// ProfitLossReport represents a profit and loss statement over a period.
// NetProfitMargin is a percentage and is zero when there is no income.
type ProfitLossReport struct {
	From            time.Time       `json:"from"`
	To              time.Time       `json:"to"`
	Income          []AccountAmount `json:"income"`
	Expenses        []AccountAmount `json:"expenses"`
	TotalIncome     decimal.Decimal `json:"totalIncome"`
	TotalExpenses   decimal.Decimal `json:"totalExpenses"`
	NetProfit       decimal.Decimal `json:"netProfit"`
	NetProfitMargin decimal.Decimal `json:"netProfitMargin"`
}

// BalanceSheetReport represents a balance sheet as of a date. The accounting
// equation is validated within tolerance; a mismatch sets IsBalanced false
// rather than failing the request.
type BalanceSheetReport struct {
	AsOf                  time.Time       `json:"asOf"`
	CurrentAssets         []AccountAmount `json:"currentAssets"`
	FixedAssets           []AccountAmount `json:"fixedAssets"`
	CurrentLiabilities    []AccountAmount `json:"currentLiabilities"`
	LongTermLiabilities   []AccountAmount `json:"longTermLiabilities"`
	Capital               []AccountAmount `json:"capital"`
	CurrentPeriodEarnings decimal.Decimal `json:"currentPeriodEarnings"`
	TotalAssets           decimal.Decimal `json:"totalAssets"`
	TotalLiabilities      decimal.Decimal `json:"totalLiabilities"`
	TotalEquity           decimal.Decimal `json:"totalEquity"`
	Equation              string          `json:"equation"`
	IsBalanced            bool            `json:"isBalanced"`
}
