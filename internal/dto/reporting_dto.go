package dto

import (

	"github.com/fleetbooks/fleetbooks_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TrialBalanceRowResponse represents a row in the trial balance response.
type TrialBalanceRowResponse struct {
	AccountID   string          `json:"accountID"`
	Code        string          `json:"code"`
	AccountName string          `json:"accountName"`
	AccountType string          `json:"accountType"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// TrialBalanceResponse represents the trial balance report response.
type TrialBalanceResponse struct {
	AsOf   string                    `json:"asOf"`
	Rows   []TrialBalanceRowResponse `json:"rows"`
	Totals struct {
		Debit      decimal.Decimal `json:"debit"`
		Credit     decimal.Decimal `json:"credit"`
		Difference decimal.Decimal `json:"difference"`
	} `json:"totals"`
	IsBalanced bool `json:"isBalanced"`
}

// AccountAmountResponse represents an account with its amount in a report.
type AccountAmountResponse struct {
	AccountID string          `json:"accountID"`
	Code      string          `json:"code"`
	Name      string          `json:"name"`
	Amount    decimal.Decimal `json:"amount"`
}

// ProfitAndLossResponse represents the profit and loss report response.
type ProfitAndLossResponse struct {
	FromDate string                  `json:"fromDate"`
	ToDate   string                  `json:"toDate"`
	Income   []AccountAmountResponse `json:"income"`
	Expenses []AccountAmountResponse `json:"expenses"`
	Summary  struct {
		TotalIncome     decimal.Decimal `json:"totalIncome"`
		TotalExpenses   decimal.Decimal `json:"totalExpenses"`
		NetProfit       decimal.Decimal `json:"netProfit"`
		NetProfitMargin decimal.Decimal `json:"netProfitMargin"`
	} `json:"summary"`
}

// BalanceSheetResponse represents the balance sheet report response.
type BalanceSheetResponse struct {
	AsOf                string                  `json:"asOf"`
	CurrentAssets       []AccountAmountResponse `json:"currentAssets"`
	FixedAssets         []AccountAmountResponse `json:"fixedAssets"`
	CurrentLiabilities  []AccountAmountResponse `json:"currentLiabilities"`
	LongTermLiabilities []AccountAmountResponse `json:"longTermLiabilities"`
	Capital             []AccountAmountResponse `json:"capital"`
	Summary             struct {
		CurrentPeriodEarnings decimal.Decimal `json:"currentPeriodEarnings"`
		TotalAssets           decimal.Decimal `json:"totalAssets"`
		TotalLiabilities      decimal.Decimal `json:"totalLiabilities"`
		TotalEquity           decimal.Decimal `json:"totalEquity"`
	} `json:"summary"`
	Equation   string `json:"equation"`
	IsBalanced bool   `json:"isBalanced"`
}

const reportDateFormat = "2006-01-02"

// ToTrialBalanceResponse converts a domain trial balance to a DTO response.
func ToTrialBalanceResponse(report *domain.TrialBalanceReport) TrialBalanceResponse {
	response := TrialBalanceResponse{
		AsOf:       report.AsOf.Format(reportDateFormat),
		Rows:       make([]TrialBalanceRowResponse, len(report.Rows)),
		IsBalanced: report.IsBalanced,
	}
	for i, row := range report.Rows {
		response.Rows[i] = TrialBalanceRowResponse{
			AccountID:   row.AccountID,
			Code:        row.Code,
			AccountName: row.AccountName,
			AccountType: string(row.AccountType),
			Debit:       row.Debit,
			Credit:      row.Credit,
		}
	}
	response.Totals.Debit = report.TotalDebit
	response.Totals.Credit = report.TotalCredit
	response.Totals.Difference = report.Difference
	return response
}

func toAccountAmountResponses(amounts []domain.AccountAmount) []AccountAmountResponse {
	out := make([]AccountAmountResponse, len(amounts))
	for i, a := range amounts {
		out[i] = AccountAmountResponse{
			AccountID: a.AccountID,
			Code:      a.Code,
			Name:      a.Name,
			Amount:    a.Amount,
		}
	}
	return out
}

// ToProfitAndLossResponse converts a domain P&L report to a DTO response.
func ToProfitAndLossResponse(report *domain.ProfitLossReport) ProfitAndLossResponse {
	response := ProfitAndLossResponse{
		FromDate: report.From.Format(reportDateFormat),
		ToDate:   report.To.Format(reportDateFormat),
		Income:   toAccountAmountResponses(report.Income),
		Expenses: toAccountAmountResponses(report.Expenses),
	}
	response.Summary.TotalIncome = report.TotalIncome
	response.Summary.TotalExpenses = report.TotalExpenses
	response.Summary.NetProfit = report.NetProfit
	response.Summary.NetProfitMargin = report.NetProfitMargin
	return response
}

// ToBalanceSheetResponse converts a domain balance sheet to a DTO response.
func ToBalanceSheetResponse(report *domain.BalanceSheetReport) BalanceSheetResponse {
	response := BalanceSheetResponse{
		AsOf:                report.AsOf.Format(reportDateFormat),
		CurrentAssets:       toAccountAmountResponses(report.CurrentAssets),
		FixedAssets:         toAccountAmountResponses(report.FixedAssets),
		CurrentLiabilities:  toAccountAmountResponses(report.CurrentLiabilities),
		LongTermLiabilities: toAccountAmountResponses(report.LongTermLiabilities),
		Capital:             toAccountAmountResponses(report.Capital),
		Equation:            report.Equation,
		IsBalanced:          report.IsBalanced,
	}
	response.Summary.CurrentPeriodEarnings = report.CurrentPeriodEarnings
	response.Summary.TotalAssets = report.TotalAssets
	response.Summary.TotalLiabilities = report.TotalLiabilities
	response.Summary.TotalEquity = report.TotalEquity
	return response
}
