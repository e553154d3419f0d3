package reports

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/meridian-erp/meridian-erp/internal/ledger/accounts"
)

// ProfitAndLossAccount represents an income or expense account summary.
type ProfitAndLossAccount struct {
	Code   string          `json:"code"`
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
}

// ProfitAndLossSection groups accounts by nature.
type ProfitAndLossSection struct {
	Label    string                 `json:"label"`
	Accounts []ProfitAndLossAccount `json:"accounts"`
	Total    decimal.Decimal        `json:"total"`
}

// ProfitAndLoss contains the structured output for the report.
type ProfitAndLoss struct {
	Income    ProfitAndLossSection `json:"income"`
	Expense   ProfitAndLossSection `json:"expense"`
	NetIncome decimal.Decimal      `json:"netIncome"`
}

// BuildProfitAndLoss aggregates balances into income and expense sections.
// Income accounts contribute credit minus debit, expense accounts debit
// minus credit.
func BuildProfitAndLoss(rows []AccountBalance) ProfitAndLoss {
	income := ProfitAndLossSection{Label: "Income"}
	expense := ProfitAndLossSection{Label: "Expense"}

	for _, acc := range rows {
		switch acc.RootType {
		case accounts.RootTypeIncome:
			row := ProfitAndLossAccount{Code: acc.Code, Name: acc.Name, Amount: acc.TotalCredit.Sub(acc.TotalDebit)}
			income.Accounts = append(income.Accounts, row)
			income.Total = income.Total.Add(row.Amount)
		case accounts.RootTypeExpense:
			row := ProfitAndLossAccount{Code: acc.Code, Name: acc.Name, Amount: acc.TotalDebit.Sub(acc.TotalCredit)}
			expense.Accounts = append(expense.Accounts, row)
			expense.Total = expense.Total.Add(row.Amount)
		}
	}

	sort.Slice(income.Accounts, func(i, j int) bool { return income.Accounts[i].Code < income.Accounts[j].Code })
	sort.Slice(expense.Accounts, func(i, j int) bool { return expense.Accounts[i].Code < expense.Accounts[j].Code })

	return ProfitAndLoss{
		Income:    income,
		Expense:   expense,
		NetIncome: income.Total.Sub(expense.Total),
	}
}
