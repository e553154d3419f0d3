// Package reports derives account balances, the trial balance, profit and
// loss, and the balance sheet purely by aggregating general ledger rows.
package reports

import (
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/meridian-erp/meridian-erp/internal/ledger/accounts"
)

// AccountBalance models a ledger account with aggregated debit and credit
// totals over some posting-date window.
type AccountBalance struct {
	AccountID   uuid.UUID         `json:"accountId"`
	Code        string            `json:"code"`
	Name        string            `json:"name"`
	RootType    accounts.RootType `json:"rootType"`
	TotalDebit  decimal.Decimal   `json:"totalDebit"`
	TotalCredit decimal.Decimal   `json:"totalCredit"`
}

// Balance applies the sign convention for the account's classification:
// debit minus credit for debit-normal accounts, credit minus debit otherwise.
func (a AccountBalance) Balance() decimal.Decimal {
	if a.RootType.DebitNormal() {
		return a.TotalDebit.Sub(a.TotalCredit)
	}
	return a.TotalCredit.Sub(a.TotalDebit)
}

// GroupKey returns a key used for grouping trial balance rows.
func (a AccountBalance) GroupKey() string {
	if idx := strings.Index(a.Code, "."); idx > 0 {
		return a.Code[:idx]
	}
	if len(a.Code) >= 2 {
		return a.Code[:2]
	}
	return a.Code
}

// TrialBalanceAccount represents a row inside a trial balance group.
type TrialBalanceAccount struct {
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	RootType    string          `json:"rootType"`
	TotalDebit  decimal.Decimal `json:"totalDebit"`
	TotalCredit decimal.Decimal `json:"totalCredit"`
	Balance     decimal.Decimal `json:"balance"`
}

// TrialBalanceGroup aggregates accounts for presentation.
type TrialBalanceGroup struct {
	Key         string                `json:"key"`
	Accounts    []TrialBalanceAccount `json:"accounts"`
	TotalDebit  decimal.Decimal       `json:"totalDebit"`
	TotalCredit decimal.Decimal       `json:"totalCredit"`
}

// TrialBalance is the final structure returned to callers. Zero-balance
// accounts are retained rather than suppressed.
type TrialBalance struct {
	Groups      []TrialBalanceGroup `json:"groups"`
	TotalDebit  decimal.Decimal     `json:"totalDebit"`
	TotalCredit decimal.Decimal     `json:"totalCredit"`
}

// BuildTrialBalance converts account balances into grouped trial balance data.
func BuildTrialBalance(rows []AccountBalance) TrialBalance {
	groups := make(map[string]*TrialBalanceGroup)
	keys := make([]string, 0)
	for _, acc := range rows {
		key := acc.GroupKey()
		grp, ok := groups[key]
		if !ok {
			grp = &TrialBalanceGroup{Key: key}
			groups[key] = grp
			keys = append(keys, key)
		}
		row := TrialBalanceAccount{
			Code:        acc.Code,
			Name:        acc.Name,
			RootType:    string(acc.RootType),
			TotalDebit:  acc.TotalDebit,
			TotalCredit: acc.TotalCredit,
			Balance:     acc.Balance(),
		}
		grp.Accounts = append(grp.Accounts, row)
		grp.TotalDebit = grp.TotalDebit.Add(row.TotalDebit)
		grp.TotalCredit = grp.TotalCredit.Add(row.TotalCredit)
	}

	sort.Strings(keys)
	result := TrialBalance{}
	for _, key := range keys {
		grp := groups[key]
		sort.Slice(grp.Accounts, func(i, j int) bool {
			return grp.Accounts[i].Code < grp.Accounts[j].Code
		})
		result.Groups = append(result.Groups, *grp)
		result.TotalDebit = result.TotalDebit.Add(grp.TotalDebit)
		result.TotalCredit = result.TotalCredit.Add(grp.TotalCredit)
	}
	return result
}
