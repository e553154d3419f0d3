package accounts

import (
	"time"

	"github.com/google/uuid"
)

// RootType enumerates chart-of-accounts classifications. It determines the
// balance sign convention: Asset and Expense are debit-normal, the rest are
// credit-normal.
type RootType string

const (
	RootTypeAsset     RootType = "ASSET"
	RootTypeLiability RootType = "LIABILITY"
	RootTypeIncome    RootType = "INCOME"
	RootTypeExpense   RootType = "EXPENSE"
	RootTypeEquity    RootType = "EQUITY"
)

// Valid reports whether t is one of the five root classifications.
func (t RootType) Valid() bool {
	switch t {
	case RootTypeAsset, RootTypeLiability, RootTypeIncome, RootTypeExpense, RootTypeEquity:
		return true
	}
	return false
}

// DebitNormal reports whether a positive balance is expressed as debit-credit.
func (t RootType) DebitNormal() bool {
	return t == RootTypeAsset || t == RootTypeExpense
}

// Account models a chart of accounts node. Code is unique per tenant; group
// accounts aggregate children and are not meant to receive postings directly.
type Account struct {
	ID        uuid.UUID
	TenantID  uuid.UUID
	Code      string
	Name      string
	RootType  RootType
	IsGroup   bool
	ParentID  *uuid.UUID
	Currency  string
	CreatedAt time.Time
	UpdatedAt time.Time
}
