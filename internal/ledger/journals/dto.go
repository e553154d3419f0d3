package journals

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/meridian-erp/meridian-erp/internal/ledger/shared"
)

// LineInput describes one debit or credit line of a new journal entry.
type LineInput struct {
	AccountCode string
	Debit       decimal.Decimal
	Credit      decimal.Decimal
	CostCenter  string
	Party       string
}

// CreateInput groups fields required to create a journal entry in Draft.
type CreateInput struct {
	VoucherType   string
	PostingDate   time.Time
	Company       string
	ReferenceNo   string
	ReferenceDate *time.Time
	UserRemark    string
	Lines         []LineInput
}

// Validate enforces the core accounting identity before any write: the
// line set must balance at 2-decimal precision.
func (in CreateInput) Validate() error {
	if len(in.Lines) == 0 {
		return shared.ErrEmptyLines
	}
	if in.PostingDate.IsZero() {
		return errors.New("ledger: posting date is required")
	}
	debit := decimal.Zero
	credit := decimal.Zero
	for _, line := range in.Lines {
		if strings.TrimSpace(line.AccountCode) == "" {
			return errors.New("ledger: line missing account code")
		}
		if line.Debit.IsNegative() || line.Credit.IsNegative() {
			return shared.ErrNegativeAmount
		}
		if line.Debit.IsPositive() && line.Credit.IsPositive() {
			return shared.ErrBothSides
		}
		debit = debit.Add(line.Debit)
		credit = credit.Add(line.Credit)
	}
	if !debit.Round(2).Equal(credit.Round(2)) {
		return shared.ErrUnbalanced
	}
	return nil
}
