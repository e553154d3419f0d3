// Package gl defines the general ledger row: the append-only, immutable
// record every report is derived from.
package gl

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// VoucherTypeJournalEntry tags GL rows materialised from journal entries.
const VoucherTypeJournalEntry = "Journal Entry"

// Entry is one ledger row. Exactly one of Debit/Credit is strictly
// positive. Rows are never deleted and amounts never change in place;
// is_cancelled is the only mutable field (soft reversal marker).
type Entry struct {
	ID                 uuid.UUID
	TenantID           uuid.UUID
	PostingDate        time.Time
	AccountID          uuid.UUID
	AccountCode        string
	Debit              decimal.Decimal
	Credit             decimal.Decimal
	VoucherType        string
	VoucherNo          uuid.UUID
	// LineIdx is the position of the source journal line within the
	// voucher. It keeps rows from independent lines on the same account
	// and side distinct under the voucher uniqueness index.
	LineIdx            int
	AgainstVoucherType string
	AgainstVoucherNo   string
	CostCenter         string
	Project            string
	Company            string
	IsCancelled        bool
	IsOpening          bool
	Remarks            string
	CreatedAt          time.Time
}
