package journals

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DocStatus tracks the journal entry lifecycle.
type DocStatus int

const (
	DocStatusDraft     DocStatus = 0
	DocStatusSubmitted DocStatus = 1
	DocStatusCancelled DocStatus = 2
)

// String renders the status for logs and API payloads.
func (s DocStatus) String() string {
	switch s {
	case DocStatusDraft:
		return "DRAFT"
	case DocStatusSubmitted:
		return "SUBMITTED"
	case DocStatusCancelled:
		return "CANCELLED"
	}
	return "UNKNOWN"
}

// Entry is a user-authored journal entry: a balanced set of debit/credit
// lines that becomes part of the ledger only once posted.
type Entry struct {
	ID            uuid.UUID
	TenantID      uuid.UUID
	VoucherType   string
	PostingDate   time.Time
	Company       string
	DocStatus     DocStatus
	ReferenceNo   string
	ReferenceDate *time.Time
	UserRemark    string
	Posted        bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
	Lines         []Line
}

// Line references its account by per-tenant code, not id; the code is
// resolved against the chart of accounts at posting time.
type Line struct {
	ID          uuid.UUID
	EntryID     uuid.UUID
	Idx         int
	AccountCode string
	Debit       decimal.Decimal
	Credit      decimal.Decimal
	CostCenter  string
	Party       string
}
