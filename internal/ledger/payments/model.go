// Package payments records two-account cash movements. Payment entries are
// stored independently of the general ledger and do not emit ledger rows;
// integrating them with posting is an open gap tracked in DESIGN.md.
package payments

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Entry is a cash movement from one account to another.
type Entry struct {
	ID              uuid.UUID
	TenantID        uuid.UUID
	PostingDate     time.Time
	PaidFromAccount string
	PaidToAccount   string
	PaidAmount      decimal.Decimal
	ReceivedAmount  decimal.Decimal
	Company         string
	ReferenceNo     string
	CreatedAt       time.Time
}
