// Package dimensions manages the tagging and dating dimensions attached to
// journal entries and reports: cost centers and fiscal years. Both carry no
// behavior beyond per-tenant uniqueness on their natural key.
package dimensions

import (
	"time"

	"github.com/google/uuid"
)

// CostCenter tags ledger rows for management reporting.
type CostCenter struct {
	ID        uuid.UUID
	TenantID  uuid.UUID
	Name      string
	Company   string
	IsGroup   bool
	CreatedAt time.Time
}

// FiscalYear is a named accounting period.
type FiscalYear struct {
	ID        uuid.UUID
	TenantID  uuid.UUID
	Name      string
	StartDate time.Time
	EndDate   time.Time
	CreatedAt time.Time
}
