package shared

import "errors"

// Validation errors.
var (
	// ErrUnbalanced indicates the line set's debits and credits differ at 2dp.
	ErrUnbalanced = errors.New("ledger: unbalanced entry")
	// ErrEmptyLines indicates a journal entry without lines.
	ErrEmptyLines = errors.New("ledger: journal entry requires at least one line")
	// ErrBothSides indicates a line carrying both a debit and a credit.
	ErrBothSides = errors.New("ledger: line cannot carry both debit and credit")
	// ErrNegativeAmount indicates a negative debit or credit.
	ErrNegativeAmount = errors.New("ledger: amounts must not be negative")
	// ErrBadPagination indicates limit/offset out of range.
	ErrBadPagination = errors.New("ledger: pagination out of range")
	// ErrRootTypeMismatch indicates a child account whose root type differs from its parent.
	ErrRootTypeMismatch = errors.New("ledger: account root type must match parent")
)

// Conflict errors.
var (
	// ErrDuplicateCode indicates the account code already exists for the tenant.
	ErrDuplicateCode = errors.New("ledger: account code already exists")
	// ErrDuplicateName indicates a dimension natural key already exists for the tenant.
	ErrDuplicateName = errors.New("ledger: name already exists")
	// ErrAlreadyPosted indicates a repeated posting attempt for the same entry.
	ErrAlreadyPosted = errors.New("ledger: journal entry already posted")
)

// Not-found errors. Cross-tenant access surfaces as these same values so
// existence never leaks across tenants.
var (
	// ErrAccountNotFound indicates a missing account id or code.
	ErrAccountNotFound = errors.New("ledger: account not found")
	// ErrEntryNotFound indicates a missing journal entry.
	ErrEntryNotFound = errors.New("ledger: journal entry not found")
	// ErrUnknownAccount indicates a line's account code could not be resolved at posting time.
	ErrUnknownAccount = errors.New("ledger: unresolved account code")
)

// State errors.
var (
	// ErrNotSubmitted indicates posting was attempted on a non-submitted entry.
	ErrNotSubmitted = errors.New("ledger: journal entry is not submitted")
	// ErrInvalidStatus indicates a lifecycle transition is not allowed.
	ErrInvalidStatus = errors.New("ledger: invalid status transition")
)
