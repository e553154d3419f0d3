package jobs

import (
	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskLedgerIntegrity is the task type for the ledger integrity scan.
	TaskLedgerIntegrity = "ledger:integrity_scan"
)

// NewLedgerIntegrityTask constructs the integrity scan task. The scan covers
// every tenant, so the task carries no payload.
func NewLedgerIntegrityTask() *asynq.Task {
	return asynq.NewTask(TaskLedgerIntegrity, nil)
}
