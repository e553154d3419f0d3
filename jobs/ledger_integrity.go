package jobs

import (
	"context"
	"log/slog"

	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// IntegrityScanner verifies that every tenant's non-cancelled ledger rows
// sum to equal debits and credits. The scan is read-only and advisory:
// imbalances are logged, never repaired.
type IntegrityScanner struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

// NewIntegrityScanner constructs the scanner.
func NewIntegrityScanner(pool *pgxpool.Pool, logger *slog.Logger) *IntegrityScanner {
	return &IntegrityScanner{pool: pool, logger: logger}
}

// Handle processes TaskLedgerIntegrity tasks.
func (s *IntegrityScanner) Handle(ctx context.Context, t *asynq.Task) error {
	return s.Run(ctx)
}

// Run executes one scan over all tenants.
func (s *IntegrityScanner) Run(ctx context.Context) error {
	rows, err := s.pool.Query(ctx, `SELECT tenant_id, COALESCE(SUM(debit), 0), COALESCE(SUM(credit), 0)
FROM gl_entries WHERE NOT is_cancelled GROUP BY tenant_id`)
	if err != nil {
		return err
	}
	defer rows.Close()

	scanned := 0
	unbalanced := 0
	for rows.Next() {
		var tenantID string
		var debit, credit decimal.Decimal
		if err := rows.Scan(&tenantID, &debit, &credit); err != nil {
			return err
		}
		scanned++
		if !debit.Equal(credit) {
			unbalanced++
			s.logger.Warn("ledger out of balance",
				slog.String("tenant_id", tenantID),
				slog.String("total_debit", debit.String()),
				slog.String("total_credit", credit.String()),
				slog.String("difference", debit.Sub(credit).String()))
		}
	}
	if err := rows.Err(); err != nil {
		return err
	}
	s.logger.Info("ledger integrity scan finished",
		slog.Int("tenants_scanned", scanned),
		slog.Int("tenants_unbalanced", unbalanced))
	return nil
}
