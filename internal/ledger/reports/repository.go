package reports

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/meridian-erp/meridian-erp/internal/ledger/gl"
	"github.com/meridian-erp/meridian-erp/internal/ledger/shared"
)

// GLFilters narrows the paginated ledger report. Nil/empty fields are
// ignored. Limit and Offset are validated by the service before the query
// runs.
type GLFilters struct {
	AccountID   *uuid.UUID
	From        *time.Time
	To          *time.Time
	VoucherType string
	Company     string
	Limit       int
	Offset      int
}

// Repository aggregates general ledger rows for reporting. All queries are
// read-only and exclude cancelled rows.
type Repository interface {
	AccountTotals(ctx context.Context, tenantID, accountID uuid.UUID, asOf time.Time) (AccountBalance, error)
	BalanceRows(ctx context.Context, tenantID uuid.UUID, from, to time.Time, company string) ([]AccountBalance, error)
	GLRows(ctx context.Context, tenantID uuid.UUID, f GLFilters) ([]gl.Entry, error)
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs the pgx-backed reporting repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

func (r *repository) AccountTotals(ctx context.Context, tenantID, accountID uuid.UUID, asOf time.Time) (AccountBalance, error) {
	var bal AccountBalance
	err := r.pool.QueryRow(ctx, `SELECT a.id, a.code, a.name, a.root_type,
COALESCE(SUM(g.debit), 0), COALESCE(SUM(g.credit), 0)
FROM accounts a
LEFT JOIN gl_entries g ON g.account_id = a.id AND g.tenant_id = a.tenant_id
  AND NOT g.is_cancelled AND g.posting_date <= $3
WHERE a.tenant_id = $1 AND a.id = $2
GROUP BY a.id, a.code, a.name, a.root_type`, tenantID, accountID, asOf).
		Scan(&bal.AccountID, &bal.Code, &bal.Name, &bal.RootType, &bal.TotalDebit, &bal.TotalCredit)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return AccountBalance{}, shared.ErrAccountNotFound
		}
		return AccountBalance{}, err
	}
	return bal, nil
}

func (r *repository) BalanceRows(ctx context.Context, tenantID uuid.UUID, from, to time.Time, company string) ([]AccountBalance, error) {
	join := `g.account_id = a.id AND g.tenant_id = a.tenant_id AND NOT g.is_cancelled
  AND g.posting_date >= $2 AND g.posting_date <= $3`
	args := []interface{}{tenantID, from, to}
	if company != "" {
		join += " AND g.company = $4"
		args = append(args, company)
	}
	// LEFT JOIN keeps postable accounts with no activity at zero balance.
	query := fmt.Sprintf(`SELECT a.id, a.code, a.name, a.root_type,
COALESCE(SUM(g.debit), 0), COALESCE(SUM(g.credit), 0)
FROM accounts a
LEFT JOIN gl_entries g ON %s
WHERE a.tenant_id = $1 AND NOT a.is_group
GROUP BY a.id, a.code, a.name, a.root_type
ORDER BY a.code`, join)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var balances []AccountBalance
	for rows.Next() {
		var bal AccountBalance
		if err := rows.Scan(&bal.AccountID, &bal.Code, &bal.Name, &bal.RootType, &bal.TotalDebit, &bal.TotalCredit); err != nil {
			return nil, err
		}
		balances = append(balances, bal)
	}
	return balances, rows.Err()
}

func (r *repository) GLRows(ctx context.Context, tenantID uuid.UUID, f GLFilters) ([]gl.Entry, error) {
	conditions := []string{"tenant_id = $1", "NOT is_cancelled"}
	args := []interface{}{tenantID}
	argPos := 2

	if f.AccountID != nil {
		conditions = append(conditions, fmt.Sprintf("account_id = $%d", argPos))
		args = append(args, *f.AccountID)
		argPos++
	}
	if f.From != nil {
		conditions = append(conditions, fmt.Sprintf("posting_date >= $%d", argPos))
		args = append(args, *f.From)
		argPos++
	}
	if f.To != nil {
		conditions = append(conditions, fmt.Sprintf("posting_date <= $%d", argPos))
		args = append(args, *f.To)
		argPos++
	}
	if f.VoucherType != "" {
		conditions = append(conditions, fmt.Sprintf("voucher_type = $%d", argPos))
		args = append(args, f.VoucherType)
		argPos++
	}
	if f.Company != "" {
		conditions = append(conditions, fmt.Sprintf("company = $%d", argPos))
		args = append(args, f.Company)
		argPos++
	}

	whereClause := conditions[0]
	for i := 1; i < len(conditions); i++ {
		whereClause += " AND " + conditions[i]
	}

	query := fmt.Sprintf(`SELECT id, tenant_id, posting_date, account_id, account_code, line_idx, debit, credit,
voucher_type, voucher_no, against_voucher_type, against_voucher_no,
cost_center, project, company, is_cancelled, is_opening, remarks, created_at
FROM gl_entries
WHERE %s
ORDER BY posting_date ASC, created_at ASC, line_idx ASC
LIMIT $%d OFFSET $%d`, whereClause, argPos, argPos+1)
	args = append(args, f.Limit, f.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var entries []gl.Entry
	for rows.Next() {
		var e gl.Entry
		if err := rows.Scan(&e.ID, &e.TenantID, &e.PostingDate, &e.AccountID, &e.AccountCode, &e.LineIdx, &e.Debit, &e.Credit,
			&e.VoucherType, &e.VoucherNo, &e.AgainstVoucherType, &e.AgainstVoucherNo,
			&e.CostCenter, &e.Project, &e.Company, &e.IsCancelled, &e.IsOpening, &e.Remarks, &e.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
