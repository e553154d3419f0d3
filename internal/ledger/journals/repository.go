package journals

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/meridian-erp/meridian-erp/internal/platform/db"
	"github.com/meridian-erp/meridian-erp/internal/ledger/shared"
)

// Repository encapsulates DB operations for journal entries. Header and
// lines are only ever written together inside one transaction.
type Repository interface {
	List(ctx context.Context, tenantID uuid.UUID) ([]Entry, error)
	Get(ctx context.Context, tenantID, id uuid.UUID) (Entry, error)
	WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error
}

// TxRepository exposes methods available within a transaction.
type TxRepository interface {
	InsertEntry(ctx context.Context, entry Entry) error
	InsertLines(ctx context.Context, lines []Line) error
	GetEntryForUpdate(ctx context.Context, tenantID, id uuid.UUID) (Entry, error)
	UpdateStatus(ctx context.Context, tenantID, id uuid.UUID, status DocStatus) error
	CancelGLEntries(ctx context.Context, tenantID, voucherNo uuid.UUID) error
}

type repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const entryColumns = `id, tenant_id, voucher_type, posting_date, company, docstatus, reference_no, reference_date, user_remark, posted, created_at, updated_at`

const lineColumns = `id, entry_id, idx, account_code, debit, credit, cost_center, party`

func (r *repository) List(ctx context.Context, tenantID uuid.UUID) ([]Entry, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+entryColumns+` FROM journal_entries WHERE tenant_id=$1 ORDER BY posting_date DESC, created_at DESC`, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var entries []Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range entries {
		lines, err := r.linesFor(ctx, r.pool, entries[i].ID)
		if err != nil {
			return nil, err
		}
		entries[i].Lines = lines
	}
	return entries, nil
}

func (r *repository) Get(ctx context.Context, tenantID, id uuid.UUID) (Entry, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+entryColumns+` FROM journal_entries WHERE tenant_id=$1 AND id=$2`, tenantID, id)
	entry, err := scanEntry(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Entry{}, shared.ErrEntryNotFound
		}
		return Entry{}, err
	}
	entry.Lines, err = r.linesFor(ctx, r.pool, entry.ID)
	if err != nil {
		return Entry{}, err
	}
	return entry, nil
}

func (r *repository) WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		return fn(ctx, &txRepository{tx: tx})
	})
}

type queryer interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

func (r *repository) linesFor(ctx context.Context, q queryer, entryID uuid.UUID) ([]Line, error) {
	rows, err := q.Query(ctx, `SELECT `+lineColumns+` FROM journal_entry_lines WHERE entry_id=$1 ORDER BY idx ASC`, entryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var lines []Line
	for rows.Next() {
		var line Line
		if err := rows.Scan(&line.ID, &line.EntryID, &line.Idx, &line.AccountCode, &line.Debit, &line.Credit, &line.CostCenter, &line.Party); err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, rows.Err()
}

type txRepository struct {
	tx pgx.Tx
}

func (r *txRepository) InsertEntry(ctx context.Context, e Entry) error {
	_, err := r.tx.Exec(ctx, `INSERT INTO journal_entries (id, tenant_id, voucher_type, posting_date, company, docstatus, reference_no, reference_date, user_remark, posted)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
		e.ID, e.TenantID, e.VoucherType, e.PostingDate, e.Company, int(e.DocStatus), e.ReferenceNo, e.ReferenceDate, e.UserRemark, e.Posted)
	return err
}

func (r *txRepository) InsertLines(ctx context.Context, lines []Line) error {
	for _, line := range lines {
		if _, err := r.tx.Exec(ctx, `INSERT INTO journal_entry_lines (id, entry_id, idx, account_code, debit, credit, cost_center, party)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
			line.ID, line.EntryID, line.Idx, line.AccountCode, line.Debit, line.Credit, line.CostCenter, line.Party); err != nil {
			return err
		}
	}
	return nil
}

func (r *txRepository) GetEntryForUpdate(ctx context.Context, tenantID, id uuid.UUID) (Entry, error) {
	row := r.tx.QueryRow(ctx, `SELECT `+entryColumns+` FROM journal_entries WHERE tenant_id=$1 AND id=$2 FOR UPDATE`, tenantID, id)
	entry, err := scanEntry(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Entry{}, shared.ErrEntryNotFound
		}
		return Entry{}, err
	}
	return entry, nil
}

func (r *txRepository) UpdateStatus(ctx context.Context, tenantID, id uuid.UUID, status DocStatus) error {
	cmd, err := r.tx.Exec(ctx, `UPDATE journal_entries SET docstatus=$3, updated_at=NOW() WHERE tenant_id=$1 AND id=$2`, tenantID, id, int(status))
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return shared.ErrEntryNotFound
	}
	return nil
}

// CancelGLEntries flips is_cancelled on the ledger rows posted from this
// voucher. Amounts are never touched; the flip is the only permitted
// mutation of a GL row.
func (r *txRepository) CancelGLEntries(ctx context.Context, tenantID, voucherNo uuid.UUID) error {
	_, err := r.tx.Exec(ctx, `UPDATE gl_entries SET is_cancelled=TRUE WHERE tenant_id=$1 AND voucher_type='Journal Entry' AND voucher_no=$2`, tenantID, voucherNo)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (Entry, error) {
	var e Entry
	var status int
	err := row.Scan(&e.ID, &e.TenantID, &e.VoucherType, &e.PostingDate, &e.Company, &status, &e.ReferenceNo, &e.ReferenceDate, &e.UserRemark, &e.Posted, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return Entry{}, err
	}
	e.DocStatus = DocStatus(status)
	return e, nil
}
