package posting

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/meridian-erp/meridian-erp/internal/ledger/accounts"
	"github.com/meridian-erp/meridian-erp/internal/ledger/gl"
	"github.com/meridian-erp/meridian-erp/internal/ledger/journals"
	"github.com/meridian-erp/meridian-erp/internal/platform/db"
	"github.com/meridian-erp/meridian-erp/internal/ledger/shared"
)

// Repository scopes the posting transaction: loading the entry, resolving
// accounts, and writing GL rows all happen against one pgx.Tx so a failure
// at any step leaves no partial ledger rows.
type Repository interface {
	WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error
}

// TxRepository exposes the statements available inside a posting transaction.
// It reads journal and account tables directly; duplicating those queries
// here keeps them on the transaction's snapshot and row locks.
type TxRepository interface {
	GetEntryForUpdate(ctx context.Context, tenantID, id uuid.UUID) (journals.Entry, error)
	GetAccountByCode(ctx context.Context, tenantID uuid.UUID, code string) (accounts.Account, error)
	InsertGLEntries(ctx context.Context, entries []gl.Entry) error
	MarkPosted(ctx context.Context, tenantID, id uuid.UUID) error
}

type repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

func (r *repository) WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		return fn(ctx, &txRepository{tx: tx})
	})
}

type txRepository struct {
	tx pgx.Tx
}

func (r *txRepository) GetEntryForUpdate(ctx context.Context, tenantID, id uuid.UUID) (journals.Entry, error) {
	row := r.tx.QueryRow(ctx, `SELECT id, tenant_id, voucher_type, posting_date, company, docstatus, reference_no, reference_date, user_remark, posted, created_at, updated_at
FROM journal_entries WHERE tenant_id=$1 AND id=$2 FOR UPDATE`, tenantID, id)
	var e journals.Entry
	var status int
	err := row.Scan(&e.ID, &e.TenantID, &e.VoucherType, &e.PostingDate, &e.Company, &status, &e.ReferenceNo, &e.ReferenceDate, &e.UserRemark, &e.Posted, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return journals.Entry{}, shared.ErrEntryNotFound
		}
		return journals.Entry{}, err
	}
	e.DocStatus = journals.DocStatus(status)

	rows, err := r.tx.Query(ctx, `SELECT id, entry_id, idx, account_code, debit, credit, cost_center, party
FROM journal_entry_lines WHERE entry_id=$1 ORDER BY idx ASC`, e.ID)
	if err != nil {
		return journals.Entry{}, err
	}
	defer rows.Close()
	for rows.Next() {
		var line journals.Line
		if err := rows.Scan(&line.ID, &line.EntryID, &line.Idx, &line.AccountCode, &line.Debit, &line.Credit, &line.CostCenter, &line.Party); err != nil {
			return journals.Entry{}, err
		}
		e.Lines = append(e.Lines, line)
	}
	return e, rows.Err()
}

func (r *txRepository) GetAccountByCode(ctx context.Context, tenantID uuid.UUID, code string) (accounts.Account, error) {
	row := r.tx.QueryRow(ctx, `SELECT id, tenant_id, code, name, root_type, is_group, parent_id, currency, created_at, updated_at
FROM accounts WHERE tenant_id=$1 AND code=$2`, tenantID, code)
	var a accounts.Account
	err := row.Scan(&a.ID, &a.TenantID, &a.Code, &a.Name, &a.RootType, &a.IsGroup, &a.ParentID, &a.Currency, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return accounts.Account{}, shared.ErrAccountNotFound
		}
		return accounts.Account{}, err
	}
	return a, nil
}

func (r *txRepository) InsertGLEntries(ctx context.Context, entries []gl.Entry) error {
	for _, e := range entries {
		_, err := r.tx.Exec(ctx, `INSERT INTO gl_entries (id, tenant_id, posting_date, account_id, account_code, line_idx, debit, credit, voucher_type, voucher_no, against_voucher_type, against_voucher_no, cost_center, project, company, is_cancelled, is_opening, remarks, created_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19)`,
			e.ID, e.TenantID, e.PostingDate, e.AccountID, e.AccountCode, e.LineIdx, e.Debit, e.Credit, e.VoucherType, e.VoucherNo, e.AgainstVoucherType, e.AgainstVoucherNo, e.CostCenter, e.Project, e.Company, e.IsCancelled, e.IsOpening, e.Remarks, e.CreatedAt)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.ConstraintName == "uq_gl_entries_voucher" {
				return shared.ErrAlreadyPosted
			}
			return err
		}
	}
	return nil
}

func (r *txRepository) MarkPosted(ctx context.Context, tenantID, id uuid.UUID) error {
	cmd, err := r.tx.Exec(ctx, `UPDATE journal_entries SET posted=TRUE, updated_at=NOW() WHERE tenant_id=$1 AND id=$2`, tenantID, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return shared.ErrEntryNotFound
	}
	return nil
}
