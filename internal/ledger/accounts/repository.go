package accounts

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/meridian-erp/meridian-erp/internal/ledger/shared"
)

// Repository encapsulates DB operations for the chart of accounts. Every
// query filters by tenant id; the uq_accounts_tenant_code constraint is the
// actual uniqueness enforcer under concurrent writers.
type Repository interface {
	Create(ctx context.Context, account Account) (Account, error)
	List(ctx context.Context, tenantID uuid.UUID) ([]Account, error)
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (Account, error)
	GetByCode(ctx context.Context, tenantID uuid.UUID, code string) (Account, error)
	SetParent(ctx context.Context, tenantID, id uuid.UUID, parentID uuid.UUID) error
}

type repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

const accountColumns = `id, tenant_id, code, name, root_type, is_group, parent_id, currency, created_at, updated_at`

func (r *repository) Create(ctx context.Context, a Account) (Account, error) {
	row := r.db.QueryRow(ctx, `INSERT INTO accounts (id, tenant_id, code, name, root_type, is_group, parent_id, currency)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8) RETURNING created_at, updated_at`,
		a.ID, a.TenantID, a.Code, a.Name, a.RootType, a.IsGroup, a.ParentID, a.Currency)
	if err := row.Scan(&a.CreatedAt, &a.UpdatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.ConstraintName == "uq_accounts_tenant_code" {
			return Account{}, shared.ErrDuplicateCode
		}
		return Account{}, err
	}
	return a, nil
}

func (r *repository) List(ctx context.Context, tenantID uuid.UUID) ([]Account, error) {
	rows, err := r.db.Query(ctx, `SELECT `+accountColumns+` FROM accounts WHERE tenant_id=$1 ORDER BY code ASC`, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var accounts []Account
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, a)
	}
	return accounts, rows.Err()
}

func (r *repository) GetByID(ctx context.Context, tenantID, id uuid.UUID) (Account, error) {
	row := r.db.QueryRow(ctx, `SELECT `+accountColumns+` FROM accounts WHERE tenant_id=$1 AND id=$2`, tenantID, id)
	return scanAccountRow(row)
}

func (r *repository) GetByCode(ctx context.Context, tenantID uuid.UUID, code string) (Account, error) {
	row := r.db.QueryRow(ctx, `SELECT `+accountColumns+` FROM accounts WHERE tenant_id=$1 AND code=$2`, tenantID, code)
	return scanAccountRow(row)
}

func (r *repository) SetParent(ctx context.Context, tenantID, id uuid.UUID, parentID uuid.UUID) error {
	cmd, err := r.db.Exec(ctx, `UPDATE accounts SET parent_id=$3, updated_at=NOW() WHERE tenant_id=$1 AND id=$2`, tenantID, id, parentID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return shared.ErrAccountNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccount(row rowScanner) (Account, error) {
	var a Account
	err := row.Scan(&a.ID, &a.TenantID, &a.Code, &a.Name, &a.RootType, &a.IsGroup, &a.ParentID, &a.Currency, &a.CreatedAt, &a.UpdatedAt)
	return a, err
}

func scanAccountRow(row pgx.Row) (Account, error) {
	a, err := scanAccount(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Account{}, shared.ErrAccountNotFound
		}
		return Account{}, err
	}
	return a, nil
}
