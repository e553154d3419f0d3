package payments

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, entry Entry) (Entry, error)
	List(ctx context.Context, tenantID uuid.UUID) ([]Entry, error)
}

type repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

const paymentColumns = `id, tenant_id, posting_date, paid_from_account, paid_to_account, paid_amount, received_amount, company, reference_no, created_at`

func (r *repository) Create(ctx context.Context, e Entry) (Entry, error) {
	row := r.db.QueryRow(ctx, `INSERT INTO payment_entries (id, tenant_id, posting_date, paid_from_account, paid_to_account, paid_amount, received_amount, company, reference_no)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9) RETURNING created_at`,
		e.ID, e.TenantID, e.PostingDate, e.PaidFromAccount, e.PaidToAccount, e.PaidAmount, e.ReceivedAmount, e.Company, e.ReferenceNo)
	if err := row.Scan(&e.CreatedAt); err != nil {
		return Entry{}, err
	}
	return e, nil
}

func (r *repository) List(ctx context.Context, tenantID uuid.UUID) ([]Entry, error) {
	rows, err := r.db.Query(ctx, `SELECT `+paymentColumns+` FROM payment_entries WHERE tenant_id=$1 ORDER BY posting_date DESC, created_at DESC`, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.TenantID, &e.PostingDate, &e.PaidFromAccount, &e.PaidToAccount, &e.PaidAmount, &e.ReceivedAmount, &e.Company, &e.ReferenceNo, &e.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
