package dimensions

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/meridian-erp/meridian-erp/internal/ledger/shared"
)

// Repository persists cost centers and fiscal years. Per-tenant natural-key
// uniqueness is enforced by uq_cost_centers_tenant_name and
// uq_fiscal_years_tenant_name.
type Repository interface {
	CreateCostCenter(ctx context.Context, cc CostCenter) (CostCenter, error)
	ListCostCenters(ctx context.Context, tenantID uuid.UUID) ([]CostCenter, error)
	CostCenterNameExists(ctx context.Context, tenantID uuid.UUID, name string) (bool, error)
	CreateFiscalYear(ctx context.Context, fy FiscalYear) (FiscalYear, error)
	ListFiscalYears(ctx context.Context, tenantID uuid.UUID) ([]FiscalYear, error)
	FiscalYearNameExists(ctx context.Context, tenantID uuid.UUID, name string) (bool, error)
}

type repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

func (r *repository) CreateCostCenter(ctx context.Context, cc CostCenter) (CostCenter, error) {
	row := r.db.QueryRow(ctx, `INSERT INTO cost_centers (id, tenant_id, name, company, is_group)
VALUES ($1,$2,$3,$4,$5) RETURNING created_at`,
		cc.ID, cc.TenantID, cc.Name, cc.Company, cc.IsGroup)
	if err := row.Scan(&cc.CreatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.ConstraintName == "uq_cost_centers_tenant_name" {
			return CostCenter{}, shared.ErrDuplicateName
		}
		return CostCenter{}, err
	}
	return cc, nil
}

func (r *repository) ListCostCenters(ctx context.Context, tenantID uuid.UUID) ([]CostCenter, error) {
	rows, err := r.db.Query(ctx, `SELECT id, tenant_id, name, company, is_group, created_at
FROM cost_centers WHERE tenant_id=$1 ORDER BY name ASC`, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var centers []CostCenter
	for rows.Next() {
		var cc CostCenter
		if err := rows.Scan(&cc.ID, &cc.TenantID, &cc.Name, &cc.Company, &cc.IsGroup, &cc.CreatedAt); err != nil {
			return nil, err
		}
		centers = append(centers, cc)
	}
	return centers, rows.Err()
}

func (r *repository) CostCenterNameExists(ctx context.Context, tenantID uuid.UUID, name string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM cost_centers WHERE tenant_id=$1 AND name=$2)`, tenantID, name).Scan(&exists)
	return exists, err
}

func (r *repository) CreateFiscalYear(ctx context.Context, fy FiscalYear) (FiscalYear, error) {
	row := r.db.QueryRow(ctx, `INSERT INTO fiscal_years (id, tenant_id, name, start_date, end_date)
VALUES ($1,$2,$3,$4,$5) RETURNING created_at`,
		fy.ID, fy.TenantID, fy.Name, fy.StartDate, fy.EndDate)
	if err := row.Scan(&fy.CreatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.ConstraintName == "uq_fiscal_years_tenant_name" {
			return FiscalYear{}, shared.ErrDuplicateName
		}
		return FiscalYear{}, err
	}
	return fy, nil
}

func (r *repository) ListFiscalYears(ctx context.Context, tenantID uuid.UUID) ([]FiscalYear, error) {
	rows, err := r.db.Query(ctx, `SELECT id, tenant_id, name, start_date, end_date, created_at
FROM fiscal_years WHERE tenant_id=$1 ORDER BY start_date DESC`, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var years []FiscalYear
	for rows.Next() {
		var fy FiscalYear
		if err := rows.Scan(&fy.ID, &fy.TenantID, &fy.Name, &fy.StartDate, &fy.EndDate, &fy.CreatedAt); err != nil {
			return nil, err
		}
		years = append(years, fy)
	}
	return years, rows.Err()
}

func (r *repository) FiscalYearNameExists(ctx context.Context, tenantID uuid.UUID, name string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM fiscal_years WHERE tenant_id=$1 AND name=$2)`, tenantID, name).Scan(&exists)
	return exists, err
}
