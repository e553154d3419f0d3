package dimensions

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/meridian-erp/meridian-erp/internal/ledger/shared"
)

// Service applies the check-then-insert pattern for both dimensions: the
// existence check produces a friendly conflict error, the DB constraint is
// what actually holds under concurrent writers.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(logger *slog.Logger, repo Repository) *Service {
	return &Service{repo: repo, logger: logger}
}

// CostCenterInput carries the fields accepted when creating a cost center.
type CostCenterInput struct {
	Name    string
	Company string
	IsGroup bool
}

func (in CostCenterInput) Validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return errors.New("dimensions: cost center name required")
	}
	return nil
}

func (s *Service) CreateCostCenter(ctx context.Context, tenantID uuid.UUID, in CostCenterInput) (CostCenter, error) {
	if err := in.Validate(); err != nil {
		return CostCenter{}, err
	}
	exists, err := s.repo.CostCenterNameExists(ctx, tenantID, in.Name)
	if err != nil {
		return CostCenter{}, err
	}
	if exists {
		return CostCenter{}, shared.ErrDuplicateName
	}
	cc := CostCenter{
		ID:       uuid.New(),
		TenantID: tenantID,
		Name:     strings.TrimSpace(in.Name),
		Company:  in.Company,
		IsGroup:  in.IsGroup,
	}
	created, err := s.repo.CreateCostCenter(ctx, cc)
	if err != nil {
		return CostCenter{}, err
	}
	s.logger.Info("cost center created",
		slog.String("tenant_id", tenantID.String()),
		slog.String("name", created.Name))
	return created, nil
}

func (s *Service) ListCostCenters(ctx context.Context, tenantID uuid.UUID) ([]CostCenter, error) {
	return s.repo.ListCostCenters(ctx, tenantID)
}

// FiscalYearInput carries the fields accepted when creating a fiscal year.
type FiscalYearInput struct {
	Name      string
	StartDate time.Time
	EndDate   time.Time
}

func (in FiscalYearInput) Validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return errors.New("dimensions: fiscal year name required")
	}
	if !in.EndDate.After(in.StartDate) {
		return errors.New("dimensions: fiscal year end date must be after start date")
	}
	return nil
}

func (s *Service) CreateFiscalYear(ctx context.Context, tenantID uuid.UUID, in FiscalYearInput) (FiscalYear, error) {
	if err := in.Validate(); err != nil {
		return FiscalYear{}, err
	}
	exists, err := s.repo.FiscalYearNameExists(ctx, tenantID, in.Name)
	if err != nil {
		return FiscalYear{}, err
	}
	if exists {
		return FiscalYear{}, shared.ErrDuplicateName
	}
	fy := FiscalYear{
		ID:        uuid.New(),
		TenantID:  tenantID,
		Name:      strings.TrimSpace(in.Name),
		StartDate: in.StartDate,
		EndDate:   in.EndDate,
	}
	created, err := s.repo.CreateFiscalYear(ctx, fy)
	if err != nil {
		return FiscalYear{}, err
	}
	s.logger.Info("fiscal year created",
		slog.String("tenant_id", tenantID.String()),
		slog.String("name", created.Name))
	return created, nil
}

func (s *Service) ListFiscalYears(ctx context.Context, tenantID uuid.UUID) ([]FiscalYear, error) {
	return s.repo.ListFiscalYears(ctx, tenantID)
}
