package accounts

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/meridian-erp/meridian-erp/internal/ledger/shared"
)

// CreateInput groups the fields accepted when creating an account.
type CreateInput struct {
	Code     string
	Name     string
	RootType RootType
	IsGroup  bool
	ParentID *uuid.UUID
	Currency string
}

// Validate ensures the input meets minimum criteria.
func (in CreateInput) Validate() error {
	if strings.TrimSpace(in.Code) == "" {
		return errors.New("ledger: account code is required")
	}
	if strings.TrimSpace(in.Name) == "" {
		return errors.New("ledger: account name is required")
	}
	if !in.RootType.Valid() {
		return errors.New("ledger: unknown root type")
	}
	return nil
}

// Service owns the chart of accounts for every tenant.
type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// Create persists a new account. The duplicate-code pre-check produces a
// friendly error; the DB constraint remains the invariant enforcer when two
// callers race on the same code.
func (s *Service) Create(ctx context.Context, tenantID uuid.UUID, in CreateInput) (Account, error) {
	if err := in.Validate(); err != nil {
		return Account{}, err
	}
	if _, err := s.repo.GetByCode(ctx, tenantID, in.Code); err == nil {
		return Account{}, shared.ErrDuplicateCode
	} else if !errors.Is(err, shared.ErrAccountNotFound) {
		return Account{}, err
	}
	if in.ParentID != nil {
		parent, err := s.repo.GetByID(ctx, tenantID, *in.ParentID)
		if err != nil {
			return Account{}, err
		}
		if parent.RootType != in.RootType {
			return Account{}, shared.ErrRootTypeMismatch
		}
	}
	account := Account{
		ID:       uuid.New(),
		TenantID: tenantID,
		Code:     strings.TrimSpace(in.Code),
		Name:     strings.TrimSpace(in.Name),
		RootType: in.RootType,
		IsGroup:  in.IsGroup,
		ParentID: in.ParentID,
		Currency: in.Currency,
	}
	return s.repo.Create(ctx, account)
}

// List returns every account for the tenant ordered by code.
func (s *Service) List(ctx context.Context, tenantID uuid.UUID) ([]Account, error) {
	return s.repo.List(ctx, tenantID)
}

// Get fetches an account by id. Cross-tenant ids surface as not found.
func (s *Service) Get(ctx context.Context, tenantID, id uuid.UUID) (Account, error) {
	return s.repo.GetByID(ctx, tenantID, id)
}

// GetByCode fetches an account by its per-tenant code.
func (s *Service) GetByCode(ctx context.Context, tenantID uuid.UUID, code string) (Account, error) {
	return s.repo.GetByCode(ctx, tenantID, code)
}
