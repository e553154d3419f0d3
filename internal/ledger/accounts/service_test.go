package accounts

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/meridian-erp/meridian-erp/internal/ledger/shared"
	_ "github.com/meridian-erp/meridian-erp/testing"
)

type stubRepo struct {
	byID   map[uuid.UUID]Account
	byCode map[string]uuid.UUID
}

func newStubRepo() *stubRepo {
	return &stubRepo{
		byID:   make(map[uuid.UUID]Account),
		byCode: make(map[string]uuid.UUID),
	}
}

func (s *stubRepo) codeKey(tenantID uuid.UUID, code string) string {
	return tenantID.String() + "/" + code
}

func (s *stubRepo) Create(ctx context.Context, a Account) (Account, error) {
	key := s.codeKey(a.TenantID, a.Code)
	if _, ok := s.byCode[key]; ok {
		return Account{}, shared.ErrDuplicateCode
	}
	s.byID[a.ID] = a
	s.byCode[key] = a.ID
	return a, nil
}

func (s *stubRepo) List(ctx context.Context, tenantID uuid.UUID) ([]Account, error) {
	var out []Account
	for _, a := range s.byID {
		if a.TenantID == tenantID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (s *stubRepo) GetByID(ctx context.Context, tenantID, id uuid.UUID) (Account, error) {
	a, ok := s.byID[id]
	if !ok || a.TenantID != tenantID {
		return Account{}, shared.ErrAccountNotFound
	}
	return a, nil
}

func (s *stubRepo) GetByCode(ctx context.Context, tenantID uuid.UUID, code string) (Account, error) {
	id, ok := s.byCode[s.codeKey(tenantID, code)]
	if !ok {
		return Account{}, shared.ErrAccountNotFound
	}
	return s.byID[id], nil
}

func (s *stubRepo) SetParent(ctx context.Context, tenantID, id uuid.UUID, parentID uuid.UUID) error {
	a, ok := s.byID[id]
	if !ok || a.TenantID != tenantID {
		return shared.ErrAccountNotFound
	}
	a.ParentID = &parentID
	s.byID[id] = a
	return nil
}

func TestCreateAccount(t *testing.T) {
	svc := NewService(newStubRepo())
	tenantID := uuid.New()

	created, err := svc.Create(context.Background(), tenantID, CreateInput{
		Code:     "1000",
		Name:     "Cash",
		RootType: RootTypeAsset,
	})
	require.NoError(t, err)
	require.Equal(t, tenantID, created.TenantID)

	fetched, err := svc.GetByCode(context.Background(), tenantID, "1000")
	require.NoError(t, err)
	require.Equal(t, created.ID, fetched.ID)
}

func TestCreateDuplicateCodeSameTenantOnly(t *testing.T) {
	svc := NewService(newStubRepo())
	tenantA := uuid.New()
	tenantB := uuid.New()

	in := CreateInput{Code: "1000", Name: "Cash", RootType: RootTypeAsset}

	_, err := svc.Create(context.Background(), tenantA, in)
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), tenantA, in)
	require.ErrorIs(t, err, shared.ErrDuplicateCode)

	// the same code under another tenant must succeed
	_, err = svc.Create(context.Background(), tenantB, in)
	require.NoError(t, err)
}

func TestCreateRejectsUnknownRootType(t *testing.T) {
	svc := NewService(newStubRepo())
	_, err := svc.Create(context.Background(), uuid.New(), CreateInput{
		Code:     "1000",
		Name:     "Cash",
		RootType: "GOODWILL",
	})
	require.Error(t, err)
}

func TestCreateChildMustMatchParentRootType(t *testing.T) {
	svc := NewService(newStubRepo())
	tenantID := uuid.New()

	parent, err := svc.Create(context.Background(), tenantID, CreateInput{
		Code:     "1000",
		Name:     "Current Assets",
		RootType: RootTypeAsset,
		IsGroup:  true,
	})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), tenantID, CreateInput{
		Code:     "1100",
		Name:     "Sales",
		RootType: RootTypeIncome,
		ParentID: &parent.ID,
	})
	require.ErrorIs(t, err, shared.ErrRootTypeMismatch)

	_, err = svc.Create(context.Background(), tenantID, CreateInput{
		Code:     "1100",
		Name:     "Bank",
		RootType: RootTypeAsset,
		ParentID: &parent.ID,
	})
	require.NoError(t, err)
}

func TestGetCrossTenantIsNotFound(t *testing.T) {
	svc := NewService(newStubRepo())
	tenantID := uuid.New()

	created, err := svc.Create(context.Background(), tenantID, CreateInput{
		Code:     "1000",
		Name:     "Cash",
		RootType: RootTypeAsset,
	})
	require.NoError(t, err)

	_, err = svc.Get(context.Background(), uuid.New(), created.ID)
	require.ErrorIs(t, err, shared.ErrAccountNotFound)
}
