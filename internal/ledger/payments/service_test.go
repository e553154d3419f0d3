package payments

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/meridian-erp/meridian-erp/internal/ledger/shared"
	_ "github.com/meridian-erp/meridian-erp/testing"
)

type stubRepo struct {
	entries []Entry
}

func (s *stubRepo) Create(ctx context.Context, e Entry) (Entry, error) {
	e.CreatedAt = time.Now()
	s.entries = append(s.entries, e)
	return e, nil
}

func (s *stubRepo) List(ctx context.Context, tenantID uuid.UUID) ([]Entry, error) {
	var out []Entry
	for _, e := range s.entries {
		if e.TenantID == tenantID {
			out = append(out, e)
		}
	}
	return out, nil
}

func TestCreatePayment(t *testing.T) {
	repo := &stubRepo{}
	svc := NewService(slog.New(slog.DiscardHandler), repo)
	tenantID := uuid.New()

	created, err := svc.Create(context.Background(), tenantID, CreateInput{
		PostingDate:     time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		PaidFromAccount: "1000",
		PaidToAccount:   "2000",
		PaidAmount:      decimal.NewFromInt(500),
		ReceivedAmount:  decimal.NewFromInt(500),
	})
	require.NoError(t, err)
	require.Equal(t, tenantID, created.TenantID)

	listed, err := svc.List(context.Background(), tenantID)
	require.NoError(t, err)
	require.Len(t, listed, 1)

	other, err := svc.List(context.Background(), uuid.New())
	require.NoError(t, err)
	require.Empty(t, other)
}

func TestCreatePaymentRejectsNegativeAmounts(t *testing.T) {
	svc := NewService(slog.New(slog.DiscardHandler), &stubRepo{})

	_, err := svc.Create(context.Background(), uuid.New(), CreateInput{
		PostingDate:     time.Now(),
		PaidFromAccount: "1000",
		PaidToAccount:   "2000",
		PaidAmount:      decimal.NewFromInt(-10),
	})
	require.ErrorIs(t, err, shared.ErrNegativeAmount)
}

func TestCreatePaymentRequiresAccounts(t *testing.T) {
	svc := NewService(slog.New(slog.DiscardHandler), &stubRepo{})

	_, err := svc.Create(context.Background(), uuid.New(), CreateInput{
		PostingDate:   time.Now(),
		PaidToAccount: "2000",
		PaidAmount:    decimal.NewFromInt(10),
	})
	require.ErrorContains(t, err, "accounts required")
	require.NotErrorIs(t, err, shared.ErrUnknownAccount)
}
