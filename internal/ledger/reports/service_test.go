package reports

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/meridian-erp/meridian-erp/internal/ledger/accounts"
	"github.com/meridian-erp/meridian-erp/internal/ledger/gl"
	"github.com/meridian-erp/meridian-erp/internal/ledger/shared"
	_ "github.com/meridian-erp/meridian-erp/testing"
)

type stubRepo struct {
	totals      AccountBalance
	totalsErr   error
	rows        []AccountBalance
	rowsCalls   int
	glRows      []gl.Entry
	glFilters   GLFilters
	glRowsCalls int
}

func (s *stubRepo) AccountTotals(ctx context.Context, tenantID, accountID uuid.UUID, asOf time.Time) (AccountBalance, error) {
	if s.totalsErr != nil {
		return AccountBalance{}, s.totalsErr
	}
	return s.totals, nil
}

func (s *stubRepo) BalanceRows(ctx context.Context, tenantID uuid.UUID, from, to time.Time, company string) ([]AccountBalance, error) {
	s.rowsCalls++
	return s.rows, nil
}

func (s *stubRepo) GLRows(ctx context.Context, tenantID uuid.UUID, f GLFilters) ([]gl.Entry, error) {
	s.glRowsCalls++
	s.glFilters = f
	return s.glRows, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestAccountBalanceAppliesSignConvention(t *testing.T) {
	repo := &stubRepo{totals: AccountBalance{
		Code:        "2100",
		RootType:    accounts.RootTypeLiability,
		TotalDebit:  decimal.NewFromInt(200),
		TotalCredit: decimal.NewFromInt(1500),
	}}
	svc := NewService(testLogger(), repo, nil)

	summary, err := svc.AccountBalance(context.Background(), uuid.New(), uuid.New(), time.Now())
	require.NoError(t, err)
	require.True(t, summary.Balance.Equal(decimal.NewFromInt(1300)), "got %s", summary.Balance)
}

func TestAccountBalanceNotFound(t *testing.T) {
	repo := &stubRepo{totalsErr: shared.ErrAccountNotFound}
	svc := NewService(testLogger(), repo, nil)

	_, err := svc.AccountBalance(context.Background(), uuid.New(), uuid.New(), time.Now())
	require.ErrorIs(t, err, shared.ErrAccountNotFound)
}

func TestGLReportPaginationBounds(t *testing.T) {
	repo := &stubRepo{}
	svc := NewService(testLogger(), repo, nil)
	tenantID := uuid.New()

	_, err := svc.GLReport(context.Background(), tenantID, GLFilters{Limit: maxGLReportLimit + 1})
	require.ErrorIs(t, err, shared.ErrBadPagination)

	_, err = svc.GLReport(context.Background(), tenantID, GLFilters{Offset: -1})
	require.ErrorIs(t, err, shared.ErrBadPagination)

	require.Equal(t, 0, repo.glRowsCalls)

	_, err = svc.GLReport(context.Background(), tenantID, GLFilters{})
	require.NoError(t, err)
	require.Equal(t, defaultGLReportLimit, repo.glFilters.Limit)
}

func TestTrialBalanceCachesRows(t *testing.T) {
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	repo := &stubRepo{rows: []AccountBalance{
		{Code: "1000", Name: "Cash", RootType: accounts.RootTypeAsset, TotalDebit: decimal.NewFromInt(100), TotalCredit: decimal.NewFromInt(40)},
	}}
	svc := NewService(testLogger(), repo, NewCache(client, time.Minute))

	tenantID := uuid.New()
	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)

	first, err := svc.TrialBalance(context.Background(), tenantID, from, to, "")
	require.NoError(t, err)
	second, err := svc.TrialBalance(context.Background(), tenantID, from, to, "")
	require.NoError(t, err)

	require.Equal(t, 1, repo.rowsCalls, "second read must come from cache")
	require.True(t, first.TotalDebit.Equal(second.TotalDebit))
	require.True(t, first.TotalDebit.Equal(decimal.NewFromInt(100)))
}

func TestBumpInvalidatesCachedReports(t *testing.T) {
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	repo := &stubRepo{rows: []AccountBalance{
		{Code: "1000", Name: "Cash", RootType: accounts.RootTypeAsset, TotalDebit: decimal.NewFromInt(100), TotalCredit: decimal.Zero},
	}}
	cache := NewCache(client, time.Minute)
	svc := NewService(testLogger(), repo, cache)

	tenantID := uuid.New()
	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)

	_, err := svc.TrialBalance(context.Background(), tenantID, from, to, "")
	require.NoError(t, err)
	require.NoError(t, cache.Bump(context.Background()))

	repo.rows[0].TotalDebit = decimal.NewFromInt(250)
	report, err := svc.TrialBalance(context.Background(), tenantID, from, to, "")
	require.NoError(t, err)
	require.Equal(t, 2, repo.rowsCalls)
	require.True(t, report.TotalDebit.Equal(decimal.NewFromInt(250)))
}
