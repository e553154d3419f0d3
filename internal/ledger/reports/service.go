package reports

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/singleflight"

	"github.com/meridian-erp/meridian-erp/internal/ledger/gl"
	"github.com/meridian-erp/meridian-erp/internal/ledger/shared"
)

const (
	maxGLReportLimit     = 1000
	defaultGLReportLimit = 100
)

// Service exposes the derived reports. Balance aggregation runs through the
// versioned cache; concurrent builds of the same report collapse into one
// query via singleflight.
type Service struct {
	repo   Repository
	cache  *Cache
	logger *slog.Logger
	group  singleflight.Group
}

// NewService constructs the report service. cache may be nil.
func NewService(logger *slog.Logger, repo Repository, cache *Cache) *Service {
	return &Service{repo: repo, cache: cache, logger: logger}
}

// BalanceSummary is the result of a single-account balance query.
type BalanceSummary struct {
	AccountID   uuid.UUID       `json:"accountId"`
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	RootType    string          `json:"rootType"`
	TotalDebit  decimal.Decimal `json:"totalDebit"`
	TotalCredit decimal.Decimal `json:"totalCredit"`
	Balance     decimal.Decimal `json:"balance"`
}

// AccountBalance sums debits and credits over non-cancelled ledger rows for
// the account up to asOf and applies the root-type sign convention.
func (s *Service) AccountBalance(ctx context.Context, tenantID, accountID uuid.UUID, asOf time.Time) (BalanceSummary, error) {
	bal, err := s.repo.AccountTotals(ctx, tenantID, accountID, asOf)
	if err != nil {
		return BalanceSummary{}, err
	}
	return BalanceSummary{
		AccountID:   bal.AccountID,
		Code:        bal.Code,
		Name:        bal.Name,
		RootType:    string(bal.RootType),
		TotalDebit:  bal.TotalDebit,
		TotalCredit: bal.TotalCredit,
		Balance:     bal.Balance(),
	}, nil
}

// TrialBalance aggregates per-account totals in the window and groups them.
func (s *Service) TrialBalance(ctx context.Context, tenantID uuid.UUID, from, to time.Time, company string) (TrialBalance, error) {
	rows, err := s.balanceRows(ctx, tenantID, "tb", from, to, company)
	if err != nil {
		return TrialBalance{}, err
	}
	return BuildTrialBalance(rows), nil
}

// ProfitAndLoss derives income and expense sections from window totals.
func (s *Service) ProfitAndLoss(ctx context.Context, tenantID uuid.UUID, from, to time.Time, company string) (ProfitAndLoss, error) {
	rows, err := s.balanceRows(ctx, tenantID, "pl", from, to, company)
	if err != nil {
		return ProfitAndLoss{}, err
	}
	return BuildProfitAndLoss(rows), nil
}

// BalanceSheet derives the classified position from all rows up to asOf.
func (s *Service) BalanceSheet(ctx context.Context, tenantID uuid.UUID, asOf time.Time, company string) (BalanceSheet, error) {
	rows, err := s.balanceRows(ctx, tenantID, "bs", time.Time{}, asOf, company)
	if err != nil {
		return BalanceSheet{}, err
	}
	return BuildBalanceSheet(rows), nil
}

// GLReport returns paginated raw ledger rows matching the filters, ordered
// by posting date then creation order, cancelled rows excluded.
func (s *Service) GLReport(ctx context.Context, tenantID uuid.UUID, f GLFilters) ([]gl.Entry, error) {
	if f.Limit == 0 {
		f.Limit = defaultGLReportLimit
	}
	if f.Limit < 0 || f.Limit > maxGLReportLimit || f.Offset < 0 {
		return nil, shared.ErrBadPagination
	}
	return s.repo.GLRows(ctx, tenantID, f)
}

const dateKeyFormat = "2006-01-02"

func (s *Service) balanceRows(ctx context.Context, tenantID uuid.UUID, tag string, from, to time.Time, company string) ([]AccountBalance, error) {
	key, err := s.cache.BuildKey(ctx, "reports", tag, tenantID.String(),
		from.Format(dateKeyFormat), to.Format(dateKeyFormat), company)
	if err != nil {
		s.logger.Warn("report cache unavailable, building directly", slog.String("error", err.Error()))
		return s.repo.BalanceRows(ctx, tenantID, from, to, company)
	}
	result := s.group.DoChan(key, func() (interface{}, error) {
		var rows []AccountBalance
		err := s.cache.FetchJSON(context.WithoutCancel(ctx), key, &rows, func(ctx context.Context) (interface{}, error) {
			return s.repo.BalanceRows(ctx, tenantID, from, to, company)
		})
		return rows, err
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-result:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.([]AccountBalance), nil
	}
}
