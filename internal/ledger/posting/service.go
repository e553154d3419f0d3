// Package posting materialises submitted journal entries as immutable
// general ledger rows.
package posting

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/meridian-erp/meridian-erp/internal/ledger/gl"
	"github.com/meridian-erp/meridian-erp/internal/ledger/journals"
	"github.com/meridian-erp/meridian-erp/internal/ledger/shared"
)

// CacheBumper invalidates derived report caches after the ledger changes.
type CacheBumper interface {
	Bump(ctx context.Context) error
}

// Service transforms submitted journal entries into GL rows.
type Service struct {
	repo   Repository
	cache  CacheBumper
	logger *slog.Logger
	now    func() time.Time
}

func NewService(repo Repository, cache CacheBumper, logger *slog.Logger) *Service {
	return &Service{repo: repo, cache: cache, logger: logger, now: time.Now}
}

// WithNow overrides the clock for testing.
func (s *Service) WithNow(now func() time.Time) {
	if now != nil {
		s.now = now
	}
}

// PostJournalEntry writes the entry's lines to the general ledger inside a
// single transaction. Every line's account code must resolve for the
// tenant; any failure aborts the posting with no partial rows. The posted
// flag is checked under the entry's row lock so retried or concurrent
// calls fail with a conflict instead of duplicating ledger rows.
func (s *Service) PostJournalEntry(ctx context.Context, tenantID, entryID uuid.UUID) ([]gl.Entry, error) {
	var posted []gl.Entry
	err := s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		entry, err := tx.GetEntryForUpdate(ctx, tenantID, entryID)
		if err != nil {
			return err
		}
		if entry.DocStatus != journals.DocStatusSubmitted {
			return shared.ErrNotSubmitted
		}
		if entry.Posted {
			return shared.ErrAlreadyPosted
		}
		rows, err := s.buildGLEntries(ctx, tx, entry)
		if err != nil {
			return err
		}
		if err := tx.InsertGLEntries(ctx, rows); err != nil {
			return err
		}
		if err := tx.MarkPosted(ctx, tenantID, entryID); err != nil {
			return err
		}
		posted = rows
		return nil
	})
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if err := s.cache.Bump(ctx); err != nil {
			s.logger.Warn("report cache bump", slog.Any("error", err))
		}
	}
	s.logger.Info("journal entry posted",
		slog.String("tenant", tenantID.String()),
		slog.String("entry", entryID.String()),
		slog.Int("gl_rows", len(posted)))
	return posted, nil
}

// buildGLEntries resolves every line's account code and emits one GL row
// per non-zero side. Resolution happens before any insert so an unknown
// code on the last line still aborts with nothing written.
func (s *Service) buildGLEntries(ctx context.Context, tx TxRepository, entry journals.Entry) ([]gl.Entry, error) {
	var rows []gl.Entry
	for _, line := range entry.Lines {
		account, err := tx.GetAccountByCode(ctx, entry.TenantID, line.AccountCode)
		if err != nil {
			if errors.Is(err, shared.ErrAccountNotFound) {
				return nil, shared.ErrUnknownAccount
			}
			return nil, err
		}
		base := gl.Entry{
			TenantID:    entry.TenantID,
			PostingDate: entry.PostingDate,
			AccountID:   account.ID,
			AccountCode: account.Code,
			VoucherType: gl.VoucherTypeJournalEntry,
			VoucherNo:   entry.ID,
			LineIdx:     line.Idx,
			CostCenter:  line.CostCenter,
			Company:     entry.Company,
			Remarks:     entry.UserRemark,
			CreatedAt:   s.now(),
		}
		if line.Debit.IsPositive() {
			row := base
			row.ID = uuid.New()
			row.Debit = line.Debit
			rows = append(rows, row)
		}
		if line.Credit.IsPositive() {
			row := base
			row.ID = uuid.New()
			row.Credit = line.Credit
			rows = append(rows, row)
		}
	}
	return rows, nil
}
