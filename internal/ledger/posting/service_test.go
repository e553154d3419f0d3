package posting

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/meridian-erp/meridian-erp/internal/ledger/accounts"
	"github.com/meridian-erp/meridian-erp/internal/ledger/gl"
	"github.com/meridian-erp/meridian-erp/internal/ledger/journals"
	"github.com/meridian-erp/meridian-erp/internal/ledger/shared"
	_ "github.com/meridian-erp/meridian-erp/testing"
)

type stubRepo struct {
	entry    journals.Entry
	entryErr error
	accounts map[string]accounts.Account
	inserted []gl.Entry
	marked   bool
}

func (s *stubRepo) WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error {
	err := fn(ctx, s)
	if err != nil {
		// transaction rolls back: nothing written
		s.inserted = nil
		s.marked = false
	}
	return err
}

func (s *stubRepo) GetEntryForUpdate(ctx context.Context, tenantID, id uuid.UUID) (journals.Entry, error) {
	if s.entryErr != nil {
		return journals.Entry{}, s.entryErr
	}
	return s.entry, nil
}

func (s *stubRepo) GetAccountByCode(ctx context.Context, tenantID uuid.UUID, code string) (accounts.Account, error) {
	acc, ok := s.accounts[code]
	if !ok {
		return accounts.Account{}, shared.ErrAccountNotFound
	}
	return acc, nil
}

func (s *stubRepo) InsertGLEntries(ctx context.Context, entries []gl.Entry) error {
	s.inserted = append(s.inserted, entries...)
	return nil
}

func (s *stubRepo) MarkPosted(ctx context.Context, tenantID, id uuid.UUID) error {
	s.marked = true
	return nil
}

type countingBumper struct {
	bumps int
}

func (b *countingBumper) Bump(ctx context.Context) error {
	b.bumps++
	return nil
}

func submittedEntry(tenantID uuid.UUID) journals.Entry {
	id := uuid.New()
	return journals.Entry{
		ID:          id,
		TenantID:    tenantID,
		VoucherType: "Journal Entry",
		PostingDate: time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC),
		Company:     "Acme Ltd",
		DocStatus:   journals.DocStatusSubmitted,
		Lines: []journals.Line{
			{EntryID: id, Idx: 0, AccountCode: "1000", Debit: decimal.NewFromInt(300)},
			{EntryID: id, Idx: 1, AccountCode: "4000", Credit: decimal.NewFromInt(300)},
		},
	}
}

func chart(tenantID uuid.UUID) map[string]accounts.Account {
	return map[string]accounts.Account{
		"1000": {ID: uuid.New(), TenantID: tenantID, Code: "1000", RootType: accounts.RootTypeAsset},
		"4000": {ID: uuid.New(), TenantID: tenantID, Code: "4000", RootType: accounts.RootTypeIncome},
	}
}

func testService(repo Repository, cache CacheBumper) *Service {
	return NewService(repo, cache, slog.New(slog.DiscardHandler))
}

func TestPostSubmittedEntry(t *testing.T) {
	tenantID := uuid.New()
	repo := &stubRepo{entry: submittedEntry(tenantID), accounts: chart(tenantID)}
	bumper := &countingBumper{}
	svc := testService(repo, bumper)

	rows, err := svc.PostJournalEntry(context.Background(), tenantID, repo.entry.ID)
	require.NoError(t, err)

	// one GL row per non-zero side
	require.Len(t, rows, 2)
	for _, row := range rows {
		positive := 0
		if row.Debit.IsPositive() {
			positive++
		}
		if row.Credit.IsPositive() {
			positive++
		}
		require.Equal(t, 1, positive, "exactly one side must be positive: %+v", row)
		require.Equal(t, gl.VoucherTypeJournalEntry, row.VoucherType)
		require.Equal(t, repo.entry.ID, row.VoucherNo)
		require.Equal(t, tenantID, row.TenantID)
	}
	require.True(t, repo.marked)
	require.Equal(t, 1, bumper.bumps)
}

func TestPostEntrySplittingOneAccountAcrossLines(t *testing.T) {
	tenantID := uuid.New()
	id := uuid.New()
	entry := journals.Entry{
		ID:          id,
		TenantID:    tenantID,
		VoucherType: "Journal Entry",
		PostingDate: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		Company:     "Acme Ltd",
		DocStatus:   journals.DocStatusSubmitted,
		Lines: []journals.Line{
			{EntryID: id, Idx: 0, AccountCode: "5210", CostCenter: "Dept A", Debit: decimal.NewFromInt(600)},
			{EntryID: id, Idx: 1, AccountCode: "5210", CostCenter: "Dept B", Debit: decimal.NewFromInt(400)},
			{EntryID: id, Idx: 2, AccountCode: "1110", Credit: decimal.NewFromInt(1000)},
		},
	}
	accs := map[string]accounts.Account{
		"5210": {ID: uuid.New(), TenantID: tenantID, Code: "5210", RootType: accounts.RootTypeExpense},
		"1110": {ID: uuid.New(), TenantID: tenantID, Code: "1110", RootType: accounts.RootTypeAsset},
	}
	repo := &stubRepo{entry: entry, accounts: accs}
	svc := testService(repo, nil)

	rows, err := svc.PostJournalEntry(context.Background(), tenantID, id)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	require.True(t, repo.marked)

	// rows from independent lines on the same account and side must stay
	// distinct under the voucher uniqueness key
	type voucherKey struct {
		account uuid.UUID
		lineIdx int
		isDebit bool
	}
	seen := map[voucherKey]bool{}
	for _, row := range rows {
		key := voucherKey{account: row.AccountID, lineIdx: row.LineIdx, isDebit: row.Debit.IsPositive()}
		require.False(t, seen[key], "duplicate voucher key: %+v", key)
		seen[key] = true
	}

	debitsOnExpense := 0
	for _, row := range rows {
		if row.AccountCode == "5210" {
			require.True(t, row.Debit.IsPositive())
			debitsOnExpense++
		}
	}
	require.Equal(t, 2, debitsOnExpense)
}

func TestPostDraftFails(t *testing.T) {
	tenantID := uuid.New()
	entry := submittedEntry(tenantID)
	entry.DocStatus = journals.DocStatusDraft
	repo := &stubRepo{entry: entry, accounts: chart(tenantID)}
	svc := testService(repo, nil)

	_, err := svc.PostJournalEntry(context.Background(), tenantID, entry.ID)
	require.ErrorIs(t, err, shared.ErrNotSubmitted)
	require.Empty(t, repo.inserted)
}

func TestPostCancelledFails(t *testing.T) {
	tenantID := uuid.New()
	entry := submittedEntry(tenantID)
	entry.DocStatus = journals.DocStatusCancelled
	repo := &stubRepo{entry: entry, accounts: chart(tenantID)}
	svc := testService(repo, nil)

	_, err := svc.PostJournalEntry(context.Background(), tenantID, entry.ID)
	require.ErrorIs(t, err, shared.ErrNotSubmitted)
}

func TestRepostFailsWithConflict(t *testing.T) {
	tenantID := uuid.New()
	entry := submittedEntry(tenantID)
	entry.Posted = true
	repo := &stubRepo{entry: entry, accounts: chart(tenantID)}
	svc := testService(repo, nil)

	_, err := svc.PostJournalEntry(context.Background(), tenantID, entry.ID)
	require.ErrorIs(t, err, shared.ErrAlreadyPosted)
	require.Empty(t, repo.inserted)
}

func TestUnknownAccountAbortsWholePosting(t *testing.T) {
	tenantID := uuid.New()
	entry := submittedEntry(tenantID)
	chartMissingOne := chart(tenantID)
	delete(chartMissingOne, "4000")
	repo := &stubRepo{entry: entry, accounts: chartMissingOne}
	svc := testService(repo, nil)

	_, err := svc.PostJournalEntry(context.Background(), tenantID, entry.ID)
	require.ErrorIs(t, err, shared.ErrUnknownAccount)
	require.Empty(t, repo.inserted, "no partial rows on failed resolution")
	require.False(t, repo.marked)
}

func TestPostUnknownEntry(t *testing.T) {
	repo := &stubRepo{entryErr: shared.ErrEntryNotFound}
	svc := testService(repo, nil)

	_, err := svc.PostJournalEntry(context.Background(), uuid.New(), uuid.New())
	require.ErrorIs(t, err, shared.ErrEntryNotFound)
}
