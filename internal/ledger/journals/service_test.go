package journals

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

// stubRepo keeps entries in memory and implements both sides of the
// repository so transactional flows can be exercised without a database.
type stubRepo struct {
	entries      map[uuid.UUID]Entry
	cancelledGL  []uuid.UUID
	insertErrors error
}

func newStubRepo() *stubRepo {
	return &stubRepo{entries: make(map[uuid.UUID]Entry)}
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

func (s *stubRepo) Get(ctx context.Context, tenantID, id uuid.UUID) (Entry, error) {
	e, ok := s.entries[id]
	if !ok || e.TenantID != tenantID {
		return Entry{}, shared.ErrEntryNotFound
	}
	return e, nil
}

func (s *stubRepo) WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error {
	return fn(ctx, s)
}

func (s *stubRepo) InsertEntry(ctx context.Context, entry Entry) error {
	if s.insertErrors != nil {
		return s.insertErrors
	}
	entry.Lines = nil
	s.entries[entry.ID] = entry
	return nil
}

func (s *stubRepo) InsertLines(ctx context.Context, lines []Line) error {
	if len(lines) == 0 {
		return nil
	}
	e := s.entries[lines[0].EntryID]
	e.Lines = lines
	s.entries[e.ID] = e
	return nil
}

func (s *stubRepo) GetEntryForUpdate(ctx context.Context, tenantID, id uuid.UUID) (Entry, error) {
	return s.Get(ctx, tenantID, id)
}

func (s *stubRepo) UpdateStatus(ctx context.Context, tenantID, id uuid.UUID, status DocStatus) error {
	e, ok := s.entries[id]
	if !ok || e.TenantID != tenantID {
		return shared.ErrEntryNotFound
	}
	e.DocStatus = status
	s.entries[id] = e
	return nil
}

func (s *stubRepo) CancelGLEntries(ctx context.Context, tenantID, voucherNo uuid.UUID) error {
	s.cancelledGL = append(s.cancelledGL, voucherNo)
	return nil
}

func testService(repo Repository) *Service {
	return NewService(repo, nil, slog.New(slog.DiscardHandler))
}

func TestCreateStoresDraftWithLines(t *testing.T) {
	repo := newStubRepo()
	svc := testService(repo)
	tenantID := uuid.New()

	entry, err := svc.Create(context.Background(), tenantID, CreateInput{
		PostingDate: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
		Company:     "Acme Ltd",
		Lines: []LineInput{
			{AccountCode: "1000", Debit: decimal.NewFromInt(250)},
			{AccountCode: "4000", Credit: decimal.NewFromInt(250)},
		},
	})
	require.NoError(t, err)
	require.Equal(t, DocStatusDraft, entry.DocStatus)
	require.Equal(t, "Journal Entry", entry.VoucherType)
	require.Len(t, entry.Lines, 2)

	stored, err := svc.Get(context.Background(), tenantID, entry.ID)
	require.NoError(t, err)
	require.Len(t, stored.Lines, 2)
	require.Equal(t, 0, stored.Lines[0].Idx)
	require.Equal(t, 1, stored.Lines[1].Idx)
}

func TestCreateRejectsUnbalancedBeforeAnyWrite(t *testing.T) {
	repo := newStubRepo()
	svc := testService(repo)

	_, err := svc.Create(context.Background(), uuid.New(), CreateInput{
		PostingDate: time.Now(),
		Lines: []LineInput{
			{AccountCode: "1000", Debit: decimal.NewFromInt(100)},
			{AccountCode: "4000", Credit: decimal.NewFromInt(90)},
		},
	})
	require.ErrorIs(t, err, shared.ErrUnbalanced)
	require.Empty(t, repo.entries)
}

func TestSubmitDraft(t *testing.T) {
	repo := newStubRepo()
	svc := testService(repo)
	tenantID := uuid.New()

	entry, err := svc.Create(context.Background(), tenantID, CreateInput{
		PostingDate: time.Now(),
		Lines: []LineInput{
			{AccountCode: "1000", Debit: decimal.NewFromInt(10)},
			{AccountCode: "4000", Credit: decimal.NewFromInt(10)},
		},
	})
	require.NoError(t, err)

	submitted, err := svc.Submit(context.Background(), tenantID, entry.ID)
	require.NoError(t, err)
	require.Equal(t, DocStatusSubmitted, submitted.DocStatus)

	// a second submit finds the entry already out of Draft
	_, err = svc.Submit(context.Background(), tenantID, entry.ID)
	require.ErrorIs(t, err, shared.ErrInvalidStatus)
}

func TestSubmitUnknownEntry(t *testing.T) {
	svc := testService(newStubRepo())
	_, err := svc.Submit(context.Background(), uuid.New(), uuid.New())
	require.ErrorIs(t, err, shared.ErrEntryNotFound)
}

func TestCancelPostedEntryReversesGL(t *testing.T) {
	repo := newStubRepo()
	svc := testService(repo)
	tenantID := uuid.New()

	id := uuid.New()
	repo.entries[id] = Entry{ID: id, TenantID: tenantID, DocStatus: DocStatusSubmitted, Posted: true}

	cancelled, err := svc.Cancel(context.Background(), tenantID, id)
	require.NoError(t, err)
	require.Equal(t, DocStatusCancelled, cancelled.DocStatus)
	require.Equal(t, []uuid.UUID{id}, repo.cancelledGL)
}

func TestCancelDraftSkipsGL(t *testing.T) {
	repo := newStubRepo()
	svc := testService(repo)
	tenantID := uuid.New()

	id := uuid.New()
	repo.entries[id] = Entry{ID: id, TenantID: tenantID, DocStatus: DocStatusDraft}

	_, err := svc.Cancel(context.Background(), tenantID, id)
	require.NoError(t, err)
	require.Empty(t, repo.cancelledGL)
}

func TestCancelTwiceFails(t *testing.T) {
	repo := newStubRepo()
	svc := testService(repo)
	tenantID := uuid.New()

	id := uuid.New()
	repo.entries[id] = Entry{ID: id, TenantID: tenantID, DocStatus: DocStatusCancelled}

	_, err := svc.Cancel(context.Background(), tenantID, id)
	require.ErrorIs(t, err, shared.ErrInvalidStatus)
}
