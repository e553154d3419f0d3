package journals

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/meridian-erp/meridian-erp/internal/ledger/shared"
)

// CacheBumper invalidates cached report payloads after a ledger mutation.
type CacheBumper interface {
	Bump(ctx context.Context) error
}

// Service validates and stores journal entries ahead of posting.
type Service struct {
	repo   Repository
	cache  CacheBumper
	logger *slog.Logger
}

func NewService(repo Repository, cache CacheBumper, logger *slog.Logger) *Service {
	return &Service{repo: repo, cache: cache, logger: logger}
}

// Create persists a balanced journal entry in Draft. Header and lines are
// written atomically: neither ever exists without the other.
func (s *Service) Create(ctx context.Context, tenantID uuid.UUID, in CreateInput) (Entry, error) {
	if err := in.Validate(); err != nil {
		return Entry{}, err
	}
	voucherType := in.VoucherType
	if voucherType == "" {
		voucherType = "Journal Entry"
	}
	entry := Entry{
		ID:            uuid.New(),
		TenantID:      tenantID,
		VoucherType:   voucherType,
		PostingDate:   in.PostingDate,
		Company:       in.Company,
		DocStatus:     DocStatusDraft,
		ReferenceNo:   in.ReferenceNo,
		ReferenceDate: in.ReferenceDate,
		UserRemark:    in.UserRemark,
	}
	for i, line := range in.Lines {
		entry.Lines = append(entry.Lines, Line{
			ID:          uuid.New(),
			EntryID:     entry.ID,
			Idx:         i,
			AccountCode: line.AccountCode,
			Debit:       line.Debit,
			Credit:      line.Credit,
			CostCenter:  line.CostCenter,
			Party:       line.Party,
		})
	}
	err := s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		if err := tx.InsertEntry(ctx, entry); err != nil {
			return err
		}
		return tx.InsertLines(ctx, entry.Lines)
	})
	if err != nil {
		return Entry{}, err
	}
	s.logger.Info("journal entry created",
		slog.String("tenant", tenantID.String()),
		slog.String("entry", entry.ID.String()),
		slog.Int("lines", len(entry.Lines)))
	return entry, nil
}

// List returns every entry for the tenant with lines, newest posting date first.
func (s *Service) List(ctx context.Context, tenantID uuid.UUID) ([]Entry, error) {
	return s.repo.List(ctx, tenantID)
}

// Get fetches one entry with its lines.
func (s *Service) Get(ctx context.Context, tenantID, id uuid.UUID) (Entry, error) {
	return s.repo.Get(ctx, tenantID, id)
}

// Submit moves a Draft entry to Submitted, making it eligible for posting.
func (s *Service) Submit(ctx context.Context, tenantID, id uuid.UUID) (Entry, error) {
	var entry Entry
	err := s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		current, err := tx.GetEntryForUpdate(ctx, tenantID, id)
		if err != nil {
			return err
		}
		if current.DocStatus != DocStatusDraft {
			return shared.ErrInvalidStatus
		}
		if err := tx.UpdateStatus(ctx, tenantID, id, DocStatusSubmitted); err != nil {
			return err
		}
		entry = current
		entry.DocStatus = DocStatusSubmitted
		return nil
	})
	if err != nil {
		return Entry{}, err
	}
	return entry, nil
}

// Cancel marks the entry Cancelled. When the entry was already posted, its
// GL rows are soft-reversed in the same transaction by flipping is_cancelled.
func (s *Service) Cancel(ctx context.Context, tenantID, id uuid.UUID) (Entry, error) {
	var entry Entry
	err := s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		current, err := tx.GetEntryForUpdate(ctx, tenantID, id)
		if err != nil {
			return err
		}
		if current.DocStatus == DocStatusCancelled {
			return shared.ErrInvalidStatus
		}
		if err := tx.UpdateStatus(ctx, tenantID, id, DocStatusCancelled); err != nil {
			return err
		}
		if current.Posted {
			if err := tx.CancelGLEntries(ctx, tenantID, id); err != nil {
				return err
			}
		}
		entry = current
		entry.DocStatus = DocStatusCancelled
		return nil
	})
	if err != nil {
		return Entry{}, err
	}
	if entry.Posted && s.cache != nil {
		if err := s.cache.Bump(ctx); err != nil {
			s.logger.Warn("report cache bump", slog.Any("error", err))
		}
	}
	s.logger.Info("journal entry cancelled",
		slog.String("tenant", tenantID.String()),
		slog.String("entry", id.String()),
		slog.Bool("gl_reversed", entry.Posted))
	return entry, nil
}
