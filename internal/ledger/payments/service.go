package payments

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/meridian-erp/meridian-erp/internal/ledger/shared"
)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(logger *slog.Logger, repo Repository) *Service {
	return &Service{repo: repo, logger: logger}
}

// CreateInput carries the fields accepted when recording a payment.
type CreateInput struct {
	PostingDate     time.Time
	PaidFromAccount string
	PaidToAccount   string
	PaidAmount      decimal.Decimal
	ReceivedAmount  decimal.Decimal
	Company         string
	ReferenceNo     string
}

func (in CreateInput) Validate() error {
	if in.PaidFromAccount == "" || in.PaidToAccount == "" {
		return errors.New("payments: paid from and paid to accounts required")
	}
	if in.PaidAmount.IsNegative() || in.ReceivedAmount.IsNegative() {
		return shared.ErrNegativeAmount
	}
	return nil
}

func (s *Service) Create(ctx context.Context, tenantID uuid.UUID, in CreateInput) (Entry, error) {
	if err := in.Validate(); err != nil {
		return Entry{}, err
	}
	entry := Entry{
		ID:              uuid.New(),
		TenantID:        tenantID,
		PostingDate:     in.PostingDate,
		PaidFromAccount: in.PaidFromAccount,
		PaidToAccount:   in.PaidToAccount,
		PaidAmount:      in.PaidAmount,
		ReceivedAmount:  in.ReceivedAmount,
		Company:         in.Company,
		ReferenceNo:     in.ReferenceNo,
	}
	created, err := s.repo.Create(ctx, entry)
	if err != nil {
		return Entry{}, err
	}
	s.logger.Info("payment entry recorded",
		slog.String("tenant_id", tenantID.String()),
		slog.String("payment_id", created.ID.String()),
		slog.String("paid_amount", created.PaidAmount.String()))
	return created, nil
}

func (s *Service) List(ctx context.Context, tenantID uuid.UUID) ([]Entry, error) {
	return s.repo.List(ctx, tenantID)
}
