package payments

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/meridian-erp/meridian-erp/internal/platform/httpx"
	"github.com/meridian-erp/meridian-erp/internal/tenant"
)

type Handler struct {
	service  *Service
	logger   *slog.Logger
	validate *validator.Validate
}

func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{service: service, logger: logger, validate: validator.New()}
}

type createPaymentRequest struct {
	PostingDate     string          `json:"postingDate" validate:"required,datetime=2006-01-02"`
	PaidFromAccount string          `json:"paidFromAccount" validate:"required"`
	PaidToAccount   string          `json:"paidToAccount" validate:"required"`
	PaidAmount      decimal.Decimal `json:"paidAmount"`
	ReceivedAmount  decimal.Decimal `json:"receivedAmount"`
	Company         string          `json:"company,omitempty"`
	ReferenceNo     string          `json:"referenceNo,omitempty"`
}

type paymentResponse struct {
	ID              string          `json:"id"`
	PostingDate     string          `json:"postingDate"`
	PaidFromAccount string          `json:"paidFromAccount"`
	PaidToAccount   string          `json:"paidToAccount"`
	PaidAmount      decimal.Decimal `json:"paidAmount"`
	ReceivedAmount  decimal.Decimal `json:"receivedAmount"`
	Company         string          `json:"company,omitempty"`
	ReferenceNo     string          `json:"referenceNo,omitempty"`
}

func toPaymentResponse(e Entry) paymentResponse {
	return paymentResponse{
		ID:              e.ID.String(),
		PostingDate:     e.PostingDate.Format("2006-01-02"),
		PaidFromAccount: e.PaidFromAccount,
		PaidToAccount:   e.PaidToAccount,
		PaidAmount:      e.PaidAmount,
		ReceivedAmount:  e.ReceivedAmount,
		Company:         e.Company,
		ReferenceNo:     e.ReferenceNo,
	}
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenant.FromContext(r.Context())
	if !ok {
		httpx.Problem(w, http.StatusBadRequest, "Missing Tenant", tenant.ErrMissing.Error())
		return
	}
	var req createPaymentRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Malformed Request", err.Error())
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	postingDate, _ := time.Parse("2006-01-02", req.PostingDate)
	created, err := h.service.Create(r.Context(), tenantID, CreateInput{
		PostingDate:     postingDate,
		PaidFromAccount: req.PaidFromAccount,
		PaidToAccount:   req.PaidToAccount,
		PaidAmount:      req.PaidAmount,
		ReceivedAmount:  req.ReceivedAmount,
		Company:         req.Company,
		ReferenceNo:     req.ReferenceNo,
	})
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, toPaymentResponse(created))
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenant.FromContext(r.Context())
	if !ok {
		httpx.Problem(w, http.StatusBadRequest, "Missing Tenant", tenant.ErrMissing.Error())
		return
	}
	entries, err := h.service.List(r.Context(), tenantID)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	resp := make([]paymentResponse, 0, len(entries))
	for _, e := range entries {
		resp = append(resp, toPaymentResponse(e))
	}
	httpx.JSON(w, http.StatusOK, resp)
}

// MountRoutes registers the payment entry endpoints.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/", h.Create)
}
