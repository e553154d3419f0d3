package journals

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
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

type lineRequest struct {
	Account    string          `json:"account" validate:"required"`
	Debit      decimal.Decimal `json:"debit"`
	Credit     decimal.Decimal `json:"credit"`
	CostCenter string          `json:"costCenter,omitempty"`
	Party      string          `json:"party,omitempty"`
}

type createEntryRequest struct {
	VoucherType   string        `json:"voucherType,omitempty"`
	PostingDate   string        `json:"postingDate" validate:"required,datetime=2006-01-02"`
	Company       string        `json:"company,omitempty"`
	ReferenceNo   string        `json:"referenceNo,omitempty"`
	ReferenceDate *string       `json:"referenceDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	UserRemark    string        `json:"userRemark,omitempty"`
	Lines         []lineRequest `json:"lines" validate:"required,min=1,dive"`
}

type lineResponse struct {
	Account    string          `json:"account"`
	Debit      decimal.Decimal `json:"debit"`
	Credit     decimal.Decimal `json:"credit"`
	CostCenter string          `json:"costCenter,omitempty"`
	Party      string          `json:"party,omitempty"`
}

type entryResponse struct {
	ID          string         `json:"id"`
	VoucherType string         `json:"voucherType"`
	PostingDate string         `json:"postingDate"`
	Company     string         `json:"company,omitempty"`
	DocStatus   int            `json:"docstatus"`
	Status      string         `json:"status"`
	ReferenceNo string         `json:"referenceNo,omitempty"`
	UserRemark  string         `json:"userRemark,omitempty"`
	Posted      bool           `json:"posted"`
	Lines       []lineResponse `json:"lines"`
}

func toEntryResponse(e Entry) entryResponse {
	resp := entryResponse{
		ID:          e.ID.String(),
		VoucherType: e.VoucherType,
		PostingDate: e.PostingDate.Format("2006-01-02"),
		Company:     e.Company,
		DocStatus:   int(e.DocStatus),
		Status:      e.DocStatus.String(),
		ReferenceNo: e.ReferenceNo,
		UserRemark:  e.UserRemark,
		Posted:      e.Posted,
		Lines:       make([]lineResponse, 0, len(e.Lines)),
	}
	for _, line := range e.Lines {
		resp.Lines = append(resp.Lines, lineResponse{
			Account:    line.AccountCode,
			Debit:      line.Debit,
			Credit:     line.Credit,
			CostCenter: line.CostCenter,
			Party:      line.Party,
		})
	}
	return resp
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenant.FromContext(r.Context())
	if !ok {
		httpx.Problem(w, http.StatusBadRequest, "Missing Tenant", tenant.ErrMissing.Error())
		return
	}
	var req createEntryRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Malformed Request", err.Error())
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	postingDate, err := time.Parse("2006-01-02", req.PostingDate)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "postingDate must be YYYY-MM-DD")
		return
	}
	in := CreateInput{
		VoucherType: req.VoucherType,
		PostingDate: postingDate,
		Company:     req.Company,
		ReferenceNo: req.ReferenceNo,
		UserRemark:  req.UserRemark,
	}
	if req.ReferenceDate != nil {
		refDate, err := time.Parse("2006-01-02", *req.ReferenceDate)
		if err != nil {
			httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "referenceDate must be YYYY-MM-DD")
			return
		}
		in.ReferenceDate = &refDate
	}
	for _, line := range req.Lines {
		in.Lines = append(in.Lines, LineInput{
			AccountCode: line.Account,
			Debit:       line.Debit,
			Credit:      line.Credit,
			CostCenter:  line.CostCenter,
			Party:       line.Party,
		})
	}
	entry, err := h.service.Create(r.Context(), tenantID, in)
	if err != nil {
		h.logger.Warn("create journal entry", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, toEntryResponse(entry))
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenant.FromContext(r.Context())
	if !ok {
		httpx.Problem(w, http.StatusBadRequest, "Missing Tenant", tenant.ErrMissing.Error())
		return
	}
	entries, err := h.service.List(r.Context(), tenantID)
	if err != nil {
		h.logger.Error("list journal entries", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	out := make([]entryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, toEntryResponse(e))
	}
	httpx.JSON(w, http.StatusOK, out)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	h.withEntryID(w, r, func(tenantID, id uuid.UUID) (Entry, error) {
		return h.service.Get(r.Context(), tenantID, id)
	})
}

func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	h.withEntryID(w, r, func(tenantID, id uuid.UUID) (Entry, error) {
		return h.service.Submit(r.Context(), tenantID, id)
	})
}

func (h *Handler) Cancel(w http.ResponseWriter, r *http.Request) {
	h.withEntryID(w, r, func(tenantID, id uuid.UUID) (Entry, error) {
		return h.service.Cancel(r.Context(), tenantID, id)
	})
}

func (h *Handler) withEntryID(w http.ResponseWriter, r *http.Request, fn func(tenantID, id uuid.UUID) (Entry, error)) {
	tenantID, ok := tenant.FromContext(r.Context())
	if !ok {
		httpx.Problem(w, http.StatusBadRequest, "Missing Tenant", tenant.ErrMissing.Error())
		return
	}
	id, err := uuid.Parse(pathParam(r, "id"))
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "id must be a uuid")
		return
	}
	entry, err := fn(tenantID, id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toEntryResponse(entry))
}
