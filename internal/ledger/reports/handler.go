package reports

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/meridian-erp/meridian-erp/internal/ledger/gl"
	"github.com/meridian-erp/meridian-erp/internal/platform/httpx"
	"github.com/meridian-erp/meridian-erp/internal/tenant"
)

type Handler struct {
	service *Service
	logger  *slog.Logger
}

func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{service: service, logger: logger}
}

const dateParamFormat = "2006-01-02"

func (h *Handler) AccountBalance(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenant.FromContext(r.Context())
	if !ok {
		httpx.Problem(w, http.StatusBadRequest, "Missing Tenant", tenant.ErrMissing.Error())
		return
	}
	accountID, err := uuid.Parse(chi.URLParam(r, "accountID"))
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Account ID", err.Error())
		return
	}
	asOf := time.Now().UTC()
	if raw := r.URL.Query().Get("as_of"); raw != "" {
		asOf, err = time.Parse(dateParamFormat, raw)
		if err != nil {
			httpx.Problem(w, http.StatusBadRequest, "Invalid Date", "as_of must be YYYY-MM-DD")
			return
		}
	}
	summary, err := h.service.AccountBalance(r.Context(), tenantID, accountID, asOf)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, summary)
}

func (h *Handler) TrialBalance(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenant.FromContext(r.Context())
	if !ok {
		httpx.Problem(w, http.StatusBadRequest, "Missing Tenant", tenant.ErrMissing.Error())
		return
	}
	from, to, ok := h.dateWindow(w, r)
	if !ok {
		return
	}
	report, err := h.service.TrialBalance(r.Context(), tenantID, from, to, r.URL.Query().Get("company"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, report)
}

func (h *Handler) ProfitAndLoss(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenant.FromContext(r.Context())
	if !ok {
		httpx.Problem(w, http.StatusBadRequest, "Missing Tenant", tenant.ErrMissing.Error())
		return
	}
	from, to, ok := h.dateWindow(w, r)
	if !ok {
		return
	}
	report, err := h.service.ProfitAndLoss(r.Context(), tenantID, from, to, r.URL.Query().Get("company"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, report)
}

func (h *Handler) BalanceSheet(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenant.FromContext(r.Context())
	if !ok {
		httpx.Problem(w, http.StatusBadRequest, "Missing Tenant", tenant.ErrMissing.Error())
		return
	}
	asOf := time.Now().UTC()
	if raw := r.URL.Query().Get("as_of"); raw != "" {
		parsed, err := time.Parse(dateParamFormat, raw)
		if err != nil {
			httpx.Problem(w, http.StatusBadRequest, "Invalid Date", "as_of must be YYYY-MM-DD")
			return
		}
		asOf = parsed
	}
	report, err := h.service.BalanceSheet(r.Context(), tenantID, asOf, r.URL.Query().Get("company"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, report)
}

func (h *Handler) GeneralLedger(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenant.FromContext(r.Context())
	if !ok {
		httpx.Problem(w, http.StatusBadRequest, "Missing Tenant", tenant.ErrMissing.Error())
		return
	}
	var filters GLFilters
	query := r.URL.Query()
	if raw := query.Get("account_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			httpx.Problem(w, http.StatusBadRequest, "Invalid Account ID", err.Error())
			return
		}
		filters.AccountID = &id
	}
	if raw := query.Get("from"); raw != "" {
		from, err := time.Parse(dateParamFormat, raw)
		if err != nil {
			httpx.Problem(w, http.StatusBadRequest, "Invalid Date", "from must be YYYY-MM-DD")
			return
		}
		filters.From = &from
	}
	if raw := query.Get("to"); raw != "" {
		to, err := time.Parse(dateParamFormat, raw)
		if err != nil {
			httpx.Problem(w, http.StatusBadRequest, "Invalid Date", "to must be YYYY-MM-DD")
			return
		}
		filters.To = &to
	}
	filters.VoucherType = query.Get("voucher_type")
	filters.Company = query.Get("company")
	var err error
	if filters.Limit, err = queryInt(query.Get("limit")); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Pagination", "limit must be an integer")
		return
	}
	if filters.Offset, err = queryInt(query.Get("offset")); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Pagination", "offset must be an integer")
		return
	}

	entries, err := h.service.GLReport(r.Context(), tenantID, filters)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	resp := make([]glRowResponse, 0, len(entries))
	for _, e := range entries {
		resp = append(resp, toGLRowResponse(e))
	}
	httpx.JSON(w, http.StatusOK, map[string]interface{}{
		"entries": resp,
		"limit":   filters.Limit,
		"offset":  filters.Offset,
	})
}

type glRowResponse struct {
	ID          string `json:"id"`
	PostingDate string `json:"postingDate"`
	AccountCode string `json:"accountCode"`
	Debit       string `json:"debit"`
	Credit      string `json:"credit"`
	VoucherType string `json:"voucherType"`
	VoucherNo   string `json:"voucherNo"`
	CostCenter  string `json:"costCenter,omitempty"`
	Company     string `json:"company,omitempty"`
	Remarks     string `json:"remarks,omitempty"`
}

func toGLRowResponse(e gl.Entry) glRowResponse {
	return glRowResponse{
		ID:          e.ID.String(),
		PostingDate: e.PostingDate.Format(dateParamFormat),
		AccountCode: e.AccountCode,
		Debit:       e.Debit.StringFixed(2),
		Credit:      e.Credit.StringFixed(2),
		VoucherType: e.VoucherType,
		VoucherNo:   e.VoucherNo.String(),
		CostCenter:  e.CostCenter,
		Company:     e.Company,
		Remarks:     e.Remarks,
	}
}

func (h *Handler) dateWindow(w http.ResponseWriter, r *http.Request) (time.Time, time.Time, bool) {
	query := r.URL.Query()
	from, err := time.Parse(dateParamFormat, query.Get("from"))
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Date", "from must be YYYY-MM-DD")
		return time.Time{}, time.Time{}, false
	}
	to, err := time.Parse(dateParamFormat, query.Get("to"))
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Date", "to must be YYYY-MM-DD")
		return time.Time{}, time.Time{}, false
	}
	return from, to, true
}

func queryInt(raw string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}
