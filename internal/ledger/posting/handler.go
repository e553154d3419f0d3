package posting

import (
	"log/slog"
	"net/http"

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

type glEntryResponse struct {
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

func toGLEntryResponse(e gl.Entry) glEntryResponse {
	return glEntryResponse{
		ID:          e.ID.String(),
		PostingDate: e.PostingDate.Format("2006-01-02"),
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

// Post materialises a submitted journal entry as general ledger rows.
func (h *Handler) Post(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenant.FromContext(r.Context())
	if !ok {
		httpx.Problem(w, http.StatusBadRequest, "Missing Tenant", tenant.ErrMissing.Error())
		return
	}
	entryID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Entry ID", err.Error())
		return
	}
	entries, err := h.service.PostJournalEntry(r.Context(), tenantID, entryID)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	resp := make([]glEntryResponse, 0, len(entries))
	for _, e := range entries {
		resp = append(resp, toGLEntryResponse(e))
	}
	httpx.JSON(w, http.StatusCreated, map[string]interface{}{"glEntries": resp})
}

// MountRoutes registers the posting endpoint inside the journal entry
// route group.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/{id}/post", h.Post)
}
