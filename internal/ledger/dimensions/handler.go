package dimensions

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

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

type createCostCenterRequest struct {
	Name    string `json:"name" validate:"required"`
	Company string `json:"company,omitempty"`
	IsGroup bool   `json:"isGroup"`
}

type costCenterResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Company string `json:"company,omitempty"`
	IsGroup bool   `json:"isGroup"`
}

func toCostCenterResponse(cc CostCenter) costCenterResponse {
	return costCenterResponse{ID: cc.ID.String(), Name: cc.Name, Company: cc.Company, IsGroup: cc.IsGroup}
}

func (h *Handler) CreateCostCenter(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenant.FromContext(r.Context())
	if !ok {
		httpx.Problem(w, http.StatusBadRequest, "Missing Tenant", tenant.ErrMissing.Error())
		return
	}
	var req createCostCenterRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Malformed Request", err.Error())
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	created, err := h.service.CreateCostCenter(r.Context(), tenantID, CostCenterInput{
		Name:    req.Name,
		Company: req.Company,
		IsGroup: req.IsGroup,
	})
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, toCostCenterResponse(created))
}

func (h *Handler) ListCostCenters(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenant.FromContext(r.Context())
	if !ok {
		httpx.Problem(w, http.StatusBadRequest, "Missing Tenant", tenant.ErrMissing.Error())
		return
	}
	centers, err := h.service.ListCostCenters(r.Context(), tenantID)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	resp := make([]costCenterResponse, 0, len(centers))
	for _, cc := range centers {
		resp = append(resp, toCostCenterResponse(cc))
	}
	httpx.JSON(w, http.StatusOK, resp)
}

type createFiscalYearRequest struct {
	Name      string `json:"name" validate:"required"`
	StartDate string `json:"startDate" validate:"required,datetime=2006-01-02"`
	EndDate   string `json:"endDate" validate:"required,datetime=2006-01-02"`
}

type fiscalYearResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

func toFiscalYearResponse(fy FiscalYear) fiscalYearResponse {
	return fiscalYearResponse{
		ID:        fy.ID.String(),
		Name:      fy.Name,
		StartDate: fy.StartDate.Format("2006-01-02"),
		EndDate:   fy.EndDate.Format("2006-01-02"),
	}
}

func (h *Handler) CreateFiscalYear(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenant.FromContext(r.Context())
	if !ok {
		httpx.Problem(w, http.StatusBadRequest, "Missing Tenant", tenant.ErrMissing.Error())
		return
	}
	var req createFiscalYearRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Malformed Request", err.Error())
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	start, _ := time.Parse("2006-01-02", req.StartDate)
	end, _ := time.Parse("2006-01-02", req.EndDate)
	created, err := h.service.CreateFiscalYear(r.Context(), tenantID, FiscalYearInput{
		Name:      req.Name,
		StartDate: start,
		EndDate:   end,
	})
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, toFiscalYearResponse(created))
}

func (h *Handler) ListFiscalYears(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenant.FromContext(r.Context())
	if !ok {
		httpx.Problem(w, http.StatusBadRequest, "Missing Tenant", tenant.ErrMissing.Error())
		return
	}
	years, err := h.service.ListFiscalYears(r.Context(), tenantID)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	resp := make([]fiscalYearResponse, 0, len(years))
	for _, fy := range years {
		resp = append(resp, toFiscalYearResponse(fy))
	}
	httpx.JSON(w, http.StatusOK, resp)
}

// MountCostCenterRoutes registers the cost center endpoints.
func (h *Handler) MountCostCenterRoutes(r chi.Router) {
	r.Get("/", h.ListCostCenters)
	r.Post("/", h.CreateCostCenter)
}

// MountFiscalYearRoutes registers the fiscal year endpoints.
func (h *Handler) MountFiscalYearRoutes(r chi.Router) {
	r.Get("/", h.ListFiscalYears)
	r.Post("/", h.CreateFiscalYear)
}
