package accounts

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/meridian-erp/meridian-erp/internal/platform/httpx"
	"github.com/meridian-erp/meridian-erp/internal/tenant"
)

type Handler struct {
	service  *Service
	seeder   *Seeder
	logger   *slog.Logger
	validate *validator.Validate
}

func NewHandler(logger *slog.Logger, service *Service, seeder *Seeder) *Handler {
	return &Handler{
		service:  service,
		seeder:   seeder,
		logger:   logger,
		validate: validator.New(),
	}
}

type createAccountRequest struct {
	Code     string  `json:"code" validate:"required"`
	Name     string  `json:"name" validate:"required"`
	RootType string  `json:"rootType" validate:"required,oneof=ASSET LIABILITY INCOME EXPENSE EQUITY"`
	IsGroup  bool    `json:"isGroup"`
	ParentID *string `json:"parentId,omitempty" validate:"omitempty,uuid4"`
	Currency string  `json:"currency,omitempty"`
}

type accountResponse struct {
	ID       string  `json:"id"`
	Code     string  `json:"code"`
	Name     string  `json:"name"`
	RootType string  `json:"rootType"`
	IsGroup  bool    `json:"isGroup"`
	ParentID *string `json:"parentId,omitempty"`
	Currency string  `json:"currency,omitempty"`
}

func toAccountResponse(a Account) accountResponse {
	resp := accountResponse{
		ID:       a.ID.String(),
		Code:     a.Code,
		Name:     a.Name,
		RootType: string(a.RootType),
		IsGroup:  a.IsGroup,
		Currency: a.Currency,
	}
	if a.ParentID != nil {
		pid := a.ParentID.String()
		resp.ParentID = &pid
	}
	return resp
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenant.FromContext(r.Context())
	if !ok {
		httpx.Problem(w, http.StatusBadRequest, "Missing Tenant", tenant.ErrMissing.Error())
		return
	}
	var req createAccountRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Malformed Request", err.Error())
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	in := CreateInput{
		Code:     req.Code,
		Name:     req.Name,
		RootType: RootType(req.RootType),
		IsGroup:  req.IsGroup,
		Currency: req.Currency,
	}
	if req.ParentID != nil {
		pid, err := uuid.Parse(*req.ParentID)
		if err != nil {
			httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "parentId must be a uuid")
			return
		}
		in.ParentID = &pid
	}
	account, err := h.service.Create(r.Context(), tenantID, in)
	if err != nil {
		h.logger.Warn("create account", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, toAccountResponse(account))
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenant.FromContext(r.Context())
	if !ok {
		httpx.Problem(w, http.StatusBadRequest, "Missing Tenant", tenant.ErrMissing.Error())
		return
	}
	accounts, err := h.service.List(r.Context(), tenantID)
	if err != nil {
		h.logger.Error("list accounts", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	out := make([]accountResponse, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, toAccountResponse(a))
	}
	httpx.JSON(w, http.StatusOK, out)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
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
	account, err := h.service.Get(r.Context(), tenantID, id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toAccountResponse(account))
}

type seedRequest struct {
	Company string `json:"company" validate:"required"`
}

func (h *Handler) Seed(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := tenant.FromContext(r.Context())
	if !ok {
		httpx.Problem(w, http.StatusBadRequest, "Missing Tenant", tenant.ErrMissing.Error())
		return
	}
	var req seedRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Malformed Request", err.Error())
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	seeded, err := h.seeder.SeedStandardChart(r.Context(), tenantID, req.Company)
	if err != nil {
		h.logger.Error("seed chart", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	out := make(map[string]accountResponse, len(seeded))
	for code, a := range seeded {
		out[code] = toAccountResponse(a)
	}
	httpx.JSON(w, http.StatusOK, out)
}
