package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/meridian-erp/meridian-erp/internal/ledger/accounts"
	"github.com/meridian-erp/meridian-erp/internal/ledger/dimensions"
	"github.com/meridian-erp/meridian-erp/internal/ledger/journals"
	"github.com/meridian-erp/meridian-erp/internal/ledger/payments"
	"github.com/meridian-erp/meridian-erp/internal/ledger/posting"
	"github.com/meridian-erp/meridian-erp/internal/ledger/reports"
	"github.com/meridian-erp/meridian-erp/internal/tenant"
	"github.com/meridian-erp/meridian-erp/jobs"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger            *slog.Logger
	Config            *Config
	AccountsHandler   *accounts.Handler
	JournalsHandler   *journals.Handler
	PostingHandler    *posting.Handler
	ReportsHandler    *reports.Handler
	DimensionsHandler *dimensions.Handler
	PaymentsHandler   *payments.Handler
	JobHandler        *jobs.Handler
}

// NewRouter constructs the chi.Router with Meridian defaults. Every ledger
// route runs behind the tenant resolver; health and job endpoints do not.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger: params.Logger,
		Config: params.Config,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	if params.JobHandler != nil {
		r.Route("/jobs", params.JobHandler.MountRoutes)
	}

	r.Route("/api/v1", func(api chi.Router) {
		api.Use(tenant.Resolver)

		api.Route("/accounts", params.AccountsHandler.MountRoutes)
		api.Route("/journal-entries", func(je chi.Router) {
			params.JournalsHandler.MountRoutes(je)
			params.PostingHandler.MountRoutes(je)
		})
		api.Route("/reports", params.ReportsHandler.MountRoutes)
		api.Route("/cost-centers", params.DimensionsHandler.MountCostCenterRoutes)
		api.Route("/fiscal-years", params.DimensionsHandler.MountFiscalYearRoutes)
		api.Route("/payment-entries", params.PaymentsHandler.MountRoutes)
	})

	return r
}
