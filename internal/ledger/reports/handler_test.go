package reports

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/meridian-erp/meridian-erp/internal/ledger/gl"
	"github.com/meridian-erp/meridian-erp/internal/tenant"
	_ "github.com/meridian-erp/meridian-erp/testing"
)

func TestGeneralLedgerResponseShape(t *testing.T) {
	tenantID := uuid.New()
	voucherNo := uuid.New()
	repo := &stubRepo{glRows: []gl.Entry{{
		ID:          uuid.New(),
		TenantID:    tenantID,
		PostingDate: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		AccountID:   uuid.New(),
		AccountCode: "5210",
		Debit:       decimal.NewFromInt(600),
		VoucherType: gl.VoucherTypeJournalEntry,
		VoucherNo:   voucherNo,
		CostCenter:  "Dept A",
	}}}
	h := NewHandler(testLogger(), NewService(testLogger(), repo, nil))

	router := chi.NewRouter()
	router.Use(tenant.Resolver)
	router.Route("/reports", h.MountRoutes)

	req := httptest.NewRequest(http.MethodGet, "/reports/general-ledger", nil)
	req.Header.Set(tenant.Header, tenantID.String())
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Entries []map[string]interface{} `json:"entries"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Entries, 1)

	row := body.Entries[0]
	require.Contains(t, row, "accountCode")
	require.Contains(t, row, "postingDate")
	require.Contains(t, row, "voucherType")
	require.Contains(t, row, "voucherNo")
	require.NotContains(t, row, "AccountCode")
	require.Equal(t, "5210", row["accountCode"])
	require.Equal(t, "600.00", row["debit"])
	require.Equal(t, "0.00", row["credit"])
	require.Equal(t, voucherNo.String(), row["voucherNo"])
	require.Equal(t, "2026-03-01", row["postingDate"])
}
