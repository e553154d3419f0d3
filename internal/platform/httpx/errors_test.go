package httpx

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/meridian-erp/meridian-erp/internal/ledger/shared"
	_ "github.com/meridian-erp/meridian-erp/testing"
)

func TestRespondErrorStatusMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"account not found", shared.ErrAccountNotFound, http.StatusNotFound},
		{"entry not found", shared.ErrEntryNotFound, http.StatusNotFound},
		{"duplicate code", shared.ErrDuplicateCode, http.StatusConflict},
		{"duplicate name", shared.ErrDuplicateName, http.StatusConflict},
		{"already posted", shared.ErrAlreadyPosted, http.StatusConflict},
		{"not submitted", shared.ErrNotSubmitted, http.StatusUnprocessableEntity},
		{"invalid status", shared.ErrInvalidStatus, http.StatusUnprocessableEntity},
		{"unbalanced", shared.ErrUnbalanced, http.StatusBadRequest},
		{"empty lines", shared.ErrEmptyLines, http.StatusBadRequest},
		{"both sides", shared.ErrBothSides, http.StatusBadRequest},
		{"bad pagination", shared.ErrBadPagination, http.StatusBadRequest},
		{"root type mismatch", shared.ErrRootTypeMismatch, http.StatusBadRequest},
		{"unresolved account", shared.ErrUnknownAccount, http.StatusBadRequest},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			RespondError(rec, tc.err)
			require.Equal(t, tc.want, rec.Code)
			require.Contains(t, rec.Header().Get("Content-Type"), "application/json")
		})
	}
}

func TestRespondErrorHidesInternalDetail(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondError(rec, errors.New("pq: connection refused"))
	require.NotContains(t, rec.Body.String(), "connection refused")
}
