package httpx

import (
	"errors"
	"net/http"

	"github.com/meridian-erp/meridian-erp/internal/ledger/shared"
)

// RespondError maps the ledger's sentinel errors to HTTP problem
// responses. Unrecognised errors surface as 500 with the detail withheld.
func RespondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, shared.ErrAccountNotFound),
		errors.Is(err, shared.ErrEntryNotFound):
		Problem(w, http.StatusNotFound, "Not Found", err.Error())
	case errors.Is(err, shared.ErrDuplicateCode),
		errors.Is(err, shared.ErrDuplicateName),
		errors.Is(err, shared.ErrAlreadyPosted):
		Problem(w, http.StatusConflict, "Conflict", err.Error())
	case errors.Is(err, shared.ErrNotSubmitted),
		errors.Is(err, shared.ErrInvalidStatus):
		Problem(w, http.StatusUnprocessableEntity, "Invalid State", err.Error())
	case errors.Is(err, shared.ErrUnbalanced),
		errors.Is(err, shared.ErrEmptyLines),
		errors.Is(err, shared.ErrBothSides),
		errors.Is(err, shared.ErrNegativeAmount),
		errors.Is(err, shared.ErrBadPagination),
		errors.Is(err, shared.ErrRootTypeMismatch),
		errors.Is(err, shared.ErrUnknownAccount):
		Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
	default:
		Problem(w, http.StatusInternalServerError, "Internal Error", "")
	}
}
