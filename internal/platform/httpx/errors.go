package httpx

import (
	"errors"
	"net/http"
)

// Sentinel errors shared across domain packages. Services wrap these so
// handlers can map any failure to a response without knowing the domain.
var (
	// ErrNotFound indicates the target record does not exist.
	ErrNotFound = errors.New("resource not found")
	// ErrValidation indicates a malformed or incomplete request.
	ErrValidation = errors.New("validation failed")
	// ErrConflict indicates a uniqueness conflict, e.g. a duplicate order
	// number produced by concurrent generation. Callers may retry.
	ErrConflict = errors.New("duplicate entry")
	// ErrStillReferenced indicates a delete blocked by rows that still
	// reference the target (supplier with items, item on an order, ...).
	ErrStillReferenced = errors.New("record is still referenced")
	// ErrReferencedRowMissing indicates a write referencing a row that does
	// not exist (unknown customer or item identifier).
	ErrReferencedRowMissing = errors.New("referenced record does not exist")
	// ErrUnauthorized indicates a missing or expired admin session.
	ErrUnauthorized = errors.New("unauthorized")
)

// RespondError maps domain errors to HTTP responses using RFC7807.
func RespondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		Problem(w, http.StatusNotFound, "Not Found", err.Error())
	case errors.Is(err, ErrValidation):
		Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
	case errors.Is(err, ErrConflict):
		Problem(w, http.StatusConflict, "Duplicate", err.Error())
	case errors.Is(err, ErrStillReferenced):
		Problem(w, http.StatusConflict, "Still Referenced", err.Error())
	case errors.Is(err, ErrReferencedRowMissing):
		Problem(w, http.StatusBadRequest, "Invalid Reference", err.Error())
	case errors.Is(err, ErrUnauthorized):
		Problem(w, http.StatusUnauthorized, "Unauthorized", err.Error())
	default:
		Problem(w, http.StatusInternalServerError, "Internal Error", "")
	}
}
