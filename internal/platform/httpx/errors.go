package httpx

import (
	"errors"
	"net/http"
	"strings"

	"github.com/hbnb-stays/hbnb/internal/shared"
)

// RespondError maps domain errors onto HTTP statuses. Each sentinel in
// internal/shared maps to exactly one status; anything unrecognized is a
// plain 500 with no internal detail leaked.
func RespondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, shared.ErrNotFound):
		Error(w, http.StatusNotFound, UserMessage(err))
	case errors.Is(err, shared.ErrValidation),
		errors.Is(err, shared.ErrBadReference),
		errors.Is(err, shared.ErrPolicy),
		errors.Is(err, shared.ErrConflict):
		Error(w, http.StatusBadRequest, UserMessage(err))
	case errors.Is(err, shared.ErrInvalidCredentials):
		Error(w, http.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, shared.ErrUnauthorized):
		Error(w, http.StatusUnauthorized, UserMessage(err))
	case errors.Is(err, shared.ErrForbidden):
		Error(w, http.StatusForbidden, UserMessage(err))
	default:
		Error(w, http.StatusInternalServerError, "internal error")
	}
}

// UserMessage returns the human-readable part of an error that wraps a known
// sentinel. Services build errors as fmt.Errorf("%w: message", sentinel), so
// the sentinel text is cut off before surfacing. Unknown errors collapse to a
// generic message.
func UserMessage(err error) string {
	for _, sentinel := range []error{
		shared.ErrNotFound,
		shared.ErrValidation,
		shared.ErrConflict,
		shared.ErrBadReference,
		shared.ErrPolicy,
		shared.ErrUnauthorized,
		shared.ErrForbidden,
	} {
		if errors.Is(err, sentinel) {
			if rest, ok := strings.CutPrefix(err.Error(), sentinel.Error()+": "); ok {
				return rest
			}
			return err.Error()
		}
	}
	return "internal error"
}
