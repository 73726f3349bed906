// Package errhttp maps domain sentinel errors to HTTP status codes.
package errhttp

import (
	"errors"
	"net/http"

	"github.com/ghuser/bizdesk/pkg/httpx"
	"github.com/ghuser/bizdesk/pkg/telemetry"
	employeedomain "github.com/ghuser/bizdesk/services/employee/domain"
)

// WriteError writes err as a JSON error response with the status its sentinel
// maps to. Unrecognised errors become 500 with a generic message and are
// reported to Sentry.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	status := StatusFor(err)
	if status >= http.StatusInternalServerError {
		telemetry.CaptureError(r.Context(), err)
	}
	httpx.JSONError(w, status, httpx.SafeError(err, status))
}

// StatusFor returns the HTTP status for err, matching wrapped sentinels.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, employeedomain.ErrStoreUnavailable):
		return http.StatusInternalServerError
	case errors.Is(err, employeedomain.ErrEmployeeNotFound),
		errors.Is(err, employeedomain.ErrBusinessNotFound):
		return http.StatusNotFound
	case errors.Is(err, employeedomain.ErrInvalidTransition),
		errors.Is(err, employeedomain.ErrInvalidClockAction):
		return http.StatusBadRequest
	case errors.Is(err, employeedomain.ErrEmployeeLimitReached):
		return http.StatusForbidden
	case errors.Is(err, employeedomain.ErrEmployeeAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, employeedomain.ErrInvalidEmployee),
		errors.Is(err, employeedomain.ErrInvalidPlan):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
