package http

import (
	"errors"
	"net/http"

	"github.com/ddanilova/organizer-sync/internal/reconcile"
	"github.com/ddanilova/organizer-sync/internal/service"
	"github.com/ddanilova/organizer-sync/internal/store"
)

// errorStatusMap maps known service and storage errors to HTTP status codes.
var errorStatusMap = map[error]int{
	service.ErrInvalidDataProvided: http.StatusBadRequest,
	reconcile.ErrNoOwner:           http.StatusBadRequest,
	service.ErrWrongPassword:       http.StatusUnauthorized,
	service.ErrTokenIsExpired:      http.StatusUnauthorized,
	service.ErrOwnerMismatch:       http.StatusForbidden,
	store.ErrNoUserWasFound:        http.StatusNotFound,
	store.ErrEmailAlreadyExists:    http.StatusConflict,
	store.ErrUsernameAlreadyExists: http.StatusConflict,
	store.ErrBuildingSQLQuery:      http.StatusInternalServerError,
	store.ErrExecutingQuery:        http.StatusInternalServerError,
	store.ErrScanningRow:           http.StatusInternalServerError,
	store.ErrScanningRows:          http.StatusInternalServerError,
}

// statusFromError resolves an HTTP status code for err by matching it against
// errorStatusMap with errors.Is, so wrapped errors are recognized as well.
// Unknown errors map to HTTP 500.
func statusFromError(err error) int {
	for knownErr, status := range errorStatusMap {
		if errors.Is(err, knownErr) {
			return status
		}
	}

	return http.StatusInternalServerError
}
