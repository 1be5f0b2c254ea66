package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-field-sync/internal/service"
	"github.com/MKhiriev/go-field-sync/internal/store"
)

var errorStatusMap = map[error]int{
	service.ErrInvalidDataProvided: http.StatusBadRequest,
	service.ErrInvalidDeviceToken:  http.StatusUnauthorized,
	service.ErrSessionExpired:      http.StatusUnauthorized,
	service.ErrTokenCreationFailed: http.StatusInternalServerError,

	store.ErrDeviceNotFound:      http.StatusNotFound,
	store.ErrDeviceAlreadyExists: http.StatusConflict,
	store.ErrDocumentNotFound:    http.StatusNotFound,
	store.ErrDocumentConflict:    http.StatusConflict,
	store.ErrInvalidSelector:     http.StatusBadRequest,

	store.ErrBuildingSQLQuery:     http.StatusInternalServerError,
	store.ErrExecutingQuery:       http.StatusInternalServerError,
	store.ErrBeginningTransaction: http.StatusInternalServerError,
	store.ErrCommitingTransaction: http.StatusInternalServerError,
	store.ErrExecutingStatement:   http.StatusInternalServerError,
	store.ErrScanningRows:         http.StatusInternalServerError,
	store.ErrDecodingBody:         http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

// errorCode is the short machine-readable code of the document API error
// envelope.
func errorCode(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "bad_request"
	case http.StatusUnauthorized:
		return "unauthorized"
	case http.StatusForbidden:
		return "forbidden"
	case http.StatusNotFound:
		return "not_found"
	case http.StatusConflict:
		return "conflict"
	default:
		return "internal_server_error"
	}
}
