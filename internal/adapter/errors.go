package adapter

import "errors"

// Sentinel errors mapped from HTTP status codes by mapHTTPError. Callers use
// [errors.Is] to branch on them without knowing the transport.
var (
	// ErrBadRequest is returned for HTTP 400.
	ErrBadRequest = errors.New("bad request")

	// ErrUnauthorized is returned for HTTP 401, e.g. an expired session URL.
	ErrUnauthorized = errors.New("client unauthorized")

	// ErrForbidden is returned for HTTP 403, e.g. a wrong device token.
	ErrForbidden = errors.New("forbidden")

	// ErrNotFound is returned for HTTP 404.
	ErrNotFound = errors.New("not found")

	// ErrConflict is returned for HTTP 409.
	ErrConflict = errors.New("conflict")

	// ErrInternalServerError is returned for HTTP 500.
	ErrInternalServerError = errors.New("internal server error")

	// ErrBadGateway is returned for HTTP 502.
	ErrBadGateway = errors.New("bad gateway")

	// ErrServiceUnavailable is returned for HTTP 503.
	ErrServiceUnavailable = errors.New("service unavailable")

	// ErrInvalidURL is returned when a server or session URL cannot be used
	// as a base URL.
	ErrInvalidURL = errors.New("invalid url")
)
