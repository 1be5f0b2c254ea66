// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Sentinel errors used by the admin middleware when parsing the
// "Authorization" HTTP header. Callers can match against them with [errors.Is].
var (
	// ErrEmptyAuthorizationHeader is returned when the request has no
	// "Authorization" header at all.
	ErrEmptyAuthorizationHeader = errors.New("empty `Authorization` header")

	// ErrInvalidAuthorizationHeader is returned when the "Authorization"
	// header cannot be split into a scheme and a value.
	ErrInvalidAuthorizationHeader = errors.New("invalid `Authorization` header")

	// ErrEmptyToken is returned when the header carries the scheme but no
	// value.
	ErrEmptyToken = errors.New("empty token in `Authorization` header")

	// ErrWrongAdminKey is returned when the presented admin key does not
	// match the configured one.
	ErrWrongAdminKey = errors.New("wrong admin key")
)

// ErrNoSession is returned by document handlers reached without the session
// middleware.
var ErrNoSession = errors.New("no sync session in request context")
