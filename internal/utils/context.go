// Package utils provides helpers shared by the client and the server:
// typed context keys, JSON response writing, the resty HTTP client wrapper,
// session token signing and id generation.
package utils

import (
	"context"
)

// contextKey is a private type for context keys.
type contextKey string

// String implements fmt.Stringer.
func (c contextKey) String() string {
	return string(c)
}

// TraceIDCtxKey holds the request trace id set by the trace id middleware.
var TraceIDCtxKey = contextKey("traceID")

// SessionCtxKey holds the [Session] resolved from a sync session URL.
var SessionCtxKey = contextKey("session")

// Session identifies the device and group a session-scoped request acts for.
type Session struct {
	GroupID  string
	DeviceID string
}

// WithSession returns a copy of ctx carrying s.
func WithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, SessionCtxKey, s)
}

// GetSessionFromContext retrieves the session stored by [WithSession].
//
// ok is false when no session is stored or it has an unexpected type.
func GetSessionFromContext(ctx context.Context) (Session, bool) {
	s, ok := ctx.Value(SessionCtxKey).(Session)
	return s, ok
}

// GetTraceIDFromContext returns the trace id stored under [TraceIDCtxKey],
// or an empty string.
func GetTraceIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(TraceIDCtxKey).(string)
	return id
}
