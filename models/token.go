package models

import (
	"github.com/golang-jwt/jwt/v5"
)

// SessionToken is the signed credential embedded in a sync session URL.
//
// The subject claim carries the device id; GroupID scopes the session to one
// group's document set.
type SessionToken struct {
	// Token is the parsed JWT, populated after signing or validation.
	*jwt.Token `json:"-"`

	jwt.RegisteredClaims

	// GroupID is the group the session may read and write.
	GroupID string `json:"gid"`

	// SignedString is the compact header.payload.signature form.
	SignedString string `json:"-"`
}

// DeviceID returns the subject claim.
func (t *SessionToken) DeviceID() string {
	return t.Subject
}

// String returns the compact JWS serialization of the token.
func (t *SessionToken) String() string {
	return t.SignedString
}
