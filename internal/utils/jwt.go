package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-field-sync/models"
	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidSessionToken is returned when a session token fails validation.
var ErrInvalidSessionToken = errors.New("invalid session token")

// GenerateSessionToken creates a signed HMAC-SHA256 session token for the
// device deviceID of group groupID.
//
// The token carries iss, sub (the device id), iat, exp and the custom gid
// claim. All parameters are required.
//
// Example usage:
//
//	token, err := utils.GenerateSessionToken("fieldsync", "g1", "dev-1", time.Hour, "secret")
func GenerateSessionToken(issuer, groupID, deviceID string, duration time.Duration, signKey string) (models.SessionToken, error) {
	if issuer == "" || groupID == "" || deviceID == "" || duration <= 0 || signKey == "" {
		return models.SessionToken{}, errors.New("invalid params for generating session token")
	}

	now := time.Now()
	claims := &models.SessionToken{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   deviceID,
			ExpiresAt: jwt.NewNumericDate(now.Add(duration)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		GroupID: groupID,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(signKey))
	if err != nil {
		return models.SessionToken{}, fmt.Errorf("error occurred during signing session token: %w", err)
	}

	claims.Token = token
	claims.SignedString = signed
	return *claims, nil
}

// ValidateSessionToken verifies the signature, issuer and expiry of
// tokenString and returns its claims.
//
// Tokens without a subject or a group are rejected with
// [ErrInvalidSessionToken].
func ValidateSessionToken(tokenString, signKey, issuer string) (models.SessionToken, error) {
	claims := &models.SessionToken{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return []byte(signKey), nil
	},
		jwt.WithIssuer(issuer),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return models.SessionToken{}, fmt.Errorf("%w: %w", ErrInvalidSessionToken, err)
	}

	if claims.Subject == "" || claims.GroupID == "" {
		return models.SessionToken{}, fmt.Errorf("%w: missing device or group", ErrInvalidSessionToken)
	}

	claims.Token = token
	claims.SignedString = tokenString
	return *claims, nil
}
