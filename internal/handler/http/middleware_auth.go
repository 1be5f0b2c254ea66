package http

import (
	"crypto/subtle"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-field-sync/internal/logger"
	"github.com/MKhiriev/go-field-sync/internal/service"
	"github.com/MKhiriev/go-field-sync/internal/utils"
)

// adminAuth rejects requests whose "Authorization: Bearer <key>" header does
// not carry the configured admin key.
func (h *Handler) adminAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			log.Err(ErrEmptyAuthorizationHeader).Send()
			http.Error(w, ErrEmptyAuthorizationHeader.Error(), http.StatusUnauthorized)
			return
		}

		key, err := getTokenFromAuthHeader(authHeader)
		if err != nil {
			log.Err(err).Send()
			http.Error(w, err.Error(), http.StatusUnauthorized)
			return
		}

		if subtle.ConstantTimeCompare([]byte(key), []byte(h.adminKey)) != 1 {
			log.Warn().Msg("admin key mismatch")
			http.Error(w, ErrWrongAdminKey.Error(), http.StatusForbidden)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// session resolves the token of a session URL and stores the session's group
// and device in the request context.
func (h *Handler) session(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		ctx := r.Context()
		token, err := h.services.Sessions.ParseSession(ctx, chi.URLParam(r, "sessionToken"))
		if err != nil {
			switch {
			case errors.Is(err, service.ErrSessionExpired):
				log.Err(err).Msg("session rejected")
				utils.WriteError(w, http.StatusUnauthorized, "unauthorized", service.ErrSessionExpired.Error())
			default:
				log.Err(err).Msg("error occurred during parsing session token")
				utils.WriteError(w, http.StatusUnauthorized, "unauthorized", http.StatusText(http.StatusUnauthorized))
			}
			return
		}

		ctx = utils.WithSession(ctx, utils.Session{GroupID: token.GroupID, DeviceID: token.DeviceID()})
		logger.FromContext(ctx).Debug().Str("device_id", token.DeviceID()).Msg("session resolved")

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// getTokenFromAuthHeader extracts the token from "<scheme> <token>".
func getTokenFromAuthHeader(authHeader string) (string, error) {
	parts := strings.Split(authHeader, " ")
	if len(parts) < 2 {
		return "", ErrInvalidAuthorizationHeader
	}

	tokenString := parts[1]
	if tokenString == "" {
		return "", ErrEmptyToken
	}

	return tokenString, nil
}
