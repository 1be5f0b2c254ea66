package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/MKhiriev/go-field-sync/internal/config"
	"github.com/MKhiriev/go-field-sync/internal/logger"
	"github.com/MKhiriev/go-field-sync/internal/store"
	"github.com/MKhiriev/go-field-sync/internal/utils"
	"github.com/MKhiriev/go-field-sync/models"
)

// SessionIssuer is the "iss" claim of every session token.
const SessionIssuer = "fieldsync"

// sessionService is the concrete implementation of [SessionService].
type sessionService struct {
	devices store.DeviceRepository

	// publicURL is the externally reachable base of the document API.
	publicURL string

	signKey  string
	duration time.Duration

	logger *logger.Logger
}

// NewSessionService constructs a [SessionService] signing session tokens
// with cfg.App.SessionSignKey.
func NewSessionService(devices store.DeviceRepository, cfg config.ServerConfig, logger *logger.Logger) SessionService {
	return &sessionService{
		devices:   devices,
		publicURL: strings.TrimRight(cfg.Server.PublicURL, "/"),
		signKey:   cfg.App.SessionSignKey,
		duration:  cfg.App.SessionDuration,
		logger:    logger,
	}
}

// StartSession verifies the device token, marks the device as claimed on
// its first session and returns a session URL of the form
// <public url>/db/<session token>.
func (s *sessionService) StartSession(ctx context.Context, groupID, deviceID, deviceToken string) (models.SessionResponse, error) {
	log := logger.FromContext(ctx)

	device, err := authenticateDevice(ctx, s.devices, groupID, deviceID, deviceToken)
	if err != nil {
		sessionsStarted.WithLabelValues("denied").Inc()
		log.Err(err).Str("device_id", deviceID).Msg("session refused")
		return models.SessionResponse{}, err
	}

	if !device.Claimed {
		if err = s.devices.MarkClaimed(ctx, groupID, deviceID); err != nil {
			log.Err(err).Str("device_id", deviceID).Msg("marking device claimed failed")
			return models.SessionResponse{}, fmt.Errorf("claim device: %w", err)
		}
	}

	token, err := utils.GenerateSessionToken(SessionIssuer, groupID, deviceID, s.duration, s.signKey)
	if err != nil {
		sessionsStarted.WithLabelValues("error").Inc()
		return models.SessionResponse{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	sessionsStarted.WithLabelValues("ok").Inc()
	log.Info().Str("device_id", deviceID).Str("group_id", groupID).Msg("sync session issued")

	locations := device.SyncLocations
	if locations == nil {
		locations = []models.LocationConfig{}
	}
	return models.SessionResponse{
		SyncSessionURL:      s.publicURL + "/db/" + token.SignedString,
		DeviceSyncLocations: locations,
	}, nil
}

// ParseSession normalises every validation failure to [ErrSessionExpired].
func (s *sessionService) ParseSession(_ context.Context, sessionToken string) (models.SessionToken, error) {
	token, err := utils.ValidateSessionToken(sessionToken, s.signKey, SessionIssuer)
	if err != nil {
		return models.SessionToken{}, fmt.Errorf("%w: %w", ErrSessionExpired, err)
	}
	return token, nil
}

// authenticateDevice looks the device up and checks token against its bcrypt
// hash. An unknown device is reported as a bad token.
func authenticateDevice(ctx context.Context, devices store.DeviceRepository, groupID, deviceID, token string) (models.Device, error) {
	if groupID == "" || deviceID == "" || token == "" {
		return models.Device{}, ErrInvalidDataProvided
	}

	device, err := devices.Get(ctx, groupID, deviceID)
	if err != nil {
		if errors.Is(err, store.ErrDeviceNotFound) {
			return models.Device{}, ErrInvalidDeviceToken
		}
		return models.Device{}, fmt.Errorf("device lookup: %w", err)
	}

	if err = bcrypt.CompareHashAndPassword([]byte(device.TokenHash), []byte(token)); err != nil {
		return models.Device{}, ErrInvalidDeviceToken
	}
	return device, nil
}
