package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-field-sync/internal/adapter"
	"github.com/MKhiriev/go-field-sync/internal/logger"
	"github.com/MKhiriev/go-field-sync/models"
)

// SessionUnavailableMessage is shown to the user when no session can be
// opened.
const SessionUnavailableMessage = "Please retry sync. Are you connected to the Internet?"

// RemoteStoreFactory binds a remote document store to a session URL.
type RemoteStoreFactory func(sessionURL string) (DocumentStore, error)

// Session is an open sync session together with the remote store bound to
// it. It is read-only after Open returns.
type Session struct {
	models.SyncSession
	Remote DocumentStore
}

type sessionNegotiator struct {
	registry adapter.RegistryAdapter
	remotes  RemoteStoreFactory
	logger   *logger.Logger
}

// NewSessionNegotiator returns a [SessionNegotiator] that asks registry for
// sessions and binds remote stores with remotes.
func NewSessionNegotiator(registry adapter.RegistryAdapter, remotes RemoteStoreFactory, logger *logger.Logger) SessionNegotiator {
	return &sessionNegotiator{registry: registry, remotes: remotes, logger: logger.WithComponent("session")}
}

// Open implements [SessionNegotiator]. There is no retry here; the caller
// decides whether to run the whole sync again later.
func (n *sessionNegotiator) Open(ctx context.Context, serverURL, groupID, deviceID, deviceToken string) (Session, error) {
	creds := adapter.DeviceCredentials{GroupID: groupID, DeviceID: deviceID, Token: deviceToken}

	resp, err := n.registry.StartSession(ctx, serverURL, creds)
	if err != nil {
		n.logger.Warn().Err(err).Str("device_id", deviceID).Msg("sync session request failed")
		return Session{}, fmt.Errorf("%w: %w", ErrSessionUnavailable, err)
	}

	remote, err := n.remotes(resp.SyncSessionURL)
	if err != nil {
		return Session{}, fmt.Errorf("%w: bind remote store: %w", ErrSessionUnavailable, err)
	}

	n.logger.Info().Str("device_id", deviceID).Int("locations", len(resp.DeviceSyncLocations)).Msg("sync session opened")

	return Session{
		SyncSession: models.SyncSession{
			RemoteEndpoint:    resp.SyncSessionURL,
			DeviceID:          deviceID,
			DeviceToken:       deviceToken,
			GroupID:           groupID,
			AssignedLocations: resp.DeviceSyncLocations,
		},
		Remote: remote,
	}, nil
}

// Credentials returns the registry credentials of the session's device.
func (s Session) Credentials() adapter.DeviceCredentials {
	return adapter.DeviceCredentials{GroupID: s.GroupID, DeviceID: s.DeviceID, Token: s.DeviceToken}
}
