package service

import (
	"context"

	"github.com/MKhiriev/go-field-sync/internal/store"
	"github.com/MKhiriev/go-field-sync/models"
)

// SessionService issues and verifies time-boxed sync sessions.
type SessionService interface {
	// StartSession authenticates the device and returns a session URL
	// together with the device's current location assignment.
	StartSession(ctx context.Context, groupID, deviceID, deviceToken string) (models.SessionResponse, error)

	// ParseSession verifies the token embedded in a session URL.
	ParseSession(ctx context.Context, sessionToken string) (models.SessionToken, error)
}

// DeviceService is the server side of the device registry.
type DeviceService interface {
	// Register creates a device and returns it with its plain token. The
	// token is never readable again.
	Register(ctx context.Context, groupID string, reg models.DeviceRegistration) (models.Device, error)
	UpdateAssignment(ctx context.Context, groupID, deviceID string, reg models.DeviceRegistration) error

	Get(ctx context.Context, groupID, deviceID, deviceToken string) (models.Device, error)
	DidSync(ctx context.Context, groupID, deviceID, deviceToken string, report models.ReplicationStatus) error
	// Snapshot returns every live document in the device's scope.
	Snapshot(ctx context.Context, groupID, deviceID, deviceToken string) ([]models.Document, error)
}

// DocumentService hands out the document store of a group.
type DocumentService interface {
	ForGroup(groupID string) store.DocumentRepository
}

// DocumentStoreWrapper decorates a group document store, e.g. with metrics.
type DocumentStoreWrapper interface {
	Wrap(store.DocumentRepository) store.DocumentRepository
}
