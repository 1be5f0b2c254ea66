// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter holds the client's HTTP transport to the sync server.
//
// [RegistryAdapter] talks to the device registry: it opens sync sessions,
// fetches the device's assignment and snapshot, and posts telemetry.
// [RemoteDocumentStore] is bound to one session URL and speaks the
// document replication API.
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic error
// handling (e.g. [ErrForbidden] for 403, [ErrServiceUnavailable] for 503).
package adapter

import (
	"context"

	"github.com/MKhiriev/go-field-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/adapter_mock.go -package=mock

// DeviceCredentials identify a device against the registry.
type DeviceCredentials struct {
	GroupID  string
	DeviceID string
	Token    string
}

// RegistryAdapter is the client side of the device registry.
type RegistryAdapter interface {
	// StartSession opens a time-boxed sync session. serverURL overrides the
	// adapter's base URL when non-empty.
	StartSession(ctx context.Context, serverURL string, creds DeviceCredentials) (models.SessionResponse, error)

	// GetDevice returns the server-known device record, including the ids
	// of the form responses assigned to it.
	GetDevice(ctx context.Context, creds DeviceCredentials) (models.Device, error)

	// DidSync posts the post-sync report.
	DidSync(ctx context.Context, creds DeviceCredentials, report models.ReplicationStatus) error

	// Snapshot returns every document currently in the device's scope.
	Snapshot(ctx context.Context, creds DeviceCredentials) ([]models.Document, error)
}

// RemoteDocumentStore is a session-scoped remote document store.
type RemoteDocumentStore interface {
	Changes(ctx context.Context, req models.ChangesRequest) (models.ChangesResponse, error)
	AllDocs(ctx context.Context, req models.AllDocsRequest) (models.AllDocsResponse, error)
	Find(ctx context.Context, req models.FindRequest) (models.FindResponse, error)
	BulkGet(ctx context.Context, ids []string) ([]models.Document, error)
	BulkDocs(ctx context.Context, docs []models.Document) ([]models.BulkResult, error)
	Info(ctx context.Context) (models.StoreInfo, error)
}
