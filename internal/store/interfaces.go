package store

import (
	"context"
	"time"

	"github.com/MKhiriev/go-field-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// DocumentRepository holds the replication primitives of a document store.
type DocumentRepository interface {
	Changes(ctx context.Context, req models.ChangesRequest) (models.ChangesResponse, error)
	AllDocs(ctx context.Context, req models.AllDocsRequest) (models.AllDocsResponse, error)
	Find(ctx context.Context, req models.FindRequest) (models.FindResponse, error)
	BulkGet(ctx context.Context, ids []string) ([]models.Document, error)
	BulkDocs(ctx context.Context, docs []models.Document) ([]models.BulkResult, error)
	Info(ctx context.Context) (models.StoreInfo, error)
	CountBySelector(ctx context.Context, sel models.Selector) (int64, error)
}

// LocalDocumentRepository is the device-local document store.
type LocalDocumentRepository interface {
	DocumentRepository
	Put(ctx context.Context, doc models.Document) (models.Document, error)
	Reset(ctx context.Context) error
	EnsureIndex(ctx context.Context, def models.IndexDefinition) error
	Analyze(ctx context.Context) error
}

// VariablesRepository persists small JSON values across sync runs.
type VariablesRepository interface {
	Get(ctx context.Context, key string, dst any) error
	Set(ctx context.Context, key string, value any) error
}

// ServerDocumentRepository hands out per-group document stores.
type ServerDocumentRepository interface {
	ForGroup(groupID string) DocumentRepository
}

// DeviceRepository is the server's device registry.
type DeviceRepository interface {
	Create(ctx context.Context, device models.Device) error
	Get(ctx context.Context, groupID, deviceID string) (models.Device, error)
	UpdateAssignment(ctx context.Context, groupID, deviceID string, locations []models.LocationConfig, assigned []string) error
	MarkClaimed(ctx context.Context, groupID, deviceID string) error
	MarkSynced(ctx context.Context, groupID, deviceID string, at time.Time) error
}

// SyncReportRepository stores post-sync telemetry.
type SyncReportRepository interface {
	Save(ctx context.Context, groupID, deviceID string, report models.ReplicationStatus) error
}
