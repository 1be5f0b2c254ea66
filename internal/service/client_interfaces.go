package service

import (
	"context"
	"time"

	"github.com/MKhiriev/go-field-sync/models"
)

// DocumentStore is the replication view of a document store. The local
// SQLite repository and the session-bound remote adapter both satisfy it.
type DocumentStore interface {
	Changes(ctx context.Context, req models.ChangesRequest) (models.ChangesResponse, error)
	AllDocs(ctx context.Context, req models.AllDocsRequest) (models.AllDocsResponse, error)
	Find(ctx context.Context, req models.FindRequest) (models.FindResponse, error)
	BulkGet(ctx context.Context, ids []string) ([]models.Document, error)
	BulkDocs(ctx context.Context, docs []models.Document) ([]models.BulkResult, error)
	Info(ctx context.Context) (models.StoreInfo, error)
}

// SessionNegotiator opens sync sessions.
type SessionNegotiator interface {
	// Open starts a time-boxed session and binds a remote store to it. Any
	// failure is returned wrapped in [ErrSessionUnavailable].
	Open(ctx context.Context, serverURL, groupID, deviceID, deviceToken string) (Session, error)
}

// Replicator performs one directional transfer between two stores.
type Replicator interface {
	Replicate(ctx context.Context, source, target DocumentStore, opts ReplicationOptions) (models.ReplicationStatus, error)
}

// IndexOptimizer builds the local secondary indexes after a sync.
type IndexOptimizer interface {
	Optimize(ctx context.Context) error
}

// SyncReporter assembles and posts the post-sync telemetry report.
type SyncReporter interface {
	// Build decorates status with device, network and storage details.
	Build(ctx context.Context, status models.ReplicationStatus) models.ReplicationStatus
	// Send posts report to the registry. Failures wrap [ErrReporting].
	Send(ctx context.Context, report models.ReplicationStatus) error
}

// DeviceCapabilities exposes what the host knows about itself. It replaces
// ambient platform lookups with an injected object.
type DeviceCapabilities interface {
	StorageAvailable(ctx context.Context) (int64, error)
	Network() models.NetworkInfo
	Device() models.DeviceInfo
	UserAgent() string
}

// ClientSyncService is the sync entry point used by the client app, the
// daemon job and the progress screen.
type ClientSyncService interface {
	// Sync runs the full push/pull flow once.
	Sync(ctx context.Context, opts SyncOptions) (models.ReplicationStatus, error)

	// Compare runs the reconciliation fallback in one direction.
	Compare(ctx context.Context, opts CompareOptions) (models.ReplicationStatus, error)

	// Cancel asks the running sync to stop at its next checkpoint. It never
	// interrupts an in-flight request.
	Cancel()

	// Subscribe registers fn for progress events and returns a function that
	// removes it.
	Subscribe(fn func(models.ProgressEvent)) (unsubscribe func())
}

// ClientSyncJob runs Sync in the background on an interval.
type ClientSyncJob interface {
	// Start launches the background sync goroutine. It syncs every interval,
	// defaulting to 5 minutes if interval is zero or negative. Any previously
	// running job is stopped before the new one begins.
	Start(ctx context.Context, interval time.Duration)

	// Stop signals the background goroutine to exit and blocks until it has
	// fully terminated.
	Stop()
}
