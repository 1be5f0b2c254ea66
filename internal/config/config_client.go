package config

import (
	"fmt"
	"time"
)

// Sync defaults, tuned for constrained devices on unreliable networks.
const (
	DefaultBatchSize        = 200
	DefaultInitialBatchSize = 1000
	DefaultWriteBatchSize   = 50
	DefaultChangesBatchSize = 25
	DefaultCompareLimit     = 150
	DefaultRetryDelay       = 5 * time.Second
	DefaultSyncInterval     = 5 * time.Minute
	DefaultRequestTimeout   = 30 * time.Second
)

// ClientAdapter holds network settings used by the client transport layer.
type ClientAdapter struct {
	// ServerURL is the base URL of the sync server.
	ServerURL string
	// RequestTimeout is the default timeout for outbound client requests.
	RequestTimeout time.Duration
}

// ClientDevice identifies the installation against the device registry.
type ClientDevice struct {
	GroupID string
	ID      string
	Token   string
}

// ClientSync holds replication tuning and feature toggles.
type ClientSync struct {
	BatchSize        int
	InitialBatchSize int
	WriteBatchSize   int
	ChangesBatchSize int
	CompareLimit     int
	RetryDelay       time.Duration
	// MaxRetries caps retries per phase; zero retries forever.
	MaxRetries int

	DisableDeviceUserFilteringByAssignment bool
	IndexViewsOnlyOnFirstSync              bool
	CalculateLocalDocsForLocation          bool
	DoNotOptimize                          []string

	FormsFile string
	IndexFile string
}

// ClientDB contains local database connection settings for the client.
type ClientDB struct {
	// DSN is the SQLite file path of the local document store.
	DSN string
}

// ClientStorage groups client storage backend settings.
type ClientStorage struct {
	// DB holds local database settings.
	DB ClientDB
}

// ClientWorkers contains client background worker settings.
type ClientWorkers struct {
	// SyncInterval defines how often the background sync runs.
	SyncInterval time.Duration
}

// ClientConfig is the top-level client configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	Adapter ClientAdapter
	Device  ClientDevice
	Sync    ClientSync
	Storage ClientStorage
	Workers ClientWorkers
	// Args holds the sub-command and its arguments.
	Args []string
}

// GetClientConfig builds and validates a client-specific config view from the
// merged structured configuration.
//
// It loads the base config via [GetStructuredConfig], maps only the fields
// relevant to the client runtime, fills defaults and validates the resulting
// [ClientConfig].
func GetClientConfig() (*ClientConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := NewClientConfig(cfg)
	return clientCfg, clientCfg.validate()
}

// NewClientConfig maps cfg to the client view and fills defaults.
func NewClientConfig(cfg *StructuredConfig) *ClientConfig {
	return &ClientConfig{
		Adapter: ClientAdapter{
			ServerURL:      cfg.Adapter.ServerURL,
			RequestTimeout: durationOrDefault(cfg.Adapter.RequestTimeout, DefaultRequestTimeout),
		},
		Device: ClientDevice{
			GroupID: cfg.Device.GroupID,
			ID:      cfg.Device.ID,
			Token:   cfg.Device.Token,
		},
		Sync: ClientSync{
			BatchSize:                              intOrDefault(cfg.Sync.BatchSize, DefaultBatchSize),
			InitialBatchSize:                       intOrDefault(cfg.Sync.InitialBatchSize, DefaultInitialBatchSize),
			WriteBatchSize:                         intOrDefault(cfg.Sync.WriteBatchSize, DefaultWriteBatchSize),
			ChangesBatchSize:                       intOrDefault(cfg.Sync.ChangesBatchSize, DefaultChangesBatchSize),
			CompareLimit:                           intOrDefault(cfg.Sync.CompareLimit, DefaultCompareLimit),
			RetryDelay:                             durationOrDefault(cfg.Sync.RetryDelay, DefaultRetryDelay),
			MaxRetries:                             max(cfg.Sync.MaxRetries, 0),
			DisableDeviceUserFilteringByAssignment: cfg.Sync.DisableDeviceUserFilteringByAssignment,
			IndexViewsOnlyOnFirstSync:              cfg.Sync.IndexViewsOnlyOnFirstSync,
			CalculateLocalDocsForLocation:          cfg.Sync.CalculateLocalDocsForLocation,
			DoNotOptimize:                          cfg.Sync.DoNotOptimize,
			FormsFile:                              cfg.Sync.FormsFile,
			IndexFile:                              cfg.Sync.IndexFile,
		},
		Storage: ClientStorage{
			DB: ClientDB{DSN: cfg.Storage.DB.DSN},
		},
		Workers: ClientWorkers{
			SyncInterval: durationOrDefault(cfg.Workers.SyncInterval, DefaultSyncInterval),
		},
		Args: cfg.Args,
	}
}
