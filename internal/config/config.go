// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container shared by the
// device client and the reference server. It is populated by merging values
// from environment variables, command-line flags, and an optional JSON file.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env      : direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds server-side secrets and session parameters.
	App App `envPrefix:"APP_"`

	// Device identifies this installation against the device registry.
	Device Device `envPrefix:"DEVICE_"`

	// Sync holds the replication tuning knobs and feature toggles.
	Sync Sync `envPrefix:"SYNC_"`

	// Storage holds the database connection settings.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds the listen address and timeouts of the reference server.
	Server Server `envPrefix:"SERVER_"`

	// Adapter holds the client's view of the remote server.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Workers holds configuration for background worker processes.
	Workers Workers `envPrefix:"WORKERS_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged on top of the values
	// already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`

	// Args holds the positional command-line arguments left after flag
	// parsing (the client's sub-command).
	Args []string
}

// Storage groups the configuration for all storage backends used by the
// application.
type Storage struct {
	// DB holds the database connection settings.
	DB DB `envPrefix:"DB_"`
}

// App holds server-side secrets and session parameters.
type App struct {
	// SessionSignKey signs the tokens embedded in sync session URLs.
	// Env: APP_SESSION_SIGN_KEY
	SessionSignKey string `env:"SESSION_SIGN_KEY"`

	// SessionDuration bounds how long a sync session URL stays valid.
	// Env: APP_SESSION_DURATION
	SessionDuration time.Duration `env:"SESSION_DURATION"`

	// AdminKey guards the device registration endpoint.
	// Env: APP_ADMIN_KEY
	AdminKey string `env:"ADMIN_KEY"`
}

// Device identifies the installation running the client.
type Device struct {
	// GroupID is the project the device collects data for.
	// Env: DEVICE_GROUP_ID
	GroupID string `env:"GROUP_ID"`

	// ID is the registry identifier of the device.
	// Env: DEVICE_ID
	ID string `env:"ID"`

	// Token is the secret issued at device registration.
	// Env: DEVICE_TOKEN
	Token string `env:"TOKEN"`
}

// Sync holds replication batch sizes, retry policy and feature toggles.
type Sync struct {
	// BatchSize is the number of documents transferred per round-trip.
	// Env: SYNC_BATCH_SIZE
	BatchSize int `env:"BATCH_SIZE"`

	// InitialBatchSize replaces BatchSize on a first sync and a full pull.
	// Env: SYNC_INITIAL_BATCH_SIZE
	InitialBatchSize int `env:"INITIAL_BATCH_SIZE"`

	// WriteBatchSize is the number of documents committed per write.
	// Env: SYNC_WRITE_BATCH_SIZE
	WriteBatchSize int `env:"WRITE_BATCH_SIZE"`

	// ChangesBatchSize is the number of change-feed entries read at a time.
	// Env: SYNC_CHANGES_BATCH_SIZE
	ChangesBatchSize int `env:"CHANGES_BATCH_SIZE"`

	// CompareLimit is the page size of reconciliation listings.
	// Env: SYNC_COMPARE_LIMIT
	CompareLimit int `env:"COMPARE_LIMIT"`

	// RetryDelay is the pause between failed replication attempts.
	// Env: SYNC_RETRY_DELAY
	RetryDelay time.Duration `env:"RETRY_DELAY"`

	// MaxRetries caps replication retries; zero retries forever.
	// Env: SYNC_MAX_RETRIES
	MaxRetries int `env:"MAX_RETRIES"`

	// DisableDeviceUserFilteringByAssignment lets profile documents reach
	// every device regardless of location.
	// Env: SYNC_DISABLE_DEVICE_USER_FILTERING_BY_ASSIGNMENT
	DisableDeviceUserFilteringByAssignment bool `env:"DISABLE_DEVICE_USER_FILTERING_BY_ASSIGNMENT"`

	// IndexViewsOnlyOnFirstSync restricts index optimization to first syncs.
	// Env: SYNC_INDEX_VIEWS_ONLY_ON_FIRST_SYNC
	IndexViewsOnlyOnFirstSync bool `env:"INDEX_VIEWS_ONLY_ON_FIRST_SYNC"`

	// CalculateLocalDocsForLocation adds per-form local counts to telemetry.
	// Env: SYNC_CALCULATE_LOCAL_DOCS_FOR_LOCATION
	CalculateLocalDocsForLocation bool `env:"CALCULATE_LOCAL_DOCS_FOR_LOCATION"`

	// DoNotOptimize lists index names skipped by index optimization.
	// Env: SYNC_DO_NOT_OPTIMIZE (comma separated)
	DoNotOptimize []string `env:"DO_NOT_OPTIMIZE"`

	// FormsFile is the YAML file with per-form sync settings.
	// Env: SYNC_FORMS_FILE
	FormsFile string `env:"FORMS_FILE"`

	// IndexFile is the YAML file listing the secondary indexes to build.
	// Env: SYNC_INDEX_FILE
	IndexFile string `env:"INDEX_FILE"`
}

// Server holds network and timeout settings for the inbound transport layer.
type Server struct {
	// HTTPAddress is the TCP address on which the HTTP server listens,
	// in "host:port" format (e.g. "0.0.0.0:8080").
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// PublicURL is the externally reachable base URL used to build sync
	// session URLs (e.g. "https://sync.example.org").
	// Env: SERVER_PUBLIC_URL
	PublicURL string `env:"PUBLIC_URL"`

	// RequestTimeout is the maximum duration allowed for a single inbound
	// request before the server cancels it (e.g. "30s", "1m").
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// DB holds connection settings for the database backend.
type DB struct {
	// DSN is the connection string: a SQLite file path on the client, a
	// PostgreSQL URL on the server.
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Adapter holds the client's connection settings for the remote server.
type Adapter struct {
	// ServerURL is the base URL of the sync server.
	// Env: ADAPTER_SERVER_URL
	ServerURL string `env:"SERVER_URL"`

	// RequestTimeout is the timeout applied to every outbound request.
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Workers holds configuration for background worker processes.
type Workers struct {
	// SyncInterval is the pause between background syncs in daemon mode.
	// Env: WORKERS_SYNC_INTERVAL
	SyncInterval time.Duration `env:"SYNC_INTERVAL"`
}

// GetStructuredConfig loads, merges, and validates the application
// configuration from all available sources in the following priority order
// (last source wins for non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load or the final config fails validation.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		build()
}
