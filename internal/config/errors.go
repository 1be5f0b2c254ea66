package config

import "errors"

// Validation errors returned by [ClientConfig.validate] and
// [ServerConfig.validate] when required configuration groups are incomplete
// or invalid.
var (
	// ErrInvalidAdapterConfigs indicates invalid client adapter settings
	// (for example, missing server URL or request timeout).
	ErrInvalidAdapterConfigs = errors.New("invalid adapter configuration")
	// ErrInvalidStorageConfigs indicates invalid storage settings
	// (for example, empty DSN or unsupported in-memory DSN).
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidAppConfigs indicates missing server secrets.
	ErrInvalidAppConfigs = errors.New("invalid app configuration")
	// ErrInvalidWorkerConfigs indicates invalid background worker settings
	// (for example, zero sync interval).
	ErrInvalidWorkerConfigs = errors.New("invalid worker configuration")
	// ErrInvalidDeviceConfigs indicates a missing group, device id or token.
	ErrInvalidDeviceConfigs = errors.New("invalid device configuration")
	// ErrInvalidSyncConfigs indicates inconsistent batch sizes or retry
	// settings.
	ErrInvalidSyncConfigs = errors.New("invalid sync configuration")
)
