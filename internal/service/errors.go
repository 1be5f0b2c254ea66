package service

import "errors"

// Sync engine errors.
var (
	// ErrSessionUnavailable is returned when a sync session cannot be opened:
	// the server is unreachable, answers non-2xx, or rejects the device
	// credentials. It is the only error that ends a sync in the Failed state.
	ErrSessionUnavailable = errors.New("sync session unavailable")

	// ErrTransfer wraps transport failures during a replication attempt. The
	// retry loop absorbs it.
	ErrTransfer = errors.New("replication transfer failed")

	// ErrPartialWrite marks an attempt in which the target rejected some
	// documents. It only appears in status text.
	ErrPartialWrite = errors.New("some documents were not written")

	// ErrRetriesExhausted is returned when a phase fails more often than the
	// configured retry limit allows.
	ErrRetriesExhausted = errors.New("replication retries exhausted")

	// ErrSyncInProgress is returned when Sync or Compare is called while
	// another run holds the orchestrator.
	ErrSyncInProgress = errors.New("sync already in progress")

	// ErrSyncCancelled reports that a run stopped because Cancel was called.
	ErrSyncCancelled = errors.New("sync cancelled")

	// ErrReporting wraps telemetry failures. They are logged and never fail
	// a sync.
	ErrReporting = errors.New("sync report failed")

	// ErrInvalidIndexConfig is returned when the index definition file does
	// not match its schema.
	ErrInvalidIndexConfig = errors.New("invalid index configuration")

	// ErrInvalidFormsConfig is returned when the forms file cannot be parsed.
	ErrInvalidFormsConfig = errors.New("invalid forms configuration")
)

// Reference server errors.
var (
	// ErrInvalidDataProvided is returned for requests that fail validation.
	ErrInvalidDataProvided = errors.New("invalid data provided")

	// ErrInvalidDeviceToken is returned when a device presents a token that
	// does not match the registry.
	ErrInvalidDeviceToken = errors.New("invalid device token")

	// ErrSessionExpired is returned for session URLs whose token expired or
	// does not verify.
	ErrSessionExpired = errors.New("sync session expired")

	// ErrTokenCreationFailed is returned when a session token cannot be
	// signed.
	ErrTokenCreationFailed = errors.New("session token creation failed")
)
