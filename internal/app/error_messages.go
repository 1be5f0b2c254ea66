// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains the user-facing message strings shared by the client
// progress screen and its command-line output.
//
// The sync services keep their sentinel errors; these strings are what the
// person holding the device reads.
package app

const (
	// MsgSyncCompleted is shown when every phase finished.
	MsgSyncCompleted = "Sync completed."

	// MsgSyncCompletedWithErrors is shown when the run finished but a phase
	// reported a push or pull error.
	MsgSyncCompletedWithErrors = "Sync finished with errors. Your data is safe on this device; try again later."

	// MsgSessionUnavailable is returned when the server refused or could not
	// be reached for a sync session.
	MsgSessionUnavailable = "Could not reach the sync server. Check the connection and try again."

	// MsgDeviceNotAuthorized is returned when the registry rejects the device
	// credentials.
	MsgDeviceNotAuthorized = "This device is not authorized. Ask your coordinator to register it again."

	// MsgSyncInProgress is returned when a sync is requested while one is
	// already running.
	MsgSyncInProgress = "A sync is already running."

	// MsgSyncCancelled is shown after the user stopped the sync.
	MsgSyncCancelled = "Sync cancelled."

	// MsgRetriesExhausted is returned when a bounded retry policy gave up.
	MsgRetriesExhausted = "The connection kept failing. Sync stopped after the maximum number of attempts."

	// MsgInvalidConfiguration is returned when the forms or index files are
	// malformed.
	MsgInvalidConfiguration = "The sync configuration is invalid."

	// MsgLocalStorage is returned when the local database failed.
	MsgLocalStorage = "The local database could not be read or written."

	// MsgSyncFailed is the fallback for anything else.
	MsgSyncFailed = "Sync failed."
)
