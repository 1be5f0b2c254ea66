// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"

	"github.com/MKhiriev/go-field-sync/internal/service"
	"github.com/MKhiriev/go-field-sync/models"
)

// Client defines the minimal lifecycle contract for runnable client
// applications.
type Client interface {
	// Run executes the configured sub-command and blocks until it is done.
	Run(ctx context.Context) error
}

// ProgressScreen runs a sync in front of the user and returns its result.
type ProgressScreen interface {
	Sync(ctx context.Context, opts service.SyncOptions) (models.ReplicationStatus, error)
	Compare(ctx context.Context, opts service.CompareOptions) (models.ReplicationStatus, error)
}
