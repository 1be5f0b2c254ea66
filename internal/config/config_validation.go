// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "strings"

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// The shared config carries both client and server settings, so checks that
// apply to one binary only live on [ClientConfig] and [ServerConfig].
func (cfg *StructuredConfig) validate() error {
	if cfg.Sync.MaxRetries < 0 {
		return ErrInvalidSyncConfigs
	}
	return nil
}

func (cfg *ClientConfig) validate() error {
	if cfg.Storage.DB.DSN == "" || strings.Contains(cfg.Storage.DB.DSN, "memory") {
		return ErrInvalidStorageConfigs
	}

	if cfg.Adapter.ServerURL == "" || cfg.Adapter.RequestTimeout == 0 {
		return ErrInvalidAdapterConfigs
	}

	if cfg.Device.GroupID == "" || cfg.Device.ID == "" || cfg.Device.Token == "" {
		return ErrInvalidDeviceConfigs
	}

	if cfg.Sync.WriteBatchSize > cfg.Sync.BatchSize || cfg.Sync.ChangesBatchSize <= 0 {
		return ErrInvalidSyncConfigs
	}

	if cfg.Workers.SyncInterval == 0 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}

func (cfg *ServerConfig) validate() error {
	if cfg.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.App.SessionSignKey == "" || cfg.App.AdminKey == "" {
		return ErrInvalidAppConfigs
	}

	return nil
}
