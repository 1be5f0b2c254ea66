package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-field-sync/internal/config"
	"github.com/MKhiriev/go-field-sync/internal/logger"
)

// Storages groups the server repositories.
type Storages struct {
	Documents ServerDocumentRepository
	Devices   DeviceRepository
	Reports   SyncReportRepository

	db *DB
}

// NewStorages connects to PostgreSQL, applies the server migrations and
// wires the repositories.
func NewStorages(ctx context.Context, cfg config.ServerDB, logger *logger.Logger) (*Storages, error) {
	logger.Info().Msg("creating new storages...")

	db, err := NewConnectPostgres(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("postgres connection error: %w", err)
	}

	if err := db.MigrateServer(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return &Storages{
		Documents: NewServerDocumentRepository(db, logger),
		Devices:   NewDeviceRepository(db, logger),
		Reports:   NewSyncReportRepository(db, logger),
		db:        db,
	}, nil
}

// Ping checks the database connection.
func (s *Storages) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close releases the database handle.
func (s *Storages) Close() error {
	return s.db.Close()
}
