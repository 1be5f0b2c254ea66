package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-field-sync/internal/config"
	"github.com/MKhiriev/go-field-sync/internal/logger"
)

// ClientStorages groups the repositories of the device-local SQLite store.
type ClientStorages struct {
	// Documents is the local document store replicated with the server.
	Documents LocalDocumentRepository

	// Variables keeps checkpoints and the previous location assignment.
	Variables VariablesRepository

	db *DB
}

// NewClientStorages opens the SQLite file at cfg.DB.DSN, creating it when
// needed, applies the client migrations and wires the repositories.
func NewClientStorages(ctx context.Context, cfg config.ClientStorage, revs RevSuffixGenerator, logger *logger.Logger) (*ClientStorages, error) {
	logger.Info().Msg("creating new storages...")

	db, err := NewConnectSQLite(ctx, cfg.DB, logger)
	if err != nil {
		return nil, fmt.Errorf("sqlite connection error: %w", err)
	}

	if err := db.MigrateClient(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return &ClientStorages{
		Documents: NewLocalDocumentRepository(db, revs, logger),
		Variables: NewVariablesRepository(db, logger),
		db:        db,
	}, nil
}

// Close releases the database handle.
func (s *ClientStorages) Close() error {
	return s.db.Close()
}
