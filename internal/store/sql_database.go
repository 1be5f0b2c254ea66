package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-field-sync/internal/logger"
	"github.com/MKhiriev/go-field-sync/migrations"
)

// ErrorClassificator decides whether a failed database operation may succeed
// when attempted again.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}

// ErrTemporarilyUnavailable wraps database errors classified as
// [Retryable]. Handlers surface it as 503 so devices retry the batch.
var ErrTemporarilyUnavailable = errors.New("database temporarily unavailable")

// DB is a database handle shared by the repositories of one process.
type DB struct {
	*sql.DB
	dialect            dialect
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

// MigrateClient applies the local document store schema.
func (db *DB) MigrateClient() error {
	return migrations.MigrateClient(db.DB)
}

// MigrateServer applies the server schema.
func (db *DB) MigrateServer() error {
	return migrations.MigrateServer(db.DB)
}

// builder returns a squirrel statement builder using the placeholder format
// of the database dialect.
func (db *DB) builder() sq.StatementBuilderType {
	return sq.StatementBuilder.PlaceholderFormat(db.dialect.placeholders())
}

// classify wraps err with [ErrTemporarilyUnavailable] when the classifier
// marks it retryable.
func (db *DB) classify(err error) error {
	if err == nil || db.errorClassificator == nil {
		return err
	}
	if db.errorClassificator.Classify(err) == Retryable {
		return fmt.Errorf("%w: %w", ErrTemporarilyUnavailable, err)
	}
	return err
}

// inTx runs fn in a transaction, rolling back when fn fails.
func (db *DB) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, db.classify(err))
	}

	if err = fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, db.classify(err))
	}
	return nil
}
