package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-field-sync/internal/logger"
)

const (
	getVariable = `SELECT value FROM variables WHERE key = ?;`

	setVariable = `
		INSERT INTO variables (key, value, updated_at)
		VALUES (?, ?, strftime('%Y-%m-%dT%H:%M:%fZ', 'now'))
		ON CONFLICT (key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at;`
)

type variablesRepository struct {
	db     *DB
	logger *logger.Logger
}

// NewVariablesRepository returns the key/value store that keeps sync
// checkpoints and the previous location assignment.
func NewVariablesRepository(db *DB, logger *logger.Logger) VariablesRepository {
	logger.Debug().Msg("creating variables repository")
	return &variablesRepository{db: db, logger: logger}
}

// Get decodes the JSON value stored under key into dst. A missing key
// returns [ErrVariableNotFound].
func (r *variablesRepository) Get(ctx context.Context, key string, dst any) error {
	log := logger.FromContext(ctx)

	var raw string
	err := r.db.QueryRowContext(ctx, getVariable, key).Scan(&raw)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return ErrVariableNotFound
	case err != nil:
		log.Err(err).Str("func", "variablesRepository.Get").Str("key", key).Msg("failed to read variable")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	if err = json.Unmarshal([]byte(raw), dst); err != nil {
		log.Err(err).Str("func", "variablesRepository.Get").Str("key", key).Msg("failed to decode variable")
		return fmt.Errorf("%w: %w", ErrDecodingBody, err)
	}
	return nil
}

// Set stores value as JSON under key.
func (r *variablesRepository) Set(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("error encoding variable %s: %w", key, err)
	}

	if _, err = r.db.ExecContext(ctx, setVariable, key, string(raw)); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "variablesRepository.Set").Str("key", key).Msg("failed to write variable")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}
