package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/MKhiriev/go-field-sync/internal/logger"
	"github.com/MKhiriev/go-field-sync/models"
)

type syncReportRepository struct {
	db     *DB
	logger *logger.Logger
}

// NewSyncReportRepository constructs a [SyncReportRepository].
func NewSyncReportRepository(db *DB, logger *logger.Logger) SyncReportRepository {
	logger.Debug().Msg("creating sync report repository")
	return &syncReportRepository{db: db, logger: logger}
}

// Save appends a device's post-sync report.
func (r *syncReportRepository) Save(ctx context.Context, groupID, deviceID string, report models.ReplicationStatus) error {
	raw, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("error encoding sync report: %w", err)
	}

	if _, err = r.db.ExecContext(ctx, saveSyncReport, groupID, deviceID, string(raw)); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "*syncReportRepository.Save").
			Str("device_id", deviceID).
			Msg("failed to save sync report")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, r.db.classify(err))
	}
	return nil
}
