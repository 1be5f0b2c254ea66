package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgerrcode"

	"github.com/MKhiriev/go-field-sync/internal/logger"
	"github.com/MKhiriev/go-field-sync/models"
)

// deviceRepository is the PostgreSQL-backed implementation of
// [DeviceRepository].
type deviceRepository struct {
	db     *DB
	logger *logger.Logger
}

// NewDeviceRepository constructs a [DeviceRepository].
func NewDeviceRepository(db *DB, logger *logger.Logger) DeviceRepository {
	logger.Debug().Msg("creating device repository")
	return &deviceRepository{db: db, logger: logger}
}

// Create registers device. device.TokenHash must already be set.
//
// Error handling:
//   - PostgreSQL unique_violation (23505) → [ErrDeviceAlreadyExists].
//   - Any other driver-level error → wrapped [ErrExecutingStatement].
func (r *deviceRepository) Create(ctx context.Context, device models.Device) error {
	log := logger.FromContext(ctx)

	locations, ids, err := encodeAssignment(device.SyncLocations, device.AssignedFormResponseIDs)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, createDevice, device.GroupID, device.ID, device.TokenHash, locations, ids)
	if err != nil {
		log.Err(err).Str("func", "*deviceRepository.Create").Str("device_id", device.ID).Msg("failed to insert device")

		switch postgresError(err) {
		case pgerrcode.UniqueViolation:
			return ErrDeviceAlreadyExists
		default:
			return fmt.Errorf("%w: %w", ErrExecutingStatement, r.db.classify(err))
		}
	}

	return nil
}

// Get returns the device record including its token hash.
func (r *deviceRepository) Get(ctx context.Context, groupID, deviceID string) (models.Device, error) {
	log := logger.FromContext(ctx)

	var (
		device    models.Device
		locations []byte
		ids       []byte
	)
	err := r.db.QueryRowContext(ctx, getDevice, groupID, deviceID).Scan(
		&device.GroupID,
		&device.ID,
		&device.TokenHash,
		&locations,
		&ids,
		&device.Claimed,
		&device.LastSyncedAt,
	)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return models.Device{}, ErrDeviceNotFound
	case err != nil:
		log.Err(err).Str("func", "*deviceRepository.Get").Str("device_id", deviceID).Msg("failed to read device")
		return models.Device{}, fmt.Errorf("%w: %w", ErrExecutingQuery, r.db.classify(err))
	}

	if err = json.Unmarshal(locations, &device.SyncLocations); err != nil {
		return models.Device{}, fmt.Errorf("%w: sync locations: %w", ErrDecodingBody, err)
	}
	if err = json.Unmarshal(ids, &device.AssignedFormResponseIDs); err != nil {
		return models.Device{}, fmt.Errorf("%w: assigned ids: %w", ErrDecodingBody, err)
	}

	return device, nil
}

// UpdateAssignment replaces the device's locations and assigned documents.
func (r *deviceRepository) UpdateAssignment(ctx context.Context, groupID, deviceID string, locations []models.LocationConfig, assigned []string) error {
	encLocations, encIDs, err := encodeAssignment(locations, assigned)
	if err != nil {
		return err
	}
	return r.exec(ctx, "*deviceRepository.UpdateAssignment", updateDeviceAssignment, groupID, deviceID, encLocations, encIDs)
}

// MarkClaimed flags the device as having opened a session.
func (r *deviceRepository) MarkClaimed(ctx context.Context, groupID, deviceID string) error {
	return r.exec(ctx, "*deviceRepository.MarkClaimed", markDeviceClaimed, groupID, deviceID)
}

// MarkSynced records the time of the device's last reported sync.
func (r *deviceRepository) MarkSynced(ctx context.Context, groupID, deviceID string, at time.Time) error {
	return r.exec(ctx, "*deviceRepository.MarkSynced", markDeviceSynced, groupID, deviceID, at.UTC())
}

func (r *deviceRepository) exec(ctx context.Context, fn, query string, args ...any) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", fn).Msg("failed to update device")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, r.db.classify(err))
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrDeviceNotFound
	}
	return nil
}

func encodeAssignment(locations []models.LocationConfig, ids []string) (string, string, error) {
	if locations == nil {
		locations = []models.LocationConfig{}
	}
	if ids == nil {
		ids = []string{}
	}

	encLocations, err := json.Marshal(locations)
	if err != nil {
		return "", "", fmt.Errorf("error encoding sync locations: %w", err)
	}
	encIDs, err := json.Marshal(ids)
	if err != nil {
		return "", "", fmt.Errorf("error encoding assigned ids: %w", err)
	}
	return string(encLocations), string(encIDs), nil
}
