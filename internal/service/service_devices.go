package service

import (
	"context"
	"fmt"
	"slices"

	"github.com/jonboulle/clockwork"
	"golang.org/x/crypto/bcrypt"

	"github.com/MKhiriev/go-field-sync/internal/logger"
	"github.com/MKhiriev/go-field-sync/internal/store"
	"github.com/MKhiriev/go-field-sync/internal/utils"
	"github.com/MKhiriev/go-field-sync/models"
)

const snapshotPageSize = 200

type deviceService struct {
	devices   store.DeviceRepository
	reports   store.SyncReportRepository
	documents DocumentService

	ids   *utils.UUIDGenerator
	clock clockwork.Clock

	logger *logger.Logger
}

// NewDeviceService wires the device registry.
func NewDeviceService(devices store.DeviceRepository, reports store.SyncReportRepository, documents DocumentService, clock clockwork.Clock, logger *logger.Logger) DeviceService {
	return &deviceService{
		devices:   devices,
		reports:   reports,
		documents: documents,
		ids:       utils.NewUUIDGenerator(),
		clock:     clock,
		logger:    logger,
	}
}

// Register stores a new device with a freshly generated token. Only the
// bcrypt hash of the token is persisted.
func (s *deviceService) Register(ctx context.Context, groupID string, reg models.DeviceRegistration) (models.Device, error) {
	if groupID == "" {
		return models.Device{}, ErrInvalidDataProvided
	}
	for _, loc := range reg.SyncLocations {
		if _, ok := loc.Deepest(); !ok {
			return models.Device{}, fmt.Errorf("%w: location without nodes", ErrInvalidDataProvided)
		}
	}

	device := models.Device{
		ID:                      reg.ID,
		GroupID:                 groupID,
		SyncLocations:           reg.SyncLocations,
		AssignedFormResponseIDs: reg.AssignedFormResponseIDs,
		Token:                   s.ids.Generate(),
	}
	if device.ID == "" {
		device.ID = s.ids.Generate()
	}
	if device.SyncLocations == nil {
		device.SyncLocations = []models.LocationConfig{}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(device.Token), bcrypt.DefaultCost)
	if err != nil {
		return models.Device{}, fmt.Errorf("hash device token: %w", err)
	}
	device.TokenHash = string(hash)

	if err = s.devices.Create(ctx, device); err != nil {
		return models.Device{}, err
	}

	logger.FromContext(ctx).Info().
		Str("group_id", groupID).
		Str("device_id", device.ID).
		Int("locations", len(device.SyncLocations)).
		Msg("device registered")
	return device, nil
}

func (s *deviceService) UpdateAssignment(ctx context.Context, groupID, deviceID string, reg models.DeviceRegistration) error {
	if groupID == "" || deviceID == "" {
		return ErrInvalidDataProvided
	}
	locations := reg.SyncLocations
	if locations == nil {
		locations = []models.LocationConfig{}
	}
	return s.devices.UpdateAssignment(ctx, groupID, deviceID, locations, reg.AssignedFormResponseIDs)
}

// Get returns the registry record of an authenticated device without its
// token hash.
func (s *deviceService) Get(ctx context.Context, groupID, deviceID, deviceToken string) (models.Device, error) {
	device, err := authenticateDevice(ctx, s.devices, groupID, deviceID, deviceToken)
	if err != nil {
		return models.Device{}, err
	}
	device.TokenHash = ""
	return device, nil
}

// DidSync stores a post-sync report and stamps the device's last sync time.
func (s *deviceService) DidSync(ctx context.Context, groupID, deviceID, deviceToken string, report models.ReplicationStatus) error {
	if _, err := authenticateDevice(ctx, s.devices, groupID, deviceID, deviceToken); err != nil {
		return err
	}

	if err := s.reports.Save(ctx, groupID, deviceID, report); err != nil {
		return fmt.Errorf("save sync report: %w", err)
	}
	syncReports.Inc()

	return s.devices.MarkSynced(ctx, groupID, deviceID, s.clock.Now().UTC())
}

// Snapshot collects the live documents a device is entitled to: everything
// under its locations (or the whole group when it has none), issues addressed
// to it and its assigned form responses. The result is ordered by id.
func (s *deviceService) Snapshot(ctx context.Context, groupID, deviceID, deviceToken string) ([]models.Document, error) {
	device, err := authenticateDevice(ctx, s.devices, groupID, deviceID, deviceToken)
	if err != nil {
		return nil, err
	}

	docs := s.documents.ForGroup(groupID)
	byID := make(map[string]models.Document)

	if len(device.SyncLocations) == 0 {
		err = s.snapshotAll(ctx, docs, byID)
	} else {
		err = s.snapshotScoped(ctx, docs, device, byID)
	}
	if err != nil {
		return nil, err
	}

	if len(device.AssignedFormResponseIDs) > 0 {
		assigned, err := docs.BulkGet(ctx, device.AssignedFormResponseIDs)
		if err != nil {
			return nil, fmt.Errorf("snapshot assigned documents: %w", err)
		}
		for _, doc := range assigned {
			if !doc.Deleted {
				byID[doc.ID] = doc
			}
		}
	}

	out := make([]models.Document, 0, len(byID))
	for _, doc := range byID {
		out = append(out, doc)
	}
	slices.SortFunc(out, func(a, b models.Document) int {
		switch {
		case a.ID < b.ID:
			return -1
		case a.ID > b.ID:
			return 1
		}
		return 0
	})

	s.logger.Debug().
		Str("device_id", deviceID).
		Int("documents", len(out)).
		Msg("snapshot collected")
	return out, nil
}

func (s *deviceService) snapshotAll(ctx context.Context, docs store.DocumentRepository, byID map[string]models.Document) error {
	startKey := ""
	for {
		page, err := docs.AllDocs(ctx, models.AllDocsRequest{StartKey: startKey, Limit: snapshotPageSize + 1, IncludeDocs: true})
		if err != nil {
			return fmt.Errorf("snapshot all documents: %w", err)
		}

		rows := page.Rows
		more := len(rows) > snapshotPageSize
		if more {
			startKey = rows[snapshotPageSize].ID
			rows = rows[:snapshotPageSize]
		}
		for _, row := range rows {
			if row.Doc == nil || row.Value.Deleted || models.IsDesignID(row.ID) {
				continue
			}
			byID[row.ID] = *row.Doc
		}
		if !more {
			return nil
		}
	}
}

func (s *deviceService) snapshotScoped(ctx context.Context, docs store.DocumentRepository, device models.Device, byID map[string]models.Document) error {
	var sel models.Selector
	for _, loc := range device.SyncLocations {
		if node, ok := loc.Deepest(); ok {
			sel.Or = append(sel.Or, models.Clause{{Field: locationField(node), Value: node.Value}})
		}
	}
	sel.Or = append(sel.Or, BuildSelector(nil, device.SyncLocations, device.ID, false).Or...)

	bookmark := ""
	for {
		page, err := docs.Find(ctx, models.FindRequest{Selector: sel, Limit: snapshotPageSize, Bookmark: bookmark})
		if err != nil {
			return fmt.Errorf("snapshot scoped documents: %w", err)
		}
		for _, doc := range page.Docs {
			if !doc.IsDesign() {
				byID[doc.ID] = doc
			}
		}
		if len(page.Docs) < snapshotPageSize {
			return nil
		}
		bookmark = page.Bookmark
	}
}
