package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-field-sync/internal/adapter"
	"github.com/MKhiriev/go-field-sync/internal/logger"
	"github.com/MKhiriev/go-field-sync/internal/store"
	"github.com/MKhiriev/go-field-sync/models"
)

type syncReporter struct {
	registry adapter.RegistryAdapter
	local    store.LocalDocumentRepository
	caps     DeviceCapabilities
	creds    adapter.DeviceCredentials
	forms    []models.FormInfo

	countByForm bool
	logger      *logger.Logger
}

// NewSyncReporter returns the telemetry [SyncReporter]. With countByForm set
// the report carries the number of local documents of every pulled form.
func NewSyncReporter(registry adapter.RegistryAdapter, local store.LocalDocumentRepository, caps DeviceCapabilities, creds adapter.DeviceCredentials, forms []models.FormInfo, countByForm bool, logger *logger.Logger) SyncReporter {
	return &syncReporter{
		registry:    registry,
		local:       local,
		caps:        caps,
		creds:       creds,
		forms:       forms,
		countByForm: countByForm,
		logger:      logger.WithComponent("report"),
	}
}

// Build implements [SyncReporter]. Details that cannot be read are left out.
func (r *syncReporter) Build(ctx context.Context, status models.ReplicationStatus) models.ReplicationStatus {
	if r.caps != nil {
		if avail, err := r.caps.StorageAvailable(ctx); err == nil {
			status.StorageAvailable = models.Ptr(avail)
		} else {
			r.logger.Debug().Err(err).Msg("storage estimate unavailable")
		}
		status.DeviceInfo = r.caps.Device()
		status.Network = r.caps.Network()
		status.UserAgent = r.caps.UserAgent()
	}

	if info, err := r.local.Info(ctx); err == nil {
		status.DBDocCount = models.Ptr(info.DocCount)
	} else {
		r.logger.Debug().Err(err).Msg("local doc count unavailable")
	}

	if r.countByForm {
		counts := make(map[string]int64)
		for _, form := range r.forms {
			if !form.PullEnabled() {
				continue
			}
			n, err := r.local.CountBySelector(ctx, models.Selector{Or: []models.Clause{formClause(form.ID)}})
			if err != nil {
				r.logger.Debug().Err(err).Str("form", form.ID).Msg("local form count unavailable")
				continue
			}
			counts[form.ID] = n
		}
		status.LocalDocsForLocation = counts
	}

	return status
}

// Send implements [SyncReporter].
func (r *syncReporter) Send(ctx context.Context, report models.ReplicationStatus) error {
	if err := r.registry.DidSync(ctx, r.creds, report); err != nil {
		return fmt.Errorf("%w: %w", ErrReporting, err)
	}
	r.logger.Debug().Msg("sync report delivered")
	return nil
}
