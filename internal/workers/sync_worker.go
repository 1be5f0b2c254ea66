package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/go-field-sync/internal/logger"
	"github.com/MKhiriev/go-field-sync/internal/service"
)

// SyncWorker drives the periodic background sync of the daemon mode.
type SyncWorker struct {
	job      service.ClientSyncJob
	interval time.Duration
	logger   *logger.Logger
}

func NewSyncWorker(job service.ClientSyncJob, interval time.Duration, logger *logger.Logger) *SyncWorker {
	return &SyncWorker{job: job, interval: interval, logger: logger}
}

// Run starts the job and stops it once ctx is done.
func (w *SyncWorker) Run(ctx context.Context) error {
	w.logger.Info().Dur("interval", w.interval).Msg("background sync started")
	w.job.Start(ctx, w.interval)

	<-ctx.Done()
	w.job.Stop()

	w.logger.Info().Msg("background sync stopped")
	return nil
}
