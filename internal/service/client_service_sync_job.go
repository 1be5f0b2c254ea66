package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/MKhiriev/go-field-sync/internal/config"
	"github.com/MKhiriev/go-field-sync/internal/logger"
	"github.com/MKhiriev/go-field-sync/models"
)

type clientSyncJob struct {
	syncService ClientSyncService
	clock       clockwork.Clock
	logger      *logger.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewClientSyncJob creates a clientSyncJob that calls syncService.Sync on a
// ticker driven by clock. The job is idle until Start is called.
func NewClientSyncJob(syncService ClientSyncService, clock clockwork.Clock, logger *logger.Logger) ClientSyncJob {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &clientSyncJob{syncService: syncService, clock: clock, logger: logger.WithComponent("sync-job")}
}

// Start implements ClientSyncJob. It stops any previously running job, then
// launches a background goroutine that calls Sync every interval. If interval
// is zero or negative it defaults to [config.DefaultSyncInterval]. The
// goroutine exits when ctx is cancelled or Stop is called.
func (j *clientSyncJob) Start(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = config.DefaultSyncInterval
	}

	j.Stop()

	j.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	j.cancel = cancel
	j.wg.Add(1)
	j.mu.Unlock()

	go func() {
		defer j.wg.Done()
		t := j.clock.NewTicker(interval)
		defer t.Stop()

		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.Chan():
				j.tick(jobCtx)
			}
		}
	}()
}

func (j *clientSyncJob) tick(ctx context.Context) {
	status, err := j.syncService.Sync(ctx, SyncOptions{})
	switch {
	case errors.Is(err, ErrSyncInProgress):
		j.logger.Debug().Msg("previous sync still running, tick skipped")
	case err != nil:
		j.logger.Warn().Err(err).Msg("background sync failed")
	default:
		j.logger.Info().Int("pushed", models.Val(status.Pushed)).Int("pulled", models.Val(status.Pulled)).Msg("background sync finished")
	}
}

// Stop implements ClientSyncJob. It cancels the background goroutine's context and
// blocks until the goroutine has fully exited. Safe to call when the job is not
// running (no-op in that case).
func (j *clientSyncJob) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	j.wg.Wait()
}

