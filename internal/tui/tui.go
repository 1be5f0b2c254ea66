package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-field-sync/internal/logger"
	"github.com/MKhiriev/go-field-sync/internal/service"
	"github.com/MKhiriev/go-field-sync/models"
)

// eventBuffer bounds the events queued for the screen. The broadcaster must
// never block on the UI, so overflow is dropped.
const eventBuffer = 256

type TUI struct {
	services *service.ClientServices
	build    models.AppBuildInfo
	device   models.DeviceInfo
	logger   *logger.Logger
}

func New(services *service.ClientServices, build models.AppBuildInfo, device models.DeviceInfo, logger *logger.Logger) *TUI {
	return &TUI{services: services, build: build, device: device, logger: logger}
}

// Sync runs one sync behind the progress screen and returns its last result.
func (t *TUI) Sync(ctx context.Context, opts service.SyncOptions) (models.ReplicationStatus, error) {
	return t.runScreen(ctx, func(ctx context.Context) (models.ReplicationStatus, error) {
		return t.services.Sync.Sync(ctx, opts)
	})
}

// Compare runs the reconciliation fallback behind the progress screen.
func (t *TUI) Compare(ctx context.Context, opts service.CompareOptions) (models.ReplicationStatus, error) {
	return t.runScreen(ctx, func(ctx context.Context) (models.ReplicationStatus, error) {
		return t.services.Sync.Compare(ctx, opts)
	})
}

func (t *TUI) runScreen(ctx context.Context, run syncRunner) (models.ReplicationStatus, error) {
	ctx, stop := context.WithCancel(ctx)
	defer stop()

	events := make(chan models.ProgressEvent, eventBuffer)
	unsubscribe := t.services.Sync.Subscribe(func(ev models.ProgressEvent) {
		select {
		case events <- ev:
		default:
			t.logger.Debug().Str("event", string(ev.Type)).Msg("progress event dropped")
		}
	})
	defer unsubscribe()

	model := newSyncModel(ctx, run, t.services.Sync.Cancel, events)
	model.build = t.build
	model.device = t.device

	finalModel, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if err != nil {
		return models.ReplicationStatus{}, err
	}

	result, ok := finalModel.(syncModel)
	if !ok {
		return models.ReplicationStatus{}, tea.ErrProgramKilled
	}
	if result.running {
		return result.status, ErrUserQuit
	}
	return result.status, result.err
}
