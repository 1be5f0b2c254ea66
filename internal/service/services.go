package service

import (
	"github.com/jonboulle/clockwork"

	"github.com/MKhiriev/go-field-sync/internal/config"
	"github.com/MKhiriev/go-field-sync/internal/logger"
	"github.com/MKhiriev/go-field-sync/internal/store"
)

// Services groups the reference server's business logic.
type Services struct {
	Sessions  SessionService
	Devices   DeviceService
	Documents DocumentService
}

func NewServices(storages *store.Storages, cfg config.ServerConfig, logger *logger.Logger) *Services {
	documents := NewDocumentService(storages.Documents, NewMetricsWrapper())

	return &Services{
		Sessions:  NewSessionService(storages.Devices, cfg, logger),
		Devices:   NewDeviceService(storages.Devices, storages.Reports, documents, clockwork.NewRealClock(), logger),
		Documents: documents,
	}
}
