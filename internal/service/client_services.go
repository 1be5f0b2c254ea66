package service

import (
	"fmt"

	"github.com/jonboulle/clockwork"

	"github.com/MKhiriev/go-field-sync/internal/adapter"
	"github.com/MKhiriev/go-field-sync/internal/config"
	"github.com/MKhiriev/go-field-sync/internal/logger"
	"github.com/MKhiriev/go-field-sync/internal/store"
)

// ClientServices groups everything the client app drives.
type ClientServices struct {
	Sync     ClientSyncService
	SyncJob  ClientSyncJob
	Progress *Broadcaster
	Local    store.LocalDocumentRepository
}

// NewClientServices wires the sync orchestrator and its collaborators on top
// of the local storages and the registry adapter.
func NewClientServices(cfg config.ClientConfig, storages *store.ClientStorages, registry adapter.RegistryAdapter, caps DeviceCapabilities, logger *logger.Logger) (*ClientServices, error) {
	forms, err := LoadForms(cfg.Sync.FormsFile)
	if err != nil {
		return nil, err
	}
	indexes, err := LoadIndexDefinitions(cfg.Sync.IndexFile)
	if err != nil {
		return nil, err
	}

	clock := clockwork.NewRealClock()
	progress := NewBroadcaster(clock)
	progress.Subscribe(LogSubscriber(logger.WithComponent("progress")))

	remotes := func(sessionURL string) (DocumentStore, error) {
		remote, err := adapter.NewHTTPDocumentStore(sessionURL, cfg.Adapter.RequestTimeout, logger)
		if err != nil {
			return nil, fmt.Errorf("bind remote store: %w", err)
		}
		return remote, nil
	}

	creds := adapter.DeviceCredentials{
		GroupID:  cfg.Device.GroupID,
		DeviceID: cfg.Device.ID,
		Token:    cfg.Device.Token,
	}

	syncSvc := NewClientSyncService(SyncDependencies{
		Config:     cfg,
		Local:      storages.Documents,
		Variables:  storages.Variables,
		Registry:   registry,
		Negotiator: NewSessionNegotiator(registry, remotes, logger),
		Replicator: NewReplicator(progress, logger),
		Reporter:   NewSyncReporter(registry, storages.Documents, caps, creds, forms, cfg.Sync.CalculateLocalDocsForLocation, logger),
		Indexer:    NewIndexOptimizer(storages.Documents, indexes, cfg.Sync.DoNotOptimize, progress, logger),
		Forms:      forms,
		Progress:   progress,
		Clock:      clock,
		Logger:     logger,
	})

	return &ClientServices{
		Sync:     syncSvc,
		SyncJob:  NewClientSyncJob(syncSvc, clock, logger),
		Progress: progress,
		Local:    storages.Documents,
	}, nil
}
