package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mattn/go-isatty"

	"github.com/MKhiriev/go-field-sync/internal/adapter"
	"github.com/MKhiriev/go-field-sync/internal/client"
	"github.com/MKhiriev/go-field-sync/internal/config"
	"github.com/MKhiriev/go-field-sync/internal/logger"
	"github.com/MKhiriev/go-field-sync/internal/service"
	"github.com/MKhiriev/go-field-sync/internal/store"
	"github.com/MKhiriev/go-field-sync/internal/tui"
	"github.com/MKhiriev/go-field-sync/internal/utils"
	"github.com/MKhiriev/go-field-sync/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.GetClientConfig()
	if err != nil {
		return fmt.Errorf("error getting configs: %w", err)
	}

	log, closeLog := logger.NewFileLogger("fieldsync-client", client.DataDir(cfg.Storage.DB.DSN))
	defer closeLog.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	build := models.NewAppBuildInfo(valueOrNA(buildVersion), valueOrNA(buildDate), valueOrNA(buildCommit))

	registry, err := adapter.NewHTTPRegistryAdapter(cfg.Adapter.ServerURL, cfg.Adapter.RequestTimeout, log)
	if err != nil {
		log.Error().Err(err).Msg("create registry adapter")
		return err
	}

	storages, err := store.NewClientStorages(ctx, cfg.Storage, utils.NewUUIDGenerator(), log)
	if err != nil {
		log.Error().Err(err).Msg("create local storage")
		return err
	}
	defer storages.Close()

	host := client.NewHost(*cfg, build)

	services, err := service.NewClientServices(*cfg, storages, registry, host, log)
	if err != nil {
		log.Error().Err(err).Msg("create client services")
		return err
	}

	var screen client.ProgressScreen
	if isTerminal(os.Stdout) {
		screen = tui.New(services, build, host.Device(), log)
	}

	return client.NewApp(*cfg, services, screen, log).Run(ctx)
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func valueOrNA(v string) string {
	if v == "" {
		return "N/A"
	}
	return v
}
