package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/MKhiriev/go-field-sync/internal/config"
	"github.com/MKhiriev/go-field-sync/internal/logger"
	"github.com/MKhiriev/go-field-sync/internal/service"
	"github.com/MKhiriev/go-field-sync/internal/validators"
	"github.com/MKhiriev/go-field-sync/internal/workers"
	"github.com/MKhiriev/go-field-sync/models"
)

// Sub-commands.
const (
	CommandSync    = "sync"
	CommandCompare = "compare"
	CommandDaemon  = "daemon"
	CommandPut     = "put"
)

// App is the device client.
type App struct {
	cfg       config.ClientConfig
	services  *service.ClientServices
	screen    ProgressScreen
	validator validators.Validator
	logger    *logger.Logger

	stdin  io.Reader
	stdout io.Writer
}

// NewApp builds the client. screen may be nil, in which case every command
// runs in plain mode.
func NewApp(cfg config.ClientConfig, services *service.ClientServices, screen ProgressScreen, logger *logger.Logger) *App {
	return &App{
		cfg:       cfg,
		services:  services,
		screen:    screen,
		validator: validators.NewDocumentValidator(),
		logger:    logger,
		stdin:     os.Stdin,
		stdout:    os.Stdout,
	}
}

// Run dispatches cfg.Args[0]; with no arguments it syncs once.
func (a *App) Run(ctx context.Context) error {
	command, args := CommandSync, []string(nil)
	if len(a.cfg.Args) > 0 {
		command, args = a.cfg.Args[0], a.cfg.Args[1:]
	}

	a.logger.Info().Str("command", command).Msg("client started")

	switch command {
	case CommandSync:
		return a.runSync(ctx, args)
	case CommandCompare:
		return a.runCompare(ctx, args)
	case CommandDaemon:
		return a.runDaemon(ctx)
	case CommandPut:
		return a.runPut(ctx, args)
	}
	return fmt.Errorf("%w: %q", ErrUnknownCommand, command)
}

func (a *App) runSync(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet(CommandSync, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	first := fs.Bool("first", false, "first sync on this device: skip the push")
	full := fs.String("full", "", "ignore the checkpoint of a direction (push or pull)")
	reduce := fs.Bool("reduce", false, "use very small batches")
	plain := fs.Bool("plain", false, "no progress screen; print the report as JSON")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidArguments, err)
	}

	opts := service.SyncOptions{
		FirstSync:       *first,
		FullSync:        models.Direction(*full),
		ReduceBatchSize: *reduce,
	}
	if *full != "" && !opts.FullSync.Valid() {
		return fmt.Errorf("%w: -full must be push or pull", ErrInvalidArguments)
	}

	if *plain || a.screen == nil {
		status, err := a.services.Sync.Sync(ctx, opts)
		return a.finish(status, err)
	}
	status, err := a.screen.Sync(ctx, opts)
	a.logResult(status, err)
	return err
}

func (a *App) runCompare(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet(CommandCompare, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	limit := fs.Int("limit", a.cfg.Sync.CompareLimit, "ids per page")
	reduce := fs.Bool("reduce", false, "page and replicate in small batches")
	plain := fs.Bool("plain", false, "no progress screen; print the report as JSON")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidArguments, err)
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("%w: compare needs a direction (push or pull)", ErrInvalidArguments)
	}
	direction := models.Direction(fs.Arg(0))
	if !direction.Valid() {
		return fmt.Errorf("%w: unknown direction %q", ErrInvalidArguments, fs.Arg(0))
	}

	opts := service.CompareOptions{Direction: direction, Limit: *limit, ReduceBatchSize: *reduce}
	if *plain || a.screen == nil {
		status, err := a.services.Sync.Compare(ctx, opts)
		return a.finish(status, err)
	}
	status, err := a.screen.Compare(ctx, opts)
	a.logResult(status, err)
	return err
}

// runDaemon syncs once right away and then on the configured interval until
// ctx is cancelled.
func (a *App) runDaemon(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		status, err := a.services.Sync.Sync(gctx, service.SyncOptions{})
		a.logResult(status, err)
		return nil
	})
	g.Go(func() error {
		return workers.NewWorkers(
			workers.NewSyncWorker(a.services.SyncJob, a.cfg.Workers.SyncInterval, a.logger),
		).Run(gctx)
	})

	return g.Wait()
}

// runPut stores the documents in a JSON file ("-" for stdin). The file holds
// one document or an array of them.
func (a *App) runPut(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: put needs a file name", ErrInvalidArguments)
	}

	var (
		data []byte
		err  error
	)
	if args[0] == "-" {
		data, err = io.ReadAll(a.stdin)
	} else {
		data, err = os.ReadFile(args[0])
	}
	if err != nil {
		return fmt.Errorf("read documents: %w", err)
	}

	docs, err := decodeDocuments(data)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidArguments, err)
	}
	if err = a.validator.Validate(ctx, docs, validators.FieldID, validators.FieldOptionalRev); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidArguments, err)
	}

	for _, doc := range docs {
		saved, err := a.services.Local.Put(ctx, doc)
		if err != nil {
			return fmt.Errorf("put %s: %w", doc.ID, err)
		}
		fmt.Fprintf(a.stdout, "%s %s\n", saved.ID, saved.Rev)
	}
	a.logger.Info().Int("documents", len(docs)).Msg("documents stored locally")
	return nil
}

func decodeDocuments(data []byte) ([]models.Document, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, errors.New("no documents")
	}

	if data[0] == '[' {
		var docs []models.Document
		if err := json.Unmarshal(data, &docs); err != nil {
			return nil, err
		}
		return docs, nil
	}

	var doc models.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return []models.Document{doc}, nil
}

// finish prints the report of a plain-mode run.
func (a *App) finish(status models.ReplicationStatus, err error) error {
	a.logResult(status, err)

	enc := json.NewEncoder(a.stdout)
	enc.SetIndent("", "  ")
	if encErr := enc.Encode(status); encErr != nil {
		return errors.Join(err, fmt.Errorf("print report: %w", encErr))
	}
	fmt.Fprintln(a.stdout, service.StatusMessage(status, err))
	return err
}

func (a *App) logResult(status models.ReplicationStatus, err error) {
	if err != nil {
		a.logger.Err(err).Msg(service.UserMessage(err))
		return
	}
	a.logger.Info().
		Int("pushed", models.Val(status.Pushed)).
		Int("pulled", models.Val(status.Pulled)).
		Bool("cancelled", status.Cancelled).
		Msg(service.StatusMessage(status, nil))
}
