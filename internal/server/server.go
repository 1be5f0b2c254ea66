package server

import (
	"context"
	"fmt"
	"net"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/MKhiriev/go-field-sync/internal/config"
	"github.com/MKhiriev/go-field-sync/internal/handler"
	"github.com/MKhiriev/go-field-sync/internal/logger"
)

// shutdownTimeout bounds how long in-flight requests may drain.
const shutdownTimeout = 15 * time.Second

type server struct {
	httpServer *httpServer
	address    string
	logger     *logger.Logger

	// listen is swapped in tests.
	listen func(network, address string) (net.Listener, error)
}

func NewServer(handlers *handler.Handlers, cfg config.ServerHTTP, logger *logger.Logger) (Server, error) {
	logger.Info().Msg("creating new server...")

	if handlers == nil || handlers.HTTP == nil || cfg.HTTPAddress == "" {
		return nil, errNoServersAreCreated
	}

	return &server{
		httpServer: newHTTPServer(handlers.HTTP.Init(), cfg.HTTPAddress, cfg.RequestTimeout, logger),
		address:    cfg.HTTPAddress,
		logger:     logger,
		listen:     net.Listen,
	}, nil
}

func (s *server) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	defer stop()

	l, err := s.listen("tcp", s.address)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.address, err)
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return s.httpServer.serve(l)
	})

	g.Go(func() error {
		<-gctx.Done()
		s.logger.Info().Msg("shutting down HTTP server")

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		return s.httpServer.shutdown(shutdownCtx)
	})

	if err = g.Wait(); err != nil {
		return err
	}

	s.logger.Info().Msg("server Shutdown gracefully")
	return nil
}
