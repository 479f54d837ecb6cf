package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/waypost/waypost/internal/observability"
	"github.com/waypost/waypost/internal/store"
)

// Server hosts the location API and a separate metrics listener.
type Server struct {
	httpServer    *http.Server
	metricsServer *http.Server
	logger        zerolog.Logger
}

// New wires the location handler and metrics endpoints onto their listeners.
func New(addr, metricsAddr string, locationStore store.LocationStore, logger zerolog.Logger) *Server {
	mux := http.NewServeMux()
	mux.Handle("/api/location", NewLocationHandler(locationStore, logger))

	return &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
		},
		metricsServer: &http.Server{
			Addr:    metricsAddr,
			Handler: observability.MetricsHandler(),
		},
		logger: logger,
	}
}

// Start serves both listeners. It blocks until the API listener stops.
func (s *Server) Start() error {
	go func() {
		s.logger.Info().Str("addr", s.metricsServer.Addr).Msg("Metrics listener started")
		if err := s.metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error().Err(err).Msg("Metrics listener failed")
		}
	}()

	s.logger.Info().Str("addr", s.httpServer.Addr).Msg("Location service started")
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests on both listeners.
func (s *Server) Shutdown(ctx context.Context) error {
	var errs []error
	if err := s.httpServer.Shutdown(ctx); err != nil {
		errs = append(errs, err)
	}
	if err := s.metricsServer.Shutdown(ctx); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
