package services

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"
)

// Service is the lifecycle contract for the polling services.
type Service interface {
	Start() error
	Stop() error
}

// Registry manages service lifecycles: ordered start, reverse-order stop,
// rollback of already started services when a later one fails to start.
type Registry struct {
	services    map[string]Service
	serviceKeys []string
	logger      zerolog.Logger
}

// NewRegistry initializes an empty registry.
func NewRegistry(logger zerolog.Logger) *Registry {
	return &Registry{
		services: make(map[string]Service),
		logger:   logger,
	}
}

// Register adds a new service to the registry.
func (r *Registry) Register(name string, svc Service) {
	if _, exists := r.services[name]; exists {
		r.logger.Warn().Msgf("Service %s is already registered", name)
		return
	}
	r.services[name] = svc
	r.serviceKeys = append(r.serviceKeys, name)
	r.logger.Info().Msgf("Registered service: %s", name)
}

// StartServices initiates all registered services in order. If a service
// fails to start, the ones already started are stopped.
func (r *Registry) StartServices() error {
	startedServices := []string{}

	for _, name := range r.serviceKeys {
		svc := r.services[name]
		r.logger.Info().Msgf("Starting service: %s", name)
		if err := svc.Start(); err != nil {
			r.logger.Error().Err(err).Msgf("Failed to start service: %s", name)

			r.logger.Warn().Msg("Stopping already started services due to startup failure...")
			for i := len(startedServices) - 1; i >= 0; i-- {
				_ = r.services[startedServices[i]].Stop()
			}
			return err
		}
		startedServices = append(startedServices, name)
	}

	return nil
}

// StopServices stops all services in reverse order.
func (r *Registry) StopServices() error {
	var stopErrors []error
	for i := len(r.serviceKeys) - 1; i >= 0; i-- {
		name := r.serviceKeys[i]
		if err := r.services[name].Stop(); err != nil {
			stopErrors = append(stopErrors, fmt.Errorf("failed to stop %s: %w", name, err))
		}
	}
	if len(stopErrors) > 0 {
		for _, e := range stopErrors {
			r.logger.Error().Err(e).Msg("Service stop failure")
		}
		return errors.Join(stopErrors...)
	}
	return nil
}
