package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/waypost/waypost/pkg/client"
	"github.com/waypost/waypost/pkg/render"
)

// ViewerService polls the latest stored location on a fixed interval and
// repaints the marker. It never writes. A transient fetch failure leaves the
// previously rendered marker in place; only the initial state shows nothing.
type ViewerService struct {
	// Configuration fields
	interval time.Duration

	// Dependencies
	client   LocationClient
	renderer render.Renderer
	logger   zerolog.Logger

	// Internal state management
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	running bool

	// lastRendered is written by the polling goroutine and may be read
	// concurrently through LastRendered.
	mu           sync.Mutex
	lastRendered *client.LocationRecord
}

// NewViewerService creates a new ViewerService instance with the provided configuration.
func NewViewerService(interval time.Duration, locationClient LocationClient,
	renderer render.Renderer, logger zerolog.Logger) *ViewerService {
	return &ViewerService{
		interval: interval,
		client:   locationClient,
		renderer: renderer,
		logger:   logger,
		running:  false,
	}
}

// Start initiates the polling loop, refreshing once immediately.
func (v *ViewerService) Start() error {
	if v.running {
		v.logger.Warn().Msg("ViewerService is already running")
		return errors.New("viewer service is already running")
	}

	v.ctx, v.cancel = context.WithCancel(context.Background())
	v.running = true

	v.wg.Add(1)
	go func() {
		defer v.wg.Done()

		v.refresh()

		ticker := time.NewTicker(v.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				v.refresh()
			case <-v.ctx.Done():
				v.logger.Info().Msg("ViewerService is stopping")
				return
			}
		}
	}()

	v.logger.Info().Dur("interval", v.interval).Msg("ViewerService started")
	return nil
}

// Stop cancels the polling loop and waits for it to exit.
func (v *ViewerService) Stop() error {
	if !v.running {
		v.logger.Warn().Msg("ViewerService is not running")
		return errors.New("viewer service is not running")
	}

	v.cancel()
	v.wg.Wait()

	v.running = false
	v.logger.Info().Msg("ViewerService stopped")
	return nil
}

// LastRendered returns the record behind the currently displayed marker, nil
// before the first successful refresh. Safe to call while the service runs.
func (v *ViewerService) LastRendered() *client.LocationRecord {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.lastRendered
}

// refresh fetches the latest location and repaints. Failures never clear an
// already rendered marker.
func (v *ViewerService) refresh() {
	record, err := v.client.FetchLatest(v.ctx)
	if err != nil {
		switch {
		case errors.Is(err, client.ErrNotFound):
			// Empty store is a waiting state, not an error.
			v.logger.Info().Msg("No location stored yet")
		case v.LastRendered() != nil:
			v.logger.Error().Err(err).Msg("Failed to refresh, keeping previous marker")
		default:
			v.logger.Error().Err(err).Msg("Failed to fetch location")
		}
		return
	}

	if v.ctx.Err() != nil {
		return
	}

	if err := v.renderer.Render(record); err != nil {
		v.logger.Error().Err(err).Msg("Failed to render marker")
		return
	}

	v.mu.Lock()
	v.lastRendered = record
	v.mu.Unlock()
}
