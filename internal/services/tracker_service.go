package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/waypost/waypost/pkg/client"
	"github.com/waypost/waypost/pkg/location"
	"github.com/waypost/waypost/pkg/render"
)

// LocationClient is the subset of the location service API used by the
// polling services.
type LocationClient interface {
	Report(ctx context.Context, pos location.Position) (*client.LocationRecord, error)
	FetchLatest(ctx context.Context) (*client.LocationRecord, error)
}

// TrackerService runs the sample-report-refresh cycle: once immediately on
// start, then on a fixed interval until stopped. The service owns its timer
// and cancellation; Stop cancels the timer and waits for the loop to exit so
// no periodic work leaks past teardown.
type TrackerService struct {
	// Configuration fields
	interval      time.Duration
	sampleTimeout time.Duration

	// Dependencies
	provider location.Provider
	client   LocationClient
	renderer render.Renderer
	logger   zerolog.Logger

	// Internal state management
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	running bool
}

// NewTrackerService creates a new TrackerService instance with the provided configuration.
func NewTrackerService(interval, sampleTimeout time.Duration, provider location.Provider,
	locationClient LocationClient, renderer render.Renderer, logger zerolog.Logger) *TrackerService {
	return &TrackerService{
		interval:      interval,
		sampleTimeout: sampleTimeout,
		provider:      provider,
		client:        locationClient,
		renderer:      renderer,
		logger:        logger,
		running:       false,
	}
}

// Start initiates the tracking loop.
func (t *TrackerService) Start() error {
	if t.running {
		t.logger.Warn().Msg("TrackerService is already running")
		return errors.New("tracker service is already running")
	}

	t.ctx, t.cancel = context.WithCancel(context.Background())
	t.running = true

	t.wg.Add(1)
	go func() {
		defer t.wg.Done()

		// First tick fires immediately on activation.
		t.runTick()

		ticker := time.NewTicker(t.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				t.runTick()
			case <-t.ctx.Done():
				t.logger.Info().Msg("TrackerService is stopping")
				return
			}
		}
	}()

	t.logger.Info().
		Dur("interval", t.interval).
		Dur("sample_timeout", t.sampleTimeout).
		Msg("TrackerService started")
	return nil
}

// Stop cancels the loop and waits for it to exit.
func (t *TrackerService) Stop() error {
	if !t.running {
		t.logger.Warn().Msg("TrackerService is not running")
		return errors.New("tracker service is not running")
	}

	t.cancel()
	t.wg.Wait()

	if err := t.provider.Close(); err != nil {
		t.logger.Error().Err(err).Msg("Failed to close location provider")
		return err
	}

	t.running = false
	t.logger.Info().Msg("TrackerService stopped")
	return nil
}

// runTick executes one sample-report-refresh cycle. Every failure inside a
// tick is terminal for that tick only: it is logged, nothing is retried, and
// the next scheduled tick fires regardless.
func (t *TrackerService) runTick() {
	pos, err := t.sample()
	if err != nil {
		t.logger.Error().Err(err).Msg("Skipping report, sample failed")
	} else {
		if _, err := t.client.Report(t.ctx, pos); err != nil {
			t.logger.Error().Err(err).Msg("Failed to report position")
		}
	}

	// The refresh runs even when the report failed or was skipped: the
	// store's latest record is the single source of truth for the marker,
	// and it may hold an earlier report.
	t.refresh()
}

// sample reads the current position, bounded by the sample timeout.
func (t *TrackerService) sample() (location.Position, error) {
	ctx, cancel := context.WithTimeout(t.ctx, t.sampleTimeout)
	defer cancel()

	return t.provider.Sample(ctx)
}

// refresh fetches the latest stored location and repaints the marker. A
// result arriving after the service was stopped is discarded.
func (t *TrackerService) refresh() {
	record, err := t.client.FetchLatest(t.ctx)
	if err != nil {
		if errors.Is(err, client.ErrNotFound) {
			t.logger.Debug().Msg("No location stored yet")
			return
		}
		t.logger.Error().Err(err).Msg("Failed to fetch latest location")
		return
	}

	if t.ctx.Err() != nil {
		return
	}

	if err := t.renderer.Render(record); err != nil {
		t.logger.Error().Err(err).Msg("Failed to render marker")
	}
}
