package render

import (
	"github.com/rs/zerolog"
	"github.com/waypost/waypost/pkg/client"
)

// Renderer paints a map marker for a stored location. Rendering is
// wholesale: every refresh re-renders the full marker rather than patching
// the previous one, which is fine at a cadence of minutes.
type Renderer interface {
	Render(record *client.LocationRecord) error
}

// LogRenderer writes the marker to the log. It is the default sink when no
// map backend is configured.
type LogRenderer struct {
	logger zerolog.Logger
}

// NewLogRenderer creates a log-backed renderer.
func NewLogRenderer(logger zerolog.Logger) *LogRenderer {
	return &LogRenderer{logger: logger}
}

// Render logs the marker coordinates.
func (l *LogRenderer) Render(record *client.LocationRecord) error {
	l.logger.Info().
		Int64("id", record.ID).
		Str("latitude", record.Latitude.String()).
		Str("longitude", record.Longitude.String()).
		Time("recordedAt", record.CreatedAt).
		Msg("Marker updated")
	return nil
}
