package render

import (
	"fmt"
	"net/url"

	"github.com/rs/zerolog"
	"github.com/waypost/waypost/pkg/client"
)

const (
	staticMapEndpoint = "https://maps.googleapis.com/maps/api/staticmap"
	defaultZoom       = 15
	defaultMarkerIcon = "https://res.cloudinary.com/dxmrcocqb/image/upload/v1714782499/Nexus_Suit_Sike_DM_1_sby7p2.png"
)

// StaticMapRenderer renders the marker as a Google Static Maps URL. The URL
// is logged so any browser can display the current map without a JS SDK.
type StaticMapRenderer struct {
	apiKey  string
	iconURL string
	zoom    int
	logger  zerolog.Logger
}

// NewStaticMapRenderer creates a renderer keyed with the given Maps API key.
func NewStaticMapRenderer(apiKey string, logger zerolog.Logger) *StaticMapRenderer {
	return &StaticMapRenderer{
		apiKey:  apiKey,
		iconURL: defaultMarkerIcon,
		zoom:    defaultZoom,
		logger:  logger,
	}
}

// Render builds the map URL centered on the record's coordinates.
func (s *StaticMapRenderer) Render(record *client.LocationRecord) error {
	center := fmt.Sprintf("%s,%s", record.Latitude.String(), record.Longitude.String())

	params := url.Values{}
	params.Set("center", center)
	params.Set("zoom", fmt.Sprintf("%d", s.zoom))
	params.Set("size", "640x640")
	params.Set("markers", fmt.Sprintf("icon:%s|%s", s.iconURL, center))
	params.Set("key", s.apiKey)

	s.logger.Info().
		Int64("id", record.ID).
		Str("title", "Last Known Location!").
		Str("map_url", staticMapEndpoint+"?"+params.Encode()).
		Msg("Marker updated")
	return nil
}
