package location

import (
	"context"

	"googlemaps.github.io/maps"
)

// GoogleGeolocationProvider resolves the device position through the Google
// Maps Geolocation API, using nearby WiFi access points and cell towers when
// the host can enumerate them and falling back to IP-based lookup otherwise.
type GoogleGeolocationProvider struct {
	client     *maps.Client
	modemIndex int
}

// NewGoogleGeolocationProvider creates a provider backed by the Geolocation
// API using the given key.
func NewGoogleGeolocationProvider(apiKey string) (*GoogleGeolocationProvider, error) {
	c, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}

	return &GoogleGeolocationProvider{
		client:     c,
		modemIndex: 0,
	}, nil
}

// Sample performs a single geolocation request bounded by ctx.
func (g *GoogleGeolocationProvider) Sample(ctx context.Context) (Position, error) {
	// Radio scans are best-effort: a host without nmcli/mmcli still
	// geolocates by IP.
	wifiAPs, err := scanWiFiAccessPoints(ctx)
	if err != nil {
		wifiAPs = nil
	}
	cellTowers, err := scanCellTowers(ctx, g.modemIndex)
	if err != nil {
		cellTowers = nil
	}

	req := &maps.GeolocationRequest{
		ConsiderIP:       true,
		WiFiAccessPoints: wifiAPs,
		CellTowers:       cellTowers,
	}

	resp, err := g.client.Geolocate(ctx, req)
	if err != nil {
		if ctx.Err() != nil {
			return Position{}, &SampleError{Reason: "geolocation request timed out", Err: ctx.Err()}
		}
		return Position{}, &SampleError{Reason: "geolocation request failed", Err: err}
	}

	return PositionFromFloats(resp.Location.Lat, resp.Location.Lng), nil
}

// Close is a no-op; the maps client holds no connection state.
func (g *GoogleGeolocationProvider) Close() error {
	return nil
}
