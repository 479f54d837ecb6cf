package location

import (
	"context"

	"github.com/shopspring/decimal"
)

// StaticProvider always reports the same position. Useful for development
// and for hosts whose position is configured rather than sensed.
type StaticProvider struct {
	pos Position
}

// NewStaticProvider parses the configured coordinates into a fixed position.
func NewStaticProvider(latitude, longitude string) (*StaticProvider, error) {
	lat, err := decimal.NewFromString(latitude)
	if err != nil {
		return nil, &SampleError{Reason: "invalid static latitude", Err: err}
	}
	lng, err := decimal.NewFromString(longitude)
	if err != nil {
		return nil, &SampleError{Reason: "invalid static longitude", Err: err}
	}

	return &StaticProvider{pos: Position{Latitude: lat, Longitude: lng}}, nil
}

// Sample returns the fixed position.
func (s *StaticProvider) Sample(_ context.Context) (Position, error) {
	return s.pos, nil
}

// Close is a no-op.
func (s *StaticProvider) Close() error {
	return nil
}
