package store

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"github.com/waypost/waypost/internal/models"
)

// ErrNoLocation means the store holds no records yet. Callers treat it as an
// empty state, not a failure.
var ErrNoLocation = errors.New("no location found")

// LocationStore is the persistence boundary for the append-only location
// history. The location service is its only writer.
type LocationStore interface {
	// CreateLocation inserts a new immutable record and returns it with
	// its server-assigned id and timestamps.
	CreateLocation(ctx context.Context, latitude, longitude decimal.Decimal) (*models.Location, error)

	// LatestLocation returns the newest record, ties on created_at broken
	// by the higher id. Returns ErrNoLocation when the store is empty.
	LatestLocation(ctx context.Context) (*models.Location, error)
}
