package location

import "github.com/shopspring/decimal"

// Position is an ephemeral pair of coordinates in decimal degrees. It is
// produced by a Provider and consumed immediately; it is never persisted
// as-is.
type Position struct {
	Latitude  decimal.Decimal
	Longitude decimal.Decimal
}

// PositionFromFloats builds a Position from float64 coordinates as reported
// by GPS hardware or geolocation APIs.
func PositionFromFloats(lat, lng float64) Position {
	return Position{
		Latitude:  decimal.NewFromFloat(lat),
		Longitude: decimal.NewFromFloat(lng),
	}
}
