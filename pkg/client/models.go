package client

import (
	"time"

	"github.com/shopspring/decimal"
)

// LocationRecord is the wire form of a stored location as returned by the
// location service. Coordinates are decoded into exact decimals so values
// survive a round trip without floating-point drift.
type LocationRecord struct {
	ID        int64           `json:"id"`
	Latitude  decimal.Decimal `json:"latitude"`
	Longitude decimal.Decimal `json:"longitude"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// apiError is the error body returned by the service on failures.
type apiError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
