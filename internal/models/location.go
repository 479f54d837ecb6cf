package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Location is one immutable row of the append-only position history.
// Updating the tracked entity's location always inserts a new row; nothing
// ever mutates an existing one, so UpdatedAt equals CreatedAt for every
// record.
//
// Coordinates are stored as exact decimals. Column precision follows the
// usual geographic bounds: latitude in [-90, 90] with 8 fractional digits,
// longitude in [-180, 180] with 8 fractional digits.
type Location struct {
	ID        int64           `json:"id" gorm:"primaryKey;autoIncrement"`
	Latitude  decimal.Decimal `json:"latitude" gorm:"type:decimal(10,8);not null"`
	Longitude decimal.Decimal `json:"longitude" gorm:"type:decimal(11,8);not null"`
	CreatedAt time.Time       `json:"createdAt" gorm:"index:idx_locations_created_at"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// DatabaseModels lists every struct migrated into the schema.
var DatabaseModels = []interface{}{
	&Location{},
}
