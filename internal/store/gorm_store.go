package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/waypost/waypost/internal/models"
	"gorm.io/gorm"
)

// GormStore implements LocationStore over GORM (Postgres in production,
// SQLite in tests and DSN-less development).
type GormStore struct {
	db     *gorm.DB
	logger zerolog.Logger
}

// NewGormStore wraps an open GORM connection.
func NewGormStore(db *gorm.DB, logger zerolog.Logger) *GormStore {
	return &GormStore{
		db:     db,
		logger: logger,
	}
}

// CreateLocation inserts a new record. The database assigns id and
// timestamps; the record is never touched again after this insert.
func (s *GormStore) CreateLocation(ctx context.Context, latitude, longitude decimal.Decimal) (*models.Location, error) {
	record := &models.Location{
		Latitude:  latitude,
		Longitude: longitude,
	}

	if err := s.db.WithContext(ctx).Create(record).Error; err != nil {
		return nil, fmt.Errorf("failed to insert location: %w", err)
	}

	s.logger.Debug().
		Int64("id", record.ID).
		Str("latitude", latitude.String()).
		Str("longitude", longitude.String()).
		Msg("Inserted location record")
	return record, nil
}

// LatestLocation fetches the single newest record. Recency is decided by
// created_at with id as tie-breaker, since ids are monotonic and assigned at
// the same instant.
func (s *GormStore) LatestLocation(ctx context.Context) (*models.Location, error) {
	var record models.Location
	err := s.db.WithContext(ctx).
		Order("created_at DESC, id DESC").
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoLocation
		}
		return nil, fmt.Errorf("failed to query latest location: %w", err)
	}

	return &record, nil
}
