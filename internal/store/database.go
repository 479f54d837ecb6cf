package store

import (
	"fmt"

	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog"
	"github.com/waypost/waypost/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Connect opens the pooled serving connection. With an empty DSN it falls
// back to a shared in-memory SQLite database so the service can run without
// Postgres in development.
func Connect(pooledDSN string, logger zerolog.Logger) (*gorm.DB, error) {
	if pooledDSN == "" {
		db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
			Logger: gormlogger.Default.LogMode(gormlogger.Silent),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to open in-memory sqlite: %w", err)
		}
		logger.Warn().Msg("No Postgres DSN configured, using in-memory SQLite")
		return db, nil
	}

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  pooledDSN,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access sql interface: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to validate connection: %w", err)
	}
	sqlDB.SetMaxOpenConns(10)

	logger.Info().Msg("Connected to Postgres")
	return db, nil
}

// Migrate runs schema migration. When a direct (non-pooled) DSN is supplied,
// migration runs over its own short-lived connection and leaves the pooled
// connection untouched; otherwise it migrates over the serving connection.
func Migrate(db *gorm.DB, directDSN string, logger zerolog.Logger) error {
	target := db

	if directDSN != "" {
		direct, err := gorm.Open(postgres.New(postgres.Config{
			DSN:                  directDSN,
			PreferSimpleProtocol: true,
		}), &gorm.Config{
			Logger: gormlogger.Default.LogMode(gormlogger.Silent),
		})
		if err != nil {
			return fmt.Errorf("failed to open direct connection for migration: %w", err)
		}
		defer func() {
			if sqlDB, err := direct.DB(); err == nil {
				sqlDB.Close()
			}
		}()
		target = direct
	}

	logger.Info().Msg("Migrating schema")
	if err := target.AutoMigrate(models.DatabaseModels...); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}

	logger.Info().Msg("Database setup complete")
	return nil
}
