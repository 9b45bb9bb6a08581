package database

import (
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"source-manager-backend/internal/database/models"
)

type Options struct {
	LogLevel    logger.LogLevel
	AutoMigrate bool
}

// Initialize opens the SQLite index database and creates the schema from
// the GORM models. The index is derived data: the JSON shard files stay the
// system of record, and this database can be rebuilt from them at any time.
func Initialize(path string, opts *Options) (*gorm.DB, error) {
	if opts == nil {
		opts = &Options{AutoMigrate: true}
	}
	if opts.LogLevel == 0 {
		opts.LogLevel = logger.Error
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(opts.LogLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite index: %w", err)
	}

	if opts.AutoMigrate {
		if err := db.AutoMigrate(&models.SourceIndexEntry{}); err != nil {
			return nil, fmt.Errorf("auto-migrate: %w", err)
		}
	}

	return db, nil
}
