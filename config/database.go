package config

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/andrewpaige1/fliply-api/models"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Open connects to the database and migrates the schema.
func Open(driver, dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case DriverPostgres:
		if dsn == "" {
			return nil, fmt.Errorf("DB_URL is required for the %s driver", driver)
		}
		dialector = postgres.Open(dsn)
	case DriverSQLite:
		if dsn == "" {
			dsn = "fliply.db"
		}
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	if driver == DriverSQLite {
		// SQLite allows one writer; a single connection also keeps
		// in-memory databases shared across queries.
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}

	if err := db.AutoMigrate(&models.FlashcardSet{}, &models.User{}); err != nil {
		return nil, fmt.Errorf("failed to auto migrate database: %w", err)
	}
	return db, nil
}

// Connect opens the database described by cfg.
func Connect(cfg *Config) (*gorm.DB, error) {
	return Open(cfg.DBDriver, cfg.DBURL)
}
