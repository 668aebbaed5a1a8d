package db

import (
	"fmt"  // Error wrapping
	"time" // Slow query threshold

	"booking_system/internal/config" // Application configuration

	"github.com/sirupsen/logrus" // Logrus for structured logging
	"gorm.io/driver/mysql"       // MySQL driver for GORM
	"gorm.io/driver/postgres"    // Postgres driver for GORM
	"gorm.io/gorm"               // GORM ORM library
	"gorm.io/gorm/logger"        // GORM query logger
)

// Dialector picks the GORM driver for the configured database
func Dialector(cfg *config.Config) (gorm.Dialector, error) {
	switch cfg.DBDriver {
	case "mysql":
		return mysql.Open(cfg.DSN()), nil
	case "postgres":
		return postgres.Open(cfg.DSN()), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.DBDriver)
	}
}

// Open connects to the configured database
func Open(cfg *config.Config) (*gorm.DB, error) {
	dialector, err := Dialector(cfg)
	if err != nil {
		return nil, err
	}
	return OpenWith(dialector, cfg.IsProd)
}

// OpenWith opens a connection using an explicit dialector.
// Driver errors are translated so duplicate keys surface as gorm.ErrDuplicatedKey.
// Query logs go through logrus; lookups that find nothing are not logged.
func OpenWith(dialector gorm.Dialector, quiet bool) (*gorm.DB, error) {
	level := logger.Warn
	if quiet {
		level = logger.Error
	}
	gdb, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger: logger.New(logrus.StandardLogger(), logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  level,
			IgnoreRecordNotFoundError: true, // Existence pre-checks miss on purpose
		}),
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return gdb, nil
}
