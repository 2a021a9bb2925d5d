// Package database opens the hosted relational backend via GORM.
package database

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/driver/sqlserver"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/shashiranjanraj/storefront/config"
)

// DB is the process-wide connection, set by Connect.
var DB *gorm.DB

// ErrNoDSN is returned when DATABASE_DSN is unconfigured. The catalog
// lives in a hosted backend, so there is no local fallback: any command
// that touches the store treats this as fatal.
var ErrNoDSN = errors.New("database: DATABASE_DSN is not configured")

// Connect opens the configured backend and tunes the connection pool.
// Returns an error instead of exiting so the caller can shut down
// cleanly.
func Connect() error {
	driver := config.DatabaseDriver()
	dsn := config.DatabaseDSN()
	if dsn == "" {
		return ErrNoDSN
	}

	dialector, err := buildDialector(driver, dsn)
	if err != nil {
		return fmt.Errorf("database: build dialector: %w", err)
	}

	gormCfg := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent), // pkg/logger owns logging
	}

	DB, err = gorm.Open(dialector, gormCfg)
	if err != nil {
		return fmt.Errorf("database: open: %w", err)
	}

	sqlDB, err := DB.DB()
	if err != nil {
		return fmt.Errorf("database: get sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)
	sqlDB.SetConnMaxIdleTime(2 * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		return fmt.Errorf("database: ping: %w", err)
	}

	return nil
}

func buildDialector(driver, dsn string) (gorm.Dialector, error) {
	switch driver {
	case "postgres":
		return postgres.Open(dsn), nil
	case "mysql":
		return mysql.Open(dsn), nil
	case "sqlite":
		return sqlite.Open(dsn), nil
	case "sqlserver":
		return sqlserver.Open(dsn), nil
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q (supported: postgres, mysql, sqlite, sqlserver)", driver)
	}
}
