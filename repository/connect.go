package repository

import (
	"log/slog"
	"sync"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ConnectOptions carries the database connection parameters
type ConnectOptions struct {
	URL          string
	LogLevel     string
	MaxIdleConns int
	MaxOpenConns int
}

var (
	connectOnce sync.Once
	connectedDB *gorm.DB
	connectErr  error
)

// Connect lazily establishes the shared database handle. It is idempotent:
// concurrent callers before the first connection resolves all receive the
// same eventual handle, and no duplicate connection setup ever runs.
func Connect(opts ConnectOptions) (*gorm.DB, error) {
	connectOnce.Do(func() {
		connectedDB, connectErr = open(opts)
	})
	return connectedDB, connectErr
}

func open(opts ConnectOptions) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(opts.URL), &gorm.Config{
		Logger: logger.Default.LogMode(gormLogLevel(opts.LogLevel)),
	})
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		slog.Error("Failed to get underlying sql.DB", "error", err)
		return nil, err
	}
	if opts.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(opts.MaxIdleConns)
	}
	if opts.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(opts.MaxOpenConns)
	}

	slog.Info("Connected to database")
	return db, nil
}

func gormLogLevel(level string) logger.LogLevel {
	switch level {
	case "info":
		return logger.Info
	case "warn":
		return logger.Warn
	case "error":
		return logger.Error
	default:
		return logger.Silent
	}
}
