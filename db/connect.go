package db

import (
	"fmt"
	"log/slog"
	"strings"

	"motor-monitor/confs"
	"motor-monitor/entities"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect opens the configured store, sizes the pool and runs migrations.
func Connect(cfg confs.Config) (Database, error) {
	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case "sqlite":
		slog.Info("connecting to sqlite database", "path", cfg.DBPath)
		dialector = sqlite.Open(sqliteDSN(cfg.DBPath))
	default:
		dsn, err := postgresDSN(cfg)
		if err != nil {
			return nil, err
		}
		dialector = postgres.Open(dsn)
	}

	gdb, err := gorm.Open(dialector, &gorm.Config{
		Logger:      logger.Default.LogMode(logger.Warn),
		PrepareStmt: cfg.DBDriver != "sqlite",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	if cfg.DBDriver == "sqlite" {
		// every in-memory connection would otherwise get its own empty database
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetMaxOpenConns(100)
		sqlDB.SetConnMaxLifetime(0)
	}

	slog.Info("database connection established", "driver", cfg.DBDriver)

	if err := Migrate(gdb); err != nil {
		return nil, err
	}
	return &GormDatabase{DB: gdb}, nil
}

// Migrate creates or updates the schema.
func Migrate(gdb *gorm.DB) error {
	if err := gdb.AutoMigrate(&entities.User{}, &entities.Zone{}, &entities.Motor{}, &entities.SensorReading{}); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	slog.Debug("database migrations completed")
	return nil
}

func postgresDSN(cfg confs.Config) (string, error) {
	if cfg.DBURL != "" {
		dsn := cfg.DBURL
		if !strings.Contains(dsn, "sslmode=") {
			if strings.Contains(dsn, "?") {
				dsn += "&sslmode=require"
			} else {
				dsn += "?sslmode=require"
			}
		}
		slog.Info("connecting to postgres using DB_URL")
		return dsn, nil
	}

	if cfg.DBHost == "" || cfg.DBPort == "" || cfg.DBUser == "" || cfg.DBPassword == "" || cfg.DBName == "" {
		return "", fmt.Errorf("missing required database configuration: DB_URL or (DB_HOST, DB_PORT, DB_USER, DB_PASSWORD, DB_NAME)")
	}

	sslMode := "require"
	if isLoopback(cfg.DBHost) {
		// a postgres on the same machine (docker compose, local dev) usually
		// has no certificate, and the traffic never leaves the host
		sslMode = "disable"
	}
	slog.Info("connecting to postgres", "host", cfg.DBHost, "port", cfg.DBPort, "sslmode", sslMode)
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort, sslMode), nil
}

func isLoopback(host string) bool {
	switch host {
	case "localhost", "127.0.0.1", "::1":
		return true
	}
	return false
}

func sqliteDSN(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_pragma=foreign_keys(1)"
}
