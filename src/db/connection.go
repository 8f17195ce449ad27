package db

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/avast/retry-go/v4"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/analisys/biblioteca-circulacion/src/models"
)

// Connect opens the Postgres database, retrying while it comes up.
func Connect(ctx context.Context, dsn string, attempts uint) (*gorm.DB, error) {
	if attempts == 0 {
		attempts = 1
	}

	var conn *gorm.DB
	err := retry.Do(
		func() error {
			db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
				Logger: logger.Default.LogMode(logger.Warn),
			})
			if err != nil {
				return err
			}
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			if err := sqlDB.PingContext(ctx); err != nil {
				return err
			}
			conn = db
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(attempts),
		retry.Delay(time.Second),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			slog.Warn("database not ready, retrying", "attempt", n+1, "error", err)
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	slog.Info("circulacion DB connected successfully")
	return conn, nil
}

// Migrate creates or updates the tables this service owns.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.Prestamo{}, &models.UserModel{}); err != nil {
		return fmt.Errorf("auto-migration failed: %w", err)
	}
	return nil
}
