package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"talent-hub/config"
	"talent-hub/models"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var ErrNoDatabaseURL = errors.New("DATABASE_URL environment variable not set")

// GormLogger routes gorm's output through zap at warn level and above.
func GormLogger(l *zap.Logger, slow time.Duration) logger.Interface {
	return logger.New(
		zap.NewStdLog(l.Named("gorm")),
		logger.Config{
			SlowThreshold:             slow,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
		},
	)
}

// Open connects to postgres, retrying with exponential backoff until
// cfg.ConnectTimeout elapses.
func Open(ctx context.Context, cfg config.Database, l *zap.Logger) (*gorm.DB, error) {
	if cfg.URL == "" {
		return nil, ErrNoDatabaseURL
	}

	gormCfg := &gorm.Config{
		Logger:         GormLogger(l, time.Duration(cfg.SlowQueryMS)*time.Millisecond),
		TranslateError: true,
	}

	b := backoff.NewExponentialBackOff(
		backoff.WithInitialInterval(500*time.Millisecond),
		backoff.WithMaxInterval(5*time.Second),
		backoff.WithMaxElapsedTime(time.Duration(cfg.ConnectTimeout)*time.Second),
	)

	var db *gorm.DB
	attempt := 0
	err := backoff.Retry(func() error {
		attempt++
		conn, err := gorm.Open(postgres.Open(cfg.URL), gormCfg)
		if err != nil {
			l.Warn("Database connection failed", zap.Int("attempt", attempt), zap.Error(err))
			return err
		}
		sqlDB, err := conn.DB()
		if err != nil {
			return backoff.Permanent(err)
		}
		if err := sqlDB.PingContext(ctx); err != nil {
			_ = sqlDB.Close()
			l.Warn("Database ping failed", zap.Int("attempt", attempt), zap.Error(err))
			return err
		}
		db = conn
		return nil
	}, backoff.WithContext(b, ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Minute)

	l.Info("Connected to database", zap.Int("attempts", attempt))
	return db, nil
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}
