package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"talent-hub/auth"
	"talent-hub/config"
	"talent-hub/database"
	"talent-hub/logging"
	"talent-hub/server"
	"talent-hub/services"
	"talent-hub/utils"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := &cli.Command{
		Name:  "talent-hub",
		Usage: "Talent hub API server",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Value:   "config.toml",
				Usage:   "path to an optional TOML config file",
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Run the HTTP API",
				Action: serve,
			},
			{
				Name:  "migrate",
				Usage: "Create or update the database schema",
				Action: func(ctx context.Context, c *cli.Command) error {
					return withDatabase(ctx, c, func(db *gorm.DB, logger *zap.Logger) error {
						if err := database.Migrate(db); err != nil {
							return err
						}
						logger.Info("Database migrated")
						return nil
					})
				},
			},
			{
				Name:  "seed",
				Usage: "Replace all data with the demo data set",
				Action: func(ctx context.Context, c *cli.Command) error {
					return withDatabase(ctx, c, func(db *gorm.DB, logger *zap.Logger) error {
						if err := database.Migrate(db); err != nil {
							return err
						}
						return services.Seed(ctx, db, logger)
					})
				},
			},
		},
		Action: serve,
	}

	if err := app.Run(ctx, os.Args); err != nil {
		log.Printf("Error: %v", err)
		os.Exit(1)
	}
}

func setup(c *cli.Command) (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, nil, err
	}
	logger, err := logging.New(cfg.Log.Level)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}

func withDatabase(ctx context.Context, c *cli.Command, fn func(*gorm.DB, *zap.Logger) error) error {
	cfg, logger, err := setup(c)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	db, err := database.Open(ctx, cfg.Database, logger)
	if err != nil {
		return err
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}
	return fn(db, logger)
}

// newStore picks R2 when its credentials are set, otherwise the local upload dir.
func newStore(ctx context.Context, cfg config.Storage, logger *zap.Logger) (utils.Uploader, error) {
	opts := utils.R2Options{
		AccountID:       cfg.CloudflareID,
		AccessKeyID:     cfg.AccessKeyID,
		AccessKeySecret: cfg.AccessKeySecret,
		Bucket:          cfg.Bucket,
		CDNBaseURL:      cfg.CDNBaseURL,
	}
	if opts.Configured() {
		store, err := utils.NewR2Store(ctx, opts)
		if err != nil {
			return nil, err
		}
		logger.Info("Uploads go to R2", zap.String("bucket", opts.Bucket))
		return store, nil
	}

	store, err := utils.NewLocalStore(cfg.UploadDir, server.UploadsPrefix)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare upload dir: %w", err)
	}
	logger.Info("Uploads go to local disk", zap.String("dir", cfg.UploadDir))
	return store, nil
}

func serve(ctx context.Context, c *cli.Command) error {
	cfg, logger, err := setup(c)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	if cfg.Auth.IsInsecure() {
		logger.Warn("JWT secret is not set, falling back to an insecure default")
	}

	db, err := database.Open(ctx, cfg.Database, logger)
	if err != nil {
		return err
	}
	if err := database.Migrate(db); err != nil {
		return err
	}

	store, err := newStore(ctx, cfg.Storage, logger)
	if err != nil {
		return err
	}

	app := server.New(cfg.Server, server.Deps{
		DB:     db,
		Tokens: auth.NewIssuer(cfg.Auth.JWTSecret),
		Store:  store,
		Log:    logger,
	})

	if interval := cfg.Jobs.BountyExpiryInterval; interval > 0 {
		sched, err := services.NewBountyService(db).StartExpiryScheduler(ctx, interval, logger)
		if err != nil {
			return err
		}
		defer func() { _ = sched.Shutdown() }()
		logger.Info("Bounty expiry job running", zap.Duration("interval", interval))
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- app.Listen(fmt.Sprintf(":%d", cfg.Server.Port))
	}()
	logger.Info("Server running",
		zap.Int("port", cfg.Server.Port),
		zap.String("origins", cfg.Server.Origins()),
	)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down server...")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	return nil
}
