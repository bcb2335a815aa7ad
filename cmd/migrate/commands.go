package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"automarket/internal/core/config"
	"automarket/internal/core/database"
	"automarket/internal/core/logger"
	"automarket/internal/feature/user"
)

type options struct {
	configPath string
	adminEmail string
	yes        bool
}

func newRootCmd() *cobra.Command {
	o := &options{}
	root := &cobra.Command{
		Use:   "migrate",
		Short: "Provision or drop the AutoMarket schema",
		Long: `Provision or drop the AutoMarket schema.

Subcommands:
  up    - create tables, indexes and updated_at triggers (idempotent)
  drop  - drop every table in dependency order`,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&o.configPath, "config", "", "config file (defaults to $CONFIG_PATH or ./configs/config.local.yaml)")

	up := &cobra.Command{
		Use:   "up",
		Short: "Create or update tables",
		Example: `  migrate up
  migrate up --admin-email owner@example.com`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withDB(cmd.Context(), o, func(ctx context.Context, db *gorm.DB, l *zap.Logger) error {
				if err := database.Provision(ctx, db, l); err != nil {
					return err
				}
				if o.adminEmail == "" {
					return nil
				}
				email := user.NormalizeEmail(o.adminEmail)
				if err := database.PromoteAdmin(ctx, db, email); err != nil {
					return fmt.Errorf("promote admin: %w", err)
				}
				l.Info("admin promoted", zap.String("email", email))
				return nil
			})
		},
	}
	up.Flags().StringVar(&o.adminEmail, "admin-email", "", "promote an existing account to admin")

	drop := &cobra.Command{
		Use:   "drop",
		Short: "Drop all tables (destroys data)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !o.yes {
				return errors.New("refusing to drop tables without --yes")
			}
			return withDB(cmd.Context(), o, database.Drop)
		},
	}
	drop.Flags().BoolVar(&o.yes, "yes", false, "confirm dropping every table")

	root.AddCommand(up, drop)
	return root
}

func withDB(ctx context.Context, o *options, fn func(context.Context, *gorm.DB, *zap.Logger) error) error {
	_ = godotenv.Load()
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := config.Read(o.configPath)
	if err != nil {
		return err
	}
	l, cleanup := logger.New(cfg.Log)
	defer cleanup()

	db, err := database.NewGorm(database.Opts{
		Driver:             cfg.DB.Driver,
		DSN:                cfg.DB.DSN,
		Username:           cfg.DB.Username,
		Password:           cfg.DB.Password,
		MaxOpenConns:       2,
		MaxIdleConns:       1,
		ConnMaxLifetimeMin: cfg.DB.ConnMaxLifetimeMin,
		LogLevel:           cfg.DB.LogLevel,
		Logger:             l,
	})
	if err != nil {
		return fmt.Errorf("db open: %w", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}
	return fn(ctx, db, l)
}
