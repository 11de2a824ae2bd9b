package main

import (
	"errors"
	"fmt"

	"github.com/simp-lee/logger"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/simp-lee/photostore/internal/app"
	"github.com/simp-lee/photostore/internal/config"
	"github.com/simp-lee/photostore/internal/seed"
)

type options struct {
	configPath string
	envFiles   []string
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "photostore",
		Short: "Photography storefront and CMS API",
		Long: `photostore serves the storefront and admin API: catalogue, galleries,
blog, customer accounts, checkout and payment webhooks.

Running without a subcommand starts the HTTP server.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(opts)
		},
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", "configs/config.yaml", "path to configuration file")
	root.PersistentFlags().StringSliceVar(&opts.envFiles, "env-file", []string{".env"}, "dotenv files loaded before the configuration")

	root.AddCommand(newServeCmd(opts), newMigrateCmd(opts), newSeedCmd(opts))
	return root
}

func newServeCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(opts)
		},
	}
}

func newMigrateCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withDatabase(opts, func(db *gorm.DB, log *logger.Logger) error {
				if err := config.Migrate(db); err != nil {
					return fmt.Errorf("migrate: %w", err)
				}
				log.Info("migration completed")
				return nil
			})
		},
	}
}

func newSeedCmd(opts *options) *cobra.Command {
	admin := seed.DefaultAdmin
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load roles, the super administrator and the starter catalogue",
		Long: `seed migrates the schema and inserts the admin and user roles, the super
administrator and the starter categories, events and FAQs. Existing rows are
left untouched, so the command can be run repeatedly.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withDatabase(opts, func(db *gorm.DB, log *logger.Logger) error {
				if err := config.Migrate(db); err != nil {
					return fmt.Errorf("migrate: %w", err)
				}
				_, err := seed.Run(cmd.Context(), db, admin, log.Logger)
				return err
			})
		},
	}
	cmd.Flags().StringVar(&admin.Name, "admin-name", admin.Name, "super administrator display name")
	cmd.Flags().StringVar(&admin.Email, "admin-email", admin.Email, "super administrator email")
	cmd.Flags().StringVar(&admin.Password, "admin-password", admin.Password, "super administrator password")
	return cmd
}

func loadConfig(opts *options) (*config.Config, error) {
	if err := config.LoadDotEnv(opts.envFiles...); err != nil {
		return nil, err
	}
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

func runServe(opts *options) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	a, err := app.New(cfg)
	if err != nil {
		return fmt.Errorf("create app: %w", err)
	}
	return a.Run()
}

// withDatabase opens the configured database for a one-off command and
// closes it, and the logger, when fn returns.
func withDatabase(opts *options, fn func(db *gorm.DB, log *logger.Logger) error) (err error) {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	log, err := config.SetupLogger(&cfg.Log)
	if err != nil {
		return fmt.Errorf("setup logger: %w", err)
	}
	defer func() {
		err = errors.Join(err, log.Close())
	}()

	db, err := config.SetupDatabase(&cfg.Database, log.Logger)
	if err != nil {
		return fmt.Errorf("setup database: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, sqlDB.Close())
	}()

	return fn(db, log)
}
