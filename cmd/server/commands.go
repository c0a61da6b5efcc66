package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/charlesng35/companydesk/internal/app"
	"github.com/charlesng35/companydesk/internal/services"
	"github.com/charlesng35/companydesk/pkg/logger"
)

func newRootCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:           "companydesk",
		Short:         "Company directory with a light/dark theme switcher",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), configPath)
		},
	}

	cmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to configuration directory or file")

	cmd.AddCommand(
		serveCmd(&configPath),
		migrateCmd(&configPath),
		seedCmd(&configPath),
	)
	return cmd
}

func serveCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), *configPath)
		},
	}
}

func migrateCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations and exit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := prepare(*configPath)
			if err != nil {
				return err
			}
			defer logger.Sync() //nolint:errcheck // best effort

			db, err := initialiseDatabase(cfg)
			if err != nil {
				return err
			}
			defer closeDatabase(db, log)

			log.Info("database migrated")
			return nil
		},
	}
}

func seedCmd(configPath *string) *cobra.Command {
	var file string

	c := &cobra.Command{
		Use:   "seed",
		Short: "Import companies from a YAML file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := prepare(*configPath)
			if err != nil {
				return err
			}
			defer logger.Sync() //nolint:errcheck // best effort

			result, err := seedCompanies(cmd.Context(), cfg, file, log)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "created %d companies, skipped %d existing\n", result.Created, result.Skipped)
			return nil
		},
	}

	c.Flags().StringVarP(&file, "file", "f", "", "YAML file listing companies (required)")
	_ = c.MarkFlagRequired("file")
	return c
}

// prepare loads configuration, repairs runtime defaults and configures logging.
func prepare(configPath string) (*app.Config, *zap.Logger, error) {
	cfg, err := loadApplicationConfig(configPath)
	if err != nil {
		return nil, nil, err
	}

	normalized, err := app.ApplyRuntimeDefaults(cfg)
	if err != nil {
		return nil, nil, err
	}

	if err := app.ConfigureLogging(cfg.Server.LogLevel, cfg.Server.LogFormat); err != nil {
		return nil, nil, fmt.Errorf("configure logging: %w", err)
	}

	log := logger.WithModule("bootstrap")
	for key := range normalized {
		log.Warn("configuration value replaced with default", zap.String("key", key))
	}
	return cfg, log, nil
}

func loadApplicationConfig(path string) (*app.Config, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return app.LoadConfig()
	}

	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("config path %q does not exist", path)
		}
		return nil, fmt.Errorf("stat config path: %w", err)
	}
	return app.LoadConfig(path)
}

func seedCompanies(ctx context.Context, cfg *app.Config, file string, log *zap.Logger) (services.ImportResult, error) {
	f, err := os.Open(file)
	if err != nil {
		return services.ImportResult{}, fmt.Errorf("open seed file: %w", err)
	}
	defer f.Close()

	inputs, err := services.LoadCompanySeed(f)
	if err != nil {
		return services.ImportResult{}, err
	}

	db, err := initialiseDatabase(cfg)
	if err != nil {
		return services.ImportResult{}, err
	}
	defer closeDatabase(db, log)

	svc, err := services.NewCompanyService(db)
	if err != nil {
		return services.ImportResult{}, err
	}

	result, err := svc.Import(ctx, inputs)
	if err != nil {
		return result, err
	}

	log.Info("companies seeded", zap.Int("created", result.Created), zap.Int("skipped", result.Skipped))
	return result, nil
}
