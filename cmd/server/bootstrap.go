package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/charlesng35/companydesk/internal/api"
	"github.com/charlesng35/companydesk/internal/app"
	"github.com/charlesng35/companydesk/internal/app/maintenance"
	"github.com/charlesng35/companydesk/internal/database"
	"github.com/charlesng35/companydesk/internal/health"
	"github.com/charlesng35/companydesk/internal/middleware"
	"github.com/charlesng35/companydesk/internal/services"
	"github.com/charlesng35/companydesk/internal/theme"
	"github.com/charlesng35/companydesk/pkg/logger"
)

const shutdownTimeout = 15 * time.Second

// runtimeStack bundles long-lived services used by the HTTP server.
type runtimeStack struct {
	DB        *gorm.DB
	Theme     *theme.Session
	Companies *services.CompanyService
	Stats     *maintenance.Runner
	RateStore middleware.RateStore
	Health    *health.Registry
	Router    *gin.Engine
}

// bootstrapRuntime initialises the database, services, background jobs and the HTTP router.
func bootstrapRuntime(ctx context.Context, cfg *app.Config, log *zap.Logger) (*runtimeStack, error) {
	stack := &runtimeStack{}
	var err error
	success := false

	defer func() {
		if !success {
			if shutdownErr := stack.Shutdown(context.Background()); shutdownErr != nil {
				log.Warn("partial start-up cleanup failed", zap.Error(shutdownErr))
			}
		}
	}()

	// enable gin debug mod
	if debug, _ := os.LookupEnv("GIN_DEBUG"); debug != "true" {
		gin.SetMode(gin.ReleaseMode)
	}

	stack.DB, err = initialiseDatabase(cfg)
	if err != nil {
		return nil, err
	}

	secret, generated, err := database.EnsureThemeCookieSecret(ctx, stack.DB, cfg.Theme.Cookie.Secret)
	if err != nil {
		return nil, fmt.Errorf("resolve theme cookie secret: %w", err)
	}
	if generated {
		log.Info("generated theme cookie secret", zap.String("setting", database.ThemeCookieSecretSetting))
	}
	cfg.Theme.Cookie.Secret = secret

	stack.Theme, err = theme.NewSession(cfg.Theme.SessionConfig())
	if err != nil {
		return nil, fmt.Errorf("initialise theme session: %w", err)
	}

	stack.Companies, err = services.NewCompanyService(stack.DB, services.WithPageSize(cfg.Companies.PageSize))
	if err != nil {
		return nil, fmt.Errorf("initialise company service: %w", err)
	}

	stack.Stats = maintenance.NewRunner(stack.Companies, maintenance.WithSchedule(cfg.Maintenance.StatsSchedule))
	if err := stack.Stats.Start(ctx); err != nil {
		return nil, fmt.Errorf("start maintenance jobs: %w", err)
	}

	stack.RateStore = middleware.NewMemoryRateStore()

	stack.Health = health.NewRegistry()
	stack.Health.Ready(health.Database(stack.DB, 0))
	stack.Health.Ready(health.Job("company_stats", stack.Stats, cfg.Monitoring.Health.StatsMaxAge))

	stack.Router, err = api.NewRouter(stack.DB, cfg, api.Dependencies{
		Theme:     stack.Theme,
		Companies: stack.Companies,
		RateStore: stack.RateStore,
		Health:    stack.Health,
	})
	if err != nil {
		return nil, fmt.Errorf("build api router: %w", err)
	}

	success = true
	return stack, nil
}

// Shutdown stops background jobs and releases resources, reporting every failure.
func (s *runtimeStack) Shutdown(ctx context.Context) error {
	if s == nil {
		return nil
	}
	if ctx == nil {
		ctx = context.Background()
	}

	var errs error

	if s.Stats != nil {
		select {
		case <-s.Stats.Stop().Done():
		case <-ctx.Done():
			errs = multierr.Append(errs, fmt.Errorf("stop maintenance jobs: %w", ctx.Err()))
		}
	}

	if s.DB != nil {
		errs = multierr.Append(errs, database.Close(s.DB))
		s.DB = nil
	}

	return errs
}

func runServe(ctx context.Context, configPath string) error {
	cfg, log, err := prepare(configPath)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck // best effort

	stack, err := bootstrapRuntime(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := stack.Shutdown(context.Background()); err != nil {
			log.Warn("shutdown cleanup failed", zap.Error(err))
		}
	}()

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           stack.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return serveUntilDone(ctx, server, log)
}

// serveUntilDone runs server until ctx is cancelled or the listener fails, then shuts it down gracefully.
func serveUntilDone(ctx context.Context, server *http.Server, log *zap.Logger) error {
	serverErr := make(chan error, 1)
	go func() {
		log.Info("server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received")
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("graceful shutdown: %w", err)
	}

	if err, ok := <-serverErr; ok && err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	log.Info("server stopped gracefully")
	return nil
}

func initialiseDatabase(cfg *app.Config) (*gorm.DB, error) {
	dbCfg := cfg.Database.DatabaseConnection()
	db, err := database.Open(dbCfg)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := database.Migrate(db); err != nil {
		_ = database.Close(db)
		return nil, fmt.Errorf("auto-migrate database: %w", err)
	}

	log := logger.WithModule("database")
	log.Info("database connected", zap.String("driver", strings.ToLower(strings.TrimSpace(dbCfg.Driver))))

	return db, nil
}

func closeDatabase(db *gorm.DB, log *zap.Logger) {
	if err := database.Close(db); err != nil {
		log.Warn("failed to close database", zap.Error(err))
	}
}
