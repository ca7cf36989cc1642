package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/BradenHooton/parliament/internal/app"
	"github.com/BradenHooton/parliament/internal/auth"
	"github.com/BradenHooton/parliament/internal/background"
	"github.com/BradenHooton/parliament/internal/config"
	"github.com/BradenHooton/parliament/internal/seed"
	"github.com/BradenHooton/parliament/internal/services"
	pkgauth "github.com/BradenHooton/parliament/pkg/auth"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	logger = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: parseLevel(cfg.Server.LogLevel)}))
	slog.SetDefault(logger)
	logger.Info("configuration loaded", slog.String("env", cfg.Server.Env), slog.String("storage", cfg.Database.Driver))

	// Initialize storage
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	storage, err := app.OpenStorage(startupCtx, &cfg.Database, logger)
	if err != nil {
		startupCancel()
		logger.Error("failed to open storage", slog.Any("error", err))
		os.Exit(1)
	}
	defer storage.Close()

	hasher := pkgauth.NewBcryptHasher(cfg.Auth.BcryptCost)

	if cfg.Seed.DemoData {
		if err := seedDemoData(startupCtx, storage, hasher, cfg.Seed.AccountPassword, logger); err != nil {
			logger.Error("failed to seed demo data", slog.Any("error", err))
		}
	}

	notifier, err := newNotifier(startupCtx, cfg, logger)
	if err != nil {
		startupCancel()
		logger.Error("failed to initialize notifier", slog.Any("error", err))
		os.Exit(1)
	}

	timingDelay := auth.NewTimingDelay(auth.TimingConfig{
		BaseDelay:   cfg.Auth.LoginDelayBase,
		RandomDelay: cfg.Auth.LoginDelayRandom,
	})

	application := app.New(cfg, storage, app.Deps{
		Hasher:   hasher,
		Notifier: notifier,
		Timing:   timingDelay,
	}, logger)

	// Bootstrap the admin account if configured
	if cfg.Auth.AdminPassword != "" {
		if _, err := application.Provisioning.EnsureAdmin(startupCtx, cfg.Auth.AdminPassword); err != nil {
			logger.Error("failed to ensure admin account", slog.Any("error", err))
		}
	} else {
		logger.Info("no ADMIN_PASSWORD set, skipping admin account creation")
	}
	startupCancel()

	cleanupManager := background.NewCleanupManager(application.Guard, logger, cfg.Lockout.CleanupInterval)

	// Create server
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      application.Router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start cleanup task
	cleanupCtx, cleanupCancel := context.WithCancel(context.Background())
	defer cleanupCancel()

	go cleanupManager.Start(cleanupCtx)

	// Start server
	go func() {
		logger.Info("starting server", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	logger.Info("shutdown signal received")

	cleanupCancel()
	cleanupManager.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	logger.Info("server stopped gracefully")
}

func seedDemoData(ctx context.Context, storage *app.Storage, hasher services.PasswordHasher, password string, logger *slog.Logger) error {
	fixture, err := seed.Demo()
	if err != nil {
		return err
	}
	_, err = fixture.Apply(ctx, storage.SeedRepositories(), hasher, seed.Options{AccountPassword: password}, logger)
	return err
}

func newNotifier(ctx context.Context, cfg *config.Config, logger *slog.Logger) (services.Notifier, error) {
	if cfg.Notify.Provider == config.NotifySES {
		return services.NewSESNotifier(ctx, cfg.Notify.AWSRegion, cfg.Notify.FromAddress, logger)
	}
	return services.NewLogNotifier(logger), nil
}

func parseLevel(raw string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToLower(raw))); err != nil {
		return slog.LevelInfo
	}
	return level
}
