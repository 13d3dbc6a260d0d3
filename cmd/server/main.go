// Command server runs the user-management HTTP API.
//
// @title           User Management API
// @version         1.0
// @description     User directory with name-based sessions.
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/selim-ammari/user-management/internal/api"
	"github.com/selim-ammari/user-management/internal/api/metrics"
	"github.com/selim-ammari/user-management/internal/core/service"
	"github.com/selim-ammari/user-management/internal/infrastructure/config"
	"github.com/selim-ammari/user-management/internal/infrastructure/db"
	"github.com/selim-ammari/user-management/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.LogPretty || cfg.IsDevelopment(),
		Service: "user-management",
	})

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	store, err := db.Open(ctx, cfg.Store, log)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Warn().Err(err).Msg("close store")
		}
	}()

	users := metrics.InstrumentRepository(
		service.NewUserRepository(store, log, service.WithStoreTimeout(cfg.Store.Timeout)),
	)
	if err := users.EnsureSuperadmin(ctx); err != nil {
		return fmt.Errorf("seed superadmin: %w", err)
	}

	sessions := metrics.InstrumentSessions(
		service.NewSessionService(users, cfg.Auth.JWTSecret, cfg.Auth.SessionTTL, log),
	)

	e := api.NewRouter(api.Deps{
		Users:    users,
		Sessions: sessions,
		Store:    store,
		Log:      log,
		HTTP:     cfg.HTTP,
		Auth:     cfg.Auth,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           e,
		ReadHeaderTimeout: 5 * time.Second,
	}

	useTLS := fileExists(cfg.HTTP.TLSCertFile) && fileExists(cfg.HTTP.TLSKeyFile)
	errCh := make(chan error, 1)
	go func() {
		log.Info().
			Str("addr", srv.Addr).
			Bool("tls", useTLS).
			Str("store", cfg.Store.Driver).
			Bool("admin_guard", cfg.Auth.AdminGuard).
			Msg("listening")

		var err error
		if useTLS {
			err = srv.ListenAndServeTLS(cfg.HTTP.TLSCertFile, cfg.HTTP.TLSKeyFile)
		} else {
			err = srv.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func fileExists(path string) bool {
	if path == "" {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
