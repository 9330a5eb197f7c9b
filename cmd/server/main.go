// Command gsp-server starts the Godslighthouse sync HTTP server.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/godslighthouse/gsp-server/internal/config"
	"github.com/godslighthouse/gsp-server/internal/migrate"
	"github.com/godslighthouse/gsp-server/internal/repository/postgres"
	httpserver "github.com/godslighthouse/gsp-server/internal/server/http"
	"github.com/godslighthouse/gsp-server/internal/service"
	"github.com/godslighthouse/gsp-server/internal/token"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

// main loads configuration, runs migrations, and serves the HTTP API until
// the process receives SIGINT/SIGTERM.
func main() {
	logger, _ := zap.NewProduction()
	defer func() { _ = logger.Sync() }()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}
	logger.Info("starting",
		zap.String("version", version),
		zap.String("buildDate", buildDate),
		zap.String("addr", cfg.Addr),
		zap.String("schema", cfg.Schema()),
	)
	if cfg.SecretKey == config.DefaultSecretKey {
		logger.Warn("SECRET_KEY not set, using embedded default signing key")
	}

	// Context with OS signals
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := migrate.Up(ctx, cfg.DatabaseDSN, cfg.Schema()); err != nil {
		logger.Fatal("migrate up", zap.Error(err))
	}

	// DB pool pinned to the configured namespace
	db, err := postgres.New(ctx, cfg.DatabaseDSN, cfg.Schema())
	if err != nil {
		logger.Fatal("postgres.New", zap.Error(err))
	}
	defer db.Close()

	// Repositories
	userRepo := postgres.NewUserRepo(db)
	progressRepo := postgres.NewProgressRepo(db)
	notesRepo := postgres.NewNotesRepo(db)
	accountRepo := postgres.NewAccountRepo(db)

	// Services
	tokens := token.New([]byte(cfg.SecretKey), cfg.AccessTokenTTL)
	authSvc := service.NewAuthService(userRepo, accountRepo, tokens)
	syncSvc := service.NewSyncService(progressRepo, notesRepo)
	statsSvc := service.NewStatsService(progressRepo, notesRepo)

	app := httpserver.New(authSvc, syncSvc, statsSvc, tokens, logger, cfg.CORSOrigins)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           app.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", cfg.Addr))
		errCh <- srv.ListenAndServe()
	}()

	// Wait for stop
	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			_ = srv.Close()
		}
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", zap.Error(err))
			os.Exit(1)
		}
	}

	logger.Info("shutdown complete")
}
