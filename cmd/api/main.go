// Command api serves the Sky Air Race records API.
//
// @title Sky Air Race Records API
// @version 1.0
// @description Course rankings, player pages and challenge achievers computed from the published records snapshot.
// @BasePath /api/v1
// @securityDefinitions.apikey AdminToken
// @in header
// @name X-Admin-Token
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

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	_ "github.com/skyairrace/records-api/docs"
	"github.com/skyairrace/records-api/internal/cache"
	"github.com/skyairrace/records-api/internal/config"
	"github.com/skyairrace/records-api/internal/handlers"
	"github.com/skyairrace/records-api/internal/snapshot"
	"github.com/skyairrace/records-api/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	logger, err := newLogger(cfg.Env)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("API stopped", zap.Error(err))
	}
}

func newLogger(env string) (*zap.Logger, error) {
	if env == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

func run(cfg *config.Config, logger *zap.Logger) error {
	log := logger.Sugar()
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Snapshot sources
	var pool *pgxpool.Pool
	var records, challenge snapshot.Source
	switch cfg.SnapshotSource {
	case config.SourceHTTP:
		records = snapshot.NewHTTPSource(cfg.SnapshotURL, cfg.FetchTimeout)
		challenge = snapshot.NewHTTPSource(cfg.ChallengeURL, cfg.FetchTimeout)
	case config.SourceFile:
		records = snapshot.NewFileSource(cfg.SnapshotFile)
		challenge = snapshot.NewFileSource(cfg.ChallengeFile)
	case config.SourcePostgres:
		var err error
		pool, err = pgxpool.New(ctx, cfg.PostgresURL)
		if err != nil {
			return fmt.Errorf("connect postgres: %w", err)
		}
		defer pool.Close()
		records = snapshot.NewPostgresSource(pool, snapshot.DocumentRecords)
		challenge = snapshot.NewPostgresSource(pool, snapshot.DocumentChallenge)
	}

	// Response cache
	var viewCache *cache.Cache
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("parse REDIS_URL: %w", err)
		}
		rdb := redis.NewClient(opts)
		defer rdb.Close()

		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			// The cache is optional; requests fall through to computation.
			log.Warnw("Redis unavailable at startup", "error", err)
		}
		cancel()
		viewCache = cache.New(rdb, cfg.CacheTTL, logger)
	} else {
		viewCache = cache.New(nil, cfg.CacheTTL, logger)
	}

	store := snapshot.NewStore(snapshot.StoreConfig{
		Records:   records,
		Challenge: challenge,
		Location:  cfg.Location(),
		Logger:    logger,
	})

	// A failed first load still starts the server; pages show the
	// empty state until a refresh succeeds.
	loadCtx, cancel := context.WithTimeout(ctx, cfg.FetchTimeout)
	if _, err := store.Reload(loadCtx); err != nil {
		log.Errorw("Initial snapshot load failed", "error", err)
	}
	cancel()

	refresher := worker.NewRefresher(worker.RefresherConfig{
		Reloader: store,
		Interval: cfg.RefreshInterval,
		Timeout:  cfg.FetchTimeout,
		Logger:   logger,
	})
	refresher.Start(ctx)
	defer refresher.Stop()

	h := handlers.New(handlers.Config{
		Snapshot:   store,
		Reloader:   store,
		Cache:      viewCache,
		Logger:     logger,
		AdminToken: cfg.AdminToken,
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      h.Routes(handlers.RouterConfig{AllowedOrigins: cfg.AllowedOrigins}),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 45 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infow("API listening",
			"addr", srv.Addr,
			"env", cfg.Env,
			"source", cfg.SnapshotSource,
			"cache", viewCache.Enabled(),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
	case <-ctx.Done():
	}

	log.Infow("Shutting down")
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancelShutdown()
	return srv.Shutdown(shutdownCtx)
}
