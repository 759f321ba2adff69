// Package worker runs the background snapshot refresh. The external data
// pipeline regenerates the published JSON periodically; the refresher
// re-reads it on an interval so the API follows without a restart.
package worker

import (
	"context"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"

	"github.com/skyairrace/records-api/internal/logic"
)

var (
	refreshRuns = promauto.NewCounter(prometheus.CounterOpts{
		Name: "skyair_refresh_runs_total",
		Help: "Total number of scheduled snapshot refreshes",
	})

	refreshFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "skyair_refresh_failures_total",
		Help: "Total number of scheduled snapshot refreshes that failed",
	})
)

// RefresherConfig configures the refresher
type RefresherConfig struct {
	Reloader logic.Reloader
	Interval time.Duration
	Timeout  time.Duration
	Logger   *zap.Logger
}

// Refresher reloads the snapshot on a fixed interval
type Refresher struct {
	config RefresherConfig
	wg     sync.WaitGroup
	ctx    context.Context
	cancel context.CancelFunc
	logger *zap.SugaredLogger
}

// NewRefresher creates a refresher. A non-positive interval defaults to five minutes.
func NewRefresher(cfg RefresherConfig) *Refresher {
	if cfg.Interval <= 0 {
		cfg.Interval = 5 * time.Minute
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return &Refresher{
		config: cfg,
		logger: cfg.Logger.Sugar(),
	}
}

// Start launches the refresh loop
func (r *Refresher) Start(ctx context.Context) {
	r.ctx, r.cancel = context.WithCancel(ctx)

	r.wg.Add(1)
	go r.run()

	r.logger.Infow("Snapshot refresher started", "interval", r.config.Interval)
}

// Stop ends the loop and waits for an in-flight refresh to finish
func (r *Refresher) Stop() {
	if r.cancel == nil {
		return
	}
	r.logger.Info("Stopping snapshot refresher...")
	r.cancel()
	r.wg.Wait()
	r.logger.Info("Snapshot refresher stopped")
}

func (r *Refresher) run() {
	defer r.wg.Done()

	ticker := time.NewTicker(r.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.refresh()
		case <-r.ctx.Done():
			return
		}
	}
}

func (r *Refresher) refresh() {
	refreshRuns.Inc()

	ctx, cancel := context.WithTimeout(r.ctx, r.config.Timeout)
	defer cancel()

	if _, err := r.config.Reloader.Reload(ctx); err != nil {
		refreshFailures.Inc()
		r.logger.Warnw("Scheduled snapshot refresh failed, keeping current snapshot", "error", err)
	}
}
