package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/jawadbajjou312-cpu/2026-STARS-Dashboard/internal/adapters/http/api"
	"github.com/jawadbajjou312-cpu/2026-STARS-Dashboard/internal/adapters/http/site"
	"github.com/jawadbajjou312-cpu/2026-STARS-Dashboard/internal/adapters/http/swagger"
	service "github.com/jawadbajjou312-cpu/2026-STARS-Dashboard/internal/app"
	"github.com/jawadbajjou312-cpu/2026-STARS-Dashboard/internal/config"
	"github.com/jawadbajjou312-cpu/2026-STARS-Dashboard/internal/domain/plan"
	"github.com/jawadbajjou312-cpu/2026-STARS-Dashboard/internal/domain/query"
	"github.com/jawadbajjou312-cpu/2026-STARS-Dashboard/pkg/logger"
	"github.com/jawadbajjou312-cpu/2026-STARS-Dashboard/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// HTTP server timeout constants.
const (
	readTimeout               = 10 * time.Second
	writeTimeout              = 10 * time.Second
	idleTimeout               = 60 * time.Second
	readHeaderTimeout         = 5 * time.Second
	shutdownTimeout           = 30 * time.Second
	nanosecondsPerMillisecond = 1e6
)

// latencyBucketsMs sizes the latency histograms for in-memory queries,
// which finish well under a millisecond.
var latencyBucketsMs = []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 25, 50, 100, 250} //nolint:gochecknoglobals // fixed bucket layout

func main() {
	// Our own system gauges replace the default Go collectors.
	prometheus.Unregister(collectors.NewGoCollector())
	prometheus.Unregister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		logger.Get().Error(ctx, "failed to load config", logger.Error(err))
		os.Exit(1)
	}
	if err := applyLogging(cfg); err != nil {
		logger.Get().Error(ctx, "failed to configure logging", logger.Error(err))
		os.Exit(1)
	}
	log := logger.Named("main")

	svc := newService(cfg)
	if err := svc.Start(ctx); err != nil {
		log.Error(ctx, "failed to start service", logger.Error(err))
		os.Exit(1)
	}
	defer svc.Stop()
	initMetrics(svc)

	go startSystemMetricsUpdater(ctx, cfg.SystemMetricsInterval())

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           newHandler(ctx, svc),
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		log.Info(ctx, "starting HTTP server",
			logger.String("addr", cfg.Addr),
			logger.String("dataset", datasetLabel(cfg.DatasetPath)))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error(ctx, "HTTP server failed", logger.Error(err))
			stop()
		}
	}()

	// Wait for shutdown signal
	<-ctx.Done()
	log.Info(context.Background(), "shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(shutdownCtx, "server shutdown failed", logger.Error(err))
	}

	log.Info(shutdownCtx, "server stopped")
}

// applyLogging switches the handler to the configured format and level.
func applyLogging(cfg *config.Config) error {
	if cfg.LogFormat != logger.FormatText {
		if err := logger.Init(logger.WithFormat(cfg.LogFormat)); err != nil {
			return err
		}
	}
	return logger.SetLevelString(cfg.LogLevel)
}

// newService builds the dashboard service from validated configuration.
func newService(cfg *config.Config) *service.Service {
	opts := []service.Option{
		service.WithLogger(logger.Named("service")),
		service.WithDatasetPath(cfg.DatasetPath),
		service.WithPlanYear(cfg.PlanYear),
	}
	key, keyErr := plan.ParseField(cfg.DefaultSort)
	dir, dirErr := query.ParseDirection(cfg.DefaultDirection)
	if keyErr == nil && dirErr == nil {
		opts = append(opts, service.WithDefaultSort(key, dir))
	}
	return service.New(opts...)
}

// initMetrics rebuilds the metrics registry with every series labelled by
// the service's plan year and millisecond latency buckets, then republishes the dataset gauge on it. It runs
// after the dataset is loaded and before the server accepts requests.
func initMetrics(svc *service.Service) {
	stats := svc.GetStats()
	year, _ := stats["planYear"].(string)
	plans, _ := stats["plans"].(int)
	metrics.Init(
		metrics.WithConstLabels(map[string]string{"plan_year": year}),
		metrics.WithHistogramBuckets(latencyBucketsMs),
	)
	metrics.UpdateDatasetPlans(plans)
}

// newHandler mounts the API, the OpenAPI docs and the dashboard page.
func newHandler(ctx context.Context, svc *service.Service) http.Handler {
	mux := http.NewServeMux()
	api.NewServer(svc, svc, logger.Named("api")).Register(ctx, mux)
	swagger.Register(ctx, mux)
	site.Register(ctx, mux)
	return api.RequestIDMiddleware(mux)
}

func datasetLabel(path string) string {
	if path == "" {
		return "embedded"
	}
	return path
}

// startSystemMetricsUpdater refreshes system gauges until ctx is done.
func startSystemMetricsUpdater(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	updateSystemMetrics()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			updateSystemMetrics()
		}
	}
}

// updateSystemMetrics updates system-level metrics.
func updateSystemMetrics() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	metrics.UpdateSystemMemoryUsage(m.Alloc)
	metrics.UpdateSystemGoroutineCount(runtime.NumGoroutine())

	if m.NumGC > 0 {
		avgPauseMs := float64(m.PauseTotalNs) / float64(m.NumGC) / nanosecondsPerMillisecond
		metrics.RecordSystemGCPauseTime(avgPauseMs)
	}
}
