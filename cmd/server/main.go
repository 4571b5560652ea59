package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cli/browser"
	"github.com/coocood/freecache"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/vytor/ergolog/internal/api"
	"github.com/vytor/ergolog/internal/config"
	"github.com/vytor/ergolog/internal/db"
	"github.com/vytor/ergolog/internal/jobs"
	"github.com/vytor/ergolog/internal/logger"
	"github.com/vytor/ergolog/internal/metrics"
	"github.com/vytor/ergolog/internal/repository/sqlite"
	"github.com/vytor/ergolog/internal/services"
	"github.com/vytor/ergolog/internal/summarychart"
	"github.com/vytor/ergolog/internal/worker"
)

func main() {
	cfg := config.Load()

	// Initialize logger
	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(cfg.LogFile == ""),
		logger.WithRotatingFile(cfg.LogFile, cfg.LogMaxSizeMB, 3),
	)
	logger.SetDefault(log)

	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration: %v", err)
		os.Exit(1)
	}

	log.Info("===========================================")
	log.Info("ergolog server starting")
	log.Info("===========================================")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("db_path=%s", cfg.DBPath)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("worker_count=%d", cfg.WorkerCount)
	log.Debug("queue_size=%d", cfg.QueueSize)
	log.Debug("per_page=%d", cfg.PerPage)
	log.Debug("cache_size_mb=%d cache_ttl_seconds=%d", cfg.CacheSizeMB, cfg.CacheTTLSeconds)
	log.Debug("chart_thresholds=%d/%d", cfg.DataLabelMax, cfg.AxisLabelMax)
	log.Debug("locale=%s", cfg.Locale)

	// Open database
	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Error("failed to open database: %v", err)
		os.Exit(1)
	}
	defer func() {
		log.Debug("closing database connection")
		database.Close()
	}()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.NewManager(metrics.Namespace, metrics.Subsystem, reg)

	palette, err := summarychart.NewPalette(cfg.Palette)
	if err != nil {
		log.Error("invalid chart palette: %v", err)
		os.Exit(1)
	}
	formatter := summarychart.NewFormatter(cfg.Language())

	// Load templates
	log.Debug("loading templates")
	tmpl, err := api.LoadTemplates("web/templates", formatter)
	if err != nil {
		log.Error("failed to load templates: %v", err)
		os.Exit(1)
	}

	pool := worker.NewPool(cfg.WorkerCount, cfg.QueueSize, worker.WithJobObserver(m))

	workoutRepo := sqlite.NewWorkoutRepository(database.DB)
	equipmentRepo := sqlite.NewEquipmentRepository(database.DB)
	summaryRepo := sqlite.NewSummaryRepository(database.DB)

	cache := freecache.NewCache(cfg.CacheSizeMB * 1024 * 1024)
	summaryService := services.NewSummaryService(summaryRepo, cache, cfg.CacheTTLSeconds)
	queue := jobs.NewWorkerQueue(pool, summaryService)
	workoutService := services.NewWorkoutService(workoutRepo, equipmentRepo, queue)
	importService := services.NewImportService(workoutRepo, equipmentRepo, queue, m)

	srv := &api.Server{
		DB:        database,
		Workouts:  workoutService,
		Imports:   importService,
		Summaries: summaryService,
		Charts: summarychart.NewRenderer(summarychart.NewECharts,
			summarychart.WithThresholds(summarychart.Thresholds{DataLabels: cfg.DataLabelMax, AxisLabels: cfg.AxisLabelMax}),
			summarychart.WithPalette(palette),
			summarychart.WithFormatter(formatter),
			summarychart.WithObserver(m),
		),
		Metrics:   m,
		Templates: tmpl,
		PerPage:   cfg.PerPage,
	}
	if cfg.MetricsEnabled {
		srv.Gatherer = reg
	}

	ctx, cancel := context.WithCancel(context.Background())
	pool.Start(ctx)

	// Rebuild totals once at startup so the cache matches the workouts table.
	if err := queue.EnqueueSummaryRefresh(); err != nil {
		log.Warn("failed to queue startup summary refresh: %v", err)
	}

	// Configure HTTP server
	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start HTTP server
	go func() {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error: %v", err)
			os.Exit(1)
		}
	}()

	if cfg.OpenBrowser {
		url := browserURL(cfg.Addr)
		if err := browser.OpenURL(url); err != nil {
			log.Warn("failed to open browser at %s: %v", url, err)
		}
	}

	// Wait for shutdown signal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop

	log.Info("received signal %v, initiating graceful shutdown", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	log.Debug("shutting down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	log.Debug("stopping worker pool")
	pool.Stop()
	cancel()

	log.Info("===========================================")
	log.Info("ergolog server stopped")
	log.Info("===========================================")
}

// browserURL turns a listen address such as ":8080" into a local URL.
func browserURL(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		return "http://localhost" + addr
	}
	return "http://" + addr
}
