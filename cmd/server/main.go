package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vytor/nahuatl/internal/api"
	"github.com/vytor/nahuatl/internal/audio"
	"github.com/vytor/nahuatl/internal/catalog"
	"github.com/vytor/nahuatl/internal/config"
	"github.com/vytor/nahuatl/internal/db"
	"github.com/vytor/nahuatl/internal/device"
	"github.com/vytor/nahuatl/internal/jobs"
	"github.com/vytor/nahuatl/internal/logger"
	"github.com/vytor/nahuatl/internal/repository/sqlite"
	"github.com/vytor/nahuatl/internal/screens"
	"github.com/vytor/nahuatl/internal/services"
	"github.com/vytor/nahuatl/internal/worker"
	"github.com/vytor/nahuatl/web"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration: %v", err)
		os.Exit(1)
	}

	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(cfg.LogColors),
	)
	logger.SetDefault(log)

	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration: %v", err)
		os.Exit(1)
	}

	log.Info("===========================================")
	log.Info("Nahuatl Server Starting")
	log.Info("===========================================")
	log.Info("configuration loaded")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("db_path=%s", cfg.DBPath)
	log.Debug("audio_dir=%s", cfg.AudioDir)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("pin_length=%d", cfg.PINLength)
	log.Debug("pin_shake_window=%v", cfg.PINShakeWindow)
	log.Debug("lesson_reward=%d", cfg.LessonReward)
	log.Debug("screen_idle_ttl=%v", cfg.ScreenIdleTTL)
	log.Debug("sweep_interval=%v", cfg.SweepInterval)
	log.Debug("worker_count=%d", cfg.WorkerCount)
	log.Debug("worker_queue_size=%d", cfg.WorkerQueueSize)

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Error("failed to open database: %v", err)
		os.Exit(1)
	}
	defer func() {
		log.Debug("closing database connection")
		database.Close()
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	catalogRepo := sqlite.NewCatalogRepository(database.DB)
	doc, err := catalog.Embedded()
	if err != nil {
		log.Error("failed to parse catalog: %v", err)
		os.Exit(1)
	}
	if err := catalog.Import(ctx, catalogRepo, doc); err != nil {
		log.Error("failed to import catalog: %v", err)
		os.Exit(1)
	}

	log.Debug("loading templates")
	tmpl, err := api.LoadTemplates(web.Templates())
	if err != nil {
		log.Error("failed to load templates: %v", err)
		os.Exit(1)
	}
	log.Debug("templates loaded successfully")

	registry := screens.NewRegistry()
	provider := catalog.NewService(catalogRepo)
	library := audio.NewLibrary(cfg.AudioDir)
	authService := services.NewAuthService(sqlite.NewFlagRepository(database.DB), registry)

	srv := &api.Server{
		DB:               database,
		AuthService:      authService,
		PinService:       services.NewPinService(authService, registry, cfg.PINLength, cfg.PINShakeWindow),
		LessonService:    services.NewLessonService(provider, library, registry, cfg.LessonReward),
		DashboardService: services.NewDashboardService(provider),
		Catalog:          provider,
		Audio:            library,
		Devices:          device.NewIssuer(cfg.DeviceSecret, cfg.DeviceCookieTTL),
		Templates:        tmpl,
		Static:           web.Static(),
		SecureCookies:    cfg.SecureCookies,
	}

	pool := worker.NewPool(cfg.WorkerCount, cfg.WorkerQueueSize)
	pool.Start(ctx)
	go jobs.Schedule(ctx, jobs.NewWorkerQueue(pool, registry, cfg.ScreenIdleTTL), cfg.SweepInterval)

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error: %v", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop

	log.Info("received signal %v, initiating graceful shutdown", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	log.Debug("stopping scheduler")
	cancel()

	log.Debug("shutting down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	log.Debug("stopping worker pool")
	pool.Stop()
	registry.Sweep(context.Background(), 0)

	log.Info("===========================================")
	log.Info("Nahuatl Server Stopped")
	log.Info("===========================================")
}
