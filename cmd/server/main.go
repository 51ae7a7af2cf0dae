package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"huevopos/internal/config"
	"huevopos/internal/infra"
	"huevopos/internal/repository"
	"huevopos/internal/router"
	"huevopos/internal/service"
	"huevopos/internal/store"
	"huevopos/internal/worker"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

func main() {
	// Structured logger — dev: pretty, prod: JSON
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	rdb, err := infra.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}

	// Pick the persistence driver. Redis serves double duty as the job
	// queue either way; postgres only carries the key-value records.
	var (
		db *gorm.DB
		kv store.KV
	)
	switch cfg.StorageDriver {
	case "postgres":
		db, err = infra.NewDatabase(cfg.DatabaseURL)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to postgres")
		}
		kv = store.NewGorm(db)
	default:
		kv = store.NewRedis(rdb)
	}

	// ── Repositories y servicios ─────────────────────────────────────────────
	ventaRepo := repository.NewVentaRepository(kv)
	precioRepo := repository.NewPrecioRepository(kv)
	ubicacionRepo := repository.NewUbicacionRepository(kv)

	ubicacionSvc := service.NewUbicacionService(ubicacionRepo)
	precioSvc := service.NewPrecioService(precioRepo)
	ventaSvc := service.NewVentaService(ventaRepo, precioRepo, ubicacionSvc)
	authSvc := service.NewAuthService(cfg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// First run seeds "Venta #01" and "Bodega"; restarts re-select the
	// highest existing session.
	if err := ubicacionSvc.Bootstrap(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to bootstrap locations")
	}
	if err := ventaSvc.Bootstrap(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to bootstrap sales")
	}

	// Worker pool for async report export (PDF render + optional email).
	// Handlers are wired here (composition root) so the pool has full
	// access to the services and SMTP infrastructure.
	mailer := infra.NewMailer(cfg)
	smtpCB := infra.NewCircuitBreaker(infra.DefaultCBConfig())
	dispatcher := worker.NewDispatcher(rdb)

	workerHandlers := &worker.WorkerHandlers{
		Reporte: worker.NewReporteWorker(ventaSvc, dispatcher, cfg.PDFStoragePath),
		Email:   worker.NewEmailWorker(mailer, smtpCB, rdb),
	}
	worker.StartWorkerPool(ctx, rdb, workerHandlers, cfg.WorkerPoolSize)

	r := router.New(cfg, router.Deps{
		DB:          db,
		RDB:         rdb,
		Ventas:      ventaSvc,
		Precios:     precioSvc,
		Ubicaciones: ubicacionSvc,
		Auth:        authSvc,
		Dispatcher:  dispatcher,
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM
	go func() {
		log.Info().Msgf("huevopos backend listening on :%d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server…")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("forced shutdown")
	}
	log.Info().Msg("server exited")
}
