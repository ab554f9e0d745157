package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"policygate/internal/audit"
	"policygate/internal/extraction"
	"policygate/internal/intake"
	intakehandler "policygate/internal/intake/handler"
	intakemetrics "policygate/internal/intake/metrics"
	"policygate/internal/platform/config"
	"policygate/internal/platform/httpserver"
	"policygate/internal/platform/logger"
	platformmetrics "policygate/internal/platform/metrics"
	platformredis "policygate/internal/platform/redis"
	"policygate/internal/policy"
)

// main wires dependencies and owns the process lifecycle. Business logic
// lives in the internal packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()
	ctx := context.Background()

	extractor, err := extraction.NewGemini(ctx, cfg.Extraction, log)
	if err != nil {
		log.Error("extraction client init failed", "error", err.Error())
		os.Exit(1)
	}

	var store policy.Store
	var db interface{ Close() error }
	if cfg.DatabaseURL != "" {
		sqlDB, err := policy.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Error("postgres init failed", "error", err.Error())
			os.Exit(1)
		}
		db = sqlDB
		store = policy.NewPostgres(sqlDB)
		log.Info("using postgres policy store")
	} else {
		store = policy.NewInMemoryStore()
		log.Warn("DATABASE_URL not set, using in-memory policy store")
	}

	redisClient, err := platformredis.New(cfg.Redis)
	if err != nil {
		log.Error("redis init failed", "error", err.Error())
		os.Exit(1)
	}
	if redisClient == nil {
		log.Info("REDIS_URL not set, lookup cache disabled")
	}
	cache := policy.NewLookupCache(redisClient, cfg.Intake.LookupCacheTTL)

	publisher := audit.NewPublisher(256, log)
	auditStore := audit.NewInMemoryStore()
	worker := audit.NewWorker(auditStore, publisher.Inbox(), log)
	workerCtx, stopWorker := context.WithCancel(ctx)
	go func() { _ = worker.Run(workerCtx) }()

	httpMetrics := platformmetrics.New()
	service := intake.NewService(
		extractor,
		store,
		cache,
		publisher,
		log,
		intakemetrics.New(),
		cfg.Intake.MinConfidence,
	)

	router := chi.NewRouter()
	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if redisClient != nil {
			if err := redisClient.Health(r.Context()); err != nil {
				w.WriteHeader(http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
	})
	router.Method(http.MethodGet, "/metrics", promhttp.Handler())
	intakehandler.New(service, log, httpMetrics).Register(router)

	srv := httpserver.New(cfg.Addr, router)

	go func() {
		log.Info("starting policygate", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err.Error())
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err.Error())
	}
	stopWorker()
	if redisClient != nil {
		_ = redisClient.Close()
	}
	if db != nil {
		_ = db.Close()
	}
	log.Info("policygate stopped")
}
