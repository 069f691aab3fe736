package main

import (
	"context"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	fcache "github.com/radieske/live-form-tracker-poc/internal/form-api/cache"
	"github.com/radieske/live-form-tracker-poc/internal/form-api/httpapi"
	"github.com/radieske/live-form-tracker-poc/internal/form-api/repo"
	sharedcache "github.com/radieske/live-form-tracker-poc/internal/shared/cache"
	"github.com/radieske/live-form-tracker-poc/internal/shared/config"
	"github.com/radieske/live-form-tracker-poc/internal/shared/db"
	"github.com/radieske/live-form-tracker-poc/internal/shared/logger"
	"github.com/radieske/live-form-tracker-poc/internal/shared/metrics"
)

func main() {
	// carrega config
	cfg := config.Load()

	// inicia logger
	log, err := logger.New(cfg.ServiceName, cfg.Env)
	if err != nil {
		panic(fmt.Errorf("logger init: %w", err))
	}
	defer log.Sync()

	log.Info("starting service", zap.String("service", cfg.ServiceName), zap.String("env", cfg.Env))

	// conecta com db Postgres
	pg, err := db.ConnectPostgres(cfg.PostgresDSN)
	if err != nil {
		log.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()
	log.Info("postgres connected")

	// conecta com cache Redis
	redisClient, err := sharedcache.ConnectRedis(cfg.RedisAddr)
	if err != nil {
		log.Fatal("failed to connect redis", zap.Error(err))
	}
	defer redisClient.Close()
	log.Info("redis connected")

	// sobe servidor de métricas e health em porta separada
	metrics.StartMetricsServer(cfg.MetricsPort, func(ctx context.Context) error {
		if err := pg.PingContext(ctx); err != nil {
			return fmt.Errorf("postgres: %w", err)
		}
		if err := redisClient.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("redis: %w", err)
		}
		return nil
	})
	log.Info("metrics/health server started", zap.String("port", cfg.MetricsPort))

	api := &httpapi.API{
		ReadRepo: &repo.ReadRepo{DB: pg},
		Cache:    fcache.New(redisClient),
	}

	addr := ":" + cfg.HTTPPort
	log.Info("form-api listening", zap.String("addr", addr))
	if err := http.ListenAndServe(addr, api.Router()); err != nil && err != http.ErrServerClosed {
		log.Fatal("http server failed", zap.Error(err))
	}
}
