package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	user_client "pubhub-publication-service/internal/clients/user"
	user_client_cached "pubhub-publication-service/internal/clients/user/cached"
	user_client_http "pubhub-publication-service/internal/clients/user/http"
	redis_cache "pubhub-publication-service/internal/cache/redis"
	"pubhub-publication-service/internal/config"
	delivery_http "pubhub-publication-service/internal/delivery/http"
	post_http "pubhub-publication-service/internal/delivery/http/post"
	user_http "pubhub-publication-service/internal/delivery/http/user"
	delivery_metrics "pubhub-publication-service/internal/delivery/metrics"
	"pubhub-publication-service/internal/logger"
	prometheus_metrics "pubhub-publication-service/internal/metrics/prometheus"
	post_repository_postgres "pubhub-publication-service/internal/repository/post/postgres"
	"pubhub-publication-service/internal/repository/postgres"
	"pubhub-publication-service/internal/security"
	post_service "pubhub-publication-service/internal/service/post"
)

const shutdownTimeout = 30 * time.Second

func main() {
	cfg := config.MustLoad()
	log := logger.New(cfg.Env)
	log.Info("Starting publication service", slog.String("env", cfg.Env))

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		cfg.Database.Username,
		cfg.Database.Password,
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.DbName,
	)

	if err := postgres.RunMigrations(dsn, cfg.Database.MigrationsPath, log); err != nil {
		log.Error("Failed to run migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		log.Error("Failed to create connection pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	metricsProvider := prometheus_metrics.NewPrometheusMetricsProvider()

	redisClient, err := redis_cache.NewClient(cfg.Redis, log)
	if err != nil {
		log.Error("Failed to connect to redis", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close redis client", slog.String("error", err.Error()))
		}
	}()
	userCache := redis_cache.NewUserCache(redisClient, log)

	identityTimeout := time.Duration(cfg.IdentityProvider.TimeoutSeconds) * time.Second
	var userClient user_client.Client = user_client_http.NewClient(cfg.IdentityProvider.BaseURL, identityTimeout, log)
	userClient = user_client_cached.NewClient(userClient, userCache, log, metricsProvider)

	var urlChecker security.URLChecker
	if cfg.URLChecker.Enabled {
		urlChecker = security.NewSafeURLChecker(time.Duration(cfg.URLChecker.TimeoutSeconds)*time.Second, log)
	} else {
		urlChecker = security.NewNoopURLChecker()
	}

	postRepo := post_repository_postgres.NewPostRepository(pool, log)
	uow := postgres.NewPostgresUOW(pool, log)
	postService := post_service.NewPostService(postRepo, uow, log, userClient, urlChecker, metricsProvider)

	postAPI := post_http.NewPostHTTPService(postService, log)
	userAPI := user_http.NewUserHTTPService(userClient, postService, log)

	httpServer := delivery_http.NewServer(cfg.HTTPServer, userClient, metricsProvider, log, postAPI, userAPI)
	metricsServer := delivery_metrics.NewMetricsServer(cfg.Prometheus, log)

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	errCh := make(chan error, 2)
	go func() {
		errCh <- httpServer.Run()
	}()
	go func() {
		errCh <- metricsServer.Run()
	}()

	metricsProvider.SetServiceHealth(true)

	select {
	case sig := <-done:
		log.Info("Received shutdown signal", slog.String("signal", sig.String()))
	case err := <-errCh:
		if err != nil {
			log.Error("Server failed", slog.String("error", err.Error()))
		}
	}

	metricsProvider.SetServiceHealth(false)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown failed", slog.String("error", err.Error()))
	}
	if err := metricsServer.Shutdown(shutdownCtx); err != nil {
		log.Error("Metrics server shutdown failed", slog.String("error", err.Error()))
	}

	log.Info("Service stopped")
}
