package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/usforever/api/internal/config"
	"github.com/usforever/api/internal/db"
	httpx "github.com/usforever/api/internal/http"
	"github.com/usforever/api/internal/http/handlers"
	"github.com/usforever/api/internal/http/middlewares"
	"github.com/usforever/api/internal/observability"
	"github.com/usforever/api/internal/redisclient"
	"github.com/usforever/api/internal/repo"
	"github.com/usforever/api/internal/repo/postgres"
	"github.com/usforever/api/internal/repo/sqlite"
	"github.com/usforever/api/internal/service"
)

func main() {
	// Load the config set up
	cfg := config.Load()

	log := observability.NewLogger(cfg.Env)
	slog.SetDefault(log)

	if err := run(cfg, log); err != nil {
		log.Error("startup failed", "err", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, log *slog.Logger) error {
	ctx := context.Background()

	shutdownTracer, err := observability.InitTracer(ctx, cfg.OTelServiceName, cfg.OTelEndpoint)
	if err != nil {
		return err
	}

	defer func() {
		sctx, cancel := config.WithTimeout(5 * time.Second)
		defer cancel()

		if err := shutdownTracer(sctx); err != nil {
			log.Error("tracer shutdown failed", "err", err)
		}
	}()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	prom := observability.NewProm(reg)

	stores, ping, closeDB, err := openStores(ctx, cfg, prom)
	if err != nil {
		return err
	}

	defer closeDB()

	checks := map[string]handlers.PingFunc{"database": ping}

	deps := httpx.Deps{
		Services: service.New(stores),
		Prom:     prom,
		Metrics:  observability.MetricsHandler(reg),
		Checks:   checks,
	}

	if cfg.RedisAddr != "" {
		rdb := redisclient.New(redisclient.Config{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})

		defer rdb.Close()

		checks["redis"] = rdb.Ping
		deps.RateCounter = middlewares.NewRedisCounter(rdb, cfg.RateLimitWindow)
		log.Info("rate limiting through redis", "addr", cfg.RedisAddr)
	}

	seedCtx, cancel := config.WithTimeout(10 * time.Second)
	err = db.EnsureAdminUser(seedCtx, stores.Users, cfg)
	cancel()

	if err != nil {
		return fmt.Errorf("seed admin user: %w", err)
	}

	router := httpx.NewRouter(log, cfg, deps)

	// server set up
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	serverErr := make(chan error, 1)

	go func() {
		log.Info("Server starting", "port", cfg.Port, "env", cfg.Env, "db_driver", cfg.DBDriver)
		err := srv.ListenAndServe()

		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		return fmt.Errorf("server failed: %w", err)
	case <-stop:
	}

	log.Info("server shutting down")

	shutdownCtx, cancelShutdown := config.WithTimeout(10 * time.Second)
	defer cancelShutdown()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "err", err)
		return nil
	}

	log.Info("shutdown complete")

	return nil
}

// openStores connects the configured backend and returns its stores, a
// readiness ping and a close func.
func openStores(ctx context.Context, cfg config.Config, prom *observability.Prom) (repo.Stores, handlers.PingFunc, func(), error) {
	switch cfg.DBDriver {
	case config.DriverPostgres:
		pool, err := db.NewPool(ctx, cfg.DBURL, cfg.DBMaxConns)
		if err != nil {
			return repo.Stores{}, nil, nil, fmt.Errorf("connect postgres: %w", err)
		}

		if cfg.DBBootstrapSchema {
			if err := postgres.EnsureSchema(ctx, pool); err != nil {
				pool.Close()
				return repo.Stores{}, nil, nil, fmt.Errorf("apply postgres schema: %w", err)
			}
		}

		return postgres.NewStores(pool, prom), pool.Ping, pool.Close, nil

	case config.DriverSQLite:
		conn, err := sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return repo.Stores{}, nil, nil, err
		}

		return sqlite.NewStores(conn, prom), conn.PingContext, func() { _ = conn.Close() }, nil

	default:
		return repo.Stores{}, nil, nil, fmt.Errorf("unknown DB_DRIVER %q", cfg.DBDriver)
	}
}
