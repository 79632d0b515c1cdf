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
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/finebook/finebook/internal/auth"
	"github.com/finebook/finebook/internal/config"
	"github.com/finebook/finebook/internal/infra"
	"github.com/finebook/finebook/internal/notify"
	"github.com/finebook/finebook/internal/ratelimit"
	"github.com/finebook/finebook/internal/repository"
	"github.com/finebook/finebook/internal/repository/memory"
	pgrepo "github.com/finebook/finebook/internal/repository/pg"
	transport "github.com/finebook/finebook/internal/transport/http"
	uc "github.com/finebook/finebook/internal/usecase"
	"github.com/finebook/finebook/migrations"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			logger := infra.NewLogger(os.Stderr, cfg.LogFormat, cfg.LogLevel)

			ctx, stop := signal.NotifyContext(c.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg, logger)
		},
	}
}

func serve(ctx context.Context, cfg *config.Config, logger infra.Logger) error {
	repo, closeRepo, err := openRepo(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeRepo()

	var messenger notify.Messenger = notify.LogMessenger{Log: logger}
	if cfg.FCMProjectID != "" {
		fcm, err := notify.NewFCM(ctx, cfg.FCMProjectID)
		if err != nil {
			return err
		}
		messenger = fcm
		logger.Infof("push notifications via fcm project %s", cfg.FCMProjectID)
	}

	authz, err := uc.NewAuthorizer(repo, cfg.IdentityCacheSize, logger)
	if err != nil {
		return err
	}
	ucase := uc.NewUsecase(repo, authz, uc.NewNotifier(repo, messenger, logger), logger)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	routerCfg := transport.RouterConfig{
		Verifier: auth.NewVerifier(cfg.JWTSecret, cfg.JWTIssuer),
		Metrics:  infra.NewMetrics(reg),
		Gatherer: reg,
	}
	if cfg.RedisURL != "" {
		limiter, err := ratelimit.NewRateLimiter(ctx, cfg.RedisURL, cfg.RateLimit, cfg.RateWindow)
		if err != nil {
			return err
		}
		defer limiter.Close()
		routerCfg.Limiter = limiter
		logger.Infof("rate limit %d calls per %s", cfg.RateLimit, cfg.RateWindow)
	}

	srv := &http.Server{
		Handler:      transport.NewRouter(transport.NewHandlers(ucase, logger), routerCfg),
		Addr:         ":" + cfg.Port,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Infof("starting server on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Infof("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func openRepo(ctx context.Context, cfg *config.Config, logger infra.Logger) (repository.Repo, func(), error) {
	if cfg.Store == config.StoreMemory {
		logger.Warnf("using in-memory store, data is lost on exit")
		return memory.New(), func() {}, nil
	}

	pool, err := connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}
	if err := migrations.Run(ctx, pool, "up"); err != nil {
		pool.Close()
		return nil, nil, err
	}
	return pgrepo.NewPGRepo(pool), pool.Close, nil
}

func connect(ctx context.Context, dbURL string) (*pgxpool.Pool, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		return nil, fmt.Errorf("db connect: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("db ping: %w", err)
	}
	return pool, nil
}
