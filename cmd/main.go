package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/deeparex/Food-monitoring-System/internal/adapters/http/api"
	"github.com/deeparex/Food-monitoring-System/internal/adapters/http/ws"
	"github.com/deeparex/Food-monitoring-System/internal/adapters/repository"
	app "github.com/deeparex/Food-monitoring-System/internal/app"
	"github.com/deeparex/Food-monitoring-System/internal/config"
	"github.com/deeparex/Food-monitoring-System/pkg/logger"
)

// HTTP server timeout constants.
const (
	readTimeout       = 10 * time.Second
	writeTimeout      = 10 * time.Second
	idleTimeout       = 60 * time.Second
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 30 * time.Second
)

func main() {
	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}
	log := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return
	}
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info",
			logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	store, cleanup, err := buildStore(ctx, cfg)
	if err != nil {
		log.Error(ctx, "failed to build record store", logger.Error(err))
		return
	}
	defer cleanup()

	svc := app.New(
		app.WithLogger(log.Named("records")),
		app.WithStore(store),
		app.WithRequiredCertifications(cfg.RequiredCertifications),
		app.WithNearExpiryWindow(time.Duration(cfg.NearExpiryWindowHours)*time.Hour),
		app.WithSubscriberBuffer(cfg.SubscriberBuffer),
	)
	if err := svc.Start(ctx); err != nil {
		log.Error(ctx, "failed to start service", logger.Error(err))
		return
	}
	defer svc.Stop()

	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)

	apiServer := api.NewServer(svc, svc)
	apiServer.Register(r)

	wsHandler := ws.NewHandler(svc.Broadcaster(), log.Named("ws"))
	r.Get("/ws/alerts", wsHandler.HandleAlerts)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           r,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		log.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			os.Stderr.WriteString("HTTP server failed: " + err.Error() + "\n")
		}
	}()

	<-ctx.Done()
	log.Info(ctx, "shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "server shutdown failed", logger.Error(err))
	}
	log.Info(ctx, "server stopped")
}

// buildStore selects the record store backend from config.
func buildStore(ctx context.Context, cfg *config.Config) (repository.Store, func(), error) {
	switch cfg.StoreBackend {
	case config.StorePostgres:
		pool, err := repository.ConnectPostgres(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, nil, err
		}
		store := repository.NewPostgres(pool)
		if err := store.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, nil, err
		}
		return store, pool.Close, nil
	default:
		store := repository.NewMemoryStore(repository.WithShardCount(cfg.ShardCount))
		return store, func() {}, nil
	}
}
