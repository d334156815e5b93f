// Command pathfinder runs the graph API server.
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

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/pathfinderhq/pathfinder/internal/api"
	"github.com/pathfinderhq/pathfinder/internal/config"
	"github.com/pathfinderhq/pathfinder/internal/db"
	"github.com/pathfinderhq/pathfinder/internal/db/migrations"
	"github.com/pathfinderhq/pathfinder/internal/dbpool"
	"github.com/pathfinderhq/pathfinder/internal/security"
	"github.com/pathfinderhq/pathfinder/internal/seed"
	"github.com/pathfinderhq/pathfinder/internal/service"
	"github.com/pathfinderhq/pathfinder/internal/store"
	"github.com/pathfinderhq/pathfinder/internal/ws"
)

const (
	shutdownTimeout   = 15 * time.Second
	readHeaderTimeout = 10 * time.Second
	auditQueueSize    = 1024
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "pathfinder: %v\n", err)
		os.Exit(1)
	}
}

func newLogger(level string) (*logrus.Logger, error) {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339Nano})
	log.SetOutput(os.Stdout)

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL %q: %w", level, err)
	}
	log.SetLevel(lvl)

	return log, nil
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := dbpool.NewPool(ctx, cfg.DatabaseURL.Value(), cfg.DBMaxConns)
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer pool.Close()

	if err := db.RunMigrations(ctx, pool, log, migrations.FS); err != nil {
		return err
	}

	base := store.Base{Pool: pool, Log: log}

	auditWorker := service.NewAuditWorker(service.NewLogAuditor(log), log, auditQueueSize)
	users := service.NewCachedUserStore(ctx, store.NewUserStore(base))

	authSvc, err := service.NewAuthService(users, service.AuthConfig{
		Secret:    []byte(cfg.JWTSecret.Value()),
		Algorithm: cfg.JWTAlgorithm,
		TokenTTL:  cfg.AccessTokenTTL(),
	}, auditWorker, log)
	if err != nil {
		return err
	}

	nodeSvc := service.NewNodeService(store.NewNodeStore(base), auditWorker, log)
	edgeSvc := service.NewEdgeService(store.NewEdgeStore(base), auditWorker, log)
	graphSvc := service.NewGraphService(store.NewGraphStore(base), log)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		auditWorker.Run(gctx)
		return nil
	})

	if cfg.SeedDir != "" {
		if _, err := seed.NewLoader(nodeSvc, edgeSvc, log).LoadDir(ctx, cfg.SeedDir); err != nil {
			return fmt.Errorf("seeding from %s: %w", cfg.SeedDir, err)
		}
	}

	hub := ws.NewHub(log)
	g.Go(func() error {
		hub.Run(gctx)
		return nil
	})

	bridge := db.NewNotifyBridge(log, pool, hub)
	g.Go(func() error {
		err := bridge.Start(gctx)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})

	handler := api.NewRouter(gctx, &api.RouterDeps{
		Log:         log,
		DB:          pool,
		Hub:         hub,
		Nodes:       nodeSvc,
		Edges:       edgeSvc,
		Graph:       graphSvc,
		Auth:        authSvc,
		LoginGuard:  security.NewBruteForceGuard(gctx, log),
		CORSOrigins: cfg.CORSOrigins,
		Version:     config.Version,
	})

	servers := []*http.Server{
		{Addr: cfg.Addr(), Handler: handler, ReadHeaderTimeout: readHeaderTimeout},
		{Addr: cfg.MetricsAddr(), Handler: api.NewMetricsRouter(), ReadHeaderTimeout: readHeaderTimeout},
	}

	for _, srv := range servers {
		g.Go(func() error {
			log.WithField("addr", srv.Addr).Info("listening")
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("serving %s: %w", srv.Addr, err)
			}
			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		var errs []error
		for _, srv := range servers {
			if err := srv.Shutdown(shutdownCtx); err != nil {
				errs = append(errs, fmt.Errorf("shutting down %s: %w", srv.Addr, err))
			}
		}
		return errors.Join(errs...)
	})

	if err := g.Wait(); err != nil {
		return err
	}

	log.Info("stopped")

	return nil
}
