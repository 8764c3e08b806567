package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"evodex/internal/config"
	"evodex/internal/dataset"
	"evodex/internal/dex"
	"evodex/internal/metrics"
	"evodex/internal/observability"
	"evodex/internal/record"
	"evodex/internal/server"
	synchub "evodex/internal/sync"
	"evodex/pkg/database"
	"evodex/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Log.Mode, cfg.Log.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	switch strings.ToLower(cfg.Log.Mode) {
	case "prod", "production":
		gin.SetMode(gin.ReleaseMode)
	}

	ds, err := dataset.Load(cfg.Data.Dir)
	if err != nil {
		log.Fatal("dataset load failed", "dir", cfg.Data.Dir, "error", err)
	}
	index := dex.New(ds.Families, ds.Pokemon)
	log.Info("dataset loaded", "families", len(ds.Families), "entries", index.Len(), "regions", len(index.RegionNames()))

	m := metrics.New()
	m.DatasetEntries.Set(float64(index.Len()))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := observability.InitTracing(ctx, log, cfg.Trace)
	if err != nil {
		log.Fatal("tracing init failed", "error", err)
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			log.Warn("tracing shutdown failed", "error", err)
		}
	}()

	store, closeStore, err := openStore(ctx, cfg.Store)
	if err != nil {
		log.Fatal("store open failed", "driver", cfg.Store.Driver, "error", err)
	}
	defer closeStore()

	hub := synchub.NewHub()
	router := server.NewRouter(server.RouterConfig{
		Index:          index,
		Records:        record.NewService(store, hub, log.With("component", "record")),
		Hub:            hub,
		Metrics:        m,
		Log:            log,
		CORS:           cfg.CORS,
		TrustedProxies: cfg.Server.TrustedProxies,
		StoreDriver:    cfg.Store.Driver,
		ServiceName:    cfg.Trace.ServiceName,
	})

	httpSrv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("HTTP API server listening", "addr", cfg.Server.Addr, "store", cfg.Store.Driver)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		hub.CloseAll()
		return httpSrv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server stopped with error", "error", err)
		return
	}
	log.Info("server stopped")
}

// openStore builds the record store selected by cfg.Driver and returns a
// func releasing its resources.
func openStore(ctx context.Context, cfg config.StoreConfig) (record.Store, func(), error) {
	switch cfg.Driver {
	case config.DriverRedis:
		client, err := record.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			return nil, nil, err
		}
		return record.NewRedisStore(client, cfg.RedisPrefix), func() { _ = client.Close() }, nil
	default:
		db, err := database.Open(database.Config{Path: cfg.SQLitePath})
		if err != nil {
			return nil, nil, err
		}
		if err := database.Migrate(db); err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("migrate: %w", err)
		}
		return record.NewSQLiteStore(db), func() { _ = db.Close() }, nil
	}
}
