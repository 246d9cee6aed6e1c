package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ariefcatur/heritage-market/internal/config"
	kafkax "github.com/ariefcatur/heritage-market/internal/kafka"
	"github.com/ariefcatur/heritage-market/internal/logx"
	"github.com/ariefcatur/heritage-market/internal/metrics"
	"github.com/ariefcatur/heritage-market/internal/projector"
	"github.com/ariefcatur/heritage-market/internal/redisx"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

func main() {
	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		boot := zerolog.New(os.Stderr)
		boot.Fatal().Err(err).Msg("load config")
	}
	name := cfg.ServiceName + "-projector"
	log := logx.New(cfg.LogLevel, cfg.IsDev(), name)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Fatal().Err(err).Msg("redis ping")
	}

	m := metrics.New()
	svc := &projector.Service{
		Cache:   redisx.StatusCache{RDB: rdb},
		Dedup:   projector.RedisDedup{RDB: rdb, Service: name},
		Metrics: m,
		Log:     log,
	}
	cons := kafkax.NewConsumer(cfg.KafkaBrokers(), cfg.ProjectorGroup, projector.Topics, cfg.ProjectorWorkers, log)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("group", cfg.ProjectorGroup).Strs("topics", projector.Topics).
			Int("workers", cfg.ProjectorWorkers).Msg("projector started")
		return cons.Start(gctx, svc.Handle)
	})

	msrv := metricsServer(cfg.MetricsAddr, m)
	g.Go(func() error {
		if err := msrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return msrv.Shutdown(shutdownCtx)
	})
	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("consumer exit")
		os.Exit(1)
	}
	log.Info().Msg("projector stopped")
}

func metricsServer(addr string, m *metrics.Metrics) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	return &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
}
