package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ariefcatur/heritage-market/internal/auth"
	"github.com/ariefcatur/heritage-market/internal/config"
	"github.com/ariefcatur/heritage-market/internal/httpx"
	kafkax "github.com/ariefcatur/heritage-market/internal/kafka"
	"github.com/ariefcatur/heritage-market/internal/logx"
	"github.com/ariefcatur/heritage-market/internal/metrics"
	"github.com/ariefcatur/heritage-market/internal/orders"
	"github.com/ariefcatur/heritage-market/internal/postgres"
	"github.com/ariefcatur/heritage-market/internal/redisx"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	kafkago "github.com/segmentio/kafka-go"
	"golang.org/x/sync/errgroup"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		boot := zerolog.New(os.Stderr)
		boot.Fatal().Err(err).Msg("load config")
	}
	log := logx.New(cfg.LogLevel, cfg.IsDev(), cfg.ServiceName)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.AutoMigrate {
		if err := postgres.MigrateUp(cfg.PostgresDSN); err != nil {
			log.Fatal().Err(err).Msg("migrate")
		}
		log.Info().Msg("migrations applied")
	}

	db, err := postgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("db connect")
	}
	defer db.Close()

	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()

	m := metrics.New()

	prod := kafkax.NewProducer(cfg.KafkaBrokers(), 1024, log)
	prod.OnError(publishFailures(m))
	prod.Start()

	svc := &orders.Service{
		Orders:  &orders.Repo{DB: db},
		Reviews: &orders.ReviewRepo{DB: db},
		Events:  prod,
		Cache:   redisx.StatusCache{RDB: rdb},
		Idem:    redisx.Idempotency{RDB: rdb},
		Metrics: m,
		Log:     log,
		Name:    cfg.ServiceName,
	}
	router := httpx.NewRouter(httpx.Deps{
		Market:  svc,
		Tokens:  auth.NewTokens(cfg.JWTSecret, cfg.ServiceName),
		Metrics: m,
		Log:     log,
	})
	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: router, ReadHeaderTimeout: 5 * time.Second}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("addr", cfg.HTTPAddr).Msg("http listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("server exit")
	}
	// requests are done; flush whatever events they queued
	prod.Close()
	prod.WaitClosed()
}

// publishFailures counts events the producer gave up on, by event type.
func publishFailures(m *metrics.Metrics) func(kafkago.Message, error) {
	return func(msg kafkago.Message, _ error) {
		m.Event("out", kafkax.EventType(msg), "failed")
	}
}
