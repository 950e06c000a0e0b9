package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"listly/internal/activity"
	httpapi "listly/internal/http"
	identityhandler "listly/internal/identity/handler"
	identityservice "listly/internal/identity/service"
	identitystore "listly/internal/identity/store"
	"listly/internal/identity/token"
	listhandler "listly/internal/list/handler"
	listservice "listly/internal/list/service"
	liststore "listly/internal/list/store"
	"listly/internal/platform/config"
	"listly/internal/platform/httpserver"
	"listly/internal/platform/kafka"
	"listly/internal/platform/logger"
	"listly/internal/platform/metrics"
	"listly/internal/platform/postgres"
	platformredis "listly/internal/platform/redis"
)

const activityInboxSize = 256

// main wires dependencies and owns the process lifecycle. Business logic
// lives in the vertical service packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := metrics.New()

	// Storage. Empty DSN/URL selects the in-memory implementations so the
	// server runs with zero external dependencies in development.
	db, err := postgres.Open(cfg.PostgresDSN)
	if err != nil {
		log.Error("failed to connect to postgres", "error", err)
		os.Exit(1)
	}
	if db != nil {
		defer db.Close()
	}

	redisClient, err := platformredis.New(cfg.Redis)
	if err != nil {
		log.Error("failed to connect to redis", "error", err)
		os.Exit(1)
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	var (
		users          identitystore.UserStore
		lists          liststore.ListStore
		activityEvents activity.Store
	)
	if db != nil {
		users = identitystore.NewPostgres(db)
		lists = liststore.NewPostgres(db)
		activityEvents = activity.NewPostgresStore(db)
	} else {
		log.Warn("POSTGRES_DSN not set, using in-memory stores")
		users = identitystore.NewInMemory()
		lists = liststore.NewInMemory()
		activityEvents = activity.NewInMemoryStore()
	}

	var revocations token.RevocationList
	if redisClient != nil {
		revocations = token.NewRedisRevocationList(redisClient.Client)
	} else {
		log.Warn("REDIS_URL not set, using in-memory revocation list")
		revocations = token.NewInMemoryRevocationList()
	}

	producer, err := kafka.NewProducer(cfg.Kafka)
	if err != nil {
		log.Error("failed to connect to kafka", "error", err)
		os.Exit(1)
	}
	defer producer.Close()

	inbox := make(chan activity.Event, activityInboxSize)
	publisher := activity.NewPublisher(inbox)
	worker := activity.NewWorker(activityEvents, producer, inbox, log)

	tokens := token.NewJWTService(cfg.JWTSigningKey, cfg.JWTIssuer, cfg.TokenTTL)

	identitySvc := identityservice.New(users, tokens, revocations,
		identityservice.WithLogger(log),
		identityservice.WithActivity(publisher),
		identityservice.WithMetrics(m),
	)
	listSvc := listservice.New(lists, users,
		listservice.WithLogger(log),
		listservice.WithActivity(publisher),
		listservice.WithMetrics(m),
	)

	health := make(map[string]httpapi.HealthChecker)
	if db != nil {
		health["postgres"] = pingChecker{db: db}
	}
	if redisClient != nil {
		health["redis"] = redisClient
	}

	router := httpapi.New(httpapi.Deps{
		Identity: identityhandler.New(identitySvc, tokens, revocations, log),
		Lists:    listhandler.New(listSvc, tokens, revocations, log),
		Logger:   log,
		Metrics:  m,
		Health:   health,
	})

	srv := httpserver.New(cfg.Addr, router)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return worker.Run(gctx)
	})

	g.Go(func() error {
		log.Info("starting server", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("server exited with error", "error", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}

type pingChecker struct {
	db interface {
		PingContext(ctx context.Context) error
	}
}

func (c pingChecker) Health(ctx context.Context) error {
	return c.db.PingContext(ctx)
}
