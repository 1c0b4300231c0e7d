package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bankcore/customer-service/internal/api"
	"github.com/bankcore/customer-service/internal/infrastructure/db/mongo"
	"github.com/bankcore/customer-service/internal/infrastructure/db/redis"
	"github.com/bankcore/customer-service/internal/infrastructure/productclient"
	"github.com/bankcore/customer-service/internal/infrastructure/queue"
	"github.com/bankcore/customer-service/internal/pkg/config"
	"github.com/bankcore/customer-service/internal/pkg/resilience"
	"github.com/bankcore/customer-service/pkg/logger"
)

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Service: "customer-service",
		Pretty:  cfg.Env == "development",
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// --- MongoDB ---
	mongoClient, db, err := mongo.Connect(ctx, mongo.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		disconnectCtx, c := context.WithTimeout(context.Background(), 5*time.Second)
		defer c()
		_ = mongoClient.Disconnect(disconnectCtx)
	}()

	if err := mongo.NewCustomerRepository(db).EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("mongo index creation failed")
	}

	// --- Redis ---
	rdb, err := redis.Connect(ctx, redis.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()

	// --- Event pipeline ---
	publisher, err := queue.NewAMQPPublisher(cfg.AMQP.URL)
	if err != nil {
		log.Fatal().Err(err).Msg("amqp connection failed")
	}
	defer publisher.Close()

	dispatcher := queue.NewDispatcher(cfg.AMQP.Workers, publisher, log)
	dispatcher.Start(ctx)

	consumer, err := queue.NewEventConsumer(cfg.AMQP.URL, "customer-service.events", log)
	if err != nil {
		log.Warn().Err(err).Msg("event consumer unavailable, continuing without it")
	} else {
		defer consumer.Close()
		go func() {
			if err := consumer.Start(ctx); err != nil {
				log.Warn().Err(err).Msg("event consumer stopped")
			}
		}()
	}

	// --- Product service client behind the circuit breaker ---
	products := productclient.New(cfg.Products.BaseURL, &http.Client{Timeout: cfg.Products.Timeout + time.Second})
	guard := resilience.New(resilience.Settings{
		Name:             "product-service",
		Timeout:          cfg.Products.Timeout,
		FailureThreshold: cfg.Breaker.FailureThreshold,
		OpenTimeout:      cfg.Breaker.OpenTimeout,
	}, log)

	// --- HTTP server ---
	e := api.NewRouter(api.Deps{
		DB:        db,
		Redis:     rdb,
		Products:  products,
		Guard:     guard,
		Emitter:   dispatcher,
		JWTSecret: cfg.JWTSecret,
		CacheTTL:  cfg.Redis.CacheTTL,
		Logger:    log,
	})

	errCh := make(chan error, 1)
	go func() {
		errCh <- e.Start(":" + cfg.Port)
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("customer service started")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Info().Str("signal", sig.String()).Msg("shutdown signal received")
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("server stopped unexpectedly")
		}
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
