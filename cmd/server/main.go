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

	"superapp-be/internal/auth"
	"superapp-be/internal/config"
	"superapp-be/internal/db"
	"superapp-be/internal/events"
	"superapp-be/internal/httpapi"
	"superapp-be/internal/logger"
	"superapp-be/internal/middleware"
	"superapp-be/internal/session"
	"superapp-be/internal/storage"

	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Init(os.Getenv("APP_ENV"))
		logger.L().Fatal("failed to load config", zap.Error(err))
	}
	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	backend, err := openStore(ctx, cfg)
	if err != nil {
		logger.L().Fatal("failed to open storage", zap.String("driver", cfg.StorageDriver), zap.Error(err))
	}
	defer backend.close()

	pub := newPublisher(cfg)
	registry := session.NewRegistry(backend.store, pub)

	handler, err := buildHandler(ctx, cfg, registry, backend.health)
	if err != nil {
		logger.L().Fatal("failed to build handler", zap.Error(err))
	}

	srv := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.L().Info("http server listening",
			zap.String("addr", srv.Addr),
			zap.String("storage", cfg.StorageDriver),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.L().Fatal("listen failed", zap.Error(err))
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	logger.L().Info("shutting down")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancelShutdown()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.L().Error("http shutdown", zap.Error(err))
	}
	// retry failed writes before the store goes away
	if err := registry.Close(shutdownCtx); err != nil {
		logger.L().Error("unflushed session state", zap.Error(err))
	}
	if err := pub.Close(); err != nil {
		logger.L().Error("event publisher close", zap.Error(err))
	}
	cancel()
}

type backend struct {
	store  storage.Store
	health func(ctx context.Context) error
	close  func()
}

func openStore(ctx context.Context, cfg *config.Config) (*backend, error) {
	switch cfg.StorageDriver {
	case config.StorageMemory:
		return &backend{store: storage.NewMemoryStore(), close: func() {}}, nil

	case config.StoragePostgres:
		database, err := db.NewDatabase(cfg)
		if err != nil {
			return nil, err
		}
		return &backend{
			store:  storage.NewPostgresStore(database),
			health: database.PingContext,
			close:  func() { _ = database.Close() },
		}, nil

	case config.StorageRedis:
		client, err := storage.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return nil, err
		}
		return &backend{
			store:  storage.NewRedisStore(client, storage.DefaultRedisPrefix, cfg.RedisTTL),
			health: func(ctx context.Context) error { return client.Ping(ctx).Err() },
			close:  func() { _ = client.Close() },
		}, nil

	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}

func newPublisher(cfg *config.Config) events.Publisher {
	if len(cfg.KafkaBrokers) == 0 {
		logger.L().Info("KAFKA_BROKERS not set, order events stay in process")
		return events.NopPublisher{}
	}
	p := events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic, 1024)
	p.Start()
	return p
}

func buildHandler(ctx context.Context, cfg *config.Config, registry *session.Registry, health func(context.Context) error) (http.Handler, error) {
	tokens, err := auth.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		return nil, err
	}

	limiter := middleware.NewRateLimiter()
	go limiter.Run(ctx)

	return httpapi.NewRouter(httpapi.Deps{
		Registry:      registry,
		OTP:           auth.NewOTPService(tokens, cfg.OTPTTL),
		Tokens:        tokens,
		Limiter:       limiter,
		AllowedOrigin: cfg.AllowedOrigin,
		InternalKey:   cfg.InternalSecretKey,
		Health:        health,
	}), nil
}
