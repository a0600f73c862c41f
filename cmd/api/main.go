package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/taskboard/task-system/internal/api"
	"github.com/taskboard/task-system/internal/api/handler"
	"github.com/taskboard/task-system/internal/core/service"
	mongostore "github.com/taskboard/task-system/internal/infrastructure/db/mongo"
	redisstore "github.com/taskboard/task-system/internal/infrastructure/db/redis"
	"github.com/taskboard/task-system/internal/infrastructure/token"
	"github.com/taskboard/task-system/internal/pkg/config"
	"github.com/taskboard/task-system/pkg/logger"
)

// @title                       Task System API
// @version                     1.0
// @description                 Users identified by email manage their own tasks.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "task-api: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.LogPretty,
		Service: "task-api",
		Env:     cfg.Env,
	})

	// --- Storage ---
	mongoClient, db, err := mongostore.Connect(ctx, mongostore.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
		Timeout:  cfg.Mongo.Timeout,
	})
	if err != nil {
		return err
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("mongo disconnect failed")
		}
	}()
	if err := mongostore.EnsureIndexes(ctx, db); err != nil {
		return err
	}

	redisClient, err := redisstore.Connect(ctx, redisstore.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		return err
	}
	defer func() { _ = redisClient.Close() }()

	proxies, err := cfg.TrustedProxyNets()
	if err != nil {
		return err
	}

	// --- Use cases ---
	tokens := token.NewJWTGenerator(cfg.JWT.Secret, cfg.JWT.TTL, cfg.JWT.Issuer)
	users := mongostore.NewUserRepository(db)
	tasks := mongostore.NewTaskRepository(db)

	e := api.NewRouter(api.Dependencies{
		AuthService: service.NewAuthService(users, tokens, log),
		UserService: service.NewUserService(users, log),
		TaskService: service.NewTaskService(tasks, log),
		Tokens:      tokens,
		Limiter:     redisstore.NewRateLimiter(redisClient, cfg.RateLimit.Requests, cfg.RateLimit.Window),
		Readiness: []handler.Dependency{
			{Name: "mongodb", Ping: mongostore.Ping(mongoClient)},
			{Name: "redis", Ping: redisstore.Ping(redisClient)},
		},
		Logger:         log,
		Registerer:     prometheus.DefaultRegisterer,
		Gatherer:       prometheus.DefaultGatherer,
		AllowedOrigins: cfg.AllowedOrigins,
		BodyLimit:      cfg.BodyLimit,
		TrustedProxies: proxies,
	})

	return serve(ctx, e, ":"+cfg.Port, cfg, log)
}

type server interface {
	Start(address string) error
	Shutdown(ctx context.Context) error
}

func serve(ctx context.Context, srv server, addr string, cfg *config.Config, log zerolog.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Str("env", cfg.Env).Msg("task api listening")
		if err := srv.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Dur("timeout", cfg.ShutdownTimeout).Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	return nil
}
