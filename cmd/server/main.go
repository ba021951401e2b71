// Command server runs the MedConnect appointments API.
//
// @title        MedConnect Appointments API
// @version      1.0
// @description  Doctor availability, accounts and AI-assisted triage.
// @BasePath     /
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
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

	"github.com/rs/zerolog"

	"github.com/medconnect/appointments/internal/api"
	"github.com/medconnect/appointments/internal/api/handler"
	"github.com/medconnect/appointments/internal/api/middleware"
	"github.com/medconnect/appointments/internal/core/ports"
	"github.com/medconnect/appointments/internal/core/service"
	mongostore "github.com/medconnect/appointments/internal/infrastructure/db/mongo"
	pgstore "github.com/medconnect/appointments/internal/infrastructure/db/postgres"
	redisstore "github.com/medconnect/appointments/internal/infrastructure/db/redis"
	"github.com/medconnect/appointments/internal/infrastructure/inference/gemini"
	"github.com/medconnect/appointments/internal/pkg/config"
	"github.com/medconnect/appointments/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

type userStore interface {
	ports.AuthRepository
	ports.ProfileRepository
}

// store bundles the repositories of the selected backend.
type store struct {
	users        userStore
	availability ports.AvailabilityRepository
	check        handler.DependencyCheck
	close        func(context.Context)
}

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "appointments",
		Env:     cfg.Env,
	})

	if err := run(cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

func run(cfg *config.Config, log zerolog.Logger) error {
	ctx := context.Background()

	st, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer st.close(context.Background())
	log.Info().Str("driver", cfg.StoreDriver).Msg("store connected")

	rdb, err := redisstore.Connect(ctx, redisstore.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
	if err != nil {
		return err
	}
	defer rdb.Close()

	generator, err := gemini.NewClient(ctx, gemini.Config{APIKey: cfg.Gemini.APIKey, Model: cfg.Gemini.Model})
	if err != nil {
		return err
	}
	defer generator.Close()

	authService := service.NewAuthService(st.users, cfg.JWTSecret, cfg.SessionTTL)
	availabilityService := service.NewAvailabilityService(
		middleware.ContextPrincipalResolver{},
		st.users,
		st.availability,
		redisstore.NewViewCache(rdb, cfg.Redis.ViewCacheTTL),
		cfg.Location(),
		logger.Named("availability"),
	)
	assistantService := service.NewAssistantService(generator, logger.Named("assistant"))

	e := api.NewRouter(api.Dependencies{
		Auth:         authService,
		Availability: availabilityService,
		Assistant:    assistantService,
		Profiles:     st.users,
		JWTSecret:    cfg.JWTSecret,
		SessionTTL:   authService.TokenTTL(),
		SecureCookie: !cfg.IsDevelopment(),
		Readiness: []handler.DependencyCheck{
			st.check,
			{Name: "redis", Ping: func(ctx context.Context) error { return rdb.Ping(ctx).Err() }},
		},
		Logger: logger.Named("http"),
	})

	errCh := make(chan error, 1)
	go func() {
		addr := ":" + cfg.Port
		log.Info().Str("addr", addr).Msg("starting server")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-quit:
	}

	log.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	log.Info().Msg("server stopped")
	return nil
}

func openStore(ctx context.Context, cfg *config.Config) (*store, error) {
	switch cfg.StoreDriver {
	case config.StorePostgres:
		pool, err := pgstore.NewPool(ctx, pgstore.Config{
			URL:      cfg.Postgres.URL,
			MaxConns: cfg.Postgres.MaxConns,
			MinConns: cfg.Postgres.MinConns,
		})
		if err != nil {
			return nil, err
		}
		if err := pgstore.EnsureSchema(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
		return &store{
			users:        pgstore.NewUserRepository(pool),
			availability: pgstore.NewAvailabilityRepository(pool),
			check:        handler.DependencyCheck{Name: "postgres", Ping: pool.Ping},
			close:        func(context.Context) { pool.Close() },
		}, nil

	default:
		client, db, err := mongostore.Connect(ctx, mongostore.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return nil, err
		}
		if err := mongostore.EnsureIndexes(ctx, db); err != nil {
			_ = client.Disconnect(ctx)
			return nil, err
		}
		return &store{
			users:        mongostore.NewUserRepository(db),
			availability: mongostore.NewAvailabilityRepository(db),
			check: handler.DependencyCheck{Name: "mongodb", Ping: func(ctx context.Context) error {
				return mongostore.Ping(ctx, db)
			}},
			close: func(ctx context.Context) { _ = client.Disconnect(ctx) },
		}, nil
	}
}
