// Copyright (c) 2026 Getemall. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the getemall HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool, exposed through database/sql).
//  4. Run database migrations (idempotent).
//  5. Open the session store (Redis, or memory when REDIS_URL is empty).
//  6. Wire user store, persistence, services and HTTP handlers.
//  7. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getemall/getemall/internal/api"
	"github.com/getemall/getemall/internal/core/organization"
	"github.com/getemall/getemall/internal/platform/config"
	"github.com/getemall/getemall/internal/platform/constants"
	"github.com/getemall/getemall/internal/platform/middleware"
	"github.com/getemall/getemall/internal/platform/migration"
	pgstore "github.com/getemall/getemall/internal/platform/postgres"
	redisstore "github.com/getemall/getemall/internal/platform/redis"
	"github.com/getemall/getemall/internal/platform/sec"
	"github.com/getemall/getemall/internal/platform/session"
	"github.com/getemall/getemall/internal/platform/storage"
	"github.com/getemall/getemall/internal/users/auth"
	"github.com/getemall/getemall/internal/users/profile"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	log := newLogger(slog.LevelInfo)
	log.Info("service_initializing", slog.String("version", constants.AppVersion))

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		log = newLogger(slog.LevelDebug)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.String("auth_backend", cfg.AuthBackend),
	)

	dsn, err := cfg.DatabaseDSN()
	must(log, err, "build database dsn")

	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// ── 3. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, dsn, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing postgres pool")
		pool.Close()
	}()

	db := pgstore.OpenDB(pool)
	defer db.Close()
	provider := pgstore.NewProvider(db, log)

	// ── 4. Migrations ─────────────────────────────────────────────────────
	if cfg.RunMigrations {
		must(log, pgstore.EnsureSchema(startupCtx, db, cfg.DatabaseSchema), "create database schema")
		must(log, migration.RunUp(dsn, cfg.MigrationPath, log), "run migrations")
	}

	// ── 5. Sessions ───────────────────────────────────────────────────────
	var (
		sessionStore  session.Store = session.NewMemoryStore(cfg.SessionTTL)
		checkSessions api.Check     = func(context.Context) error { return nil }
	)
	if cfg.RedisURL != "" {
		rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
		must(log, err, "connect to redis")
		defer func() {
			log.Info("closing redis client")
			if cerr := rdb.Close(); cerr != nil {
				log.Error("redis close error", slog.Any("error", cerr))
			}
		}()

		sessionStore = session.NewRedisStore(rdb, cfg.SessionTTL)
		checkSessions = func(ctx context.Context) error { return redisstore.Ping(ctx, rdb) }
	} else {
		log.Warn("sessions_in_memory", slog.String("reason", "REDIS_URL is empty"))
	}

	signer, err := sec.NewCookieSigner(cfg.SessionSecret, constants.SessionIssuer)
	must(log, err, "initialize session signer")

	// ── 6. Domain Wiring ──────────────────────────────────────────────────
	var users auth.UserDao = auth.NewDatabaseUserDao(provider, log)
	if cfg.AuthBackend == config.AuthBackendMemory {
		users = auth.NewMemoryUserDao(auth.DemoUsers()...)
	}

	var objects storage.ObjectStore
	if cfg.S3Bucket != "" {
		s3Store, err := storage.NewS3Store(startupCtx, storage.S3Options{
			Bucket:    cfg.S3Bucket,
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
		})
		must(log, err, "initialize object storage")
		objects = s3Store
	}

	stopRequested := make(chan struct{})
	serviceHandler := api.NewServiceHandler(api.HealthDependencies{
		CheckLogin: func(ctx context.Context) error {
			_, err := users.GetUserByUsername(ctx, cfg.HealthReferenceUser)
			return err
		},
		CheckDatabase: provider.Check,
		CheckSessions: checkSessions,
	}, func() { close(stopRequested) }, log)

	profileService := profile.NewService(profile.NewPostgresStore(provider, log), log)
	organizationService := organization.NewService(organization.NewPostgresStore(provider, log), log)

	handlers := api.Handlers{
		Service:      serviceHandler,
		Auth:         auth.NewHandler(users, log),
		Profile:      profile.NewHandler(profileService, objects, cfg.UploadMaxBytes, log),
		Organization: organization.NewHandler(organizationService),
	}

	// ── 7. HTTP Server ────────────────────────────────────────────────────
	serverCtx, serverCancel := context.WithCancel(context.Background())
	defer serverCancel()

	server := api.NewServer(serverCtx, cfg, log, api.Sessions{
		Store:  sessionStore,
		Signer: signer,
		Options: middleware.SessionOptions{
			TTL:    cfg.SessionTTL,
			Secure: !cfg.IsDevelopment(),
		},
	}, users, handlers)

	// ── 8. Graceful Shutdown ──────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case sig := <-quit:
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
	case <-stopRequested:
		log.Info("shutdown requested through the admin api")
	case err := <-serverErr:
		log.Error("server startup error", slog.Any("error", err))
	}

	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server stopped cleanly")
}

// newLogger builds the JSON logger tagged with the application name and
// installs it as the default.
func newLogger(level slog.Level) *slog.Logger {
	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})).
		With(slog.String("app", "getemall"))
	slog.SetDefault(log)
	return log
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is limited to startup wiring. After startup, errors are returned and
// handled explicitly.
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
