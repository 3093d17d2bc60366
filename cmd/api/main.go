package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	fbauth "firebase.google.com/go/v4/auth"

	"github.com/swoop-build/swoop-backend/config"
	"github.com/swoop-build/swoop-backend/internal/auth"
	"github.com/swoop-build/swoop-backend/internal/bootstrap"
	"github.com/swoop-build/swoop-backend/internal/invites"
	"github.com/swoop-build/swoop-backend/internal/projects/repository"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		config.GetLogger().WithError(err).Fatal("failed to load configuration")
	}

	config.SetLogLevel(cfg.App.LogLevel)
	log := config.GetLogger()

	bootstrap.SetGinMode(cfg.App.Environment)

	ctx := context.Background()

	sqlDB, err := bootstrap.OpenSQL(ctx, cfg.Database.DSN())
	if err != nil {
		log.WithError(err).Fatal("failed to open database")
	}
	defer sqlDB.Close()

	pool, err := bootstrap.OpenDB(ctx, bootstrap.DBOptions{DSN: cfg.Database.DSN()})
	if err != nil {
		log.WithError(err).Fatal("failed to open account pool")
	}
	defer pool.Close()

	redisClient, err := bootstrap.OpenRedis(ctx, cfg.Redis)
	if err != nil {
		log.WithError(err).Fatal("failed to connect redis")
	}
	if redisClient != nil {
		defer redisClient.Close()
	} else {
		log.Warn("REDIS_ADDR not set, snapshot cache disabled")
	}

	var authClient *fbauth.Client
	if cfg.Firebase.Enabled {
		authClient, err = auth.InitializeFirebase(&cfg.Firebase)
		if err != nil {
			log.WithError(err).Fatal("failed to initialize firebase auth")
		}
	} else {
		log.Warn("firebase auth disabled, trusting X-User-Id header")
	}

	projectRepo := repository.NewProjectRepository(sqlDB)
	sweeper := invites.NewSweeper(projectRepo, cfg.Invites.ReminderAge, log)
	if err := sweeper.Start(); err != nil {
		log.WithError(err).Fatal("failed to start invite sweeper")
	}
	defer sweeper.Stop()

	router := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName: "swoop-backend",
		Version:     cfg.App.Version,
		SQL:         sqlDB,
		Pool:        pool,
		Redis:       redisClient,
		AuthClient:  authClient,
		Storage:     cfg.Storage,
		SnapshotTTL: cfg.Redis.SnapshotTTL,
		Log:         log,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.WithField("port", cfg.Server.Port).Info("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("forced shutdown")
	}
}
