package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/stockhaus/stockhaus-backend/config"
	"github.com/stockhaus/stockhaus-backend/internal/api/http/middleware"
	"github.com/stockhaus/stockhaus-backend/internal/auth"
	authservice "github.com/stockhaus/stockhaus-backend/internal/auth/service"
	"github.com/stockhaus/stockhaus-backend/internal/auth/throttle"
	"github.com/stockhaus/stockhaus-backend/internal/auth/token"
	"github.com/stockhaus/stockhaus-backend/internal/bootstrap"
	"github.com/stockhaus/stockhaus-backend/internal/jobs"
	"github.com/stockhaus/stockhaus-backend/internal/logging"
	paintingrepo "github.com/stockhaus/stockhaus-backend/internal/paintings/repository"
	paintingservice "github.com/stockhaus/stockhaus-backend/internal/paintings/service"
	projectrepo "github.com/stockhaus/stockhaus-backend/internal/projects/repository"
	projectservice "github.com/stockhaus/stockhaus-backend/internal/projects/service"
	"github.com/stockhaus/stockhaus-backend/internal/storage/images"
	"github.com/stockhaus/stockhaus-backend/internal/users"
)

const serviceName = "stockhaus-api"

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("failed to load config")
	}

	log := logging.New(cfg.App.LogLevel, cfg.App.Environment)
	bootstrap.SetGinMode(cfg.App.Environment)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.WithError(err).Fatal("server stopped with error")
	}
}

func run(ctx context.Context, cfg *config.Config, log *logrus.Logger) error {
	db, err := bootstrap.OpenDB(ctx, cfg.Database, log)
	if err != nil {
		return err
	}
	defer db.Close()

	backend, err := bootstrap.OpenImageBackend(ctx, cfg.Storage)
	if err != nil {
		return err
	}
	imageStore := images.NewStore(backend, log)

	creds, err := auth.NewCredentialStore(cfg.Auth.Users, cfg.Auth.BcryptCost)
	if err != nil {
		return err
	}

	var loginThrottle authservice.LoginThrottle
	rdb, err := bootstrap.OpenRedis(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	if rdb != nil {
		defer rdb.Close()
		loginThrottle = throttle.New(rdb, cfg.Auth.LoginMaxAttempts, cfg.Auth.LoginWindow)
	} else {
		log.Warn("REDIS_ADDR not set, login throttling disabled")
	}

	userRepo := users.NewRepo(db)
	authSvc := authservice.NewAuthService(creds, userRepo, token.NewManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL), loginThrottle, log)

	projects := projectrepo.NewProjectRepository(db)
	refresher := projectservice.NewMetadataRefresher(projects, log)
	projectSvc := projectservice.NewProjectService(projects, imageStore, log)
	paintingSvc := paintingservice.NewPaintingService(paintingrepo.NewPaintingRepository(db), projects, imageStore, refresher, log)

	scheduler, err := jobs.NewScheduler(refresher, cfg.Jobs.ReconcileSchedule, log)
	if err != nil {
		return err
	}
	scheduler.Start()

	limiter := middleware.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst, log)
	limiter.StartCleanup(ctx, 5*time.Minute)

	router := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName: serviceName,
		Version:     cfg.App.Version,
		CORSOrigins: cfg.Server.CORSOrigins,
		BodyLimit:   cfg.Server.BodyLimitBytes,
		Log:         log,
		DB:          db,
		Limiter:     limiter,
		Auth:        authSvc,
		Projects:    projectSvc,
		Paintings:   paintingSvc,
	})

	srv := &http.Server{
		Addr:              "0.0.0.0:" + cfg.Server.Port,
		Handler:           router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithFields(logrus.Fields{
			"addr":        srv.Addr,
			"environment": cfg.App.Environment,
			"storage":     cfg.Storage.Driver,
			"users":       creds.Len(),
		}).Info("StockHaus API listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	scheduler.Stop(shutdownCtx)
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}
