// @title Geo Events API
// @version 1.0
// @description Publish and discover location-tagged events.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the JWT.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"geoevents/config"
	_ "geoevents/docs"
	"geoevents/internal/adapters/auth"
	"geoevents/internal/adapters/media"
	deliveryhttp "geoevents/internal/delivery/http"
	"geoevents/internal/delivery/http/controllers"
	"geoevents/internal/repository/postgres"
	"geoevents/internal/services"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const shutdownTimeout = 15 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logger := config.NewLogger(cfg)
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("server stopped", "err", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.JWTSecretGenerated {
		logger.Warn("JWT_SECRET not set, using a random secret; tokens will not survive a restart")
	}

	db, err := postgres.Open(ctx, cfg.DBUrl, postgres.PoolConfig{
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxLifetime: cfg.DBConnMaxLifetime,
	})
	if err != nil {
		return err
	}
	defer db.Close()

	if cfg.AutoMigrate {
		if err := postgres.Migrate(ctx, db); err != nil {
			return err
		}
		logger.Info("schema ready")
	}

	images, err := media.NewImageStore(media.StoreConfig{
		Provider:      cfg.Media.Provider,
		Folder:        cfg.Media.Folder,
		PublicBaseURL: cfg.Media.PublicBaseURL,
		S3: media.S3Config{
			Region:          cfg.Media.Region,
			Bucket:          cfg.Media.Bucket,
			Endpoint:        cfg.Media.Endpoint,
			AccessKeyID:     cfg.Media.AccessKeyID,
			SecretAccessKey: cfg.Media.SecretAccessKey,
			UsePathStyle:    cfg.Media.UsePathStyle,
		},
	}, logger)
	if err != nil {
		return err
	}

	userRepo := postgres.NewUserRepository(db)
	eventRepo := postgres.NewEventRepository(db)

	authService := services.NewAuthService(
		userRepo,
		auth.NewBcryptHasher(cfg.BcryptCost),
		auth.NewJWTIssuer(cfg.JWTSecret, cfg.JWTExpiry),
		cfg.RequestTimeout,
	)
	eventService := services.NewEventService(eventRepo, images, logger, services.EventServiceOptions{
		DefaultPageSize:    cfg.DefaultPageSize,
		MaxPageSize:        cfg.MaxPageSize,
		Timeout:            cfg.RequestTimeout,
		ImageDeleteTimeout: cfg.Media.DeleteTimeout,
	})

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewDBStatsCollector(db, "geoevents"),
	)

	router := deliveryhttp.NewRouter(deliveryhttp.RouterDeps{
		Logger:         logger,
		Verifier:       auth.NewJWTVerifier(cfg.JWTSecret),
		Registry:       registry,
		AllowedOrigins: cfg.CORSAllowedOrigins,
		Auth:           controllers.NewAuthController(logger, authService),
		Events:         controllers.NewEventController(logger, eventService, cfg.MaxUploadBytes),
		Health:         controllers.NewHealthController(logger, db, cfg.RequestTimeout),
	})

	srv := &http.Server{
		Addr:              ":" + strings.TrimPrefix(cfg.Port, ":"),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", "addr", srv.Addr, "env", cfg.Environment, "media", cfg.Media.Provider)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
