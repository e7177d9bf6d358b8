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

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/hbnb-stays/hbnb/internal/amenities"
	"github.com/hbnb-stays/hbnb/internal/app"
	"github.com/hbnb-stays/hbnb/internal/auth"
	"github.com/hbnb-stays/hbnb/internal/observability"
	"github.com/hbnb-stays/hbnb/internal/places"
	"github.com/hbnb-stays/hbnb/internal/platform/db"
	"github.com/hbnb-stays/hbnb/internal/reviews"
	"github.com/hbnb-stays/hbnb/internal/users"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	pool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Warn("redis ping", slog.Any("error", err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTTTL)
	revoked := auth.NewRevocationStore(redisClient)
	authMiddleware := auth.NewMiddleware(logger, tokens, revoked)
	authService := auth.NewService(auth.NewRepository(pool), tokens)
	authHandler := auth.NewHandler(logger, authService, revoked)

	userPolicy := users.Policy{
		AllowSelfCredentialChange: cfg.AllowSelfCredentialChange,
		LookupSelfOnly:            cfg.UserLookupSelfOnly,
	}
	usersHandler := users.NewHandler(logger, users.NewService(users.NewRepository(pool), userPolicy))
	amenitiesHandler := amenities.NewHandler(logger, amenities.NewService(amenities.NewRepository(pool)))
	placesHandler := places.NewHandler(logger, places.NewService(places.NewRepository(pool)))
	reviewsHandler := reviews.NewHandler(logger, reviews.NewService(reviews.NewRepository(pool)))

	metrics := observability.NewMetrics()

	router := app.NewRouter(app.RouterParams{
		Logger:           logger,
		Config:           cfg,
		AuthMiddleware:   authMiddleware,
		AuthHandler:      authHandler,
		UsersHandler:     usersHandler,
		AmenitiesHandler: amenitiesHandler,
		PlacesHandler:    placesHandler,
		ReviewsHandler:   reviewsHandler,
		Metrics:          metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		logger.Info("server listening", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	group.Go(func() error {
		<-groupCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := group.Wait(); err != nil {
		logger.Error("server stopped", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("server stopped cleanly")
}
