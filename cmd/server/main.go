// Command server runs the Palm Beach Resort backend-for-frontend.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/iliyamo/palm-beach-resort/internal/apiclient"
	"github.com/iliyamo/palm-beach-resort/internal/cart"
	"github.com/iliyamo/palm-beach-resort/internal/config"
	"github.com/iliyamo/palm-beach-resort/internal/database"
	"github.com/iliyamo/palm-beach-resort/internal/handler"
	"github.com/iliyamo/palm-beach-resort/internal/logging"
	"github.com/iliyamo/palm-beach-resort/internal/middleware"
	"github.com/iliyamo/palm-beach-resort/internal/mockdata"
	"github.com/iliyamo/palm-beach-resort/internal/model"
	"github.com/iliyamo/palm-beach-resort/internal/queue"
	"github.com/iliyamo/palm-beach-resort/internal/repository"
	"github.com/iliyamo/palm-beach-resort/internal/router"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Default().Fatal().Err(err).Msg("load config")
	}
	log := logging.Configure(cfg.LogFormat, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = logging.WithLogger(ctx, log)

	opts := []apiclient.Option{apiclient.WithHTTPClient(&http.Client{Timeout: cfg.UpstreamTimeout})}
	if cfg.MockFallback {
		opts = append(opts, apiclient.WithMockFallback(mockdata.NewBackend()))
		log.Warn().Msg("mock fallback enabled: admin booking calls may be served from fixtures")
	}
	client, err := apiclient.New(cfg.UpstreamURL, opts...)
	if err != nil {
		log.Fatal().Err(err).Msg("build upstream client")
	}

	// Redis is optional: without it carts live in memory and cache/rate limit are off.
	rdb := config.NewRedisClient()
	var carts cart.Store = cart.NewMemoryStore()
	cartKind := "memory"
	if rdb != nil {
		defer rdb.Close()
		carts = cart.NewRedisStore(rdb, cfg.CartPrefix, cfg.CartTTL)
		cartKind = "redis"
	} else {
		log.Warn().Msg("redis unavailable: memory cart store, caching and rate limiting disabled")
	}

	rooms, roomKind, closeRooms := openRoomStore(ctx, cfg, log)
	defer closeRooms()

	var events queue.Publisher = queue.NopPublisher{}
	if cfg.EventsEnabled {
		pub := queue.NewAMQPPublisher(cfg.RabbitMQURL)
		defer pub.Close()
		events = pub

		consumer := queue.NewConsumer(cfg.RabbitMQURL, cfg.BookingLogPath)
		go func() {
			if err := consumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				log.Error().Err(err).Msg("booking consumer stopped")
			}
		}()
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(echomw.RequestID())
	e.Use(middleware.RequestLogger(log))
	e.Use(echomw.Recover())

	up := handler.Upstream{Client: client}
	router.RegisterRoutes(e, router.Handlers{
		Health:   handler.HealthHandler{UpstreamURL: client.BaseURL(), CartStore: cartKind, RoomStore: roomKind, Events: cfg.EventsEnabled},
		Catalog:  &handler.CatalogHandler{Upstream: up},
		Bookings: &handler.BookingHandler{Upstream: up, Events: events},
		Cart:     &handler.CartHandler{Upstream: up, Carts: carts},
		Auth:     &handler.AuthHandler{Upstream: up},
		Admin:    &handler.AdminHandler{Upstream: up, Rooms: rooms},
	}, router.Middleware{
		Credentials: middleware.Credentials(cfg, middleware.UpstreamVerifier(client)),
		RateLimit:   middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb),
		Cache:       middleware.NewRedisCache(config.LoadCacheConfig(), rdb),
	})

	addr := ":" + cfg.Port
	go func() {
		log.Info().Str("addr", addr).Str("env", cfg.Env).Str("upstream", client.BaseURL()).Msg("listening")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown")
	}
}

// openRoomStore returns the MySQL room store when a database is configured
// and reachable, and the memory store otherwise.
func openRoomStore(ctx context.Context, cfg config.Config, log *zerolog.Logger) (repository.RoomStore, string, func()) {
	memory := func() (repository.RoomStore, string, func()) {
		var seed []model.Room
		if cfg.MockFallback {
			seed = mockdata.Rooms()
		}
		return repository.NewMemoryRoomRepo(seed...), "memory", func() {}
	}
	if !cfg.DatabaseEnabled() {
		return memory()
	}
	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Warn().Err(err).Msg("mysql unavailable: using memory room store")
		return memory()
	}
	if err := database.Migrate(ctx, db); err != nil {
		_ = db.Close()
		log.Warn().Err(err).Msg("mysql migration failed: using memory room store")
		return memory()
	}
	return repository.NewMySQLRoomRepo(db), "mysql", func() { _ = db.Close() }
}
