package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/thugozi/foodtruck-api/internal/api"
	"github.com/thugozi/foodtruck-api/internal/core/service"
	"github.com/thugozi/foodtruck-api/internal/infrastructure/config"
	mongodb "github.com/thugozi/foodtruck-api/internal/infrastructure/db/mongo"
	redisdb "github.com/thugozi/foodtruck-api/internal/infrastructure/db/redis"
	"github.com/thugozi/foodtruck-api/internal/infrastructure/scheduler"
	"github.com/thugozi/foodtruck-api/internal/ocr"
	"github.com/thugozi/foodtruck-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	_ = godotenv.Load()

	// Configuration must load before the singleton logger knows its level,
	// so Load reports errors through a bare bootstrap logger.
	cfg := config.Load(zerolog.New(os.Stderr).With().Timestamp().Logger())
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: cfg.Env == "development"})

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Stores ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = mongoClient.Disconnect(disconnectCtx)
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()

	// --- Repositories ---
	users := mongodb.NewUserRepository(db)
	verifications := mongodb.NewVerificationRepository(db)
	bills := mongodb.NewBillRepository(db)
	audit := mongodb.NewAuditRepository(db)
	admins := mongodb.NewAdminRepository(db)
	menu := mongodb.NewMenuRepository(db)
	orders := mongodb.NewOrderRepository(db)
	coupons := mongodb.NewCouponRepository(db)
	settings := mongodb.NewSettingsRepository(db)

	if err := users.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("users index creation failed")
	}
	if err := bills.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("bills index creation failed")
	}

	// --- Services ---
	extractor := ocr.NewClient(ocr.Config{
		APIKey:  cfg.Vision.APIKey,
		BaseURL: cfg.Vision.BaseURL,
		Timeout: cfg.Vision.Timeout,
	}, log)
	marker := redisdb.NewDailyBillMarker(rdb)
	ledger := service.NewPointsLedger(users, bills, settings, marker, log)

	svc := api.Services{
		Auth:    service.NewAuthService(users, admins, ledger, cfg.JWTSecret, cfg.TokenTTL, log),
		Loyalty: service.NewLoyaltyService(users, verifications, audit, extractor, log),
		Bills:   service.NewBillService(users, bills, ledger, extractor, marker, log),
		Sweep:   service.NewSweepService(users, audit, log),
		Admin:   service.NewAdminService(users, bills, orders, verifications, audit, log),
		Orders:  service.NewOrderService(orders, menu, coupons, settings, audit, log),
		Catalog: service.NewCatalogService(menu, coupons, settings, log),
	}

	// --- Background expiry sweep ---
	sweeper := scheduler.NewExpirySweeper(svc.Sweep, cfg.SweepInterval, log)
	sweeper.Start(ctx)

	// --- HTTP server ---
	e := api.NewRouter(db, rdb, svc, cfg.JWTSecret, log)

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server start failed")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server started")

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}
}
