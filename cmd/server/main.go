package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	_ "github.com/parfumerie/storefront/docs"
	"github.com/parfumerie/storefront/internal/api"
	"github.com/parfumerie/storefront/internal/core/service"
	"github.com/parfumerie/storefront/internal/infrastructure/config"
	mongostore "github.com/parfumerie/storefront/internal/infrastructure/db/mongo"
	redisstore "github.com/parfumerie/storefront/internal/infrastructure/db/redis"
	"github.com/parfumerie/storefront/internal/infrastructure/http/handlers"
	"github.com/parfumerie/storefront/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

// @title        Parfumerie Storefront API
// @version      1.0
// @description  Catalog, accounts and admin API of the perfume storefront.
// @BasePath     /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Type "Bearer" followed by a space and the token.
func main() {
	_ = godotenv.Load()

	ctx := context.Background()
	cfg, err := config.Load(ctx)
	if err != nil {
		boot := logger.Init(logger.Options{})
		boot.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: "storefront",
	})

	mongoClient, db, err := mongostore.Connect(ctx, mongostore.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}

	rdb, err := redisstore.Connect(ctx, redisstore.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}

	userRepo := mongostore.NewUserRepository(db)
	productRepo := mongostore.NewProductRepository(db)
	if err := mongostore.EnsureIndexes(ctx, userRepo, productRepo); err != nil {
		log.Fatal().Err(err).Msg("failed to create indexes")
	}
	categories := redisstore.NewCategoryCache(rdb)

	router := api.NewRouter(api.Dependencies{
		Users:    service.NewUserService(userRepo, cfg.Auth.AdminEmail, logger.For("users")),
		Products: service.NewProductService(productRepo, categories, logger.For("catalog")),
		Seed:     service.NewSeedService(productRepo, userRepo, categories, logger.For("seed")),
		Tokens:   service.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL),
		Health: handlers.NewHealthHandler(map[string]handlers.Check{
			"mongodb": handlers.MongoCheck(db),
			"redis":   handlers.RedisCheck(rdb),
		}),
		Logger:       logger.For("http"),
		RecheckAdmin: cfg.Auth.RecheckAdmin,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("serving storefront")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown failed")
	}
	if err := rdb.Close(); err != nil {
		log.Error().Err(err).Msg("redis close failed")
	}
	if err := mongoClient.Disconnect(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("mongo disconnect failed")
	}
	log.Info().Msg("storefront stopped")
}
