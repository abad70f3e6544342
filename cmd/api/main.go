package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	_ "github.com/distribuidora/analise-credito/docs"
	"github.com/distribuidora/analise-credito/internal/api"
	"github.com/distribuidora/analise-credito/internal/core/service"
	mongodb "github.com/distribuidora/analise-credito/internal/infrastructure/db/mongo"
	redisdb "github.com/distribuidora/analise-credito/internal/infrastructure/db/redis"
	"github.com/distribuidora/analise-credito/internal/pkg/config"
	"github.com/distribuidora/analise-credito/pkg/logger"
)

// @title                       Análise de Crédito API
// @version                     1.0
// @description                 Credit analysis workflow for sales agents and analysts.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: !cfg.IsProduction(),
	})

	if err := run(cfg, log); err != nil {
		log.Fatal().Err(err).Msg("api encerrada com erro")
	}
}

func run(cfg *config.Config, log zerolog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return err
	}
	defer func() {
		dctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = client.Disconnect(dctx)
	}()

	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		return fmt.Errorf("mongo indexes: %w", err)
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
	if err != nil {
		return err
	}
	defer rdb.Close()

	if cfg.Admin.Email != "" {
		auth := service.NewAuthService(mongodb.NewAuthRepository(db), cfg.JWTSecret, cfg.TokenTTL, log)
		created, err := auth.EnsureAdmin(ctx, cfg.Admin.Name, cfg.Admin.Email, cfg.Admin.Password)
		if err != nil {
			return fmt.Errorf("bootstrap admin: %w", err)
		}
		if created {
			log.Info().Str("email", cfg.Admin.Email).Msg("administrador inicial criado")
		}
	}

	e, err := api.NewRouter(db, rdb, cfg, log)
	if err != nil {
		return fmt.Errorf("router: %w", err)
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("API ouvindo")
		errCh <- e.Start(":" + cfg.Port)
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("encerrando...")
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
