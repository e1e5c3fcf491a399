package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"membership-backend/bootstrap"
	"membership-backend/internal/interfaces/router"

	"github.com/rs/zerolog/log"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rt, err := bootstrap.New(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("bootstrap")
	}
	defer func() {
		if err := rt.Close(); err != nil {
			log.Error().Err(err).Msg("close resources")
		}
	}()

	health := router.HealthCheck(ctx, rt.DB, rt.Redis)
	log.Info().Str("status", health.Status).
		Str("database", health.Dependencies["database"].Status).
		Str("redis", health.Dependencies["redis"].Status).
		Msg("dependencies checked")

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", rt.Config.Port).Str("env", rt.Config.Env).Msg("starting membership-backend")
		errCh <- rt.App.Listen(":" + rt.Config.Port)
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil {
			log.Error().Err(err).Msg("http server")
		}
		return
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := rt.App.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown server")
	}
	log.Info().Msg("server stopped")
}
