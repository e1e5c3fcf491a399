package main

import (
	"context"
	"math/rand/v2"
	"os"
	"time"

	"membership-backend/internal/config"
	"membership-backend/internal/infrastructure/database"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Seed loads demo data into DATABASE_URL, replacing whatever is there.
func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	if cfg.IsProduction() {
		log.Fatal().Msg("refusing to seed a production database")
	}

	db, err := database.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("open database")
	}
	defer func() {
		if err := database.Close(db); err != nil {
			log.Error().Err(err).Msg("close database")
		}
	}()
	if err := database.AutoMigrate(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("migrate database")
	}

	now := time.Now().UTC()
	rng := rand.New(rand.NewPCG(uint64(now.UnixNano()), 0x5eed))
	sum, err := database.Seed(ctx, db, rng, now)
	if err != nil {
		log.Fatal().Err(err).Msg("seed database")
	}
	log.Info().
		Int("members", sum.Members).
		Int("applications", sum.Applications).
		Int("invites", sum.Invites).
		Int("referrals", sum.Referrals).
		Msg("seed complete")
}
