package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"membership-backend/internal/config"
	"membership-backend/internal/infrastructure/database"
	"membership-backend/internal/interfaces/router"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Runtime is the wired Fiber app plus the connections it owns.
type Runtime struct {
	Config *config.Config
	App    *fiber.App
	DB     *gorm.DB
	Redis  *redis.Client
}

// New loads config, opens and migrates the database, connects Redis when
// configured, and builds the app. Used by cmd/api and the serverless handler in api/.
func New(ctx context.Context) (*Runtime, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	SetupLogger(cfg)

	db, err := database.Open(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := database.AutoMigrate(ctx, db); err != nil {
		_ = database.Close(db)
		return nil, fmt.Errorf("migrate database: %w", err)
	}

	var rdb *redis.Client
	if cfg.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			_ = database.Close(db)
			return nil, fmt.Errorf("parse REDIS_URL: %w", err)
		}
		rdb = redis.NewClient(opt)
	}

	if cfg.AdminKey == "" {
		log.Warn().Msg("ADMIN_KEY is not set; admin routes will reject every request")
	}

	return &Runtime{
		Config: cfg,
		App:    router.CreateApp(router.Deps{Config: cfg, DB: db, Redis: rdb}),
		DB:     db,
		Redis:  rdb,
	}, nil
}

// Close releases the database pool and the Redis client.
func (r *Runtime) Close() error {
	var errs []error
	if r.Redis != nil {
		errs = append(errs, r.Redis.Close())
	}
	errs = append(errs, database.Close(r.DB))
	return errors.Join(errs...)
}

// SetupLogger applies LOG_LEVEL; outside production logs go to a console writer.
func SetupLogger(cfg *config.Config) {
	zerolog.SetGlobalLevel(cfg.LogLevel)
	if !cfg.IsProduction() {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
}
