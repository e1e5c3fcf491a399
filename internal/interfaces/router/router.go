package router

import (
	"context"

	healthsvc "membership-backend/internal/application/health"
	"membership-backend/internal/application/membership"
	"membership-backend/internal/application/ports"
	"membership-backend/internal/application/referrals"
	"membership-backend/internal/config"
	"membership-backend/internal/infrastructure/clock"
	"membership-backend/internal/infrastructure/database"
	"membership-backend/internal/infrastructure/repositories"
	adminhandler "membership-backend/internal/interfaces/handlers/admin"
	apphandler "membership-backend/internal/interfaces/handlers/applications"
	healthhandler "membership-backend/internal/interfaces/handlers/health"
	memberhandler "membership-backend/internal/interfaces/handlers/members"
	refhandler "membership-backend/internal/interfaces/handlers/referrals"
	reghandler "membership-backend/internal/interfaces/handlers/register"
	"membership-backend/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Deps are the process-wide resources the app is built on. DB and Config
// are required; Redis, Registry and Clock are optional.
type Deps struct {
	Config   *config.Config
	DB       *gorm.DB
	Redis    *redis.Client
	Registry *prometheus.Registry
	Clock    ports.Clock
}

type gormDBPinger struct {
	db *gorm.DB
}

func (g *gormDBPinger) Ping(ctx context.Context) error {
	return database.Ping(ctx, g.db)
}

// CreateApp wires repositories, use cases and handlers onto a new Fiber app.
func CreateApp(deps Deps) *fiber.App {
	cfg := deps.Config
	rdb := deps.Redis
	clk := deps.Clock
	if clk == nil {
		clk = clock.SystemClock{}
	}
	reg := deps.Registry
	if reg == nil {
		reg = prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	}

	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler:          middleware.ErrorHandler(rdb),
	})

	app.Use(middleware.Tracing())
	app.Use(middleware.RouteLogger())
	app.Use(middleware.CORS(middleware.CORSConfig{AllowedOrigins: cfg.AllowedOrigins}))
	app.Use(middleware.NewMetrics(reg).Handler())
	if rdb != nil {
		app.Use(middleware.HealthMarker(rdb))
	}

	store := repositories.NewGormStore(deps.DB)
	ms := &membership.Service{Store: store, Clock: clk, InviteTTL: cfg.InviteTTL}
	rs := &referrals.Service{Referrals: store.Repositories().Referrals}
	adminOnly := middleware.AdminAuth(cfg.AdminKey)
	memberOnly := middleware.MemberIdentity()

	// Health
	hh := &healthhandler.Handlers{Rdb: rdb, DB: &gormDBPinger{db: deps.DB}}
	app.Get("/health", hh.Status)
	app.Get("/health/json", hh.JSON)
	app.Get("/health/errors", adminOnly, hh.Errors)
	app.Post("/health/reset", adminOnly, hh.Reset)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	// Applications (public)
	ah := &apphandler.Handlers{Service: ms}
	app.Post("/applications", ah.Apply)

	// Admin
	adh := &adminhandler.Handlers{Service: ms}
	ag := app.Group("/admin/applications", adminOnly)
	ag.Get("/", adh.List)
	ag.Post("/:id/approve", adh.Approve)
	ag.Post("/:id/reject", adh.Reject)

	// Register (token is the credential)
	rh := &reghandler.Handlers{Service: ms}
	app.Post("/register", rh.Register)

	// Members
	mh := &memberhandler.Handlers{Service: ms}
	app.Get("/members/me", memberOnly, mh.Me)

	// Referrals
	refh := &refhandler.Handlers{Service: rs}
	rg := app.Group("/referrals", memberOnly)
	rg.Post("/", refh.Create)
	rg.Get("/", refh.List)
	rg.Patch("/:id", refh.UpdateStatus)

	return app
}

// HealthCheck is the collector used by /health/json, exposed for startup checks.
func HealthCheck(ctx context.Context, db *gorm.DB, rdb *redis.Client) healthsvc.CollectResult {
	return healthsvc.CollectHealth(ctx, rdb, &gormDBPinger{db: db})
}
