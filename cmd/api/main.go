package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"

	_ "github.com/tvonkoch-eng/D8-sub000/docs"
	"github.com/tvonkoch-eng/D8-sub000/internal/config"
	"github.com/tvonkoch-eng/D8-sub000/internal/database"
	"github.com/tvonkoch-eng/D8-sub000/internal/enhancer"
	"github.com/tvonkoch-eng/D8-sub000/internal/geocode"
	"github.com/tvonkoch-eng/D8-sub000/internal/handlers"
	"github.com/tvonkoch-eng/D8-sub000/internal/images"
	"github.com/tvonkoch-eng/D8-sub000/internal/logger"
	"github.com/tvonkoch-eng/D8-sub000/internal/middleware"
	"github.com/tvonkoch-eng/D8-sub000/internal/recommender"
	"github.com/tvonkoch-eng/D8-sub000/internal/services"
	"github.com/tvonkoch-eng/D8-sub000/internal/store"
	"github.com/tvonkoch-eng/D8-sub000/internal/telemetry"
)

// @title D8 Ideas API
// @version 1.0.0
// @description Date idea recommendation and venue API
// @BasePath /
// @schemes https http
func main() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
	defer logger.Sync()

	log := logger.GetLogger("main")

	cfg, err := config.Load()
	if err != nil {
		log.Errorf("failed to load configuration: %v", err)
		os.Exit(1)
	}

	ctx := context.Background()
	telShutdown, err := telemetry.Init(ctx, cfg.OTLPEndpoint)
	if err != nil {
		log.Warnf("telemetry init failed (continuing): %v", err)
		telShutdown = func(context.Context) error { return nil }
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := telShutdown(shutdownCtx); err != nil {
			log.Warnf("telemetry shutdown failed: %v", err)
		}
	}()

	// Without a database the API still runs on in-memory stores; results
	// are served but nothing survives a restart
	var (
		ideaCache  store.IdeaCache
		venueStore store.VenueStore
	)
	db, err := database.Connect(cfg)
	if err != nil {
		log.Warnf("database unavailable, falling back to in-memory stores: %v", err)
		ideaCache = store.NewMemoryIdeaCache()
		venueStore = store.NewMemoryVenueStore()
	} else {
		if err := database.Migrate(db); err != nil {
			log.Errorf("migration failed: %v", err)
			os.Exit(1)
		}
		ideaCache = store.NewGormIdeaCache(db.DB)
		venueStore = store.NewGormVenueStore(db.DB)
		go database.StartConnectionPoolMetricsCollector(ctx, db.DB, 15*time.Second)
	}

	resolver := geocode.NewResolver(cfg.Resolver)
	chain := images.NewChain(cfg.Images)
	generator := recommender.NewClient(cfg.Recommender)
	details := enhancer.New(cfg.Recommender)

	ideasService := services.NewIdeasService(resolver, ideaCache, venueStore, generator, chain)
	venueService := services.NewVenueService(venueStore, details, cfg.Sweep)

	app := fiber.New(fiber.Config{
		AppName:      "D8 Ideas API",
		ErrorHandler: handlers.ErrorHandler,
	})

	app.Use(recover.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format:     `{"time":"${time}","status":${status},"latency":"${latency}","ip":"${ip}","method":"${method}","path":"${path}","user_agent":"${ua}","error":"${error}"}` + "\n",
		TimeFormat: "2006-01-02T15:04:05Z07:00",
	}))
	app.Use(middleware.PrometheusMiddleware())
	app.Use(cors.New(cors.Config{
		AllowOrigins:  "*",
		AllowMethods:  "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		AllowHeaders:  "Accept, Accept-Encoding, Authorization, Content-Type, DNT, Origin, User-Agent, X-Requested-With",
		ExposeHeaders: "Content-Length, Content-Type",
		MaxAge:        86400,
	}))

	setupRoutes(app, ideasService, venueService, chain)

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		log.Info("shutting down server...")
		if err := app.Shutdown(); err != nil {
			log.Errorf("error shutting down server: %v", err)
		}
	}()

	log.Infof("server starting on port %s", cfg.Server.Port)
	if err := app.Listen(":" + cfg.Server.Port); err != nil {
		log.Errorf("failed to start server: %v", err)
		os.Exit(1)
	}
}

func setupRoutes(app *fiber.App, ideas *services.IdeasService, venues *services.VenueService, chain *images.Chain) {
	app.Get("/swagger/*", swagger.HandlerDefault)
	app.Get("/metrics", middleware.PrometheusHandler())

	app.Get("/", handlers.Root)
	app.Get("/health", handlers.HealthCheck)

	v1 := app.Group("/v1")
	handlers.SetupIdeaRoutes(v1, ideas, chain)
	handlers.SetupVenueRoutes(v1, venues)
}
