package server

import (
	"context"
	"log"

	"github.com/CHIEF1K/cape-quest-paths/internal/auth"
	"github.com/CHIEF1K/cape-quest-paths/internal/config"
	"github.com/CHIEF1K/cape-quest-paths/internal/gem"
	"github.com/CHIEF1K/cape-quest-paths/internal/mapview"
	"github.com/CHIEF1K/cape-quest-paths/internal/nav"
	"github.com/CHIEF1K/cape-quest-paths/internal/recorder"
	"github.com/CHIEF1K/cape-quest-paths/internal/route"
	"github.com/CHIEF1K/cape-quest-paths/internal/share"
	"github.com/CHIEF1K/cape-quest-paths/internal/stream"
	"github.com/CHIEF1K/cape-quest-paths/internal/visited"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

type Server struct {
	App      *fiber.App
	Cfg      config.Config
	DB       *pgxpool.Pool
	Redis    *redis.Client
	Stream   *stream.Hub
	Store    route.Store
	Catalog  *gem.Catalog
	Tracker  *visited.Tracker
	Recorder *recorder.Recorder
}

func NewServer(cfg config.Config, pg *pgxpool.Pool, redisClient *redis.Client) *Server {
	app := fiber.New()
	app.Use(recover.New())
	app.Use(logger.New())

	s := &Server{
		App:     app,
		Cfg:     cfg,
		DB:      pg,
		Redis:   redisClient,
		Stream:  stream.NewHub(redisClient),
		Store:   selectStore(pg, redisClient),
		Catalog: gem.DefaultCatalog(),
	}

	s.Tracker = visited.NewTracker(s.Catalog, s.Store, s.Stream, cfg.ProximityKm)
	if err := s.Tracker.Restore(context.Background()); err != nil {
		log.Printf("visited restore failed: %v", err)
	}

	src := recorder.NewPushSource()
	s.Recorder = recorder.NewRecorder(src, s.Store, s.Tracker, s.Stream)

	registerRoutes(s, src)
	return s
}

// selectStore prefers Postgres, falls back to Redis, and runs fully
// in-memory when neither is configured.
func selectStore(pg *pgxpool.Pool, redisClient *redis.Client) route.Store {
	if pg != nil {
		store := route.NewPostgresStore(pg)
		if err := store.EnsureSchema(context.Background()); err != nil {
			log.Printf("schema setup failed: %v", err)
		}
		return store
	}
	if redisClient != nil {
		return route.NewRedisStore(redisClient)
	}
	log.Printf("no postgres or redis configured, routes will not survive restarts")
	return route.NewMemoryStore()
}

func registerRoutes(s *Server, src *recorder.PushSource) {
	s.App.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	jwtMiddleware := auth.JWTMiddleware(s.Cfg.JWTSecret)

	authSvc, err := auth.NewService(s.Cfg.JWTSecret, s.Cfg.AccessCode)
	if err != nil {
		log.Fatalf("auth setup failed: %v", err)
	}
	auth.RegisterRoutes(s.App.Group("/auth"), authSvc)

	gem.RegisterRoutes(s.App.Group("/gems"), s.Catalog)
	recorder.RegisterRoutes(s.App.Group("/recorder"), s.Recorder, src, jwtMiddleware)
	visited.RegisterRoutes(s.App.Group("/visited"), s.Tracker, jwtMiddleware)
	route.RegisterRoutes(s.App.Group("/routes"), s.Store)
	share.RegisterRoutes(s.App, s.Store, share.NewBuilder(s.Cfg.BaseURL, s.Cfg.QREndpoint))
	mapview.RegisterRoutes(s.App.Group("/map"), mapview.NewView(s.Catalog, s.Store, s.Tracker, s.Recorder))
	stream.RegisterRoutes(s.App.Group("/stream"), s.Stream)

	navSvc, err := nav.NewService(s.Cfg.MapsAPIKey, s.Catalog)
	if err != nil {
		log.Printf("directions client unavailable: %v", err)
		navSvc, _ = nav.NewService("", s.Catalog)
	}
	nav.RegisterRoutes(s.App, navSvc)
}
