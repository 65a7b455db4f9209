package api

import (
	"net/http"

	"wordrush/internal/room"
	"wordrush/internal/timer"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// RoomDirectory defines the room registry methods used by the read-only
// REST endpoints. This interface enables mocking for tests without spinning
// up the full engine.
type RoomDirectory interface {
	// Room looks up a room by code
	Room(code string) (*room.Room, bool)
	// Rooms returns every open room
	Rooms() []*room.Room
	// Count returns the number of open rooms
	Count() int
	// PlayerCount returns the number of players across all rooms
	PlayerCount() int
}

// TopicSource lists the word topics available for new rooms.
type TopicSource interface {
	Topics() []string
}

// RouterConfig contains all dependencies needed to construct the HTTP router.
// This struct is designed for dependency injection and testability.
//
// Example usage in tests:
//
//	cfg := api.RouterConfig{
//	    Directory: manager,
//	    Topics:    dictionary,
//	    RateLimitConfig: &api.RateLimitConfig{
//	        RequestsPerSecond: 1000, // High limit for tests
//	        Burst:             1000,
//	    },
//	}
//	router := api.NewRouter(cfg)
//	ts := httptest.NewServer(router)
type RouterConfig struct {
	// Directory is the room registry (required)
	Directory RoomDirectory

	// Topics supplies the available word topics (required)
	Topics TopicSource

	// RateLimiter is an optional pre-configured rate limiter.
	// If nil, a new one will be created using RateLimitConfig.
	RateLimiter *IPRateLimiter

	// RateLimitConfig is optional configuration for the rate limiter.
	// Only used if RateLimiter is nil. If both are nil, uses DefaultRateLimitConfig.
	RateLimitConfig *RateLimitConfig

	// Timers is the optional countdown scheduler. When set, the leaderboard
	// endpoint reports time remaining on the current level.
	Timers *timer.Scheduler

	// LevelCount is the number of levels per game, reported as the
	// leaderboard's progress total.
	LevelCount int

	// CORSOrigins is an optional list of allowed CORS origins.
	// If nil, uses local development origins.
	CORSOrigins []string

	// DisableLogging disables the request logger middleware (useful for benchmarks).
	DisableLogging bool
}

// routerHandlers holds the handler functions for the router.
type routerHandlers struct {
	directory  RoomDirectory
	topics     TopicSource
	timers     *timer.Scheduler
	levelTotal int
	renders    *renderCache
}

// NewRouter constructs the HTTP router with all middleware and routes.
//
// IMPORTANT: This function starts no goroutines and opens no listeners
// (the rate limiter's cleanup loop is the one exception, and only when no
// limiter is injected). This makes it safe to use in tests with
// httptest.NewServer.
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	// Middleware - Order matters!
	if !cfg.DisableLogging {
		r.Use(middleware.Logger)
	}
	r.Use(middleware.Recoverer)

	// Rate limiting (BEFORE CORS to reject early and save CPU)
	rateLimiter := cfg.RateLimiter
	if rateLimiter == nil {
		rateLimitCfg := DefaultRateLimitConfig
		if cfg.RateLimitConfig != nil {
			rateLimitCfg = *cfg.RateLimitConfig
		}
		rateLimiter = NewIPRateLimiter(rateLimitCfg)
	}
	r.Use(rateLimiter.Middleware)

	// CORS configuration
	corsOrigins := cfg.CORSOrigins
	if corsOrigins == nil {
		corsOrigins = []string{
			"http://localhost:*",
			"http://127.0.0.1:*",
		}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   corsOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}))

	h := &routerHandlers{
		directory:  cfg.Directory,
		topics:     cfg.Topics,
		timers:     cfg.Timers,
		levelTotal: cfg.LevelCount,
		renders:    newRenderCache(defaultMaxRenders, renderTTL),
	}

	// Read-only REST surface; all game mutation happens over the websocket.
	r.Route("/api", func(r chi.Router) {
		r.Get("/stats", h.handleGetStats)
		r.Get("/topics", h.handleGetTopics)

		r.Get("/rooms", h.handleListRooms)
		r.Get("/rooms/{code}", h.handleGetRoom)
		r.Get("/rooms/{code}/leaderboard", h.handleGetLeaderboard)
		r.Get("/rooms/{code}/grid.png", h.handleGetGridImage)
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
