package api

import (
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"wordrush/internal/engine"
	"wordrush/internal/timer"
)

// Server is the HTTP API server with WebSocket support. It combines the
// read-only REST router with the websocket hub that carries all game
// traffic.
type Server struct {
	engine      *engine.Engine
	timers      *timer.Scheduler
	router      *chi.Mux
	hub         *Hub
	rateLimiter *IPRateLimiter
}

// ServerConfig carries the collaborators a Server needs.
type ServerConfig struct {
	Engine      *engine.Engine
	Timers      *timer.Scheduler
	Hub         *Hub
	Topics      TopicSource
	CORSOrigins []string
}

// NewServer creates a new API server with default production configuration.
//
// IMPORTANT: Background workers do NOT start until Start() is called.
// This enables testing by allowing the server to be constructed without
// starting goroutines or opening network listeners.
func NewServer(cfg ServerConfig) *Server {
	s := &Server{
		engine: cfg.Engine,
		timers: cfg.Timers,
		hub:    cfg.Hub,
	}

	// Create rate limiter (we track it for cleanup on Stop)
	s.rateLimiter = NewIPRateLimiter(DefaultRateLimitConfig)

	s.router = NewRouter(RouterConfig{
		Directory:   cfg.Engine.Rooms(),
		Topics:      cfg.Topics,
		Timers:      cfg.Timers,
		LevelCount:  cfg.Engine.LevelCount(),
		RateLimiter: s.rateLimiter,
		CORSOrigins: cfg.CORSOrigins,
	})

	// The websocket route needs the hub instance, so it can't be part of
	// the generic NewRouter factory.
	s.router.Get("/ws", s.handleWS)

	return s
}

// Start begins the HTTP server AND starts background workers.
// This is the ONLY method that starts goroutines or opens network listeners.
//
// Call this method only once. To stop the server, signal the process.
func (s *Server) Start(addr string) error {
	go s.metricsLoop()

	log.Printf("🌐 API server starting on %s", addr)
	log.Printf("🔌 WebSocket endpoint: ws://localhost%s/ws", addr)

	return http.ListenAndServe(addr, s.router)
}

// Router returns the HTTP handler for use with httptest.
// Use this in integration tests instead of calling Start().
func (s *Server) Router() http.Handler {
	return s.router
}

// Stop performs graceful shutdown of background workers.
func (s *Server) Stop() {
	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}
	if s.timers != nil {
		s.timers.StopAll()
	}
}

// metricsLoop samples gauge metrics once per second.
func (s *Server) metricsLoop() {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for range ticker.C {
		rooms := s.engine.Rooms()
		UpdateRoomCount(rooms.Count())
		UpdatePlayerCount(rooms.PlayerCount())
		UpdateTimerCount(s.timers.ActiveCount())
	}
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	s.hub.HandleWebSocket(w, r)
}
