package main

import (
	"log"
	"math/rand"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"wordrush/internal/api"
	"wordrush/internal/config"
	"wordrush/internal/dict"
	"wordrush/internal/engine"
	"wordrush/internal/room"
	"wordrush/internal/timer"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("💡 No .env file found, using environment variables only")
	} else {
		log.Println("✅ Loaded environment from .env")
	}

	log.Println("🔤 ================================")
	log.Println("🔤  WORD RUSH - GAME SERVER")
	log.Println("🔤 ================================")

	// Load centralized configuration (SSOT - Single Source of Truth)
	cfg := config.Load()

	dictionary, err := dict.Load(cfg.Dict.Dir, cfg.Dict.MinWordLength)
	if err != nil {
		log.Fatalf("❌ Failed to load dictionary: %v", err)
	}
	topics := dictionary.Topics()
	log.Printf("📚 Dictionary loaded: %d topics %v", len(topics), topics)

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	rooms := room.NewManager(cfg.Room.CodeLength, cfg.Room.MaxPlayers, cfg.Room.MinPlayers, rng)
	timers := timer.NewScheduler()

	// The hub delivers engine events; the dispatcher feeds inbound messages
	// back into the engine. Bind closes the loop.
	hub := api.NewHub(rooms)
	eng := engine.New(&cfg, rooms, timers, dictionary, hub)
	hub.Bind(api.NewDispatcher(eng, hub))

	log.Printf("🏠 Rooms: up to %d players, %d-char codes", cfg.Room.MaxPlayers, cfg.Room.CodeLength)
	log.Printf("🧩 Levels: %d per game, %dx%d up to %dx%d grids",
		cfg.Level.Count, cfg.Grid.MinSize, cfg.Grid.MinSize, cfg.Grid.MaxSize, cfg.Grid.MaxSize)

	// Start debug server (pprof + Prometheus, localhost only)
	if os.Getenv("DISABLE_DEBUG_SERVER") != "true" {
		if err := api.StartDebugServer(api.DefaultObservabilityConfig()); err != nil {
			log.Printf("⚠️ Debug server disabled: %v", err)
		}
	}

	server := api.NewServer(api.ServerConfig{
		Engine:      eng,
		Timers:      timers,
		Hub:         hub,
		Topics:      dictionary,
		CORSOrigins: cfg.Server.CORSOrigins,
	})

	go func() {
		addr := ":" + strconv.Itoa(cfg.Server.Port)
		if err := server.Start(addr); err != nil {
			log.Fatalf("❌ Server error: %v", err)
		}
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("👋 Shutting down...")
	server.Stop()
}
