// Package config provides centralized configuration management.
// This is the SINGLE SOURCE OF TRUTH for all room, level, grid, scoring
// and booster settings.
//
// IMPORTANT: When changing default values, only modify this file.
// All other parts of the codebase should reference these values.
package config

import (
	"os"
	"strconv"
)

// =============================================================================
// SERVER CONFIGURATION
// =============================================================================

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port        int
	CORSOrigins []string
}

// DefaultServer returns the default server configuration.
func DefaultServer() ServerConfig {
	return ServerConfig{
		Port: 3000,
		CORSOrigins: []string{
			"http://localhost:*",
			"http://127.0.0.1:*",
		},
	}
}

// ServerFromEnv returns server configuration with environment variable overrides.
func ServerFromEnv() ServerConfig {
	cfg := DefaultServer()

	if p := getEnvInt("PORT", 0); p > 0 {
		cfg.Port = p
	}

	return cfg
}

// =============================================================================
// ROOM CONFIGURATION
// =============================================================================

// RoomConfig holds room lifecycle settings.
type RoomConfig struct {
	CodeLength int // Room code length (always [A-Z0-9])
	MaxPlayers int // Hard cap on players per room
	MinPlayers int // Minimum players before a game can start
}

// DefaultRoom returns the default room configuration.
func DefaultRoom() RoomConfig {
	return RoomConfig{
		CodeLength: 6,
		MaxPlayers: 20,
		MinPlayers: 2,
	}
}

// RoomFromEnv returns room configuration with environment variable overrides.
func RoomFromEnv() RoomConfig {
	cfg := DefaultRoom()

	if mp := getEnvInt("ROOM_MAX_PLAYERS", 0); mp > 0 {
		cfg.MaxPlayers = mp
	}

	return cfg
}

// =============================================================================
// LEVEL & GRID CONFIGURATION
// =============================================================================

// LevelConfig holds level progression settings.
type LevelConfig struct {
	Count             int // Levels per game
	BaseDuration      int // Level 1 duration in seconds
	TransitionSeconds int // Countdown between GAME_STARTING / LEVEL_END and the next level
}

// DefaultLevel returns the default level configuration.
func DefaultLevel() LevelConfig {
	return LevelConfig{
		Count:             10,
		BaseDuration:      30,
		TransitionSeconds: 5,
	}
}

// LevelFromEnv returns level configuration with environment variable overrides.
func LevelFromEnv() LevelConfig {
	cfg := DefaultLevel()

	if c := getEnvInt("LEVEL_COUNT", 0); c > 0 {
		cfg.Count = c
	}
	if d := getEnvInt("LEVEL_DURATION", 0); d > 0 {
		cfg.BaseDuration = d
	}

	return cfg
}

// GridConfig holds grid sizing bounds.
type GridConfig struct {
	MinSize int // Smallest grid dimension (level 1)
	MaxSize int // Largest grid dimension (final levels)
}

// DefaultGrid returns the default grid configuration.
func DefaultGrid() GridConfig {
	return GridConfig{
		MinSize: 4,
		MaxSize: 8,
	}
}

// =============================================================================
// SCORING CONFIGURATION
// =============================================================================

// ScoreConfig holds all scoring constants.
type ScoreConfig struct {
	BasePoints          int     // Base value for a correct word
	SpeedMultiplierMin  float64 // Speed factor with no time remaining
	SpeedMultiplierMax  float64 // Speed factor with all time remaining
	StreakBonus         float64 // Multiplier bonus per streak step
	StreakMaxMultiplier float64 // Cap on the streak multiplier
	PenaltyWrong        int     // Points deducted per wrong attempt (negative)
	PenaltyMax          int     // Maximum number of penalized wrong attempts
}

// DefaultScore returns the default scoring configuration.
func DefaultScore() ScoreConfig {
	return ScoreConfig{
		BasePoints:          1000,
		SpeedMultiplierMin:  0.5,
		SpeedMultiplierMax:  1.0,
		StreakBonus:         0.1,
		StreakMaxMultiplier: 1.5,
		PenaltyWrong:        -150,
		PenaltyMax:          2,
	}
}

// =============================================================================
// BOOSTER CONFIGURATION
// =============================================================================

// BoosterConfig holds booster effect constants.
type BoosterConfig struct {
	DoubleUpCooldown int     // Seconds before double-up can be re-armed
	FreezeSeconds    int     // Incapacitation length for frozen opponents
	RevealCost       int     // Points deducted when reveal is used
	TimePlusSeconds  int     // Seconds added to the room timer per use
	TimePlusMaxUses  int     // Uses of time-plus per level
	SkipHalfRatio    float64 // Fraction of max level points granted on skip
}

// DefaultBooster returns the default booster configuration.
func DefaultBooster() BoosterConfig {
	return BoosterConfig{
		DoubleUpCooldown: 3,
		FreezeSeconds:    3,
		RevealCost:       100,
		TimePlusSeconds:  5,
		TimePlusMaxUses:  2,
		SkipHalfRatio:    0.5,
	}
}

// =============================================================================
// DICTIONARY CONFIGURATION
// =============================================================================

// DictConfig holds dictionary loading settings.
type DictConfig struct {
	Dir           string // Optional directory of topic word lists (*.txt); empty = embedded
	MinWordLength int    // Shortest word accepted into a dictionary
}

// DefaultDict returns the default dictionary configuration.
func DefaultDict() DictConfig {
	return DictConfig{
		Dir:           "",
		MinWordLength: 3,
	}
}

// DictFromEnv returns dictionary configuration with environment variable overrides.
func DictFromEnv() DictConfig {
	cfg := DefaultDict()

	if dir := os.Getenv("DICT_DIR"); dir != "" {
		cfg.Dir = dir
	}

	return cfg
}

// =============================================================================
// COMPLETE APP CONFIGURATION
// =============================================================================

// AppConfig holds the complete application configuration.
type AppConfig struct {
	Server  ServerConfig
	Room    RoomConfig
	Level   LevelConfig
	Grid    GridConfig
	Score   ScoreConfig
	Booster BoosterConfig
	Dict    DictConfig
}

// Load returns the complete configuration with environment overrides.
func Load() AppConfig {
	return AppConfig{
		Server:  ServerFromEnv(),
		Room:    RoomFromEnv(),
		Level:   LevelFromEnv(),
		Grid:    DefaultGrid(),
		Score:   DefaultScore(),
		Booster: DefaultBooster(),
		Dict:    DictFromEnv(),
	}
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}
