// Package engine drives the game flow: room lifecycle, level progression,
// word submissions and booster effects. It owns no connections; all
// outbound traffic goes through the Notifier so the transport layer stays
// swappable in tests.
package engine

import (
	"log"
	"math/rand"
	"sync"
	"time"

	"wordrush/internal/config"
	"wordrush/internal/dict"
	"wordrush/internal/game"
	"wordrush/internal/protocol"
	"wordrush/internal/room"
	"wordrush/internal/timer"
)

// Notifier delivers typed messages to players. Implementations must be safe
// for concurrent use and must treat missing connections as a no-op.
type Notifier interface {
	ToPlayer(playerID, msgType string, data any)
	ToRoom(roomCode, msgType string, data any)
	ToRoomExcept(roomCode, exceptID, msgType string, data any)
}

// Engine coordinates rooms, sessions, timers and scoring.
type Engine struct {
	cfg      *config.AppConfig
	rooms    *room.Manager
	timers   *timer.Scheduler
	words    dict.Lookup
	scorer   *game.Scorer
	levels   *game.Levels
	boosters map[game.BoosterType]game.BoosterDef
	notify   Notifier

	rngMu sync.Mutex
	rng   *rand.Rand
}

// New wires an engine from its collaborators.
func New(cfg *config.AppConfig, rooms *room.Manager, timers *timer.Scheduler, words dict.Lookup, notify Notifier) *Engine {
	scorer := &game.Scorer{
		BasePoints:         cfg.Score.BasePoints,
		SpeedMin:           cfg.Score.SpeedMultiplierMin,
		SpeedMax:           cfg.Score.SpeedMultiplierMax,
		StreakBonus:        cfg.Score.StreakBonus,
		StreakMaxMult:      cfg.Score.StreakMaxMultiplier,
		PenaltyWrong:       cfg.Score.PenaltyWrong,
		PenaltyEscalations: cfg.Score.PenaltyMax,
	}
	levels := &game.Levels{
		Count:        cfg.Level.Count,
		MinGridSize:  cfg.Grid.MinSize,
		MaxGridSize:  cfg.Grid.MaxSize,
		BaseDuration: cfg.Level.BaseDuration,
	}
	defs := game.DefaultBoosterDefs()
	defs[game.BoosterDoubleUp] = game.BoosterDef{
		Type:     game.BoosterDoubleUp,
		MaxUses:  1,
		Cooldown: time.Duration(cfg.Booster.DoubleUpCooldown) * time.Second,
	}
	defs[game.BoosterFreeze] = game.BoosterDef{
		Type:       game.BoosterFreeze,
		MaxUses:    1,
		MinPlayers: cfg.Room.MinPlayers,
	}
	defs[game.BoosterReveal] = game.BoosterDef{
		Type:    game.BoosterReveal,
		MaxUses: 2,
		Cost:    cfg.Booster.RevealCost,
	}
	defs[game.BoosterTimePlus] = game.BoosterDef{
		Type:    game.BoosterTimePlus,
		MaxUses: cfg.Booster.TimePlusMaxUses,
	}
	return &Engine{
		cfg:      cfg,
		rooms:    rooms,
		timers:   timers,
		words:    words,
		scorer:   scorer,
		levels:   levels,
		boosters: defs,
		notify:   notify,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Rooms exposes the room registry for read-only status endpoints.
func (e *Engine) Rooms() *room.Manager {
	return e.rooms
}

// LevelCount returns how many levels a game runs.
func (e *Engine) LevelCount() int {
	return e.levels.Count
}

// Timers exposes the countdown scheduler for metrics sampling.
func (e *Engine) Timers() *timer.Scheduler {
	return e.timers
}

// CreateRoom makes a room for a new player and reports it back to them.
func (e *Engine) CreateRoom(playerID, nickname, topic string) (*room.Room, error) {
	if !e.words.HasTopic(topic) {
		topics := e.words.Topics()
		if len(topics) == 0 {
			return nil, game.ErrRoomNotFound
		}
		topic = topics[0]
	}
	p := game.NewPlayer(playerID, nickname)
	r, err := e.rooms.Create(p, topic)
	if err != nil {
		return nil, err
	}
	e.notify.ToPlayer(playerID, protocol.TypeRoomCreated, protocol.RoomCreatedPayload{
		RoomCode: r.Code,
		PlayerID: playerID,
		Room:     r.Snapshot(),
	})
	return r, nil
}

// JoinRoom admits a player into an existing room and announces them.
func (e *Engine) JoinRoom(playerID, nickname, code string) (*room.Room, error) {
	p := game.NewPlayer(playerID, nickname)
	r, err := e.rooms.Join(code, p)
	if err != nil {
		return nil, err
	}
	log.Printf("👤 %s joined room %s (%d players)", nickname, r.Code, r.PlayerCount())
	e.notify.ToPlayer(playerID, protocol.TypeRoomJoined, protocol.RoomJoinedPayload{
		RoomCode: r.Code,
		PlayerID: playerID,
		Room:     r.Snapshot(),
	})
	e.notify.ToRoomExcept(r.Code, playerID, protocol.TypePlayerJoined, protocol.PlayerJoinedPayload{
		Player: p.Stats(),
	})
	e.notify.ToRoom(r.Code, protocol.TypeRoomState, protocol.RoomStatePayload{Room: r.Snapshot()})
	return r, nil
}

// LeaveRoom removes a player, reassigns the host role if needed and tears
// the room down when it empties. Safe to call for players not in any room.
func (e *Engine) LeaveRoom(playerID string) {
	r, ok := e.rooms.RoomByPlayer(playerID)
	if !ok {
		return
	}
	nickname := ""
	if p, found := r.Player(playerID); found {
		nickname = p.Nickname
	}
	if s := r.Session(); s != nil {
		s.RemovePlayer(playerID)
	}

	left, newHost, destroyed := e.rooms.Leave(playerID)
	if left == nil {
		return
	}
	if destroyed {
		e.timers.Stop(left.Code)
		return
	}
	e.notify.ToRoom(left.Code, protocol.TypePlayerLeft, protocol.PlayerLeftPayload{
		PlayerID:  playerID,
		Nickname:  nickname,
		NewHostID: newHost,
	})
	e.notify.ToRoom(left.Code, protocol.TypeRoomState, protocol.RoomStatePayload{Room: left.Snapshot()})

	// A game cannot continue below the player minimum.
	if left.Status() == room.StatusInGame && left.PlayerCount() < e.cfg.Room.MinPlayers {
		e.finishGame(left)
	}
}

// SetReady flips a player's lobby readiness and rebroadcasts the room
// state.
func (e *Engine) SetReady(playerID string, ready bool) error {
	r, ok := e.rooms.RoomByPlayer(playerID)
	if !ok {
		return game.ErrRoomNotFound
	}
	if err := r.SetReady(playerID, ready); err != nil {
		return err
	}
	e.notify.ToRoom(r.Code, protocol.TypePlayerReady, protocol.PlayerReadyPayload{
		PlayerID: playerID,
		Ready:    ready,
	})
	e.notify.ToRoom(r.Code, protocol.TypeRoomState, protocol.RoomStatePayload{Room: r.Snapshot()})
	return nil
}

// StartGame validates the host's start request, moves the room into a
// countdown and schedules the first level.
func (e *Engine) StartGame(playerID string) error {
	r, ok := e.rooms.RoomByPlayer(playerID)
	if !ok {
		return game.ErrRoomNotFound
	}
	if err := r.CanStart(playerID); err != nil {
		return err
	}

	session := game.NewSession(r.PlayerIDs(), e.boosters)
	session.SetPhase(game.PhaseCountdown)
	r.SetSession(session)
	r.SetStatus(room.StatusInGame)
	for _, p := range r.Players() {
		p.ResetRound()
	}

	countdown := e.cfg.Level.TransitionSeconds
	log.Printf("🎮 Game starting in room %s (%d players, topic %s)", r.Code, r.PlayerCount(), r.Topic())
	e.notify.ToRoom(r.Code, protocol.TypeGameStarting, protocol.GameStartingPayload{Countdown: countdown})

	code := r.Code
	e.timers.After(code, countdown, func() {
		e.startLevel(code, 1)
	})
	return nil
}

// PauseGame holds the current level at the host's request. The level timer
// freezes with it, so no time is lost while paused.
func (e *Engine) PauseGame(playerID string) error {
	r, session, err := e.hostSession(playerID)
	if err != nil {
		return err
	}
	if !session.Pause() {
		return game.ErrNoActiveSession
	}
	e.timers.Pause(r.Code)
	log.Printf("⏸️ Game paused in room %s", r.Code)
	e.notify.ToRoom(r.Code, protocol.TypeGamePaused, protocol.GamePausedPayload{
		PlayerID:  playerID,
		Remaining: e.timers.Remaining(r.Code),
	})
	return nil
}

// ResumeGame reverses a host pause.
func (e *Engine) ResumeGame(playerID string) error {
	r, session, err := e.hostSession(playerID)
	if err != nil {
		return err
	}
	if !session.Resume() {
		return game.ErrNoActiveSession
	}
	e.timers.Resume(r.Code)
	log.Printf("▶️ Game resumed in room %s", r.Code)
	e.notify.ToRoom(r.Code, protocol.TypeGameResumed, protocol.GamePausedPayload{
		PlayerID:  playerID,
		Remaining: e.timers.Remaining(r.Code),
	})
	return nil
}

// hostSession resolves the caller's room and session for host-only actions.
func (e *Engine) hostSession(playerID string) (*room.Room, *game.Session, error) {
	r, ok := e.rooms.RoomByPlayer(playerID)
	if !ok {
		return nil, nil, game.ErrRoomNotFound
	}
	if r.HostID() != playerID {
		return nil, nil, game.ErrNotHost
	}
	session := r.Session()
	if session == nil {
		return nil, nil, game.ErrNoActiveSession
	}
	return r, session, nil
}

// randRand runs fn with the engine's seeded source. Level generation for
// different rooms can race, so the source is serialized here.
func (e *Engine) randRand(fn func(rng *rand.Rand)) {
	e.rngMu.Lock()
	defer e.rngMu.Unlock()
	fn(e.rng)
}
