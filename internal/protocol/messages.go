// Package protocol defines the websocket wire format: a typed envelope with
// a closed set of type tags and the payload structs behind them.
package protocol

import (
	"encoding/json"
	"time"
)

// Inbound type tags.
const (
	TypeCreateRoom  = "CREATE_ROOM"
	TypeJoinRoom    = "JOIN_ROOM"
	TypeLeaveRoom   = "LEAVE_ROOM"
	TypePlayerReady = "PLAYER_READY"
	TypeStartGame   = "START_GAME"
	TypeSubmitWord  = "SUBMIT_WORD"
	TypeUseBooster  = "USE_BOOSTER"
	TypeRequestHint = "REQUEST_HINT"
	TypePauseGame   = "PAUSE_GAME"
	TypeResumeGame  = "RESUME_GAME"
)

// Outbound type tags.
const (
	TypeRoomCreated       = "ROOM_CREATED"
	TypeRoomJoined        = "ROOM_JOINED"
	TypeRoomState         = "ROOM_STATE"
	TypePlayerJoined      = "PLAYER_JOINED"
	TypePlayerLeft        = "PLAYER_LEFT"
	TypeGameStarting      = "GAME_STARTING"
	TypeLevelStart        = "LEVEL_START"
	TypeLevelEnd          = "LEVEL_END"
	TypeWordAccepted      = "WORD_ACCEPTED"
	TypeWordRejected      = "WORD_REJECTED"
	TypeOpponentScored    = "OPPONENT_SCORED"
	TypeLeaderboardUpdate = "LEADERBOARD_UPDATE"
	TypeBoosterApplied    = "BOOSTER_APPLIED"
	TypeEffectReceived    = "EFFECT_RECEIVED"
	TypeGameEnd           = "GAME_END"
	TypeHintResponse      = "HINT_RESPONSE"
	TypeGamePaused        = "GAME_PAUSED"
	TypeGameResumed       = "GAME_RESUMED"
	TypeTimerTick         = "TIMER_TICK"
	TypeError             = "ERROR"
	TypeInvalidAction     = "INVALID_ACTION"
)

// Envelope is the wire-level frame for every message in both directions.
// Timestamp is Unix milliseconds, set by the sender.
type Envelope struct {
	Type      string          `json:"type"`
	Data      json.RawMessage `json:"data,omitempty"`
	Timestamp int64           `json:"timestamp"`
}

// NewEnvelope marshals data into a stamped envelope. Marshal failures on
// our own payload structs cannot happen in practice; the error is surfaced
// so callers can log it.
func NewEnvelope(msgType string, data any) (Envelope, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return Envelope{}, err
	}
	return Envelope{
		Type:      msgType,
		Data:      raw,
		Timestamp: time.Now().UnixMilli(),
	}, nil
}

// CellRef is one step of a traced path.
type CellRef struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Inbound payloads.

type CreateRoomRequest struct {
	Nickname string `json:"nickname"`
	Topic    string `json:"topic"`
}

type JoinRoomRequest struct {
	RoomCode string `json:"roomCode"`
	Nickname string `json:"nickname"`
}

type PlayerReadyRequest struct {
	Ready bool `json:"ready"`
}

type SubmitWordRequest struct {
	RoomCode string    `json:"roomCode"`
	PlayerID string    `json:"playerId"`
	Cells    []CellRef `json:"cells"`
	Word     string    `json:"word"`
}

type UseBoosterRequest struct {
	RoomCode string `json:"roomCode"`
	PlayerID string `json:"playerId"`
	Booster  string `json:"booster"`
	TargetID string `json:"targetId,omitempty"`
}

// Outbound payloads. Room and player fields use snapshot structs from the
// game and room packages, carried as pre-marshaled values by the callers.

type RoomCreatedPayload struct {
	RoomCode string `json:"roomCode"`
	PlayerID string `json:"playerId"`
	Room     any    `json:"room"`
}

type RoomJoinedPayload struct {
	RoomCode string `json:"roomCode"`
	PlayerID string `json:"playerId"`
	Room     any    `json:"room"`
}

type RoomStatePayload struct {
	Room any `json:"room"`
}

type PlayerJoinedPayload struct {
	Player any `json:"player"`
}

type PlayerLeftPayload struct {
	PlayerID  string `json:"playerId"`
	Nickname  string `json:"nickname"`
	NewHostID string `json:"newHostId,omitempty"`
}

type GameStartingPayload struct {
	Countdown int `json:"countdown"`
}

type LevelStartPayload struct {
	Level     int    `json:"level"`
	GridSize  int    `json:"gridSize"`
	WordCount int    `json:"wordCount"`
	Duration  int    `json:"duration"`
	Grid      any    `json:"grid"`
	Topic     string `json:"topic"`
}

type LevelEndPayload struct {
	Level       int      `json:"level"`
	WinnerID    string   `json:"winnerId,omitempty"`
	Uncompleted []string `json:"uncompleted,omitempty"`
	Scores      any      `json:"scores"`
	NextLevelIn int      `json:"nextLevelIn"`
}

type WordAcceptedPayload struct {
	Word       string    `json:"word"`
	Points     int       `json:"points"`
	TotalScore int       `json:"totalScore"`
	Streak     int       `json:"streak"`
	Doubled    bool      `json:"doubled"`
	Cells      []CellRef `json:"cells"`
	Grid       any       `json:"grid"`
}

type WordRejectedPayload struct {
	Word    string `json:"word"`
	Reason  string `json:"reason"`
	Penalty int    `json:"penalty"`
	Score   int    `json:"score"`
	Streak  int    `json:"streak"`
	Saved   bool   `json:"streakSaved,omitempty"`
}

type OpponentScoredPayload struct {
	PlayerID string    `json:"playerId"`
	Nickname string    `json:"nickname"`
	Word     string    `json:"word"`
	Points   int       `json:"points"`
	Cells    []CellRef `json:"cells"`
	Grid     any       `json:"grid"`
}

type LeaderboardEntry struct {
	Rank       int     `json:"rank"`
	PlayerID   string  `json:"playerId"`
	Nickname   string  `json:"nickname"`
	Score      int     `json:"score"`
	WordsFound int     `json:"wordsFound"`
	BestStreak int     `json:"bestStreak"`
	Accuracy   float64 `json:"accuracy"`
}

// LevelProgress reports where the game stands when a leaderboard goes out.
type LevelProgress struct {
	Current       int `json:"current"`
	Total         int `json:"total"`
	TimeRemaining int `json:"timeRemaining"`
}

type LeaderboardUpdatePayload struct {
	Entries  []LeaderboardEntry `json:"entries"`
	Progress LevelProgress      `json:"progress"`
}

type BoosterAppliedPayload struct {
	PlayerID string `json:"playerId"`
	Booster  string `json:"booster"`
	TargetID string `json:"targetId,omitempty"`
	UsesLeft int    `json:"usesLeft"`
	Detail   any    `json:"detail,omitempty"`
}

// EffectReceivedPayload notifies a player that an opponent's booster landed
// on them.
type EffectReceivedPayload struct {
	Effect   string `json:"effect"`
	FromID   string `json:"fromId"`
	From     string `json:"from"`
	Duration int    `json:"durationSeconds,omitempty"`
	Blocked  bool   `json:"blocked,omitempty"`
}

type GameEndPayload struct {
	WinnerID string             `json:"winnerId"`
	Winner   string             `json:"winner"`
	Entries  []LeaderboardEntry `json:"entries"`
}

type HintResponsePayload struct {
	Word string `json:"word"`
	Hint string `json:"hint"`
	Cost int    `json:"cost"`
}

type TimerTickPayload struct {
	RoomCode  string `json:"roomCode"`
	Remaining int    `json:"remaining"`
}

type PlayerReadyPayload struct {
	PlayerID string `json:"playerId"`
	Ready    bool   `json:"ready"`
}

type GamePausedPayload struct {
	PlayerID  string `json:"playerId"`
	Remaining int    `json:"remaining"`
}

type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
