package room

import (
	"sync"
	"time"

	"wordrush/internal/game"
)

// Status is the lobby-level state of a room, independent of any session's
// phase.
type Status string

// Finished games return their room to WAITING so players can ready up for a
// rematch, so there is no terminal room status.
const (
	StatusWaiting Status = "WAITING"
	StatusReady   Status = "READY"
	StatusInGame  Status = "IN_GAME"
)

// Room groups players under a join code and owns the active session, topic
// and readiness state. All mutation goes through locked methods so handler
// goroutines can share a room without external coordination.
type Room struct {
	Code string

	mu         sync.RWMutex
	players    map[string]*game.Player
	order      []string // join order, host reassignment follows it
	hostID     string
	status     Status
	topic      string
	session    *game.Session
	maxPlayers int
	minPlayers int
	createdAt  time.Time
}

// New creates an empty waiting room.
func New(code, topic string, maxPlayers, minPlayers int) *Room {
	return &Room{
		Code:       code,
		players:    make(map[string]*game.Player),
		status:     StatusWaiting,
		topic:      topic,
		maxPlayers: maxPlayers,
		minPlayers: minPlayers,
		createdAt:  time.Now(),
	}
}

// AddPlayer admits a player to the room. The first player becomes host.
// Joining regresses a READY room to WAITING since the newcomer has not
// readied up.
func (r *Room) AddPlayer(p *game.Player) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.status != StatusWaiting && r.status != StatusReady {
		return game.ErrRoomNotJoinable
	}
	if len(r.players) >= r.maxPlayers {
		return game.ErrRoomFull
	}
	r.players[p.ID] = p
	r.order = append(r.order, p.ID)
	if r.hostID == "" {
		r.hostID = p.ID
		p.SetHost(true)
	}
	r.recomputeStatus()
	return nil
}

// RemovePlayer drops a player, reassigning the host role to the earliest
// remaining joiner when the host leaves. It returns the new host ID (empty
// if unchanged) and whether the room is now empty.
func (r *Room) RemovePlayer(playerID string) (newHost string, empty bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.players[playerID]; !ok {
		return "", len(r.players) == 0
	}
	delete(r.players, playerID)
	for i, id := range r.order {
		if id == playerID {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	if len(r.players) == 0 {
		r.hostID = ""
		return "", true
	}
	if r.hostID == playerID {
		r.hostID = r.order[0]
		r.players[r.hostID].SetHost(true)
		newHost = r.hostID
	}
	if r.status == StatusWaiting || r.status == StatusReady {
		r.recomputeStatus()
	}
	return newHost, false
}

// SetReady records a player's lobby readiness and recomputes the room
// status.
func (r *Room) SetReady(playerID string, ready bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.players[playerID]
	if !ok {
		return game.ErrPlayerNotFound
	}
	p.SetReady(ready)
	if r.status == StatusWaiting || r.status == StatusReady {
		r.recomputeStatus()
	}
	return nil
}

// recomputeStatus flips between WAITING and READY. Caller holds r.mu.
func (r *Room) recomputeStatus() {
	if len(r.players) >= r.minPlayers && r.allReady() {
		r.status = StatusReady
	} else {
		r.status = StatusWaiting
	}
}

// allReady reports whether every player has readied up. Caller holds r.mu.
func (r *Room) allReady() bool {
	for _, p := range r.players {
		if !p.Ready() {
			return false
		}
	}
	return len(r.players) > 0
}

// Player looks up a member by ID.
func (r *Room) Player(playerID string) (*game.Player, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.players[playerID]
	return p, ok
}

// Players returns the members in join order.
func (r *Room) Players() []*game.Player {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*game.Player, 0, len(r.players))
	for _, id := range r.order {
		if p, ok := r.players[id]; ok {
			out = append(out, p)
		}
	}
	return out
}

// PlayerIDs returns member IDs in join order.
func (r *Room) PlayerIDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.order))
	for _, id := range r.order {
		if _, ok := r.players[id]; ok {
			out = append(out, id)
		}
	}
	return out
}

// PlayerCount returns the current member count.
func (r *Room) PlayerCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.players)
}

// HostID returns the current host's player ID.
func (r *Room) HostID() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.hostID
}

// Status returns the room's lobby state.
func (r *Room) Status() Status {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.status
}

// SetStatus moves the room to the given state.
func (r *Room) SetStatus(s Status) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.status = s
}

// Topic returns the room's word topic.
func (r *Room) Topic() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.topic
}

// Session returns the active game session, nil outside a game.
func (r *Room) Session() *game.Session {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.session
}

// SetSession installs or clears the active session.
func (r *Room) SetSession(s *game.Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.session = s
}

// CanStart checks the start-game preconditions for the requesting player:
// host role, enough players, everyone ready, no game already running.
func (r *Room) CanStart(playerID string) error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.hostID != playerID {
		return game.ErrNotHost
	}
	if r.status == StatusInGame {
		return game.ErrRoomNotJoinable
	}
	if len(r.players) < r.minPlayers {
		return game.ErrNotEnoughPlayers
	}
	if !r.allReady() {
		return game.ErrNotAllReady
	}
	return nil
}

// Snapshot is an immutable room view for API responses.
type Snapshot struct {
	Code       string             `json:"code"`
	Status     Status             `json:"status"`
	Topic      string             `json:"topic"`
	HostID     string             `json:"hostId"`
	MaxPlayers int                `json:"maxPlayers"`
	Players    []game.PlayerStats `json:"players"`
	CreatedAt  time.Time          `json:"createdAt"`
}

// Snapshot returns a consistent copy of the room's public state.
func (r *Room) Snapshot() Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()

	snap := Snapshot{
		Code:       r.Code,
		Status:     r.status,
		Topic:      r.topic,
		HostID:     r.hostID,
		MaxPlayers: r.maxPlayers,
		CreatedAt:  r.createdAt,
	}
	for _, id := range r.order {
		if p, ok := r.players[id]; ok {
			snap.Players = append(snap.Players, p.Stats())
		}
	}
	return snap
}
