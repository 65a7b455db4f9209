package room

import (
	"log"
	"math/rand"
	"strings"
	"sync"

	"wordrush/internal/game"
)

// codeAlphabet excludes nothing; codes are uppercase alphanumeric and easy
// to read out loud.
const codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Manager owns every live room and the player-to-room index used to route
// websocket messages.
type Manager struct {
	mu       sync.RWMutex
	rooms    map[string]*Room
	byPlayer map[string]*Room

	codeLength int
	maxPlayers int
	minPlayers int
	rng        *rand.Rand
}

// NewManager creates an empty room registry.
func NewManager(codeLength, maxPlayers, minPlayers int, rng *rand.Rand) *Manager {
	return &Manager{
		rooms:      make(map[string]*Room),
		byPlayer:   make(map[string]*Room),
		codeLength: codeLength,
		maxPlayers: maxPlayers,
		minPlayers: minPlayers,
		rng:        rng,
	}
}

// Create makes a new room with a fresh code and admits the creator as host.
func (m *Manager) Create(host *game.Player, topic string) (*Room, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if existing, ok := m.byPlayer[host.ID]; ok {
		m.leaveLocked(existing, host.ID)
	}

	code := m.generateCode()
	r := New(code, topic, m.maxPlayers, m.minPlayers)
	if err := r.AddPlayer(host); err != nil {
		return nil, err
	}
	m.rooms[code] = r
	m.byPlayer[host.ID] = r
	log.Printf("🏠 Room %s created by %s (topic: %s)", code, host.Nickname, topic)
	return r, nil
}

// Join admits a player to the room with the given code. A player already in
// another room leaves it first.
func (m *Manager) Join(code string, p *game.Player) (*Room, error) {
	code = strings.ToUpper(strings.TrimSpace(code))

	m.mu.Lock()
	defer m.mu.Unlock()

	r, ok := m.rooms[code]
	if !ok {
		return nil, game.ErrRoomNotFound
	}
	if existing, inRoom := m.byPlayer[p.ID]; inRoom {
		if existing == r {
			return r, nil
		}
		m.leaveLocked(existing, p.ID)
	}
	if err := r.AddPlayer(p); err != nil {
		return nil, err
	}
	m.byPlayer[p.ID] = r
	return r, nil
}

// Leave removes a player from their room. Empty rooms are destroyed. It
// returns the room left, the new host ID if the host role moved, and
// whether the room was destroyed.
func (m *Manager) Leave(playerID string) (r *Room, newHost string, destroyed bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, ok := m.byPlayer[playerID]
	if !ok {
		return nil, "", false
	}
	newHost, destroyed = m.leaveLocked(r, playerID)
	return r, newHost, destroyed
}

// leaveLocked performs the removal and index bookkeeping. Caller holds m.mu.
func (m *Manager) leaveLocked(r *Room, playerID string) (newHost string, destroyed bool) {
	delete(m.byPlayer, playerID)
	newHost, empty := r.RemovePlayer(playerID)
	if empty {
		delete(m.rooms, r.Code)
		log.Printf("🗑️  Room %s destroyed (empty)", r.Code)
		return newHost, true
	}
	return newHost, false
}

// Room looks up a room by code.
func (m *Manager) Room(code string) (*Room, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.rooms[strings.ToUpper(strings.TrimSpace(code))]
	return r, ok
}

// RoomByPlayer returns the room the player currently occupies.
func (m *Manager) RoomByPlayer(playerID string) (*Room, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.byPlayer[playerID]
	return r, ok
}

// RoomMembers returns the player IDs in a room, empty for unknown codes.
// Used by the broadcast layer to fan messages out.
func (m *Manager) RoomMembers(code string) []string {
	r, ok := m.Room(code)
	if !ok {
		return nil
	}
	return r.PlayerIDs()
}

// Rooms returns every live room.
func (m *Manager) Rooms() []*Room {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*Room, 0, len(m.rooms))
	for _, r := range m.rooms {
		out = append(out, r)
	}
	return out
}

// Count returns the number of live rooms.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.rooms)
}

// PlayerCount returns the number of players across all rooms.
func (m *Manager) PlayerCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.byPlayer)
}

// generateCode draws random codes until one is unused. Caller holds m.mu.
func (m *Manager) generateCode() string {
	buf := make([]byte, m.codeLength)
	for {
		for i := range buf {
			buf[i] = codeAlphabet[m.rng.Intn(len(codeAlphabet))]
		}
		code := string(buf)
		if _, taken := m.rooms[code]; !taken {
			return code
		}
	}
}
