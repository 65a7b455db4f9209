package api

import (
	"log"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"wordrush/internal/protocol"
)

const (
	// MaxWSConnectionsTotal is the maximum number of WebSocket connections allowed
	MaxWSConnectionsTotal = 500

	// MaxWSConnectionsPerIP is the maximum WebSocket connections per IP
	MaxWSConnectionsPerIP = 10

	// MaxWSMessageSize caps inbound frames; a traced path plus a word fits
	// in well under 1KB
	MaxWSMessageSize = 4096
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if IsAllowedOrigin(origin) {
			return true
		}
		log.Printf("⚠️ WebSocket connection rejected from origin: %s", origin)
		RecordConnectionRejected("origin")
		return false
	},
}

// MemberSource resolves a room code to its current player IDs for fan-out.
type MemberSource interface {
	RoomMembers(code string) []string
}

// wsClient is one player's connection. Writes are serialized per client;
// gorilla/websocket does not allow concurrent writers.
type wsClient struct {
	conn     *websocket.Conn
	playerID string
	ip       string
	writeMu  sync.Mutex
}

func (c *wsClient) send(env protocol.Envelope) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.conn.WriteJSON(env)
}

// Hub tracks connections by player ID and implements the engine's Notifier.
// Delivery is best-effort: a closed or missing connection is silently
// skipped, never retried.
type Hub struct {
	mu       sync.RWMutex
	byPlayer map[string]*wsClient

	members   MemberSource
	wsLimiter *WebSocketRateLimiter
	dispatch  *Dispatcher
}

// NewHub creates a hub that fans room messages out via the member source.
func NewHub(members MemberSource) *Hub {
	return &Hub{
		byPlayer:  make(map[string]*wsClient),
		members:   members,
		wsLimiter: NewWebSocketRateLimiter(MaxWSConnectionsPerIP),
	}
}

// Bind attaches the message dispatcher. Must be called before the hub
// accepts connections; split from the constructor because the dispatcher
// needs the hub first.
func (h *Hub) Bind(d *Dispatcher) {
	h.dispatch = d
}

// ClientCount returns the number of open connections.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.byPlayer)
}

// ToPlayer sends one message to one player, if connected.
func (h *Hub) ToPlayer(playerID, msgType string, data any) {
	h.mu.RLock()
	client := h.byPlayer[playerID]
	h.mu.RUnlock()
	if client == nil {
		return
	}
	h.deliver(client, msgType, data)
}

// ToRoom sends one message to every connected player in a room.
func (h *Hub) ToRoom(roomCode, msgType string, data any) {
	h.fanOut(roomCode, "", msgType, data)
}

// ToRoomExcept sends to everyone in a room but the named player.
func (h *Hub) ToRoomExcept(roomCode, exceptID, msgType string, data any) {
	h.fanOut(roomCode, exceptID, msgType, data)
}

func (h *Hub) fanOut(roomCode, exceptID, msgType string, data any) {
	ids := h.members.RoomMembers(roomCode)
	if len(ids) == 0 {
		return
	}
	h.mu.RLock()
	clients := make([]*wsClient, 0, len(ids))
	for _, id := range ids {
		if id == exceptID {
			continue
		}
		if c, ok := h.byPlayer[id]; ok {
			clients = append(clients, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range clients {
		h.deliver(c, msgType, data)
	}
}

func (h *Hub) deliver(c *wsClient, msgType string, data any) {
	env, err := protocol.NewEnvelope(msgType, data)
	if err != nil {
		log.Printf("⚠️ Failed to encode %s message: %v", msgType, err)
		return
	}
	if err := c.send(env); err != nil {
		// Socket already closed; fire-and-forget.
		h.drop(c)
		return
	}
	IncrementWSMessagesSent()
}

// drop closes and forgets a connection. Idempotent.
func (h *Hub) drop(c *wsClient) {
	h.mu.Lock()
	if current, ok := h.byPlayer[c.playerID]; ok && current == c {
		delete(h.byPlayer, c.playerID)
		h.wsLimiter.Release(c.ip)
	}
	h.mu.Unlock()
	c.conn.Close()
	UpdateWSConnections(h.ClientCount())
}

// HandleWebSocket upgrades the request, assigns the connection a player ID
// and pumps inbound messages through the dispatcher until the socket
// closes.
func (h *Hub) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	ip := GetClientIP(r)

	if h.ClientCount() >= MaxWSConnectionsTotal {
		log.Printf("⚠️ WebSocket connection rejected: total limit reached")
		RecordConnectionRejected("ws_total_limit")
		http.Error(w, "Too many connections", http.StatusServiceUnavailable)
		return
	}
	if !h.wsLimiter.Allow(ip) {
		log.Printf("⚠️ WebSocket connection rejected from %s: per-IP limit reached", ip)
		RecordConnectionRejected("ws_ip_limit")
		http.Error(w, "Too many connections from your IP", http.StatusTooManyRequests)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade error: %v", err)
		h.wsLimiter.Release(ip)
		return
	}

	conn.SetReadLimit(MaxWSMessageSize)

	client := &wsClient{
		conn:     conn,
		playerID: uuid.NewString(),
		ip:       ip,
	}
	h.mu.Lock()
	h.byPlayer[client.playerID] = client
	h.mu.Unlock()
	count := h.ClientCount()
	log.Printf("📱 Client connected from %s as %s (%d total)", ip, client.playerID, count)
	UpdateWSConnections(count)

	go h.readLoop(client)
}

// readLoop processes one connection's inbound messages. Each message is
// dispatched on its own goroutine so a slow handler never blocks the read
// pump.
func (h *Hub) readLoop(c *wsClient) {
	defer func() {
		h.dispatch.Disconnected(c.playerID)
		h.drop(c)
		log.Printf("📱 Client %s disconnected (%d remaining)", c.playerID, h.ClientCount())
	}()

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			return
		}
		IncrementWSMessagesReceived()
		go h.dispatch.Handle(c.playerID, raw)
	}
}
