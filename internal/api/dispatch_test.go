package api_test

import (
	"encoding/json"
	"math/rand"
	"sync"
	"testing"

	"wordrush/internal/api"
	"wordrush/internal/config"
	"wordrush/internal/dict"
	"wordrush/internal/engine"
	"wordrush/internal/protocol"
	"wordrush/internal/room"
	"wordrush/internal/timer"
)

// stubNotifier records per-player and per-room messages.
type stubNotifier struct {
	mu       sync.Mutex
	byPlayer map[string][]stubMsg
	byRoom   map[string][]stubMsg
}

type stubMsg struct {
	Type string
	Data any
}

func newStubNotifier() *stubNotifier {
	return &stubNotifier{
		byPlayer: make(map[string][]stubMsg),
		byRoom:   make(map[string][]stubMsg),
	}
}

func (n *stubNotifier) ToPlayer(playerID, msgType string, data any) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.byPlayer[playerID] = append(n.byPlayer[playerID], stubMsg{msgType, data})
}

func (n *stubNotifier) ToRoom(roomCode, msgType string, data any) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.byRoom[roomCode] = append(n.byRoom[roomCode], stubMsg{msgType, data})
}

func (n *stubNotifier) ToRoomExcept(roomCode, exceptID, msgType string, data any) {
	n.ToRoom(roomCode, msgType, data)
}

func (n *stubNotifier) playerTypes(playerID string) []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	var out []string
	for _, m := range n.byPlayer[playerID] {
		out = append(out, m.Type)
	}
	return out
}

func (n *stubNotifier) totalRoomMessages() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	count := 0
	for _, msgs := range n.byRoom {
		count += len(msgs)
	}
	return count
}

func newTestDispatcher(t *testing.T) (*api.Dispatcher, *engine.Engine, *stubNotifier) {
	t.Helper()

	cfg := config.Load()
	d, err := dict.Load("", cfg.Dict.MinWordLength)
	if err != nil {
		t.Fatalf("dictionary load error: %v", err)
	}
	rooms := room.NewManager(cfg.Room.CodeLength, cfg.Room.MaxPlayers, cfg.Room.MinPlayers,
		rand.New(rand.NewSource(7)))
	timers := timer.NewScheduler()
	t.Cleanup(timers.StopAll)

	notifier := newStubNotifier()
	eng := engine.New(&cfg, rooms, timers, d, notifier)
	return api.NewDispatcher(eng, notifier), eng, notifier
}

func envelope(t *testing.T, msgType string, payload any) []byte {
	t.Helper()
	data, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	raw, err := json.Marshal(protocol.Envelope{Type: msgType, Data: data})
	if err != nil {
		t.Fatalf("marshal envelope: %v", err)
	}
	return raw
}

func TestHandleMalformedJSON(t *testing.T) {
	dispatcher, _, notifier := newTestDispatcher(t)

	dispatcher.Handle("p-1", []byte("{not json"))

	types := notifier.playerTypes("p-1")
	if len(types) != 1 || types[0] != protocol.TypeError {
		t.Errorf("sender messages = %v, want one ERROR", types)
	}
	if notifier.totalRoomMessages() != 0 {
		t.Error("malformed input must never broadcast to a room")
	}
}

func TestHandleUnknownType(t *testing.T) {
	dispatcher, _, notifier := newTestDispatcher(t)

	dispatcher.Handle("p-1", envelope(t, "TIME_TRAVEL", struct{}{}))

	types := notifier.playerTypes("p-1")
	if len(types) != 1 || types[0] != protocol.TypeInvalidAction {
		t.Errorf("sender messages = %v, want one INVALID_ACTION", types)
	}
}

func TestHandleMissingRequiredFields(t *testing.T) {
	dispatcher, _, notifier := newTestDispatcher(t)

	// CREATE_ROOM without a nickname is rejected before it reaches the engine.
	dispatcher.Handle("p-1", envelope(t, protocol.TypeCreateRoom,
		protocol.CreateRoomRequest{Topic: "animals"}))

	types := notifier.playerTypes("p-1")
	if len(types) != 1 || types[0] != protocol.TypeInvalidAction {
		t.Errorf("sender messages = %v, want one INVALID_ACTION", types)
	}
}

func TestHandleCreateAndJoin(t *testing.T) {
	dispatcher, eng, notifier := newTestDispatcher(t)

	dispatcher.Handle("p-alice", envelope(t, protocol.TypeCreateRoom,
		protocol.CreateRoomRequest{Nickname: "Alice", Topic: "animals"}))

	if eng.Rooms().Count() != 1 {
		t.Fatalf("room count = %d, want 1", eng.Rooms().Count())
	}
	r := eng.Rooms().Rooms()[0]

	dispatcher.Handle("p-bob", envelope(t, protocol.TypeJoinRoom,
		protocol.JoinRoomRequest{Nickname: "Bob", RoomCode: r.Code}))

	if r.PlayerCount() != 2 {
		t.Errorf("player count = %d, want 2", r.PlayerCount())
	}
	for _, playerID := range []string{"p-alice", "p-bob"} {
		for _, msgType := range notifier.playerTypes(playerID) {
			if msgType == protocol.TypeError || msgType == protocol.TypeInvalidAction {
				t.Errorf("%s received unexpected %s", playerID, msgType)
			}
		}
	}
}

func TestHandleJoinUnknownRoom(t *testing.T) {
	dispatcher, _, notifier := newTestDispatcher(t)

	dispatcher.Handle("p-bob", envelope(t, protocol.TypeJoinRoom,
		protocol.JoinRoomRequest{Nickname: "Bob", RoomCode: "ZZZZZZ"}))

	types := notifier.playerTypes("p-bob")
	if len(types) != 1 || types[0] != protocol.TypeInvalidAction {
		t.Fatalf("sender messages = %v, want one INVALID_ACTION", types)
	}
	payload := notifier.byPlayer["p-bob"][0].Data.(protocol.ErrorPayload)
	if payload.Code != "ROOM_NOT_FOUND" {
		t.Errorf("error code = %q, want ROOM_NOT_FOUND", payload.Code)
	}
}

func TestDisconnectedLeavesRoom(t *testing.T) {
	dispatcher, eng, _ := newTestDispatcher(t)

	dispatcher.Handle("p-alice", envelope(t, protocol.TypeCreateRoom,
		protocol.CreateRoomRequest{Nickname: "Alice", Topic: "food"}))
	if eng.Rooms().Count() != 1 {
		t.Fatal("room was not created")
	}

	dispatcher.Disconnected("p-alice")

	if eng.Rooms().Count() != 0 {
		t.Errorf("room count after disconnect = %d, want 0", eng.Rooms().Count())
	}
}
