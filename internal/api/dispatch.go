package api

import (
	"encoding/json"
	"log"
	"time"

	"wordrush/internal/engine"
	"wordrush/internal/game"
	"wordrush/internal/protocol"
)

// Dispatcher classifies inbound envelopes by their type tag and routes them
// to the engine. Malformed or unrecognized messages produce a scoped error
// response to the sender only, never a broadcast.
type Dispatcher struct {
	engine *engine.Engine
	notify engine.Notifier
}

// NewDispatcher wires a dispatcher to the engine and the reply channel.
func NewDispatcher(eng *engine.Engine, notify engine.Notifier) *Dispatcher {
	return &Dispatcher{engine: eng, notify: notify}
}

// Handle processes one raw inbound message from a connection.
func (d *Dispatcher) Handle(playerID string, raw []byte) {
	start := time.Now()

	var env protocol.Envelope
	if err := json.Unmarshal(raw, &env); err != nil || env.Type == "" {
		d.sendError(playerID, protocol.TypeError, game.ErrMalformedMessage)
		ObserveDispatch("malformed", time.Since(start))
		return
	}

	err := d.route(playerID, env)
	if err != nil {
		d.sendError(playerID, protocol.TypeInvalidAction, err)
	}
	ObserveDispatch(dispatchLabel(env.Type), time.Since(start))
}

// dispatchLabel keeps the metric label set bounded to the closed tag set.
func dispatchLabel(msgType string) string {
	switch msgType {
	case protocol.TypeCreateRoom, protocol.TypeJoinRoom, protocol.TypeLeaveRoom,
		protocol.TypePlayerReady, protocol.TypeStartGame, protocol.TypeSubmitWord,
		protocol.TypeUseBooster, protocol.TypeRequestHint,
		protocol.TypePauseGame, protocol.TypeResumeGame:
		return msgType
	default:
		return "unknown"
	}
}

// route runs the handler for a recognized type tag. The tag set is closed;
// anything else is a malformed message.
func (d *Dispatcher) route(playerID string, env protocol.Envelope) error {
	switch env.Type {
	case protocol.TypeCreateRoom:
		var req protocol.CreateRoomRequest
		if err := json.Unmarshal(env.Data, &req); err != nil || req.Nickname == "" {
			return game.ErrMalformedMessage
		}
		_, err := d.engine.CreateRoom(playerID, req.Nickname, req.Topic)
		return err

	case protocol.TypeJoinRoom:
		var req protocol.JoinRoomRequest
		if err := json.Unmarshal(env.Data, &req); err != nil || req.Nickname == "" || req.RoomCode == "" {
			return game.ErrMalformedMessage
		}
		_, err := d.engine.JoinRoom(playerID, req.Nickname, req.RoomCode)
		return err

	case protocol.TypeLeaveRoom:
		d.engine.LeaveRoom(playerID)
		return nil

	case protocol.TypePlayerReady:
		var req protocol.PlayerReadyRequest
		if err := json.Unmarshal(env.Data, &req); err != nil {
			return game.ErrMalformedMessage
		}
		return d.engine.SetReady(playerID, req.Ready)

	case protocol.TypeStartGame:
		return d.engine.StartGame(playerID)

	case protocol.TypeSubmitWord:
		var req protocol.SubmitWordRequest
		if err := json.Unmarshal(env.Data, &req); err != nil || req.Word == "" || len(req.Cells) == 0 {
			return game.ErrMalformedMessage
		}
		return d.engine.SubmitWord(playerID, req)

	case protocol.TypeUseBooster:
		var req protocol.UseBoosterRequest
		if err := json.Unmarshal(env.Data, &req); err != nil || req.Booster == "" {
			return game.ErrMalformedMessage
		}
		return d.engine.UseBooster(playerID, req)

	case protocol.TypeRequestHint:
		return d.engine.RequestHint(playerID)

	case protocol.TypePauseGame:
		return d.engine.PauseGame(playerID)

	case protocol.TypeResumeGame:
		return d.engine.ResumeGame(playerID)

	default:
		log.Printf("⚠️ Unrecognized message type %q from %s", env.Type, playerID)
		return game.ErrMalformedMessage
	}
}

// Disconnected cleans up after a dropped connection.
func (d *Dispatcher) Disconnected(playerID string) {
	d.engine.LeaveRoom(playerID)
}

func (d *Dispatcher) sendError(playerID, msgType string, err error) {
	d.notify.ToPlayer(playerID, msgType, protocol.ErrorPayload{
		Code:    err.Error(),
		Message: humanMessage(err),
	})
}

// humanMessage maps the error taxonomy to client-facing text.
func humanMessage(err error) string {
	switch {
	case err == game.ErrRoomNotFound:
		return "Room not found"
	case err == game.ErrRoomFull:
		return "Room is full"
	case err == game.ErrRoomNotJoinable:
		return "Room is not joinable right now"
	case err == game.ErrPlayerNotFound:
		return "Player not found in this room"
	case err == game.ErrWordNotInDictionary:
		return "Word not in dictionary"
	case err == game.ErrBoosterNotAvailable:
		return "Booster not available"
	case err == game.ErrNotHost:
		return "Only the host can start the game"
	case err == game.ErrNotAllReady:
		return "Not all players are ready"
	case err == game.ErrNotEnoughPlayers:
		return "Not enough players to start"
	case err == game.ErrNoActiveSession:
		return "No game in progress"
	case err == game.ErrMalformedMessage:
		return "Malformed message"
	default:
		return "Invalid action"
	}
}
