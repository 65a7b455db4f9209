package engine

import (
	"log"
	"math"
	"math/rand"
	"time"

	"wordrush/internal/game"
	"wordrush/internal/protocol"
	"wordrush/internal/room"
)

// UseBooster validates and applies a booster. Validation failures come back
// as ErrBoosterNotAvailable; the caller turns that into an error response
// for the sender.
func (e *Engine) UseBooster(playerID string, req protocol.UseBoosterRequest) error {
	r, ok := e.rooms.Room(req.RoomCode)
	if !ok {
		return game.ErrRoomNotFound
	}
	p, ok := r.Player(playerID)
	if !ok {
		return game.ErrPlayerNotFound
	}
	session := r.Session()
	if session == nil || session.Phase() != game.PhasePlaying {
		return game.ErrNoActiveSession
	}

	bt := game.BoosterType(req.Booster)
	if !game.ValidBoosterType(bt) {
		return game.ErrBoosterNotAvailable
	}
	kit := session.Kit(playerID)
	if kit == nil {
		return game.ErrPlayerNotFound
	}
	booster := kit.Get(bt)
	if booster == nil || !booster.CanUse() {
		return game.ErrBoosterNotAvailable
	}

	def := booster.Def
	if def.MinPlayers > 0 && r.PlayerCount() < def.MinPlayers {
		return game.ErrBoosterNotAvailable
	}
	if def.Cost > 0 && p.Score() < def.Cost {
		return game.ErrBoosterNotAvailable
	}

	if !booster.Use() {
		return game.ErrBoosterNotAvailable
	}
	if def.Cost > 0 {
		p.AddPoints(-def.Cost)
	}

	log.Printf("⚡ %s used %s in room %s", p.Nickname, bt, r.Code)
	var detail any
	switch bt {
	case game.BoosterDoubleUp:
		session.ArmDouble(playerID)
	case game.BoosterFreeze:
		e.applyFreeze(r, p)
	case game.BoosterReveal:
		e.applyReveal(session, playerID, def.Cost)
	case game.BoosterTimePlus:
		remaining := e.timers.AddTime(r.Code, e.cfg.Booster.TimePlusSeconds)
		detail = protocol.TimerTickPayload{RoomCode: r.Code, Remaining: remaining}
		e.notify.ToRoom(r.Code, protocol.TypeTimerTick, protocol.TimerTickPayload{
			RoomCode:  r.Code,
			Remaining: remaining,
		})
	case game.BoosterShield:
		p.ArmShield()
	case game.BoosterStreakSave:
		p.BankStreakSave()
	case game.BoosterSkipHalf:
		e.applySkipHalf(r, session, p)
	}

	e.notify.ToRoom(r.Code, protocol.TypeBoosterApplied, protocol.BoosterAppliedPayload{
		PlayerID: playerID,
		Booster:  string(bt),
		TargetID: req.TargetID,
		UsesLeft: booster.UsesLeft(),
		Detail:   detail,
	})
	return nil
}

// applyFreeze incapacitates every other player in the room for the
// configured duration. Shields absorb the effect per target.
func (e *Engine) applyFreeze(r *room.Room, from *game.Player) {
	d := time.Duration(e.cfg.Booster.FreezeSeconds) * time.Second
	for _, target := range r.Players() {
		if target.ID == from.ID {
			continue
		}
		landed := target.Freeze(d)
		e.notify.ToPlayer(target.ID, protocol.TypeEffectReceived, protocol.EffectReceivedPayload{
			Effect:   string(game.BoosterFreeze),
			FromID:   from.ID,
			From:     from.Nickname,
			Duration: e.cfg.Booster.FreezeSeconds,
			Blocked:  !landed,
		})
	}
}

// applyReveal sends the buyer a partial solution for a random unclaimed
// word. The hint stays private; the room-wide broadcast only announces the
// booster use.
func (e *Engine) applyReveal(session *game.Session, playerID string, cost int) {
	unfound := session.Unfound()
	if len(unfound) == 0 {
		return
	}
	var word string
	e.randRand(func(rng *rand.Rand) {
		word = unfound[rng.Intn(len(unfound))]
	})
	e.notify.ToPlayer(playerID, protocol.TypeHintResponse, protocol.HintResponsePayload{
		Word: maskWord(word),
		Hint: hintPrefix(word),
		Cost: cost,
	})
}

// applySkipHalf completes the level for the buyer at half the maximum
// word award. The completion races normal submissions first-wins.
func (e *Engine) applySkipHalf(r *room.Room, session *game.Session, p *game.Player) {
	award := int(math.Round(float64(e.scorer.MaxLevelPoints()) * e.cfg.Booster.SkipHalfRatio))
	p.AddPoints(award)
	if session.TryCompleteLevel(p.ID) {
		e.endLevel(r, session)
	}
}
