package engine

import (
	"log"
	"math/rand"

	"wordrush/internal/dict"
	"wordrush/internal/game"
	"wordrush/internal/protocol"
	"wordrush/internal/room"
)

const minWordLength = 3

// Rejection reasons surfaced to clients.
const (
	reasonInvalidPath  = "Invalid path"
	reasonTooShort     = "Word too short"
	reasonMismatch     = "Path does not spell the word"
	reasonNotInDict    = "Word not in dictionary"
	reasonNotTarget    = "Not a target word"
	reasonAlreadyFound = "Word already found"
)

// SubmitWord processes a traced path. Structural failures and wrong words
// come back to the sender as WORD_REJECTED with a score penalty; accepted
// words update the grid, award points and may close the level.
func (e *Engine) SubmitWord(playerID string, req protocol.SubmitWordRequest) error {
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
	if p.Frozen() {
		e.notify.ToPlayer(playerID, protocol.TypeInvalidAction, protocol.ErrorPayload{
			Code:    "FROZEN",
			Message: "You are frozen",
		})
		return nil
	}

	grid := session.Grid()
	if grid == nil {
		return game.ErrNoActiveSession
	}

	word := dict.Normalize(req.Word)
	path := make([]game.Pos, len(req.Cells))
	for i, c := range req.Cells {
		path[i] = game.Pos{Row: c.Row, Col: c.Col}
	}

	if len(word) < minWordLength || len(path) < minWordLength {
		e.rejectWord(r, p, word, reasonTooShort)
		return nil
	}
	if !game.ValidatePath(grid, path) {
		e.rejectWord(r, p, word, reasonInvalidPath)
		return nil
	}
	if game.TraceWord(grid, path) != word {
		e.rejectWord(r, p, word, reasonMismatch)
		return nil
	}
	if !e.words.IsValidWord(word) {
		e.rejectWord(r, p, word, reasonNotInDict)
		return nil
	}
	if !session.IsTarget(word) {
		if _, taken := session.FoundBy(word); taken {
			e.rejectWord(r, p, word, reasonAlreadyFound)
		} else {
			e.rejectWord(r, p, word, reasonNotTarget)
		}
		return nil
	}

	// Hold the cells while the claim settles so a racing overlapping path
	// cannot consume the same letters.
	if !grid.Claim(path, playerID) {
		e.rejectWord(r, p, word, reasonInvalidPath)
		return nil
	}
	ok, allFound := session.MarkFound(word, playerID)
	if !ok {
		grid.Release(path, playerID)
		e.rejectWord(r, p, word, reasonAlreadyFound)
		return nil
	}

	plan := session.Level()
	remaining := e.timers.Remaining(r.Code)
	streakBefore := p.RecordCorrect()
	doubled := session.ConsumeDouble(playerID)
	points := e.scorer.Points(float64(remaining), float64(plan.Duration), streakBefore, doubled)
	total := p.AddPoints(points)
	grid.RemovePath(path)

	log.Printf("✅ %s found %q in room %s (+%d, total %d)", p.Nickname, word, r.Code, points, total)

	snap := grid.Snapshot()
	e.notify.ToPlayer(playerID, protocol.TypeWordAccepted, protocol.WordAcceptedPayload{
		Word:       word,
		Points:     points,
		TotalScore: total,
		Streak:     p.Streak(),
		Doubled:    doubled,
		Cells:      req.Cells,
		Grid:       snap,
	})
	e.notify.ToRoomExcept(r.Code, playerID, protocol.TypeOpponentScored, protocol.OpponentScoredPayload{
		PlayerID: playerID,
		Nickname: p.Nickname,
		Word:     word,
		Points:   points,
		Cells:    req.Cells,
		Grid:     snap,
	})
	e.notify.ToRoom(r.Code, protocol.TypeLeaderboardUpdate, protocol.LeaderboardUpdatePayload{
		Entries:  e.leaderboard(r),
		Progress: e.levelProgress(r),
	})

	if allFound && session.TryCompleteLevel(playerID) {
		e.endLevel(r, session)
	}
	return nil
}

// rejectWord applies the wrong-submission penalty and tells the sender why
// the word was refused.
func (e *Engine) rejectWord(r *room.Room, p *game.Player, word, reason string) {
	consecutive, saved := p.RecordWrong()
	penalty := e.scorer.Penalty(consecutive)
	score := p.AddPoints(penalty)

	e.notify.ToPlayer(p.ID, protocol.TypeWordRejected, protocol.WordRejectedPayload{
		Word:    word,
		Reason:  reason,
		Penalty: penalty,
		Score:   score,
		Streak:  p.Streak(),
		Saved:   saved,
	})
}

// RequestHint sends the sender the opening letters of a random unclaimed
// target word.
func (e *Engine) RequestHint(playerID string) error {
	r, ok := e.rooms.RoomByPlayer(playerID)
	if !ok {
		return game.ErrRoomNotFound
	}
	session := r.Session()
	if session == nil || session.Phase() != game.PhasePlaying {
		return game.ErrNoActiveSession
	}
	unfound := session.Unfound()
	if len(unfound) == 0 {
		return game.ErrNoActiveSession
	}

	var word string
	e.randRand(func(rng *rand.Rand) {
		word = unfound[rng.Intn(len(unfound))]
	})
	e.notify.ToPlayer(playerID, protocol.TypeHintResponse, protocol.HintResponsePayload{
		Word: maskWord(word),
		Hint: hintPrefix(word),
	})
	return nil
}

// hintPrefix reveals the first three letters of a word.
func hintPrefix(word string) string {
	runes := []rune(word)
	if len(runes) <= 3 {
		return word
	}
	return string(runes[:3])
}

// maskWord hides everything past the revealed prefix.
func maskWord(word string) string {
	runes := []rune(word)
	out := make([]rune, len(runes))
	for i := range runes {
		if i < 3 {
			out[i] = runes[i]
		} else {
			out[i] = '_'
		}
	}
	return string(out)
}
