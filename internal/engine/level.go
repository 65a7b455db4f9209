package engine

import (
	"log"
	"math/rand"
	"sort"

	"wordrush/internal/game"
	"wordrush/internal/protocol"
	"wordrush/internal/room"
)

// startLevel builds the level's grid and words and opens play. It runs on a
// timer goroutine, so it re-resolves the room and tolerates it having
// vanished.
func (e *Engine) startLevel(code string, n int) {
	r, ok := e.rooms.Room(code)
	if !ok {
		return
	}
	session := r.Session()
	if session == nil {
		return
	}

	plan := e.levels.Plan(n)
	grid := game.NewGrid(plan.GridSize, plan.GridSize)

	var targets []string
	e.randRand(func(rng *rand.Rand) {
		shape := game.ShapeForLevel(plan.GridSize, plan.GridSize, n, rng)
		grid.ApplyShape(shape)
		targets = e.pickWords(r.Topic(), plan, shape.CellCount(), rng)
		grid.Fill(targets, rng)
	})
	if len(targets) == 0 {
		log.Printf("⚠️  No words available for topic %s, ending game in room %s", r.Topic(), code)
		e.finishGame(r)
		return
	}

	session.BeginLevel(plan, grid, targets)
	log.Printf("🧩 Level %d started in room %s (%dx%d grid, %d words, %ds)",
		n, code, plan.GridSize, plan.GridSize, len(targets), plan.Duration)

	e.notify.ToRoom(code, protocol.TypeLevelStart, protocol.LevelStartPayload{
		Level:     n,
		GridSize:  plan.GridSize,
		WordCount: len(targets),
		Duration:  plan.Duration,
		Grid:      grid.Snapshot(),
		Topic:     r.Topic(),
	})

	e.timers.Start(code, plan.Duration,
		func(remaining int) {
			e.notify.ToRoom(code, protocol.TypeTimerTick, protocol.TimerTickPayload{
				RoomCode:  code,
				Remaining: remaining,
			})
		},
		func() {
			// Time ran out with words unclaimed.
			if session.TryCompleteLevel("") {
				e.endLevel(r, session)
			}
		},
	)
}

// pickWords draws target words for a level, trimming the draw until the
// concatenated letters fit the shape's active area.
func (e *Engine) pickWords(topic string, plan game.LevelPlan, cellCount int, rng *rand.Rand) []string {
	words := e.words.RandomWords(topic, plan.WordCount, plan.GridSize, rng)
	for len(words) > 1 && totalLetters(words) > cellCount {
		words = words[:len(words)-1]
	}
	if len(words) == 1 && totalLetters(words) > cellCount {
		return nil
	}
	return words
}

func totalLetters(words []string) int {
	n := 0
	for _, w := range words {
		n += len([]rune(w))
	}
	return n
}

// endLevel closes out the current level and either schedules the next one
// or finishes the game. The caller must have won the TryCompleteLevel race.
func (e *Engine) endLevel(r *room.Room, session *game.Session) {
	code := r.Code
	e.timers.Stop(code)

	plan := session.Level()
	e.notify.ToRoom(code, protocol.TypeLevelEnd, protocol.LevelEndPayload{
		Level:       plan.Number,
		WinnerID:    session.LevelWinner(),
		Uncompleted: session.Unfound(),
		Scores:      e.leaderboard(r),
		NextLevelIn: e.cfg.Level.TransitionSeconds,
	})

	if e.levels.Last(plan.Number) {
		e.finishGame(r)
		return
	}
	next := plan.Number + 1
	e.timers.After(code, e.cfg.Level.TransitionSeconds, func() {
		e.startLevel(code, next)
	})
}

// finishGame broadcasts the final standings and returns the room to the
// lobby.
func (e *Engine) finishGame(r *room.Room) {
	code := r.Code
	e.timers.Stop(code)

	if s := r.Session(); s != nil {
		s.SetPhase(game.PhaseFinished)
	}
	entries := e.leaderboard(r)
	winnerID, winner := "", ""
	if len(entries) > 0 {
		winnerID, winner = entries[0].PlayerID, entries[0].Nickname
	}
	log.Printf("🏁 Game over in room %s, winner: %s", code, winner)
	e.notify.ToRoom(code, protocol.TypeGameEnd, protocol.GameEndPayload{
		WinnerID: winnerID,
		Winner:   winner,
		Entries:  entries,
	})

	r.SetSession(nil)
	r.SetStatus(room.StatusWaiting)
	for _, p := range r.Players() {
		p.SetReady(false)
	}
	e.notify.ToRoom(code, protocol.TypeRoomState, protocol.RoomStatePayload{Room: r.Snapshot()})
}

// levelProgress snapshots the game position carried alongside leaderboards.
func (e *Engine) levelProgress(r *room.Room) protocol.LevelProgress {
	lp := protocol.LevelProgress{Total: e.levels.Count}
	if s := r.Session(); s != nil {
		lp.Current = s.Level().Number
	}
	lp.TimeRemaining = e.timers.Remaining(r.Code)
	return lp
}

// leaderboard ranks the room's players by score, then words found. The
// stable sort over the join-ordered slice breaks remaining ties in favor of
// the earliest joiner.
func (e *Engine) leaderboard(r *room.Room) []protocol.LeaderboardEntry {
	players := r.Players()
	stats := make([]game.PlayerStats, 0, len(players))
	for _, p := range players {
		stats = append(stats, p.Stats())
	}
	sort.SliceStable(stats, func(i, j int) bool {
		if stats[i].Score != stats[j].Score {
			return stats[i].Score > stats[j].Score
		}
		return stats[i].WordsFound > stats[j].WordsFound
	})

	entries := make([]protocol.LeaderboardEntry, len(stats))
	for i, s := range stats {
		entries[i] = protocol.LeaderboardEntry{
			Rank:       i + 1,
			PlayerID:   s.ID,
			Nickname:   s.Nickname,
			Score:      s.Score,
			WordsFound: s.WordsFound,
			BestStreak: s.BestStreak,
			Accuracy:   s.Accuracy,
		}
	}
	return entries
}
