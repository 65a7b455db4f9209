package game

import (
	"sync"
	"time"
)

// Player is one participant in a room. Score and streak state is mutated
// concurrently by word submissions and booster effects, so all access goes
// through locked methods.
type Player struct {
	ID       string `json:"id"`
	Nickname string `json:"nickname"`

	mu               sync.Mutex
	score            int
	streak           int
	bestStreak       int
	wordsFound       int
	wrongSubmissions int
	consecutiveWrong int
	ready            bool
	host             bool
	frozenUntil      time.Time
	streakSaves      int
	shielded         bool
}

// NewPlayer creates a player in the not-ready state.
func NewPlayer(id, nickname string) *Player {
	return &Player{ID: id, Nickname: nickname}
}

// Score returns the current score.
func (p *Player) Score() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.score
}

// Streak returns the current consecutive-correct count.
func (p *Player) Streak() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.streak
}

// AddPoints applies a score delta, flooring the score at zero, and returns
// the new score.
func (p *Player) AddPoints(delta int) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.score += delta
	if p.score < 0 {
		p.score = 0
	}
	return p.score
}

// RecordCorrect bumps the streak and word counters and clears the
// consecutive-wrong run. It returns the streak value in effect for the word
// just found (the value before the bump).
func (p *Player) RecordCorrect() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	streakBefore := p.streak
	p.streak++
	if p.streak > p.bestStreak {
		p.bestStreak = p.streak
	}
	p.wordsFound++
	p.consecutiveWrong = 0
	return streakBefore
}

// RecordWrong bumps the wrong counters and resets the streak, unless a
// banked STREAK_SAVE absorbs the reset. It returns the consecutive-wrong
// count and whether a save was consumed.
func (p *Player) RecordWrong() (consecutiveWrong int, saved bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.wrongSubmissions++
	p.consecutiveWrong++
	if p.streakSaves > 0 {
		p.streakSaves--
		saved = true
	} else {
		p.streak = 0
	}
	return p.consecutiveWrong, saved
}

// ResetRound clears per-session state ahead of a new game. The score is
// kept or cleared by the caller depending on context.
func (p *Player) ResetRound() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.score = 0
	p.streak = 0
	p.bestStreak = 0
	p.wordsFound = 0
	p.wrongSubmissions = 0
	p.consecutiveWrong = 0
	p.frozenUntil = time.Time{}
	p.streakSaves = 0
	p.shielded = false
}

// Ready reports whether the player has flagged ready in the lobby.
func (p *Player) Ready() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ready
}

// SetReady updates the lobby ready flag.
func (p *Player) SetReady(ready bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.ready = ready
}

// Host reports whether this player is the room host.
func (p *Player) Host() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.host
}

// SetHost updates the host flag.
func (p *Player) SetHost(host bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.host = host
}

// Frozen reports whether a FREEZE effect is still active on the player.
func (p *Player) Frozen() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return time.Now().Before(p.frozenUntil)
}

// Freeze blocks the player's submissions for d. A held SHIELD absorbs the
// freeze instead; the return value reports whether the freeze landed.
func (p *Player) Freeze(d time.Duration) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.shielded {
		p.shielded = false
		return false
	}
	p.frozenUntil = time.Now().Add(d)
	return true
}

// ArmShield banks a one-time freeze block.
func (p *Player) ArmShield() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.shielded = true
}

// Shielded reports whether a shield is currently armed.
func (p *Player) Shielded() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.shielded
}

// BankStreakSave banks a one-time streak-reset suppression.
func (p *Player) BankStreakSave() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.streakSaves++
}

// Accuracy is the correct fraction of all submissions, 0 when the player
// has not submitted anything.
func (p *Player) Accuracy() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	total := p.wordsFound + p.wrongSubmissions
	if total == 0 {
		return 0
	}
	return float64(p.wordsFound) / float64(total)
}

// PlayerStats is an immutable summary for API responses and the final
// leaderboard.
type PlayerStats struct {
	ID         string  `json:"id"`
	Nickname   string  `json:"nickname"`
	Score      int     `json:"score"`
	Streak     int     `json:"streak"`
	BestStreak int     `json:"bestStreak"`
	WordsFound int     `json:"wordsFound"`
	Accuracy   float64 `json:"accuracy"`
	Ready      bool    `json:"ready"`
	Host       bool    `json:"host"`
	Frozen     bool    `json:"frozen"`
}

// Stats returns a consistent snapshot of the player's counters.
func (p *Player) Stats() PlayerStats {
	p.mu.Lock()
	defer p.mu.Unlock()
	total := p.wordsFound + p.wrongSubmissions
	acc := 0.0
	if total > 0 {
		acc = float64(p.wordsFound) / float64(total)
	}
	return PlayerStats{
		ID:         p.ID,
		Nickname:   p.Nickname,
		Score:      p.score,
		Streak:     p.streak,
		BestStreak: p.bestStreak,
		WordsFound: p.wordsFound,
		Accuracy:   acc,
		Ready:      p.ready,
		Host:       p.host,
		Frozen:     time.Now().Before(p.frozenUntil),
	}
}
