package game

import (
	"sync"

	"github.com/google/uuid"
)

// Phase is the lifecycle stage of a game session.
type Phase string

const (
	PhaseLobby     Phase = "LOBBY"
	PhaseCountdown Phase = "COUNTDOWN"
	PhasePlaying   Phase = "PLAYING"
	PhaseLevelEnd  Phase = "LEVEL_END"
	PhaseFinished  Phase = "FINISHED"
)

// Session is the state of one game run inside a room: the current level,
// its grid and target words, and per-player progress and booster kits.
//
// Submissions from different players race on the same level, so state
// transitions that must happen exactly once (level completion, word claims)
// are guarded by the session mutex.
type Session struct {
	ID string

	mu          sync.Mutex
	phase       Phase
	level       LevelPlan
	grid        *Grid
	targets     []string
	found       map[string]string   // word -> finder player ID
	progress    map[string][]string // player ID -> words found this session
	kits        map[string]*Kit
	doubleArmed map[string]bool
	completed   bool
	winnerID    string
	paused      bool
}

// NewSession creates a lobby-phase session with a booster kit for each
// player.
func NewSession(playerIDs []string, defs map[BoosterType]BoosterDef) *Session {
	s := &Session{
		ID:          uuid.NewString(),
		phase:       PhaseLobby,
		found:       make(map[string]string),
		progress:    make(map[string][]string),
		kits:        make(map[string]*Kit),
		doubleArmed: make(map[string]bool),
	}
	for _, id := range playerIDs {
		s.kits[id] = NewKit(defs)
		s.progress[id] = nil
	}
	return s
}

// Phase returns the current lifecycle stage.
func (s *Session) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// SetPhase moves the session to the given stage.
func (s *Session) SetPhase(p Phase) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.phase = p
}

// Pause holds the session mid-level. It only applies while PLAYING and
// reports whether the transition happened.
func (s *Session) Pause() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != PhasePlaying || s.paused {
		return false
	}
	s.paused = true
	s.phase = PhaseLevelEnd
	return true
}

// Resume reverses a Pause. A LEVEL_END reached by finishing a level is not
// resumable, only one reached through Pause.
func (s *Session) Resume() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.paused {
		return false
	}
	s.paused = false
	s.phase = PhasePlaying
	return true
}

// Paused reports whether the session is held by a host pause.
func (s *Session) Paused() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.paused
}

// BeginLevel installs a new level's grid and target words, restores every
// player's booster charges and moves the session to PLAYING.
func (s *Session) BeginLevel(plan LevelPlan, grid *Grid, targets []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.phase = PhasePlaying
	s.level = plan
	s.grid = grid
	s.targets = append([]string(nil), targets...)
	s.found = make(map[string]string, len(targets))
	s.completed = false
	s.winnerID = ""
	s.paused = false
	for id := range s.doubleArmed {
		delete(s.doubleArmed, id)
	}
	for _, k := range s.kits {
		k.Reset()
	}
}

// Level returns the current level plan.
func (s *Session) Level() LevelPlan {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.level
}

// Grid returns the current level's grid, nil outside PLAYING.
func (s *Session) Grid() *Grid {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.grid
}

// Targets returns the current level's solution words.
func (s *Session) Targets() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.targets...)
}

// IsTarget reports whether word is one of the level's solutions and not yet
// claimed.
func (s *Session) IsTarget(word string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.targets {
		if t == word {
			_, taken := s.found[word]
			return !taken
		}
	}
	return false
}

// MarkFound claims a target word for a player. The first claimer wins; a
// racing duplicate gets ok=false. allFound reports whether this claim
// completed the level's word list.
func (s *Session) MarkFound(word, playerID string) (ok, allFound bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	isTarget := false
	for _, t := range s.targets {
		if t == word {
			isTarget = true
			break
		}
	}
	if !isTarget {
		return false, false
	}
	if _, taken := s.found[word]; taken {
		return false, false
	}
	s.found[word] = playerID
	s.progress[playerID] = append(s.progress[playerID], word)
	return true, len(s.found) == len(s.targets)
}

// FoundBy returns who claimed the word, if anyone.
func (s *Session) FoundBy(word string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.found[word]
	return id, ok
}

// Unfound returns the target words nobody has claimed yet.
func (s *Session) Unfound() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []string
	for _, t := range s.targets {
		if _, taken := s.found[t]; !taken {
			out = append(out, t)
		}
	}
	return out
}

// Progress returns the words a player has found across the session.
func (s *Session) Progress(playerID string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.progress[playerID]...)
}

// Kit returns a player's booster loadout, nil for unknown players.
func (s *Session) Kit(playerID string) *Kit {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.kits[playerID]
}

// AddPlayer provisions session state for a late joiner.
func (s *Session) AddPlayer(playerID string, defs map[BoosterType]BoosterDef) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.kits[playerID]; !ok {
		s.kits[playerID] = NewKit(defs)
	}
}

// RemovePlayer drops session state for a departed player. Their claimed
// words stay claimed.
func (s *Session) RemovePlayer(playerID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.kits, playerID)
	delete(s.doubleArmed, playerID)
}

// ArmDouble flags the player's next correct word for double points.
func (s *Session) ArmDouble(playerID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doubleArmed[playerID] = true
}

// ConsumeDouble takes and clears the player's double-points flag.
func (s *Session) ConsumeDouble(playerID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.doubleArmed[playerID] {
		delete(s.doubleArmed, playerID)
		return true
	}
	return false
}

// TryCompleteLevel marks the level finished with the given winner. Exactly
// one caller wins the race; later callers get false and must not re-run the
// level-end flow.
func (s *Session) TryCompleteLevel(winnerID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.completed || s.phase != PhasePlaying {
		return false
	}
	s.completed = true
	s.winnerID = winnerID
	s.phase = PhaseLevelEnd
	return true
}

// LevelWinner returns who closed out the current level, empty if the timer
// did.
func (s *Session) LevelWinner() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.winnerID
}
