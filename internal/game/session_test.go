package game_test

import (
	"math/rand"
	"sync"
	"testing"

	"wordrush/internal/game"
)

func newPlayingSession(t *testing.T, players []string, targets []string) *game.Session {
	t.Helper()
	s := game.NewSession(players, game.DefaultBoosterDefs())
	g := game.NewGrid(4, 4)
	g.ApplyShape(game.NewShape(4, 4, game.ShapeSquare))
	g.Fill(targets, rand.New(rand.NewSource(1)))
	s.BeginLevel(game.LevelPlan{Number: 1, GridSize: 4, WordCount: len(targets), Duration: 30}, g, targets)
	return s
}

// TestMarkFoundFirstWins verifies a word can only be claimed once
func TestMarkFoundFirstWins(t *testing.T) {
	s := newPlayingSession(t, []string{"alice", "bob"}, []string{"TIGER", "ZEBRA"})

	ok, all := s.MarkFound("TIGER", "alice")
	if !ok || all {
		t.Fatalf("first claim: ok=%v all=%v, want true,false", ok, all)
	}
	ok, _ = s.MarkFound("TIGER", "bob")
	if ok {
		t.Error("second claim of the same word should fail")
	}
	if finder, _ := s.FoundBy("TIGER"); finder != "alice" {
		t.Errorf("FoundBy = %q, want alice", finder)
	}

	ok, all = s.MarkFound("ZEBRA", "bob")
	if !ok || !all {
		t.Errorf("last claim: ok=%v all=%v, want true,true", ok, all)
	}
}

// TestMarkFoundNonTarget verifies off-list words are not claimable
func TestMarkFoundNonTarget(t *testing.T) {
	s := newPlayingSession(t, []string{"alice"}, []string{"TIGER"})

	if ok, _ := s.MarkFound("LION", "alice"); ok {
		t.Error("non-target word should not be claimable")
	}
}

// TestTryCompleteLevelOnce verifies exactly one caller wins the transition
func TestTryCompleteLevelOnce(t *testing.T) {
	s := newPlayingSession(t, []string{"alice", "bob"}, []string{"TIGER"})

	var wg sync.WaitGroup
	wins := make(chan string, 2)
	for _, id := range []string{"alice", "bob"} {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			if s.TryCompleteLevel(id) {
				wins <- id
			}
		}(id)
	}
	wg.Wait()
	close(wins)

	var winners []string
	for id := range wins {
		winners = append(winners, id)
	}
	if len(winners) != 1 {
		t.Fatalf("got %d winners, want exactly 1", len(winners))
	}
	if s.Phase() != game.PhaseLevelEnd {
		t.Errorf("phase = %s, want LEVEL_END", s.Phase())
	}
	if s.LevelWinner() != winners[0] {
		t.Errorf("LevelWinner = %q, want %q", s.LevelWinner(), winners[0])
	}
}

// TestTryCompleteLevelOutsidePlaying verifies completion needs an open level
func TestTryCompleteLevelOutsidePlaying(t *testing.T) {
	s := game.NewSession([]string{"alice"}, game.DefaultBoosterDefs())
	if s.TryCompleteLevel("alice") {
		t.Error("lobby-phase session should not complete a level")
	}
}

// TestConsumeDouble verifies the double-points flag is one-shot
func TestConsumeDouble(t *testing.T) {
	s := newPlayingSession(t, []string{"alice"}, []string{"TIGER"})

	if s.ConsumeDouble("alice") {
		t.Error("unarmed double should not consume")
	}
	s.ArmDouble("alice")
	if !s.ConsumeDouble("alice") {
		t.Error("armed double should consume")
	}
	if s.ConsumeDouble("alice") {
		t.Error("double should self-reset after one consumption")
	}
}

// TestUnfound verifies the remaining-words view
func TestUnfound(t *testing.T) {
	s := newPlayingSession(t, []string{"alice"}, []string{"TIGER", "ZEBRA"})
	s.MarkFound("ZEBRA", "alice")

	unfound := s.Unfound()
	if len(unfound) != 1 || unfound[0] != "TIGER" {
		t.Errorf("Unfound = %v, want [TIGER]", unfound)
	}
}

// TestBeginLevelResets verifies per-level state is cleared
func TestBeginLevelResets(t *testing.T) {
	s := newPlayingSession(t, []string{"alice"}, []string{"TIGER"})
	s.MarkFound("TIGER", "alice")
	s.TryCompleteLevel("alice")

	g := game.NewGrid(4, 4)
	g.ApplyShape(game.NewShape(4, 4, game.ShapeSquare))
	targets := []string{"ZEBRA"}
	g.Fill(targets, rand.New(rand.NewSource(2)))
	s.BeginLevel(game.LevelPlan{Number: 2, GridSize: 4, WordCount: 1, Duration: 30}, g, targets)

	if s.Phase() != game.PhasePlaying {
		t.Errorf("phase = %s, want PLAYING", s.Phase())
	}
	if s.LevelWinner() != "" {
		t.Error("level winner should be cleared")
	}
	if got := s.Unfound(); len(got) != 1 || got[0] != "ZEBRA" {
		t.Errorf("Unfound = %v, want [ZEBRA]", got)
	}
	// Words found in earlier levels stay on the player's progress.
	if got := s.Progress("alice"); len(got) != 1 || got[0] != "TIGER" {
		t.Errorf("Progress = %v, want [TIGER]", got)
	}
}

// TestBeginLevelRestoresBoosters verifies exhausted kits come back each level
func TestBeginLevelRestoresBoosters(t *testing.T) {
	s := newPlayingSession(t, []string{"alice"}, []string{"TIGER"})

	shield := s.Kit("alice").Get(game.BoosterShield)
	if !shield.Use() {
		t.Fatal("fresh shield should be usable")
	}
	if shield.CanUse() {
		t.Fatal("shield has one charge, second use should be blocked")
	}

	g := game.NewGrid(4, 4)
	g.ApplyShape(game.NewShape(4, 4, game.ShapeSquare))
	targets := []string{"ZEBRA"}
	g.Fill(targets, rand.New(rand.NewSource(3)))
	s.BeginLevel(game.LevelPlan{Number: 2, GridSize: 4, WordCount: 1, Duration: 30}, g, targets)

	if !shield.CanUse() {
		t.Error("shield should recharge when a new level begins")
	}
}
