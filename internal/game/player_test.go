package game_test

import (
	"testing"
	"time"

	"wordrush/internal/game"
)

// TestPlayerScoring verifies score floor and streak bookkeeping
func TestPlayerScoring(t *testing.T) {
	p := game.NewPlayer("p1", "Alice")

	if got := p.AddPoints(500); got != 500 {
		t.Errorf("score = %d, want 500", got)
	}
	if got := p.AddPoints(-800); got != 0 {
		t.Errorf("score should floor at 0, got %d", got)
	}

	if before := p.RecordCorrect(); before != 0 {
		t.Errorf("streak before first word = %d, want 0", before)
	}
	if got := p.Streak(); got != 1 {
		t.Errorf("streak after first word = %d, want 1", got)
	}
	p.RecordCorrect()
	p.RecordCorrect()
	if before := p.RecordCorrect(); before != 3 {
		t.Errorf("streak before fourth word = %d, want 3", before)
	}
}

// TestRecordWrongResetsStreak verifies the reset and the streak-save
func TestRecordWrongResetsStreak(t *testing.T) {
	p := game.NewPlayer("p1", "Alice")
	p.RecordCorrect()
	p.RecordCorrect()

	consecutive, saved := p.RecordWrong()
	if consecutive != 1 || saved {
		t.Errorf("RecordWrong = (%d, %v), want (1, false)", consecutive, saved)
	}
	if got := p.Streak(); got != 0 {
		t.Errorf("streak after wrong = %d, want 0", got)
	}

	// Banked save absorbs exactly one reset.
	p.RecordCorrect()
	p.BankStreakSave()
	_, saved = p.RecordWrong()
	if !saved {
		t.Error("streak save should absorb the reset")
	}
	if got := p.Streak(); got != 1 {
		t.Errorf("streak should survive the saved reset, got %d", got)
	}
	if _, saved = p.RecordWrong(); saved {
		t.Error("streak save is one-shot")
	}
	if got := p.Streak(); got != 0 {
		t.Errorf("streak after unsaved wrong = %d, want 0", got)
	}
}

// TestConsecutiveWrongClears verifies the run resets on a correct word
func TestConsecutiveWrongClears(t *testing.T) {
	p := game.NewPlayer("p1", "Alice")
	p.RecordWrong()
	p.RecordWrong()
	p.RecordCorrect()

	consecutive, _ := p.RecordWrong()
	if consecutive != 1 {
		t.Errorf("consecutive wrong after a correct word = %d, want 1", consecutive)
	}
}

// TestFreezeAndShield verifies incapacitation and the one-shot block
func TestFreezeAndShield(t *testing.T) {
	p := game.NewPlayer("p1", "Alice")

	if p.Frozen() {
		t.Error("fresh player should not be frozen")
	}
	if !p.Freeze(time.Minute) {
		t.Error("freeze should land on an unshielded player")
	}
	if !p.Frozen() {
		t.Error("player should be frozen")
	}

	p2 := game.NewPlayer("p2", "Bob")
	p2.ArmShield()
	if p2.Freeze(time.Minute) {
		t.Error("shield should block the freeze")
	}
	if p2.Frozen() {
		t.Error("shielded player should not be frozen")
	}
	if p2.Shielded() {
		t.Error("shield should self-consume")
	}
	if !p2.Freeze(time.Minute) {
		t.Error("second freeze should land after the shield is gone")
	}
}

// TestAccuracy verifies the correct fraction
func TestAccuracy(t *testing.T) {
	p := game.NewPlayer("p1", "Alice")
	if got := p.Accuracy(); got != 0 {
		t.Errorf("accuracy with no submissions = %v, want 0", got)
	}
	p.RecordCorrect()
	p.RecordCorrect()
	p.RecordCorrect()
	p.RecordWrong()
	if got := p.Accuracy(); got != 0.75 {
		t.Errorf("accuracy = %v, want 0.75", got)
	}
}

// TestResetRound verifies per-game state clears
func TestResetRound(t *testing.T) {
	p := game.NewPlayer("p1", "Alice")
	p.AddPoints(900)
	p.RecordCorrect()
	p.ArmShield()
	p.Freeze(time.Minute)

	p.ResetRound()

	stats := p.Stats()
	if stats.Score != 0 || stats.Streak != 0 || stats.WordsFound != 0 {
		t.Errorf("stats not cleared: %+v", stats)
	}
	if p.Frozen() || p.Shielded() {
		t.Error("effects should clear on reset")
	}
}
