package game_test

import (
	"testing"
	"time"

	"wordrush/internal/game"
)

// TestBoosterUseLimits verifies charges run out and stay out
func TestBoosterUseLimits(t *testing.T) {
	b := game.NewBooster(game.BoosterDef{Type: game.BoosterTimePlus, MaxUses: 2})

	if !b.CanUse() {
		t.Fatal("fresh booster should be usable")
	}
	if !b.Use() || !b.Use() {
		t.Fatal("both charges should succeed")
	}
	if b.CanUse() {
		t.Error("exhausted booster should not be usable")
	}
	if b.Use() {
		t.Error("using an exhausted booster should fail")
	}
	if got := b.UsesLeft(); got != 0 {
		t.Errorf("UsesLeft = %d, want 0", got)
	}
}

// TestBoosterCooldown verifies a cooling booster refuses use
func TestBoosterCooldown(t *testing.T) {
	b := game.NewBooster(game.BoosterDef{
		Type:     game.BoosterDoubleUp,
		MaxUses:  2,
		Cooldown: time.Hour,
	})

	if !b.Use() {
		t.Fatal("first use should succeed")
	}
	if b.CanUse() {
		t.Error("booster should be on cooldown")
	}
	if b.Use() {
		t.Error("use during cooldown should fail")
	}
}

// TestBoosterReset verifies charges come back for a new session
func TestBoosterReset(t *testing.T) {
	b := game.NewBooster(game.BoosterDef{Type: game.BoosterShield, MaxUses: 1})
	b.Use()
	b.Reset()

	if !b.CanUse() {
		t.Error("reset booster should be usable again")
	}
	if got := b.UsesLeft(); got != 1 {
		t.Errorf("UsesLeft after reset = %d, want 1", got)
	}
}

// TestKit verifies the full loadout construction and status report
func TestKit(t *testing.T) {
	kit := game.NewKit(game.DefaultBoosterDefs())

	for _, bt := range game.AllBoosterTypes {
		if kit.Get(bt) == nil {
			t.Errorf("kit missing booster %s", bt)
		}
	}
	if kit.Get(game.BoosterType("NOPE")) != nil {
		t.Error("unknown booster type should be nil")
	}

	status := kit.Status()
	if got := status[game.BoosterReveal]; got != 2 {
		t.Errorf("reveal uses = %d, want 2", got)
	}
}

// TestValidBoosterType verifies the closed type set
func TestValidBoosterType(t *testing.T) {
	for _, bt := range game.AllBoosterTypes {
		if !game.ValidBoosterType(bt) {
			t.Errorf("%s should be valid", bt)
		}
	}
	if game.ValidBoosterType("MEGA_BLAST") {
		t.Error("unknown type should be invalid")
	}
}
