package game

import (
	"sync"
	"time"
)

// BoosterType identifies one of the power-ups a player can trigger during a
// level.
type BoosterType string

const (
	BoosterDoubleUp   BoosterType = "DOUBLE_UP"
	BoosterFreeze     BoosterType = "FREEZE"
	BoosterReveal     BoosterType = "REVEAL"
	BoosterTimePlus   BoosterType = "TIME_PLUS"
	BoosterShield     BoosterType = "SHIELD"
	BoosterStreakSave BoosterType = "STREAK_SAVE"
	BoosterSkipHalf   BoosterType = "SKIP_HALF"
)

// AllBoosterTypes lists every booster in presentation order.
var AllBoosterTypes = []BoosterType{
	BoosterDoubleUp,
	BoosterFreeze,
	BoosterReveal,
	BoosterTimePlus,
	BoosterShield,
	BoosterStreakSave,
	BoosterSkipHalf,
}

// ValidBoosterType reports whether t names a known booster.
func ValidBoosterType(t BoosterType) bool {
	for _, bt := range AllBoosterTypes {
		if bt == t {
			return true
		}
	}
	return false
}

// BoosterDef is the static tuning for one booster type. MaxUses 0 means
// unlimited. Cost is deducted from the player's score and doubles as the
// minimum score required to trigger.
type BoosterDef struct {
	Type       BoosterType
	MaxUses    int
	Cost       int
	Cooldown   time.Duration
	MinPlayers int
}

// DefaultBoosterDefs returns the standard booster tuning, keyed by type.
func DefaultBoosterDefs() map[BoosterType]BoosterDef {
	return map[BoosterType]BoosterDef{
		BoosterDoubleUp:   {Type: BoosterDoubleUp, MaxUses: 1, Cooldown: 3 * time.Second},
		BoosterFreeze:     {Type: BoosterFreeze, MaxUses: 1, MinPlayers: 2},
		BoosterReveal:     {Type: BoosterReveal, MaxUses: 2, Cost: 100},
		BoosterTimePlus:   {Type: BoosterTimePlus, MaxUses: 2},
		BoosterShield:     {Type: BoosterShield, MaxUses: 1},
		BoosterStreakSave: {Type: BoosterStreakSave, MaxUses: 1},
		BoosterSkipHalf:   {Type: BoosterSkipHalf, MaxUses: 1},
	}
}

// Booster tracks one player's use of one booster type within a session.
type Booster struct {
	Def BoosterDef

	mu       sync.Mutex
	used     int
	lastUsed time.Time
}

// NewBooster returns an unused booster for the definition.
func NewBooster(def BoosterDef) *Booster {
	return &Booster{Def: def}
}

// CanUse checks remaining uses and cooldown. It does not check cost or
// player-count requirements; those depend on room state the booster cannot
// see.
func (b *Booster) CanUse() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.Def.MaxUses > 0 && b.used >= b.Def.MaxUses {
		return false
	}
	if b.Def.Cooldown > 0 && time.Since(b.lastUsed) < b.Def.Cooldown {
		return false
	}
	return true
}

// Use consumes one charge, returning false if none is available.
func (b *Booster) Use() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.Def.MaxUses > 0 && b.used >= b.Def.MaxUses {
		return false
	}
	if b.Def.Cooldown > 0 && !b.lastUsed.IsZero() && time.Since(b.lastUsed) < b.Def.Cooldown {
		return false
	}
	b.used++
	b.lastUsed = time.Now()
	return true
}

// UsesLeft returns remaining charges, or -1 for unlimited boosters.
func (b *Booster) UsesLeft() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.Def.MaxUses == 0 {
		return -1
	}
	return b.Def.MaxUses - b.used
}

// Reset restores all charges for a new level.
func (b *Booster) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.used = 0
	b.lastUsed = time.Time{}
}

// Kit is one player's full booster loadout for a session.
type Kit struct {
	boosters map[BoosterType]*Booster
}

// NewKit builds a kit from the given definitions.
func NewKit(defs map[BoosterType]BoosterDef) *Kit {
	k := &Kit{boosters: make(map[BoosterType]*Booster, len(defs))}
	for t, def := range defs {
		k.boosters[t] = NewBooster(def)
	}
	return k
}

// Get returns the kit's booster for the type, or nil if the type is not in
// the loadout.
func (k *Kit) Get(t BoosterType) *Booster {
	return k.boosters[t]
}

// Reset restores every booster's charges for a new level.
func (k *Kit) Reset() {
	for _, b := range k.boosters {
		b.Reset()
	}
}

// Status reports remaining uses per type for client display.
func (k *Kit) Status() map[BoosterType]int {
	out := make(map[BoosterType]int, len(k.boosters))
	for t, b := range k.boosters {
		out[t] = b.UsesLeft()
	}
	return out
}
