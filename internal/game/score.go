package game

import "math"

// Scorer computes points for found words. The zero value is unusable; build
// one with NewScorer.
type Scorer struct {
	BasePoints         int
	SpeedMin           float64
	SpeedMax           float64
	StreakBonus        float64
	StreakMaxMult      float64
	PenaltyWrong       int
	PenaltyEscalations int
}

// NewScorer returns a scorer with the standard tuning.
func NewScorer() *Scorer {
	return &Scorer{
		BasePoints:         1000,
		SpeedMin:           0.5,
		SpeedMax:           1.0,
		StreakBonus:        0.1,
		StreakMaxMult:      1.5,
		PenaltyWrong:       -150,
		PenaltyEscalations: 2,
	}
}

// SpeedFactor maps the fraction of level time remaining to a multiplier,
// linear between SpeedMin (time exhausted) and SpeedMax (instant find).
// Inputs outside [0, 1] are clamped.
func (s *Scorer) SpeedFactor(timeRemaining, levelDuration float64) float64 {
	if levelDuration <= 0 {
		return s.SpeedMin
	}
	fraction := timeRemaining / levelDuration
	if fraction < 0 {
		fraction = 0
	}
	if fraction > 1 {
		fraction = 1
	}
	return s.SpeedMin + (s.SpeedMax-s.SpeedMin)*fraction
}

// StreakMultiplier grows with each consecutive correct word and caps at
// StreakMaxMult.
func (s *Scorer) StreakMultiplier(streak int) float64 {
	if streak < 0 {
		streak = 0
	}
	mult := 1.0 + s.StreakBonus*float64(streak)
	if mult > s.StreakMaxMult {
		mult = s.StreakMaxMult
	}
	return mult
}

// Points computes the award for a correct word found with timeRemaining
// seconds left on a levelDuration-second level, at the given streak. The
// result is rounded to the nearest integer. doubled applies the DOUBLE_UP
// booster.
func (s *Scorer) Points(timeRemaining, levelDuration float64, streak int, doubled bool) int {
	pts := float64(s.BasePoints) *
		s.SpeedFactor(timeRemaining, levelDuration) *
		s.StreakMultiplier(streak)
	if doubled {
		pts *= 2
	}
	return int(math.Round(pts))
}

// Penalty returns the (negative) score delta for a wrong submission, scaled
// by the player's consecutive-wrong count and capped after
// PenaltyEscalations misses.
func (s *Scorer) Penalty(consecutiveWrong int) int {
	if consecutiveWrong < 1 {
		consecutiveWrong = 1
	}
	if consecutiveWrong > s.PenaltyEscalations {
		consecutiveWrong = s.PenaltyEscalations
	}
	return s.PenaltyWrong * consecutiveWrong
}

// MaxLevelPoints is the theoretical maximum for a single word at the given
// streak, used by the SKIP_HALF booster award.
func (s *Scorer) MaxLevelPoints() int {
	return int(math.Round(float64(s.BasePoints) * s.SpeedMax * s.StreakMaxMult))
}
