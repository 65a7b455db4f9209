package game_test

import (
	"math/rand"
	"testing"

	"wordrush/internal/game"
)

// TestShapeCellCounts verifies the deterministic archetype masks
func TestShapeCellCounts(t *testing.T) {
	cases := []struct {
		name string
		t    game.ShapeType
		rows int
		cols int
		want int
	}{
		{"square is full", game.ShapeSquare, 4, 4, 16},
		{"cross is row plus column", game.ShapeCross, 5, 5, 9},
		{"L is first column plus bottom row", game.ShapeL, 5, 5, 9},
		{"T is top row plus center column", game.ShapeT, 5, 5, 9},
		{"diamond on 5x5", game.ShapeDiamond, 5, 5, 13},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := game.NewShape(tc.rows, tc.cols, tc.t)
			if got := s.CellCount(); got != tc.want {
				t.Errorf("CellCount = %d, want %d", got, tc.want)
			}
		})
	}
}

// TestRandomWalkShapeRatio verifies the custom mask hits its fill target
func TestRandomWalkShapeRatio(t *testing.T) {
	rng := rand.New(rand.NewSource(13))
	s := game.RandomWalkShape(8, 8, rng)

	want := (8 * 8 * 3) / 4
	if got := s.CellCount(); got != want {
		t.Errorf("CellCount = %d, want %d", got, want)
	}
}

// TestShapeForLevel verifies the level-to-archetype schedule
func TestShapeForLevel(t *testing.T) {
	rng := rand.New(rand.NewSource(17))

	for level := 1; level <= 10; level++ {
		s := game.ShapeForLevel(6, 6, level, rng)
		switch {
		case level <= 2:
			if s.Type != game.ShapeSquare {
				t.Errorf("level %d shape = %s, want SQUARE", level, s.Type)
			}
		case level <= 4:
			if s.Type != game.ShapeCircle && s.Type != game.ShapeDiamond {
				t.Errorf("level %d shape = %s, want CIRCLE or DIAMOND", level, s.Type)
			}
		case level <= 6:
			if s.Type != game.ShapeCross && s.Type != game.ShapeL && s.Type != game.ShapeT {
				t.Errorf("level %d shape = %s, want an edge pattern", level, s.Type)
			}
		default:
			if s.Type != game.ShapeCustom {
				t.Errorf("level %d shape = %s, want CUSTOM", level, s.Type)
			}
		}
		if s.CellCount() == 0 {
			t.Errorf("level %d shape has no active cells", level)
		}
	}
}

// TestSetActiveTracksCount verifies incremental count maintenance
func TestSetActiveTracksCount(t *testing.T) {
	s := game.NewShape(3, 3, game.ShapeSquare)

	s.SetActive(0, 0, false)
	if got := s.CellCount(); got != 8 {
		t.Errorf("CellCount after deactivate = %d, want 8", got)
	}
	s.SetActive(0, 0, false) // no-op
	if got := s.CellCount(); got != 8 {
		t.Errorf("CellCount after repeat deactivate = %d, want 8", got)
	}
	s.SetActive(0, 0, true)
	if got := s.CellCount(); got != 9 {
		t.Errorf("CellCount after reactivate = %d, want 9", got)
	}
}
