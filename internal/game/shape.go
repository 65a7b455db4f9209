package game

import (
	"math"
	"math/rand"
)

// ShapeType identifies a shape archetype.
type ShapeType string

// Shape archetypes. All masks are generated deterministically from the grid
// dimensions except ShapeCustom, which is either caller-supplied or produced
// by a random walk.
const (
	ShapeSquare  ShapeType = "SQUARE"
	ShapeCircle  ShapeType = "CIRCLE"
	ShapeDiamond ShapeType = "DIAMOND"
	ShapeCross   ShapeType = "CROSS"
	ShapeL       ShapeType = "L_SHAPE"
	ShapeT       ShapeType = "T_SHAPE"
	ShapeCustom  ShapeType = "CUSTOM"
)

// customFillRatio is the fraction of the grid a random-walk custom shape
// activates.
const customFillRatio = 0.75

// Shape is a boolean activity mask over a grid. The active-cell count is
// tracked incrementally as the mask is mutated.
type Shape struct {
	Rows, Cols int
	Type       ShapeType
	mask       [][]bool
	cellCount  int
}

// NewShape generates the deterministic mask for the given archetype.
// ShapeCustom starts fully active; use RandomWalkShape or SetActive to carve it.
func NewShape(rows, cols int, t ShapeType) *Shape {
	s := &Shape{
		Rows: rows,
		Cols: cols,
		Type: t,
		mask: newMask(rows, cols),
	}

	centerRow := rows / 2
	centerCol := cols / 2

	switch t {
	case ShapeCircle:
		radius := float64(min(rows, cols)) / 2
		for i := 0; i < rows; i++ {
			for j := 0; j < cols; j++ {
				dr := float64(i - centerRow)
				dc := float64(j - centerCol)
				if math.Sqrt(dr*dr+dc*dc) <= radius {
					s.SetActive(i, j, true)
				}
			}
		}

	case ShapeDiamond:
		reach := min(centerRow, centerCol)
		for i := 0; i < rows; i++ {
			for j := 0; j < cols; j++ {
				if abs(i-centerRow)+abs(j-centerCol) <= reach {
					s.SetActive(i, j, true)
				}
			}
		}

	case ShapeCross:
		for i := 0; i < rows; i++ {
			s.SetActive(i, centerCol, true)
		}
		for j := 0; j < cols; j++ {
			s.SetActive(centerRow, j, true)
		}

	case ShapeL:
		for i := 0; i < rows; i++ {
			s.SetActive(i, 0, true)
		}
		for j := 1; j < cols; j++ {
			s.SetActive(rows-1, j, true)
		}

	case ShapeT:
		for j := 0; j < cols; j++ {
			s.SetActive(0, j, true)
		}
		for i := 1; i < rows; i++ {
			s.SetActive(i, centerCol, true)
		}

	default: // ShapeSquare and ShapeCustom start as the full mask
		for i := 0; i < rows; i++ {
			for j := 0; j < cols; j++ {
				s.SetActive(i, j, true)
			}
		}
	}

	return s
}

// RandomWalkShape produces a custom mask by activating random cells until
// customFillRatio of the grid is active.
func RandomWalkShape(rows, cols int, rng *rand.Rand) *Shape {
	s := &Shape{
		Rows: rows,
		Cols: cols,
		Type: ShapeCustom,
		mask: newMask(rows, cols),
	}

	target := (rows * cols * 3) / 4
	for s.cellCount < target {
		row := rng.Intn(rows)
		col := rng.Intn(cols)
		s.SetActive(row, col, true)
	}

	return s
}

// ShapeForLevel selects a shape archetype by level difficulty: early levels
// use the full square, mid levels rounded shapes, later levels edge patterns,
// and the highest levels a random walk.
func ShapeForLevel(rows, cols, level int, rng *rand.Rand) *Shape {
	switch {
	case level <= 2:
		return NewShape(rows, cols, ShapeSquare)
	case level <= 4:
		if rng.Intn(2) == 0 {
			return NewShape(rows, cols, ShapeCircle)
		}
		return NewShape(rows, cols, ShapeDiamond)
	case level <= 6:
		edged := []ShapeType{ShapeCross, ShapeL, ShapeT}
		return NewShape(rows, cols, edged[rng.Intn(len(edged))])
	default:
		return RandomWalkShape(rows, cols, rng)
	}
}

// Active reports whether the cell at (row, col) participates in the shape.
// Out-of-bounds coordinates are inactive.
func (s *Shape) Active(row, col int) bool {
	if row < 0 || row >= s.Rows || col < 0 || col >= s.Cols {
		return false
	}
	return s.mask[row][col]
}

// SetActive flips a single mask cell, keeping the active count in sync.
func (s *Shape) SetActive(row, col int, active bool) {
	if row < 0 || row >= s.Rows || col < 0 || col >= s.Cols {
		return
	}
	if s.mask[row][col] == active {
		return
	}
	s.mask[row][col] = active
	if active {
		s.cellCount++
	} else {
		s.cellCount--
	}
}

// CellCount returns the number of active cells.
func (s *Shape) CellCount() int {
	return s.cellCount
}

// Mask returns a copy of the activity mask.
func (s *Shape) Mask() [][]bool {
	out := make([][]bool, s.Rows)
	for i := range out {
		out[i] = make([]bool, s.Cols)
		copy(out[i], s.mask[i])
	}
	return out
}

func newMask(rows, cols int) [][]bool {
	m := make([][]bool, rows)
	for i := range m {
		m[i] = make([]bool, cols)
	}
	return m
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
