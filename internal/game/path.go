package game

import "strings"

// Adjacent reports whether two positions are neighbors in any of the eight
// directions. A cell is not adjacent to itself.
func Adjacent(a, b Pos) bool {
	rowDiff := abs(a.Row - b.Row)
	colDiff := abs(a.Col - b.Col)
	return rowDiff <= 1 && colDiff <= 1 && rowDiff+colDiff > 0
}

// ValidatePath checks that a traced path is structurally sound against the
// grid: non-empty, no repeated cells, every cell active, and each step
// adjacent to the previous one.
func ValidatePath(g *Grid, path []Pos) bool {
	if len(path) == 0 {
		return false
	}
	seen := make(map[Pos]bool, len(path))
	for i, p := range path {
		cell, ok := g.At(p.Row, p.Col)
		if !ok || !cell.Active {
			return false
		}
		if seen[p] {
			return false
		}
		seen[p] = true
		if i > 0 && !Adjacent(path[i-1], p) {
			return false
		}
	}
	return true
}

// CoversShape reports whether a path sweeps the entire shape: structurally
// valid and visiting every active cell. Single-word levels can require this
// before accepting the solution.
func CoversShape(g *Grid, path []Pos) bool {
	if !ValidatePath(g, path) {
		return false
	}
	// ValidatePath guarantees the cells are distinct and active, so a
	// count match means full coverage.
	return len(path) == g.ActiveCount()
}

// TraceWord reads the letters along a path into an uppercase word. The path
// is assumed valid.
func TraceWord(g *Grid, path []Pos) string {
	var sb strings.Builder
	sb.Grow(len(path))
	for _, p := range path {
		cell, ok := g.At(p.Row, p.Col)
		if !ok || cell.Char == 0 {
			return ""
		}
		sb.WriteRune(cell.Char)
	}
	return strings.ToUpper(sb.String())
}
