package game_test

import (
	"math/rand"
	"sort"
	"strings"
	"testing"

	"wordrush/internal/game"
)

func sortedLetters(s string) string {
	runes := strings.Split(s, "")
	sort.Strings(runes)
	return strings.Join(runes, "")
}

func placedLetters(g *game.Grid) string {
	var sb strings.Builder
	snap := g.Snapshot()
	for i := 0; i < snap.Rows; i++ {
		for j := 0; j < snap.Cols; j++ {
			sb.WriteString(snap.Cells[i][j])
		}
	}
	return sb.String()
}

// TestFillIsPermutation verifies the placed letters are exactly the target
// words' letters
func TestFillIsPermutation(t *testing.T) {
	words := []string{"TIGER", "ZEBRA", "HORSE"}

	g := game.NewGrid(4, 4)
	g.ApplyShape(game.NewShape(4, 4, game.ShapeSquare))
	g.Fill(words, rand.New(rand.NewSource(42)))

	want := sortedLetters(strings.Join(words, ""))
	got := sortedLetters(placedLetters(g))
	if got != want {
		t.Errorf("placed letters %q are not a permutation of %q", got, want)
	}
}

// TestFillDeactivatesLeftoverCells verifies a short pool shrinks the active
// area so the permutation property holds
func TestFillDeactivatesLeftoverCells(t *testing.T) {
	words := []string{"CAT"} // 3 letters into a 16-cell grid

	g := game.NewGrid(4, 4)
	g.ApplyShape(game.NewShape(4, 4, game.ShapeSquare))
	g.Fill(words, rand.New(rand.NewSource(3)))

	if got := g.ActiveCount(); got != 3 {
		t.Errorf("ActiveCount = %d, want 3", got)
	}
	if got := sortedLetters(placedLetters(g)); got != "ACT" {
		t.Errorf("placed letters = %q, want a permutation of CAT", got)
	}
}

// findPath looks for an adjacent non-repeating path spelling the word.
func findPath(g *game.Grid, word string) []game.Pos {
	runes := []rune(word)
	var dfs func(pos game.Pos, idx int, visited map[game.Pos]bool) []game.Pos
	dfs = func(pos game.Pos, idx int, visited map[game.Pos]bool) []game.Pos {
		cell, ok := g.At(pos.Row, pos.Col)
		if !ok || !cell.Active || visited[pos] || cell.Char != runes[idx] {
			return nil
		}
		if idx == len(runes)-1 {
			return []game.Pos{pos}
		}
		visited[pos] = true
		for dr := -1; dr <= 1; dr++ {
			for dc := -1; dc <= 1; dc++ {
				if dr == 0 && dc == 0 {
					continue
				}
				next := game.Pos{Row: pos.Row + dr, Col: pos.Col + dc}
				if rest := dfs(next, idx+1, visited); rest != nil {
					delete(visited, pos)
					return append([]game.Pos{pos}, rest...)
				}
			}
		}
		delete(visited, pos)
		return nil
	}

	for row := 0; row < g.Rows; row++ {
		for col := 0; col < g.Cols; col++ {
			if p := dfs(game.Pos{Row: row, Col: col}, 0, map[game.Pos]bool{}); p != nil {
				return p
			}
		}
	}
	return nil
}

// TestFillKeepsTargetsTraceable verifies every placed word can actually be
// traced as an adjacent path
func TestFillKeepsTargetsTraceable(t *testing.T) {
	words := []string{"TIGER", "ZEBRA"}

	for seed := int64(0); seed < 10; seed++ {
		g := game.NewGrid(5, 5)
		g.ApplyShape(game.NewShape(5, 5, game.ShapeSquare))
		g.Fill(words, rand.New(rand.NewSource(seed)))

		for _, w := range words {
			if findPath(g, w) == nil {
				t.Errorf("seed %d: no path spells %q", seed, w)
			}
		}
	}
}

// TestRemovePathGravity verifies column compaction preserves vertical order
// and reduces the active count by the path length
func TestRemovePathGravity(t *testing.T) {
	g := game.NewGrid(3, 3)
	g.ApplyShape(game.NewShape(3, 3, game.ShapeSquare))
	g.Fill([]string{"ABCDEFGHI"}, rand.New(rand.NewSource(9)))

	// Column 0 letters top to bottom before removal.
	var before []rune
	for row := 0; row < 3; row++ {
		cell, _ := g.At(row, 0)
		before = append(before, cell.Char)
	}

	activeBefore := g.ActiveCount()
	path := []game.Pos{{Row: 1, Col: 0}} // remove the middle of column 0
	g.RemovePath(path)

	if got := g.ActiveCount(); got != activeBefore-len(path) {
		t.Errorf("ActiveCount = %d, want %d", got, activeBefore-len(path))
	}

	// Survivors keep their relative order: before[0] above before[2].
	top, _ := g.At(1, 0)
	bottom, _ := g.At(2, 0)
	if top.Char != before[0] || bottom.Char != before[2] {
		t.Errorf("column after gravity = [%c %c], want [%c %c]",
			top.Char, bottom.Char, before[0], before[2])
	}

	// The vacated top slot is inactive and empty.
	vacated, _ := g.At(0, 0)
	if vacated.Active || vacated.Char != 0 {
		t.Errorf("vacated cell should be empty and inactive, got %+v", vacated)
	}
}

// TestRemovePathMultiColumn verifies gravity only touches affected columns
func TestRemovePathMultiColumn(t *testing.T) {
	g := game.NewGrid(3, 3)
	g.ApplyShape(game.NewShape(3, 3, game.ShapeSquare))
	g.Fill([]string{"ABCDEFGHI"}, rand.New(rand.NewSource(11)))

	untouched, _ := g.At(1, 2)

	g.RemovePath([]game.Pos{{Row: 2, Col: 0}, {Row: 2, Col: 1}})

	after, _ := g.At(1, 2)
	if after.Char != untouched.Char {
		t.Errorf("column 2 changed: got %c, want %c", after.Char, untouched.Char)
	}
	if g.ActiveCount() != 7 {
		t.Errorf("ActiveCount = %d, want 7", g.ActiveCount())
	}
}

// TestClaimRelease verifies submission claims are exclusive per cell
func TestClaimRelease(t *testing.T) {
	g := game.NewGrid(3, 3)
	g.ApplyShape(game.NewShape(3, 3, game.ShapeSquare))
	g.Fill([]string{"ABCDEFGHI"}, rand.New(rand.NewSource(2)))

	path := []game.Pos{{Row: 0, Col: 0}, {Row: 0, Col: 1}}
	if !g.Claim(path, "alice") {
		t.Fatal("first claim should succeed")
	}
	overlap := []game.Pos{{Row: 0, Col: 1}, {Row: 0, Col: 2}}
	if g.Claim(overlap, "bob") {
		t.Error("overlapping claim by another player should fail")
	}

	g.Release(path, "alice")
	if !g.Claim(overlap, "bob") {
		t.Error("claim should succeed after release")
	}
}

// TestGridEmpty verifies Empty tracks remaining lettered cells
func TestGridEmpty(t *testing.T) {
	g := game.NewGrid(2, 2)
	g.ApplyShape(game.NewShape(2, 2, game.ShapeSquare))
	g.Fill([]string{"ABCD"}, rand.New(rand.NewSource(5)))

	if g.Empty() {
		t.Error("filled grid should not be empty")
	}
	g.RemovePath([]game.Pos{
		{Row: 0, Col: 0}, {Row: 0, Col: 1}, {Row: 1, Col: 0}, {Row: 1, Col: 1},
	})
	if !g.Empty() {
		t.Error("grid should be empty after removing every cell")
	}
}
