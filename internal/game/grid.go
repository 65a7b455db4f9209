package game

import (
	"math/rand"
	"sort"
	"sync"
)

// Pos addresses a single grid cell by row and column.
type Pos struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Cell is one grid cell. OwnerID is a transient claim held while a player's
// submission containing the cell is being processed.
type Cell struct {
	Row     int
	Col     int
	Char    rune
	Active  bool
	OwnerID string
}

// Grid is a rectangular cell matrix shaped by an activity mask and filled
// with letters drawn from the level's target words.
//
// Grids are read by snapshot endpoints and the image renderer while
// submissions mutate them, so all access goes through internally locked
// methods.
type Grid struct {
	Rows, Cols int

	mu    sync.RWMutex
	cells [][]Cell
	shape *Shape
	words []string
}

// NewGrid builds an empty grid with every cell inactive until a shape is
// applied.
func NewGrid(rows, cols int) *Grid {
	cells := make([][]Cell, rows)
	for i := range cells {
		cells[i] = make([]Cell, cols)
		for j := range cells[i] {
			cells[i][j] = Cell{Row: i, Col: j}
		}
	}
	return &Grid{Rows: rows, Cols: cols, cells: cells}
}

// ApplyShape marks cells active according to the shape mask.
func (g *Grid) ApplyShape(s *Shape) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.shape = s
	for i := 0; i < g.Rows; i++ {
		for j := 0; j < g.Cols; j++ {
			g.cells[i][j].Active = s.Active(i, j)
		}
	}
}

// Fill places the target words into active cells. Each word is carved along
// a random self-avoiding path of adjacent cells so every target stays
// traceable; a word that cannot be routed falls back to shuffled row-major
// placement into the remaining free cells. Active cells left without a
// letter are deactivated, so the placed letters are always an exact
// permutation of the target words' characters.
func (g *Grid) Fill(words []string, rng *rand.Rand) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.words = append([]string(nil), words...)

	// Longest words first; they are the hardest to route.
	order := append([]string(nil), words...)
	sort.SliceStable(order, func(i, j int) bool {
		return len(order[i]) > len(order[j])
	})

	occupied := make(map[Pos]bool)
	var leftover []rune
	for _, w := range order {
		runes := []rune(w)
		path := g.carvePath(len(runes), occupied, rng)
		if path == nil {
			leftover = append(leftover, runes...)
			continue
		}
		for i, p := range path {
			g.cells[p.Row][p.Col].Char = runes[i]
			occupied[p] = true
		}
	}

	rng.Shuffle(len(leftover), func(i, j int) {
		leftover[i], leftover[j] = leftover[j], leftover[i]
	})

	idx := 0
	for i := 0; i < g.Rows; i++ {
		for j := 0; j < g.Cols; j++ {
			cell := &g.cells[i][j]
			if !cell.Active || occupied[Pos{Row: i, Col: j}] {
				continue
			}
			if idx < len(leftover) {
				cell.Char = leftover[idx]
				idx++
				continue
			}
			// No letter for this cell; shrink the shape to the covered area.
			cell.Char = 0
			cell.Active = false
			if g.shape != nil {
				g.shape.SetActive(i, j, false)
			}
		}
	}
}

var pathDirs = [8][2]int{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}

// carvePath finds a self-avoiding path of the given length through free
// active cells, or nil if none exists from any start. Caller holds g.mu.
func (g *Grid) carvePath(length int, occupied map[Pos]bool, rng *rand.Rand) []Pos {
	free := make([]Pos, 0, g.Rows*g.Cols)
	for i := 0; i < g.Rows; i++ {
		for j := 0; j < g.Cols; j++ {
			p := Pos{Row: i, Col: j}
			if g.cells[i][j].Active && !occupied[p] {
				free = append(free, p)
			}
		}
	}
	if len(free) < length {
		return nil
	}

	visited := make(map[Pos]bool, length)
	for _, si := range rng.Perm(len(free)) {
		if path := g.walkFrom(free[si], length, occupied, visited, rng); path != nil {
			return path
		}
	}
	return nil
}

// walkFrom extends a path by depth-first search with backtracking, visiting
// neighbors in random order. Caller holds g.mu.
func (g *Grid) walkFrom(p Pos, length int, occupied, visited map[Pos]bool, rng *rand.Rand) []Pos {
	visited[p] = true
	if length == 1 {
		delete(visited, p)
		return []Pos{p}
	}
	for _, di := range rng.Perm(len(pathDirs)) {
		n := Pos{Row: p.Row + pathDirs[di][0], Col: p.Col + pathDirs[di][1]}
		if n.Row < 0 || n.Row >= g.Rows || n.Col < 0 || n.Col >= g.Cols {
			continue
		}
		if !g.cells[n.Row][n.Col].Active || occupied[n] || visited[n] {
			continue
		}
		if rest := g.walkFrom(n, length-1, occupied, visited, rng); rest != nil {
			delete(visited, p)
			return append([]Pos{p}, rest...)
		}
	}
	delete(visited, p)
	return nil
}

// At returns a copy of the cell at (row, col) and whether it is in bounds.
func (g *Grid) At(row, col int) (Cell, bool) {
	if row < 0 || row >= g.Rows || col < 0 || col >= g.Cols {
		return Cell{}, false
	}
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.cells[row][col], true
}

// ActiveCount returns the number of currently active cells.
func (g *Grid) ActiveCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	n := 0
	for i := 0; i < g.Rows; i++ {
		for j := 0; j < g.Cols; j++ {
			if g.cells[i][j].Active {
				n++
			}
		}
	}
	return n
}

// Words returns the solution words the grid was filled from.
func (g *Grid) Words() []string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return append([]string(nil), g.words...)
}

// Claim marks the path's cells as owned by the player for the duration of a
// pending submission. It fails without side effects if any cell is already
// claimed by someone else.
func (g *Grid) Claim(path []Pos, playerID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	for _, p := range path {
		if p.Row < 0 || p.Row >= g.Rows || p.Col < 0 || p.Col >= g.Cols {
			return false
		}
		if owner := g.cells[p.Row][p.Col].OwnerID; owner != "" && owner != playerID {
			return false
		}
	}
	for _, p := range path {
		g.cells[p.Row][p.Col].OwnerID = playerID
	}
	return true
}

// Release drops the player's claim on the path's cells.
func (g *Grid) Release(path []Pos, playerID string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	for _, p := range path {
		if p.Row < 0 || p.Row >= g.Rows || p.Col < 0 || p.Col >= g.Cols {
			continue
		}
		if g.cells[p.Row][p.Col].OwnerID == playerID {
			g.cells[p.Row][p.Col].OwnerID = ""
		}
	}
}

// RemovePath clears a solved word's cells and compacts each affected column
// downward, preserving the column-relative order of the surviving letters.
// Vacated cells become inactive.
func (g *Grid) RemovePath(path []Pos) {
	g.mu.Lock()
	defer g.mu.Unlock()

	columns := make(map[int]bool)
	for _, p := range path {
		if p.Row < 0 || p.Row >= g.Rows || p.Col < 0 || p.Col >= g.Cols {
			continue
		}
		cell := &g.cells[p.Row][p.Col]
		cell.Char = 0
		cell.Active = false
		cell.OwnerID = ""
		if g.shape != nil {
			g.shape.SetActive(p.Row, p.Col, false)
		}
		columns[p.Col] = true
	}

	for col := range columns {
		g.compactColumn(col)
	}
}

// compactColumn drops the surviving letters of one column to the bottom of
// the column's active slots. Caller holds g.mu.
func (g *Grid) compactColumn(col int) {
	// Collect surviving letters bottom-up.
	letters := make([]rune, 0, g.Rows)
	for row := g.Rows - 1; row >= 0; row-- {
		if g.cells[row][col].Active && g.cells[row][col].Char != 0 {
			letters = append(letters, g.cells[row][col].Char)
		}
	}

	// Clear the column, then place the letters back from the bottom. Slots
	// beyond the survivors become inactive.
	for row := 0; row < g.Rows; row++ {
		g.cells[row][col].Char = 0
		g.cells[row][col].Active = false
	}
	idx := 0
	for row := g.Rows - 1; row >= 0 && idx < len(letters); row-- {
		g.cells[row][col].Char = letters[idx]
		g.cells[row][col].Active = true
		idx++
	}
	if g.shape != nil {
		for row := 0; row < g.Rows; row++ {
			g.shape.SetActive(row, col, g.cells[row][col].Active)
		}
	}
}

// GridSnapshot is an immutable view of a grid for API responses and
// rendering.
type GridSnapshot struct {
	Rows      int        `json:"rows"`
	Cols      int        `json:"cols"`
	Cells     [][]string `json:"cells"`
	Mask      [][]bool   `json:"mask"`
	CellCount int        `json:"cellCount"`
}

// Snapshot returns a copy of the grid's visible state. Inactive cells carry
// an empty string.
func (g *Grid) Snapshot() GridSnapshot {
	g.mu.RLock()
	defer g.mu.RUnlock()

	snap := GridSnapshot{
		Rows:  g.Rows,
		Cols:  g.Cols,
		Cells: make([][]string, g.Rows),
		Mask:  make([][]bool, g.Rows),
	}
	for i := 0; i < g.Rows; i++ {
		snap.Cells[i] = make([]string, g.Cols)
		snap.Mask[i] = make([]bool, g.Cols)
		for j := 0; j < g.Cols; j++ {
			cell := g.cells[i][j]
			snap.Mask[i][j] = cell.Active
			if cell.Active && cell.Char != 0 {
				snap.Cells[i][j] = string(cell.Char)
				snap.CellCount++
			}
		}
	}
	return snap
}

// Empty reports whether no active lettered cells remain.
func (g *Grid) Empty() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()

	for i := 0; i < g.Rows; i++ {
		for j := 0; j < g.Cols; j++ {
			if g.cells[i][j].Active && g.cells[i][j].Char != 0 {
				return false
			}
		}
	}
	return true
}
