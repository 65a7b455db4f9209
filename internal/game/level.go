package game

// LevelPlan describes the parameters of one level before its grid is built.
type LevelPlan struct {
	Number    int `json:"number"`
	GridSize  int `json:"gridSize"`
	WordCount int `json:"wordCount"`
	Duration  int `json:"duration"`
}

// Levels generates level plans for a game, scaling grid size, word count and
// duration with progression.
type Levels struct {
	Count        int
	MinGridSize  int
	MaxGridSize  int
	BaseDuration int
}

// NewLevels returns the standard 10-level progression.
func NewLevels() *Levels {
	return &Levels{
		Count:        10,
		MinGridSize:  4,
		MaxGridSize:  8,
		BaseDuration: 30,
	}
}

// Plan returns the parameters for level n (1-based). Out-of-range levels are
// clamped into [1, Count].
func (l *Levels) Plan(n int) LevelPlan {
	if n < 1 {
		n = 1
	}
	if n > l.Count {
		n = l.Count
	}

	// Grid grows linearly from MinGridSize to MaxGridSize across the game.
	size := l.MinGridSize
	if l.Count > 1 {
		progress := float64(n-1) / float64(l.Count-1)
		size = l.MinGridSize + int(progress*float64(l.MaxGridSize-l.MinGridSize))
	}

	return LevelPlan{
		Number:    n,
		GridSize:  size,
		WordCount: 1 + (n-1)/3,
		Duration:  l.BaseDuration + ((n-1)/2)*5,
	}
}

// Last reports whether n is the final level.
func (l *Levels) Last(n int) bool {
	return n >= l.Count
}
