package api

import (
	"hash/fnv"
	"strconv"
	"sync"
	"time"

	"wordrush/internal/game"
)

const (
	defaultMaxRenders = 64
	renderTTL         = 30 * time.Second
)

// renderCache keeps recently rendered grid PNGs with LRU eviction so
// repeated polls of the image endpoint do not re-rasterize an unchanged
// grid. Entries are keyed by room code and validated against a fingerprint
// of the grid contents, since every found word changes the grid.
type renderCache struct {
	mu      sync.Mutex
	entries map[string]*renderedGrid
	order   []string // least recently used first
	maxSize int
	ttl     time.Duration
}

type renderedGrid struct {
	fingerprint uint64
	png         []byte
	renderedAt  time.Time
}

func newRenderCache(maxSize int, ttl time.Duration) *renderCache {
	if maxSize <= 0 {
		maxSize = defaultMaxRenders
	}
	return &renderCache{
		entries: make(map[string]*renderedGrid),
		order:   make([]string, 0, maxSize),
		maxSize: maxSize,
		ttl:     ttl,
	}
}

// gridFingerprint hashes the snapshot's visible state.
func gridFingerprint(snap game.GridSnapshot) uint64 {
	h := fnv.New64a()
	h.Write([]byte(strconv.Itoa(snap.Rows)))
	h.Write([]byte{':'})
	h.Write([]byte(strconv.Itoa(snap.Cols)))
	for row := range snap.Cells {
		for col := range snap.Cells[row] {
			h.Write([]byte(snap.Cells[row][col]))
			if snap.Mask[row][col] {
				h.Write([]byte{1})
			} else {
				h.Write([]byte{0})
			}
		}
	}
	return h.Sum64()
}

// get returns the cached PNG for the room if it matches the fingerprint and
// has not expired. A hit marks the entry as recently used.
func (c *renderCache) get(code string, fingerprint uint64) []byte {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[code]
	if !ok || entry.fingerprint != fingerprint {
		return nil
	}
	if time.Since(entry.renderedAt) > c.ttl {
		delete(c.entries, code)
		c.remove(code)
		return nil
	}
	c.touch(code)
	return entry.png
}

// put stores a rendered PNG for the room, evicting the least recently used
// entry at capacity.
func (c *renderCache) put(code string, fingerprint uint64, png []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.entries[code]; ok {
		c.touch(code)
	} else {
		if len(c.entries) >= c.maxSize {
			c.evict()
		}
		c.order = append(c.order, code)
	}
	c.entries[code] = &renderedGrid{
		fingerprint: fingerprint,
		png:         png,
		renderedAt:  time.Now(),
	}
}

// touch moves a key to the recently-used end. Caller holds c.mu.
func (c *renderCache) touch(code string) {
	c.remove(code)
	c.order = append(c.order, code)
}

// remove drops a key from the order slice. Caller holds c.mu.
func (c *renderCache) remove(code string) {
	for i, k := range c.order {
		if k == code {
			c.order = append(c.order[:i], c.order[i+1:]...)
			return
		}
	}
}

func (c *renderCache) evict() {
	if len(c.order) == 0 {
		return
	}
	oldest := c.order[0]
	c.order = c.order[1:]
	delete(c.entries, oldest)
}

func (c *renderCache) size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
