package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"sort"

	"github.com/go-chi/chi/v5"

	"wordrush/internal/protocol"
	"wordrush/internal/room"
)

// Handler methods for routerHandlers.
// These are used by both the standalone router (for testing) and the full Server.

func (h *routerHandlers) handleGetStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]interface{}{
		"rooms":   h.directory.Count(),
		"players": h.directory.PlayerCount(),
	})
}

func (h *routerHandlers) handleGetTopics(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]interface{}{
		"topics": h.topics.Topics(),
	})
}

func (h *routerHandlers) handleListRooms(w http.ResponseWriter, r *http.Request) {
	rooms := h.directory.Rooms()
	snaps := make([]room.Snapshot, 0, len(rooms))
	for _, rm := range rooms {
		snaps = append(snaps, rm.Snapshot())
	}
	sort.Slice(snaps, func(i, j int) bool {
		return snaps[i].CreatedAt.Before(snaps[j].CreatedAt)
	})
	writeJSON(w, snaps)
}

func (h *routerHandlers) handleGetRoom(w http.ResponseWriter, r *http.Request) {
	rm, ok := h.directory.Room(chi.URLParam(r, "code"))
	if !ok {
		writeError(w, "Room not found", http.StatusNotFound)
		return
	}
	writeJSON(w, rm.Snapshot())
}

func (h *routerHandlers) handleGetLeaderboard(w http.ResponseWriter, r *http.Request) {
	rm, ok := h.directory.Room(chi.URLParam(r, "code"))
	if !ok {
		writeError(w, "Room not found", http.StatusNotFound)
		return
	}

	snap := rm.Snapshot()
	sort.Slice(snap.Players, func(i, j int) bool {
		return snap.Players[i].Score > snap.Players[j].Score
	})

	progress := protocol.LevelProgress{Total: h.levelTotal}
	if session := rm.Session(); session != nil {
		progress.Current = session.Level().Number
	}
	if h.timers != nil {
		progress.TimeRemaining = h.timers.Remaining(rm.Code)
	}
	writeJSON(w, map[string]interface{}{
		"entries":  snap.Players,
		"progress": progress,
	})
}

func (h *routerHandlers) handleGetGridImage(w http.ResponseWriter, r *http.Request) {
	rm, ok := h.directory.Room(chi.URLParam(r, "code"))
	if !ok {
		writeError(w, "Room not found", http.StatusNotFound)
		return
	}
	session := rm.Session()
	if session == nil {
		writeError(w, "No game in progress", http.StatusNotFound)
		return
	}
	grid := session.Grid()
	if grid == nil {
		writeError(w, "No active level", http.StatusNotFound)
		return
	}

	snap := grid.Snapshot()
	fingerprint := gridFingerprint(snap)

	png := h.renders.get(rm.Code, fingerprint)
	if png == nil {
		var buf bytes.Buffer
		if err := RenderGridPNG(&buf, snap); err != nil {
			writeError(w, "Render failed", http.StatusInternalServerError)
			return
		}
		png = buf.Bytes()
		h.renders.put(rm.Code, fingerprint, png)
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	w.Write(png)
}

// Helper functions

func writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
