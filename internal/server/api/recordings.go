package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/arcwand/spellcaster/internal/store"
)

// RecordingsHandler handles HTTP requests for wand path recordings captured
// for a spell.
type RecordingsHandler struct {
	store *store.Store
}

// NewRecordingsHandler creates a new RecordingsHandler with the given store.
func NewRecordingsHandler(s *store.Store) *RecordingsHandler {
	return &RecordingsHandler{store: s}
}

// ServeHTTP implements the http.Handler interface.
// Expected paths: /api/spells/{key}/recordings
func (h *RecordingsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/spells/")
	parts := strings.Split(path, "/")

	if len(parts) != 2 || parts[1] != "recordings" {
		writeError(w, http.StatusNotFound, "Not found")
		return
	}

	key := parts[0]

	switch r.Method {
	case http.MethodGet:
		h.list(w, r, key)
	case http.MethodPost:
		h.create(w, r, key)
	case http.MethodDelete:
		h.delete(w, r, key)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// Request types

type createRecordingsRequest struct {
	Recordings []json.RawMessage `json:"recordings"`
}

// Response types

type recordingResponse struct {
	ID             int64           `json:"id"`
	SpellID        string          `json:"spell_id"`
	RecordingIndex int             `json:"recording_index"`
	Path           json.RawMessage `json:"path"`
	CreatedAt      string          `json:"created_at"`
}

type listRecordingsResponse struct {
	Recordings []recordingResponse `json:"recordings"`
}

// resolveSpell maps a spell key to its stored row.
func (h *RecordingsHandler) resolveSpell(w http.ResponseWriter, key string) (*store.Spell, bool) {
	sp, err := h.store.Spells().GetByKey(key)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Spell not found")
		} else {
			writeError(w, http.StatusInternalServerError, "Failed to look up spell")
		}
		return nil, false
	}
	return sp, true
}

// list handles GET /api/spells/{key}/recordings
func (h *RecordingsHandler) list(w http.ResponseWriter, r *http.Request, key string) {
	sp, ok := h.resolveSpell(w, key)
	if !ok {
		return
	}

	recordings, err := h.store.Recordings().GetBySpellID(sp.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list recordings")
		return
	}

	response := listRecordingsResponse{
		Recordings: make([]recordingResponse, 0, len(recordings)),
	}
	for _, rec := range recordings {
		response.Recordings = append(response.Recordings, recordingResponse{
			ID:             rec.ID,
			SpellID:        rec.SpellID,
			RecordingIndex: rec.RecordingIndex,
			Path:           rec.Path,
			CreatedAt:      rec.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		})
	}

	writeJSON(w, http.StatusOK, response)
}

// create handles POST /api/spells/{key}/recordings
func (h *RecordingsHandler) create(w http.ResponseWriter, r *http.Request, key string) {
	sp, ok := h.resolveSpell(w, key)
	if !ok {
		return
	}

	var req createRecordingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if len(req.Recordings) == 0 {
		writeError(w, http.StatusBadRequest, "At least one recording is required")
		return
	}

	if err := h.store.Recordings().Create(sp.ID, req.Recordings); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save recordings")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"status": "ok"})
}

// delete handles DELETE /api/spells/{key}/recordings
func (h *RecordingsHandler) delete(w http.ResponseWriter, r *http.Request, key string) {
	sp, ok := h.resolveSpell(w, key)
	if !ok {
		return
	}

	if err := h.store.Recordings().DeleteBySpellID(sp.ID); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to delete recordings")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
