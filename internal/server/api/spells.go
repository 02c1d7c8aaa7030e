// Package api provides HTTP API handlers for the spellcaster system.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/arcwand/spellcaster/internal/spellbook"
	"github.com/arcwand/spellcaster/internal/store"
)

// SpellHandler handles HTTP requests for spell resources. Custom spells are
// persisted to the store; built-in spells live only in the book.
type SpellHandler struct {
	book  *spellbook.Book
	store *store.Store

	// OnChange is invoked after a spell is added or removed, so the owner
	// can retrain the classifier against the new label set.
	OnChange func()
}

// NewSpellHandler creates a new SpellHandler with the given book and store.
// The store may be nil, in which case custom spells are not persisted.
func NewSpellHandler(book *spellbook.Book, s *store.Store) *SpellHandler {
	return &SpellHandler{book: book, store: s}
}

// ServeHTTP implements the http.Handler interface and routes requests to appropriate methods.
func (h *SpellHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// Expected paths: /api/spells or /api/spells/{key}
	path := strings.TrimPrefix(r.URL.Path, "/api/spells")
	path = strings.TrimPrefix(path, "/")

	if path == "" {
		switch r.Method {
		case http.MethodGet:
			h.list(w, r)
		case http.MethodPost:
			h.create(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
		return
	}

	key := path
	switch r.Method {
	case http.MethodGet:
		h.get(w, r, key)
	case http.MethodDelete:
		h.delete(w, r, key)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// Request and response types

type createSpellRequest struct {
	Key         string `json:"key"`
	Name        string `json:"name"`
	Incantation string `json:"incantation"`
	Description string `json:"description"`
	Color       string `json:"color"`
	Template    string `json:"template"`
}

type spellResponse struct {
	Key         string `json:"key"`
	Name        string `json:"name"`
	Incantation string `json:"incantation"`
	Description string `json:"description"`
	Color       string `json:"color"`
	Template    string `json:"template"`
	Custom      bool   `json:"custom"`
}

type listSpellsResponse struct {
	Spells []spellResponse `json:"spells"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// toResponse converts a spellbook.Spell to a spellResponse.
func toResponse(s spellbook.Spell) spellResponse {
	return spellResponse{
		Key:         s.Key,
		Name:        s.Name,
		Incantation: s.Incantation,
		Description: s.Description,
		Color:       s.Color,
		Template:    s.Template,
		Custom:      s.Custom,
	}
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// list handles GET /api/spells and returns all spells in the book.
func (h *SpellHandler) list(w http.ResponseWriter, r *http.Request) {
	all := h.book.All()

	response := listSpellsResponse{
		Spells: make([]spellResponse, 0, len(all)),
	}
	for _, s := range all {
		response.Spells = append(response.Spells, toResponse(s))
	}

	writeJSON(w, http.StatusOK, response)
}

// get handles GET /api/spells/{key} and returns a single spell.
func (h *SpellHandler) get(w http.ResponseWriter, r *http.Request, key string) {
	s, ok := h.book.Get(key)
	if !ok {
		writeError(w, http.StatusNotFound, "Spell not found")
		return
	}
	writeJSON(w, http.StatusOK, toResponse(s))
}

// create handles POST /api/spells and adds a custom spell.
func (h *SpellHandler) create(w http.ResponseWriter, r *http.Request) {
	var req createSpellRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Key == "" {
		writeError(w, http.StatusBadRequest, "Key is required")
		return
	}
	if req.Template == "" {
		writeError(w, http.StatusBadRequest, "Template is required")
		return
	}

	name := req.Name
	if name == "" {
		name = req.Key
	}

	spell := spellbook.Spell{
		Key:         req.Key,
		Name:        name,
		Incantation: req.Incantation,
		Description: req.Description,
		Color:       req.Color,
		Template:    req.Template,
		Custom:      true,
	}

	if err := h.book.Add(spell); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if h.store != nil {
		rec := &store.Spell{
			ID:          uuid.New().String(),
			Key:         spell.Key,
			Name:        spell.Name,
			Incantation: spell.Incantation,
			Description: spell.Description,
			Color:       spell.Color,
			Template:    spell.Template,
		}
		if err := h.store.Spells().Create(rec); err != nil {
			h.book.Remove(spell.Key)
			writeError(w, http.StatusInternalServerError, "Failed to save spell")
			return
		}
	}

	if h.OnChange != nil {
		h.OnChange()
	}

	writeJSON(w, http.StatusCreated, toResponse(spell))
}

// delete handles DELETE /api/spells/{key} and removes a custom spell.
// Built-in spells cannot be removed.
func (h *SpellHandler) delete(w http.ResponseWriter, r *http.Request, key string) {
	s, ok := h.book.Get(key)
	if !ok {
		writeError(w, http.StatusNotFound, "Spell not found")
		return
	}
	if !s.Custom {
		writeError(w, http.StatusForbidden, "Built-in spells cannot be removed")
		return
	}

	if h.store != nil {
		rec, err := h.store.Spells().GetByKey(key)
		if err == nil {
			if err := h.store.Spells().Delete(rec.ID); err != nil && !errors.Is(err, store.ErrNotFound) {
				writeError(w, http.StatusInternalServerError, "Failed to delete spell")
				return
			}
		} else if !errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusInternalServerError, "Failed to delete spell")
			return
		}
	}

	h.book.Remove(key)

	if h.OnChange != nil {
		h.OnChange()
	}

	w.WriteHeader(http.StatusNoContent)
}
