package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/arcwand/spellcaster/internal/spellbook"
	"github.com/arcwand/spellcaster/internal/store"
)

func newTestHandler(t *testing.T) (*SpellHandler, *spellbook.Book, *store.Store) {
	t.Helper()

	s, err := store.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("store.New() error = %v", err)
	}
	t.Cleanup(func() { s.Close() })

	book := spellbook.NewBook()
	return NewSpellHandler(book, s), book, s
}

func TestSpellHandler_List(t *testing.T) {
	h, book, _ := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/spells", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var body listSpellsResponse
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(body.Spells) != book.Len() {
		t.Errorf("listed %d spells, want %d", len(body.Spells), book.Len())
	}
}

func TestSpellHandler_Get(t *testing.T) {
	h, _, _ := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/spells/lumos", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var body spellResponse
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if body.Key != "lumos" || body.Template != "flick_up" {
		t.Errorf("body = %+v, want lumos with flick_up", body)
	}
}

func TestSpellHandler_GetMissing(t *testing.T) {
	h, _, _ := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/spells/nope", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestSpellHandler_Create(t *testing.T) {
	h, book, s := newTestHandler(t)

	changed := false
	h.OnChange = func() { changed = true }

	payload := `{"key": "tarantallegra", "name": "Tarantallegra", "template": "zigzag"}`
	req := httptest.NewRequest(http.MethodPost, "/api/spells", strings.NewReader(payload))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d: %s", rec.Code, http.StatusCreated, rec.Body.String())
	}
	if !changed {
		t.Error("OnChange was not invoked")
	}

	// In the book.
	sp, ok := book.Get("tarantallegra")
	if !ok {
		t.Fatal("created spell not in the book")
	}
	if !sp.Custom {
		t.Error("created spell should be marked custom")
	}

	// And persisted.
	stored, err := s.Spells().GetByKey("tarantallegra")
	if err != nil {
		t.Fatalf("spell not persisted: %v", err)
	}
	if stored.Template != "zigzag" {
		t.Errorf("persisted template = %s, want zigzag", stored.Template)
	}
}

func TestSpellHandler_CreateValidation(t *testing.T) {
	h, _, _ := newTestHandler(t)

	cases := []struct {
		name    string
		payload string
	}{
		{"invalid json", `{nope`},
		{"missing key", `{"template": "zigzag"}`},
		{"missing template", `{"key": "x"}`},
		{"unknown template", `{"key": "x", "template": "no_such_shape"}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/spells", strings.NewReader(tc.payload))
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
			}
		})
	}
}

func TestSpellHandler_DeleteCustom(t *testing.T) {
	h, book, _ := newTestHandler(t)

	payload := `{"key": "temp_spell", "template": "heart"}`
	req := httptest.NewRequest(http.MethodPost, "/api/spells", strings.NewReader(payload))
	h.ServeHTTP(httptest.NewRecorder(), req)

	req = httptest.NewRequest(http.MethodDelete, "/api/spells/temp_spell", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNoContent)
	}
	if _, ok := book.Get("temp_spell"); ok {
		t.Error("deleted spell still in the book")
	}
}

func TestSpellHandler_DeleteBuiltinForbidden(t *testing.T) {
	h, book, _ := newTestHandler(t)

	req := httptest.NewRequest(http.MethodDelete, "/api/spells/lumos", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusForbidden)
	}
	if _, ok := book.Get("lumos"); !ok {
		t.Error("built-in spell must survive the delete attempt")
	}
}

func TestSpellHandler_MethodNotAllowed(t *testing.T) {
	h, _, _ := newTestHandler(t)

	req := httptest.NewRequest(http.MethodPut, "/api/spells", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusMethodNotAllowed)
	}
}
