package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/arcwand/spellcaster/internal/store"
)

func newRecordingsFixture(t *testing.T) (*RecordingsHandler, *store.Store) {
	t.Helper()

	s, err := store.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("store.New() error = %v", err)
	}
	t.Cleanup(func() { s.Close() })

	err = s.Spells().Create(&store.Spell{
		ID:       uuid.New().String(),
		Key:      "lumos",
		Name:     "Lumos",
		Template: "flick_up",
	})
	if err != nil {
		t.Fatalf("seed spell error = %v", err)
	}

	return NewRecordingsHandler(s), s
}

func TestRecordingsHandler_CreateAndList(t *testing.T) {
	h, _ := newRecordingsFixture(t)

	payload := `{"recordings": [[{"x":1,"y":2}], [{"x":3,"y":4}]]}`
	req := httptest.NewRequest(http.MethodPost, "/api/spells/lumos/recordings", strings.NewReader(payload))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, want %d: %s", rec.Code, http.StatusCreated, rec.Body.String())
	}

	req = httptest.NewRequest(http.MethodGet, "/api/spells/lumos/recordings", nil)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d, want %d", rec.Code, http.StatusOK)
	}

	var body listRecordingsResponse
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(body.Recordings) != 2 {
		t.Fatalf("listed %d recordings, want 2", len(body.Recordings))
	}
	if body.Recordings[0].RecordingIndex != 0 || body.Recordings[1].RecordingIndex != 1 {
		t.Error("recordings not ordered by index")
	}
}

func TestRecordingsHandler_UnknownSpell(t *testing.T) {
	h, _ := newRecordingsFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/api/spells/nope/recordings", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestRecordingsHandler_CreateEmpty(t *testing.T) {
	h, _ := newRecordingsFixture(t)

	req := httptest.NewRequest(http.MethodPost, "/api/spells/lumos/recordings", strings.NewReader(`{"recordings": []}`))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestRecordingsHandler_Delete(t *testing.T) {
	h, s := newRecordingsFixture(t)

	sp, err := s.Spells().GetByKey("lumos")
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Recordings().Create(sp.ID, []json.RawMessage{json.RawMessage(`[]`)}); err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest(http.MethodDelete, "/api/spells/lumos/recordings", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNoContent)
	}

	recordings, err := s.Recordings().GetBySpellID(sp.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(recordings) != 0 {
		t.Errorf("%d recordings remain after delete", len(recordings))
	}
}

func TestRecordingsHandler_BadPath(t *testing.T) {
	h, _ := newRecordingsFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/api/spells/lumos/other", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}
