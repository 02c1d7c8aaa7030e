package e2e

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/arcwand/spellcaster/internal/classify"
	"github.com/arcwand/spellcaster/internal/gesture"
	"github.com/arcwand/spellcaster/internal/server"
	"github.com/arcwand/spellcaster/internal/spellbook"
	"github.com/arcwand/spellcaster/internal/store"
	"github.com/arcwand/spellcaster/internal/tracker"
	"github.com/arcwand/spellcaster/testdata"
)

// TestE2E_FramesToSpell drives synthetic camera frames through the real
// detector, segmenter and classifier: a rendered IR blob tracing a circle
// must come out the other end as alohomora.
func TestE2E_FramesToSpell(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping e2e test")
	}

	book := spellbook.NewBook()
	model, err := classify.Train(book.Shapes(), classify.TrainOptions{Seed: 7})
	if err != nil {
		t.Fatalf("Train() error = %v", err)
	}
	recognizer := classify.NewRecognizer(model, gesture.DefaultResamplePoints, classify.DefaultMinConfidence)

	detector := tracker.NewIRDetector(tracker.DefaultConfig())
	defer detector.Close()
	segmenter := gesture.NewSegmenter(gesture.DefaultTimeoutFrames, gesture.DefaultMinPoints)

	points := testdata.CirclePoints(320, 240, 120, 40, true)
	frames := testdata.PathFrames(640, 480, points, gesture.DefaultTimeoutFrames+1)
	defer testdata.CloseFrames(frames)

	var result *classify.Result
	for _, frame := range frames {
		pt, err := detector.Detect(frame)
		if err != nil {
			t.Fatalf("Detect() error = %v", err)
		}
		if path := segmenter.Observe(pt); path != nil {
			result = recognizer.Recognize(path)
		}
	}

	if result == nil {
		t.Fatal("no spell recognized from the frame sequence")
	}
	if result.Label != "alohomora" {
		t.Errorf("recognized %s (confidence %.3f), want alohomora", result.Label, result.Confidence)
	}
	if result.Confidence < classify.DefaultMinConfidence {
		t.Errorf("confidence = %.3f, want >= %.2f", result.Confidence, classify.DefaultMinConfidence)
	}
}

func TestE2E_SpellManagementWorkflow(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping e2e test")
	}

	s, err := store.New(filepath.Join(t.TempDir(), "data.db"))
	if err != nil {
		t.Fatalf("store.New() error = %v", err)
	}
	defer s.Close()

	book := spellbook.NewBook()
	srv := server.New(server.Config{Store: s, Book: book})
	ts := httptest.NewServer(srv)
	defer ts.Close()

	client := ts.Client()

	t.Run("CreateSpell", func(t *testing.T) {
		resp, err := client.Post(
			ts.URL+"/api/spells",
			"application/json",
			strings.NewReader(`{"key": "serpensortia", "name": "Serpensortia", "template": "heart"}`),
		)
		if err != nil {
			t.Fatalf("create spell error = %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusCreated)
		}
	})

	t.Run("AddRecordings", func(t *testing.T) {
		resp, err := client.Post(
			ts.URL+"/api/spells/serpensortia/recordings",
			"application/json",
			strings.NewReader(`{"recordings": [[{"x": 1, "y": 2}]]}`),
		)
		if err != nil {
			t.Fatalf("add recordings error = %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusCreated)
		}
	})

	t.Run("RetrainIncludesNewSpell", func(t *testing.T) {
		model, err := classify.Train(book.Shapes(), classify.TrainOptions{Seed: 7})
		if err != nil {
			t.Fatalf("Train() error = %v", err)
		}

		found := false
		for _, label := range model.Labels {
			if label == "serpensortia" {
				found = true
			}
		}
		if !found {
			t.Errorf("retrained model labels %v missing serpensortia", model.Labels)
		}
	})

	t.Run("DeleteSpell", func(t *testing.T) {
		req, err := http.NewRequest(http.MethodDelete, ts.URL+"/api/spells/serpensortia", nil)
		if err != nil {
			t.Fatal(err)
		}
		resp, err := client.Do(req)
		if err != nil {
			t.Fatalf("delete spell error = %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusNoContent {
			t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusNoContent)
		}
		if _, ok := book.Get("serpensortia"); ok {
			t.Error("spell still in the book after delete")
		}
	})
}
