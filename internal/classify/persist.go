package classify

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/arcwand/spellcaster/internal/gesture"
)

// ErrNoModel is returned by LoadModel when no persisted model exists.
var ErrNoModel = errors.New("no persisted model")

// SaveModel persists a trained model as one atomic unit. The model is
// written to a temp file in the same directory and renamed into place, so
// a concurrent load never observes a half-written file.
func SaveModel(path string, m *Model) error {
	if err := m.Validate(); err != nil {
		return fmt.Errorf("refusing to persist invalid model: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create model directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".model-*.json")
	if err != nil {
		return fmt.Errorf("create temp model file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := json.NewEncoder(tmp).Encode(m); err != nil {
		tmp.Close()
		return fmt.Errorf("encode model: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp model file: %w", err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace model file: %w", err)
	}
	return nil
}

// LoadModel reads a persisted model. Returns ErrNoModel if the file does
// not exist, and a descriptive error for an unreadable or inconsistent
// blob. Callers are expected to fall back to training a fresh default
// model in both cases.
func LoadModel(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNoModel
		}
		return nil, fmt.Errorf("read model file: %w", err)
	}

	var m Model
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decode model file: %w", err)
	}
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("persisted model is corrupt: %w", err)
	}
	return &m, nil
}

// LoadOrTrain loads the persisted model, or trains a fresh one from the
// given templates when the file is missing or corrupt. A newly trained
// model is persisted before returning. Startup never fails because of a
// bad model file.
func LoadOrTrain(path string, shapes map[string]gesture.Shape, opts TrainOptions) (*Model, error) {
	model, err := LoadModel(path)
	if err == nil {
		return model, nil
	}
	if !errors.Is(err, ErrNoModel) {
		log.Printf("discarding persisted model: %v", err)
	}

	model, err = Train(shapes, opts)
	if err != nil {
		return nil, fmt.Errorf("train default model: %w", err)
	}

	if err := SaveModel(path, model); err != nil {
		// A model that can't be persisted is still usable for this run.
		log.Printf("failed to persist model: %v", err)
	}
	return model, nil
}
