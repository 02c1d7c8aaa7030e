// Package app wires the capture, tracking, segmentation and classification
// components into the spell recognition daemon.
package app

import (
	"log"
	"sync"

	"github.com/arcwand/spellcaster/internal/capture"
	"github.com/arcwand/spellcaster/internal/classify"
	"github.com/arcwand/spellcaster/internal/config"
	"github.com/arcwand/spellcaster/internal/gesture"
	"github.com/arcwand/spellcaster/internal/hook"
	"github.com/arcwand/spellcaster/internal/spellbook"
	"github.com/arcwand/spellcaster/internal/store"
	"github.com/arcwand/spellcaster/internal/tracker"
)

// maxConsecutiveReadErrors is how many frame reads may fail in a row
// before the pipeline gives up on the camera.
const maxConsecutiveReadErrors = 30

// Sink receives recognized spells. Implementations must not block; slow
// delivery stalls the frame loop.
type Sink interface {
	Publish(spell spellbook.Spell, confidence float64)
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(spell spellbook.Spell, confidence float64)

// Publish calls the wrapped function.
func (f SinkFunc) Publish(spell spellbook.Spell, confidence float64) { f(spell, confidence) }

// App is the main application that orchestrates wand tracking and spell
// casting.
type App struct {
	settings   *config.Settings
	store      *store.Store
	camera     capture.Camera
	detector   tracker.Detector
	segmenter  *gesture.Segmenter
	recognizer *classify.Recognizer
	book       *spellbook.Book
	hooks      *hook.Runner

	sinks   []Sink
	enabled bool
	mu      sync.RWMutex
	stopCh  chan struct{}
	errCh   chan error
}

// New creates a new App from settings. The store may be nil; custom spells
// and recordings are then unavailable but the daemon still runs with the
// built-in spells.
func New(settings *config.Settings, st *store.Store) *App {
	a := &App{
		settings: settings,
		store:    st,
		camera: capture.NewCameraWithResolution(
			settings.Camera.ID, settings.Camera.Width, settings.Camera.Height),
		detector: tracker.NewIRDetector(tracker.Config{
			Threshold:      settings.Camera.IRThreshold,
			MinBlobArea:    settings.Camera.MinBlobArea,
			MaxBlobArea:    settings.Camera.MaxBlobArea,
			MinCircularity: tracker.DefaultMinCircularity,
		}),
		segmenter: gesture.NewSegmenter(
			settings.Gesture.TimeoutFrames, settings.Gesture.MinPoints),
		book:  spellbook.NewBook(),
		errCh: make(chan error, 1),
	}

	if settings.Hooks.Enabled {
		a.hooks = hook.NewRunner(settings.Hooks.Dir, settings.Hooks.Timeout)
		if err := a.hooks.Discover(); err != nil {
			log.Printf("Hook discovery failed: %v", err)
		}
	}

	return a
}

// LoadSpells loads custom spells from the database into the book.
func (a *App) LoadSpells() error {
	if a.store == nil {
		return nil
	}

	spells, err := a.store.Spells().List()
	if err != nil {
		return err
	}

	loaded := 0
	for _, sp := range spells {
		err := a.book.Add(spellbook.Spell{
			Key:         sp.Key,
			Name:        sp.Name,
			Incantation: sp.Incantation,
			Description: sp.Description,
			Color:       sp.Color,
			Template:    sp.Template,
			Custom:      true,
		})
		if err != nil {
			log.Printf("Skipping stored spell %s: %v", sp.Key, err)
			continue
		}
		loaded++
	}

	log.Printf("Loaded %d custom spells from database", loaded)
	return nil
}

// EnsureModel loads the persisted classifier model, or trains one from the
// current spell book when no usable model exists.
func (a *App) EnsureModel() error {
	model, err := classify.LoadOrTrain(
		a.settings.Gesture.ModelPath, a.book.Shapes(), a.trainOptions())
	if err != nil {
		return err
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if a.recognizer == nil {
		a.recognizer = classify.NewRecognizer(
			model, a.settings.Gesture.ResamplePoints, a.settings.Gesture.MinConfidence)
	} else {
		a.recognizer.SwapModel(model)
	}
	return nil
}

// Retrain trains a fresh model from the current spell book, swaps it into
// the recognizer and persists it. Called after the spell set changes.
func (a *App) Retrain() error {
	model, err := classify.Train(a.book.Shapes(), a.trainOptions())
	if err != nil {
		return err
	}

	a.mu.Lock()
	if a.recognizer == nil {
		a.recognizer = classify.NewRecognizer(
			model, a.settings.Gesture.ResamplePoints, a.settings.Gesture.MinConfidence)
	} else {
		a.recognizer.SwapModel(model)
	}
	a.mu.Unlock()

	if err := classify.SaveModel(a.settings.Gesture.ModelPath, model); err != nil {
		log.Printf("Failed to persist retrained model: %v", err)
	}
	log.Printf("Retrained classifier for %d spells", a.book.Len())
	return nil
}

func (a *App) trainOptions() classify.TrainOptions {
	return classify.TrainOptions{
		Resample: a.settings.Gesture.ResamplePoints,
	}
}

// AddSink registers a result sink. Not safe to call after Start.
func (a *App) AddSink(s Sink) {
	a.sinks = append(a.sinks, s)
}

// SetEnabled enables or disables spell recognition. Disabling discards any
// gesture in progress.
func (a *App) SetEnabled(enabled bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.enabled = enabled
}

// IsEnabled returns whether spell recognition is currently enabled.
func (a *App) IsEnabled() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.enabled
}

// SetCamera replaces the camera implementation. Not safe to call after Start.
func (a *App) SetCamera(c capture.Camera) {
	a.camera = c
}

// SetDetector replaces the wand tip detector. Not safe to call after Start.
func (a *App) SetDetector(d tracker.Detector) {
	a.detector = d
}

// Start opens the camera and begins the recognition pipeline.
func (a *App) Start() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.stopCh != nil {
		return nil
	}

	if err := a.camera.Open(); err != nil {
		return err
	}
	a.camera.SetFPS(a.settings.Camera.FPS)

	a.stopCh = make(chan struct{})
	go a.runPipeline(a.stopCh)

	log.Println("Spell recognition pipeline started")
	return nil
}

// Stop halts the pipeline and releases resources.
func (a *App) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.stopCh != nil {
		close(a.stopCh)
		a.stopCh = nil
	}

	if err := a.camera.Close(); err != nil {
		log.Printf("Error closing camera: %v", err)
	}

	if a.detector != nil {
		if err := a.detector.Close(); err != nil {
			log.Printf("Error closing detector: %v", err)
		}
	}

	log.Println("Spell recognition pipeline stopped")
}

// Errors returns a channel that receives a fatal pipeline error, such as
// the camera disappearing. The pipeline stops itself after sending.
func (a *App) Errors() <-chan error {
	return a.errCh
}

// Camera returns the camera instance.
func (a *App) Camera() capture.Camera {
	return a.camera
}

// Detector returns the wand tip detector.
func (a *App) Detector() tracker.Detector {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.detector
}

// Book returns the spell book.
func (a *App) Book() *spellbook.Book {
	return a.book
}

// Recognizer returns the gesture recognizer, or nil before EnsureModel.
func (a *App) Recognizer() *classify.Recognizer {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.recognizer
}

// Hooks returns the hook runner, or nil when hooks are disabled.
func (a *App) Hooks() *hook.Runner {
	return a.hooks
}
