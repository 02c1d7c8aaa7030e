package classify

import (
	"log"
	"sync/atomic"

	"github.com/arcwand/spellcaster/internal/gesture"
	"github.com/arcwand/spellcaster/internal/tracker"
)

// DefaultMinConfidence is the default confidence gate for accepting a
// classification.
const DefaultMinConfidence = 0.7

// Result is a classified gesture: the winning spell label and the model's
// probability for it.
type Result struct {
	Label      string
	Confidence float64
}

// Recognizer runs the normalize -> extract -> classify pipeline over
// completed gesture paths. The trained model is held behind an atomic
// pointer so a retrain can swap it in without inference ever observing a
// partially-updated model.
type Recognizer struct {
	model         atomic.Pointer[Model]
	resample      int
	minConfidence float64
}

// NewRecognizer creates a Recognizer around a trained model. resample is
// the normalized path point count the model was trained with.
func NewRecognizer(model *Model, resample int, minConfidence float64) *Recognizer {
	if resample <= 0 {
		resample = gesture.DefaultResamplePoints
	}
	if minConfidence <= 0 {
		minConfidence = DefaultMinConfidence
	}
	r := &Recognizer{
		resample:      resample,
		minConfidence: minConfidence,
	}
	r.model.Store(model)
	return r
}

// SwapModel atomically replaces the trained model.
func (r *Recognizer) SwapModel(m *Model) {
	r.model.Store(m)
}

// Model returns the currently active model.
func (r *Recognizer) Model() *Model {
	return r.model.Load()
}

// Recognize classifies a completed gesture path. Returns nil when the path
// is too short to normalize or the winning probability falls below the
// confidence gate; both are expected outcomes, not errors.
func (r *Recognizer) Recognize(path []tracker.TrackingPoint) *Result {
	normalized, err := gesture.Normalize(gesture.FromTracking(path), r.resample)
	if err != nil {
		return nil
	}
	return r.RecognizeFeatures(gesture.ExtractFeatures(normalized))
}

// RecognizeFeatures classifies an already-extracted feature vector.
// A dimension mismatch against the model is degraded-but-recoverable: the
// vector is padded with zeros or truncated to fit, with a log line instead
// of a failure.
func (r *Recognizer) RecognizeFeatures(features []float64) *Result {
	model := r.model.Load()
	if model == nil {
		return nil
	}

	if len(features) != model.Dim() {
		log.Printf("feature dimension mismatch: got %d, model expects %d", len(features), model.Dim())
		features = fitDimension(features, model.Dim())
	}

	label, confidence := model.Predict(features)
	if confidence < r.minConfidence {
		return nil
	}
	return &Result{Label: label, Confidence: confidence}
}

// MinConfidence returns the confidence gate.
func (r *Recognizer) MinConfidence() float64 {
	return r.minConfidence
}

// fitDimension pads a feature vector with zeros or truncates it to the
// given length.
func fitDimension(features []float64, dim int) []float64 {
	if len(features) >= dim {
		return features[:dim]
	}
	fitted := make([]float64, dim)
	copy(fitted, features)
	return fitted
}
