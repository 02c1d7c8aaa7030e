// Package classify maps gesture feature vectors to spell labels using a
// trained multinomial logistic model with a confidence gate.
package classify

import (
	"fmt"
	"math"
)

// Model is an immutable trained classifier: softmax weights, the feature
// standardization fitted at training time, and the class-index-to-label
// mapping. A Model is never mutated after training; retraining produces a
// new Model that is swapped in wholesale.
type Model struct {
	// Weights is one row of per-feature weights per class.
	Weights [][]float64 `json:"weights"`
	// Bias holds one intercept per class.
	Bias []float64 `json:"bias"`
	// Mean and Std are the per-feature standardization parameters.
	Mean []float64 `json:"mean"`
	Std  []float64 `json:"std"`
	// Labels maps class index to spell label.
	Labels []string `json:"labels"`
}

// Dim returns the expected feature vector length.
func (m *Model) Dim() int {
	return len(m.Mean)
}

// Classes returns the number of labels the model distinguishes.
func (m *Model) Classes() int {
	return len(m.Labels)
}

// Validate checks internal consistency. A model that fails validation came
// from a truncated or corrupt persisted blob and must not be used.
func (m *Model) Validate() error {
	if len(m.Labels) == 0 {
		return fmt.Errorf("model has no labels")
	}
	if len(m.Weights) != len(m.Labels) || len(m.Bias) != len(m.Labels) {
		return fmt.Errorf("model has %d labels but %d weight rows and %d biases",
			len(m.Labels), len(m.Weights), len(m.Bias))
	}
	if len(m.Mean) == 0 || len(m.Std) != len(m.Mean) {
		return fmt.Errorf("model scaler is malformed: %d means, %d stds", len(m.Mean), len(m.Std))
	}
	for i, row := range m.Weights {
		if len(row) != len(m.Mean) {
			return fmt.Errorf("weight row %d has %d features, expected %d", i, len(row), len(m.Mean))
		}
	}
	return nil
}

// Predict applies the stored standardization to the feature vector and
// returns the most probable label with its probability. The input must
// already match Dim().
func (m *Model) Predict(features []float64) (string, float64) {
	scaled := make([]float64, len(features))
	for i, v := range features {
		std := m.Std[i]
		if std == 0 {
			std = 1
		}
		scaled[i] = (v - m.Mean[i]) / std
	}

	probs := m.probabilities(scaled)

	best := 0
	for c := 1; c < len(probs); c++ {
		if probs[c] > probs[best] {
			best = c
		}
	}
	return m.Labels[best], probs[best]
}

// probabilities computes the softmax distribution over classes for an
// already-scaled feature vector.
func (m *Model) probabilities(scaled []float64) []float64 {
	logits := make([]float64, len(m.Labels))
	maxLogit := math.Inf(-1)
	for c := range m.Weights {
		z := m.Bias[c]
		for i, w := range m.Weights[c] {
			z += w * scaled[i]
		}
		logits[c] = z
		maxLogit = math.Max(maxLogit, z)
	}

	// Shift by the max logit for numerical stability.
	var sum float64
	for c, z := range logits {
		logits[c] = math.Exp(z - maxLogit)
		sum += logits[c]
	}
	for c := range logits {
		logits[c] /= sum
	}
	return logits
}
