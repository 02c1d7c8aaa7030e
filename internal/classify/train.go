package classify

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/arcwand/spellcaster/internal/gesture"
)

// Training defaults. The variant count matches what gives a stable decision
// boundary for hand-drawn strokes without making retraining slow on a Pi.
const (
	DefaultVariants     = 30
	defaultEpochs       = 400
	defaultLearningRate = 0.5
	defaultL2           = 1e-4
)

// TrainOptions control synthetic training data generation and model fitting.
type TrainOptions struct {
	// Resample is the normalized path point count N.
	Resample int
	// Variants is the number of jittered exemplars synthesized per label.
	Variants int
	// Seed seeds the jitter random source. Zero uses a time-based seed.
	Seed int64

	// Gradient descent parameters. Zero values use the defaults.
	Epochs       int
	LearningRate float64
	L2           float64
}

// Train fits a softmax classifier over synthetic exemplars generated from
// the given label-to-template mapping. Each label contributes its
// unjittered template plus Variants jittered copies, all run through the
// same normalize/extract pipeline used at inference time.
func Train(shapes map[string]gesture.Shape, opts TrainOptions) (*Model, error) {
	if len(shapes) < 2 {
		return nil, fmt.Errorf("training requires at least 2 labels, got %d", len(shapes))
	}
	if opts.Resample <= 0 {
		opts.Resample = gesture.DefaultResamplePoints
	}
	if opts.Variants <= 0 {
		opts.Variants = DefaultVariants
	}
	if opts.Epochs <= 0 {
		opts.Epochs = defaultEpochs
	}
	if opts.LearningRate <= 0 {
		opts.LearningRate = defaultLearningRate
	}
	if opts.L2 <= 0 {
		opts.L2 = defaultL2
	}
	if opts.Seed == 0 {
		opts.Seed = time.Now().UnixNano()
	}

	// Deterministic label order so the same spellbook always yields the
	// same class indices.
	labels := make([]string, 0, len(shapes))
	for label := range shapes {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	jitterer := gesture.NewJitterer(opts.Seed)

	var vectors [][]float64
	var classes []int
	for idx, label := range labels {
		template := shapes[label].Generate(opts.Resample)

		exemplars := make([][]gesture.Point, 0, opts.Variants+1)
		exemplars = append(exemplars, template)
		for v := 0; v < opts.Variants; v++ {
			exemplars = append(exemplars, jitterer.Apply(template))
		}

		for _, exemplar := range exemplars {
			normalized, err := gesture.Normalize(exemplar, opts.Resample)
			if err != nil {
				return nil, fmt.Errorf("normalize %s exemplar: %w", label, err)
			}
			vectors = append(vectors, gesture.ExtractFeatures(normalized))
			classes = append(classes, idx)
		}
	}

	mean, std := fitScaler(vectors)
	scaled := make([][]float64, len(vectors))
	for i, vec := range vectors {
		s := make([]float64, len(vec))
		for j, v := range vec {
			s[j] = (v - mean[j]) / std[j]
		}
		scaled[i] = s
	}

	weights, bias := fitSoftmax(scaled, classes, len(labels), opts)

	model := &Model{
		Weights: weights,
		Bias:    bias,
		Mean:    mean,
		Std:     std,
		Labels:  labels,
	}
	return model, nil
}

// fitScaler computes per-feature mean and standard deviation. Constant
// features get a std of 1 so scaling stays a no-op for them.
func fitScaler(vectors [][]float64) (mean, std []float64) {
	dim := len(vectors[0])
	mean = make([]float64, dim)
	std = make([]float64, dim)

	for _, vec := range vectors {
		for j, v := range vec {
			mean[j] += v
		}
	}
	n := float64(len(vectors))
	for j := range mean {
		mean[j] /= n
	}

	for _, vec := range vectors {
		for j, v := range vec {
			d := v - mean[j]
			std[j] += d * d
		}
	}
	for j := range std {
		std[j] = math.Sqrt(std[j] / n)
		if std[j] == 0 {
			std[j] = 1
		}
	}
	return mean, std
}

// fitSoftmax trains multinomial logistic regression weights by full-batch
// gradient descent with L2 regularization.
func fitSoftmax(scaled [][]float64, classes []int, classCount int, opts TrainOptions) ([][]float64, []float64) {
	dim := len(scaled[0])
	weights := make([][]float64, classCount)
	for c := range weights {
		weights[c] = make([]float64, dim)
	}
	bias := make([]float64, classCount)

	n := float64(len(scaled))
	gradW := make([][]float64, classCount)
	for c := range gradW {
		gradW[c] = make([]float64, dim)
	}
	gradB := make([]float64, classCount)

	for epoch := 0; epoch < opts.Epochs; epoch++ {
		for c := range gradW {
			for j := range gradW[c] {
				gradW[c][j] = 0
			}
			gradB[c] = 0
		}

		for i, x := range scaled {
			probs := softmaxLogits(weights, bias, x)
			for c := range probs {
				err := probs[c]
				if c == classes[i] {
					err -= 1
				}
				for j, v := range x {
					gradW[c][j] += err * v
				}
				gradB[c] += err
			}
		}

		for c := range weights {
			for j := range weights[c] {
				grad := gradW[c][j]/n + opts.L2*weights[c][j]
				weights[c][j] -= opts.LearningRate * grad
			}
			bias[c] -= opts.LearningRate * gradB[c] / n
		}
	}

	return weights, bias
}

func softmaxLogits(weights [][]float64, bias []float64, x []float64) []float64 {
	logits := make([]float64, len(weights))
	maxLogit := math.Inf(-1)
	for c := range weights {
		z := bias[c]
		for j, w := range weights[c] {
			z += w * x[j]
		}
		logits[c] = z
		maxLogit = math.Max(maxLogit, z)
	}
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
