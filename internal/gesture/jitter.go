package gesture

import (
	"math"
	"math/rand"
)

// Jitter parameters used when synthesizing training exemplars from a
// template. The rotation range is intentionally small: larger rotations
// would blur the distinction between direction-sensitive gestures.
const (
	DefaultNoiseScale  = 0.1
	DefaultMaxRotation = 0.3
	DefaultScaleLow    = 0.7
	DefaultScaleHigh   = 1.3
)

// Jitterer derives noisy exemplars from template paths for classifier
// training. Output is randomized but always has the same point count and a
// plausible overall shape.
type Jitterer struct {
	// NoiseScale is the standard deviation of the Gaussian positional noise.
	NoiseScale float64
	// MaxRotation bounds the random rotation in radians (+/-).
	MaxRotation float64
	// ScaleLow and ScaleHigh bound the random uniform scale factor.
	ScaleLow  float64
	ScaleHigh float64

	rng *rand.Rand
}

// NewJitterer creates a Jitterer with the default parameters and the given
// random source seed.
func NewJitterer(seed int64) *Jitterer {
	return &Jitterer{
		NoiseScale:  DefaultNoiseScale,
		MaxRotation: DefaultMaxRotation,
		ScaleLow:    DefaultScaleLow,
		ScaleHigh:   DefaultScaleHigh,
		rng:         rand.New(rand.NewSource(seed)),
	}
}

// Apply returns one noisy variant of the template path: Gaussian positional
// noise, a small random rotation, a random uniform scale, then re-centering
// and re-normalization to unit size.
func (j *Jitterer) Apply(template []Point) []Point {
	if len(template) == 0 {
		return nil
	}
	varied := make([]Point, len(template))

	angle := (j.rng.Float64()*2 - 1) * j.MaxRotation
	cos, sin := math.Cos(angle), math.Sin(angle)
	scale := j.ScaleLow + j.rng.Float64()*(j.ScaleHigh-j.ScaleLow)

	for i, p := range template {
		x := p.X + j.rng.NormFloat64()*j.NoiseScale
		y := p.Y + j.rng.NormFloat64()*j.NoiseScale
		varied[i] = Point{
			X: (x*cos - y*sin) * scale,
			Y: (x*sin + y*cos) * scale,
		}
	}

	// Re-center and re-normalize so jitter does not leak translation or
	// scale back into the training data.
	var cx, cy float64
	for _, p := range varied {
		cx += p.X
		cy += p.Y
	}
	cx /= float64(len(varied))
	cy /= float64(len(varied))

	maxAbs := 0.0
	for i := range varied {
		varied[i].X -= cx
		varied[i].Y -= cy
		maxAbs = math.Max(maxAbs, math.Max(math.Abs(varied[i].X), math.Abs(varied[i].Y)))
	}
	if maxAbs > 0 {
		for i := range varied {
			varied[i].X /= maxAbs
			varied[i].Y /= maxAbs
		}
	}

	return varied
}
