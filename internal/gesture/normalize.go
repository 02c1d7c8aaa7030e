package gesture

import (
	"errors"
	"math"
)

// DefaultResamplePoints is the default fixed point count for normalized paths.
const DefaultResamplePoints = 32

// ErrInsufficientPoints is returned when a path has too few points to
// normalize. Such paths are noise, not gestures.
var ErrInsufficientPoints = errors.New("gesture path has fewer than 3 points")

// Normalize converts a variable-length gesture path into a fixed-length,
// translation- and scale-invariant representation of exactly n points.
//
// The path is resampled to n points evenly spaced by arc length, centered
// on its centroid, then scaled so the maximum absolute coordinate is 1.
// Rotation is deliberately left alone: rotation robustness comes from
// training on rotation-jittered exemplars, and full rotation invariance
// would erase the difference between e.g. clockwise and counter-clockwise
// circles.
func Normalize(path []Point, n int) ([]Point, error) {
	if len(path) < 3 {
		return nil, ErrInsufficientPoints
	}
	if n <= 0 {
		n = DefaultResamplePoints
	}

	resampled := Resample(path, n)

	// Center on the centroid.
	var cx, cy float64
	for _, p := range resampled {
		cx += p.X
		cy += p.Y
	}
	cx /= float64(len(resampled))
	cy /= float64(len(resampled))

	maxAbs := 0.0
	for i := range resampled {
		resampled[i].X -= cx
		resampled[i].Y -= cy
		if v := math.Abs(resampled[i].X); v > maxAbs {
			maxAbs = v
		}
		if v := math.Abs(resampled[i].Y); v > maxAbs {
			maxAbs = v
		}
	}

	// Scale to unit size. A degenerate path (all points coincident) has
	// maxAbs 0 and is left unscaled.
	if maxAbs > 0 {
		for i := range resampled {
			resampled[i].X /= maxAbs
			resampled[i].Y /= maxAbs
		}
	}

	return resampled, nil
}

// Resample returns exactly n points evenly spaced by arc length along the
// path, interpolating linearly within the original segments. A path with
// zero total length yields n copies of the first point.
func Resample(path []Point, n int) []Point {
	if len(path) == 0 || n <= 0 {
		return nil
	}

	// Cumulative arc length at each original point.
	cumulative := make([]float64, len(path))
	for i := 1; i < len(path); i++ {
		cumulative[i] = cumulative[i-1] + distance(path[i-1], path[i])
	}
	total := cumulative[len(path)-1]

	result := make([]Point, n)
	if total == 0 || len(path) == 1 {
		for i := range result {
			result[i] = path[0]
		}
		return result
	}

	seg := 0
	for i := 0; i < n; i++ {
		target := total * float64(i) / float64(n-1)

		// Advance to the segment containing the target offset. Targets are
		// monotonically increasing, so the scan never restarts.
		for seg < len(path)-2 && cumulative[seg+1] < target {
			seg++
		}

		segLen := cumulative[seg+1] - cumulative[seg]
		t := 0.0
		if segLen > 0 {
			t = (target - cumulative[seg]) / segLen
		}

		result[i] = Point{
			X: path[seg].X + t*(path[seg+1].X-path[seg].X),
			Y: path[seg].Y + t*(path[seg+1].Y-path[seg].Y),
		}
	}

	return result
}
