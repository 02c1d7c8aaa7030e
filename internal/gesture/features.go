package gesture

import "math"

// aspectEpsilon guards the aspect ratio against a zero vertical extent.
const aspectEpsilon = 1e-6

// FeatureCount returns the feature vector length for a resample size of n:
// 2n coordinates + (n-1) segment angles + (n-2) curvature values + aspect
// ratio + path length. The order and count are a binding contract with the
// classifier's input dimensionality.
func FeatureCount(n int) int {
	return 4*n - 1
}

// ExtractFeatures converts a normalized path into a fixed-length numeric
// descriptor. Pure and deterministic: the same path always yields the same
// vector.
func ExtractFeatures(normalized []Point) []float64 {
	n := len(normalized)
	features := make([]float64, 0, FeatureCount(n))

	// Flattened coordinates in path order.
	for _, p := range normalized {
		features = append(features, p.X, p.Y)
	}

	// Angles of the segments between consecutive points.
	angles := make([]float64, 0, n-1)
	for i := 1; i < n; i++ {
		dx := normalized[i].X - normalized[i-1].X
		dy := normalized[i].Y - normalized[i-1].Y
		angles = append(angles, math.Atan2(dy, dx))
	}
	features = append(features, angles...)

	// Curvature: change between consecutive segment angles, wrapped into
	// (-pi, pi] so a crossing of the +/-pi boundary does not produce a
	// spurious jump.
	for i := 1; i < len(angles); i++ {
		delta := angles[i] - angles[i-1]
		features = append(features, math.Atan2(math.Sin(delta), math.Cos(delta)))
	}

	// Bounding box aspect ratio.
	minX, maxX := normalized[0].X, normalized[0].X
	minY, maxY := normalized[0].Y, normalized[0].Y
	for _, p := range normalized {
		minX = math.Min(minX, p.X)
		maxX = math.Max(maxX, p.X)
		minY = math.Min(minY, p.Y)
		maxY = math.Max(maxY, p.Y)
	}
	features = append(features, (maxX-minX)/(maxY-minY+aspectEpsilon))

	// Total path length.
	features = append(features, PathLength(normalized))

	return features
}
