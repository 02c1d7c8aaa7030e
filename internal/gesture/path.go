// Package gesture provides gesture path segmentation, normalization and
// feature extraction for spell recognition.
package gesture

import (
	"math"

	"github.com/arcwand/spellcaster/internal/tracker"
)

// Point is a 2D position in a gesture path.
type Point struct {
	X float64
	Y float64
}

// FromTracking converts raw tracking points to a plain coordinate path.
func FromTracking(points []tracker.TrackingPoint) []Point {
	path := make([]Point, len(points))
	for i, p := range points {
		path[i] = Point{X: float64(p.X), Y: float64(p.Y)}
	}
	return path
}

// PathLength returns the total Euclidean length along the path.
func PathLength(path []Point) float64 {
	var total float64
	for i := 1; i < len(path); i++ {
		total += distance(path[i-1], path[i])
	}
	return total
}

func distance(a, b Point) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return math.Sqrt(dx*dx + dy*dy)
}
