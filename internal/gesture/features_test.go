package gesture

import (
	"math"
	"testing"
)

func TestFeatureCount(t *testing.T) {
	if got := FeatureCount(32); got != 127 {
		t.Errorf("FeatureCount(32) = %d, want 127", got)
	}
	if got := FeatureCount(16); got != 63 {
		t.Errorf("FeatureCount(16) = %d, want 63", got)
	}
}

func TestExtractFeatures_Length(t *testing.T) {
	normalized, err := Normalize(Circle{Clockwise: true}.Generate(32), 32)
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}

	features := ExtractFeatures(normalized)
	if len(features) != FeatureCount(32) {
		t.Errorf("feature vector length = %d, want %d", len(features), FeatureCount(32))
	}
}

func TestExtractFeatures_CoordinatesFirst(t *testing.T) {
	normalized, err := Normalize(Flick{Dir: Up}.Generate(32), 32)
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}

	features := ExtractFeatures(normalized)
	for i, p := range normalized {
		if features[2*i] != p.X || features[2*i+1] != p.Y {
			t.Fatalf("feature pair %d = (%f, %f), want (%f, %f)",
				i, features[2*i], features[2*i+1], p.X, p.Y)
		}
	}
}

func TestExtractFeatures_CurvatureWrapped(t *testing.T) {
	// Every curvature entry must lie in (-pi, pi].
	normalized, err := Normalize(Spiral{Inward: true}.Generate(32), 32)
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}

	features := ExtractFeatures(normalized)
	n := len(normalized)
	curvature := features[3*n-1 : 4*n-3]
	for i, c := range curvature {
		if c <= -math.Pi || c > math.Pi {
			t.Errorf("curvature %d = %f, outside (-pi, pi]", i, c)
		}
	}
}

func TestExtractFeatures_AspectRatioDistinguishesFlicks(t *testing.T) {
	up, err := Normalize(Flick{Dir: Up}.Generate(32), 32)
	if err != nil {
		t.Fatalf("Normalize(up) error = %v", err)
	}
	right, err := Normalize(Flick{Dir: Right}.Generate(32), 32)
	if err != nil {
		t.Fatalf("Normalize(right) error = %v", err)
	}

	n := len(up)
	aspectUp := ExtractFeatures(up)[4*n-3]
	aspectRight := ExtractFeatures(right)[4*n-3]

	// A vertical flick is tall and narrow, a horizontal one wide and flat.
	if aspectUp >= aspectRight {
		t.Errorf("aspect up = %f, aspect right = %f; expected up < right", aspectUp, aspectRight)
	}
}

func TestPathLength_Straight(t *testing.T) {
	path := []Point{{X: 0, Y: 0}, {X: 3, Y: 4}}
	if got := PathLength(path); math.Abs(got-5) > 1e-9 {
		t.Errorf("PathLength = %f, want 5", got)
	}
}
