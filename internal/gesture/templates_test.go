package gesture

import (
	"math"
	"testing"
)

func TestLibrary_UniqueNames(t *testing.T) {
	seen := make(map[string]bool)
	for _, shape := range Library() {
		name := shape.Name()
		if name == "" {
			t.Error("shape with empty name in library")
		}
		if seen[name] {
			t.Errorf("duplicate template name %q", name)
		}
		seen[name] = true
	}
	if len(seen) < 20 {
		t.Errorf("library has %d templates, expected at least 20", len(seen))
	}
}

func TestLibrary_GeneratePointCount(t *testing.T) {
	for _, shape := range Library() {
		for _, n := range []int{15, 16, 31, 32, 64} {
			points := shape.Generate(n)
			if len(points) != n {
				t.Errorf("%s.Generate(%d) returned %d points", shape.Name(), n, len(points))
			}
		}
	}
}

func TestSwishFlick_SmallAndOddCounts(t *testing.T) {
	// The two-segment construction must still deliver exactly n finite
	// points when n is odd or too small for both segments to interpolate.
	for _, n := range []int{3, 4, 5, 15, 33} {
		points := SwishFlick{}.Generate(n)
		if len(points) != n {
			t.Errorf("Generate(%d) returned %d points", n, len(points))
		}
		for i, p := range points {
			if math.IsNaN(p.X) || math.IsNaN(p.Y) || math.IsInf(p.X, 0) || math.IsInf(p.Y, 0) {
				t.Fatalf("Generate(%d) point %d is not finite: %v", n, i, p)
			}
		}
	}
}

func TestShapeByName(t *testing.T) {
	shape, ok := ShapeByName("circle_cw")
	if !ok {
		t.Fatal("circle_cw not found")
	}
	if shape.Name() != "circle_cw" {
		t.Errorf("Name() = %q, want circle_cw", shape.Name())
	}

	if _, ok := ShapeByName("no_such_template"); ok {
		t.Error("unexpected template for bogus name")
	}
}

func TestCircle_DirectionsDiffer(t *testing.T) {
	cw := Circle{Clockwise: true}.Generate(32)
	ccw := Circle{Clockwise: false}.Generate(32)

	// Same start point, opposite traversal: the second point must differ.
	if cw[0] != ccw[0] {
		t.Errorf("start points differ: %v vs %v", cw[0], ccw[0])
	}
	if cw[1] == ccw[1] {
		t.Error("expected opposite traversal to diverge immediately")
	}
}

func TestFlick_Directions(t *testing.T) {
	// Up and down are mirror traversals of the same stroke.
	up := Flick{Dir: Up}.Generate(8)
	if up[len(up)-1].Y <= up[0].Y {
		t.Error("flick_up should move toward larger y")
	}

	down := Flick{Dir: Down}.Generate(8)
	if down[len(down)-1].Y >= down[0].Y {
		t.Error("flick_down should move toward smaller y")
	}

	right := Flick{Dir: Right}.Generate(8)
	if right[len(right)-1].X <= right[0].X {
		t.Error("flick_right should move toward larger x")
	}
}

func TestPolygon_CornersResampled(t *testing.T) {
	tri := Triangle()
	points := tri.Generate(32)
	if len(points) != 32 {
		t.Fatalf("Generate(32) returned %d points", len(points))
	}
	if tri.Name() != "triangle" {
		t.Errorf("Name() = %q, want triangle", tri.Name())
	}
}

func TestTemplates_NormalizeCleanly(t *testing.T) {
	// Every template must survive the normalize/extract pipeline at the
	// default resample size.
	for _, shape := range Library() {
		normalized, err := Normalize(shape.Generate(DefaultResamplePoints), DefaultResamplePoints)
		if err != nil {
			t.Errorf("Normalize(%s) error = %v", shape.Name(), err)
			continue
		}
		features := ExtractFeatures(normalized)
		if len(features) != FeatureCount(DefaultResamplePoints) {
			t.Errorf("%s: feature length %d, want %d",
				shape.Name(), len(features), FeatureCount(DefaultResamplePoints))
		}
		for i, f := range features {
			if math.IsNaN(f) || math.IsInf(f, 0) {
				t.Errorf("%s: feature %d is %f", shape.Name(), i, f)
				break
			}
		}
	}
}
