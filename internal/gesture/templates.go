package gesture

import "math"

// Shape is a parametric gesture template. Generate produces an idealized
// ordered path of n points; the same shape and n always produce the same
// path. Shapes seed the classifier's synthetic training data and back the
// spell template library.
type Shape interface {
	Generate(n int) []Point
	Name() string
}

// Direction of a straight flick stroke.
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

// DiagonalDir of a diagonal stroke.
type DiagonalDir int

const (
	UpRight DiagonalDir = iota
	UpLeft
	DownRight
	DownLeft
)

// Circle is a full circle traced clockwise or counter-clockwise.
type Circle struct {
	Clockwise bool
}

func (c Circle) Name() string {
	if c.Clockwise {
		return "circle_cw"
	}
	return "circle_ccw"
}

func (c Circle) Generate(n int) []Point {
	path := make([]Point, n)
	for i := 0; i < n; i++ {
		// Negating the angle keeps the first point at exactly (1, 0) for
		// both directions; only the traversal order differs.
		angle := 2 * math.Pi * float64(i) / float64(n-1)
		if !c.Clockwise {
			angle = -angle
		}
		path[i] = Point{X: math.Cos(angle), Y: math.Sin(angle)}
	}
	return path
}

// Flick is a quick, slightly curved straight stroke.
type Flick struct {
	Dir Direction
}

func (f Flick) Name() string {
	switch f.Dir {
	case Up:
		return "flick_up"
	case Down:
		return "flick_down"
	case Left:
		return "flick_left"
	}
	return "flick_right"
}

func (f Flick) Generate(n int) []Point {
	path := make([]Point, n)
	for i := 0; i < n; i++ {
		t := float64(i) / float64(n-1)
		curve := math.Sin(t * math.Pi * 0.3)
		switch f.Dir {
		case Up:
			path[i] = Point{X: curve, Y: t}
		case Down:
			path[i] = Point{X: curve, Y: 1 - t}
		case Left:
			path[i] = Point{X: 1 - t, Y: curve}
		case Right:
			path[i] = Point{X: t, Y: curve}
		}
	}
	return path
}

// DiagonalLine is a straight diagonal stroke with a slight curve.
type DiagonalLine struct {
	Dir DiagonalDir
}

func (d DiagonalLine) Name() string {
	switch d.Dir {
	case UpRight:
		return "diagonal_up_right"
	case UpLeft:
		return "diagonal_up_left"
	case DownRight:
		return "diagonal_down_right"
	}
	return "diagonal_down_left"
}

func (d DiagonalLine) Generate(n int) []Point {
	path := make([]Point, n)
	for i := 0; i < n; i++ {
		t := float64(i) / float64(n-1)
		var x, y float64
		switch d.Dir {
		case UpRight:
			x, y = t, t
		case UpLeft:
			x, y = 1-t, t
		case DownRight:
			x, y = t, 1-t
		case DownLeft:
			x, y = 1-t, 1-t
		}
		path[i] = Point{X: x + 0.1*math.Sin(t*math.Pi), Y: y}
	}
	return path
}

// Wave is a sinusoidal sweep along one axis.
type Wave struct {
	Vertical bool
}

func (w Wave) Name() string {
	if w.Vertical {
		return "wave_vertical"
	}
	return "wave_horizontal"
}

func (w Wave) Generate(n int) []Point {
	path := make([]Point, n)
	for i := 0; i < n; i++ {
		t := float64(i) / float64(n-1)
		amp := 0.3 * math.Sin(t*3*math.Pi)
		if w.Vertical {
			path[i] = Point{X: amp, Y: t}
		} else {
			path[i] = Point{X: t, Y: amp}
		}
	}
	return path
}

// SCurve is a single S-shaped curve.
type SCurve struct{}

func (SCurve) Name() string { return "s_curve" }

func (SCurve) Generate(n int) []Point {
	path := make([]Point, n)
	for i := 0; i < n; i++ {
		t := float64(i) / float64(n-1)
		path[i] = Point{X: 0.5 * math.Sin(t*2*math.Pi), Y: t}
	}
	return path
}

// Zigzag alternates sharply between two heights.
type Zigzag struct {
	Peaks int
}

func (Zigzag) Name() string { return "zigzag" }

func (z Zigzag) Generate(n int) []Point {
	peaks := z.Peaks
	if peaks <= 0 {
		peaks = 3
	}
	path := make([]Point, n)
	for i := 0; i < n; i++ {
		t := float64(i) / float64(n-1)
		sign := 1.0
		if math.Sin(t*float64(peaks)*math.Pi) < 0 {
			sign = -1.0
		}
		path[i] = Point{X: t, Y: 0.5 + 0.4*sign}
	}
	return path
}

// SwishFlick is a horizontal swish followed by an upward flick.
type SwishFlick struct{}

func (SwishFlick) Name() string { return "swish_flick" }

func (SwishFlick) Generate(n int) []Point {
	// The flick gets the leftover point when n is odd, so the path always
	// has exactly n points.
	half := n / 2
	rest := n - half
	path := make([]Point, 0, n)
	for i := 0; i < half; i++ {
		t := 0.5 * float64(i) / segDen(half)
		path = append(path, Point{X: t * 2, Y: 0.2 * math.Sin(t*2*math.Pi)})
	}
	for i := 0; i < rest; i++ {
		t := 0.5 + 0.5*float64(i)/segDen(rest)
		path = append(path, Point{X: 1 + 0.3*(t-0.5), Y: (t - 0.5) * 2})
	}
	return path
}

// segDen is the interpolation denominator for a segment of count points,
// clamped so a single-point segment does not divide by zero.
func segDen(count int) float64 {
	if count < 2 {
		return 1
	}
	return float64(count - 1)
}

// FigureEight is a horizontal figure-8 (lemniscate) traced once.
type FigureEight struct{}

func (FigureEight) Name() string { return "figure_eight" }

func (FigureEight) Generate(n int) []Point {
	path := make([]Point, n)
	for i := 0; i < n; i++ {
		t := 2 * math.Pi * float64(i) / float64(n-1)
		path[i] = Point{X: math.Sin(t), Y: math.Sin(2*t) / 2}
	}
	return path
}

// Infinity is a lemniscate starting from the side rather than the center.
type Infinity struct{}

func (Infinity) Name() string { return "infinity" }

func (Infinity) Generate(n int) []Point {
	path := make([]Point, n)
	for i := 0; i < n; i++ {
		t := 2 * math.Pi * float64(i) / float64(n-1)
		path[i] = Point{X: math.Cos(t), Y: math.Sin(2*t) / 2}
	}
	return path
}

// Spiral winds two full turns, inward or outward.
type Spiral struct {
	Inward bool
}

func (s Spiral) Name() string {
	if s.Inward {
		return "spiral_in"
	}
	return "spiral_out"
}

func (s Spiral) Generate(n int) []Point {
	path := make([]Point, n)
	for i := 0; i < n; i++ {
		t := 4 * math.Pi * float64(i) / float64(n-1)
		r := 0.1 + 0.9*float64(i)/float64(n-1)
		if s.Inward {
			r = 0.1 + 0.9*float64(n-1-i)/float64(n-1)
		}
		path[i] = Point{X: r * math.Cos(t), Y: r * math.Sin(t)}
	}
	return path
}

// Heart is a heart outline traced once.
type Heart struct{}

func (Heart) Name() string { return "heart" }

func (Heart) Generate(n int) []Point {
	path := make([]Point, n)
	minX, maxX := math.Inf(1), math.Inf(-1)
	minY, maxY := math.Inf(1), math.Inf(-1)
	for i := 0; i < n; i++ {
		t := 2 * math.Pi * float64(i) / float64(n-1)
		s := math.Sin(t)
		x := 16 * s * s * s
		y := 13*math.Cos(t) - 5*math.Cos(2*t) - 2*math.Cos(3*t) - math.Cos(4*t)
		path[i] = Point{X: x, Y: y}
		minX = math.Min(minX, x)
		maxX = math.Max(maxX, x)
		minY = math.Min(minY, y)
		maxY = math.Max(maxY, y)
	}
	for i := range path {
		path[i].X = (path[i].X - minX) / (maxX - minX)
		path[i].Y = (path[i].Y - minY) / (maxY - minY)
	}
	return path
}

// Polygon traces straight lines through a fixed corner sequence, with
// points distributed along the edges by arc length. It covers the angular
// templates: triangle, square, star, lightning bolt, checkmark, X.
type Polygon struct {
	name    string
	corners []Point
}

func (p Polygon) Name() string { return p.name }

func (p Polygon) Generate(n int) []Point {
	return Resample(p.corners, n)
}

// Triangle returns a closed triangle shape.
func Triangle() Polygon {
	return Polygon{name: "triangle", corners: []Point{
		{0.5, 1}, {0, 0}, {1, 0}, {0.5, 1},
	}}
}

// Square returns a closed square shape.
func Square() Polygon {
	return Polygon{name: "square", corners: []Point{
		{0, 0}, {1, 0}, {1, 1}, {0, 1}, {0, 0},
	}}
}

// Star returns a closed star shape with the given number of points.
func Star(points int) Polygon {
	if points < 3 {
		points = 5
	}
	corners := make([]Point, 0, 2*points+1)
	for i := 0; i < points; i++ {
		outer := 2*math.Pi*float64(i)/float64(points) - math.Pi/2
		inner := outer + math.Pi/float64(points)
		corners = append(corners,
			Point{X: math.Cos(outer), Y: math.Sin(outer)},
			Point{X: 0.4 * math.Cos(inner), Y: 0.4 * math.Sin(inner)},
		)
	}
	corners = append(corners, corners[0])
	return Polygon{name: "star", corners: corners}
}

// Lightning returns a closed lightning bolt shape.
func Lightning() Polygon {
	return Polygon{name: "lightning_bolt", corners: []Point{
		{0.3, 1}, {0.5, 0.6}, {0.3, 0.6}, {0.7, 0}, {0.5, 0.4}, {0.7, 0.4}, {0.3, 1},
	}}
}

// Checkmark returns a checkmark shape.
func Checkmark() Polygon {
	return Polygon{name: "checkmark", corners: []Point{
		{0, 0.5}, {0.3, 0.2}, {1, 1},
	}}
}

// XMark returns an X drawn as two crossing strokes.
func XMark() Polygon {
	return Polygon{name: "x_mark", corners: []Point{
		{0, 0}, {1, 1}, {1, 0}, {0, 1},
	}}
}

// Library returns the full template library. Shape parameters are fixed at
// construction; the name is only an identity for persistence and display.
func Library() []Shape {
	return []Shape{
		Circle{Clockwise: true},
		Circle{Clockwise: false},
		Flick{Dir: Up},
		Flick{Dir: Down},
		Flick{Dir: Left},
		Flick{Dir: Right},
		DiagonalLine{Dir: UpRight},
		DiagonalLine{Dir: UpLeft},
		DiagonalLine{Dir: DownRight},
		DiagonalLine{Dir: DownLeft},
		Wave{Vertical: false},
		Wave{Vertical: true},
		SCurve{},
		Zigzag{Peaks: 3},
		SwishFlick{},
		FigureEight{},
		Infinity{},
		Spiral{Inward: true},
		Spiral{Inward: false},
		Triangle(),
		Square(),
		Star(5),
		Lightning(),
		Heart{},
		Checkmark(),
		XMark(),
	}
}

// ShapeByName resolves a persisted template name to its Shape.
func ShapeByName(name string) (Shape, bool) {
	for _, s := range Library() {
		if s.Name() == name {
			return s, true
		}
	}
	return nil, false
}
