// Package testdata builds synthetic camera frames for tests: dark frames
// with an optional bright blob standing in for the wand tip reflection.
package testdata

import (
	"image"
	"image/color"
	"math"

	"gocv.io/x/gocv"
)

// Default synthetic frame dimensions.
const (
	FrameWidth  = 640
	FrameHeight = 480
)

// DarkFrame returns a black BGR frame, no reflection anywhere.
func DarkFrame(width, height int) gocv.Mat {
	return gocv.NewMatWithSize(height, width, gocv.MatTypeCV8UC3)
}

// BlobFrame returns a dark frame with a filled bright circle at (cx, cy).
// The blob is what the IR detector should lock onto.
func BlobFrame(width, height, cx, cy, radius int, brightness uint8) gocv.Mat {
	frame := DarkFrame(width, height)
	gocv.Circle(&frame, image.Pt(cx, cy),
		radius, color.RGBA{brightness, brightness, brightness, 0}, -1)
	return frame
}

// PathFrames renders one frame per point, each with a bright blob at that
// point, followed by trailing dark frames so a segmenter timeout fires.
// The caller owns the returned Mats and must Close them.
func PathFrames(width, height int, points []image.Point, trailing int) []*gocv.Mat {
	frames := make([]*gocv.Mat, 0, len(points)+trailing)
	for _, p := range points {
		f := BlobFrame(width, height, p.X, p.Y, 6, 255)
		frames = append(frames, &f)
	}
	for i := 0; i < trailing; i++ {
		f := DarkFrame(width, height)
		frames = append(frames, &f)
	}
	return frames
}

// CirclePoints returns n points around a circle of the given radius centered
// at (cx, cy). Clockwise in image coordinates when clockwise is true.
func CirclePoints(cx, cy, radius, n int, clockwise bool) []image.Point {
	points := make([]image.Point, n)
	for i := 0; i < n; i++ {
		t := float64(i) / float64(n) * 2 * math.Pi
		if !clockwise {
			t = -t
		}
		points[i] = image.Pt(
			cx+int(float64(radius)*math.Cos(t)),
			cy+int(float64(radius)*math.Sin(t)),
		)
	}
	return points
}

// CloseFrames closes every Mat in the slice.
func CloseFrames(frames []*gocv.Mat) {
	for _, f := range frames {
		f.Close()
	}
}
