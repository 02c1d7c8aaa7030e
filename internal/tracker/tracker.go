// Package tracker detects the retroreflective wand tip in IR camera frames.
//
// The wand tip carries a retroreflective bead that bounces IR light back at
// the camera, so it shows up as the brightest compact region in the frame.
// Detection thresholds the grayscale frame, finds bright contours, filters
// them by area and circularity, and reports the centroid of the best one.
package tracker

import (
	"image"
	"math"
	"sync"
	"time"

	"gocv.io/x/gocv"
)

// Default detection parameters, tuned for a NoIR camera with IR illumination.
const (
	DefaultThreshold      = 200
	DefaultMinBlobArea    = 50
	DefaultMaxBlobArea    = 5000
	DefaultMinCircularity = 0.3
	blurKernelSize        = 5
)

// Config holds detection parameters for the wand tip detector.
type Config struct {
	// Threshold is the grayscale cutoff (0-255) for bright IR reflections.
	Threshold int

	// MinBlobArea and MaxBlobArea bound the pixel area of a candidate region.
	MinBlobArea float64
	MaxBlobArea float64

	// MinCircularity rejects non-circular reflections (4*pi*area/perimeter^2).
	MinCircularity float64
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() Config {
	return Config{
		Threshold:      DefaultThreshold,
		MinBlobArea:    DefaultMinBlobArea,
		MaxBlobArea:    DefaultMaxBlobArea,
		MinCircularity: DefaultMinCircularity,
	}
}

// Detector defines the interface for wand tip detection implementations.
type Detector interface {
	// Detect analyzes a video frame and returns the wand tip position,
	// or nil if no wand tip is visible. A frame with no detectable tip
	// is a normal outcome, not an error.
	Detect(frame *gocv.Mat) (*TrackingPoint, error)

	// Close releases any resources held by the detector.
	Close() error
}

// DebugStats is a snapshot of the last frame's detection pass, used by the
// calibration endpoint to help aim the threshold and area band.
type DebugStats struct {
	// Contours is how many bright regions survived thresholding.
	Contours int `json:"contours"`

	// Candidates is how many of those passed the area and circularity gates.
	Candidates int `json:"candidates"`

	// Best* describe the winning candidate; zero when nothing qualified.
	BestArea        float64 `json:"best_area"`
	BestCircularity float64 `json:"best_circularity"`
	BestBrightness  float64 `json:"best_brightness"`
}

// IRDetector detects the bright IR reflection of a wand tip using GoCV.
type IRDetector struct {
	mu    sync.Mutex
	cfg   Config
	stats DebugStats
}

// NewIRDetector creates an IRDetector with the given configuration.
func NewIRDetector(cfg Config) *IRDetector {
	if cfg.Threshold <= 0 {
		cfg.Threshold = DefaultThreshold
	}
	if cfg.MinCircularity <= 0 {
		cfg.MinCircularity = DefaultMinCircularity
	}
	if cfg.MaxBlobArea <= cfg.MinBlobArea {
		cfg.MaxBlobArea = cfg.MinBlobArea + 1
	}
	return &IRDetector{cfg: cfg}
}

// Detect finds the wand tip in a frame.
//
// Pipeline: grayscale, Gaussian blur, binary threshold, external contours,
// area and circularity filters, then the candidate with the highest
// brightness*circularity score wins. Returns nil when nothing qualifies.
func (d *IRDetector) Detect(frame *gocv.Mat) (*TrackingPoint, error) {
	if frame == nil || frame.Empty() {
		return nil, nil
	}

	d.mu.Lock()
	cfg := d.cfg
	d.mu.Unlock()

	gray := gocv.NewMat()
	defer gray.Close()

	if frame.Channels() > 1 {
		gocv.CvtColor(*frame, &gray, gocv.ColorBGRToGray)
	} else {
		frame.CopyTo(&gray)
	}

	blurred := gocv.NewMat()
	defer blurred.Close()
	gocv.GaussianBlur(gray, &blurred, image.Point{X: blurKernelSize, Y: blurKernelSize}, 0, 0, gocv.BorderDefault)

	thresh := gocv.NewMat()
	defer thresh.Close()
	gocv.Threshold(blurred, &thresh, float32(cfg.Threshold), 255, gocv.ThresholdBinary)

	contours := gocv.FindContours(thresh, gocv.RetrievalExternal, gocv.ChainApproxSimple)
	defer contours.Close()

	var best *TrackingPoint
	var stats DebugStats
	bestScore := 0.0
	now := float64(time.Now().UnixNano()) / 1e9

	stats.Contours = contours.Size()
	for i := 0; i < contours.Size(); i++ {
		contour := contours.At(i)

		area := gocv.ContourArea(contour)
		if area < cfg.MinBlobArea || area > cfg.MaxBlobArea {
			continue
		}

		perimeter := gocv.ArcLength(contour, true)
		if perimeter == 0 {
			continue
		}
		circularity := 4 * math.Pi * area / (perimeter * perimeter)
		if circularity < cfg.MinCircularity {
			continue
		}

		cx, cy := contourCentroid(contour)
		if cx < 0 || cy < 0 {
			continue
		}

		var brightness float64
		if cy < gray.Rows() && cx < gray.Cols() {
			brightness = float64(gray.GetUCharAt(cy, cx))
		}

		stats.Candidates++
		score := brightness * circularity
		if score > bestScore {
			bestScore = score
			best = &TrackingPoint{
				X:          cx,
				Y:          cy,
				Timestamp:  now,
				Brightness: brightness,
			}
			stats.BestArea = area
			stats.BestCircularity = circularity
			stats.BestBrightness = brightness
		}
	}

	d.mu.Lock()
	d.stats = stats
	d.mu.Unlock()

	return best, nil
}

// Debug returns detection stats from the most recent Detect call.
func (d *IRDetector) Debug() DebugStats {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.stats
}

// Close releases resources held by the detector.
func (d *IRDetector) Close() error {
	return nil
}

// SetThreshold updates the brightness cutoff. Used by calibration.
// Values outside 0-255 are ignored.
func (d *IRDetector) SetThreshold(threshold int) {
	if threshold < 0 || threshold > 255 {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.cfg.Threshold = threshold
}

// SetAreaBand updates the blob area bounds. Used by calibration.
func (d *IRDetector) SetAreaBand(minArea, maxArea float64) {
	if minArea < 0 || maxArea <= minArea {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.cfg.MinBlobArea = minArea
	d.cfg.MaxBlobArea = maxArea
}

// Config returns a copy of the current detection parameters.
func (d *IRDetector) Config() Config {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.cfg
}

// contourCentroid returns the mean of the contour's polygon points.
// Returns (-1, -1) for an empty contour.
func contourCentroid(contour gocv.PointVector) (int, int) {
	n := contour.Size()
	if n == 0 {
		return -1, -1
	}

	var sumX, sumY int
	for i := 0; i < n; i++ {
		p := contour.At(i)
		sumX += p.X
		sumY += p.Y
	}

	return sumX / n, sumY / n
}
