package tracker

import (
	"sync"

	"gocv.io/x/gocv"
)

// MockDetector is a test implementation of the Detector interface.
// It plays back a scripted sequence of detection results, one per frame.
type MockDetector struct {
	mu     sync.Mutex
	points []*TrackingPoint
	index  int
	err    error
}

// NewMockDetector creates a new MockDetector instance.
func NewMockDetector() *MockDetector {
	return &MockDetector{}
}

// SetSequence sets the detection results returned by successive Detect calls.
// A nil entry means "no wand detected this frame". After the sequence is
// exhausted, Detect keeps returning nil.
func (m *MockDetector) SetSequence(points []*TrackingPoint) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.points = points
	m.index = 0
}

// SetError sets the error that will be returned by Detect.
func (m *MockDetector) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Detect returns the next scripted result.
func (m *MockDetector) Detect(frame *gocv.Mat) (*TrackingPoint, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.err != nil {
		return nil, m.err
	}
	if m.index >= len(m.points) {
		return nil, nil
	}

	pt := m.points[m.index]
	m.index++
	return pt, nil
}

// Close is a no-op for the mock detector.
func (m *MockDetector) Close() error {
	return nil
}
