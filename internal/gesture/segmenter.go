package gesture

import (
	"github.com/arcwand/spellcaster/internal/tracker"
)

// Segmentation defaults. A wand stroke is sampled at frame rate with
// occasional dropouts from motion blur or occlusion, so gesture-end is
// declared only after a run of detection-free frames.
const (
	DefaultTimeoutFrames = 15
	DefaultMinPoints     = 15
)

// State is the segmenter's state machine state.
type State int

const (
	// StateIdle means no gesture is in progress.
	StateIdle State = iota
	// StateTracking means points are being accumulated into a gesture.
	StateTracking
)

// Segmenter accumulates per-frame detection results into discrete gesture
// attempts. It is driven once per frame tick by the recognition loop and is
// not safe for concurrent use.
type Segmenter struct {
	timeoutFrames int
	minPoints     int

	state     State
	path      []tracker.TrackingPoint
	countdown int
}

// NewSegmenter creates a Segmenter. timeoutFrames is the number of
// consecutive detection-free frames that ends a gesture; minPoints is the
// minimum path length for a completed gesture to be emitted rather than
// discarded as noise.
func NewSegmenter(timeoutFrames, minPoints int) *Segmenter {
	if timeoutFrames <= 0 {
		timeoutFrames = DefaultTimeoutFrames
	}
	if minPoints <= 0 {
		minPoints = DefaultMinPoints
	}
	return &Segmenter{
		timeoutFrames: timeoutFrames,
		minPoints:     minPoints,
	}
}

// Observe feeds one frame's detection result into the state machine.
// pt is nil when no wand tip was detected this frame.
//
// Returns a completed gesture path when the idle timeout expires with
// enough accumulated points, and nil otherwise. The returned slice is
// owned by the caller; the segmenter starts the next gesture fresh.
func (s *Segmenter) Observe(pt *tracker.TrackingPoint) []tracker.TrackingPoint {
	switch s.state {
	case StateIdle:
		if pt != nil {
			s.path = append(s.path[:0:0], *pt)
			s.countdown = s.timeoutFrames
			s.state = StateTracking
		}
		return nil

	case StateTracking:
		if pt != nil {
			s.path = append(s.path, *pt)
			s.countdown = s.timeoutFrames
			return nil
		}

		s.countdown--
		if s.countdown > 0 {
			return nil
		}

		completed := s.path
		s.path = nil
		s.state = StateIdle

		if len(completed) < s.minPoints {
			// Too short to be a deliberate stroke.
			return nil
		}
		return completed
	}
	return nil
}

// Reset abandons any gesture in progress and returns to idle.
func (s *Segmenter) Reset() {
	s.state = StateIdle
	s.path = nil
	s.countdown = 0
}

// State returns the current state machine state.
func (s *Segmenter) State() State {
	return s.state
}

// PathLen returns the number of points accumulated so far.
func (s *Segmenter) PathLen() int {
	return len(s.path)
}
