package tracker

// TrackingPoint is a single detected wand tip position.
// Timestamp is in seconds since the Unix epoch.
type TrackingPoint struct {
	X          int
	Y          int
	Timestamp  float64
	Brightness float64
}
