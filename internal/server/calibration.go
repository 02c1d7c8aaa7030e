package server

import (
	"encoding/json"
	"net/http"

	"github.com/arcwand/spellcaster/internal/tracker"
)

// CalibrationHandler exposes the detector's tuning knobs and per-frame
// stats so the dashboard can help aim the IR threshold and area band.
type CalibrationHandler struct {
	detector *tracker.IRDetector
}

// NewCalibrationHandler creates a CalibrationHandler for the given detector.
func NewCalibrationHandler(detector *tracker.IRDetector) *CalibrationHandler {
	return &CalibrationHandler{detector: detector}
}

type calibrationConfig struct {
	Threshold      int     `json:"threshold"`
	MinBlobArea    float64 `json:"min_blob_area"`
	MaxBlobArea    float64 `json:"max_blob_area"`
	MinCircularity float64 `json:"min_circularity"`
}

type calibrationResponse struct {
	Config calibrationConfig  `json:"config"`
	Stats  tracker.DebugStats `json:"stats"`
}

type calibrationRequest struct {
	Threshold   *int     `json:"threshold"`
	MinBlobArea *float64 `json:"min_blob_area"`
	MaxBlobArea *float64 `json:"max_blob_area"`
}

// ServeHTTP handles GET (current config + last-frame stats) and POST
// (partial updates to the threshold and area band).
func (h *CalibrationHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.write(w)
	case http.MethodPost:
		h.update(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *CalibrationHandler) write(w http.ResponseWriter) {
	cfg := h.detector.Config()
	response := calibrationResponse{
		Config: calibrationConfig{
			Threshold:      cfg.Threshold,
			MinBlobArea:    cfg.MinBlobArea,
			MaxBlobArea:    cfg.MaxBlobArea,
			MinCircularity: cfg.MinCircularity,
		},
		Stats: h.detector.Debug(),
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

func (h *CalibrationHandler) update(w http.ResponseWriter, r *http.Request) {
	var req calibrationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	if req.Threshold != nil {
		h.detector.SetThreshold(*req.Threshold)
	}
	if req.MinBlobArea != nil || req.MaxBlobArea != nil {
		cfg := h.detector.Config()
		minArea, maxArea := cfg.MinBlobArea, cfg.MaxBlobArea
		if req.MinBlobArea != nil {
			minArea = *req.MinBlobArea
		}
		if req.MaxBlobArea != nil {
			maxArea = *req.MaxBlobArea
		}
		h.detector.SetAreaBand(minArea, maxArea)
	}

	h.write(w)
}
