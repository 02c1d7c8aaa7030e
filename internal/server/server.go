// Package server provides the HTTP server for the spellcaster system.
package server

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/arcwand/spellcaster/internal/capture"
	"github.com/arcwand/spellcaster/internal/gesture"
	"github.com/arcwand/spellcaster/internal/server/api"
	"github.com/arcwand/spellcaster/internal/spellbook"
	"github.com/arcwand/spellcaster/internal/store"
	"github.com/arcwand/spellcaster/internal/tracker"
)

// Config holds the server configuration.
type Config struct {
	StaticDir string
	Store     *store.Store
	Book      *spellbook.Book
	Camera    capture.Camera
	Detector  *tracker.IRDetector

	// OnSpellsChanged is forwarded to the spell handler; the app uses it to
	// retrain the classifier when the spell set changes.
	OnSpellsChanged func()
}

// Server represents the HTTP server for the spellcaster application.
type Server struct {
	config  Config
	mux     *http.ServeMux
	results *ResultsHandler
	start   time.Time
}

// New creates a new Server with the given configuration.
func New(config Config) *Server {
	s := &Server{
		config:  config,
		mux:     http.NewServeMux(),
		results: NewResultsHandler(),
		start:   time.Now(),
	}
	s.setupRoutes()
	return s
}

// setupRoutes configures all HTTP routes for the server.
func (s *Server) setupRoutes() {
	s.mux.HandleFunc("/api/health", s.handleHealth)
	s.mux.HandleFunc("/api/templates", s.handleTemplates)

	if s.config.Book != nil {
		spellHandler := api.NewSpellHandler(s.config.Book, s.config.Store)
		spellHandler.OnChange = s.config.OnSpellsChanged

		// Route between the spells handler and the recordings sub-resource.
		spellRouter := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if strings.HasSuffix(r.URL.Path, "/recordings") && s.config.Store != nil {
				api.NewRecordingsHandler(s.config.Store).ServeHTTP(w, r)
				return
			}
			spellHandler.ServeHTTP(w, r)
		})

		s.mux.Handle("/api/spells", spellRouter)
		s.mux.Handle("/api/spells/", spellRouter)
	}

	if s.config.Camera != nil {
		s.mux.Handle("/api/stream", NewStreamHandler(s.config.Camera))
	}

	if s.config.Detector != nil {
		s.mux.Handle("/api/calibration", NewCalibrationHandler(s.config.Detector))
	}

	s.mux.Handle("/api/results", s.results)

	if s.config.StaticDir != "" {
		fs := http.FileServer(http.Dir(s.config.StaticDir))
		s.mux.Handle("/", fs)
	}
}

// Results returns the WebSocket broadcaster for classification results.
func (s *Server) Results() *ResultsHandler {
	return s.results
}

// ServeHTTP implements the http.Handler interface.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// handleHealth handles GET requests to /api/health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	uptime := time.Since(s.start)

	response := map[string]interface{}{
		"status": "ok",
		"uptime": uptime.String(),
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

// handleTemplates handles GET requests to /api/templates and returns the
// names of all built-in gesture templates.
func (s *Server) handleTemplates(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	shapes := gesture.Library()
	names := make([]string, 0, len(shapes))
	for _, shape := range shapes {
		names = append(names, shape.Name())
	}

	response := map[string]interface{}{
		"templates": names,
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

// ListenAndServe starts the HTTP server on the given address.
func (s *Server) ListenAndServe(addr string) error {
	return http.ListenAndServe(addr, s)
}
