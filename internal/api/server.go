// Package api serves the survey point layers and the transform engine over
// HTTP, for the bundled status page and for scripted use from the field
// laptop.
package api

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/banshee-data/groundcontrol/internal/geodb"
	"github.com/banshee-data/groundcontrol/internal/monitoring"
)

// ANSI escape codes for request logging
const colorCyan = "\033[36m"
const colorReset = "\033[0m"
const colorYellow = "\033[33m"
const colorBoldGreen = "\033[1;32m"
const colorBoldRed = "\033[1;31m"

type Server struct {
	db *geodb.DB
}

func NewServer(db *geodb.DB) *Server {
	return &Server{db: db}
}

func (s *Server) ServeMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/layers", s.handleLayers)
	mux.HandleFunc("/points", s.handlePoints)
	mux.HandleFunc("/tracks", s.listTracks)
	mux.HandleFunc("/transform/estimate", s.estimateTransform)
	mux.HandleFunc("/transform/apply", s.applyTransform)
	mux.HandleFunc("/transform/report", s.residualReport)
	return mux
}

type loggingResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (lrw *loggingResponseWriter) WriteHeader(code int) {
	lrw.statusCode = code
	lrw.ResponseWriter.WriteHeader(code)
}

func statusCodeColor(statusCode int) string {
	switch {
	case statusCode >= 200 && statusCode < 300:
		return colorBoldGreen + strconv.Itoa(statusCode) + colorReset
	case statusCode >= 300 && statusCode < 400:
		return colorYellow + strconv.Itoa(statusCode) + colorReset
	default:
		return colorBoldRed + strconv.Itoa(statusCode) + colorReset
	}
}

// LoggingMiddleware logs method, path, status, and duration.
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		lrw := &loggingResponseWriter{w, http.StatusOK}
		next.ServeHTTP(lrw, r)
		log.Printf(
			"[%s] %s %s%s%s %vms",
			statusCodeColor(lrw.statusCode), r.Method,
			colorCyan, r.RequestURI, colorReset,
			float64(time.Since(start).Nanoseconds())/1e6,
		)
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		monitoring.Logf("api: write response: %v", err)
	}
}

func (s *Server) writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func (s *Server) handleLayers(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		layers, err := s.db.Layers()
		if err != nil {
			s.writeJSONError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if layers == nil {
			layers = []geodb.LayerInfo{}
		}
		s.writeJSON(w, layers)

	case http.MethodDelete:
		layer := r.URL.Query().Get("layer")
		if layer == "" {
			s.writeJSONError(w, http.StatusBadRequest, "layer query parameter is required")
			return
		}
		n, err := s.db.DeleteLayer(layer)
		if err != nil {
			s.writeJSONError(w, http.StatusInternalServerError, err.Error())
			return
		}
		s.writeJSON(w, map[string]int64{"deleted": n})

	default:
		s.writeJSONError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *Server) handlePoints(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		layer := r.URL.Query().Get("layer")
		if layer == "" {
			s.writeJSONError(w, http.StatusBadRequest, "layer query parameter is required")
			return
		}
		points, err := s.db.ListPoints(layer)
		if err != nil {
			s.writeJSONError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if points == nil {
			points = []geodb.Point{}
		}
		s.writeJSON(w, points)

	case http.MethodPost:
		var req struct {
			Layer  string        `json:"layer"`
			Points []geodb.Point `json:"points"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.writeJSONError(w, http.StatusBadRequest, "bad request body: "+err.Error())
			return
		}
		if req.Layer == "" || len(req.Points) == 0 {
			s.writeJSONError(w, http.StatusBadRequest, "layer and points are required")
			return
		}
		if err := s.db.InsertPoints(req.Layer, req.Points); err != nil {
			s.writeJSONError(w, http.StatusInternalServerError, err.Error())
			return
		}
		s.writeJSON(w, map[string]int{"inserted": len(req.Points)})

	default:
		s.writeJSONError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *Server) listTracks(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeJSONError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	tracks, err := s.db.ListTracks()
	if err != nil {
		s.writeJSONError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if tracks == nil {
		tracks = []geodb.TrackInfo{}
	}
	s.writeJSON(w, tracks)
}
